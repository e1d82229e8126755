package types_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	union "github.com/uniongov/union-core/types"
	accessexported "github.com/uniongov/union-core/x/access/exported"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	threshold "github.com/uniongov/union-core/x/threshold/exported"
	"github.com/uniongov/union-core/x/voting/types"
)

func validConfig() types.VotingConfig {
	half := threshold.NewFractionOf(sdkmath.LegacyNewDecWithPrec(5, 1), threshold.Group(3))

	return types.VotingConfig{
		Name:                "Default",
		ProposerConstraints: []accessexported.Allowee{accessexported.Everyone()},
		RoundSettings:       types.RoundSettings{Duration: time.Hour},
		Approval:            half,
		Quorum:              half,
		Rejection:           threshold.NewQuantityOf(sdkmath.OneUint(), threshold.GroupOrProfile(groupexported.Profile(union.Principal("carol")))),
		Win:                 threshold.NewFractionOf(sdkmath.LegacyOneDec(), threshold.Thresholds(half, threshold.NewQuantityOf(sdkmath.NewUint(2), threshold.Group(1)))),
		NextRound:           half,
	}
}

func TestVotingConfig_ValidateBasic(t *testing.T) {
	assert.NoError(t, validConfig().ValidateBasic())

	for name, mutate := range map[string]func(*types.VotingConfig){
		"empty name":          func(c *types.VotingConfig) { c.Name = "" },
		"no proposers":        func(c *types.VotingConfig) { c.ProposerConstraints = nil },
		"zero round duration": func(c *types.VotingConfig) { c.RoundSettings.Duration = 0 },
		"negative delay":      func(c *types.VotingConfig) { c.RoundSettings.Delay = -time.Second },
		"inverted bounds":     func(c *types.VotingConfig) { c.ChoicesCountBounds = &types.Bounds{Min: 3, Max: 2} },
		"no winners needed":   func(c *types.VotingConfig) { c.WinnersCountBounds = &types.Bounds{Min: 0, Max: 2} },
		"missing threshold":   func(c *types.VotingConfig) { c.Quorum = threshold.Value{} },
		"fraction exceeds one": func(c *types.VotingConfig) {
			c.Win = threshold.NewFractionOf(sdkmath.LegacyNewDec(2), threshold.Group(3))
		},
		"empty threshold list": func(c *types.VotingConfig) {
			c.NextRound = threshold.NewQuantityOf(sdkmath.OneUint(), threshold.Thresholds())
		},
		"invalid editor": func(c *types.VotingConfig) { c.EditorConstraints = []accessexported.Allowee{{}} },
	} {
		t.Run(name, func(t *testing.T) {
			config := validConfig()
			mutate(&config)
			assert.Error(t, config.ValidateBasic())
		})
	}
}

func TestVotingConfig_ListGroups(t *testing.T) {
	config := validConfig()

	assert.Equal(t, []groupexported.GroupOrProfile{
		groupexported.Group(3),
		groupexported.Profile("carol"),
		groupexported.Group(1),
	}, config.ListGroupsAndProfiles())
	assert.Equal(t, []groupexported.GroupID{groupexported.HasProfileGroupID, 1, 3}, config.ListGroups())
}

func TestBounds(t *testing.T) {
	bounds := types.Bounds{Min: 1, Max: 3}

	assert.False(t, bounds.Contains(0))
	assert.True(t, bounds.Contains(1))
	assert.True(t, bounds.Contains(3))
	assert.False(t, bounds.Contains(4))
}
