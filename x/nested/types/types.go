package types

import (
	"fmt"
	"slices"
	"sort"
	"time"

	sdkmath "cosmossdk.io/math"
	"golang.org/x/exp/maps"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/nested/exported"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
	votingexported "github.com/uniongov/union-core/x/voting/exported"
	votingtypes "github.com/uniongov/union-core/x/voting/types"
)

// NestedVotingConfig binds local groups to a voting config of a remote union this union is a member of
type NestedVotingConfig struct {
	ID                   exported.NestedVotingConfigID               `json:"id"`
	Name                 string                                      `json:"name"`
	Description          string                                      `json:"description"`
	RemoteUnionID        union.Principal                             `json:"remote_union_id"`
	RemoteGroupID        groupexported.GroupID                       `json:"remote_group_id"`
	RemoteVotingConfigID votingexported.VotingConfigRef              `json:"remote_voting_config_id"`
	VoteCalculation      exported.VoteCalculation                    `json:"vote_calculation"`
	AlloweeGroups        map[groupexported.GroupID]sdkmath.LegacyDec `json:"allowee_groups"`
}

// ValidateBasic returns an error if the config is malformed
func (m NestedVotingConfig) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	if err := m.RemoteUnionID.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid remote union: %w", err)
	}

	switch m.VoteCalculation {
	case exported.Total, exported.Turnout:
	default:
		return fmt.Errorf("unknown vote calculation %d", m.VoteCalculation)
	}

	if len(m.AlloweeGroups) == 0 {
		return fmt.Errorf("at least one allowee group is required")
	}

	for _, group := range m.ListGroups() {
		if err := utils.ValidateFraction(m.AlloweeGroups[group]); err != nil {
			return fmt.Errorf("invalid fraction of group %s: %w", group, err)
		}
	}

	if sum := utils.SumFractions(m.AlloweeGroups); sum.GT(utils.OneFraction) {
		return fmt.Errorf("allowee group fractions sum up to %s", sum)
	}

	return nil
}

// ListGroups returns the allowee groups in ascending order
func (m NestedVotingConfig) ListGroups() []groupexported.GroupID {
	groups := maps.Keys(m.AlloweeGroups)
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	return groups
}

// NestedVoting mirrors a remote voting so that local members can decide how this union votes in it
type NestedVoting struct {
	ID                      exported.NestedVotingID                             `json:"id"`
	VotingConfigID          exported.NestedVotingConfigID                       `json:"voting_config_id"`
	RemoteUnionID           union.Principal                                     `json:"remote_union_id"`
	RemoteVotingID          votingexported.VotingRef                            `json:"remote_voting_id"`
	CreatedAt               time.Time                                           `json:"created_at"`
	SharesInfo              sharesexported.SharesInfo                           `json:"shares_info"`
	TotalVotingPowerByGroup map[groupexported.GroupID]sdkmath.Uint              `json:"total_voting_power_by_group"`
	Frozen                  bool                                                `json:"frozen"`
	Round                   uint32                                              `json:"round"`
	Choices                 []votingexported.ChoiceID                           `json:"choices"`
	Winners                 []votingexported.ChoiceID                           `json:"winners"`
	Losers                  []votingexported.ChoiceID                           `json:"losers"`
	ChoicesMap              map[votingexported.ChoiceID]votingexported.ChoiceID `json:"choices_map"`
	// Forwarded is the last vote the remote union accepted, keyed by remote choice
	Forwarded map[votingexported.ChoiceID]sdkmath.LegacyDec `json:"forwarded,omitempty"`
	// Locked holds the forwarded fractions of remote choices that won. The remote union keeps them allocated.
	Locked map[votingexported.ChoiceID]sdkmath.LegacyDec `json:"locked,omitempty"`
}

// IsActive returns true if the local choice still competes
func (m NestedVoting) IsActive(id votingexported.ChoiceID) bool {
	return slices.Contains(m.Choices, id)
}

// UnlockedFraction returns the fraction of the union's remote shares that is not locked in remote winners
func (m NestedVoting) UnlockedFraction() sdkmath.LegacyDec {
	locked := utils.SumFractions(m.Locked)
	if locked.GTE(utils.OneFraction) {
		return sdkmath.LegacyZeroDec()
	}

	return utils.OneFraction.Sub(locked)
}

// HasGroup returns true if members of the group can vote
func (m NestedVoting) HasGroup(id groupexported.GroupID) bool {
	_, ok := m.TotalVotingPowerByGroup[id]
	return ok
}

// AllChoices returns the ids of every local choice owned by the nested voting
func (m NestedVoting) AllChoices() []votingexported.ChoiceID {
	return slices.Concat(m.Choices, m.Winners, m.Losers)
}

// Choice is the local mirror of a remote choice
type Choice struct {
	ID                 votingexported.ChoiceID                         `json:"id"`
	NestedVotingID     exported.NestedVotingID                         `json:"nested_voting_id"`
	RemoteChoiceID     votingexported.ChoiceID                         `json:"remote_choice_id"`
	Name               string                                          `json:"name"`
	VotingPowerByGroup map[groupexported.GroupID]tokenexported.TokenID `json:"voting_power_by_group"`
}

// VotingResponse is a remote common voting together with its choices
type VotingResponse struct {
	Voting  votingtypes.Voting   `json:"voting"`
	Choices []votingtypes.Choice `json:"choices"`
}

// NestedVotingResponse is a remote nested voting together with its choices
type NestedVotingResponse struct {
	NestedVoting NestedVoting `json:"nested_voting"`
	Choices      []Choice     `json:"choices"`
}
