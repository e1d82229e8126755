package app

import (
	"context"
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"

	"github.com/uniongov/union-core/testutils/rand"
	union "github.com/uniongov/union-core/types"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	groupTypes "github.com/uniongov/union-core/x/group/types"
	permissionTypes "github.com/uniongov/union-core/x/permission/types"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

func TestApp_RunQuery(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(unionA, NewNetwork(), &testClock{now: rand.Time()})

	genesis := DefaultGenesisState(unionA)
	genesis.Groups = []GenesisGroup{{ID: council, Name: "Council", Acceptable: true, Members: map[union.Principal]sdkmath.Uint{
		"alice": sdkmath.NewUint(60),
		"bob":   sdkmath.NewUint(40),
	}}}
	assert.NoError(t, app.InitGenesis(ctx, genesis))

	t.Run("groups", func(t *testing.T) {
		var groups []groupTypes.Group
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryGroups)), &groups))
		assert.Len(t, groups, 2)

		var group groupTypes.Group
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryGroup, "1")), &group))
		assert.Equal(t, "Council", group.Name)

		var of []groupExported.GroupID
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryGroupsOf, "alice")), &of))
		assert.Equal(t, []groupExported.GroupID{council}, of)
	})

	t.Run("balance", func(t *testing.T) {
		var balance BalanceResponse
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryBalance, "1", "alice")), &balance))
		assert.True(t, balance.Balance.Equal(sdkmath.NewUint(60)))
		assert.True(t, balance.Unaccepted.IsZero())
		assert.True(t, balance.TotalSupply.Equal(sdkmath.NewUint(100)))
	})

	t.Run("access", func(t *testing.T) {
		var permissions []permissionTypes.Permission
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryPermissions)), &permissions))
		assert.Len(t, permissions, 1)

		var hasAccess bool
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryHasAccess, "create_group", "alice")), &hasAccess))
		assert.True(t, hasAccess)
	})

	t.Run("votings", func(t *testing.T) {
		var configs []votingTypes.VotingConfig
		assert.NoError(t, json.Unmarshal(funcs.Must(app.RunQuery(ctx, QueryVotingConfigs)), &configs))
		assert.Empty(t, configs)

		_, err := app.RunQuery(ctx, QueryVoting, "0")
		assert.ErrorIs(t, err, votingTypes.ErrNotFound)
	})

	t.Run("malformed queries", func(t *testing.T) {
		_, err := app.RunQuery(ctx)
		assert.ErrorIs(t, err, ErrUnknownRoute)

		_, err = app.RunQuery(ctx, "launch_rocket")
		assert.ErrorIs(t, err, ErrUnknownRoute)

		_, err = app.RunQuery(ctx, QueryGroup)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = app.RunQuery(ctx, QueryGroup, "one")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = app.RunQuery(ctx, QueryGroup, "7")
		assert.ErrorIs(t, err, groupTypes.ErrNotFound)
	})
}
