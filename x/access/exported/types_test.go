package exported_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/testutils/rand"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/access/exported"
	groupexported "github.com/uniongov/union-core/x/group/exported"
)

type balances map[groupexported.GroupID]map[union.Principal]sdkmath.Uint

func (b balances) BalanceOf(_ context.Context, id groupexported.GroupID, principal union.Principal) sdkmath.Uint {
	if balance, ok := b[id][principal]; ok {
		return balance
	}

	return sdkmath.ZeroUint()
}

func TestIsCallerAllowed(t *testing.T) {
	ctx := context.Background()
	alice, bob := rand.Principal(), rand.Principal()+"b"
	b := balances{1: {alice: sdkmath.NewUint(5)}}

	assert.True(t, exported.IsCallerAllowed(ctx, b, bob, []exported.Allowee{exported.Everyone()}))
	assert.True(t, exported.IsCallerAllowed(ctx, b, bob, []exported.Allowee{exported.Profile(bob)}))
	assert.False(t, exported.IsCallerAllowed(ctx, b, alice, []exported.Allowee{exported.Profile(bob)}))

	assert.True(t, exported.IsCallerAllowed(ctx, b, alice, []exported.Allowee{exported.Group(1, sdkmath.NewUint(5))}))
	assert.False(t, exported.IsCallerAllowed(ctx, b, alice, []exported.Allowee{exported.Group(1, sdkmath.NewUint(6))}))
	assert.True(t, exported.IsCallerAllowed(ctx, b, bob, []exported.Allowee{exported.Group(1, sdkmath.ZeroUint())}))

	assert.True(t, exported.IsCallerAllowed(ctx, b, alice, []exported.Allowee{exported.Profile(bob), exported.Group(1, sdkmath.OneUint())}))
	assert.False(t, exported.IsCallerAllowed(ctx, b, alice, nil))
}

func TestAllowee_JSON(t *testing.T) {
	var allowee exported.Allowee
	assert.NoError(t, json.Unmarshal([]byte(`{"group":{"group_id":3}}`), &allowee))
	assert.NoError(t, allowee.ValidateBasic())
	assert.True(t, allowee.Group.MinShares.IsZero())

	assert.Error(t, exported.Allowee{}.ValidateBasic())
	both := exported.Everyone()
	both.Profile = exported.Profile("alice").Profile
	assert.Error(t, both.ValidateBasic())
}
