package keeper_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/testutils/rand"
	"github.com/uniongov/union-core/x/token/keeper"
	"github.com/uniongov/union-core/x/token/types"
)

func setup() (context.Context, keeper.Keeper) {
	return context.Background(), keeper.NewKeeper(dbm.NewMemDB(), log.TestingLogger())
}

func TestKeeper_CreateToken(t *testing.T) {
	ctx, k := setup()

	first := k.CreateToken(ctx, false, true)
	second := k.CreateToken(ctx, true, false)
	assert.NotEqual(t, first, second)

	token, ok := k.GetToken(ctx, second)
	assert.True(t, ok)
	assert.True(t, token.Acceptable)
	assert.False(t, token.Transferable)

	k.DeleteToken(ctx, first)
	_, ok = k.GetToken(ctx, first)
	assert.False(t, ok)
}

func TestKeeper_Ledger(t *testing.T) {
	ctx, k := setup()
	id := k.CreateToken(ctx, false, true)
	alice, bob := rand.Principal(), rand.Principal()+"b"

	_, err := k.Mint(ctx, id, alice, sdkmath.NewUint(10))
	assert.NoError(t, err)
	assert.NoError(t, k.Transfer(ctx, id, alice, bob, sdkmath.NewUint(4)))
	assert.ErrorIs(t, k.Transfer(ctx, id, alice, bob, sdkmath.NewUint(7)), types.ErrInsufficientBalance)

	assert.True(t, k.BalanceOf(ctx, id, alice).Equal(sdkmath.NewUint(6)))
	assert.True(t, k.BalanceOf(ctx, id, bob).Equal(sdkmath.NewUint(4)))
	assert.True(t, k.TotalSupply(ctx, id).Equal(sdkmath.NewUint(10)))

	balance, err := k.Burn(ctx, id, bob, sdkmath.NewUint(4))
	assert.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.True(t, k.TotalSupply(ctx, id).Equal(sdkmath.NewUint(6)))
}

func TestKeeper_Acceptable(t *testing.T) {
	ctx, k := setup()
	id := k.CreateToken(ctx, true, false)
	alice := rand.Principal()

	_, err := k.MintUnaccepted(ctx, id, alice, sdkmath.NewUint(5))
	assert.NoError(t, err)
	assert.True(t, k.BalanceOf(ctx, id, alice).IsZero())
	assert.True(t, k.UnacceptedBalanceOf(ctx, id, alice).Equal(sdkmath.NewUint(5)))

	balance, err := k.Accept(ctx, id, alice, sdkmath.NewUint(3))
	assert.NoError(t, err)
	assert.True(t, balance.Equal(sdkmath.NewUint(3)))

	assert.NoError(t, k.MakeNotAcceptable(ctx, id))
	assert.True(t, k.BalanceOf(ctx, id, alice).Equal(sdkmath.NewUint(5)))

	assert.NoError(t, k.MakeAcceptable(ctx, id))
	assert.True(t, k.BalanceOf(ctx, id, alice).IsZero())
	assert.True(t, k.UnacceptedBalanceOf(ctx, id, alice).Equal(sdkmath.NewUint(5)))
}

func TestKeeper_UnknownToken(t *testing.T) {
	ctx, k := setup()

	_, err := k.Mint(ctx, 42, rand.Principal(), sdkmath.OneUint())
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.True(t, k.BalanceOf(ctx, 42, rand.Principal()).IsZero())
	assert.True(t, k.TotalSupply(ctx, 42).IsZero())
}
