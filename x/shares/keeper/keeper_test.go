package keeper_test

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"

	"github.com/uniongov/union-core/testutils/rand"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	groupkeeper "github.com/uniongov/union-core/x/group/keeper"
	"github.com/uniongov/union-core/x/shares/keeper"
	"github.com/uniongov/union-core/x/shares/types"
	tokenkeeper "github.com/uniongov/union-core/x/token/keeper"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func setup() (context.Context, *groupkeeper.Keeper, keeper.Keeper, *testClock) {
	db := dbm.NewMemDB()
	clock := &testClock{now: rand.Time()}

	groups := groupkeeper.NewKeeper(db, tokenkeeper.NewKeeper(db, log.TestingLogger()), log.TestingLogger())
	shares := keeper.NewKeeper(db, groups, funcs.Must(btcec.NewPrivateKey()), clock, log.TestingLogger())
	groups.SetHooks(shares.Hooks())

	ctx := context.Background()
	groups.InitHasProfileGroup(ctx)

	return ctx, groups, shares, clock
}

func TestKeeper_GetSharesInfoAt(t *testing.T) {
	ctx, groups, shares, clock := setup()
	alice, bob := rand.Principal(), rand.Principal()+"b"

	group := funcs.Must(groups.CreateGroup(ctx, "Council", "", false, true))
	start := clock.now

	clock.now = start.Add(time.Hour)
	assert.NoError(t, groups.Mint(ctx, group, alice, sdkmath.NewUint(10)))

	clock.now = start.Add(2 * time.Hour)
	assert.NoError(t, groups.Transfer(ctx, group, alice, bob, sdkmath.NewUint(4)))

	before := funcs.Must(shares.GetSharesInfoAt(ctx, group, alice, start.Add(time.Minute)))
	assert.True(t, before.Balance.IsZero())
	assert.True(t, before.TotalSupply.IsZero())

	afterMint := funcs.Must(shares.GetSharesInfoAt(ctx, group, alice, start.Add(time.Hour)))
	assert.True(t, afterMint.Balance.Equal(sdkmath.NewUint(10)))
	assert.True(t, afterMint.TotalSupply.Equal(sdkmath.NewUint(10)))
	assert.True(t, afterMint.Timestamp.Equal(start.Add(time.Hour)))

	latest := funcs.Must(shares.GetSharesInfoAt(ctx, group, bob, start.Add(3*time.Hour)))
	assert.True(t, latest.Balance.Equal(sdkmath.NewUint(4)))
	assert.True(t, latest.TotalSupply.Equal(sdkmath.NewUint(10)))
	assert.Equal(t, bob, latest.Owner)

	_, err := shares.GetSharesInfoAt(ctx, groupexported.GroupID(99), alice, clock.now)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestKeeper_VerifySharesInfo(t *testing.T) {
	ctx, groups, shares, clock := setup()
	alice := rand.Principal()
	assert.NoError(t, groups.RegisterProfile(ctx, alice, "Alice", ""))

	info := funcs.Must(shares.GetSharesInfoAt(ctx, groupexported.HasProfileGroupID, alice, clock.now))
	assert.NoError(t, info.ValidateBasic())
	assert.NoError(t, shares.VerifySharesInfo(info))
	assert.True(t, info.Balance.Equal(sdkmath.OneUint()))

	tampered := info
	tampered.Balance = sdkmath.NewUint(2)
	tampered.TotalSupply = sdkmath.NewUint(2)
	assert.ErrorIs(t, shares.VerifySharesInfo(tampered), types.ErrInvalidSignature)

	foreign := info.Sign(funcs.Must(btcec.NewPrivateKey()))
	assert.NoError(t, foreign.Verify())
	assert.ErrorIs(t, shares.VerifySharesInfo(foreign), types.ErrInvalidSignature)
}
