package keeper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/shares/exported"
	"github.com/uniongov/union-core/x/shares/types"
)

var (
	balancePrefix     = key.FromStr("balance")
	totalSupplyPrefix = key.FromStr("total_supply")
)

// Keeper records share checkpoints and issues signed snapshots of them
type Keeper struct {
	store  utils.KVStore
	groups types.GroupKeeper
	signer *btcec.PrivateKey
	clock  utils.Clock
	logger log.Logger
}

// NewKeeper returns a new shares keeper that signs snapshots with the given key
func NewKeeper(db dbm.DB, groups types.GroupKeeper, signer *btcec.PrivateKey, clock utils.Clock, logger log.Logger) Keeper {
	return Keeper{
		store:  utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		groups: groups,
		signer: signer,
		clock:  clock,
		logger: logger,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// PublicKey returns the compressed public key snapshots are signed with
func (k Keeper) PublicKey() []byte {
	return k.signer.PubKey().SerializeCompressed()
}

// Checkpoint records the current balances of the given principals and the total supply of the group
func (k Keeper) Checkpoint(ctx context.Context, groupID groupexported.GroupID, principals ...union.Principal) {
	now := k.clock.Now()

	for _, principal := range principals {
		k.store.Set(balanceKey(groupID, principal).Append(key.FromTime(now)), types.Checkpoint{
			Amount:    k.groups.BalanceOf(ctx, groupID, principal),
			Timestamp: now,
		})
	}

	k.store.Set(totalSupplyPrefix.Append(key.FromUInt(groupID)).Append(key.FromTime(now)), types.Checkpoint{
		Amount:    k.groups.TotalSupply(ctx, groupID),
		Timestamp: now,
	})
}

// GetSharesInfoAt returns a signed snapshot of the principal's balance in the group as of the given time
func (k Keeper) GetSharesInfoAt(ctx context.Context, groupID groupexported.GroupID, principal union.Principal, at time.Time) (exported.SharesInfo, error) {
	if !k.groups.HasGroup(ctx, groupID) {
		return exported.SharesInfo{}, errorsmod.Wrapf(types.ErrNotFound, "group %s", groupID)
	}

	info := exported.SharesInfo{
		GroupID:     groupID,
		Owner:       principal,
		Balance:     k.amountAt(balanceKey(groupID, principal), at),
		TotalSupply: k.amountAt(totalSupplyPrefix.Append(key.FromUInt(groupID)), at),
		Timestamp:   at,
	}

	return info.Sign(k.signer), nil
}

// VerifySharesInfo checks that the snapshot was signed by this union
func (k Keeper) VerifySharesInfo(info exported.SharesInfo) error {
	if !bytes.Equal(info.PublicKey, k.PublicKey()) {
		return errorsmod.Wrap(types.ErrInvalidSignature, "unknown signer")
	}

	if err := info.Verify(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidSignature, err.Error())
	}

	return nil
}

func (k Keeper) amountAt(prefix key.Key, at time.Time) sdkmath.Uint {
	var checkpoint types.Checkpoint
	if !k.store.LastBefore(prefix, key.FromTime(at), &checkpoint) {
		return sdkmath.ZeroUint()
	}

	return checkpoint.Amount
}

func balanceKey(groupID groupexported.GroupID, principal union.Principal) key.Key {
	return balancePrefix.Append(key.FromUInt(groupID)).Append(key.FromBz([]byte(principal)))
}
