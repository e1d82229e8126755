package keeper

import (
	"context"
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"golang.org/x/exp/maps"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	"github.com/uniongov/union-core/x/token/exported"
	"github.com/uniongov/union-core/x/token/types"
)

var (
	tokenPrefix = key.FromStr("token")
	counterKey  = key.FromStr("counter")
)

// Keeper owns all token ledgers
type Keeper struct {
	store  utils.KVStore
	logger log.Logger
}

// NewKeeper returns a new token keeper
func NewKeeper(db dbm.DB, logger log.Logger) Keeper {
	return Keeper{
		store:  utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		logger: logger,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CreateToken creates an empty token and returns its id
func (k Keeper) CreateToken(_ context.Context, acceptable bool, transferable bool) exported.TokenID {
	id := utils.NewCounter[exported.TokenID](counterKey, k.store).Incr()
	k.setToken(types.NewToken(id, acceptable, transferable))

	return id
}

// GetToken returns the token with the given id
func (k Keeper) GetToken(_ context.Context, id exported.TokenID) (types.Token, bool) {
	return k.getToken(id)
}

// DeleteToken removes the token with the given id
func (k Keeper) DeleteToken(_ context.Context, id exported.TokenID) {
	k.store.Delete(tokenPrefix.Append(key.FromUInt(id)))
}

// IsAcceptable returns true if the token exists and requires minted shares to be accepted
func (k Keeper) IsAcceptable(_ context.Context, id exported.TokenID) bool {
	token, ok := k.getToken(id)

	return ok && token.Acceptable
}

// BalanceOf returns the accepted balance of the owner, zero if the token does not exist
func (k Keeper) BalanceOf(_ context.Context, id exported.TokenID, owner union.Principal) sdkmath.Uint {
	token, ok := k.getToken(id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return token.BalanceOf(owner)
}

// UnacceptedBalanceOf returns the unaccepted balance of the owner, zero if the token does not exist
func (k Keeper) UnacceptedBalanceOf(_ context.Context, id exported.TokenID, owner union.Principal) sdkmath.Uint {
	token, ok := k.getToken(id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return token.UnacceptedBalanceOf(owner)
}

// TotalSupply returns the accepted total supply, zero if the token does not exist
func (k Keeper) TotalSupply(_ context.Context, id exported.TokenID) sdkmath.Uint {
	token, ok := k.getToken(id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return token.TotalSupply
}

// Holders returns all principals with an accepted or unaccepted balance, sorted
func (k Keeper) Holders(_ context.Context, id exported.TokenID) []union.Principal {
	token, ok := k.getToken(id)
	if !ok {
		return nil
	}

	holders := append(maps.Keys(token.Balances), maps.Keys(token.UnacceptedBalances)...)
	slices.Sort(holders)

	return slices.Compact(holders)
}

// Mint adds shares to the owner's balance
func (k Keeper) Mint(ctx context.Context, id exported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	var balance sdkmath.Uint
	err := k.update(id, func(token *types.Token) error {
		balance = token.Mint(to, qty)
		return nil
	})

	return balance, err
}

// Burn removes shares from the owner's balance
func (k Keeper) Burn(_ context.Context, id exported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	var balance sdkmath.Uint
	err := k.update(id, func(token *types.Token) (err error) {
		balance, err = token.Burn(from, qty)
		return err
	})

	return balance, err
}

// MintUnaccepted adds shares to the owner's unaccepted balance
func (k Keeper) MintUnaccepted(_ context.Context, id exported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	var balance sdkmath.Uint
	err := k.update(id, func(token *types.Token) error {
		balance = token.MintUnaccepted(to, qty)
		return nil
	})

	return balance, err
}

// BurnUnaccepted removes shares from the owner's unaccepted balance
func (k Keeper) BurnUnaccepted(_ context.Context, id exported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	var balance sdkmath.Uint
	err := k.update(id, func(token *types.Token) (err error) {
		balance, err = token.BurnUnaccepted(from, qty)
		return err
	})

	return balance, err
}

// Transfer moves shares between two owners
func (k Keeper) Transfer(_ context.Context, id exported.TokenID, from, to union.Principal, qty sdkmath.Uint) error {
	return k.update(id, func(token *types.Token) error {
		return token.Transfer(from, to, qty)
	})
}

// Accept moves shares from the owner's unaccepted to the accepted balance
func (k Keeper) Accept(_ context.Context, id exported.TokenID, of union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	var balance sdkmath.Uint
	err := k.update(id, func(token *types.Token) (err error) {
		balance, err = token.Accept(of, qty)
		return err
	})

	return balance, err
}

// MakeAcceptable switches the token to require acceptance of minted shares
func (k Keeper) MakeAcceptable(_ context.Context, id exported.TokenID) error {
	return k.update(id, func(token *types.Token) error {
		token.MakeAcceptable()
		return nil
	})
}

// MakeNotAcceptable switches the token to credit minted shares directly
func (k Keeper) MakeNotAcceptable(_ context.Context, id exported.TokenID) error {
	return k.update(id, func(token *types.Token) error {
		token.MakeNotAcceptable()
		return nil
	})
}

// update applies f to the token and persists the result only if f succeeds
func (k Keeper) update(id exported.TokenID, f func(token *types.Token) error) error {
	token, ok := k.getToken(id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "token %s", id)
	}

	if err := f(&token); err != nil {
		return err
	}

	k.setToken(token)

	return nil
}

func (k Keeper) getToken(id exported.TokenID) (token types.Token, ok bool) {
	return token, k.store.Get(tokenPrefix.Append(key.FromUInt(id)), &token)
}

func (k Keeper) setToken(token types.Token) {
	k.store.Set(tokenPrefix.Append(key.FromUInt(token.ID)), token)
}
