package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	"github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/group/types"
)

var (
	groupPrefix   = key.FromStr("group")
	profilePrefix = key.FromStr("profile")
	counterKey    = key.FromStr("counter")
)

// Keeper is the group registry
type Keeper struct {
	store  utils.KVStore
	tokens types.TokenKeeper
	hooks  types.GroupHooks
	logger log.Logger
}

// NewKeeper returns a new group keeper
func NewKeeper(db dbm.DB, tokens types.TokenKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		store:  utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		tokens: tokens,
		logger: logger,
	}
}

// SetHooks sets the group hooks. Panics if called more than once.
func (k *Keeper) SetHooks(hooks types.GroupHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set group hooks twice")
	}

	k.hooks = hooks

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// InitHasProfileGroup creates the has-profile group. Panics if any group exists already.
func (k Keeper) InitHasProfileGroup(ctx context.Context) {
	if _, ok := k.GetGroup(ctx, exported.HasProfileGroupID); ok {
		panic("has-profile group already exists")
	}

	id, err := k.CreateGroup(ctx, types.HasProfileGroupName, "every registered profile holds one share", false, false)
	if err != nil {
		panic(err)
	}

	if id != exported.HasProfileGroupID {
		panic(fmt.Errorf("has-profile group must be the first group, got id %s", id))
	}
}

// CreateGroup creates a new group with an empty token
func (k Keeper) CreateGroup(ctx context.Context, name, description string, acceptable, transferable bool) (exported.GroupID, error) {
	group := types.Group{
		ID:          utils.NewCounter[exported.GroupID](counterKey, k.store).Curr(),
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
	}

	if err := group.ValidateBasic(); err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	utils.NewCounter[exported.GroupID](counterKey, k.store).Incr()
	group.TokenID = k.tokens.CreateToken(ctx, acceptable, transferable)
	k.setGroup(group)

	k.Logger().Info("created group", "group", group.ID, "name", group.Name, "token", group.TokenID)

	return group.ID, nil
}

// UpdateGroup changes the name and description of a group
func (k Keeper) UpdateGroup(ctx context.Context, id exported.GroupID, name, description string) error {
	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	group.Name = utils.NormalizeString(name)
	group.Description = utils.NormalizeString(description)
	if err := group.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	k.setGroup(group)

	return nil
}

// DeleteGroup removes a group and its token
func (k Keeper) DeleteGroup(ctx context.Context, id exported.GroupID) error {
	if id == exported.HasProfileGroupID {
		return errorsmod.Wrap(types.ErrValidation, "the has-profile group cannot be deleted")
	}

	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	k.tokens.DeleteToken(ctx, group.TokenID)
	k.store.Delete(groupPrefix.Append(key.FromUInt(id)))

	if k.hooks != nil {
		k.hooks.AfterGroupDeleted(ctx, id)
	}

	k.Logger().Info("deleted group", "group", id)

	return nil
}

// GetGroup returns the group with the given id
func (k Keeper) GetGroup(_ context.Context, id exported.GroupID) (group types.Group, ok bool) {
	return group, k.store.Get(groupPrefix.Append(key.FromUInt(id)), &group)
}

// HasGroup returns true if the group exists
func (k Keeper) HasGroup(_ context.Context, id exported.GroupID) bool {
	return k.store.Has(groupPrefix.Append(key.FromUInt(id)))
}

// GetGroups returns all groups ordered by id
func (k Keeper) GetGroups(_ context.Context) []types.Group {
	return utils.GetAll[types.Group](k.store, groupPrefix)
}

// GetGroupsOf returns the ids of all groups in which the principal holds accepted shares
func (k Keeper) GetGroupsOf(ctx context.Context, principal union.Principal) []exported.GroupID {
	var ids []exported.GroupID
	for _, group := range k.GetGroups(ctx) {
		if !k.tokens.BalanceOf(ctx, group.TokenID, principal).IsZero() {
			ids = append(ids, group.ID)
		}
	}

	return ids
}

// BalanceOf returns the accepted shares of the principal in the group, zero if the group does not exist
func (k Keeper) BalanceOf(ctx context.Context, id exported.GroupID, principal union.Principal) sdkmath.Uint {
	group, ok := k.GetGroup(ctx, id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return k.tokens.BalanceOf(ctx, group.TokenID, principal)
}

// UnacceptedBalanceOf returns the unaccepted shares of the principal in the group, zero if the group does not exist
func (k Keeper) UnacceptedBalanceOf(ctx context.Context, id exported.GroupID, principal union.Principal) sdkmath.Uint {
	group, ok := k.GetGroup(ctx, id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return k.tokens.UnacceptedBalanceOf(ctx, group.TokenID, principal)
}

// TotalSupply returns the accepted total supply of the group, zero if the group does not exist
func (k Keeper) TotalSupply(ctx context.Context, id exported.GroupID) sdkmath.Uint {
	group, ok := k.GetGroup(ctx, id)
	if !ok {
		return sdkmath.ZeroUint()
	}

	return k.tokens.TotalSupply(ctx, group.TokenID)
}

// Mint issues shares to the principal. Shares of an acceptable group have to be accepted before they count.
func (k Keeper) Mint(ctx context.Context, id exported.GroupID, to union.Principal, qty sdkmath.Uint) error {
	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	if k.tokens.IsAcceptable(ctx, group.TokenID) {
		_, err = k.tokens.MintUnaccepted(ctx, group.TokenID, to, qty)
	} else {
		_, err = k.tokens.Mint(ctx, group.TokenID, to, qty)
	}
	if err != nil {
		return err
	}

	k.afterBalancesChanged(ctx, id, to)

	return nil
}

// Burn destroys accepted shares of the principal
func (k Keeper) Burn(ctx context.Context, id exported.GroupID, from union.Principal, qty sdkmath.Uint) error {
	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	if _, err := k.tokens.Burn(ctx, group.TokenID, from, qty); err != nil {
		return err
	}

	k.afterBalancesChanged(ctx, id, from)

	return nil
}

// BurnUnaccepted destroys unaccepted shares of the principal
func (k Keeper) BurnUnaccepted(ctx context.Context, id exported.GroupID, from union.Principal, qty sdkmath.Uint) error {
	group, err := k.mustGetAcceptableGroup(ctx, id)
	if err != nil {
		return err
	}

	_, err = k.tokens.BurnUnaccepted(ctx, group.TokenID, from, qty)

	return err
}

// Transfer moves accepted shares between principals
func (k Keeper) Transfer(ctx context.Context, id exported.GroupID, from, to union.Principal, qty sdkmath.Uint) error {
	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	if err := k.tokens.Transfer(ctx, group.TokenID, from, to, qty); err != nil {
		return err
	}

	k.afterBalancesChanged(ctx, id, from, to)

	return nil
}

// Accept turns unaccepted shares of the principal into accepted shares
func (k Keeper) Accept(ctx context.Context, id exported.GroupID, of union.Principal, qty sdkmath.Uint) error {
	group, err := k.mustGetAcceptableGroup(ctx, id)
	if err != nil {
		return err
	}

	if _, err := k.tokens.Accept(ctx, group.TokenID, of, qty); err != nil {
		return err
	}

	k.afterBalancesChanged(ctx, id, of)

	return nil
}

// Decline destroys unaccepted shares on behalf of their receiver
func (k Keeper) Decline(ctx context.Context, id exported.GroupID, of union.Principal, qty sdkmath.Uint) error {
	return k.BurnUnaccepted(ctx, id, of, qty)
}

// SetAcceptable switches whether minted shares have to be accepted by their receivers
func (k Keeper) SetAcceptable(ctx context.Context, id exported.GroupID, acceptable bool) error {
	if id == exported.HasProfileGroupID {
		return errorsmod.Wrap(types.ErrValidation, "the has-profile group cannot become acceptable")
	}

	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return err
	}

	if k.tokens.IsAcceptable(ctx, group.TokenID) == acceptable {
		return nil
	}

	holders := k.tokens.Holders(ctx, group.TokenID)

	if acceptable {
		err = k.tokens.MakeAcceptable(ctx, group.TokenID)
	} else {
		err = k.tokens.MakeNotAcceptable(ctx, group.TokenID)
	}
	if err != nil {
		return err
	}

	k.afterBalancesChanged(ctx, id, holders...)

	return nil
}

func (k Keeper) mustGetGroup(ctx context.Context, id exported.GroupID) (types.Group, error) {
	group, ok := k.GetGroup(ctx, id)
	if !ok {
		return types.Group{}, errorsmod.Wrapf(types.ErrNotFound, "group %s", id)
	}

	return group, nil
}

func (k Keeper) mustGetAcceptableGroup(ctx context.Context, id exported.GroupID) (types.Group, error) {
	group, err := k.mustGetGroup(ctx, id)
	if err != nil {
		return types.Group{}, err
	}

	if !k.tokens.IsAcceptable(ctx, group.TokenID) {
		return types.Group{}, errorsmod.Wrapf(types.ErrInvalidState, "group %s does not require accepting shares", id)
	}

	return group, nil
}

func (k Keeper) afterBalancesChanged(ctx context.Context, id exported.GroupID, principals ...union.Principal) {
	if k.hooks == nil {
		return
	}

	k.hooks.AfterBalancesChanged(ctx, id, principals...)
}

func (k Keeper) setGroup(group types.Group) {
	k.store.Set(groupPrefix.Append(key.FromUInt(group.ID)), group)
}
