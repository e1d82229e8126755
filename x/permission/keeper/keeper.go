package keeper

import (
	"context"
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	"github.com/uniongov/union-core/x/permission/exported"
	"github.com/uniongov/union-core/x/permission/types"
)

var (
	permissionPrefix = key.FromStr("permission")
	targetPrefix     = key.FromStr("target")
	blacklistPrefix  = key.FromStr("blacklist")
	counterKey       = key.FromStr("counter")
)

// Keeper is the permission registry
type Keeper struct {
	store  utils.KVStore
	hooks  types.PermissionHooks
	logger log.Logger
}

// NewKeeper returns a new permission keeper
func NewKeeper(db dbm.DB, logger log.Logger) *Keeper {
	return &Keeper{
		store:  utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		logger: logger,
	}
}

// SetHooks sets the permission hooks. Panics if called more than once.
func (k *Keeper) SetHooks(hooks types.PermissionHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set permission hooks twice")
	}

	k.hooks = hooks

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CreatePermission registers a new permission
func (k Keeper) CreatePermission(_ context.Context, name, description string, targets []exported.Target, scope types.Scope) (exported.PermissionID, error) {
	counter := utils.NewCounter[exported.PermissionID](counterKey, k.store)

	permission := types.Permission{
		ID:          counter.Curr(),
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
		Targets:     targets,
		Scope:       scope,
	}
	if err := permission.ValidateBasic(); err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	counter.Incr()
	k.setPermission(permission)
	k.index(permission)

	k.Logger().Info("created permission", "permission", permission.ID, "name", permission.Name, "scope", permission.Scope)

	return permission.ID, nil
}

// UpdatePermission replaces name, description, targets and scope of a permission
func (k Keeper) UpdatePermission(ctx context.Context, id exported.PermissionID, name, description string, targets []exported.Target, scope types.Scope) error {
	old, ok := k.GetPermission(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "permission %s", id)
	}

	permission := types.Permission{
		ID:          id,
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
		Targets:     targets,
		Scope:       scope,
	}
	if err := permission.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	k.unindex(old)
	k.setPermission(permission)
	k.index(permission)

	k.Logger().Info("updated permission", "permission", id)

	return nil
}

// DeletePermission removes a permission that no other module refers to
func (k Keeper) DeletePermission(ctx context.Context, id exported.PermissionID) error {
	permission, ok := k.GetPermission(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "permission %s", id)
	}

	if k.hooks != nil {
		if err := k.hooks.BeforePermissionDeleted(ctx, id); err != nil {
			return errorsmod.Wrap(types.ErrInUse, err.Error())
		}
	}

	k.unindex(permission)
	k.store.Delete(permissionPrefix.Append(key.FromUInt(id)))

	k.Logger().Info("deleted permission", "permission", id)

	return nil
}

// GetPermission returns the permission with the given id
func (k Keeper) GetPermission(_ context.Context, id exported.PermissionID) (permission types.Permission, ok bool) {
	return permission, k.store.Get(permissionPrefix.Append(key.FromUInt(id)), &permission)
}

// HasPermission returns true if the permission exists
func (k Keeper) HasPermission(_ context.Context, id exported.PermissionID) bool {
	return k.store.Has(permissionPrefix.Append(key.FromUInt(id)))
}

// GetPermissions returns all permissions ordered by id
func (k Keeper) GetPermissions(_ context.Context) []types.Permission {
	return utils.GetAll[types.Permission](k.store, permissionPrefix)
}

// GetPermissionIDsByTarget returns the ids of all permissions listing the given target, in ascending order
func (k Keeper) GetPermissionIDsByTarget(_ context.Context, target exported.Target) []exported.PermissionID {
	return utils.GetAll[exported.PermissionID](k.store, targetKey(target))
}

// GetBlacklistPermissionIDs returns the ids of all blacklist permissions, in ascending order
func (k Keeper) GetBlacklistPermissionIDs(_ context.Context) []exported.PermissionID {
	return utils.GetAll[exported.PermissionID](k.store, blacklistPrefix)
}

func (k Keeper) index(permission types.Permission) {
	for _, target := range permission.Targets {
		k.store.Set(targetKey(target).Append(key.FromUInt(permission.ID)), permission.ID)
	}

	if permission.Scope == types.Blacklist {
		k.store.Set(blacklistPrefix.Append(key.FromUInt(permission.ID)), permission.ID)
	}
}

func (k Keeper) unindex(permission types.Permission) {
	for _, target := range permission.Targets {
		k.store.Delete(targetKey(target).Append(key.FromUInt(permission.ID)))
	}

	k.store.Delete(blacklistPrefix.Append(key.FromUInt(permission.ID)))
}

func (k Keeper) setPermission(permission types.Permission) {
	k.store.Set(permissionPrefix.Append(key.FromUInt(permission.ID)), permission)
}

// targets are hex encoded because method names may contain the key delimiter
func targetKey(target exported.Target) key.Key {
	return targetPrefix.Append(key.FromStr(hex.EncodeToString([]byte(target.String()))))
}
