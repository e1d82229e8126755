package keeper

import (
	"context"
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	"github.com/uniongov/union-core/x/access/exported"
	"github.com/uniongov/union-core/x/access/types"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
)

var (
	configPrefix     = key.FromStr("config")
	permissionPrefix = key.FromStr("permission")
	counterKey       = key.FromStr("counter")
)

// Keeper is the access config registry
type Keeper struct {
	store       utils.KVStore
	permissions types.PermissionKeeper
	groups      types.GroupKeeper
	logger      log.Logger
}

// NewKeeper returns a new access keeper
func NewKeeper(db dbm.DB, permissions types.PermissionKeeper, groups types.GroupKeeper, logger log.Logger) Keeper {
	return Keeper{
		store:       utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		permissions: permissions,
		groups:      groups,
		logger:      logger,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CreateAccessConfig registers a new access config
func (k Keeper) CreateAccessConfig(ctx context.Context, name, description string, permissions []permissionexported.PermissionID, allowees []exported.Allowee) (exported.AccessConfigID, error) {
	counter := utils.NewCounter[exported.AccessConfigID](counterKey, k.store)

	config := types.AccessConfig{
		ID:          counter.Curr(),
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
		Permissions: permissions,
		Allowees:    allowees,
	}
	if err := k.validate(ctx, config); err != nil {
		return 0, err
	}

	counter.Incr()
	k.setConfig(config)
	k.index(config)

	k.Logger().Info("created access config", "config", config.ID, "name", config.Name)

	return config.ID, nil
}

// UpdateAccessConfig replaces an access config
func (k Keeper) UpdateAccessConfig(ctx context.Context, id exported.AccessConfigID, name, description string, permissions []permissionexported.PermissionID, allowees []exported.Allowee) error {
	old, ok := k.GetAccessConfig(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "access config %s", id)
	}

	config := types.AccessConfig{
		ID:          id,
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
		Permissions: permissions,
		Allowees:    allowees,
	}
	if err := k.validate(ctx, config); err != nil {
		return err
	}

	k.unindex(old)
	k.setConfig(config)
	k.index(config)

	k.Logger().Info("updated access config", "config", id)

	return nil
}

// DeleteAccessConfig removes an access config
func (k Keeper) DeleteAccessConfig(ctx context.Context, id exported.AccessConfigID) error {
	config, ok := k.GetAccessConfig(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "access config %s", id)
	}

	k.unindex(config)
	k.store.Delete(configPrefix.Append(key.FromUInt(id)))

	k.Logger().Info("deleted access config", "config", id)

	return nil
}

// GetAccessConfig returns the access config with the given id
func (k Keeper) GetAccessConfig(_ context.Context, id exported.AccessConfigID) (config types.AccessConfig, ok bool) {
	return config, k.store.Get(configPrefix.Append(key.FromUInt(id)), &config)
}

// GetAccessConfigs returns all access configs ordered by id
func (k Keeper) GetAccessConfigs(_ context.Context) []types.AccessConfig {
	return utils.GetAll[types.AccessConfig](k.store, configPrefix)
}

// GetAccessConfigIDsByPermission returns the ids of all access configs referencing the permission, in ascending order
func (k Keeper) GetAccessConfigIDsByPermission(_ context.Context, id permissionexported.PermissionID) []exported.AccessConfigID {
	return utils.GetAll[exported.AccessConfigID](k.store, permissionPrefix.Append(key.FromUInt(id)))
}

// ProgramFits returns true if any permission of the config allows the program
func (k Keeper) ProgramFits(ctx context.Context, config types.AccessConfig, program permissionexported.Program) bool {
	for _, id := range config.Permissions {
		permission, ok := k.permissions.GetPermission(ctx, id)
		if ok && permission.IsProgramAllowed(program) {
			return true
		}
	}

	return false
}

// CallerAllowed returns true if the caller matches any allowee of the config
func (k Keeper) CallerAllowed(ctx context.Context, config types.AccessConfig, caller union.Principal) bool {
	return exported.IsCallerAllowed(ctx, k.groups, caller, config.Allowees)
}

// CallerHasAccess returns true if any access config grants the caller a permission covering the endpoint.
// Only permissions listing the endpoint, its canister, or blacklist permissions are considered.
func (k Keeper) CallerHasAccess(ctx context.Context, endpoint permissionexported.Endpoint, caller union.Principal) bool {
	candidates := append(k.permissions.GetPermissionIDsByTarget(ctx, permissionexported.EndpointTarget(endpoint)),
		k.permissions.GetPermissionIDsByTarget(ctx, permissionexported.Canister(endpoint.CanisterID))...)
	candidates = append(candidates, k.permissions.GetBlacklistPermissionIDs(ctx)...)

	slices.Sort(candidates)
	for _, id := range slices.Compact(candidates) {
		permission, ok := k.permissions.GetPermission(ctx, id)
		if !ok || !permission.IsTarget(&endpoint) {
			continue
		}

		for _, configID := range k.GetAccessConfigIDsByPermission(ctx, id) {
			config, ok := k.GetAccessConfig(ctx, configID)
			if ok && k.CallerAllowed(ctx, config, caller) {
				return true
			}
		}
	}

	return false
}

// AssertCallerHasAccess returns ErrAccessDenied unless the caller has access to the endpoint
func (k Keeper) AssertCallerHasAccess(ctx context.Context, endpoint permissionexported.Endpoint, caller union.Principal) error {
	if !k.CallerHasAccess(ctx, endpoint, caller) {
		return errorsmod.Wrapf(types.ErrAccessDenied, "%s cannot call %s", caller, endpoint)
	}

	return nil
}

func (k Keeper) validate(ctx context.Context, config types.AccessConfig) error {
	if err := config.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	for _, id := range config.Permissions {
		if _, ok := k.permissions.GetPermission(ctx, id); !ok {
			return errorsmod.Wrapf(types.ErrValidation, "permission %s does not exist", id)
		}
	}

	for _, allowee := range config.Allowees {
		switch {
		case allowee.Group != nil && !k.groups.HasGroup(ctx, allowee.Group.GroupID):
			return errorsmod.Wrapf(types.ErrValidation, "group %s does not exist", allowee.Group.GroupID)
		case allowee.Profile != nil && !k.groups.HasProfile(ctx, *allowee.Profile):
			return errorsmod.Wrapf(types.ErrValidation, "profile %s does not exist", *allowee.Profile)
		}
	}

	return nil
}

func (k Keeper) index(config types.AccessConfig) {
	for _, id := range config.Permissions {
		k.store.Set(permissionPrefix.Append(key.FromUInt(id)).Append(key.FromUInt(config.ID)), config.ID)
	}
}

func (k Keeper) unindex(config types.AccessConfig) {
	for _, id := range config.Permissions {
		k.store.Delete(permissionPrefix.Append(key.FromUInt(id)).Append(key.FromUInt(config.ID)))
	}
}

func (k Keeper) setConfig(config types.AccessConfig) {
	k.store.Set(configPrefix.Append(key.FromUInt(config.ID)), config)
}
