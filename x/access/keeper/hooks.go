package keeper

import (
	"context"
	"fmt"

	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	permissiontypes "github.com/uniongov/union-core/x/permission/types"
)

// Hooks refuses deleting permissions that access configs still reference
type Hooks struct {
	k Keeper
}

var _ permissiontypes.PermissionHooks = Hooks{}

// Hooks returns the permission hooks of the access keeper
func (k Keeper) Hooks() Hooks {
	return Hooks{k}
}

// BeforePermissionDeleted implements permissiontypes.PermissionHooks.
func (h Hooks) BeforePermissionDeleted(ctx context.Context, id permissionexported.PermissionID) error {
	if configs := h.k.GetAccessConfigIDsByPermission(ctx, id); len(configs) > 0 {
		return fmt.Errorf("permission %s is used by access configs %v", id, configs)
	}

	return nil
}
