package keeper

import (
	"context"
	"fmt"

	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	permissiontypes "github.com/uniongov/union-core/x/permission/types"
)

// Hooks refuses deleting permissions that voting configs still grant
type Hooks struct {
	k Keeper
}

var _ permissiontypes.PermissionHooks = Hooks{}

// Hooks returns the permission hooks of the voting keeper
func (k Keeper) Hooks() Hooks {
	return Hooks{k}
}

// BeforePermissionDeleted implements permissiontypes.PermissionHooks.
func (h Hooks) BeforePermissionDeleted(ctx context.Context, id permissionexported.PermissionID) error {
	if h.k.IsPermissionInUse(ctx, id) {
		return fmt.Errorf("permission %s is used by a voting config", id)
	}

	return nil
}
