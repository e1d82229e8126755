package types

import (
	"context"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	permissiontypes "github.com/uniongov/union-core/x/permission/types"
)

// PermissionKeeper provides permissions and their target index
type PermissionKeeper interface {
	GetPermission(ctx context.Context, id permissionexported.PermissionID) (permissiontypes.Permission, bool)
	GetPermissionIDsByTarget(ctx context.Context, target permissionexported.Target) []permissionexported.PermissionID
	GetBlacklistPermissionIDs(ctx context.Context) []permissionexported.PermissionID
}

// GroupKeeper provides groups, profiles and balances
type GroupKeeper interface {
	HasGroup(ctx context.Context, id groupexported.GroupID) bool
	HasProfile(ctx context.Context, id union.Principal) bool
	BalanceOf(ctx context.Context, id groupexported.GroupID, principal union.Principal) sdkmath.Uint
}
