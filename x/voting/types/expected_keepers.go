package types

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils/events"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	grouptypes "github.com/uniongov/union-core/x/group/types"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	permissiontypes "github.com/uniongov/union-core/x/permission/types"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
)

//go:generate moq -out ./mock/expected_keepers.go -pkg mock . Scheduler Executor

// TokenKeeper provides the ledgers recording the votes for each choice
type TokenKeeper interface {
	CreateToken(ctx context.Context, acceptable bool, transferable bool) tokenexported.TokenID
	DeleteToken(ctx context.Context, id tokenexported.TokenID)
	BalanceOf(ctx context.Context, id tokenexported.TokenID, owner union.Principal) sdkmath.Uint
	TotalSupply(ctx context.Context, id tokenexported.TokenID) sdkmath.Uint
	Mint(ctx context.Context, id tokenexported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	Burn(ctx context.Context, id tokenexported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
}

// GroupKeeper provides groups, profiles and their balances
type GroupKeeper interface {
	GetGroup(ctx context.Context, id groupexported.GroupID) (grouptypes.Group, bool)
	HasGroup(ctx context.Context, id groupexported.GroupID) bool
	HasProfile(ctx context.Context, id union.Principal) bool
	BalanceOf(ctx context.Context, id groupexported.GroupID, principal union.Principal) sdkmath.Uint
	TotalSupply(ctx context.Context, id groupexported.GroupID) sdkmath.Uint
}

// PermissionKeeper provides the permissions a voting config grants to choice programs
type PermissionKeeper interface {
	GetPermission(ctx context.Context, id permissionexported.PermissionID) (permissiontypes.Permission, bool)
	HasPermission(ctx context.Context, id permissionexported.PermissionID) bool
}

// Scheduler delivers tasks after a delay, at least once
type Scheduler interface {
	Schedule(task Task, delay time.Duration) uint64
	Cancel(handle uint64)
}

// Executor executes the remote calls of winning programs
type Executor interface {
	Execute(ctx context.Context, call permissionexported.RemoteCall) ([]byte, error)
}

// Publisher publishes voting events
type Publisher = events.Publisher
