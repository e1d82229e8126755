package types

import (
	"context"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/group/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
)

//go:generate moq -out ./mock/expected_keepers.go -pkg mock . GroupHooks

// TokenKeeper provides the share ledgers backing groups
type TokenKeeper interface {
	CreateToken(ctx context.Context, acceptable bool, transferable bool) tokenexported.TokenID
	DeleteToken(ctx context.Context, id tokenexported.TokenID)
	BalanceOf(ctx context.Context, id tokenexported.TokenID, owner union.Principal) sdkmath.Uint
	UnacceptedBalanceOf(ctx context.Context, id tokenexported.TokenID, owner union.Principal) sdkmath.Uint
	TotalSupply(ctx context.Context, id tokenexported.TokenID) sdkmath.Uint
	Holders(ctx context.Context, id tokenexported.TokenID) []union.Principal
	IsAcceptable(ctx context.Context, id tokenexported.TokenID) bool
	Mint(ctx context.Context, id tokenexported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	Burn(ctx context.Context, id tokenexported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	MintUnaccepted(ctx context.Context, id tokenexported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	BurnUnaccepted(ctx context.Context, id tokenexported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	Transfer(ctx context.Context, id tokenexported.TokenID, from, to union.Principal, qty sdkmath.Uint) error
	Accept(ctx context.Context, id tokenexported.TokenID, of union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	MakeAcceptable(ctx context.Context, id tokenexported.TokenID) error
	MakeNotAcceptable(ctx context.Context, id tokenexported.TokenID) error
}

// GroupHooks are notified about group balance changes
type GroupHooks interface {
	AfterBalancesChanged(ctx context.Context, groupID exported.GroupID, principals ...union.Principal)
	AfterGroupDeleted(ctx context.Context, groupID exported.GroupID)
}

// MultiGroupHooks combines multiple group hooks, all hook functions are run in array sequence
type MultiGroupHooks []GroupHooks

// NewMultiGroupHooks returns the given hooks as a single hook
func NewMultiGroupHooks(hooks ...GroupHooks) MultiGroupHooks {
	return hooks
}

// AfterBalancesChanged runs all hooks
func (h MultiGroupHooks) AfterBalancesChanged(ctx context.Context, groupID exported.GroupID, principals ...union.Principal) {
	for _, hook := range h {
		hook.AfterBalancesChanged(ctx, groupID, principals...)
	}
}

// AfterGroupDeleted runs all hooks
func (h MultiGroupHooks) AfterGroupDeleted(ctx context.Context, groupID exported.GroupID) {
	for _, hook := range h {
		hook.AfterGroupDeleted(ctx, groupID)
	}
}
