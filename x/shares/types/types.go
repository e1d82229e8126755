package types

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	groupexported "github.com/uniongov/union-core/x/group/exported"
)

// Checkpoint is a recorded share amount at a point in time
type Checkpoint struct {
	Amount    sdkmath.Uint `json:"amount"`
	Timestamp time.Time    `json:"timestamp"`
}

// GroupKeeper provides current group balances
type GroupKeeper interface {
	HasGroup(ctx context.Context, id groupexported.GroupID) bool
	BalanceOf(ctx context.Context, id groupexported.GroupID, principal union.Principal) sdkmath.Uint
	TotalSupply(ctx context.Context, id groupexported.GroupID) sdkmath.Uint
}
