package keeper

import (
	"context"

	union "github.com/uniongov/union-core/types"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	grouptypes "github.com/uniongov/union-core/x/group/types"
)

// Hooks checkpoints group balances whenever they change
type Hooks struct {
	k Keeper
}

var _ grouptypes.GroupHooks = Hooks{}

// Hooks returns the group hooks of the shares keeper
func (k Keeper) Hooks() Hooks {
	return Hooks{k}
}

// AfterBalancesChanged implements grouptypes.GroupHooks.
func (h Hooks) AfterBalancesChanged(ctx context.Context, groupID groupexported.GroupID, principals ...union.Principal) {
	h.k.Checkpoint(ctx, groupID, principals...)
}

// AfterGroupDeleted implements grouptypes.GroupHooks.
func (h Hooks) AfterGroupDeleted(_ context.Context, groupID groupexported.GroupID) {
	h.k.Logger().Debug("keeping share checkpoints of deleted group", "group", groupID)
}
