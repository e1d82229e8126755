package group

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/group/keeper"
	"github.com/uniongov/union-core/x/group/types"
)

// NewHandler returns the handler of the group module
func NewHandler(k *keeper.Keeper) union.Handler {
	server := keeper.NewMsgServerImpl(k)
	h := func(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
		switch msg := msg.(type) {
		case *types.CreateGroupRequest:
			return server.CreateGroup(ctx, caller, msg)
		case *types.UpdateGroupRequest:
			return server.UpdateGroup(ctx, caller, msg)
		case *types.DeleteGroupRequest:
			return server.DeleteGroup(ctx, caller, msg)
		case *types.MintSharesRequest:
			return server.MintShares(ctx, caller, msg)
		case *types.BurnSharesRequest:
			return server.BurnShares(ctx, caller, msg)
		case *types.BurnUnacceptedSharesRequest:
			return server.BurnUnacceptedShares(ctx, caller, msg)
		case *types.TransferSharesRequest:
			return server.TransferShares(ctx, caller, msg)
		case *types.AcceptSharesRequest:
			return server.AcceptShares(ctx, caller, msg)
		case *types.DeclineSharesRequest:
			return server.DeclineShares(ctx, caller, msg)
		case *types.SetAcceptableRequest:
			return server.SetAcceptable(ctx, caller, msg)
		case *types.RegisterProfileRequest:
			return server.RegisterProfile(ctx, caller, msg)
		case *types.UpdateProfileRequest:
			return server.UpdateProfile(ctx, caller, msg)
		case *types.DeleteProfileRequest:
			return server.DeleteProfile(ctx, caller, msg)
		default:
			return nil, errorsmod.Wrapf(types.ErrValidation, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
	}

	return func(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
		res, err := h(ctx, caller, msg)
		if err != nil {
			k.Logger().Debug(err.Error(), "caller", caller, "route", msg.Route())
			return nil, err
		}

		return res, nil
	}
}
