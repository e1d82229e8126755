package permission

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/permission/keeper"
	"github.com/uniongov/union-core/x/permission/types"
)

// NewHandler returns the handler of the permission module
func NewHandler(k *keeper.Keeper) union.Handler {
	server := keeper.NewMsgServerImpl(k)
	h := func(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
		switch msg := msg.(type) {
		case *types.CreatePermissionRequest:
			return server.CreatePermission(ctx, caller, msg)
		case *types.UpdatePermissionRequest:
			return server.UpdatePermission(ctx, caller, msg)
		case *types.DeletePermissionRequest:
			return server.DeletePermission(ctx, caller, msg)
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
