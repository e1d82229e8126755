package nested

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/nested/keeper"
	"github.com/uniongov/union-core/x/nested/types"
)

// NewHandler returns the handler of the nested voting module
func NewHandler(k keeper.Keeper) union.Handler {
	server := keeper.NewMsgServerImpl(k)
	h := func(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
		switch msg := msg.(type) {
		case *types.CreateNestedVotingConfigRequest:
			return server.CreateNestedVotingConfig(ctx, caller, msg)
		case *types.UpdateNestedVotingConfigRequest:
			return server.UpdateNestedVotingConfig(ctx, caller, msg)
		case *types.DeleteNestedVotingConfigRequest:
			return server.DeleteNestedVotingConfig(ctx, caller, msg)
		case *types.CreateNestedVotingRequest:
			return server.CreateNestedVoting(ctx, caller, msg)
		case *types.CastVoteRequest:
			return server.CastVote(ctx, caller, msg)
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
