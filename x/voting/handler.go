package voting

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/voting/keeper"
	"github.com/uniongov/union-core/x/voting/types"
)

// NewHandler returns the handler of the voting module
func NewHandler(k keeper.Keeper) union.Handler {
	server := keeper.NewMsgServerImpl(k)
	h := func(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
		switch msg := msg.(type) {
		case *types.CreateVotingConfigRequest:
			return server.CreateVotingConfig(ctx, caller, msg)
		case *types.UpdateVotingConfigRequest:
			return server.UpdateVotingConfig(ctx, caller, msg)
		case *types.DeleteVotingConfigRequest:
			return server.DeleteVotingConfig(ctx, caller, msg)
		case *types.CreateVotingRequest:
			return server.CreateVoting(ctx, caller, msg)
		case *types.CreateChoiceRequest:
			return server.CreateChoice(ctx, caller, msg)
		case *types.UpdateChoiceRequest:
			return server.UpdateChoice(ctx, caller, msg)
		case *types.DeleteChoiceRequest:
			return server.DeleteChoice(ctx, caller, msg)
		case *types.CastVoteRequest:
			return server.CastVote(ctx, caller, msg)
		case *types.ApproveRequest:
			return server.Approve(ctx, caller, msg)
		case *types.RejectRequest:
			return server.Reject(ctx, caller, msg)
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
