package keeper

import (
	"context"

	"github.com/armon/go-metrics"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/nested/types"
)

// MsgServer handles nested voting requests on behalf of a caller
type MsgServer struct {
	Keeper
}

// NewMsgServerImpl returns a request handler backed by the given keeper
func NewMsgServerImpl(k Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// CreateNestedVotingConfig creates a nested voting config
func (s MsgServer) CreateNestedVotingConfig(ctx context.Context, _ union.Principal, req *types.CreateNestedVotingConfigRequest) (*types.CreateNestedVotingConfigResponse, error) {
	id, err := s.Keeper.CreateNestedVotingConfig(ctx, req.Config)
	if err != nil {
		return nil, err
	}

	return &types.CreateNestedVotingConfigResponse{ID: id}, nil
}

// UpdateNestedVotingConfig updates a nested voting config
func (s MsgServer) UpdateNestedVotingConfig(ctx context.Context, _ union.Principal, req *types.UpdateNestedVotingConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateNestedVotingConfig(ctx, req.Config)
}

// DeleteNestedVotingConfig deletes a nested voting config
func (s MsgServer) DeleteNestedVotingConfig(ctx context.Context, _ union.Principal, req *types.DeleteNestedVotingConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteNestedVotingConfig(ctx, req.ID)
}

// CreateNestedVoting starts proxying a remote voting
func (s MsgServer) CreateNestedVoting(ctx context.Context, _ union.Principal, req *types.CreateNestedVotingRequest) (*types.CreateNestedVotingResponse, error) {
	id, err := s.Keeper.CreateNestedVoting(ctx, req.VotingConfigID, req.RemoteVotingID)
	if err != nil {
		return nil, err
	}

	metrics.IncrCounterWithLabels([]string{types.ModuleName, "votings", "created"}, 1,
		[]metrics.Label{{Name: "remote_kind", Value: req.RemoteVotingID.Kind.String()}})

	return &types.CreateNestedVotingResponse{ID: id}, nil
}

// CastVote casts the caller's vote in a nested voting
func (s MsgServer) CastVote(ctx context.Context, caller union.Principal, req *types.CastVoteRequest) (struct{}, error) {
	err := s.Keeper.CastVote(ctx, caller, req.NestedVotingID, req.SharesInfo, req.Votes)

	outcome := "forwarded"
	if err != nil {
		outcome = "failed"
	}
	metrics.IncrCounterWithLabels([]string{types.ModuleName, "votes"}, 1,
		[]metrics.Label{{Name: "outcome", Value: outcome}})

	return struct{}{}, err
}
