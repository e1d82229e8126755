package keeper

import (
	"context"

	"github.com/armon/go-metrics"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/voting/types"
)

// MsgServer handles voting requests on behalf of a caller
type MsgServer struct {
	Keeper
}

// NewMsgServerImpl returns a request handler backed by the given keeper
func NewMsgServerImpl(k Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// CreateVotingConfig creates a voting config
func (s MsgServer) CreateVotingConfig(ctx context.Context, _ union.Principal, req *types.CreateVotingConfigRequest) (*types.CreateVotingConfigResponse, error) {
	id, err := s.Keeper.CreateVotingConfig(ctx, req.Config)
	if err != nil {
		return nil, err
	}

	return &types.CreateVotingConfigResponse{ID: id}, nil
}

// UpdateVotingConfig updates a voting config
func (s MsgServer) UpdateVotingConfig(ctx context.Context, _ union.Principal, req *types.UpdateVotingConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateVotingConfig(ctx, req.Config)
}

// DeleteVotingConfig deletes a voting config
func (s MsgServer) DeleteVotingConfig(ctx context.Context, _ union.Principal, req *types.DeleteVotingConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteVotingConfig(ctx, req.ID)
}

// CreateVoting proposes a voting
func (s MsgServer) CreateVoting(ctx context.Context, caller union.Principal, req *types.CreateVotingRequest) (*types.CreateVotingResponse, error) {
	id, err := s.Keeper.CreateVoting(ctx, caller, req.VotingConfigID, req.Name, req.Description, req.WinnersNeed)
	if err != nil {
		return nil, err
	}

	metrics.IncrCounterWithLabels([]string{types.ModuleName, "votings", "created"}, 1,
		[]metrics.Label{{Name: "voting_config", Value: req.VotingConfigID.String()}})

	return &types.CreateVotingResponse{ID: id}, nil
}

// CreateChoice adds a choice to a voting
func (s MsgServer) CreateChoice(ctx context.Context, caller union.Principal, req *types.CreateChoiceRequest) (*types.CreateChoiceResponse, error) {
	id, err := s.Keeper.CreateChoice(ctx, caller, req.VotingID, req.Name, req.Description, req.Program)
	if err != nil {
		return nil, err
	}

	return &types.CreateChoiceResponse{ID: id}, nil
}

// UpdateChoice updates a choice
func (s MsgServer) UpdateChoice(ctx context.Context, caller union.Principal, req *types.UpdateChoiceRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateChoice(ctx, caller, req.ID, req.Name, req.Description, req.Program)
}

// DeleteChoice deletes a choice
func (s MsgServer) DeleteChoice(ctx context.Context, caller union.Principal, req *types.DeleteChoiceRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteChoice(ctx, caller, req.ID)
}

// CastVote casts the caller's vote
func (s MsgServer) CastVote(ctx context.Context, caller union.Principal, req *types.CastVoteRequest) (struct{}, error) {
	if err := s.Keeper.CastVote(ctx, caller, req.VotingID, req.SharesInfo, req.Votes); err != nil {
		return struct{}{}, err
	}

	metrics.IncrCounterWithLabels([]string{types.ModuleName, "votes", "cast"}, 1,
		[]metrics.Label{
			{Name: "voting", Value: req.VotingID.String()},
			{Name: "group", Value: req.SharesInfo.GroupID.String()},
		})

	return struct{}{}, nil
}

// Approve re-evaluates the approval of a voting
func (s MsgServer) Approve(ctx context.Context, _ union.Principal, req *types.ApproveRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Approve(ctx, req.VotingID)
}

// Reject re-evaluates the rejection of a voting
func (s MsgServer) Reject(ctx context.Context, _ union.Principal, req *types.RejectRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Reject(ctx, req.VotingID)
}
