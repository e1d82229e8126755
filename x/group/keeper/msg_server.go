package keeper

import (
	"context"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/group/types"
)

// MsgServer handles group and profile requests on behalf of a caller
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns a request handler backed by the given keeper
func NewMsgServerImpl(k *Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// CreateGroup creates a group
func (s MsgServer) CreateGroup(ctx context.Context, _ union.Principal, req *types.CreateGroupRequest) (*types.CreateGroupResponse, error) {
	id, err := s.Keeper.CreateGroup(ctx, req.Name, req.Description, req.Acceptable, req.Transferable)
	if err != nil {
		return nil, err
	}

	return &types.CreateGroupResponse{ID: id}, nil
}

// UpdateGroup updates a group
func (s MsgServer) UpdateGroup(ctx context.Context, _ union.Principal, req *types.UpdateGroupRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateGroup(ctx, req.ID, req.Name, req.Description)
}

// DeleteGroup deletes a group
func (s MsgServer) DeleteGroup(ctx context.Context, _ union.Principal, req *types.DeleteGroupRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteGroup(ctx, req.ID)
}

// MintShares issues shares
func (s MsgServer) MintShares(ctx context.Context, _ union.Principal, req *types.MintSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Mint(ctx, req.GroupID, req.Owner, req.Qty)
}

// BurnShares destroys shares
func (s MsgServer) BurnShares(ctx context.Context, _ union.Principal, req *types.BurnSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Burn(ctx, req.GroupID, req.Owner, req.Qty)
}

// BurnUnacceptedShares destroys unaccepted shares
func (s MsgServer) BurnUnacceptedShares(ctx context.Context, _ union.Principal, req *types.BurnUnacceptedSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.BurnUnaccepted(ctx, req.GroupID, req.Owner, req.Qty)
}

// TransferShares moves shares from the caller
func (s MsgServer) TransferShares(ctx context.Context, caller union.Principal, req *types.TransferSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Transfer(ctx, req.GroupID, caller, req.To, req.Qty)
}

// AcceptShares accepts shares minted to the caller
func (s MsgServer) AcceptShares(ctx context.Context, caller union.Principal, req *types.AcceptSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Accept(ctx, req.GroupID, caller, req.Qty)
}

// DeclineShares declines shares minted to the caller
func (s MsgServer) DeclineShares(ctx context.Context, caller union.Principal, req *types.DeclineSharesRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.Decline(ctx, req.GroupID, caller, req.Qty)
}

// SetAcceptable switches the acceptance mode of a group
func (s MsgServer) SetAcceptable(ctx context.Context, _ union.Principal, req *types.SetAcceptableRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.SetAcceptable(ctx, req.GroupID, req.Acceptable)
}

// RegisterProfile registers the caller's profile
func (s MsgServer) RegisterProfile(ctx context.Context, caller union.Principal, req *types.RegisterProfileRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.RegisterProfile(ctx, caller, req.Name, req.Description)
}

// UpdateProfile updates the caller's profile
func (s MsgServer) UpdateProfile(ctx context.Context, caller union.Principal, req *types.UpdateProfileRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateProfile(ctx, caller, req.Name, req.Description)
}

// DeleteProfile deletes a profile
func (s MsgServer) DeleteProfile(ctx context.Context, _ union.Principal, req *types.DeleteProfileRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteProfile(ctx, req.ID)
}
