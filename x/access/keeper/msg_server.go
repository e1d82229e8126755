package keeper

import (
	"context"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/access/types"
)

// MsgServer handles access config requests
type MsgServer struct {
	Keeper
}

// NewMsgServerImpl returns a request handler backed by the given keeper
func NewMsgServerImpl(k Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// CreateAccessConfig creates an access config
func (s MsgServer) CreateAccessConfig(ctx context.Context, _ union.Principal, req *types.CreateAccessConfigRequest) (*types.CreateAccessConfigResponse, error) {
	id, err := s.Keeper.CreateAccessConfig(ctx, req.Name, req.Description, req.Permissions, req.Allowees)
	if err != nil {
		return nil, err
	}

	return &types.CreateAccessConfigResponse{ID: id}, nil
}

// UpdateAccessConfig updates an access config
func (s MsgServer) UpdateAccessConfig(ctx context.Context, _ union.Principal, req *types.UpdateAccessConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdateAccessConfig(ctx, req.ID, req.Name, req.Description, req.Permissions, req.Allowees)
}

// DeleteAccessConfig deletes an access config
func (s MsgServer) DeleteAccessConfig(ctx context.Context, _ union.Principal, req *types.DeleteAccessConfigRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeleteAccessConfig(ctx, req.ID)
}
