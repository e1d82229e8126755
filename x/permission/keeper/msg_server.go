package keeper

import (
	"context"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/x/permission/types"
)

// MsgServer handles permission requests
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns a request handler backed by the given keeper
func NewMsgServerImpl(k *Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// CreatePermission creates a permission
func (s MsgServer) CreatePermission(ctx context.Context, _ union.Principal, req *types.CreatePermissionRequest) (*types.CreatePermissionResponse, error) {
	id, err := s.Keeper.CreatePermission(ctx, req.Name, req.Description, req.Targets, req.Scope)
	if err != nil {
		return nil, err
	}

	return &types.CreatePermissionResponse{ID: id}, nil
}

// UpdatePermission updates a permission
func (s MsgServer) UpdatePermission(ctx context.Context, _ union.Principal, req *types.UpdatePermissionRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.UpdatePermission(ctx, req.ID, req.Name, req.Description, req.Targets, req.Scope)
}

// DeletePermission deletes a permission
func (s MsgServer) DeletePermission(ctx context.Context, _ union.Principal, req *types.DeletePermissionRequest) (struct{}, error) {
	return struct{}{}, s.Keeper.DeletePermission(ctx, req.ID)
}
