package types

import (
	"context"

	"github.com/uniongov/union-core/x/permission/exported"
)

// PermissionHooks are consulted before a permission is deleted, so modules referencing it can refuse
type PermissionHooks interface {
	BeforePermissionDeleted(ctx context.Context, id exported.PermissionID) error
}

// MultiPermissionHooks combines multiple permission hooks, all hook functions are run in array sequence
type MultiPermissionHooks []PermissionHooks

// NewMultiPermissionHooks returns the given hooks as a single hook
func NewMultiPermissionHooks(hooks ...PermissionHooks) MultiPermissionHooks {
	return hooks
}

// BeforePermissionDeleted runs all hooks and returns the first error
func (h MultiPermissionHooks) BeforePermissionDeleted(ctx context.Context, id exported.PermissionID) error {
	for _, hook := range h {
		if err := hook.BeforePermissionDeleted(ctx, id); err != nil {
			return err
		}
	}

	return nil
}
