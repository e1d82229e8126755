package types

import (
	errorsmod "cosmossdk.io/errors"
)

// module errors
var (
	// Code 1 is a reserved code for internal errors and should not be used for anything else
	_             = errorsmod.Register(ModuleName, 1, "internal error")
	ErrValidation = errorsmod.Register(ModuleName, 2, "validation error")
	ErrNotFound   = errorsmod.Register(ModuleName, 3, "permission not found")
	ErrInUse      = errorsmod.Register(ModuleName, 4, "permission is in use")
)
