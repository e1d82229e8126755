package types

import (
	errorsmod "cosmossdk.io/errors"
)

// module errors
var (
	// Code 1 is a reserved code for internal errors and should not be used for anything else
	_                     = errorsmod.Register(ModuleName, 1, "internal error")
	ErrValidation         = errorsmod.Register(ModuleName, 2, "validation error")
	ErrNotFound           = errorsmod.Register(ModuleName, 3, "not found")
	ErrInvalidState       = errorsmod.Register(ModuleName, 4, "invalid voting state")
	ErrInsufficientShares = errorsmod.Register(ModuleName, 5, "insufficient shares")
	ErrFractionOverflow   = errorsmod.Register(ModuleName, 6, "vote fractions exceed one")
	ErrAccessDenied       = errorsmod.Register(ModuleName, 7, "access denied")
	ErrInUse              = errorsmod.Register(ModuleName, 8, "voting config in use")
)
