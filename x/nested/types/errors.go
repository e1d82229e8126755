package types

import (
	errorsmod "cosmossdk.io/errors"
)

// module errors
var (
	// Code 1 is a reserved code for internal errors and should not be used for anything else
	_                             = errorsmod.Register(ModuleName, 1, "internal error")
	ErrValidation                 = errorsmod.Register(ModuleName, 2, "validation error")
	ErrNotFound                   = errorsmod.Register(ModuleName, 3, "not found")
	ErrInvalidState               = errorsmod.Register(ModuleName, 4, "invalid nested voting state")
	ErrFrozen                     = errorsmod.Register(ModuleName, 5, "nested voting is frozen")
	ErrFractionOverflow           = errorsmod.Register(ModuleName, 6, "vote fractions exceed one")
	ErrRemote                     = errorsmod.Register(ModuleName, 7, "remote union error")
	ErrRemoteVotingConfigMismatch = errorsmod.Register(ModuleName, 8, "remote voting config mismatch")
	ErrInUse                      = errorsmod.Register(ModuleName, 9, "nested voting config in use")
	ErrInsufficientShares         = errorsmod.Register(ModuleName, 10, "insufficient shares")
)
