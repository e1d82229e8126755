package types

import (
	errorsmod "cosmossdk.io/errors"
)

// module errors
var (
	// Code 1 is a reserved code for internal errors and should not be used for anything else
	_                                = errorsmod.Register(ModuleName, 1, "internal error")
	ErrNotFound                      = errorsmod.Register(ModuleName, 2, "token not found")
	ErrInsufficientBalance           = errorsmod.Register(ModuleName, 3, "insufficient balance")
	ErrInsufficientUnacceptedBalance = errorsmod.Register(ModuleName, 4, "insufficient unaccepted balance")
	ErrNotTransferable               = errorsmod.Register(ModuleName, 5, "token is not transferable")
)
