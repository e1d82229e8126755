package app

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "app"

// App errors
var (
	_               = errorsmod.Register(codespace, 1, "internal error")
	ErrValidation   = errorsmod.Register(codespace, 2, "validation error")
	ErrUnknownRoute = errorsmod.Register(codespace, 3, "unknown route")
	ErrUnknownPeer  = errorsmod.Register(codespace, 4, "unknown peer")
	ErrGenesis      = errorsmod.Register(codespace, 5, "invalid genesis")
	ErrUnreachable  = errorsmod.Register(codespace, 6, "peer unreachable")
)
