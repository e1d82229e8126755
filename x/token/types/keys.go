package types

const (
	// ModuleName exposes token module name
	ModuleName = "token"

	// StoreKey represents the store key for the token module
	StoreKey = ModuleName
)
