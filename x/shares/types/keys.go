package types

const (
	// ModuleName is the name of the module
	ModuleName = "shares"

	// StoreKey to be used when creating the KVStore
	StoreKey = ModuleName
)
