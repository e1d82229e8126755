package types

const (
	// ModuleName is the name of the module
	ModuleName = "voting"

	// StoreKey to be used when creating the KVStore
	StoreKey = ModuleName
)
