package types

const (
	// ModuleName is the name of the module
	ModuleName = "group"

	// StoreKey to be used when creating the KVStore
	StoreKey = ModuleName
)
