package utils

import (
	"encoding/json"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/axelarnetwork/utils/funcs"

	"github.com/uniongov/union-core/utils/key"
)

// KVStore is a JSON value store on top of a key/value database, namespaced by a prefix.
// Database failures are not recoverable and panic.
type KVStore struct {
	db     dbm.DB
	prefix key.Key
}

// NewKVStore returns a store that namespaces all keys with the given prefix
func NewKVStore(db dbm.DB, prefix key.Key) KVStore {
	return KVStore{db: db, prefix: prefix}
}

// Set marshals the value and stores it under the given key
func (store KVStore) Set(k key.Key, value interface{}) {
	store.SetRaw(k, funcs.Must(json.Marshal(value)))
}

// Get unmarshals the value stored under the given key into the given value. Returns false if the key does not exist.
func (store KVStore) Get(k key.Key, value interface{}) bool {
	bz := store.GetRaw(k)
	if bz == nil {
		return false
	}

	funcs.MustNoErr(json.Unmarshal(bz, value))

	return true
}

// SetRaw stores the value under the given key without marshaling
func (store KVStore) SetRaw(k key.Key, value []byte) {
	funcs.MustNoErr(store.db.Set(store.fullKey(k), value))
}

// GetRaw returns the raw value stored under the given key, nil if it does not exist
func (store KVStore) GetRaw(k key.Key) []byte {
	return funcs.Must(store.db.Get(store.fullKey(k)))
}

// Has returns true if the key exists
func (store KVStore) Has(k key.Key) bool {
	return funcs.Must(store.db.Has(store.fullKey(k)))
}

// Delete deletes the value stored under the given key, if it exists
func (store KVStore) Delete(k key.Key) {
	funcs.MustNoErr(store.db.Delete(store.fullKey(k)))
}

// Iterate calls f for all pairs whose key starts with the given prefix, in ascending key order, until f returns false.
// Keys passed to f are stripped of the prefix. The underlying iterator is closed before f is called, so f may write to the store.
func (store KVStore) Iterate(prefix key.Key, f func(key []byte, value []byte) bool) {
	for _, pair := range store.collect(prefix, false) {
		if !f(pair[0], pair[1]) {
			return
		}
	}
}

// ReverseIterate is like Iterate, but in descending key order
func (store KVStore) ReverseIterate(prefix key.Key, f func(key []byte, value []byte) bool) {
	for _, pair := range store.collect(prefix, true) {
		if !f(pair[0], pair[1]) {
			return
		}
	}
}

// LastBefore returns the value of the greatest key of the form prefix_<suffix> with suffix <= upTo
func (store KVStore) LastBefore(prefix key.Key, upTo key.Key, value interface{}) bool {
	start := store.fullPrefix(prefix)
	end := PrefixEndBytes(store.fullKey(prefix.Append(upTo)))

	iter := funcs.Must(store.db.ReverseIterator(start, end))
	defer MustClose(iter)

	if !iter.Valid() {
		return false
	}

	funcs.MustNoErr(json.Unmarshal(iter.Value(), value))
	return true
}

func (store KVStore) collect(prefix key.Key, reverse bool) [][2][]byte {
	start := store.fullPrefix(prefix)
	end := PrefixEndBytes(start)

	var iter dbm.Iterator
	if reverse {
		iter = funcs.Must(store.db.ReverseIterator(start, end))
	} else {
		iter = funcs.Must(store.db.Iterator(start, end))
	}
	defer MustClose(iter)

	var pairs [][2][]byte
	for ; iter.Valid(); iter.Next() {
		k := append([]byte{}, iter.Key()[len(start):]...)
		v := append([]byte{}, iter.Value()...)
		pairs = append(pairs, [2][]byte{k, v})
	}
	funcs.MustNoErr(iter.Error())

	return pairs
}

func (store KVStore) fullKey(k key.Key) []byte {
	return store.prefix.Append(k).Bytes()
}

func (store KVStore) fullPrefix(prefix key.Key) []byte {
	return append(store.fullKey(prefix), key.DefaultDelimiter...)
}

// MustUnmarshalJSON unmarshals a stored value, panics on failure
func MustUnmarshalJSON(bz []byte, value interface{}) {
	funcs.MustNoErr(json.Unmarshal(bz, value))
}

// GetAll returns all values stored under the given prefix, in ascending key order
func GetAll[T any](store KVStore, prefix key.Key) []T {
	var values []T
	store.Iterate(prefix, func(_ []byte, bz []byte) bool {
		var value T
		MustUnmarshalJSON(bz, &value)
		values = append(values, value)

		return true
	})

	return values
}

// PrefixEndBytes returns the smallest key that is greater than all keys starting with the given prefix
func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for len(end) > 0 {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			return end
		}
		end = end[:len(end)-1]
	}

	return nil
}

// MustClose closes the given iterator and panics on failure
func MustClose(iter dbm.Iterator) {
	funcs.MustNoErr(iter.Close())
}
