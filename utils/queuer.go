package utils

import (
	"github.com/uniongov/union-core/utils/key"
)

var (
	itemsKey   = key.FromUInt[uint](1)
	handlesKey = key.FromUInt[uint](2)
	seqKey     = key.FromUInt[uint](3)
)

// Queue is a persisted priority queue. Items are ordered by the key the prioritizer returns for them,
// items with equal priority are ordered by insertion.
type Queue[T any] struct {
	name        key.Key
	store       KVStore
	prioritizer func(value T) key.Key
}

type queueItem[T any] struct {
	Handle uint64 `json:"handle"`
	Value  T      `json:"value"`
}

// NewQueue is the constructor for Queue
func NewQueue[T any](name key.Key, store KVStore, prioritizer func(value T) key.Key) Queue[T] {
	return Queue[T]{
		name:        name,
		store:       store,
		prioritizer: prioritizer,
	}
}

// Enqueue pushes the given value into the queue and returns a handle that can be used to remove it again
func (q Queue[T]) Enqueue(value T) uint64 {
	handle := NewCounter[uint64](q.name.Append(seqKey), q.store).Incr()
	itemKey := q.name.Append(itemsKey).Append(q.prioritizer(value)).Append(key.FromUInt(handle))

	q.store.Set(itemKey, queueItem[T]{Handle: handle, Value: value})
	q.store.SetRaw(q.handleKey(handle), itemKey.Bytes())

	return handle
}

// Peek stores the first item in the queue in the given value without removing it
func (q Queue[T]) Peek(value *T) bool {
	item, ok := q.first()
	if !ok {
		return false
	}

	*value = item.Value
	return true
}

// Dequeue pops the first item in the queue and stores it in the given value
func (q Queue[T]) Dequeue(value *T) bool {
	return q.DequeueIf(value, func(T) bool { return true })
}

// DequeueIf pops the first item in the queue iff it matches the given filter and stores it in the given value
func (q Queue[T]) DequeueIf(value *T, filter func(value T) bool) bool {
	item, ok := q.first()
	if !ok || !filter(item.Value) {
		return false
	}

	q.Delete(item.Handle)
	*value = item.Value

	return true
}

// Delete removes the item with the given handle. Returns false if the item is not in the queue anymore.
func (q Queue[T]) Delete(handle uint64) bool {
	bz := q.store.GetRaw(q.handleKey(handle))
	if bz == nil {
		return false
	}

	q.store.Delete(key.FromBz(bz))
	q.store.Delete(q.handleKey(handle))

	return true
}

// IsEmpty returns true if the queue is empty; false otherwise
func (q Queue[T]) IsEmpty() bool {
	_, ok := q.first()
	return !ok
}

// List returns all items in queue order
func (q Queue[T]) List() []T {
	var values []T
	for _, item := range GetAll[queueItem[T]](q.store, q.name.Append(itemsKey)) {
		values = append(values, item.Value)
	}

	return values
}

func (q Queue[T]) first() (item queueItem[T], ok bool) {
	q.store.Iterate(q.name.Append(itemsKey), func(_ []byte, bz []byte) bool {
		MustUnmarshalJSON(bz, &item)
		ok = true

		return false
	})

	return item, ok
}

func (q Queue[T]) handleKey(handle uint64) key.Key {
	return q.name.Append(handlesKey).Append(key.FromUInt(handle))
}
