package store

import (
	"github.com/iov-one/custody/errors"
)

// EmptyKVStore never holds any data. It is the bottom layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop
func (EmptyKVStore) Delete(key []byte) error { return nil }

// NewBatch returns a batch that discards everything.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// op is a pending set, or a delete when value is nil.
type op struct {
	key   []byte
	value []byte
}

// NonAtomicBatch collects operations and applies them one by one on Write.
// A failing operation leaves the previous ones applied, so only use it for
// stores that cannot fail halfway (in memory trees).
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set queues a set operation.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrInput, "nil value")
	}
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

// Delete queues a delete operation.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: key})
	return nil
}

// Write applies all queued operations in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for i, o := range ops {
		var err error
		if o.value == nil {
			err = b.out.Delete(o.key)
		} else {
			err = b.out.Set(o.key, o.value)
		}
		if err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
	}
	return nil
}

// Len returns the number of queued operations.
func (b *NonAtomicBatch) Len() int {
	return len(b.ops)
}
