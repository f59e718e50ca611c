package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/custody/errors"
)

// freeListSize is the number of btree nodes kept for reuse.
const freeListSize = btree.DefaultFreeListSize

// Cacheable adds savepoint support to a KVStore that has none.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

// CacheWrap returns a savepoint over the wrapped store.
func (c Cacheable) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c.KVStore, nil)
}

// MemStore returns a store that keeps everything in memory. Nothing is
// persisted.
func MemStore() CacheableKVStore {
	return NewCacheWrap(EmptyKVStore{}, nil)
}

// CacheWrap keeps changes in an ordered btree on top of a parent store.
// Reads fall through to the parent for keys that were not changed. Write
// applies the final state of every changed key to the parent, in key order.
//
// CacheWrap can be nested without limit. A child must be written or
// discarded before its parent.
type CacheWrap struct {
	parent  KVStore
	changes *btree.BTree
	free    *btree.FreeList
}

var _ KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap returns an empty savepoint over parent. free may be nil; pass
// an existing list to share released nodes between nested caches.
func NewCacheWrap(parent KVStore, free *btree.FreeList) *CacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return &CacheWrap{
		parent:  parent,
		changes: btree.NewWithFreeList(2, free),
		free:    free,
	}
}

// CacheWrap opens a nested savepoint.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c, c.free)
}

// NewBatch returns a batch writing to this cache.
func (c *CacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Get returns the cached value or reads the parent.
func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if ch, ok := c.change(key); ok {
		if ch.deleted {
			return nil, nil
		}
		return ch.value, nil
	}
	return c.parent.Get(key)
}

// Has returns true if the key exists in the cache or in the parent.
func (c *CacheWrap) Has(key []byte) (bool, error) {
	if ch, ok := c.change(key); ok {
		return !ch.deleted, nil
	}
	return c.parent.Has(key)
}

// Set stores the value in the cache only.
func (c *CacheWrap) Set(key, value []byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrInput, "nil value")
	}
	c.changes.ReplaceOrInsert(change{key: key, value: value})
	return nil
}

// Delete hides the key, including any value held by the parent.
func (c *CacheWrap) Delete(key []byte) error {
	c.changes.ReplaceOrInsert(change{key: key, deleted: true})
	return nil
}

// Write applies all changes to the parent and empties the cache. Writing a
// discarded or already written cache is a noop.
func (c *CacheWrap) Write() error {
	var err error
	c.changes.Ascend(func(it btree.Item) bool {
		ch := it.(change)
		if ch.deleted {
			err = c.parent.Delete(ch.key)
		} else {
			err = c.parent.Set(ch.key, ch.value)
		}
		if err != nil {
			err = errors.Wrapf(errors.ErrDatabase, "write %X: %s", ch.key, err)
		}
		return err == nil
	})
	c.Discard()
	return err
}

// Discard drops all changes. The cache can be used again afterwards.
func (c *CacheWrap) Discard() {
	for c.changes.DeleteMin() != nil {
	}
}

func (c *CacheWrap) change(key []byte) (change, bool) {
	it := c.changes.Get(change{key: key})
	if it == nil {
		return change{}, false
	}
	return it.(change), true
}

// change is the latest state of a key in a cache.
type change struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = change{}

func (c change) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(change).key) < 0
}
