package custody

// ReadOnlyKVStore reads raw values. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter is the write side shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state every component of the vault works on. Stores
// iterate nothing: all keys are known in advance.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can open a savepoint on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a savepoint. Reads see the cached writes on top of the
// parent state. Write applies them to the parent, Discard drops them. A
// cache wrap can be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is a persistent root store. Changes are made in a cache wrap
// and become durable with Commit, which creates a new version.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete version from disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
