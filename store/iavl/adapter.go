package iavl

import (
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultHistory is how many committed versions are kept on disk.
const DefaultHistory = 20

const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	db         dbm.DB
	numHistory int64
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with goleveldb backing, kept in
// dir/name.db
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore creates a store that lives only in memory.
func NewMemCommitStore() *CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree:       iavl.NewMutableTree(db, cacheSize),
		db:         db,
		numHistory: DefaultHistory,
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	// drop the oldest version we no longer want
	if toDel := version - s.numHistory; toDel > 0 && s.tree.VersionExists(toDel) {
		if err := s.tree.DeleteVersion(toDel); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "delete version %d: %s", toDel, err)
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// Close releases the underlying database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// CacheWrap gives us a savepoint to perform actions. Written data lands in
// the working tree and is persisted by the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapper around the working tree.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter exposes the working tree as a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value. The tree cannot hold nil values.
func (a adapter) Set(key, value []byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrDatabase, "nil value")
	}
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// CacheWrap returns a savepoint over the working tree.
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewCacheWrap(a, nil)
}
