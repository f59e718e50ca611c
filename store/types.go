//nolint
package store

import "github.com/iov-one/custody"

// Aliases of the store interfaces declared in the root package.

type ReadOnlyKVStore = custody.ReadOnlyKVStore
type SetDeleter = custody.SetDeleter
type KVStore = custody.KVStore
type Batch = custody.Batch
type CacheableKVStore = custody.CacheableKVStore
type KVCacheWrap = custody.KVCacheWrap
type CommitKVStore = custody.CommitKVStore
type CommitID = custody.CommitID
