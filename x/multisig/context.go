package multisig

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type contextKey int // local to the multisig module

const (
	contextKeyNested contextKey = iota
)

// withNested marks the context as running inside an execution attempt.
func withNested(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKeyNested, true)
}

// isNested returns true if the operation was invoked by a destination while
// an execution attempt is in progress.
func isNested(ctx context.Context) bool {
	val, _ := ctx.Value(contextKeyNested).(bool)
	return val
}

// ownerCaller returns the position of the caller in the owner registry.
func ownerCaller(ctx context.Context, reg *OwnerRegistry) (custody.Address, int, error) {
	caller, ok := custody.GetCaller(ctx)
	if !ok {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	i, ok := reg.Index(caller)
	if !ok {
		return nil, 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	return caller, i, nil
}

// cacheWrap returns a savepoint over the store.
func cacheWrap(db custody.KVStore) custody.KVCacheWrap {
	if c, ok := db.(custody.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.Cacheable{KVStore: db}.CacheWrap()
}

func isNotFound(err error) bool {
	return errors.ErrNotFound.Is(err)
}
