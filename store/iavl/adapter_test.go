package iavl

import (
	"crypto/rand"
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/store"
)

func makeCommitStore(t testing.TB) (string, *CommitStore, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		t.Fatalf("cannot create temp dir: %s", err)
	}
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("cannot open store: %s", err)
	}
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return tmpDir, commit, cleanup
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// TestCacheGetSet does basic sanity checks on our cache
func TestCacheGetSet(t *testing.T) {
	base := NewMemCommitStore().Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	assert.Nil(t, c3.Write())
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
}

func TestNilValueRejected(t *testing.T) {
	base := NewMemCommitStore().Adapter()
	if err := base.Set([]byte("key"), nil); err == nil {
		t.Fatal("nil value must not be accepted")
	}
}

// TestCommitPersists checks that committed data survives closing and
// reopening the database, while uncommitted data does not.
func TestCommitPersists(t *testing.T) {
	ks := randKeys(3, 16)
	vs := randKeys(3, 40)

	dir, commit, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(ks[0], vs[0]))
	assert.Nil(t, cache.Set(ks[1], vs[1]))
	assert.Nil(t, cache.Write())

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash must be set after commit")
	}

	// never committed
	cache = commit.CacheWrap()
	assert.Nil(t, cache.Set(ks[2], vs[2]))
	assert.Nil(t, cache.Delete(ks[0]))
	assert.Nil(t, cache.Write())
	commit.Close()

	reopened, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)

	got, err := reopened.Get(ks[0])
	assert.Nil(t, err)
	assert.Equal(t, vs[0], got)
	assertGetHas(t, reopened.Adapter(), ks[1], vs[1], true)
	assertGetHas(t, reopened.Adapter(), ks[2], nil, false)
}

func TestCommitPrunesHistory(t *testing.T) {
	commit := NewMemCommitStore()
	commit.numHistory = 1

	key := []byte("counter")
	for i := byte(1); i <= 3; i++ {
		assert.Nil(t, commit.Adapter().Set(key, []byte{i}))
		id, err := commit.Commit()
		assert.Nil(t, err)
		assert.Equal(t, int64(i), id.Version)
	}
	if commit.tree.VersionExists(1) {
		t.Fatal("version 1 should have been pruned")
	}
	if !commit.tree.VersionExists(3) {
		t.Fatal("latest version must exist")
	}
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = make([]byte, size)
		rand.Read(res[i])
	}
	return res
}
