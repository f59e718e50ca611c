package custody_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(`{"demo": {"quorum": 2}, "bad": "x"}`), &opts))

	var dst struct {
		Quorum int `json:"quorum"`
	}
	require.NoError(t, opts.ReadOptions("demo", &dst))
	assert.Equal(t, 2, dst.Quorum)

	// missing key is a noop
	dst.Quorum = 7
	require.NoError(t, opts.ReadOptions("missing", &dst))
	assert.Equal(t, 7, dst.Quorum)

	err := opts.ReadOptions("bad", &dst)
	assert.True(t, errors.ErrInput.Is(err))
}

type recordingInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(custody.Options, custody.KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := custody.ChainInitializers(
		recordingInit{name: "a", calls: &calls},
		recordingInit{name: "b", calls: &calls, err: errors.ErrState},
		recordingInit{name: "c", calls: &calls},
	)
	err := chain.FromGenesis(custody.Options{}, store.MemStore())
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, []string{"a", "b"}, calls)
}
