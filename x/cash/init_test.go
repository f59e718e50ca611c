package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestGenesis(t *testing.T) {
	addr := custodytest.NewAddress()
	addr2 := custodytest.NewAddress()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    map[string]uint64
	}{
		"no cash section": {
			genesis: `{}`,
		},
		"two accounts": {
			genesis: `{"cash": [
				{"address": "` + addr.String() + `", "amount": 100},
				{"address": "` + addr2.String() + `", "amount": 7}
			]}`,
			want: map[string]uint64{addr.String(): 100, addr2.String(): 7},
		},
		"same account twice is summed": {
			genesis: `{"cash": [
				{"address": "` + addr.String() + `", "amount": 100},
				{"address": "` + addr.String() + `", "amount": 1}
			]}`,
			want: map[string]uint64{addr.String(): 101},
		},
		"missing address": {
			genesis: `{"cash": [{"amount": 100}]}`,
			wantErr: errors.ErrEmpty,
		},
		"broken address": {
			genesis: `{"cash": [{"address": "xyz:123", "amount": 100}]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)

			ctrl := NewController(NewBucket())
			for hex, want := range tc.want {
				assert.Equal(t, want, balance(t, ctrl, db, custodytest.ParseAddress(t, hex)))
			}
		})
	}
}
