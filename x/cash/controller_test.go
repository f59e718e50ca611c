package cash

import (
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func balance(t testing.TB, ctrl Controller, db custody.ReadOnlyKVStore, addr custody.Address) uint64 {
	t.Helper()
	amount, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	return amount
}

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	addr := custodytest.NewAddress()
	addr2 := custodytest.NewAddress()

	ctrl := NewController(NewBucket())

	assert.Equal(t, uint64(0), balance(t, ctrl, db, addr))

	assert.Nil(t, ctrl.IssueCoins(db, addr, 500))
	assert.Equal(t, uint64(500), balance(t, ctrl, db, addr))
	assert.Equal(t, uint64(0), balance(t, ctrl, db, addr2))

	assert.Nil(t, ctrl.IssueCoins(db, addr, 100))
	assert.Equal(t, uint64(600), balance(t, ctrl, db, addr))

	// overflow is rejected
	err := ctrl.IssueCoins(db, addr, math.MaxUint64)
	assert.IsErr(t, errors.ErrOverflow, err)
	assert.Equal(t, uint64(600), balance(t, ctrl, db, addr))

	// invalid address
	err = ctrl.IssueCoins(db, custody.Address("short"), 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestMoveCoins(t *testing.T) {
	addr := custodytest.NewAddress()
	addr2 := custodytest.NewAddress()

	cases := map[string]struct {
		issue     uint64
		src, dest custody.Address
		amount    uint64
		wantErr   *errors.Error
		wantSrc   uint64
		wantDest  uint64
	}{
		"move some": {
			issue:    100,
			src:      addr,
			dest:     addr2,
			amount:   40,
			wantSrc:  60,
			wantDest: 40,
		},
		"move everything": {
			issue:    100,
			src:      addr,
			dest:     addr2,
			amount:   100,
			wantSrc:  0,
			wantDest: 100,
		},
		"insufficient funds": {
			issue:    100,
			src:      addr,
			dest:     addr2,
			amount:   101,
			wantErr:  errors.ErrAmount,
			wantSrc:  100,
			wantDest: 0,
		},
		"zero amount": {
			issue:    100,
			src:      addr,
			dest:     addr2,
			amount:   0,
			wantErr:  errors.ErrAmount,
			wantSrc:  100,
			wantDest: 0,
		},
		"empty sender": {
			src:     addr,
			dest:    addr2,
			amount:  1,
			wantErr: errors.ErrAmount,
		},
		"to self": {
			issue:    10,
			src:      addr,
			dest:     addr,
			amount:   10,
			wantSrc:  10,
			wantDest: 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			if tc.issue > 0 {
				assert.Nil(t, ctrl.IssueCoins(db, tc.src, tc.issue))
			}

			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantSrc, balance(t, ctrl, db, tc.src))
			assert.Equal(t, tc.wantDest, balance(t, ctrl, db, tc.dest))
		})
	}
}

func TestMoveCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	rich := custodytest.NewAddress()
	richer := custodytest.NewAddress()

	assert.Nil(t, ctrl.IssueCoins(db, rich, 10))
	assert.Nil(t, ctrl.IssueCoins(db, richer, math.MaxUint64))

	err := ctrl.MoveCoins(db, rich, richer, 1)
	assert.IsErr(t, errors.ErrOverflow, err)
	assert.Equal(t, uint64(10), balance(t, ctrl, db, rich))
}
