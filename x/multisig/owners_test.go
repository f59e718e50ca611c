package multisig

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestNewOwnerRegistry(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()
	c := custodytest.NewAddress()

	many := make([]custody.Address, MaxOwners+1)
	for i := range many {
		many[i] = custodytest.NewAddress()
	}

	cases := map[string]struct {
		owners  []custody.Address
		quorum  uint32
		wantErr *errors.Error
	}{
		"valid": {
			owners: []custody.Address{a, b, c},
			quorum: 2,
		},
		"quorum equal to owners": {
			owners: []custody.Address{a, b, c},
			quorum: 3,
		},
		"single owner": {
			owners: []custody.Address{a},
			quorum: 1,
		},
		"max owners": {
			owners: many[:MaxOwners],
			quorum: MaxOwners,
		},
		"too many owners": {
			owners:  many,
			quorum:  1,
			wantErr: ErrInvalidConfiguration,
		},
		"no owners": {
			owners:  nil,
			quorum:  1,
			wantErr: ErrInvalidConfiguration,
		},
		"zero quorum": {
			owners:  []custody.Address{a, b},
			quorum:  0,
			wantErr: ErrInvalidConfiguration,
		},
		"quorum above owners": {
			owners:  []custody.Address{a, b},
			quorum:  3,
			wantErr: ErrInvalidConfiguration,
		},
		"duplicated owner": {
			owners:  []custody.Address{a, b, a},
			quorum:  2,
			wantErr: ErrInvalidConfiguration,
		},
		"null owner": {
			owners:  []custody.Address{a, nil},
			quorum:  1,
			wantErr: ErrInvalidConfiguration,
		},
		"malformed owner": {
			owners:  []custody.Address{a, custody.Address("short")},
			quorum:  1,
			wantErr: ErrInvalidConfiguration,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			reg, err := NewOwnerRegistry(tc.owners, tc.quorum)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, len(tc.owners), reg.Len())
			assert.Equal(t, tc.quorum, reg.Quorum())
			for i, o := range tc.owners {
				assert.Equal(t, true, reg.IsOwner(o))
				got, err := reg.OwnerAt(i)
				assert.Nil(t, err)
				assert.Equal(t, o, got)
				pos, ok := reg.Index(o)
				assert.Equal(t, true, ok)
				assert.Equal(t, i, pos)
			}
		})
	}
}

func TestOwnerRegistryLookup(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()
	reg, err := NewOwnerRegistry([]custody.Address{a, b}, 1)
	assert.Nil(t, err)

	assert.Equal(t, false, reg.IsOwner(custodytest.NewAddress()))
	assert.Equal(t, false, reg.IsOwner(nil))

	_, err = reg.OwnerAt(2)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = reg.OwnerAt(-1)
	assert.IsErr(t, errors.ErrNotFound, err)

	// returned values are copies
	owners := reg.Owners()
	owners[0][0]++
	got, _ := reg.OwnerAt(0)
	assert.Equal(t, a, got)
	assert.Equal(t, true, reg.IsOwner(a))
}

func TestConfigurationBucket(t *testing.T) {
	db := newStore()
	b := NewConfigurationBucket()

	_, err := b.Registry(db)
	assert.IsErr(t, errors.ErrState, err)

	owners := []custody.Address{custodytest.NewAddress(), custodytest.NewAddress()}
	reg, err := NewOwnerRegistry(owners, 2)
	assert.Nil(t, err)
	assert.Nil(t, b.Create(db, reg))

	loaded, err := b.Registry(db)
	assert.Nil(t, err)
	assert.Equal(t, owners, loaded.Owners())
	assert.Equal(t, uint32(2), loaded.Quorum())

	assert.IsErr(t, ErrInvalidConfiguration, b.Create(db, reg))
}
