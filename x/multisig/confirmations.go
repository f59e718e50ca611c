package multisig

import (
	"math/bits"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/orm"
)

// Confirmations is a bitset of owner positions that confirmed a transaction.
type Confirmations struct {
	Mask []byte
}

var _ orm.Model = (*Confirmations)(nil)

func (c *Confirmations) Marshal() ([]byte, error) {
	return orm.Marshal(c)
}

func (c *Confirmations) Unmarshal(bz []byte) error {
	return orm.Unmarshal(bz, c)
}

func (c *Confirmations) Validate() error {
	return nil
}

func (c *Confirmations) Copy() orm.CloneableData {
	return &Confirmations{Mask: append([]byte(nil), c.Mask...)}
}

// Has returns true if the owner at position i confirmed.
func (c *Confirmations) Has(i int) bool {
	if i < 0 || i/8 >= len(c.Mask) {
		return false
	}
	return c.Mask[i/8]&(1<<uint(i%8)) != 0
}

// Set marks the owner at position i as confirmed.
func (c *Confirmations) Set(i int) {
	for len(c.Mask) <= i/8 {
		c.Mask = append(c.Mask, 0)
	}
	c.Mask[i/8] |= 1 << uint(i%8)
}

// Clear removes the confirmation of the owner at position i.
func (c *Confirmations) Clear(i int) {
	if i/8 < len(c.Mask) {
		c.Mask[i/8] &^= 1 << uint(i%8)
	}
}

// Count returns the number of confirmations.
func (c *Confirmations) Count() int {
	var n int
	for _, b := range c.Mask {
		n += bits.OnesCount8(b)
	}
	return n
}

// Positions returns confirmed owner positions in ascending order.
func (c *Confirmations) Positions() []int {
	var res []int
	for i, b := range c.Mask {
		for b != 0 {
			j := bits.TrailingZeros8(b)
			res = append(res, i*8+j)
			b &^= 1 << uint(j)
		}
	}
	return res
}

// ConfirmationTracker stores confirmations of every transaction.
type ConfirmationTracker struct {
	bucket orm.ModelBucket
}

// NewConfirmationTracker returns a tracker using the default bucket.
func NewConfirmationTracker() ConfirmationTracker {
	return ConfirmationTracker{
		bucket: orm.NewModelBucket("msconfirm", &Confirmations{}),
	}
}

// Load returns the confirmations of a transaction. A transaction nobody
// confirmed has an empty set.
func (t ConfirmationTracker) Load(db custody.ReadOnlyKVStore, id uint64) (*Confirmations, error) {
	var c Confirmations
	err := t.bucket.One(db, idKey(id), &c)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	return &c, nil
}

// Save stores the confirmations of a transaction.
func (t ConfirmationTracker) Save(db custody.KVStore, id uint64, c *Confirmations) error {
	return t.bucket.Put(db, idKey(id), c)
}
