package multisig

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestConfirmationsBitset(t *testing.T) {
	var c Confirmations
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, false, c.Has(0))
	assert.Equal(t, false, c.Has(-1))

	for _, i := range []int{0, 3, 8, 254} {
		c.Set(i)
	}
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, []int{0, 3, 8, 254}, c.Positions())
	assert.Equal(t, true, c.Has(254))
	assert.Equal(t, false, c.Has(253))

	// setting twice does not count twice
	c.Set(3)
	assert.Equal(t, 4, c.Count())

	c.Clear(3)
	c.Clear(200)
	c.Clear(1000)
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, []int{0, 8, 254}, c.Positions())

	cpy := c.Copy().(*Confirmations)
	cpy.Clear(0)
	assert.Equal(t, true, c.Has(0))
}

func TestConfirmationTracker(t *testing.T) {
	db := newStore()
	tr := NewConfirmationTracker()

	c, err := tr.Load(db, 7)
	assert.Nil(t, err)
	assert.Equal(t, 0, c.Count())

	c.Set(2)
	assert.Nil(t, tr.Save(db, 7, c))

	c, err = tr.Load(db, 7)
	assert.Nil(t, err)
	assert.Equal(t, []int{2}, c.Positions())

	other, err := tr.Load(db, 8)
	assert.Nil(t, err)
	assert.Equal(t, 0, other.Count())
}
