package orm

import (
	"github.com/iov-one/custody/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count uint64
	Label string
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	return Marshal(c)
}

func (c *counter) Unmarshal(bz []byte) error {
	return Unmarshal(bz, c)
}

func (c *counter) Validate() error {
	if c.Label == "invalid" {
		return errors.Wrap(errors.ErrModel, "label")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

// other is a model of a different type than counter.
type other struct {
	Name string
}

func (o *other) Marshal() ([]byte, error)  { return Marshal(o) }
func (o *other) Unmarshal(bz []byte) error { return Unmarshal(bz, o) }
func (o *other) Validate() error           { return nil }
func (o *other) Copy() CloneableData       { cpy := *o; return &cpy }
