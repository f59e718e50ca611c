package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Controller is the functionality needed by other packages to read and
// move balances.
type Controller interface {
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error
	IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller working on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by the address. Unknown addresses hold
// nothing.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if src.Equals(dest) {
		// Only the funds check has an observable effect.
		w, err := c.bucket.GetOrCreate(db, src)
		if err != nil {
			return err
		}
		if w.Amount < amount {
			return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", w.Amount, amount)
		}
		return nil
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}
