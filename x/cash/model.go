package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single account.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

// Marshal serializes the wallet.
func (w *Wallet) Marshal() ([]byte, error) {
	return orm.Marshal(w)
}

// Unmarshal loads a serialized wallet.
func (w *Wallet) Unmarshal(bz []byte) error {
	return orm.Unmarshal(bz, w)
}

// Validate is always successful, any amount is valid.
func (w *Wallet) Validate() error {
	return nil
}

// Copy makes a new wallet with the same amount.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Amount: w.Amount}
}

// Add increases the amount held. Fails if it overflows the wallet.
func (w *Wallet) Add(amount uint64) error {
	sum := w.Amount + amount
	if sum < w.Amount {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Amount, amount)
	}
	w.Amount = sum
	return nil
}

// Subtract decreases the amount held. Fails if there is not enough funds.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Amount < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", w.Amount, amount)
	}
	w.Amount -= amount
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrCreate returns the wallet stored under the address or an empty
// wallet if none exists.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, key custody.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, key, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet under the address.
func (b Bucket) Save(db custody.KVStore, key custody.Address, w *Wallet) error {
	if err := key.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, key, w)
}
