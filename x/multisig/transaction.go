package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Transaction is a proposed transfer of value together with a payload
// delivered to the destination.
type Transaction struct {
	ID          uint64          `json:"id"`
	Destination custody.Address `json:"destination"`
	Value       uint64          `json:"value"`
	Payload     []byte          `json:"payload,omitempty"`
	Executed    bool            `json:"executed"`
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	return orm.Marshal(t)
}

func (t *Transaction) Unmarshal(bz []byte) error {
	return orm.Unmarshal(bz, t)
}

func (t *Transaction) Validate() error {
	if err := t.Destination.Validate(); err != nil {
		return errors.Wrap(ErrInvalidDestination, err.Error())
	}
	return nil
}

func (t *Transaction) Copy() orm.CloneableData {
	return &Transaction{
		ID:          t.ID,
		Destination: t.Destination.Clone(),
		Value:       t.Value,
		Payload:     append([]byte(nil), t.Payload...),
		Executed:    t.Executed,
	}
}

func idKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// TransactionLedger is the append-only store of transactions.
type TransactionLedger struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewTransactionLedger returns a ledger using the default bucket.
func NewTransactionLedger() TransactionLedger {
	b := orm.NewModelBucket("mstx", &Transaction{})
	return TransactionLedger{
		bucket: b,
		seq:    b.Sequence(orm.SeqID),
	}
}

// Create allocates the next id and stores a pending transaction.
func (l TransactionLedger) Create(db custody.KVStore, dst custody.Address, value uint64, payload []byte) (*Transaction, error) {
	if err := dst.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidDestination, err.Error())
	}
	// Sequence values start with 1, ids with 0.
	n, err := l.seq.NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	tx := &Transaction{
		ID:          n - 1,
		Destination: dst.Clone(),
		Value:       value,
		Payload:     append([]byte(nil), payload...),
	}
	if err := l.Save(db, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Transaction returns the transaction with given id or ErrNotFound.
func (l TransactionLedger) Transaction(db custody.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var tx Transaction
	if err := l.bucket.One(db, idKey(id), &tx); err != nil {
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return &tx, nil
}

// TransactionCount returns the number of transactions ever submitted.
func (l TransactionLedger) TransactionCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return l.seq.Latest(db)
}

// Save updates a stored transaction.
func (l TransactionLedger) Save(db custody.KVStore, tx *Transaction) error {
	return l.bucket.Put(db, idKey(tx.ID), tx)
}
