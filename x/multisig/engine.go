package multisig

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Environment holds the value of the vault and delivers it to destinations.
type Environment interface {
	// Balance returns the value held by the holder.
	Balance(db custody.ReadOnlyKVStore, holder custody.Address) (uint64, error)

	// Transfer moves amount from src to dst and hands the payload to dst.
	// The value must be moved before dst gets the control. Any changes
	// made to db are dropped by the caller if an error is returned.
	Transfer(ctx context.Context, db custody.KVStore, src, dst custody.Address, amount uint64, payload []byte) error
}

// ExecutionEngine executes transactions that gathered enough confirmations.
type ExecutionEngine struct {
	vault         custody.Address
	env           Environment
	ledger        TransactionLedger
	confirmations ConfirmationTracker
	events        EventEmitter
}

// NewExecutionEngine returns an engine paying out of the vault account.
func NewExecutionEngine(vault custody.Address, env Environment) ExecutionEngine {
	return ExecutionEngine{
		vault:         vault,
		env:           env,
		ledger:        NewTransactionLedger(),
		confirmations: NewConfirmationTracker(),
		events:        NewEventEmitter(),
	}
}

// Attempt executes the transaction if possible. An explicit attempt fails
// for an executed transaction, an implicit one is a noop.
//
// Missing confirmations or funds are recorded as an event and are not an
// error. A failing destination results in ErrExecutionFailed and all
// changes done during the attempt are dropped.
func (e ExecutionEngine) Attempt(ctx context.Context, db custody.KVStore, reg *OwnerRegistry, id uint64, explicit bool) error {
	tx, err := e.ledger.Transaction(db, id)
	if err != nil {
		return err
	}
	ctx = custody.WithLogInfo(ctx, "module", "multisig", "tx", id)
	log := custody.GetLogger(ctx)

	if tx.Executed {
		if explicit {
			return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
		}
		return nil
	}

	conf, err := e.confirmations.Load(db, id)
	if err != nil {
		return err
	}
	if n := conf.Count(); uint32(n) < reg.Quorum() {
		log.Debug("quorum not obtained", "confirmations", n, "quorum", reg.Quorum())
		_, err := e.events.Emit(db, Event{Kind: EventQuorumNotObtained, TransactionID: id})
		return err
	}

	balance, err := e.env.Balance(db, e.vault)
	if err != nil {
		return errors.Wrap(err, "vault balance")
	}
	if balance < tx.Value {
		log.Debug("not enough balance", "balance", balance, "value", tx.Value)
		_, err := e.events.Emit(db, Event{Kind: EventNotEnoughBalance, TransactionID: id})
		return err
	}

	// Seal and pay before the destination gets the control, so that any
	// call back into the vault sees the transaction executed.
	cache := cacheWrap(db)
	tx.Executed = true
	if err := e.ledger.Save(cache, tx); err != nil {
		cache.Discard()
		return err
	}
	if err := e.transfer(withNested(ctx), cache, tx); err != nil {
		cache.Discard()
		log.Error("execution rolled back", "destination", tx.Destination, "err", err)
		return errors.Wrapf(ErrExecutionFailed, "transaction %d: %s", id, err)
	}
	if _, err := e.events.Emit(cache, Event{Kind: EventExecuted, TransactionID: id, Amount: tx.Value}); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	log.Info("transaction executed", "destination", tx.Destination, "value", tx.Value)
	return nil
}

// transfer pays the destination. A panicking destination is reported as an
// error so that the attempt is rolled back like any other failure.
func (e ExecutionEngine) transfer(ctx context.Context, db custody.KVStore, tx *Transaction) (err error) {
	defer errors.Recover(&err)
	return e.env.Transfer(ctx, db, e.vault, tx.Destination, tx.Value, tx.Payload)
}
