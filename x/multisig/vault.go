package multisig

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// VaultCondition is the condition of the account holding the custodied
// value.
var VaultCondition = custody.NewCondition("multisig", "vault", []byte("custody"))

// Vault bundles the owner registry, the transaction ledger, the
// confirmation tracker, the execution engine and the event log into a
// single entry point.
//
// The Vault itself is stateless, all state lives in the store passed to
// each call. The caller identity is read from the context, see
// custody.WithCaller.
type Vault struct {
	address       custody.Address
	env           Environment
	config        ConfigurationBucket
	ledger        TransactionLedger
	confirmations ConfirmationTracker
	events        EventEmitter
	engine        ExecutionEngine
	observers     []Observer
}

// NewVault returns a vault that keeps its value in the environment.
// Observers are notified about new events after each successful operation.
func NewVault(env Environment, observers ...Observer) *Vault {
	addr := VaultCondition.Address()
	return &Vault{
		address:       addr,
		env:           env,
		config:        NewConfigurationBucket(),
		ledger:        NewTransactionLedger(),
		confirmations: NewConfirmationTracker(),
		events:        NewEventEmitter(),
		engine:        NewExecutionEngine(addr, env),
		observers:     observers,
	}
}

// Address returns the address of the account holding the vault value.
func (v *Vault) Address() custody.Address {
	return v.address.Clone()
}

// Init sets the owners and the quorum. It can be called only once.
func (v *Vault) Init(ctx context.Context, db custody.KVStore, owners []custody.Address, quorum uint32) error {
	reg, err := NewOwnerRegistry(owners, quorum)
	if err != nil {
		return err
	}
	return v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		return v.config.Create(db, reg)
	})
}

// Submit creates a new transaction confirmed by the caller and attempts to
// execute it.
func (v *Vault) Submit(ctx context.Context, db custody.KVStore, dst custody.Address, value uint64, payload []byte) (uint64, error) {
	var id uint64
	err := v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		reg, err := v.config.Registry(db)
		if err != nil {
			return err
		}
		caller, pos, err := ownerCaller(ctx, reg)
		if err != nil {
			return err
		}
		tx, err := v.ledger.Create(db, dst, value, payload)
		if err != nil {
			return err
		}
		id = tx.ID
		if _, err := v.events.Emit(db, Event{Kind: EventSubmitted, TransactionID: id}); err != nil {
			return err
		}
		return v.confirm(ctx, db, reg, tx.ID, caller, pos)
	})
	return id, err
}

// Confirm records the confirmation of the caller and attempts to execute the
// transaction. Confirmations of an executed transaction are frozen, so
// confirming it fails with ErrAlreadyExecuted.
func (v *Vault) Confirm(ctx context.Context, db custody.KVStore, id uint64) error {
	return v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		reg, err := v.config.Registry(db)
		if err != nil {
			return err
		}
		caller, pos, err := ownerCaller(ctx, reg)
		if err != nil {
			return err
		}
		tx, err := v.ledger.Transaction(db, id)
		if err != nil {
			return err
		}
		if tx.Executed {
			return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
		}
		return v.confirm(ctx, db, reg, id, caller, pos)
	})
}

func (v *Vault) confirm(ctx context.Context, db custody.KVStore, reg *OwnerRegistry, id uint64, caller custody.Address, pos int) error {
	conf, err := v.confirmations.Load(db, id)
	if err != nil {
		return err
	}
	if conf.Has(pos) {
		return errors.Wrapf(ErrAlreadyConfirmed, "transaction %d", id)
	}
	conf.Set(pos)
	if err := v.confirmations.Save(db, id, conf); err != nil {
		return err
	}
	if _, err := v.events.Emit(db, Event{Kind: EventConfirmed, TransactionID: id, Caller: caller}); err != nil {
		return err
	}

	// The confirmation stands even if the destination fails.
	switch err := v.engine.Attempt(ctx, db, reg, id, false); {
	case err == nil:
		return nil
	case ErrExecutionFailed.Is(err):
		custody.GetLogger(ctx).Debug("implicit execution failed", "module", "multisig", "tx", id, "err", err)
		return nil
	default:
		return err
	}
}

// Revoke removes the confirmation of the caller. Confirmations of an
// executed transaction cannot be changed.
func (v *Vault) Revoke(ctx context.Context, db custody.KVStore, id uint64) error {
	return v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		reg, err := v.config.Registry(db)
		if err != nil {
			return err
		}
		caller, pos, err := ownerCaller(ctx, reg)
		if err != nil {
			return err
		}
		tx, err := v.ledger.Transaction(db, id)
		if err != nil {
			return err
		}
		if tx.Executed {
			return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
		}
		conf, err := v.confirmations.Load(db, id)
		if err != nil {
			return err
		}
		if !conf.Has(pos) {
			return errors.Wrapf(ErrNotConfirmed, "transaction %d", id)
		}
		conf.Clear(pos)
		if err := v.confirmations.Save(db, id, conf); err != nil {
			return err
		}
		_, err = v.events.Emit(db, Event{Kind: EventRevoked, TransactionID: id, Caller: caller})
		return err
	})
}

// Execute attempts to execute the transaction. Missing confirmations or
// funds are not an error, see the emitted events. If the destination fails,
// an error wrapping ErrExecutionFailed is returned and nothing changes.
func (v *Vault) Execute(ctx context.Context, db custody.KVStore, id uint64) error {
	return v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		reg, err := v.config.Registry(db)
		if err != nil {
			return err
		}
		if _, _, err := ownerCaller(ctx, reg); err != nil {
			return err
		}
		return v.engine.Attempt(ctx, db, reg, id, true)
	})
}

// Deposit moves amount from the caller to the vault. Anybody but the vault
// itself can deposit.
func (v *Vault) Deposit(ctx context.Context, db custody.KVStore, amount uint64) error {
	return v.run(ctx, db, func(ctx context.Context, db custody.KVStore) error {
		caller, ok := custody.GetCaller(ctx)
		if !ok {
			return errors.Wrap(errors.ErrUnauthorized, "no caller")
		}
		if caller.Equals(v.address) {
			return errors.Wrap(errors.ErrInput, "vault cannot deposit to itself")
		}
		if amount == 0 {
			return errors.Wrap(errors.ErrAmount, "zero deposit")
		}
		if err := v.env.Transfer(ctx, db, caller, v.address, amount, nil); err != nil {
			return errors.Wrap(err, "deposit")
		}
		_, err := v.events.Emit(db, Event{Kind: EventDeposit, Caller: caller, Amount: amount})
		return err
	})
}

// run executes fn inside a savepoint. Changes are kept only if fn succeeds.
// Observers are notified about the events emitted by fn unless this is a
// call made by a destination during an execution.
func (v *Vault) run(ctx context.Context, db custody.KVStore, fn func(context.Context, custody.KVStore) error) error {
	start, err := v.events.EventCount(db)
	if err != nil {
		return err
	}

	cache := cacheWrap(db)
	if err := fn(ctx, cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	if isNested(ctx) || len(v.observers) == 0 {
		return nil
	}
	evs, err := v.events.Events(db, start)
	if err != nil {
		return err
	}
	for _, ev := range evs {
		for _, o := range v.observers {
			o.Observe(ctx, ev)
		}
	}
	return nil
}

// IsOwner returns true if the address belongs to an owner.
func (v *Vault) IsOwner(db custody.ReadOnlyKVStore, addr custody.Address) (bool, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return false, err
	}
	return reg.IsOwner(addr), nil
}

// OwnerAt returns the owner at given position.
func (v *Vault) OwnerAt(db custody.ReadOnlyKVStore, i int) (custody.Address, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return nil, err
	}
	return reg.OwnerAt(i)
}

// Owners returns all owners in their order.
func (v *Vault) Owners(db custody.ReadOnlyKVStore) ([]custody.Address, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return nil, err
	}
	return reg.Owners(), nil
}

// Quorum returns the number of confirmations required for an execution.
func (v *Vault) Quorum(db custody.ReadOnlyKVStore) (uint32, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return 0, err
	}
	return reg.Quorum(), nil
}

// TransactionCount returns the number of transactions ever submitted.
func (v *Vault) TransactionCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return v.ledger.TransactionCount(db)
}

// Transaction returns the transaction with given id.
func (v *Vault) Transaction(db custody.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	return v.ledger.Transaction(db, id)
}

// HasConfirmed returns true if the address confirmed the transaction.
func (v *Vault) HasConfirmed(db custody.ReadOnlyKVStore, id uint64, addr custody.Address) (bool, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return false, err
	}
	if _, err := v.ledger.Transaction(db, id); err != nil {
		return false, err
	}
	pos, ok := reg.Index(addr)
	if !ok {
		return false, nil
	}
	conf, err := v.confirmations.Load(db, id)
	if err != nil {
		return false, err
	}
	return conf.Has(pos), nil
}

// ConfirmationCount returns the number of owners that confirmed the
// transaction.
func (v *Vault) ConfirmationCount(db custody.ReadOnlyKVStore, id uint64) (int, error) {
	if _, err := v.ledger.Transaction(db, id); err != nil {
		return 0, err
	}
	conf, err := v.confirmations.Load(db, id)
	if err != nil {
		return 0, err
	}
	return conf.Count(), nil
}

// ConfirmedBy returns owners that confirmed the transaction, in the owner
// order.
func (v *Vault) ConfirmedBy(db custody.ReadOnlyKVStore, id uint64) ([]custody.Address, error) {
	reg, err := v.config.Registry(db)
	if err != nil {
		return nil, err
	}
	if _, err := v.ledger.Transaction(db, id); err != nil {
		return nil, err
	}
	conf, err := v.confirmations.Load(db, id)
	if err != nil {
		return nil, err
	}
	var res []custody.Address
	for _, pos := range conf.Positions() {
		o, err := reg.OwnerAt(pos)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrState, "confirmation of unknown owner %d", pos)
		}
		res = append(res, o)
	}
	return res, nil
}

// Balance returns the value held by the vault.
func (v *Vault) Balance(db custody.ReadOnlyKVStore) (uint64, error) {
	return v.env.Balance(db, v.address)
}

// Events returns the events with a sequence greater or equal to since.
func (v *Vault) Events(db custody.ReadOnlyKVStore, since uint64) ([]Event, error) {
	return v.events.Events(db, since)
}

// EventCount returns the number of events in the log.
func (v *Vault) EventCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return v.events.EventCount(db)
}
