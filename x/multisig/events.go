package multisig

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/tendermint/tendermint/libs/common"
)

// EventKind tells what state transition an event records.
type EventKind uint32

const (
	EventSubmitted EventKind = iota + 1
	EventConfirmed
	EventRevoked
	EventExecuted
	EventQuorumNotObtained
	EventNotEnoughBalance
	EventDeposit
)

var eventNames = map[EventKind]string{
	EventSubmitted:         "Submitted",
	EventConfirmed:         "Confirmed",
	EventRevoked:           "Revoked",
	EventExecuted:          "Executed",
	EventQuorumNotObtained: "QuorumNotObtained",
	EventNotEnoughBalance:  "NotEnoughBalance",
	EventDeposit:           "Deposit",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return fmt.Sprintf("EventKind(%d)", uint32(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a single entry of the vault log. Only the fields relevant for
// the kind are set: transaction events carry TransactionID, confirmations,
// revocations and deposits carry the Caller, executions and deposits carry
// the Amount.
type Event struct {
	Seq           uint64          `json:"seq"`
	Kind          EventKind       `json:"kind"`
	TransactionID uint64          `json:"tx"`
	Caller        custody.Address `json:"caller,omitempty"`
	Amount        uint64          `json:"amount,omitempty"`
}

var _ orm.Model = (*Event)(nil)

func (e *Event) Marshal() ([]byte, error) {
	return orm.Marshal(e)
}

func (e *Event) Unmarshal(bz []byte) error {
	return orm.Unmarshal(bz, e)
}

func (e *Event) Validate() error {
	if _, ok := eventNames[e.Kind]; !ok {
		return errors.Wrapf(errors.ErrModel, "unknown event kind %d", e.Kind)
	}
	return nil
}

func (e *Event) Copy() orm.CloneableData {
	cpy := *e
	cpy.Caller = e.Caller.Clone()
	return &cpy
}

// Tags returns the event as key value pairs, suitable for indexing by a
// host.
func (e Event) Tags() []common.KVPair {
	tags := []common.KVPair{
		{Key: []byte("event"), Value: []byte(e.Kind.String())},
	}
	if e.Kind != EventDeposit {
		tags = append(tags, common.KVPair{Key: []byte("tx"), Value: []byte(strconv.FormatUint(e.TransactionID, 10))})
	}
	if len(e.Caller) != 0 {
		tags = append(tags, common.KVPair{Key: []byte("caller"), Value: []byte(e.Caller.String())})
	}
	if e.Kind == EventDeposit || e.Kind == EventExecuted {
		tags = append(tags, common.KVPair{Key: []byte("amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))})
	}
	return tags
}

// Observer is notified about every event once the operation that emitted it
// completes.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc allows to use a function as an Observer.
type ObserverFunc func(ctx context.Context, e Event)

// Observe calls fn.
func (fn ObserverFunc) Observe(ctx context.Context, e Event) {
	fn(ctx, e)
}

// EventEmitter appends events to the log kept in the store. Events are
// numbered with a dense sequence starting at 0.
type EventEmitter struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewEventEmitter returns an emitter using the default bucket.
func NewEventEmitter() EventEmitter {
	b := orm.NewModelBucket("msevent", &Event{})
	return EventEmitter{
		bucket: b,
		seq:    b.Sequence(orm.SeqID),
	}
}

// Emit appends the event to the log and returns it with the sequence set.
func (e EventEmitter) Emit(db custody.KVStore, ev Event) (Event, error) {
	n, err := e.seq.NextInt(db)
	if err != nil {
		return ev, errors.Wrap(err, "cannot acquire event sequence")
	}
	ev.Seq = n - 1
	if err := e.bucket.Put(db, idKey(ev.Seq), &ev); err != nil {
		return ev, errors.Wrapf(err, "event %s", ev.Kind)
	}
	return ev, nil
}

// EventCount returns the number of events in the log.
func (e EventEmitter) EventCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return e.seq.Latest(db)
}

// Events returns all events with a sequence greater or equal to since, in
// log order.
func (e EventEmitter) Events(db custody.ReadOnlyKVStore, since uint64) ([]Event, error) {
	total, err := e.EventCount(db)
	if err != nil {
		return nil, err
	}
	if since >= total {
		return nil, nil
	}
	res := make([]Event, 0, total-since)
	for seq := since; seq < total; seq++ {
		var ev Event
		if err := e.bucket.One(db, idKey(seq), &ev); err != nil {
			return nil, errors.Wrapf(err, "event %d", seq)
		}
		res = append(res, ev)
	}
	return res, nil
}
