package cash

import (
	"context"
	"fmt"

	"github.com/iov-one/custody"
)

// Receiver is implemented by destinations that act upon incoming value.
// The context carries the sender as the caller. Returning an error rejects
// the value.
type Receiver interface {
	Receive(ctx context.Context, db custody.KVStore, from custody.Address, amount uint64, payload []byte) error
}

// ReceiverFunc allows to use a function as a Receiver.
type ReceiverFunc func(ctx context.Context, db custody.KVStore, from custody.Address, amount uint64, payload []byte) error

// Receive calls fn.
func (fn ReceiverFunc) Receive(ctx context.Context, db custody.KVStore, from custody.Address, amount uint64, payload []byte) error {
	return fn(ctx, db, from, amount, payload)
}

// Router maps destination addresses to their receivers.
type Router struct {
	receivers map[string]Receiver
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{
		receivers: make(map[string]Receiver),
	}
}

// Register assigns the receiver to the address. Registering the same address
// twice panics.
func (r *Router) Register(addr custody.Address, rcv Receiver) {
	if err := addr.Validate(); err != nil {
		panic(fmt.Sprintf("invalid receiver address: %s", err))
	}
	key := string(addr)
	if _, ok := r.receivers[key]; ok {
		panic(fmt.Sprintf("receiver for %s already registered", addr))
	}
	r.receivers[key] = rcv
}

// Route returns the receiver of the address or nil.
func (r *Router) Route(addr custody.Address) Receiver {
	return r.receivers[string(addr)]
}
