package cash

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Environment moves value between accounts and hands the control over to
// the destination.
type Environment struct {
	ctrl   Controller
	router *Router
}

// NewEnvironment returns an environment. Router may be nil if no destination
// reacts to incoming value.
func NewEnvironment(ctrl Controller, router *Router) *Environment {
	if router == nil {
		router = NewRouter()
	}
	return &Environment{ctrl: ctrl, router: router}
}

// Balance returns the amount held by the holder.
func (e *Environment) Balance(db custody.ReadOnlyKVStore, holder custody.Address) (uint64, error) {
	return e.ctrl.Balance(db, holder)
}

// Transfer moves amount from src to dst and then delivers the payload to the
// receiver of dst, if any. The value is already moved when the receiver is
// called. A receiver error is returned as is and the caller must drop all
// changes made to db.
func (e *Environment) Transfer(ctx context.Context, db custody.KVStore, src, dst custody.Address, amount uint64, payload []byte) error {
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount > 0 {
		if err := e.ctrl.MoveCoins(db, src, dst, amount); err != nil {
			return err
		}
	}

	rcv := e.router.Route(dst)
	if rcv == nil {
		return nil
	}
	ctx = custody.WithCaller(ctx, src)
	return rcv.Receive(ctx, db, src, amount, payload)
}
