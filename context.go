package custody

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the custody module

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// WithCaller sets the identity of the party invoking an operation. The
// execution environment is responsible for setting it, including for
// destinations that call back into the vault. A later call overrides the
// caller for the derived context only.
func WithCaller(ctx context.Context, caller Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller.Clone())
}

// GetCaller returns the identity of the party invoking an operation.
func GetCaller(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	if !ok || len(val) == 0 {
		return nil, false
	}
	return val, true
}
