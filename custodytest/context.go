package custodytest

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

// Ctx returns a context acting on behalf of the given caller. Logs are
// written to the test output.
func Ctx(t testing.TB, caller custody.Address) context.Context {
	ctx := custody.WithLogger(context.Background(), NewLogger(t))
	if caller != nil {
		ctx = custody.WithCaller(ctx, caller)
	}
	return ctx
}

// NewLogger returns a logger that writes to the test log.
func NewLogger(t testing.TB) log.Logger {
	return log.NewTMLogger(log.NewSyncWriter(testWriter{t}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", p)
	return len(p), nil
}
