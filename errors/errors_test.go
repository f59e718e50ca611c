package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type customError struct{}

func (*customError) Error() string { return "custom error" }

func TestIs(t *testing.T) {
	stdlib := fmt.Errorf("stdlib error")

	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"same root error":         {kind: ErrNotFound, err: ErrNotFound, want: true},
		"other root error":        {kind: ErrNotFound, err: ErrModel, want: false},
		"wrapped by this package": {kind: ErrUnauthorized, err: Wrap(Wrapf(ErrUnauthorized, "caller %d", 1), "confirm"), want: true},
		"wrapped by pkg/errors":   {kind: ErrNotFound, err: errors.Wrap(ErrNotFound, "gone"), want: true},
		"wrapped other error":     {kind: ErrNotFound, err: Wrap(ErrOverflow, "too big"), want: false},
		"created with New":        {kind: ErrState, err: ErrState.Newf("height %d", 3), want: true},
		"stdlib error":            {kind: ErrNotFound, err: stdlib, want: false},
		"wrapped stdlib error":    {kind: ErrNotFound, err: Wrap(stdlib, "wrapped"), want: false},
		"nil kind and nil":        {kind: nil, err: nil, want: true},
		"nil kind and typed nil":  {kind: nil, err: (*customError)(nil), want: true},
		"nil kind and error":      {kind: nil, err: ErrNotFound, want: false},
		"kind and nil":            {kind: ErrNotFound, err: nil, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			if got := Is(tc.err, tc.kind); got != tc.want {
				t.Fatalf("helper: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "nothing") != nil || Wrapf(nil, "nothing %d", 1) != nil {
		t.Fatal("wrapping nil must return nil")
	}

	std := stderrors.New("disk on fire")
	err := Wrapf(Wrap(std, "save"), "block %d", 7)
	if got, want := err.Error(), "block 7: save: disk on fire"; got != want {
		t.Fatalf("want %q message, got %q", want, got)
	}
	if errors.Cause(err) != std {
		t.Fatal("cause must be the original error")
	}

	if got := fmt.Sprintf("%s", err); got != err.Error() {
		t.Fatalf("%%s must print the message only, got %q", got)
	}
	if got := fmt.Sprintf("%v", err); !strings.Contains(got, "errors_test.go") {
		t.Fatalf("%%v must point to the source, got %q", got)
	}
	if got := fmt.Sprintf("%+v", err); !strings.Contains(got, "TestWrap") {
		t.Fatalf("%%+v must print the stack trace, got %q", got)
	}
}

func TestRegister(t *testing.T) {
	e := Register(999, "test only")
	if e.Code() != 999 || e.Error() != "test only" {
		t.Fatalf("unexpected error: %d %q", e.Code(), e)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("registering a code twice must panic")
		}
	}()
	Register(999, "again")
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil": {
			wantCode: SuccessCode,
		},
		"registered": {
			err:      Wrap(ErrNotFound, "transaction"),
			wantCode: ErrNotFound.Code(),
			wantLog:  "transaction: not found",
		},
		"stdlib is redacted": {
			err:      stderrors.New("disk on fire"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"stdlib in debug mode": {
			err:      stderrors.New("disk on fire"),
			debug:    true,
			wantCode: internalCode,
			wantLog:  "disk on fire",
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "secret"),
			wantCode: ErrPanic.Code(),
			wantLog:  internalLog,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Fatalf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Fatalf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("panic message lost: %s", err)
	}
	if Redact(err).Error() != internalLog {
		t.Fatal("panic must be redacted")
	}
}
