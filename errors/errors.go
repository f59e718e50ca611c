package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Codes below 1000 are reserved for this
// package.
var (
	// ErrUnauthorized is returned when the caller is not allowed to perform
	// the operation.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrInput is returned for malformed input.
	ErrInput = Register(4, "invalid input")

	// ErrModel is returned when a model cannot be validated, encoded or
	// decoded.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when an entity with the same key exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks code paths that must never be reached.
	ErrHuman = Register(7, "coding error")

	// ErrState is returned when an operation is not allowed in the current
	// state, for example before the vault is configured.
	ErrState = Register(8, "invalid state")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrAmount is returned for a zero or insufficient amount.
	ErrAmount = Register(10, "invalid amount")

	// ErrOverflow is returned when a value does not fit its type.
	ErrOverflow = Register(11, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the store fails.
	ErrDatabase = Register(12, "database")

	// ErrPanic wraps a recovered panic. Its message is never shown to a
	// client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds all root errors by code.
var registry = map[uint32]*Error{
	internalCode: {code: internalCode, desc: internalLog},
}

// Register declares a new root error. Use it only in package level variable
// declarations. It panics if the code is taken.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error with a code. Errors returned at runtime wrap one of
// them so that a caller can test the kind with Is and a host can map it to
// a code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the code of this root error.
func (e Error) Code() uint32 {
	return e.code
}

// New returns an instance of this error with a message. It is the same as
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is returns true if err is this error or wraps it. A nil *Error matches
// only nil errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Is returns true if err is of the given kind.
func Is(err error, kind *Error) bool {
	return kind.Is(err)
}

// Wrap adds a message to err. The innermost wrap attaches a stack trace.
// Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

// Format prints the message for %s and %v. %v adds the location where the
// error was created and %+v the whole stack trace.
func (w *wrapped) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, w.Error())
	if verb != 'v' {
		return
	}
	st := stackTrace(w)
	switch {
	case len(st) == 0:
	case s.Flag('+'):
		fmt.Fprintf(s, "%+v", st)
	default:
		fmt.Fprintf(s, " [%v]", st[0])
	}
}

type causer interface {
	Cause() error
}

// stackTrace returns the first stack trace found in the chain of causes.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// isNil returns true for nil and for typed nil pointers.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
