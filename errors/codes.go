package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is the code of a nil error.
	SuccessCode = 0

	// Errors that do not carry a code are reported with internalCode and,
	// outside of debug mode, with internalLog as their message.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Code returns the code of the root error that err wraps, or the internal
// code if err does not wrap a registered error.
func Code(err error) uint32 {
	if isNil(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(interface{ Code() uint32 }); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
}

// Info returns the code and the message of err as they can be shown to a
// client. In debug mode the message contains the full stack trace and
// nothing is redacted.
func Info(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessCode, ""
	}
	code := Code(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	return code, Redact(err).Error()
}

// Redact replaces errors that must not be shown to a client, unregistered
// errors and recovered panics, with a generic internal error.
func Redact(err error) error {
	if Code(err) == internalCode || ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	return err
}
