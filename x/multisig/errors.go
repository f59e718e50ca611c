package multisig

import (
	"github.com/iov-one/custody/errors"
)

// multisig takes 1030-1035
var (
	ErrInvalidDestination   = errors.Register(1030, "invalid destination")
	ErrInvalidConfiguration = errors.Register(1031, "invalid configuration")
	ErrAlreadyConfirmed     = errors.Register(1032, "already confirmed")
	ErrNotConfirmed         = errors.Register(1033, "not confirmed")
	ErrAlreadyExecuted      = errors.Register(1034, "already executed")
	ErrExecutionFailed      = errors.Register(1035, "execution failed")
)
