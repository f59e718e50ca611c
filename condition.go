package custody

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/iov-one/custody/errors"
)

// Condition names an account that is not controlled by a key, for example
// the vault holding the custodied value. It has the form
//
//   <extension>/<type>/<data>
//
// where extension and type are short names and data is any non empty
// binary value. The account address is the digest of the condition.
type Condition []byte

// NewCondition builds a condition from its parts.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its parts.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	parts := bytes.SplitN(c, []byte{'/'}, 3)
	if len(parts) != 3 || !isConditionName(parts[0]) || !isConditionName(parts[1]) || len(parts[2]) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(parts[0]), string(parts[1]), parts[2], nil
}

// isConditionName returns true for 3 to 8 characters long names made of
// ascii letters, digits, '_' and '-'.
func isConditionName(name []byte) bool {
	if len(name) < 3 || len(name) > 8 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// Validate returns an error if the condition is malformed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the address of the account controlled by the condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

// String returns the condition with the data hex encoded, the same form
// that is accepted by ParseAddress with the "cond:" prefix.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// parseCondition reads the form produced by Condition.String.
func parseCondition(s string) (Condition, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q: want extension/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	c := NewCondition(parts[0], parts[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
