package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the size of every address.
const AddressLength = 20

// Address identifies an owner, a destination or any other account. It is a
// truncated sha256 digest of a key or a Condition.
type Address []byte

// NewAddress returns the address derived from data. Nil data gives a nil
// address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

// Equals returns true if both addresses hold the same bytes.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of the address that does not share memory.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// Validate returns an error if the address is empty or of a wrong size.
func (a Address) Validate() error {
	switch len(a) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case AddressLength:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	}
}

// String returns the upper case hex form of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the checksummed form of the address with given human
// readable part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 payload: %s", err)
	}
	raw, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return raw, nil
}

// MarshalJSON encodes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any form understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a string")
	}
	return a.Set(s)
}

// Set implements flag.Value interface.
func (a *Address) Set(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders maps a format prefix to its decoder.
var addressDecoders = map[string]func(string) (Address, error){
	"hex":    decodeHexAddress,
	"bech32": decodeBech32Address,
	"cond":   decodeConditionAddress,
}

// ParseAddress reads an address in one of the text forms:
//
//   <hex>, hex:<hex>        raw address bytes
//   bech32:<bech32>         checksummed form, any human readable part
//   cond:<ext>/<type>/<hex> address of a condition
//
// An empty value gives a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown address format %q", format)
	}
	if value == "" {
		return nil, nil
	}
	addr, err := decode(value)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func decodeHexAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
	}
	return raw, nil
}

func decodeBech32Address(s string) (Address, error) {
	_, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
	}
	// bech32 carries 5 bit groups
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 payload: %s", err)
	}
	return raw, nil
}

func decodeConditionAddress(s string) (Address, error) {
	c, err := parseCondition(s)
	if err != nil {
		return nil, err
	}
	return c.Address(), nil
}
