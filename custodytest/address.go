package custodytest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/custody"
)

var addressSeq uint64

// NewCondition returns a unique condition. Each call returns a condition
// that was never returned before within this process.
func NewCondition() custody.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&addressSeq, 1))
	return custody.NewCondition("test", "seq", data)
}

// NewAddress returns a unique address.
func NewAddress() custody.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// custody.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
