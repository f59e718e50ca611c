package orm

import (
	"github.com/iov-one/custody/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Marshal serializes a model using the amino binary format. The output is
// length prefixed so that even a zero value model has a non empty
// representation.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryLengthPrefixed(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// Unmarshal loads a model serialized with Marshal into ptr.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryLengthPrefixed(bz, ptr); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
