package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var _ Object = (*SimpleObj)(nil)

// SimpleObj pairs a model with its primary key. ModelBucket stores every
// model through it.
type SimpleObj struct {
	key   []byte
	value Model
}

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Value() custody.Persistent {
	return o.value
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires both a key and a model, then validates the model.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object holding a zero model of the same type and a copy
// of the key.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	return &SimpleObj{
		key:   cloneKey(o.key),
		value: zero,
	}
}

func cloneKey(key []byte) []byte {
	if len(key) == 0 {
		return nil
	}
	return append([]byte(nil), key...)
}
