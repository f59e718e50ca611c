package orm

import (
	"github.com/iov-one/custody"
)

// Validater is implemented by values that can check their own state.
type Validater interface {
	Validate() error
}

// Object is a value together with the primary key it is stored under.
type Object interface {
	Keyed
	Cloneable
	Validater
	Value() custody.Persistent
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of the same type, ready to be decoded
// into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a model that can be wrapped by SimpleObj.
type CloneableData interface {
	Validater
	custody.Persistent
	Copy() CloneableData
}
