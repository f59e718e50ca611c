package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	custody.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrModel
	// is returned.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and ErrNotFound
	// otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// Sequence returns the named sequence of the underlying bucket.
	Sequence(name string) Sequence
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as given prototype.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{
		b: NewBucket(name, NewSimpleObj(nil, proto)),
	}
}

type modelBucket struct {
	b Bucket
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrModel, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", mb.b.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Sequence(name string) Sequence {
	return mb.b.Sequence(name)
}

var _ ModelBucket = (*modelBucket)(nil)
