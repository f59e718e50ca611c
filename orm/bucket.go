/*
Package orm maps models onto a key value store.

State is split into buckets. A bucket owns the keys starting with its name
and holds objects of a single type, addressed by a primary key. Keys for new
objects come from named sequences kept next to the bucket data.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// SeqID names the default sequence of a bucket.
const SeqID = "id"

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`)

// Bucket stores objects of the same type as its prototype under keys
// prefixed with "<name>:".
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket panics on a name that is not 3 to 10 lowercase letters or
// underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName.MatchString(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the store key of the object with the given primary key. The
// result never shares memory with the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...)
}

// Get loads the object stored under key. A missing key is not an error, the
// result is nil.
func (b Bucket) Get(db custody.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	switch {
	case err != nil:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return nil, nil
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	found, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return found, nil
}

// Parse decodes a raw value into a fresh copy of the prototype.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "%s bucket", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object under its own key.
func (b Bucket) Save(db custody.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(obj.Key()), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b Bucket) Delete(db custody.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Sequence returns the named key sequence of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
