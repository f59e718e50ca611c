package custody

import (
	"encoding/json"

	"github.com/iov-one/custody/errors"
)

// Options are the genesis options.
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []Initializer
}

// FromGenesis passes the options to every initializer in order. The first
// failure stops the chain.
func (c chainInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
//
// As with Marshaller, this may do internal validation on the data
// and errors should be expected.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
