package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "multisig"

// Initializer fulfils the Initializer interface to load the vault
// configuration from the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse the owners and the quorum from genesis and save
// them in the database. Nothing is done if the genesis does not configure a
// vault.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf struct {
		Owners []custody.Address `json:"owners"`
		Quorum uint32            `json:"quorum"`
	}
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return err
	}
	reg, err := NewOwnerRegistry(conf.Owners, conf.Quorum)
	if err != nil {
		return errors.Wrap(err, "genesis")
	}
	return NewConfigurationBucket().Create(kv, reg)
}
