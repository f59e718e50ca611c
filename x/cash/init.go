package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use custody.Address, so address in hex, not base64
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Amount  uint64          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
