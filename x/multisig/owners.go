package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// MaxOwners is the maximum number of owners a vault can have. Confirmations
// are tracked in a bitset indexed by the owner position.
const MaxOwners = 255

// OwnerRegistry is the immutable set of owners and the quorum required to
// execute a transaction.
type OwnerRegistry struct {
	owners []custody.Address
	index  map[string]int
	quorum uint32
}

// NewOwnerRegistry validates the configuration and returns a registry. The
// order of owners is preserved.
func NewOwnerRegistry(owners []custody.Address, quorum uint32) (*OwnerRegistry, error) {
	switch n := len(owners); {
	case n == 0:
		return nil, errors.Wrap(ErrInvalidConfiguration, "no owners")
	case n > MaxOwners:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "%d owners, max %d", n, MaxOwners)
	}
	if quorum < 1 || int(quorum) > len(owners) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "quorum %d for %d owners", quorum, len(owners))
	}

	r := &OwnerRegistry{
		owners: make([]custody.Address, len(owners)),
		index:  make(map[string]int, len(owners)),
		quorum: quorum,
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "owner %d: %s", i, err)
		}
		if _, ok := r.index[string(o)]; ok {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "duplicated owner %s", o)
		}
		r.owners[i] = o.Clone()
		r.index[string(o)] = i
	}
	return r, nil
}

// IsOwner returns true if the address belongs to an owner.
func (r *OwnerRegistry) IsOwner(addr custody.Address) bool {
	_, ok := r.index[string(addr)]
	return ok && len(addr) != 0
}

// Index returns the position of the owner.
func (r *OwnerRegistry) Index(addr custody.Address) (int, bool) {
	i, ok := r.index[string(addr)]
	return i, ok
}

// OwnerAt returns the owner at given position.
func (r *OwnerRegistry) OwnerAt(i int) (custody.Address, error) {
	if i < 0 || i >= len(r.owners) {
		return nil, errors.Wrapf(errors.ErrNotFound, "owner %d", i)
	}
	return r.owners[i].Clone(), nil
}

// Owners returns a copy of all owners in their original order.
func (r *OwnerRegistry) Owners() []custody.Address {
	res := make([]custody.Address, len(r.owners))
	for i, o := range r.owners {
		res[i] = o.Clone()
	}
	return res
}

// Quorum returns the number of confirmations required for an execution.
func (r *OwnerRegistry) Quorum() uint32 {
	return r.quorum
}

// Len returns the number of owners.
func (r *OwnerRegistry) Len() int {
	return len(r.owners)
}

// Owner is a single entry of the persisted owner list.
type Owner struct {
	Address custody.Address
}

// Configuration is the persisted form of the OwnerRegistry.
type Configuration struct {
	Owners []Owner
	Quorum uint32
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return orm.Marshal(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return orm.Unmarshal(bz, c)
}

func (c *Configuration) Validate() error {
	_, err := c.registry()
	return err
}

func (c *Configuration) Copy() orm.CloneableData {
	owners := make([]Owner, len(c.Owners))
	for i, o := range c.Owners {
		owners[i] = Owner{Address: o.Address.Clone()}
	}
	return &Configuration{Owners: owners, Quorum: c.Quorum}
}

func (c *Configuration) registry() (*OwnerRegistry, error) {
	addrs := make([]custody.Address, len(c.Owners))
	for i, o := range c.Owners {
		addrs[i] = o.Address
	}
	return NewOwnerRegistry(addrs, c.Quorum)
}

func configurationOf(r *OwnerRegistry) *Configuration {
	c := &Configuration{
		Owners: make([]Owner, len(r.owners)),
		Quorum: r.quorum,
	}
	for i, o := range r.owners {
		c.Owners[i] = Owner{Address: o.Clone()}
	}
	return c
}

var configKey = []byte("config")

// ConfigurationBucket stores the owner registry of the vault.
type ConfigurationBucket struct {
	orm.ModelBucket
}

// NewConfigurationBucket returns a bucket for the vault configuration.
func NewConfigurationBucket() ConfigurationBucket {
	return ConfigurationBucket{
		ModelBucket: orm.NewModelBucket("msconfig", &Configuration{}),
	}
}

// Registry loads the owner registry. It fails with errors.ErrState if the
// vault was never initialized.
func (b ConfigurationBucket) Registry(db custody.ReadOnlyKVStore) (*OwnerRegistry, error) {
	var c Configuration
	switch err := b.One(db, configKey, &c); {
	case err == nil:
		return c.registry()
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrState, "vault not initialized")
	default:
		return nil, err
	}
}

// Create persists the registry. A vault can be initialized only once.
func (b ConfigurationBucket) Create(db custody.KVStore, r *OwnerRegistry) error {
	switch err := b.Has(db, configKey); {
	case err == nil:
		return errors.Wrap(ErrInvalidConfiguration, "vault already initialized")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, configKey, configurationOf(r))
}
