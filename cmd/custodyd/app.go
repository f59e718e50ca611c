package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/multisig"
	"github.com/tendermint/tendermint/libs/log"
)

const dbName = "custody"

// app holds everything a command needs to operate on the vault.
type app struct {
	conf   config
	logger log.Logger
	store  *iavl.CommitStore
	ctrl   cash.BaseController
	vault  *multisig.Vault
}

// openApp loads the latest committed state from the home directory. Close
// must be called to release the database.
func openApp() (*app, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(conf, os.Stderr)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.Home, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	st, err := iavl.NewCommitStore(conf.Home, dbName)
	if err != nil {
		return nil, err
	}
	if err := st.LoadLatestVersion(); err != nil {
		st.Close()
		return nil, err
	}

	logger = logger.With("module", "custodyd")
	ctrl := cash.NewController(cash.NewBucket())
	vault := multisig.NewVault(cash.NewEnvironment(ctrl, nil))
	return &app{
		conf:   conf,
		logger: logger,
		store:  st,
		ctrl:   ctrl,
		vault:  vault,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// logEvent writes a committed vault event to the log.
func logEvent(logger log.Logger, e multisig.Event) {
	tags := e.Tags()
	keyvals := make([]interface{}, 0, 2*len(tags)+2)
	keyvals = append(keyvals, "seq", e.Seq)
	for _, t := range tags {
		keyvals = append(keyvals, string(t.Key), string(t.Value))
	}
	logger.Info("vault event", keyvals...)
}

// ctx returns a context acting on behalf of the caller. Caller can be
// nil.
func (a *app) ctx(caller custody.Address) context.Context {
	ctx := custody.WithLogger(context.Background(), a.logger)
	if caller != nil {
		ctx = custody.WithCaller(ctx, caller)
	}
	return ctx
}

// exec runs fn on a savepoint and commits a new version if it succeeds.
// Events emitted by fn are logged once the version is committed.
func (a *app) exec(fn func(db custody.KVStore) error) error {
	start, err := a.vault.EventCount(a.state())
	if err != nil {
		return err
	}
	cache := a.store.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	id, err := a.store.Commit()
	if err != nil {
		return err
	}
	a.logger.Debug("commit", "version", id.Version)

	events, err := a.vault.Events(a.state(), start)
	if err != nil {
		return err
	}
	for _, e := range events {
		logEvent(a.logger, e)
	}
	return nil
}

// state returns a read only view of the latest state.
func (a *app) state() custody.ReadOnlyKVStore {
	return a.store.Adapter()
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = out.Write(append(raw, '\n'))
	return err
}
