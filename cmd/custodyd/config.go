package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// config is read from the environment.
type config struct {
	Home     string `env:"CUSTODY_HOME"`
	LogLevel string `env:"CUSTODY_LOG_LEVEL" envDefault:"info"`
	// Debug disables redacting of internal errors.
	Debug bool `env:"CUSTODY_DEBUG" envDefault:"false"`
}

func loadConfig() (config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(errors.ErrInput, err.Error())
	}
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return c, errors.Wrap(errors.ErrInput, "CUSTODY_HOME not set and no user home directory")
		}
		c.Home = filepath.Join(dir, ".custodyd")
	}
	return c, nil
}

// newLogger returns a logger writing to w that is filtered according to the
// configured level. Allowed levels are debug, info, error and none.
func newLogger(c config, w io.Writer) (log.Logger, error) {
	allow, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allow), nil
}
