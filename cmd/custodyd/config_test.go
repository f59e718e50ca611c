package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestLoadConfig(t *testing.T) {
	defer withHome(t)()

	conf, err := loadConfig()
	assert.Nil(t, err)
	assert.Equal(t, os.Getenv("CUSTODY_HOME"), conf.Home)
	assert.Equal(t, "none", conf.LogLevel)
	assert.Equal(t, false, conf.Debug)

	os.Setenv("CUSTODY_DEBUG", "true")
	defer os.Unsetenv("CUSTODY_DEBUG")
	conf, err = loadConfig()
	assert.Nil(t, err)
	assert.Equal(t, true, conf.Debug)

	os.Setenv("CUSTODY_DEBUG", "maybe")
	_, err = loadConfig()
	assert.IsErr(t, errors.ErrInput, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(config{LogLevel: "info"}, &buf)
	assert.Nil(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Fatalf("debug message must be filtered: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("info message missing: %s", buf.String())
	}

	_, err = newLogger(config{LogLevel: "loud"}, &buf)
	assert.IsErr(t, errors.ErrInput, err)
}
