package main

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

// withHome points the commands to a fresh home directory. Returned function
// restores the environment.
func withHome(t testing.TB) func() {
	t.Helper()
	dir, err := ioutil.TempDir("", "custodyd")
	if err != nil {
		t.Fatalf("cannot create home directory: %s", err)
	}
	prevHome, hadHome := os.LookupEnv("CUSTODY_HOME")
	prevLevel, hadLevel := os.LookupEnv("CUSTODY_LOG_LEVEL")
	os.Setenv("CUSTODY_HOME", dir)
	os.Setenv("CUSTODY_LOG_LEVEL", "none")
	return func() {
		restoreEnv("CUSTODY_HOME", prevHome, hadHome)
		restoreEnv("CUSTODY_LOG_LEVEL", prevLevel, hadLevel)
		os.RemoveAll(dir)
	}
}

func restoreEnv(name, val string, ok bool) {
	if ok {
		os.Setenv(name, val)
	} else {
		os.Unsetenv(name)
	}
}

// runCmd executes the command and decodes its JSON output into dest. Dest
// can be nil.
func runCmd(
	t testing.TB,
	cmd func(io.Reader, io.Writer, []string) error,
	input string,
	dest interface{},
	args ...string,
) error {
	t.Helper()
	var out bytes.Buffer
	if err := cmd(strings.NewReader(input), &out, args); err != nil {
		return err
	}
	if dest != nil {
		if err := json.Unmarshal(out.Bytes(), dest); err != nil {
			t.Fatalf("cannot decode output %q: %s", out.String(), err)
		}
	}
	return nil
}

func TestAvailableCommands(t *testing.T) {
	cmds := availableCmds()
	assert.Equal(t, len(commands), len(cmds))
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1] > cmds[i] {
			t.Fatalf("commands not sorted: %v", cmds)
		}
	}
}

func TestCmdVersion(t *testing.T) {
	var out bytes.Buffer
	assert.Nil(t, cmdVersion(nil, &out, nil))
	if !strings.HasPrefix(out.String(), "v0.") {
		t.Fatalf("unexpected version: %q", out.String())
	}
}
