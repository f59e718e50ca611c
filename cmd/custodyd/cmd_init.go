package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/multisig"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state from a genesis file. The genesis must configure the
vault owners and quorum under the "multisig" key and may fund accounts under
the "cash" key:

  {
    "multisig": {"owners": ["<address>", ...], "quorum": 2},
    "cash": [{"address": "<address>", "amount": 100}]
  }

Use "-" to read the genesis from the standard input.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "-", "Path to the genesis file.")
	)
	fl.Parse(args)

	var raw []byte
	var err error
	if *genesisFl == "-" {
		raw, err = ioutil.ReadAll(input)
	} else {
		raw, err = ioutil.ReadFile(*genesisFl)
	}
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis: %s", err)
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
	}
	if _, ok := opts["multisig"]; !ok {
		return errors.Wrap(errors.ErrInput, "genesis does not configure the vault")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	inits := custody.ChainInitializers(multisig.Initializer{}, cash.Initializer{})
	if err := a.exec(func(db custody.KVStore) error {
		return inits.FromGenesis(opts, db)
	}); err != nil {
		return err
	}
	return writeVault(output, a)
}

func cmdIssue(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create new value and credit it to an account. This is an administrative
operation of the host and does not go through the vault.
`)
		fl.PrintDefaults()
	}
	var (
		toFl     = flAddress(fl, "to", "", "Account that receives the value.")
		amountFl = fl.Uint64("amount", 0, "Amount to create.")
	)
	fl.Parse(args)

	if err := toFl.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.exec(func(db custody.KVStore) error {
		return a.ctrl.IssueCoins(db, *toFl, *amountFl)
	}); err != nil {
		return err
	}
	return writeBalance(output, a, *toFl)
}
