package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
)

func cmdShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a transaction together with the owners that confirmed it.
`)
		fl.PrintDefaults()
	}
	var (
		idFl = fl.Uint64("id", 0, "Transaction ID.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return writeTransaction(output, a, *idFl)
}

func cmdOwners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the vault address, its owners and the quorum.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return writeVault(output, a)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an account. The vault balance is printed if no address
is given.
`)
		fl.PrintDefaults()
	}
	var (
		addrFl = flAddress(fl, "addr", "", "Account address.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr := *addrFl
	if addr == nil {
		addr = a.vault.Address()
	}
	return writeBalance(output, a, addr)
}

func cmdEvents(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the vault events in the order they were emitted.
`)
		fl.PrintDefaults()
	}
	var (
		sinceFl = fl.Uint64("since", 0, "Sequence of the first event to print.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	events, err := a.vault.Events(a.state(), *sinceFl)
	if err != nil {
		return err
	}
	return writeJSON(output, events)
}

type vaultView struct {
	Address custody.Address   `json:"address"`
	Owners  []custody.Address `json:"owners"`
	Quorum  uint32            `json:"quorum"`
	Balance uint64            `json:"balance"`
}

func writeVault(out io.Writer, a *app) error {
	db := a.state()
	owners, err := a.vault.Owners(db)
	if err != nil {
		return err
	}
	quorum, err := a.vault.Quorum(db)
	if err != nil {
		return err
	}
	balance, err := a.vault.Balance(db)
	if err != nil {
		return err
	}
	return writeJSON(out, vaultView{
		Address: a.vault.Address(),
		Owners:  owners,
		Quorum:  quorum,
		Balance: balance,
	})
}

type balanceView struct {
	Address custody.Address `json:"address"`
	Balance uint64          `json:"balance"`
}

func writeBalance(out io.Writer, a *app, addr custody.Address) error {
	balance, err := a.ctrl.Balance(a.state(), addr)
	if err != nil {
		return err
	}
	return writeJSON(out, balanceView{Address: addr, Balance: balance})
}

type transactionView struct {
	*multisig.Transaction
	Confirmations int               `json:"confirmations"`
	ConfirmedBy   []custody.Address `json:"confirmed_by"`
}

func writeTransaction(out io.Writer, a *app, id uint64) error {
	db := a.state()
	tx, err := a.vault.Transaction(db, id)
	if err != nil {
		return errors.Wrapf(err, "transaction %d", id)
	}
	confirmedBy, err := a.vault.ConfirmedBy(db, id)
	if err != nil {
		return err
	}
	return writeJSON(out, transactionView{
		Transaction:   tx,
		Confirmations: len(confirmedBy),
		ConfirmedBy:   confirmedBy,
	})
}
