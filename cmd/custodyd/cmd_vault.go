package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
)

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose a new transaction. The submitting owner confirms it right away and it
is executed if that is enough to reach the quorum. The transaction is printed
out, including its ID.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl    = flAddress(fl, "from", "", "Owner submitting the transaction.")
		dstFl     = flAddress(fl, "dst", "", "Destination of the value and the payload.")
		valueFl   = fl.Uint64("value", 0, "Amount of value to transfer.")
		payloadFl = fl.String("payload", "", "Data delivered to the destination.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var payload []byte
	if *payloadFl != "" {
		payload = []byte(*payloadFl)
	}

	var id uint64
	if err := a.exec(func(db custody.KVStore) error {
		var err error
		id, err = a.vault.Submit(a.ctx(*fromFl), db, *dstFl, *valueFl, payload)
		return err
	}); err != nil {
		return err
	}
	return writeTransaction(output, a, id)
}

func cmdConfirm(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, `
Confirm a transaction as one of the owners. The transaction is executed if
this confirmation completes the quorum.
`, (*multisig.Vault).Confirm)
}

func cmdRevoke(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, `
Withdraw a confirmation previously given to a transaction that is not yet
executed.
`, (*multisig.Vault).Revoke)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, `
Try to execute a transaction. This is useful when the quorum was reached
while the vault did not hold enough value.
`, (*multisig.Vault).Execute)
}

// txCommand runs an owner operation on a single transaction and prints the
// transaction state afterwards.
func txCommand(
	output io.Writer,
	args []string,
	help string,
	op func(*multisig.Vault, context.Context, custody.KVStore, uint64) error,
) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fl.PrintDefaults()
	}
	var (
		fromFl = flAddress(fl, "from", "", "Owner acting on the transaction.")
		idFl   = fl.Uint64("id", 0, "Transaction ID.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.exec(func(db custody.KVStore) error {
		return op(a.vault, a.ctx(*fromFl), db, *idFl)
	}); err != nil {
		return errors.Wrapf(err, "transaction %d", *idFl)
	}
	return writeTransaction(output, a, *idFl)
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move value from an account into the vault. Anyone can deposit.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl   = flAddress(fl, "from", "", "Account paying the deposit.")
		amountFl = fl.Uint64("amount", 0, "Amount to deposit.")
	)
	fl.Parse(args)

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.exec(func(db custody.KVStore) error {
		return a.vault.Deposit(a.ctx(*fromFl), db, *amountFl)
	}); err != nil {
		return err
	}
	return writeBalance(output, a, a.vault.Address())
}
