package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/client"
	"github.com/iov-one/shine/orm"
	"github.com/iov-one/shine/x/praise"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input, submit it and wait
until it is included in a block.

For a new praise its ID is written out.
`)
		fl.PrintDefaults()
	}
	tmAddrFl := fl.String("tm", env("SHINECLI_TM_ADDR", "http://localhost:26657"),
		"Tendermint node address. You can use SHINECLI_TM_ADDR environment variable to set it.")
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	res, err := c.CommitTx(tx)
	if err != nil {
		return fmt.Errorf("cannot commit transaction: %s", err)
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	return printCommitResult(output, msg, res)
}

func printCommitResult(output io.Writer, msg shine.Msg, res *client.CommitResult) error {
	fmt.Fprintf(output, "height=%d hash=%s\n", res.Height, res.ID)
	if _, ok := msg.(*praise.PostMsg); ok && len(res.Data) != 0 {
		id, err := orm.DecodeSequence(res.Data)
		if err != nil {
			return fmt.Errorf("cannot parse post ID: %s", err)
		}
		fmt.Fprintf(output, "post=%d\n", id)
	}
	return nil
}
