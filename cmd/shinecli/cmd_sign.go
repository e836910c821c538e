package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/shine/client"
	"github.com/iov-one/shine/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction from standard input,
adds a signature and writes back to standard output signed transaction.

The chain ID and the nonce are fetched from the node unless both are given.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SHINECLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SHINECLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SHINECLI_PRIV_KEY environment variable to set it.")
		chainFl = fl.String("chain", "", "Chain ID of the network. Fetched from the node if not provided.")
		nonceFl = fl.Int64("nonce", -1, "Sequence of the signature. Fetched from the node if not provided.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	chainID, nonce := *chainFl, *nonceFl
	if chainID == "" || nonce < 0 {
		c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
		if chainID == "" {
			if chainID, err = c.ChainID(); err != nil {
				return fmt.Errorf("cannot fetch chain ID: %s", err)
			}
		}
		if nonce < 0 {
			if nonce, err = c.NextNonce(key.PublicKey().Address()); err != nil {
				return fmt.Errorf("cannot get the next sequence number: %s", err)
			}
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, nonce)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
