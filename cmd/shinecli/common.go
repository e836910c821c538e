package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	shined "github.com/iov-one/shine/cmd/shined/app"
	"github.com/iov-one/shine/crypto"
	"github.com/iov-one/shine/errors"
	"golang.org/x/crypto/ed25519"
)

const txHeaderSize = 4

// writeTx serializes the transaction using protocol buffers. The first
// bytes written hold the size of the message so that transactions can be
// streamed.
func writeTx(w io.Writer, tx *shined.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

// readTx reads a single transaction written by writeTx.
func readTx(r io.Reader) (*shined.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, errors.Wrap(errors.ErrInput, "no transaction header")
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, errors.Wrap(errors.ErrInput, "truncated transaction")
	}

	var tx shined.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("SHINECLI_PRIV_KEY", os.Getenv("HOME")+"/.shine.priv.key")
}

func decodePrivateKey(path string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", path, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return &crypto.PrivateKey{Ed25519: data}, nil
}

// flagDie terminates the program when an invalid flag value was given.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
