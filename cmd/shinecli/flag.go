package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/x/praise"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized, the process is terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *shine.Address {
	var a shine.Address
	if defaultVal != "" {
		var err error
		a, err = shine.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q shine.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flCoin returns a coin flag value. See flAddress.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c coin.Coin
	if defaultVal != "" {
		var err error
		c, err = coin.ParseHumanFormat(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q coin.Coin flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&c, name, usage)
	return &c
}

// flMember returns a member identity flag value. A member is given by its
// handle, or with the "hex:" prefix by its identity.
func flMember(fl *flag.FlagSet, name, usage string) *praise.MemberID {
	var m memberValue
	fl.Var(&m, name, usage)
	return (*praise.MemberID)(&m)
}

type memberValue praise.MemberID

func (m memberValue) String() string {
	return praise.MemberID(m).String()
}

func (m *memberValue) Set(raw string) error {
	id, err := parseMember(raw)
	if err != nil {
		return err
	}
	*m = memberValue(id)
	return nil
}

func parseMember(raw string) (praise.MemberID, error) {
	if strings.HasPrefix(raw, "hex:") {
		id, err := hex.DecodeString(raw[len("hex:"):])
		if err != nil {
			return nil, err
		}
		return praise.MemberID(id), nil
	}
	if raw == "" {
		return nil, fmt.Errorf("empty member handle")
	}
	return praise.MemberIDFromHandle(raw), nil
}
