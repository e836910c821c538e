package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/shine"
	shined "github.com/iov-one/shine/cmd/shined/app"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/x/praise"
)

// writeMsg validates the message and writes an unsigned transaction
// carrying it.
func writeMsg(output io.Writer, msg shine.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	var tx shined.Tx
	if err := tx.SetMsg(msg); err != nil {
		return err
	}
	_, err := writeTx(output, &tx)
	return err
}

func cmdPost(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that praises the recipient. The author is credited with
a posted praise and the recipient with an implicit vote.
`)
		fl.PrintDefaults()
	}
	var (
		authorFl    = flMember(fl, "author", "Handle of the member writing the praise.")
		recipientFl = flMember(fl, "recipient", "Handle of the praised member.")
		noteFl      = fl.String("note", "", "Optional text of the praise.")
	)
	fl.Parse(args)

	return writeMsg(output, &praise.PostMsg{
		Author:    *authorFl,
		Recipient: *recipientFl,
		Note:      *noteFl,
	})
}

func cmdVote(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that votes for a praise. A member can vote for a praise
only once.
`)
		fl.PrintDefaults()
	}
	var (
		postFl  = fl.Uint64("post", 0, "ID of the praise to vote for.")
		voterFl = flMember(fl, "voter", "Handle of the voting member.")
	)
	fl.Parse(args)

	return writeMsg(output, &praise.VoteMsg{
		PostID: *postFl,
		Voter:  *voterFl,
	})
}

func cmdBind(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that binds a member to the account rewards are paid to.
Must be signed by the praise admin.
`)
		fl.PrintDefaults()
	}
	var (
		memberFl  = flMember(fl, "member", "Handle of the member.")
		addressFl = flAddress(fl, "address", "", "Account address the rewards of the member are paid to.")
	)
	fl.Parse(args)

	return writeMsg(output, &praise.BindMemberMsg{
		Member:  *memberFl,
		Address: *addressFl,
	})
}

func cmdUnbind(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that removes the account binding of a member. Must be
signed by the praise admin.
`)
		fl.PrintDefaults()
	}
	memberFl := flMember(fl, "member", "Handle of the member.")
	fl.Parse(args)

	return writeMsg(output, &praise.UnbindMemberMsg{Member: *memberFl})
}

func cmdConfigure(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that updates the praise configuration. Only the values
that are provided are changed. Must be signed by the praise admin.
`)
		fl.PrintDefaults()
	}
	var (
		operatorFl  = flAddress(fl, "operator", "", "Address allowed to post and vote for any member.")
		tickerFl    = fl.String("ticker", "", "Ticker of the pot currency.")
		precisionFl = fl.Uint("precision", 0, "Precision of the pot currency. Used only with -ticker.")
		receivedFl  = fl.String("vote-received-weight", "", "Weight of the received votes category, for example 9/10.")
		postedFl    = fl.String("praise-posted-weight", "", "Weight of the posted praise category.")
		givenFl     = fl.String("vote-given-weight", "", "Weight of the given votes category.")
	)
	fl.Parse(args)

	patch := &praise.Configuration{Operator: *operatorFl}
	if *tickerFl != "" {
		patch.Symbol = &coin.Symbol{Ticker: *tickerFl, Precision: uint32(*precisionFl)}
	}
	for _, w := range []struct {
		raw  string
		dest **shine.Fraction
	}{
		{*receivedFl, &patch.VoteReceivedWeight},
		{*postedFl, &patch.PraisePostedWeight},
		{*givenFl, &patch.VoteGivenWeight},
	} {
		if w.raw == "" {
			continue
		}
		f, err := shine.ParseFractionString(w.raw)
		if err != nil {
			flagDie("invalid weight %q: %s", w.raw, err)
		}
		*w.dest = f
	}

	return writeMsg(output, &praise.ConfigureMsg{Patch: patch})
}

func cmdReset(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that clears all praise, votes and rewards. Bindings and
the configuration are kept. Must be signed by the praise admin.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)
	return writeMsg(output, &praise.ResetMsg{})
}

func cmdPurge(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that clears all praise state, including the bindings and
the configuration. Must be signed by the praise admin.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)
	return writeMsg(output, &praise.PurgeMsg{})
}
