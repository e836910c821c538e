package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/distribution"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transferring funds from the source account to the
destination account. Use -pot to deposit the funds into the distribution pot.
		`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source account address that the funds are sent from.")
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the funds are sent to.")
		potFl    = fl.Bool("pot", false, "Send the funds to the distribution pot. Cannot be used with -dst.")
		amountFl = flCoin(fl, "amount", "1 EOS", "An amount that is to be transferred between the source and the destination accounts.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Parse(args)

	dst := *dstFl
	if *potFl {
		if len(dst) != 0 {
			flagDie("-pot and -dst cannot be used together")
		}
		dst = distribution.PotAccount
	}

	return writeMsg(output, &cash.SendMsg{
		Source:      *srcFl,
		Destination: dst,
		Amount:      amountFl,
		Memo:        *memoFl,
	})
}
