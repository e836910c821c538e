package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/shine"
)

// commands is a register of all available commands. The name is matched
// with the first argument given.
//
// A command reads from input, writes to output and parses the remaining
// command line arguments with the flag package. Commands that build a
// transaction write it to the output so that they can be combined into a
// pipeline:
//
//	$ shinecli post -author alice -recipient bob -note "thanks" \
//	    | shinecli sign \
//	    | shinecli submit
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"bind":        cmdBind,
	"configure":   cmdConfigure,
	"keyaddr":     cmdKeyaddr,
	"keygen":      cmdKeygen,
	"post":        cmdPost,
	"purge":       cmdPurge,
	"query":       cmdQuery,
	"reset":       cmdReset,
	"send-tokens": cmdSendTokens,
	"sign":        cmdSignTransaction,
	"submit":      cmdSubmitTransaction,
	"unbind":      cmdUnbind,
	"version":     cmdVersion,
	"view":        cmdTransactionView,
	"vote":        cmdVote,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the shine application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, shine.Version())
	return err
}
