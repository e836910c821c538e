package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/client"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/distribution"
	"github.com/iov-one/shine/x/praise"
	"github.com/iov-one/shine/x/sigs"
)

// queries maps every supported query path to the decoder of the key given
// on the command line and to the model stored under that path.
var queries = map[string]struct {
	key   func(string) ([]byte, error)
	model func() shine.Persistent
}{
	"/posts":            {postID, func() shine.Persistent { return &praise.Post{} }},
	"/votes/post":       {postID, func() shine.Persistent { return &praise.Vote{} }},
	"/stats/member":     {memberID, func() shine.Persistent { return &praise.MemberStat{} }},
	"/accounts":         {memberID, func() shine.Persistent { return &praise.AccountBinding{} }},
	"/accounts/address": {addressID, func() shine.Persistent { return &praise.AccountBinding{} }},
	"/rewards":          {memberID, func() shine.Persistent { return &distribution.Reward{} }},
	"/wallets":          {addressID, func() shine.Persistent { return &cash.Set{} }},
	"/auth":             {addressID, func() shine.Persistent { return &sigs.UserData{} }},
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Query the application state and print the result as JSON. The key format
depends on the path: a post ID, a member handle or an account address.

Supported paths are: %s
`, supportedPaths())
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SHINECLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SHINECLI_TM_ADDR environment variable to set it.")
		pathFl = fl.String("path", "/rewards", "Path of the queried models.")
		keyFl  = fl.String("key", "", "Key of the queried model.")
	)
	fl.Parse(args)

	q, ok := queries[*pathFl]
	if !ok {
		flagDie("unsupported path %q, use one of %s", *pathFl, supportedPaths())
	}
	key, err := q.key(*keyFl)
	if err != nil {
		flagDie("invalid key %q: %s", *keyFl, err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	models, err := c.Query(*pathFl, key)
	if err != nil {
		return fmt.Errorf("cannot query: %s", err)
	}
	return printModels(output, models, q.model)
}

type queryResult struct {
	Key   string           `json:"key"`
	Value shine.Persistent `json:"value"`
}

func printModels(output io.Writer, models []shine.Model, newModel func() shine.Persistent) error {
	results := make([]queryResult, 0, len(models))
	for _, m := range models {
		value := newModel()
		if err := value.Unmarshal(m.Value); err != nil {
			return fmt.Errorf("cannot decode %X: %s", m.Key, err)
		}
		results = append(results, queryResult{Key: hex.EncodeToString(m.Key), Value: value})
	}
	pretty, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

func supportedPaths() []string {
	paths := make([]string, 0, len(queries))
	for p := range queries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func postID(s string) ([]byte, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return praise.PostKey(n), nil
}

func memberID(s string) ([]byte, error) {
	return parseMember(s)
}

func addressID(s string) ([]byte, error) {
	return shine.ParseAddress(s)
}
