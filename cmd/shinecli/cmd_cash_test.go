package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/weavetest/assert"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/distribution"
)

func TestCmdSendTokensHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-src", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "5 DOGE",
		"-memo", "a memo",
	}
	if err := cmdSendTokens(nil, &output, args); err != nil {
		t.Fatalf("cannot create a new token transfer transaction: %s", err)
	}

	msg := readMsg(t, &output).(*cash.SendMsg)
	assert.Equal(t, fromHex(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"), []byte(msg.Source))
	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(msg.Destination))
	assert.Equal(t, "a memo", msg.Memo)
	assert.Equal(t, coin.NewCoinp(5, 0, "DOGE"), msg.Amount)
}

func TestCmdSendTokensToPot(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-src", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-pot",
		"-amount", "12.5 EOS",
	}
	if err := cmdSendTokens(nil, &output, args); err != nil {
		t.Fatalf("cannot create a deposit transaction: %s", err)
	}

	msg := readMsg(t, &output).(*cash.SendMsg)
	assert.Equal(t, distribution.PotAccount, msg.Destination)
	assert.Equal(t, coin.NewCoinp(125, 1, "EOS"), msg.Amount)
}
