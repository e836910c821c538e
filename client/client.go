/*
Package client talks to a shine node over the tendermint rpc. It fetches the
chain id, reads the application state and commits transactions.
*/
package client

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/app"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/sigs"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// CommitResult describes a transaction included in a block.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Data   []byte
	Log    string
}

// Client wraps a tendermint connection to provide access to the shine
// state.
type Client struct {
	conn Conn
}

// NewClient wraps a Client around an existing tendermint connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// ChainID returns the chain id from the genesis of the node.
func (c *Client) ChainID() (string, error) {
	res, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err)
	}
	if res.Genesis == nil {
		return "", errors.Wrap(errors.ErrNotFound, "no genesis")
	}
	return res.Genesis.ChainID, nil
}

// Query returns all models found under the path for the given key. Paths
// are the ones registered by the application, for example "/rewards".
func (c *Client) Query(path string, key []byte) ([]shine.Model, error) {
	res, err := c.conn.ABCIQuery(path, key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query: %s", err)
	}
	resp := res.Response
	if resp.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}

	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode values")
	}
	return app.JoinResults(&keys, &values)
}

// Get loads the single model found under the path for the given key into
// dest. ErrNotFound is returned if there is none.
func (c *Client) Get(path string, key []byte, dest shine.Persistent) error {
	res, err := c.Query(path, key)
	if err != nil {
		return err
	}
	switch len(res) {
	case 0:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, key)
	case 1:
		return dest.Unmarshal(res[0].Value)
	default:
		return errors.Wrapf(errors.ErrDuplicate, "%d results for %s %X", len(res), path, key)
	}
}

// NextNonce returns the sequence the next signature of the address must
// use.
func (c *Client) NextNonce(addr shine.Address) (int64, error) {
	var user sigs.UserData
	switch err := c.Get("/auth", addr, &user); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}

// CommitTx submits the transaction and waits until it is included in a
// block. A transaction rejected by the node is returned as an error of
// the kind the application failed with.
func (c *Client) CommitTx(tx shine.Tx) (*CommitResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	res, err := c.conn.BroadcastTxCommit(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast tx: %s", err)
	}
	if res.CheckTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	if res.DeliverTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.DeliverTx.Code, res.DeliverTx.Log)
	}
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Data:   res.DeliverTx.Data,
		Log:    res.DeliverTx.Log,
	}, nil
}
