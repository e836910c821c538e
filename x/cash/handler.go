package cash

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r shine.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr shine.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ shine.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	t := Transfer{
		From:   msg.Source,
		To:     msg.Destination,
		Amount: *msg.Amount,
		Memo:   msg.Memo,
	}
	if err := h.control.Transfer(ctx, db, t); err != nil {
		return nil, err
	}
	return &shine.DeliverResult{Log: "sent " + t.Amount.String()}, nil
}

func (h SendHandler) validate(ctx shine.Context, tx shine.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := shine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
