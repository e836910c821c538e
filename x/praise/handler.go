package praise

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
	"github.com/iov-one/shine/x"
)

// RegisterRoutes registers all praise message handlers.
func RegisterRoutes(r shine.Registry, auth x.Authenticator, ledger *Ledger) {
	r.Handle(PostMsg{}.Path(), &postHandler{auth: auth, ledger: ledger})
	r.Handle(VoteMsg{}.Path(), &voteHandler{auth: auth, ledger: ledger})
	r.Handle(BindMemberMsg{}.Path(), &bindHandler{auth: auth, ledger: ledger})
	r.Handle(UnbindMemberMsg{}.Path(), &unbindHandler{auth: auth, ledger: ledger})
	r.Handle(ResetMsg{}.Path(), &resetHandler{auth: auth, ledger: ledger})
	r.Handle(PurgeMsg{}.Path(), &resetHandler{auth: auth, ledger: ledger, purge: true})
	r.Handle(ConfigureMsg{}.Path(), gconf.NewUpdateConfigurationHandler(ConfigPkg, &Configuration{}, auth, CurrentAdmin))
}

// authorizeMember requires the signature of the operator or of the account
// the member is bound to.
func authorizeMember(ctx shine.Context, db shine.ReadOnlyKVStore, auth x.Authenticator, ledger *Ledger, member MemberID) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	bound, err := ledger.Binding(db, member)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "member binding")
	}
	if _, ok := x.AnyAddress(ctx, auth, conf.Operator, bound); !ok {
		return errors.Wrap(errors.ErrUnauthorized, "operator or member account signature required")
	}
	return nil
}

func authorizeAdmin(ctx shine.Context, db shine.ReadOnlyKVStore, auth x.Authenticator) error {
	admin, err := CurrentAdmin(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return nil
}

type postHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ shine.Handler = (*postHandler)(nil)

func (h *postHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

func (h *postHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ledger.RecordPost(db, msg.Author, msg.Recipient, msg.Note)
	if err != nil {
		return nil, err
	}
	postsTotal.Inc()
	return &shine.DeliverResult{Data: PostKey(id)}, nil
}

func (h *postHandler) validate(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*PostMsg, error) {
	var msg PostMsg
	if err := shine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeMember(ctx, db, h.auth, h.ledger, msg.Author); err != nil {
		return nil, err
	}
	return &msg, nil
}

type voteHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ shine.Handler = (*voteHandler)(nil)

func (h *voteHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ledger.Post(db, msg.PostID); err != nil {
		return nil, err
	}
	voted, err := h.ledger.HasVoted(db, msg.PostID, msg.Voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, errors.Wrap(ErrAlreadyVoted, "voter already voted for that post")
	}
	return &shine.CheckResult{}, nil
}

func (h *voteHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.RecordVote(db, msg.PostID, msg.Voter); err != nil {
		if ErrAlreadyVoted.Is(err) {
			votesDuplicateTotal.Inc()
		}
		return nil, err
	}
	votesTotal.Inc()
	return &shine.DeliverResult{Data: PostKey(msg.PostID)}, nil
}

func (h *voteHandler) validate(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*VoteMsg, error) {
	var msg VoteMsg
	if err := shine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeMember(ctx, db, h.auth, h.ledger, msg.Voter); err != nil {
		return nil, err
	}
	return &msg, nil
}

type bindHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ shine.Handler = (*bindHandler)(nil)

func (h *bindHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

func (h *bindHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.BindMember(db, msg.Member, msg.Address); err != nil {
		return nil, err
	}
	return &shine.DeliverResult{Data: msg.Member}, nil
}

func (h *bindHandler) validate(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*BindMemberMsg, error) {
	var msg BindMemberMsg
	if err := shine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if h.ledger.IsReserved(msg.Address) {
		return nil, errors.Field("Address", errors.ErrInput, "reserved address")
	}
	return &msg, nil
}

type unbindHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ shine.Handler = (*unbindHandler)(nil)

func (h *unbindHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

func (h *unbindHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.UnbindMember(db, msg.Member); err != nil {
		return nil, err
	}
	return &shine.DeliverResult{Data: msg.Member}, nil
}

func (h *unbindHandler) validate(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*UnbindMemberMsg, error) {
	var msg UnbindMemberMsg
	if err := shine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if _, err := h.ledger.Binding(db, msg.Member); err != nil {
		return nil, errors.Wrap(err, "member is not bound")
	}
	return &msg, nil
}

// resetHandler handles both ResetMsg and PurgeMsg.
type resetHandler struct {
	auth   x.Authenticator
	ledger *Ledger
	purge  bool
}

var _ shine.Handler = (*resetHandler)(nil)

func (h *resetHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

func (h *resetHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	kind, clearFn := "reset", h.ledger.Reset
	if h.purge {
		kind, clearFn = "purge", h.ledger.Purge
	}
	if err := clearFn(db); err != nil {
		return nil, err
	}
	clearsTotal.WithLabelValues(kind).Inc()
	shine.GetLogger(ctx).Info("praise ledger cleared", "kind", kind)
	return &shine.DeliverResult{Log: kind}, nil
}

func (h *resetHandler) validate(ctx shine.Context, db shine.KVStore, tx shine.Tx) error {
	var err error
	if h.purge {
		err = shine.LoadMsg(tx, &PurgeMsg{})
	} else {
		err = shine.LoadMsg(tx, &ResetMsg{})
	}
	if err != nil {
		return errors.Wrap(err, "load msg")
	}
	return authorizeAdmin(ctx, db, h.auth)
}
