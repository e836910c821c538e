package weavetest

import "github.com/iov-one/shine"

// Handler returns the configured result or error of each phase and counts
// its calls.
type Handler struct {
	CheckResult   shine.CheckResult
	CheckErr      error
	DeliverResult shine.DeliverResult
	DeliverErr    error

	checks   int
	delivers int
}

var _ shine.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int   { return h.checks }
func (h *Handler) DeliverCallCount() int { return h.delivers }

// CallCount returns the number of calls of both phases.
func (h *Handler) CallCount() int { return h.checks + h.delivers }
