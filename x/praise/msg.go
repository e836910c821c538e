package praise

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

var (
	_ shine.Msg = (*PostMsg)(nil)
	_ shine.Msg = (*VoteMsg)(nil)
	_ shine.Msg = (*BindMemberMsg)(nil)
	_ shine.Msg = (*UnbindMemberMsg)(nil)
	_ shine.Msg = (*ConfigureMsg)(nil)
	_ shine.Msg = (*ResetMsg)(nil)
	_ shine.Msg = (*PurgeMsg)(nil)
)

func (PostMsg) Path() string {
	return "praise/post"
}

func (m *PostMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Author", m.Author.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if len(m.Note) > maxNoteLen {
		errs = errors.Append(errs, errors.Field("Note", errors.ErrInput, "too long"))
	}
	return errs
}

func (VoteMsg) Path() string {
	return "praise/vote"
}

func (m *VoteMsg) Validate() error {
	var errs error
	if m.PostID == 0 {
		errs = errors.AppendField(errs, "PostID", errors.ErrEmpty)
	}
	return errors.AppendField(errs, "Voter", m.Voter.Validate())
}

func (BindMemberMsg) Path() string {
	return "praise/bind"
}

func (m *BindMemberMsg) Validate() error {
	errs := errors.AppendField(nil, "Member", m.Member.Validate())
	return errors.AppendField(errs, "Address", m.Address.Validate())
}

func (UnbindMemberMsg) Path() string {
	return "praise/unbind"
}

func (m *UnbindMemberMsg) Validate() error {
	return errors.AppendField(nil, "Member", m.Member.Validate())
}

func (ConfigureMsg) Path() string {
	return "praise/configure"
}

// Validate checks only the patch fields that are set. The patched
// configuration is validated as a whole before it is saved.
func (m *ConfigureMsg) Validate() error {
	p := m.Patch
	if p == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if p.Operator != nil {
		errs = errors.AppendField(errs, "Patch.Operator", p.Operator.Validate())
	}
	if p.Symbol != nil {
		if err := p.Symbol.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Patch.Symbol", errors.ErrInput, err.Error()))
		}
	}
	return errs
}

func (ResetMsg) Path() string {
	return "praise/reset"
}

func (*ResetMsg) Validate() error {
	return nil
}

func (PurgeMsg) Path() string {
	return "praise/purge"
}

func (*PurgeMsg) Validate() error {
	return nil
}
