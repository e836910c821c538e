package praise

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/orm"
)

const (
	maxMemberIDLen = 64
	maxNoteLen     = 256
)

// MemberID is an opaque identity of a participant.
type MemberID []byte

// MemberIDFromHandle returns the member identity derived from an external
// handle, for example a chat user name.
func MemberIDFromHandle(handle string) MemberID {
	sum := sha256.Sum256([]byte(handle))
	return MemberID(sum[:])
}

// Validate returns an error if the identity is empty or too long.
func (m MemberID) Validate() error {
	switch n := len(m); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "member id")
	case n > maxMemberIDLen:
		return errors.Wrapf(errors.ErrInput, "member id too long: %d", n)
	}
	return nil
}

// Equals returns true if both identities are the same.
func (m MemberID) Equals(o MemberID) bool {
	return string(m) == string(o)
}

func (m MemberID) String() string {
	return hex.EncodeToString(m)
}

// MarshalJSON encodes the identity as a hex string.
func (m MemberID) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a hex encoded identity.
func (m *MemberID) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "member id hex")
	}
	*m = b
	return nil
}

// PostKey returns the primary key of a post.
func PostKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// GuardKey returns the key of the (post, voter) pair in the vote
// deduplication guard. Two different pairs never share a key.
func GuardKey(postID uint64, voter MemberID) []byte {
	key := make([]byte, 8, 8+len(voter))
	binary.BigEndian.PutUint64(key, postID)
	return append(key, voter...)
}

var _ orm.Model = (*Post)(nil)

func (m *Post) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Author", m.Author.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if len(m.Note) > maxNoteLen {
		errs = errors.AppendField(errs, "Note", errors.ErrInput)
	}
	return errs
}

var _ orm.Model = (*Vote)(nil)

func (m *Vote) Validate() error {
	var errs error
	if m.PostID == 0 {
		errs = errors.AppendField(errs, "PostID", errors.ErrEmpty)
	}
	return errors.AppendField(errs, "Voter", m.Voter.Validate())
}

var _ orm.Model = (*Seen)(nil)

func (m *Seen) Validate() error {
	var errs error
	if m.PostID == 0 {
		errs = errors.AppendField(errs, "PostID", errors.ErrEmpty)
	}
	return errors.AppendField(errs, "Voter", m.Voter.Validate())
}

var _ orm.Model = (*MemberStat)(nil)

func (m *MemberStat) Validate() error {
	return errors.AppendField(nil, "Member", m.Member.Validate())
}

// IsZero returns true if none of the counters was ever incremented.
func (m *MemberStat) IsZero() bool {
	return m.PraisePosted == 0 &&
		m.PraiseVoteReceived == 0 &&
		m.VoteGivenExplicit == 0 &&
		m.VoteReceivedImplicit == 0 &&
		m.VoteReceivedExplicit == 0
}

var _ orm.Model = (*AccountBinding)(nil)

func (m *AccountBinding) Validate() error {
	errs := errors.AppendField(nil, "Member", m.Member.Validate())
	return errors.AppendField(errs, "Address", m.Address.Validate())
}

var _ orm.Model = (*Admin)(nil)

func (m *Admin) Validate() error {
	return errors.AppendField(nil, "Address", m.Address.Validate())
}

// NewPostBucket returns the bucket of posts keyed by their sequence id.
func NewPostBucket() orm.ModelBucket {
	return orm.NewModelBucket("post", &Post{})
}

// NewVoteBucket returns the bucket of votes, indexed by the post they were
// given to.
func NewVoteBucket() orm.ModelBucket {
	return orm.NewModelBucket("vote", &Vote{},
		orm.WithIndex("post", votePostIndexer, false))
}

func votePostIndexer(obj orm.Object) ([]byte, error) {
	v, ok := obj.Value().(*Vote)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return PostKey(v.PostID), nil
}

// NewSeenBucket returns the vote deduplication guard bucket keyed by
// GuardKey.
func NewSeenBucket() orm.ModelBucket {
	return orm.NewModelBucket("seen", &Seen{})
}

// NewStatBucket returns the bucket of member counters. Stats are keyed by a
// sequence so that iteration follows the order members were first seen.
func NewStatBucket() orm.ModelBucket {
	return orm.NewModelBucket("memstat", &MemberStat{},
		orm.WithIndex("member", statMemberIndexer, true))
}

func statMemberIndexer(obj orm.Object) ([]byte, error) {
	s, ok := obj.Value().(*MemberStat)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return s.Member, nil
}

// NewAccountBucket returns the bucket of account bindings keyed by member
// id and uniquely indexed by the bound address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("account", &AccountBinding{},
		orm.WithIndex("address", accountAddressIndexer, true))
}

func accountAddressIndexer(obj orm.Object) ([]byte, error) {
	b, ok := obj.Value().(*AccountBinding)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return b.Address, nil
}

// RegisterQuery exposes the praise buckets for queries.
func RegisterQuery(qr shine.QueryRouter) {
	NewPostBucket().Register("posts", qr)
	NewVoteBucket().Register("votes", qr)
	NewStatBucket().Register("stats", qr)
	NewAccountBucket().Register("accounts", qr)
}
