package praise

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
)

// Post is a praise given by the author to the recipient.
type Post struct {
	ID        uint64   `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Author    MemberID `protobuf:"bytes,2,opt,name=author,proto3,casttype=MemberID" json:"author,omitempty"`
	Recipient MemberID `protobuf:"bytes,3,opt,name=recipient,proto3,casttype=MemberID" json:"recipient,omitempty"`
	Note      string   `protobuf:"bytes,4,opt,name=note,proto3" json:"note,omitempty"`
}

type postPB Post

func (m *postPB) Reset()         { *m = postPB{} }
func (m *postPB) String() string { return proto.CompactTextString(m) }
func (*postPB) ProtoMessage()    {}

func (m *Post) Marshal() ([]byte, error) {
	return proto.Marshal((*postPB)(m))
}

func (m *Post) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*postPB)(m))
}

// Vote is a single voter's approval of a post.
type Vote struct {
	PostID uint64   `protobuf:"varint,1,opt,name=post_id,json=postId,proto3" json:"post_id,omitempty"`
	Voter  MemberID `protobuf:"bytes,2,opt,name=voter,proto3,casttype=MemberID" json:"voter,omitempty"`
}

type votePB Vote

func (m *votePB) Reset()         { *m = votePB{} }
func (m *votePB) String() string { return proto.CompactTextString(m) }
func (*votePB) ProtoMessage()    {}

func (m *Vote) Marshal() ([]byte, error) {
	return proto.Marshal((*votePB)(m))
}

func (m *Vote) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*votePB)(m))
}

// Seen marks that a voter already voted for a post. It is stored under the
// GuardKey of the pair.
type Seen struct {
	PostID uint64   `protobuf:"varint,1,opt,name=post_id,json=postId,proto3" json:"post_id,omitempty"`
	Voter  MemberID `protobuf:"bytes,2,opt,name=voter,proto3,casttype=MemberID" json:"voter,omitempty"`
}

type seenPB Seen

func (m *seenPB) Reset()         { *m = seenPB{} }
func (m *seenPB) String() string { return proto.CompactTextString(m) }
func (*seenPB) ProtoMessage()    {}

func (m *Seen) Marshal() ([]byte, error) {
	return proto.Marshal((*seenPB)(m))
}

func (m *Seen) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*seenPB)(m))
}

// MemberStat holds the activity counters of a single member.
type MemberStat struct {
	Member               MemberID `protobuf:"bytes,1,opt,name=member,proto3,casttype=MemberID" json:"member,omitempty"`
	PraisePosted         uint64   `protobuf:"varint,2,opt,name=praise_posted,json=praisePosted,proto3" json:"praise_posted,omitempty"`
	PraiseVoteReceived   uint64   `protobuf:"varint,3,opt,name=praise_vote_received,json=praiseVoteReceived,proto3" json:"praise_vote_received,omitempty"`
	VoteGivenExplicit    uint64   `protobuf:"varint,4,opt,name=vote_given_explicit,json=voteGivenExplicit,proto3" json:"vote_given_explicit,omitempty"`
	VoteReceivedImplicit uint64   `protobuf:"varint,5,opt,name=vote_received_implicit,json=voteReceivedImplicit,proto3" json:"vote_received_implicit,omitempty"`
	VoteReceivedExplicit uint64   `protobuf:"varint,6,opt,name=vote_received_explicit,json=voteReceivedExplicit,proto3" json:"vote_received_explicit,omitempty"`
}

type memberStatPB MemberStat

func (m *memberStatPB) Reset()         { *m = memberStatPB{} }
func (m *memberStatPB) String() string { return proto.CompactTextString(m) }
func (*memberStatPB) ProtoMessage()    {}

func (m *MemberStat) Marshal() ([]byte, error) {
	return proto.Marshal((*memberStatPB)(m))
}

func (m *MemberStat) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*memberStatPB)(m))
}

// AccountBinding connects a member with the account rewards are paid to.
type AccountBinding struct {
	Member  MemberID      `protobuf:"bytes,1,opt,name=member,proto3,casttype=MemberID" json:"member,omitempty"`
	Address shine.Address `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/shine.Address" json:"address,omitempty"`
}

type accountBindingPB AccountBinding

func (m *accountBindingPB) Reset()         { *m = accountBindingPB{} }
func (m *accountBindingPB) String() string { return proto.CompactTextString(m) }
func (*accountBindingPB) ProtoMessage()    {}

func (m *AccountBinding) Marshal() ([]byte, error) {
	return proto.Marshal((*accountBindingPB)(m))
}

func (m *AccountBinding) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*accountBindingPB)(m))
}

// Configuration is the praise extension configuration, kept in gconf.
type Configuration struct {
	// Operator is allowed to post and vote on behalf of any member.
	Operator shine.Address `protobuf:"bytes,1,opt,name=operator,proto3,casttype=github.com/iov-one/shine.Address" json:"operator,omitempty"`
	// Symbol is the currency of the pot.
	Symbol             *coin.Symbol    `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	VoteReceivedWeight *shine.Fraction `protobuf:"bytes,3,opt,name=vote_received_weight,json=voteReceivedWeight,proto3" json:"vote_received_weight,omitempty"`
	PraisePostedWeight *shine.Fraction `protobuf:"bytes,4,opt,name=praise_posted_weight,json=praisePostedWeight,proto3" json:"praise_posted_weight,omitempty"`
	VoteGivenWeight    *shine.Fraction `protobuf:"bytes,5,opt,name=vote_given_weight,json=voteGivenWeight,proto3" json:"vote_given_weight,omitempty"`
}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*configurationPB)(m))
}

// Admin is the authority allowed to configure, bind, reset and purge.
type Admin struct {
	Address shine.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/shine.Address" json:"address,omitempty"`
}

type adminPB Admin

func (m *adminPB) Reset()         { *m = adminPB{} }
func (m *adminPB) String() string { return proto.CompactTextString(m) }
func (*adminPB) ProtoMessage()    {}

func (m *Admin) Marshal() ([]byte, error) {
	return proto.Marshal((*adminPB)(m))
}

func (m *Admin) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*adminPB)(m))
}

// PostMsg records a praise.
type PostMsg struct {
	Author    MemberID `protobuf:"bytes,1,opt,name=author,proto3,casttype=MemberID" json:"author,omitempty"`
	Recipient MemberID `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=MemberID" json:"recipient,omitempty"`
	Note      string   `protobuf:"bytes,3,opt,name=note,proto3" json:"note,omitempty"`
}

type postMsgPB PostMsg

func (m *postMsgPB) Reset()         { *m = postMsgPB{} }
func (m *postMsgPB) String() string { return proto.CompactTextString(m) }
func (*postMsgPB) ProtoMessage()    {}

func (m *PostMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*postMsgPB)(m))
}

func (m *PostMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*postMsgPB)(m))
}

// VoteMsg records a vote for an existing post.
type VoteMsg struct {
	PostID uint64   `protobuf:"varint,1,opt,name=post_id,json=postId,proto3" json:"post_id,omitempty"`
	Voter  MemberID `protobuf:"bytes,2,opt,name=voter,proto3,casttype=MemberID" json:"voter,omitempty"`
}

type voteMsgPB VoteMsg

func (m *voteMsgPB) Reset()         { *m = voteMsgPB{} }
func (m *voteMsgPB) String() string { return proto.CompactTextString(m) }
func (*voteMsgPB) ProtoMessage()    {}

func (m *VoteMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*voteMsgPB)(m))
}

func (m *VoteMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*voteMsgPB)(m))
}

// BindMemberMsg binds a member to the account its rewards are paid to.
type BindMemberMsg struct {
	Member  MemberID      `protobuf:"bytes,1,opt,name=member,proto3,casttype=MemberID" json:"member,omitempty"`
	Address shine.Address `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/shine.Address" json:"address,omitempty"`
}

type bindMemberMsgPB BindMemberMsg

func (m *bindMemberMsgPB) Reset()         { *m = bindMemberMsgPB{} }
func (m *bindMemberMsgPB) String() string { return proto.CompactTextString(m) }
func (*bindMemberMsgPB) ProtoMessage()    {}

func (m *BindMemberMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*bindMemberMsgPB)(m))
}

func (m *BindMemberMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*bindMemberMsgPB)(m))
}

// UnbindMemberMsg removes the account binding of a member.
type UnbindMemberMsg struct {
	Member MemberID `protobuf:"bytes,1,opt,name=member,proto3,casttype=MemberID" json:"member,omitempty"`
}

type unbindMemberMsgPB UnbindMemberMsg

func (m *unbindMemberMsgPB) Reset()         { *m = unbindMemberMsgPB{} }
func (m *unbindMemberMsgPB) String() string { return proto.CompactTextString(m) }
func (*unbindMemberMsgPB) ProtoMessage()    {}

func (m *UnbindMemberMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*unbindMemberMsgPB)(m))
}

func (m *UnbindMemberMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*unbindMemberMsgPB)(m))
}

// ConfigureMsg updates the configuration. Only non zero fields of the
// patch are applied.
type ConfigureMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

type configureMsgPB ConfigureMsg

func (m *configureMsgPB) Reset()         { *m = configureMsgPB{} }
func (m *configureMsgPB) String() string { return proto.CompactTextString(m) }
func (*configureMsgPB) ProtoMessage()    {}

func (m *ConfigureMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*configureMsgPB)(m))
}

func (m *ConfigureMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*configureMsgPB)(m))
}

// ResetMsg clears all activity while keeping bindings and configuration.
type ResetMsg struct{}

type resetMsgPB ResetMsg

func (m *resetMsgPB) Reset()         { *m = resetMsgPB{} }
func (m *resetMsgPB) String() string { return proto.CompactTextString(m) }
func (*resetMsgPB) ProtoMessage()    {}

func (m *ResetMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*resetMsgPB)(m))
}

func (m *ResetMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*resetMsgPB)(m))
}

// PurgeMsg clears all activity, bindings and the configuration.
type PurgeMsg struct{}

type purgeMsgPB PurgeMsg

func (m *purgeMsgPB) Reset()         { *m = purgeMsgPB{} }
func (m *purgeMsgPB) String() string { return proto.CompactTextString(m) }
func (*purgeMsgPB) ProtoMessage()    {}

func (m *PurgeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*purgeMsgPB)(m))
}

func (m *PurgeMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*purgeMsgPB)(m))
}
