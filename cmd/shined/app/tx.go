package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/praise"
	"github.com/iov-one/shine/x/sigs"
)

// Tx is the transaction of the application. It carries exactly one message
// and the signatures authorizing it.
type Tx struct {
	Signatures      []*sigs.StdSignature    `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	PostMsg         *praise.PostMsg         `protobuf:"bytes,10,opt,name=post_msg,json=postMsg,proto3" json:"post_msg,omitempty"`
	VoteMsg         *praise.VoteMsg         `protobuf:"bytes,11,opt,name=vote_msg,json=voteMsg,proto3" json:"vote_msg,omitempty"`
	BindMemberMsg   *praise.BindMemberMsg   `protobuf:"bytes,12,opt,name=bind_member_msg,json=bindMemberMsg,proto3" json:"bind_member_msg,omitempty"`
	UnbindMemberMsg *praise.UnbindMemberMsg `protobuf:"bytes,13,opt,name=unbind_member_msg,json=unbindMemberMsg,proto3" json:"unbind_member_msg,omitempty"`
	ConfigureMsg    *praise.ConfigureMsg    `protobuf:"bytes,14,opt,name=configure_msg,json=configureMsg,proto3" json:"configure_msg,omitempty"`
	ResetMsg        *praise.ResetMsg        `protobuf:"bytes,15,opt,name=reset_msg,json=resetMsg,proto3" json:"reset_msg,omitempty"`
	PurgeMsg        *praise.PurgeMsg        `protobuf:"bytes,16,opt,name=purge_msg,json=purgeMsg,proto3" json:"purge_msg,omitempty"`
	SendMsg         *cash.SendMsg           `protobuf:"bytes,20,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
}

type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(m))
}

func (m *Tx) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*txPB)(m))
}

// make sure tx fulfills all interfaces
var _ shine.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (shine.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (m *Tx) GetMsg() (shine.Msg, error) {
	var msgs []shine.Msg
	if m.PostMsg != nil {
		msgs = append(msgs, m.PostMsg)
	}
	if m.VoteMsg != nil {
		msgs = append(msgs, m.VoteMsg)
	}
	if m.BindMemberMsg != nil {
		msgs = append(msgs, m.BindMemberMsg)
	}
	if m.UnbindMemberMsg != nil {
		msgs = append(msgs, m.UnbindMemberMsg)
	}
	if m.ConfigureMsg != nil {
		msgs = append(msgs, m.ConfigureMsg)
	}
	if m.ResetMsg != nil {
		msgs = append(msgs, m.ResetMsg)
	}
	if m.PurgeMsg != nil {
		msgs = append(msgs, m.PurgeMsg)
	}
	if m.SendMsg != nil {
		msgs = append(msgs, m.SendMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages, only one allowed", len(msgs))
	}
}

// SetMsg sets the message of the transaction, replacing any previous one.
func (m *Tx) SetMsg(msg shine.Msg) error {
	*m = Tx{Signatures: m.Signatures}
	switch msg := msg.(type) {
	case *praise.PostMsg:
		m.PostMsg = msg
	case *praise.VoteMsg:
		m.VoteMsg = msg
	case *praise.BindMemberMsg:
		m.BindMemberMsg = msg
	case *praise.UnbindMemberMsg:
		m.UnbindMemberMsg = msg
	case *praise.ConfigureMsg:
		m.ConfigureMsg = msg
	case *praise.ResetMsg:
		m.ResetMsg = msg
	case *praise.PurgeMsg:
		m.PurgeMsg = msg
	case *cash.SendMsg:
		m.SendMsg = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign. The signatures are not part of
// the signed data.
func (m *Tx) GetSignBytes() ([]byte, error) {
	sigs := m.Signatures
	m.Signatures = nil
	bz, err := m.Marshal()
	m.Signatures = sigs
	return bz, err
}
