package distribution

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/x/praise"
)

// Reward is the share of the last distributed pot paid to a member.
type Reward struct {
	Member             praise.MemberID `protobuf:"bytes,1,opt,name=member,proto3,casttype=github.com/iov-one/shine/x/praise.MemberID" json:"member,omitempty"`
	Account            shine.Address   `protobuf:"bytes,2,opt,name=account,proto3,casttype=github.com/iov-one/shine.Address" json:"account,omitempty"`
	AmountVoteReceived *coin.Coin      `protobuf:"bytes,3,opt,name=amount_vote_received,json=amountVoteReceived,proto3" json:"amount_vote_received,omitempty"`
	AmountPraisePosted *coin.Coin      `protobuf:"bytes,4,opt,name=amount_praise_posted,json=amountPraisePosted,proto3" json:"amount_praise_posted,omitempty"`
	AmountVoteGiven    *coin.Coin      `protobuf:"bytes,5,opt,name=amount_vote_given,json=amountVoteGiven,proto3" json:"amount_vote_given,omitempty"`
	AmountExtra        *coin.Coin      `protobuf:"bytes,6,opt,name=amount_extra,json=amountExtra,proto3" json:"amount_extra,omitempty"`
	AmountTotal        *coin.Coin      `protobuf:"bytes,7,opt,name=amount_total,json=amountTotal,proto3" json:"amount_total,omitempty"`
}

type rewardPB Reward

func (m *rewardPB) Reset()         { *m = rewardPB{} }
func (m *rewardPB) String() string { return proto.CompactTextString(m) }
func (*rewardPB) ProtoMessage()    {}

func (m *Reward) Marshal() ([]byte, error) {
	return proto.Marshal((*rewardPB)(m))
}

func (m *Reward) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*rewardPB)(m))
}
