package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
)

// Set is the content of a wallet: a normalized set of coins.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins"`
}

type setPB Set

func (m *setPB) Reset()         { *m = setPB{} }
func (m *setPB) String() string { return proto.CompactTextString(m) }
func (*setPB) ProtoMessage()    {}

func (m *Set) Marshal() ([]byte, error) {
	return proto.Marshal((*setPB)(m))
}

func (m *Set) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*setPB)(m))
}

// SendMsg moves coins from the source to the destination wallet.
type SendMsg struct {
	Source      shine.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/shine.Address" json:"source,omitempty"`
	Destination shine.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/shine.Address" json:"destination,omitempty"`
	Amount      *coin.Coin    `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string        `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*sendMsgPB)(m))
}
