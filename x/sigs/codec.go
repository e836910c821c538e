package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine/crypto"
)

// UserData is the state kept for every public key that signed a
// transaction. Sequence is the replay protection nonce.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

type userDataPB UserData

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(m))
}

func (m *UserData) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*userDataPB)(m))
}

// StdSignature is a signature of a transaction together with the public
// key and the nonce it was made with.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

type stdSignaturePB StdSignature

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(m))
}

func (m *StdSignature) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*stdSignaturePB)(m))
}
