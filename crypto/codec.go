package crypto

import (
	"github.com/gogo/protobuf/proto"
)

// PublicKey is the serializable form of an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey is the serializable form of an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature is the serializable form of an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

type publicKeyPB PublicKey

func (m *publicKeyPB) Reset()         { *m = publicKeyPB{} }
func (m *publicKeyPB) String() string { return proto.CompactTextString(m) }
func (*publicKeyPB) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) {
	return proto.Marshal((*publicKeyPB)(m))
}

func (m *PublicKey) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*publicKeyPB)(m))
}

type privateKeyPB PrivateKey

func (m *privateKeyPB) Reset()         { *m = privateKeyPB{} }
func (m *privateKeyPB) String() string { return proto.CompactTextString(m) }
func (*privateKeyPB) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKeyPB)(m))
}

func (m *PrivateKey) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*privateKeyPB)(m))
}

type signaturePB Signature

func (m *signaturePB) Reset()         { *m = signaturePB{} }
func (m *signaturePB) String() string { return proto.CompactTextString(m) }
func (*signaturePB) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signaturePB)(m))
}

func (m *Signature) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*signaturePB)(m))
}
