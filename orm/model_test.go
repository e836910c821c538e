package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine/errors"
)

// testModel is the entity stored by buckets in tests.
type testModel struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
	Tag   string `protobuf:"bytes,3,opt,name=tag,proto3" json:"tag,omitempty"`
}

type testModelPB testModel

func (m *testModelPB) Reset()         { *m = testModelPB{} }
func (m *testModelPB) String() string { return proto.CompactTextString(m) }
func (*testModelPB) ProtoMessage()    {}

func (m *testModel) Marshal() ([]byte, error) {
	return proto.Marshal((*testModelPB)(m))
}

func (m *testModel) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*testModelPB)(m))
}

func (m *testModel) Validate() error {
	if len(m.Owner) == 0 {
		return errors.Field("Owner", errors.ErrEmpty, "required")
	}
	if m.Count < 0 {
		return errors.Field("Count", errors.ErrInput, "must not be negative")
	}
	return nil
}

func ownerIndexer(obj Object) ([]byte, error) {
	m, ok := obj.Value().(*testModel)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return m.Owner, nil
}

func tagIndexer(obj Object) ([]byte, error) {
	m, ok := obj.Value().(*testModel)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	if m.Tag == "" {
		return nil, nil
	}
	return []byte(m.Tag), nil
}
