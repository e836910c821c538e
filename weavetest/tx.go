package weavetest

import "github.com/iov-one/shine"

// Tx carries a single message. Err, when set, is returned instead of the
// message.
type Tx struct {
	Msg shine.Msg
	Err error
}

var _ shine.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (shine.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return nil, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	return tx.Err
}

// Msg is routed by RoutePath and serializes to Serialized. Err, when set,
// is returned by every method.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ shine.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
