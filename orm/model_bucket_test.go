package orm

import (
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/store"
	"github.com/iov-one/shine/weavetest/assert"
)

func newTestBucket() ModelBucket {
	return NewModelBucket("cnts", &testModel{},
		WithIndex("owner", ownerIndexer, true),
		WithIndex("tag", tagIndexer, false),
	)
}

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	key, err := b.Put(db, []byte("first"), &testModel{Owner: []byte("alice"), Count: 3})
	assert.Nil(t, err)
	assert.Equal(t, []byte("first"), key)

	var got testModel
	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, int64(3), got.Count)
	assert.Nil(t, b.Has(db, key))

	assert.Nil(t, b.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, key, &got))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, key))

	// Index entry is gone too, so the owner can be used again.
	_, err = b.Put(db, []byte("second"), &testModel{Owner: []byte("alice")})
	assert.Nil(t, err)
}

func TestModelBucketSequenceKeys(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	k1, err := b.Put(db, nil, &testModel{Owner: []byte("a")})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &testModel{Owner: []byte("b")})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), k1)
	assert.Equal(t, EncodeSequence(2), k2)

	latest, err := b.Sequence(SeqID).Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), latest)

	// Truncate keeps the sequence.
	assert.Nil(t, b.Truncate(db))
	k3, err := b.Put(db, nil, &testModel{Owner: []byte("c")})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(3), k3)
}

func TestModelBucketValidation(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	_, err := b.Put(db, nil, &testModel{})
	assert.FieldError(t, err, "Owner", errors.ErrEmpty)

	_, err = b.Put(db, nil, &MultiRef{Refs: [][]byte{[]byte("x")}})
	assert.IsErr(t, errors.ErrType, err)

	var wrong MultiRef
	_, err = b.Put(db, []byte("k"), &testModel{Owner: []byte("a")})
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("k"), &wrong))
}

func TestModelBucketUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	_, err := b.Put(db, []byte("k1"), &testModel{Owner: []byte("alice")})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("k2"), &testModel{Owner: []byte("alice")})
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Updating an entity keeps its own index entry valid.
	_, err = b.Put(db, []byte("k1"), &testModel{Owner: []byte("alice"), Count: 9})
	assert.Nil(t, err)

	var res []*testModel
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &res)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("k1")}, keys)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, int64(9), res[0].Count)

	// Moving the index value releases the old one.
	_, err = b.Put(db, []byte("k1"), &testModel{Owner: []byte("bob")})
	assert.Nil(t, err)
	res = nil
	keys, err = b.ByIndex(db, "owner", []byte("alice"), &res)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	_, err = b.ByIndex(db, "unknown", []byte("bob"), &res)
	assert.IsErr(t, ErrInvalidIndex, err)
}

func TestModelBucketMultiIndex(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	for _, k := range []string{"c", "a", "b"} {
		_, err := b.Put(db, []byte(k), &testModel{Owner: []byte("owner-" + k), Tag: "praise"})
		assert.Nil(t, err)
	}
	_, err := b.Put(db, []byte("d"), &testModel{Owner: []byte("owner-d")})
	assert.Nil(t, err)

	var res []*testModel
	keys, err := b.ByIndex(db, "tag", []byte("praise"), &res)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, keys)
	assert.Equal(t, 3, len(res))

	assert.Nil(t, b.Delete(db, []byte("b")))
	res = nil
	keys, err = b.ByIndex(db, "tag", []byte("praise"), &res)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, keys)
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()

	for _, owner := range []string{"x", "y", "z"} {
		_, err := b.Put(db, nil, &testModel{Owner: []byte(owner)})
		assert.Nil(t, err)
	}

	var owners []string
	err := b.Iterate(db, func(key []byte, m Model) error {
		owners = append(owners, string(m.(*testModel).Owner))
		// Deleting during iteration is allowed.
		return b.Delete(db, key)
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, owners)

	err = b.Iterate(db, func([]byte, Model) error {
		t.Fatal("bucket must be empty")
		return nil
	})
	assert.Nil(t, err)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket()
	qr := shine.NewQueryRouter()
	b.Register("counters", qr)

	_, err := b.Put(db, []byte("aa"), &testModel{Owner: []byte("alice")})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("ab"), &testModel{Owner: []byte("bob")})
	assert.Nil(t, err)

	res, err := qr.Handler("/counters").Query(db, shine.KeyQueryMod, []byte("aa"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:aa"), res[0].Key)

	res, err = qr.Handler("/counters").Query(db, shine.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/counters/owner").Query(db, shine.KeyQueryMod, []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:ab"), res[0].Key)

	_, err = qr.Handler("/counters").Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}
