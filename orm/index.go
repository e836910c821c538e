package orm

import (
	"bytes"
	"regexp"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

const compactIdxPrefix = "_i."

var isIndexName = regexp.MustCompile(`^[a-z_]{3,16}$`).MatchString

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
//
// All references of one index value are stored under a single key, so a
// non unique index should be used only for small collections.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ shine.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	if !isIndexName(name) {
		panic("invalid index name: " + name)
	}
	return Index{
		name:   name,
		id:     []byte(compactIdxPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix.
// A new array is allocated so that consecutive calls never share memory.
func (i Index) IndexKey(key []byte) []byte {
	out := make([]byte, len(i.id)+len(key))
	copy(out, i.id)
	copy(out[len(i.id):], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db shine.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

func (i Index) move(db shine.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if newKey != nil {
		if err := i.insert(db, newKey, save.Key()); err != nil {
			return err
		}
	}
	if oldKey != nil {
		return i.remove(db, oldKey, prev.Key())
	}
	return nil
}

func (i Index) insert(db shine.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %q: %X", i.name, key)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(err, "index refs")
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db shine.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(ErrInvalidIndex, "index %q: missing %X", i.name, key)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(ErrInvalidIndex, "index %q: %X refers to another object", i.name, key)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "index refs")
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(ErrInvalidIndex, "index %q: %s", i.name, err)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

// Keys returns all primary keys that were indexed under the given value.
func (i Index) Keys(db shine.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.IndexKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	return i.refs(raw)
}

func (i Index) refs(raw []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "index refs")
	}
	return refs.Refs, nil
}

// PrefixKeys returns all primary keys of index values that start with the
// given prefix.
func (i Index) PrefixKeys(db shine.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	it, err := db.Iterator(prefixRange(i.IndexKey(prefix)))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res [][]byte
	for {
		_, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		refs, err := i.refs(value)
		if err != nil {
			return nil, err
		}
		res = append(res, refs...)
	}
}

// Query handles queries from the QueryRouter
func (i Index) Query(db shine.ReadOnlyKVStore, mod string, data []byte) ([]shine.Model, error) {
	var (
		refs [][]byte
		err  error
	)
	switch mod {
	case shine.KeyQueryMod:
		refs, err = i.Keys(db, data)
	case shine.PrefixQueryMod:
		refs, err = i.PrefixKeys(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	if err != nil {
		return nil, err
	}
	return i.loadRefs(db, refs)
}

func (i Index) loadRefs(db shine.ReadOnlyKVStore, refs [][]byte) ([]shine.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]shine.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = shine.Pair(key, value)
	}
	return res, nil
}
