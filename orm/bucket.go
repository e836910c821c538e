/*
Package orm splits the state into buckets, key prefixed sections holding a
single model type each. A bucket is keyed by the primary key (a member id,
a sequence value) and may keep secondary indexes, for example the votes of
a post or the member bound to an address. Indexes are updated together with
the entity in the same store.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// SeqID is the name of the default id sequence of a bucket.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores entities of the proto type under "<name>:<key>" together
// with their secondary indexes. It is usually wrapped by a ModelBucket.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ shine.QueryHandler = Bucket{}

// NewBucket returns a bucket without indexes. The name must be 3 to 10
// lowercase letters or underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register adds the bucket under "/<name>" and each index under
// "/<name>/<index>" to the query router. An empty name uses the bucket
// name.
func (b Bucket) Register(name string, r shine.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for name, idx := range b.indexes {
		r.Register(root+"/"+name, idx)
	}
}

// Query returns the entity stored under data, or with a prefix query all
// entities with keys starting with data.
func (b Bucket) Query(db shine.ReadOnlyKVStore, mod string, data []byte) ([]shine.Model, error) {
	switch mod {
	case shine.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []shine.Model{shine.Pair(key, value)}, nil
	case shine.PrefixQueryMod:
		it, err := db.Iterator(prefixRange(b.DBKey(data)))
		if err != nil {
			return nil, err
		}
		return consumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// DBKey returns the prefixed store key. The result never shares memory
// with the prefix.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the entity stored under the key, or nil.
func (b Bucket) Get(db shine.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse decodes a stored value into an entity.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates the entity and stores it with its index entries.
func (b Bucket) Save(db shine.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete removes the entity and its index entries.
func (b Bucket) Delete(db shine.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db shine.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	// Deleting a missing entity does not change any index.
	if prev == nil && model == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the primary keys of all stored entities in ascending order.
func (b Bucket) Keys(db shine.ReadOnlyKVStore) ([][]byte, error) {
	it, err := db.Iterator(prefixRange(b.prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, key[len(b.prefix):])
	}
}

// Truncate deletes all entities of this bucket together with their index
// entries. Sequences are not modified.
func (b Bucket) Truncate(db shine.KVStore) error {
	keys, err := b.Keys(db)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := b.Delete(db, k); err != nil {
			return errors.Wrapf(err, "delete %q", b.DBKey(k))
		}
	}
	return nil
}

// Sequence returns the named sequence of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket with an additional index. Adding
// the same index name twice panics.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}

	add := NewIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = add
	b.indexes = indexes
	return b
}

// IndexKeys returns the primary keys indexed under the given value.
func (b Bucket) IndexKeys(db shine.ReadOnlyKVStore, name string, key []byte) ([][]byte, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %s", name)
	}
	return idx.Keys(db, key)
}

// GetIndexed returns the entities indexed under the given value.
func (b Bucket) GetIndexed(db shine.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	refs, err := b.IndexKeys(db, name, key)
	if err != nil {
		return nil, err
	}
	return b.readRefs(db, refs)
}

func (b Bucket) readRefs(db shine.ReadOnlyKVStore, refs [][]byte) ([]Object, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	var err error
	objs := make([]Object, len(refs))
	for i, key := range refs {
		objs[i], err = b.Get(db, key)
		if err != nil {
			return nil, err
		}
	}
	return objs, nil
}
