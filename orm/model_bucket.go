package orm

import (
	"reflect"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db shine.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex returns all models that are referenced by the given index
	// value. Models are loaded into dest, which must be a pointer to a
	// slice of models. Keys of the returned models are returned in the
	// same order.
	ByIndex(db shine.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database. If key is nil, the next
	// value of the bucket id sequence is used. The key used is returned.
	Put(db shine.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db shine.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db shine.ReadOnlyKVStore, key []byte) error

	// Iterate calls fn for every stored model in primary key order. A
	// fresh model instance is given on every call. fn may modify the
	// store.
	Iterate(db shine.KVStore, fn func(key []byte, m Model) error) error

	// Truncate removes all entities together with their index entries.
	Truncate(db shine.KVStore) error

	// Sequence returns the bucket sequence with the given name.
	Sequence(name string) Sequence

	// Register registers this bucket and all its indexes for queries.
	Register(name string, r shine.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models, for example *[]*Post.
type ModelSlicePtr interface{}

// ModelBucketOption configures a model bucket.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// WithIDSequence configures the bucket to use the given sequence for
// keys of models stored with a nil key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// given type under the given bucket name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db shine.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()
	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db shine.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, nil
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	if dest.IsNil() {
		return nil, errors.Wrap(errors.ErrHuman, "got nil pointer")
	}

	slice := dest.Elem()
	elem := slice.Type().Elem()
	if elem != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, elem)
	}

	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		if obj == nil || obj.Value() == nil {
			return nil, errors.Wrap(ErrInvalidIndex, "index refers to a missing entity")
		}
		slice = reflect.Append(slice, reflect.ValueOf(obj.Value()))
		keys = append(keys, obj.Key())
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db shine.KVStore, key []byte, m Model) ([]byte, error) {
	if t := reflect.TypeOf(m); t != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %s type in this bucket, only %s", t, mb.model)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db shine.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db shine.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%X", key)
	}
	return nil
}

func (mb *modelBucket) Iterate(db shine.KVStore, fn func(key []byte, m Model) error) error {
	keys, err := mb.b.Keys(db)
	if err != nil {
		return err
	}
	for _, key := range keys {
		obj, err := mb.b.Get(db, key)
		if err != nil {
			return err
		}
		// fn may have deleted an entity that is not visited yet.
		if obj == nil {
			continue
		}
		if err := fn(key, obj.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) Truncate(db shine.KVStore) error {
	return mb.b.Truncate(db)
}

func (mb *modelBucket) Sequence(name string) Sequence {
	return mb.b.Sequence(name)
}

func (mb *modelBucket) Register(name string, r shine.QueryRouter) {
	mb.b.Register(name, r)
}
