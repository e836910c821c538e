package store

import "github.com/iov-one/shine"

// Aliases of the storage interfaces for shorter names in this package.
type (
	ReadOnlyKVStore  = shine.ReadOnlyKVStore
	SetDeleter       = shine.SetDeleter
	KVStore          = shine.KVStore
	Batch            = shine.Batch
	Iterator         = shine.Iterator
	CacheableKVStore = shine.CacheableKVStore
	KVCacheWrap      = shine.KVCacheWrap
	CommitKVStore    = shine.CommitKVStore
	CommitID         = shine.CommitID
	Model            = shine.Model
)
