package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/shine/errors"
)

// collect returns a snapshot of all items within [start, end) in ascending
// order. Nil start or end means no bound.
func collect(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	add := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(add)
	case start == nil:
		bt.AscendLessThan(bkey{end}, add)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, add)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, add)
	}
	return items
}

// itemIter merges cached items with the parent iterator. Cached items
// shadow parent entries of the same key and deleted items hide them.
type itemIter struct {
	items   []btree.Item
	parent  Iterator
	reverse bool

	// one item lookahead of the parent
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []btree.Item, parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

func (i *itemIter) loadParent() error {
	if i.pLoaded || i.pDone {
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.pDone = true
		return nil
	case err != nil:
		return err
	}
	i.pKey, i.pValue, i.pLoaded = key, value, true
	return nil
}

// Next returns the next key value pair in iteration order.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}

		if len(i.items) == 0 {
			if !i.pLoaded {
				return nil, nil, errors.ErrIteratorDone
			}
			i.pLoaded = false
			return i.pKey, i.pValue, nil
		}

		item := i.items[0]
		if i.pLoaded {
			cmp := bytes.Compare(item.(keyer).Key(), i.pKey)
			if i.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				i.pLoaded = false
				return i.pKey, i.pValue, nil
			}
			if cmp == 0 {
				// Parent value is shadowed by the cached one.
				i.pLoaded = false
			}
		}

		i.items = i.items[1:]
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
	}
}

// Release releases the parent iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.items = nil
}
