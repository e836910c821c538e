package orm

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// prefixRange turns a prefix into a (start, end) range. The start is the
// given prefix value and the end is calculated by adding 1 bit to the
// start value. Nil is not allowed as prefix.
//
// Example: []byte{1, 3, 4} becomes []byte{1, 3, 5}
//
//	[]byte{15, 42, 255, 255} becomes []byte{15, 43, 0, 0}
//
// In case of an overflow the end is set to nil.
// Example: []byte{255, 255, 255, 255} becomes nil
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		panic("nil key not allowed")
	}
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// consumeIterator returns all models that the iterator returns. Use it
// only for result sets known to be small. The iterator is released.
func consumeIterator(it shine.Iterator) ([]shine.Model, error) {
	defer it.Release()

	var res []shine.Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, shine.Pair(key, value))
	}
}
