package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned when the signers of a transaction are
	// not allowed to execute the requested action.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned for a message that cannot be handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned for an entity that cannot be persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key or index is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned for code paths that must never be reached.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an entity is in an invalid state.
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned when an amount of money is invalid or
	// insufficient.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput is returned for any malformed input value.
	ErrInput = Register(14, "invalid input")

	// ErrCurrency is returned when two amounts of different currency or
	// precision are used together.
	ErrCurrency = Register(15, "currency mismatch")

	// ErrOverflow is returned when a computation result does not fit
	// its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned for storage failures.
	ErrDatabase = Register(17, "database")

	// ErrIteratorDone is returned by an iterator that has no more items.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrNetwork is returned when a remote node cannot be reached.
	ErrNetwork = Register(20, "network")

	// ErrPanic is set only when a panic was recovered. Its message is
	// redacted before it leaves the application.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error kind with its ABCI code. Extensions use
// their own code range (sigs 120, praise 200, distribution 300). A code can
// be registered once, so call it only from package variable initialization.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// Code 1 is the generic internal error and is never registered.
var usedCodes = map[uint32]*Error{
	1: nil,
}

// Error is a root error kind. Runtime errors wrap a root error so that
// both tests and clients can categorize them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code this kind is reported with.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New returns a new error of this kind with the given description.
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is returns true if the given error is of this kind. The error is
// unwrapped using the Cause method as long as possible.
func (e *Error) Is(err error) bool {
	// A typed nil stored in an interface is not == nil.
	if e == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == e {
			return true
		}

		if u, ok := err.(unpacker); ok {
			for _, er := range u.Unpack() {
				if e.Is(er) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// Errors without an ABCI code (ie. stdlib errors) are reported as internal
// errors. Wrapping a nil error returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stops its propagation. A recovered panic is
// assigned to the given error as an ErrPanic instance. It works only when
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType annotates the error with the type of the given object.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}
