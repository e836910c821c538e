package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is returned for a successfully processed request.
	SuccessABCICode = 0

	// Errors that do not carry an ABCI code are reported under the
	// internal code with a generic log message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log message of the ABCI response for the
// given error.
//
// Only errors that declare their ABCI code expose their message. In debug
// mode every message is exposed, including the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode || ErrPanic.Is(err):
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the chain that declares
// one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces internal errors and recovered panics with a generic
// error so that implementation details do not leak to the client.
// In debug mode the error is returned unchanged.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError rebuilds an error from the code and log of an ABCI response.
// The result is of the kind registered with the code, so that Is works on
// the client side as it does in the application.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if e, ok := usedCodes[code]; ok && e != nil {
		return Wrap(e, log)
	}
	return &remoteError{code: code, log: log}
}

// remoteError is an error with a code that is not registered locally.
type remoteError struct {
	code uint32
	log  string
}

func (e *remoteError) Error() string {
	return fmt.Sprintf("code %d: %s", e.code, e.log)
}

func (e *remoteError) ABCICode() uint32 {
	return e.code
}
