package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first stack trace found in the error chain.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format prints the error message. With %+v the message is followed by the
// stack trace with runtime and testing frames removed. With %v a compact
// [file:line] of the origin is appended.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		io.WriteString(s, e.Error())
		return
	}

	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%s\n%+v", e.Error(), stack)
		return
	}
	if len(stack) == 0 {
		io.WriteString(s, e.Error())
		return
	}
	fmt.Fprintf(s, "%s [%s]", e.Error(), frameLocation(stack[0]))
}

func trimInternal(st errors.StackTrace) errors.StackTrace {
	const pkg = "github.com/iov-one/shine/errors."
	for len(st) > 0 && matchesFunc(st[0], pkg+"Wrap", pkg+"Field", pkg+"AppendField", pkg+"(*Error).New") {
		st = st[1:]
	}
	for len(st) > 0 && matchesFunc(st[len(st)-1], "runtime.", "testing.") {
		st = st[:len(st)-1]
	}
	return st
}

func matchesFunc(f errors.Frame, prefixes ...string) bool {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return false
	}
	name := fn.Name()
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func frameLocation(f errors.Frame) string {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return "unknown"
	}
	file, line := fn.FileLine(uintptr(f) - 1)
	// Keep only the last two path segments.
	if parts := strings.Split(file, "/"); len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d", file, line)
}
