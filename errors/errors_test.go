package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different kinds": {
			a:      ErrNotFound,
			b:      ErrDuplicate,
			wantIs: false,
		},
		"wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "post 12"),
			wantIs: true,
		},
		"wrapped twice": {
			a:      ErrNotFound,
			b:      Wrap(Wrap(ErrNotFound, "post 12"), "vote"),
			wantIs: true,
		},
		"pkg errors wrapped": {
			a:      ErrUnauthorized,
			b:      errors.Wrap(ErrUnauthorized, "operator"),
			wantIs: true,
		},
		"field error": {
			a:      ErrEmpty,
			b:      Field("Author", ErrEmpty, "required"),
			wantIs: true,
		},
		"second error of a multi error": {
			a:      ErrInput,
			b:      Append(ErrEmpty, ErrInput),
			wantIs: true,
		},
		"stdlib error": {
			a:      ErrState,
			b:      stderrors.New("state"),
			wantIs: false,
		},
		"nil kind and nil error": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil kind": {
			a:      nil,
			b:      ErrState,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register(ErrNotFound.code, "duplicate")
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestWrappedMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "post %d", 4)
	if got, want := err.Error(), "post 4: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("panic message lost: %s", err)
	}
}

func TestStackTraceFormat(t *testing.T) {
	err := Wrap(ErrDatabase, "cannot write")
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "TestStackTraceFormat") {
		t.Fatalf("stack trace missing the test frame:\n%s", full)
	}
	short := fmt.Sprintf("%v", err)
	if !strings.Contains(short, "errors_test.go") {
		t.Fatalf("location missing: %s", short)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.code,
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(ErrDuplicate, "vote"),
			wantCode: ErrDuplicate.code,
			wantLog:  "vote: duplicate",
		},
		"stdlib error is redacted": {
			err:      stderrors.New("disk on fire"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "nil pointer"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"multi error uses the first code": {
			err:      Append(ErrEmpty, ErrInput),
			wantCode: ErrEmpty.code,
			wantLog:  "2 errors: value is empty; invalid input",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrNotFound, false); err != ErrNotFound {
		t.Fatalf("registered error must not be redacted: %v", err)
	}
	if err := Redact(stderrors.New("secret"), false); err.Error() != internalABCILog {
		t.Fatalf("internal error must be redacted: %v", err)
	}
	if err := Redact(stderrors.New("secret"), true); err.Error() != "secret" {
		t.Fatalf("debug mode must not redact: %v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Author", ErrEmpty, "required"),
		Field("Note", ErrInput, "too long"),
		ErrState,
	)

	if got := FieldErrors(err, "Author"); len(got) != 1 || !ErrEmpty.Is(got[0]) {
		t.Fatalf("unexpected author errors: %v", got)
	}
	if got := FieldErrors(err, "Note"); len(got) != 1 || !ErrInput.Is(got[0]) {
		t.Fatalf("unexpected note errors: %v", got)
	}
	if got := FieldErrors(err, "Recipient"); len(got) != 0 {
		t.Fatalf("unexpected recipient errors: %v", got)
	}
	if got := AppendField(nil, "PostID", nil); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrState); err != ErrState {
		t.Fatalf("single error must be returned as is: %v", err)
	}
	merged := Append(Append(ErrEmpty, ErrInput), ErrState)
	if n := len(merged.(*multiErr).errs); n != 3 {
		t.Fatalf("want a flat list of 3 errors, got %d", n)
	}
}

func TestABCIError(t *testing.T) {
	if err := ABCIError(SuccessABCICode, ""); err != nil {
		t.Fatalf("success code gave an error: %s", err)
	}

	code, log := ABCIInfo(Wrap(ErrUnauthorized, "not a member"), false)
	err := ABCIError(code, log)
	if !ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	if !strings.Contains(err.Error(), "not a member") {
		t.Fatalf("log lost: %s", err)
	}

	err = ABCIError(987654, "remote failure")
	if got, _ := ABCIInfo(err, false); got != 987654 {
		t.Fatalf("want code 987654, got %d", got)
	}
}
