package main

import "testing"

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "error", "none"} {
		if _, err := newLogger(level); err != nil {
			t.Fatalf("level %q: %s", level, err)
		}
	}
	if _, err := newLogger("verbose"); err == nil {
		t.Fatal("unknown level accepted")
	}
}
