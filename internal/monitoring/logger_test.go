package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLoggerCaptures(t *testing.T) {
	defer SetLogger(nil)

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})

	Logf("swing at %d mph", 93)
	if got != "swing at 93 mph" {
		t.Errorf("captured %q, want %q", got, "swing at 93 mph")
	}
}

func TestSetLoggerNilIsNoOp(t *testing.T) {
	defer SetLogger(nil)

	SetLogger(nil)
	// Must not panic.
	Logf("dropped %v", "message")
}
