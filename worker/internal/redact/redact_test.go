package redact

import (
	"context"
	"testing"
	"time"
)

func TestRedact_ReplacesToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single occurrence", "call 555-0199 now", "call [REDACTED] now"},
		{"multiple occurrences", "555-0199 and 555-0199", "[REDACTED] and [REDACTED]"},
		{"no occurrence", "nothing sensitive here", "nothing sensitive here"},
		{"token only", "555-0199", "[REDACTED]"},
		{"empty", "", ""},
		{"partial token untouched", "555-019", "555-019"},
	}

	r := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Redact(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Redact() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRedact_DelayProportionalToLength(t *testing.T) {
	r := New(time.Millisecond)

	short := "abcd"
	long := "abcdabcdabcdabcdabcdabcdabcdabcd"

	start := time.Now()
	if _, err := r.Redact(context.Background(), short); err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	shortElapsed := time.Since(start)

	start = time.Now()
	if _, err := r.Redact(context.Background(), long); err != nil {
		t.Fatalf("Redact() error = %v", err)
	}
	longElapsed := time.Since(start)

	if shortElapsed < 4*time.Millisecond {
		t.Errorf("short input finished in %v, want at least 4ms", shortElapsed)
	}
	if longElapsed < 32*time.Millisecond {
		t.Errorf("long input finished in %v, want at least 32ms", longElapsed)
	}
	if longElapsed <= shortElapsed {
		t.Errorf("long input (%v) should take longer than short input (%v)", longElapsed, shortElapsed)
	}
}

func TestRedact_CancelledContext(t *testing.T) {
	r := New(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Redact(ctx, "slow record")
	if err == nil {
		t.Fatal("Redact() with cancelled context should return error")
	}
}
