package core

import (
	"testing"
	"time"
)

func TestFixedStepPacing(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	fs := NewFixedStepWithClock(10, clock)

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half an interval elapsed, should not step")
	}
	if got := fs.Remaining(); got != 50*time.Millisecond {
		t.Fatalf("Remaining = %v, want 50ms", got)
	}
	now = now.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full interval elapsed, should step")
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("Interval = %v, want 1/60s", fs.Interval())
	}
}
