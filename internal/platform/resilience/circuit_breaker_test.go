package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestGuard_IgnoresNonCountedErrors(t *testing.T) {
	g := NewGuard(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	notFound := errors.New("page not found")

	err := g.Run(func() error { return notFound }, func(err error) bool { return !errors.Is(err, notFound) })
	if !errors.Is(err, notFound) {
		t.Fatalf("expected original error, got %v", err)
	}
	if state := g.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after non-counted error, got %s", state)
	}

	_ = g.Run(func() error { return errors.New("status 503") }, nil)
	if state := g.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after counted failure, got %s", state)
	}
	if err := g.Run(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestGuard_DisabledPassesThrough(t *testing.T) {
	g := NewGuard(CircuitBreakerConfig{Enabled: false})
	for i := 0; i < 10; i++ {
		_ = g.Run(func() error { return errors.New("boom") }, nil)
	}
	if state := g.State(); state != CircuitStateClosed {
		t.Fatalf("disabled guard should report closed, got %s", state)
	}
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	b := NewCircuitBreaker(1, time.Second, 1)
	now := time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var seen []string
	b.OnStateChange(func(from, to CircuitState) {
		seen = append(seen, string(from)+"->"+string(to))
	})

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	b.RecordFailure()
	now = now.Add(2 * time.Second)
	_ = b.Allow()
	b.RecordSuccess()

	want := []string{
		"closed->open",
		"open->half_open",
		"half_open->open",
		"open->half_open",
		"half_open->closed",
	}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d = %s, want %s", i, seen[i], want[i])
		}
	}
}
