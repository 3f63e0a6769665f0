package resilience

import (
	"testing"
	"time"
)

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(cfg)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Second})

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("Allow() before opening: %v", err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("Allow() after %d failures = %v, want ErrCircuitOpen", 3, err)
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("Allow() while open = %v, want ErrCircuitOpen", err)
	}

	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("Allow() probe after cool-down: %v", err)
	}
	b.RecordSuccess()

	if err := b.Allow(); err != nil {
		t.Fatalf("Allow() after recovery: %v", err)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})
	b.RecordFailure()

	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("Allow() probe: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("Allow() after failed probe = %v, want ErrCircuitOpen", err)
	}
}

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var sf SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		sf.Do("key", func() (any, error) {
			close(started)
			<-release
			return 42, nil
		})
	}()

	<-started
	done := make(chan struct{})
	var v any
	var shared bool
	go func() {
		v, _, shared = sf.Do("key", func() (any, error) { return 0, nil })
		close(done)
	}()

	close(release)
	<-done

	if !shared {
		t.Fatalf("second caller did not share the in-flight result")
	}
	if v != 42 {
		t.Fatalf("shared result = %v, want 42", v)
	}
}
