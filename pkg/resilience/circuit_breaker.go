package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError tells the caller when the breaker will admit a probe again.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	wait := e.RetryAfter
	if wait < 0 {
		wait = 0
	}
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, wait)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, wait)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitOpen     CircuitBreakerState = "open"
	CircuitHalfOpen CircuitBreakerState = "half_open"
)

type CircuitBreakerConfig struct {
	Name              string
	FailureThreshold  int
	SuccessThreshold  int
	OpenTimeout       time.Duration
	HalfOpenMaxFlight int
}

// CircuitBreaker guards a dependency with the usual three-state machine:
// consecutive failures trip it open, after OpenTimeout a bounded number of
// probes run half-open, and enough probe successes close it again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state     CircuitBreakerState
	failures  int
	successes int
	reopenAt  time.Time
	probes    int

	// Overridable for deterministic state-transition tests.
	now func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 10 * time.Second
	}
	if cfg.HalfOpenMaxFlight <= 0 {
		cfg.HalfOpenMaxFlight = 1
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: CircuitClosed,
		now:   time.Now,
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.maybeHalfOpenLocked(cb.now())
	return cb.state
}

// Execute runs fn if the breaker admits it and records the outcome.
// Context cancellation is treated as neither success nor failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}

	err := fn(ctx)

	switch {
	case errors.Is(err, context.Canceled):
		cb.recordCanceled()
	case err != nil:
		cb.recordFailure()
	default:
		cb.recordSuccess()
	}
	return err
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	cb.maybeHalfOpenLocked(now)

	switch cb.state {
	case CircuitOpen:
		return cb.rejectLocked(now)
	case CircuitHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenMaxFlight {
			return cb.rejectLocked(now)
		}
		cb.probes++
		return nil
	default:
		return nil
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitHalfOpen {
		cb.failures = 0
		return
	}

	if cb.probes > 0 {
		cb.probes--
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.resetLocked(CircuitClosed)
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitHalfOpen {
		if cb.probes > 0 {
			cb.probes--
		}
		cb.tripLocked()
		return
	}

	cb.failures++
	if cb.failures >= cb.cfg.FailureThreshold {
		cb.tripLocked()
	}
}

func (cb *CircuitBreaker) recordCanceled() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitHalfOpen && cb.probes > 0 {
		cb.probes--
	}
}

func (cb *CircuitBreaker) maybeHalfOpenLocked(now time.Time) {
	if cb.state == CircuitOpen && !now.Before(cb.reopenAt) {
		cb.resetLocked(CircuitHalfOpen)
	}
}

func (cb *CircuitBreaker) tripLocked() {
	cb.resetLocked(CircuitOpen)
	cb.reopenAt = cb.now().Add(cb.cfg.OpenTimeout)
}

func (cb *CircuitBreaker) resetLocked(state CircuitBreakerState) {
	cb.state = state
	cb.failures = 0
	cb.successes = 0
	cb.probes = 0
}

func (cb *CircuitBreaker) rejectLocked(now time.Time) error {
	wait := cb.reopenAt.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return &CircuitOpenError{Name: cb.cfg.Name, RetryAfter: wait}
}
