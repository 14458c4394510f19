package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker lock.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker trips after consecutive failures and lets a limited number
// of probes through once openTimeout has elapsed.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	maxProbes        int
	onChange         StateChangeFunc

	state          CircuitState
	failures       int
	openedAt       time.Time
	probesInFlight int
	probeSuccesses int
	now            func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      orDefault(openTimeout, 15*time.Second),
		maxProbes:        max(halfOpenMaxReq, 1),
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// OnStateChange registers fn for every subsequent transition.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// update runs fn under the lock and reports a transition afterwards.
func (b *CircuitBreaker) update(fn func() error) error {
	b.mu.Lock()
	from := b.state
	err := fn()
	to, hook := b.state, b.onChange
	b.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	return b.update(func() error {
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.openTimeout {
				return ErrCircuitOpen
			}
			b.enter(CircuitStateHalfOpen)
		}
		if b.state == CircuitStateHalfOpen {
			if b.probesInFlight >= b.maxProbes {
				return ErrCircuitOpen
			}
			b.probesInFlight++
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordSuccess() {
	_ = b.update(func() error {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			b.probesInFlight = max(b.probesInFlight-1, 0)
			b.probeSuccesses++
			if b.probeSuccesses >= b.maxProbes && b.probesInFlight == 0 {
				b.enter(CircuitStateClosed)
			}
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordFailure() {
	_ = b.update(func() error {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.failureThreshold {
				b.enter(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.enter(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
		return nil
	})
}

// State reports an expired open breaker as half-open without moving it.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) enter(state CircuitState) {
	b.state = state
	b.probesInFlight = 0
	b.probeSuccesses = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

// Guard runs calls through an optional breaker. The zero value never rejects.
type Guard struct {
	breaker *CircuitBreaker
}

// Run executes fn unless the breaker is open. countsAsFailure decides which
// errors trip the breaker; nil treats every error as a failure.
func (g *Guard) Run(fn func() error, countsAsFailure func(error) bool) error {
	if g == nil || g.breaker == nil {
		return fn()
	}
	if err := g.breaker.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (countsAsFailure == nil || countsAsFailure(err)) {
		g.breaker.RecordFailure()
		return err
	}
	g.breaker.RecordSuccess()
	return err
}

func (g *Guard) State() CircuitState {
	if g == nil || g.breaker == nil {
		return CircuitStateClosed
	}
	return g.breaker.State()
}
