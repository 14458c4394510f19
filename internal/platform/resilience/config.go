package resilience

import "time"

// CircuitBreakerConfig mirrors the PLAYCRICKET_CIRCUIT_* settings.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// OnStateChange is optional.
	OnStateChange StateChangeFunc
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// NewGuard builds a Guard from cfg. A disabled config yields a pass-through guard.
func NewGuard(cfg CircuitBreakerConfig) *Guard {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if !cfg.Enabled {
		return &Guard{}
	}
	breaker := NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq)
	if cfg.OnStateChange != nil {
		breaker.OnStateChange(cfg.OnStateChange)
	}
	return &Guard{breaker: breaker}
}
