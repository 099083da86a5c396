package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
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

type KeyRingConfig struct {
	Enabled     bool
	MaxFailures int
	Cooldown    time.Duration
}

func DefaultKeyRingConfig() KeyRingConfig {
	return KeyRingConfig{
		Enabled:     true,
		MaxFailures: 2,
		Cooldown:    6 * time.Second,
	}
}

func NormalizeKeyRingConfig(cfg KeyRingConfig) KeyRingConfig {
	defaults := DefaultKeyRingConfig()
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}
	return cfg
}
