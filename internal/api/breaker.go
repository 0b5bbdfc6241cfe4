package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the client circuit breaker.
type BreakerConfig struct {
	Name string
	// MaxRequests is the number of calls allowed through while half-open.
	MaxRequests uint32
	// Interval is the closed-state window after which counts reset.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// FailureThreshold is the failure ratio that trips the breaker.
	FailureThreshold float64
	// MinRequests is the number of calls needed before the ratio is evaluated.
	MinRequests uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "task-api",
		MaxRequests:      5,
		Interval:         30 * time.Second,
		OpenTimeout:      30 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      10,
	}
}

func newBreaker(cfg BreakerConfig, log *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// A 4xx is the service answering; only transport errors and 5xx count.
		// A caller giving up says nothing about the service.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return false
		},
	})
}
