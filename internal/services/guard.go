package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// CallRecorder counts provider calls by outcome.
type CallRecorder interface {
	ProviderCall(provider, outcome string)
}

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
	OutcomeCanceled = "canceled"
	OutcomeRefused  = "refused"
)

// GuardConfig configures the timeout and circuit breaker around one provider.
type GuardConfig struct {
	Name             string
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
	OpenTimeout      time.Duration
	Interval         time.Duration
}

// DefaultGuardConfig trips at 60% failures over at least 5 calls and stays open for 30s.
func DefaultGuardConfig(name string, timeout time.Duration) GuardConfig {
	return GuardConfig{
		Name:             name,
		Timeout:          timeout,
		FailureThreshold: 0.6,
		MinRequests:      5,
		OpenTimeout:      30 * time.Second,
		Interval:         60 * time.Second,
	}
}

type guard struct {
	name    string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
	rec     CallRecorder
}

func newGuard(cfg GuardConfig, rec CallRecorder, logger *zap.Logger) *guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  1,
		Interval:     cfg.Interval,
		Timeout:      cfg.OpenTimeout,
		IsSuccessful: func(err error) bool { return !providerUnhealthy(err) },
		ReadyToTrip:  func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &guard{name: cfg.Name, timeout: cfg.Timeout, cb: cb, rec: rec}
}

func (g *guard) run(ctx context.Context, call func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return call(callCtx)
	})
	g.record(err)
	return out, err
}

func (g *guard) record(err error) {
	if g.rec == nil {
		return
	}
	g.rec.ProviderCall(g.name, outcomeOf(err))
}

func outcomeOf(err error) string {
	var perr *ProviderError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeRejected
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.As(err, &perr) && !providerUnhealthy(err):
		return OutcomeRefused
	default:
		return OutcomeFailure
	}
}

// providerUnhealthy reports whether err should count against the breaker.
// Callers going away and requests the provider rejected as invalid say
// nothing about provider health; auth, quota and 5xx responses do.
func providerUnhealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Code >= 400 && perr.Code < 500 {
		switch perr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return true
		}
		return false
	}
	return true
}

// GuardedGenerator bounds every Generate call with a timeout and a circuit breaker.
type GuardedGenerator struct {
	next  Generator
	guard *guard
}

func NewGuardedGenerator(next Generator, cfg GuardConfig, rec CallRecorder, logger *zap.Logger) *GuardedGenerator {
	return &GuardedGenerator{next: next, guard: newGuard(cfg, rec, logger)}
}

func (g *GuardedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.guard.run(ctx, func(ctx context.Context) (interface{}, error) {
		return g.next.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// GuardedSearcher bounds every Search call with a timeout and a circuit breaker.
type GuardedSearcher struct {
	next  VideoSearcher
	guard *guard
}

func NewGuardedSearcher(next VideoSearcher, cfg GuardConfig, rec CallRecorder, logger *zap.Logger) *GuardedSearcher {
	return &GuardedSearcher{next: next, guard: newGuard(cfg, rec, logger)}
}

func (g *GuardedSearcher) Search(ctx context.Context, query string, maxResults int64) ([]models.Video, error) {
	out, err := g.guard.run(ctx, func(ctx context.Context) (interface{}, error) {
		return g.next.Search(ctx, query, maxResults)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Video), nil
}
