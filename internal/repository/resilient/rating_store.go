package resilient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rateMenu/business/recommend"
	"rateMenu/domain"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "rating-store"

// Settings configures when the breaker opens and how long it stays open.
type Settings struct {
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
}

// RatingStore guards another RatingStore with a circuit breaker. While the
// breaker is open calls fail fast with gobreaker.ErrOpenState.
type RatingStore struct {
	next recommend.RatingStore
	cb   *gobreaker.CircuitBreaker[any]
}

var _ recommend.RatingStore = (*RatingStore)(nil)

func NewRatingStore(next recommend.RatingStore, s Settings) *RatingStore {
	maxFailures := s.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	metrics.BreakerState.WithLabelValues(breakerName).Set(stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// a caller giving up is not a store failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &RatingStore{
		next: next,
		cb:   cb,
	}
}

func (s *RatingStore) FetchAllRatings(ctx context.Context) ([]domain.Rating, error) {
	return execute[[]domain.Rating](s.cb, func() (any, error) {
		return s.next.FetchAllRatings(ctx)
	})
}

func (s *RatingStore) FetchPopularity(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	return execute[[]domain.PopularItem](s.cb, func() (any, error) {
		return s.next.FetchPopularity(ctx, limit)
	})
}

// State exposes the breaker state for health reporting.
func (s *RatingStore) State() gobreaker.State {
	return s.cb.State()
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (any, error)) (T, error) {
	var zero T

	result, err := cb.Execute(fn)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}

	return typed, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
