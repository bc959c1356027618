package resilient

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rateMenu/domain"

	gobreaker "github.com/sony/gobreaker/v2"
)

type flakyStore struct {
	calls atomic.Int32
	err   error
}

func (f *flakyStore) FetchAllRatings(ctx context.Context) ([]domain.Rating, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Rating{{UserID: 1, MenuItemID: 2, Rating: 5}}, nil
}

func (f *flakyStore) FetchPopularity(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.PopularItem{{MenuItemID: 2, AverageRating: 5, RatingCount: 2}}, nil
}

func TestRatingStore_PassesThrough(t *testing.T) {
	inner := &flakyStore{}
	store := NewRatingStore(inner, Settings{MaxConsecutiveFailures: 2, OpenTimeout: time.Minute})

	ratings, err := store.FetchAllRatings(context.Background())
	if err != nil || len(ratings) != 1 {
		t.Fatalf("FetchAllRatings() = %v, %v", ratings, err)
	}

	items, err := store.FetchPopularity(context.Background(), 10)
	if err != nil || len(items) != 1 || items[0].MenuItemID != 2 {
		t.Fatalf("FetchPopularity() = %v, %v", items, err)
	}
}

func TestRatingStore_OpensAfterConsecutiveFailures(t *testing.T) {
	dbErr := errors.New("connection refused")
	inner := &flakyStore{err: dbErr}
	store := NewRatingStore(inner, Settings{MaxConsecutiveFailures: 3, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := store.FetchAllRatings(context.Background()); !errors.Is(err, dbErr) {
			t.Fatalf("call %d error = %v, want %v", i, err, dbErr)
		}
	}

	if store.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", store.State())
	}

	_, err := store.FetchPopularity(context.Background(), 5)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if got := inner.calls.Load(); got != 3 {
		t.Errorf("inner calls = %d, want 3", got)
	}
}

func TestRatingStore_CanceledContextDoesNotTrip(t *testing.T) {
	inner := &flakyStore{err: context.Canceled}
	store := NewRatingStore(inner, Settings{MaxConsecutiveFailures: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, _ = store.FetchAllRatings(context.Background())
	}

	if store.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", store.State())
	}
}

func TestRatingStore_HalfOpenRecovers(t *testing.T) {
	inner := &flakyStore{err: errors.New("down")}
	store := NewRatingStore(inner, Settings{MaxConsecutiveFailures: 1, OpenTimeout: 20 * time.Millisecond})

	_, _ = store.FetchAllRatings(context.Background())
	if store.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", store.State())
	}

	inner.err = nil
	time.Sleep(40 * time.Millisecond)

	if _, err := store.FetchAllRatings(context.Background()); err != nil {
		t.Fatalf("FetchAllRatings() after timeout error = %v", err)
	}
	if store.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", store.State())
	}
}
