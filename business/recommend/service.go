package recommend

import (
	"context"
	"errors"
	"fmt"

	"rateMenu/domain"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/metrics"
	"rateMenu/pkg/trace"
)

// ErrStoreUnavailable wraps any failure to read ratings from the store.
var ErrStoreUnavailable = errors.New("rating store unavailable")

// ---- Repository interfaces ----

type RatingStore interface {
	FetchAllRatings(ctx context.Context) ([]domain.Rating, error)
	FetchPopularity(ctx context.Context, limit int) ([]domain.PopularItem, error)
}

// SimilarityCache memoizes similarity matrices by observation-set fingerprint.
type SimilarityCache interface {
	GetSimilarity(ctx context.Context, key string) (*SimilarityMatrix, bool, error)
	SaveSimilarity(ctx context.Context, key string, sim *SimilarityMatrix) error
}

// ---- Usecase / Service ----

type RecommendationService struct {
	store  RatingStore
	cache  SimilarityCache
	engine *Engine
}

// NewRecommendationService wires the store and engine. cache may be nil.
func NewRecommendationService(store RatingStore, cache SimilarityCache, cfg Config) *RecommendationService {
	return &RecommendationService{
		store:  store,
		cache:  cache,
		engine: NewEngine(cfg),
	}
}

// Recommend returns the personalized ranking for userID, or the popularity
// ranking over the same ratings when personalization yields nothing.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	userID int64,
	limit int,
) (domain.RecommendationResponse, error) {

	if err := ctx.Err(); err != nil {
		return domain.RecommendationResponse{}, fmt.Errorf("context error: %w", err)
	}

	observations, err := s.store.FetchAllRatings(ctx)
	if err != nil {
		return domain.RecommendationResponse{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// 1) matrix + (cached) similarity
	m := BuildUserItemMatrix(observations)
	sim := s.similarity(ctx, m)

	// 2) personalized ranking
	recs := s.engine.Rank(m, sim, userID, limit)
	source := domain.SourcePersonalized

	// 3) fallback
	if len(recs) == 0 {
		source = domain.SourcePopular
		popular := s.engine.Popular(observations, limit)
		recs = make([]domain.Recommendation, 0, len(popular))
		for _, p := range popular {
			recs = append(recs, domain.Recommendation{
				MenuItemID: p.MenuItemID,
				Score:      p.AverageRating,
			})
		}
	}

	logger.Debug("recommend",
		"trace_id", trace.TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"users", len(m.Users),
		"items", len(m.Items),
		"source", source,
		"result_count", len(recs),
	)

	metrics.RecommendRequests.WithLabelValues(source).Inc()

	return domain.RecommendationResponse{
		UserID:          userID,
		Source:          source,
		Recommendations: recs,
	}, nil
}

// Popular returns the store's popularity ranking.
func (s *RecommendationService) Popular(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.store.FetchPopularity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	metrics.RecommendRequests.WithLabelValues(domain.SourcePopular).Inc()

	return items, nil
}

// similarity loads the matrix for m's fingerprint from the cache or computes
// and stores it. Cache failures only cost a recompute.
func (s *RecommendationService) similarity(ctx context.Context, m *UserItemMatrix) *SimilarityMatrix {
	ratedOnly := s.engine.cfg.CenterRatedOnly
	if s.cache == nil {
		return ComputeSimilarity(m, ratedOnly)
	}

	key := m.Fingerprint(ratedOnly)

	cached, ok, err := s.cache.GetSimilarity(ctx, key)
	switch {
	case err != nil:
		metrics.SimilarityCacheLookups.WithLabelValues("error").Inc()
		logger.Warn("similarity cache read failed", "trace_id", trace.TraceIDFromContext(ctx), "key", key, err)
	case ok && cached.matches(m.Users):
		metrics.SimilarityCacheLookups.WithLabelValues("hit").Inc()
		return cached
	default:
		metrics.SimilarityCacheLookups.WithLabelValues("miss").Inc()
	}

	sim := ComputeSimilarity(m, ratedOnly)
	if err := s.cache.SaveSimilarity(ctx, key, sim); err != nil {
		logger.Warn("similarity cache write failed", "trace_id", trace.TraceIDFromContext(ctx), "key", key, err)
	}

	return sim
}
