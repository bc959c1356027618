package recommend

import (
	"sort"

	"rateMenu/domain"
)

// Engine is user-based collaborative filtering over a per-request
// user-item matrix. It holds configuration only and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend ranks menu items for userID from the full observation set. An
// empty result means no personalization signal: the user is unknown, has no
// neighbor above the similarity threshold, or the neighbors liked nothing new.
func (e *Engine) Recommend(observations []domain.Rating, userID int64, limit int) []domain.Recommendation {
	m := BuildUserItemMatrix(observations)
	sim := ComputeSimilarity(m, e.cfg.CenterRatedOnly)
	return e.Rank(m, sim, userID, limit)
}

// Rank scores and orders candidates given a matrix and its similarity. sim
// must have been computed from m (or from the same observation set).
func (e *Engine) Rank(m *UserItemMatrix, sim *SimilarityMatrix, userID int64, limit int) []domain.Recommendation {
	if limit <= 0 {
		return []domain.Recommendation{}
	}

	target, ok := m.UserIndex(userID)
	if !ok {
		return []domain.Recommendation{}
	}

	neighbors := sim.Neighbors(userID, e.cfg.SimilarityThreshold)
	if len(neighbors) == 0 {
		return []domain.Recommendation{}
	}

	scores := e.scoreCandidates(m, target, neighbors)

	return rankScores(scores, limit)
}

// scoreCandidates accumulates sim * (rating - neutral) over every neighbor
// rating at or above MinNeighborRating for items the target has not rated.
func (e *Engine) scoreCandidates(m *UserItemMatrix, target int, neighbors []Neighbor) map[int64]float64 {
	scores := make(map[int64]float64)

	for _, nb := range neighbors {
		row, ok := m.UserIndex(nb.UserID)
		if !ok {
			continue
		}

		for j, itemID := range m.Items {
			if _, rated := m.Rating(target, j); rated {
				continue
			}
			rating, rated := m.Rating(row, j)
			if !rated || rating < e.cfg.MinNeighborRating {
				continue
			}
			scores[itemID] += nb.Similarity * (rating - e.cfg.NeutralRating)
		}
	}

	return scores
}

// rankScores sorts by score descending, item id ascending, and keeps limit.
func rankScores(scores map[int64]float64, limit int) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(scores))
	for itemID, score := range scores {
		recs = append(recs, domain.Recommendation{MenuItemID: itemID, Score: score})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].MenuItemID < recs[j].MenuItemID
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}

	return recs
}
