package recommend

import (
	"sort"

	"rateMenu/domain"
)

// Popular ranks items by average rating, ignoring items with fewer than
// minRatings ratings. Ties go to the lower item id. A repeated (user, item)
// pair counts once with its last rating, as in BuildUserItemMatrix.
func Popular(observations []domain.Rating, limit, minRatings int) []domain.PopularItem {
	if limit <= 0 {
		return []domain.PopularItem{}
	}

	type agg struct {
		sum   float64
		count int64
	}

	latest := make(map[[2]int64]float64, len(observations))
	for _, o := range observations {
		latest[[2]int64{o.UserID, o.MenuItemID}] = o.Rating
	}

	byItem := make(map[int64]*agg)
	for key, rating := range latest {
		a, ok := byItem[key[1]]
		if !ok {
			a = &agg{}
			byItem[key[1]] = a
		}
		a.sum += rating
		a.count++
	}

	items := make([]domain.PopularItem, 0, len(byItem))
	for itemID, a := range byItem {
		if a.count < int64(minRatings) {
			continue
		}
		items = append(items, domain.PopularItem{
			MenuItemID:    itemID,
			AverageRating: a.sum / float64(a.count),
			RatingCount:   a.count,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AverageRating != items[j].AverageRating {
			return items[i].AverageRating > items[j].AverageRating
		}
		return items[i].MenuItemID < items[j].MenuItemID
	})

	if len(items) > limit {
		items = items[:limit]
	}

	return items
}

// Popular applies the engine's minimum rating count.
func (e *Engine) Popular(observations []domain.Rating, limit int) []domain.PopularItem {
	return Popular(observations, limit, e.cfg.MinPopularityRatings)
}
