package recommend

type Config struct {
	// neighbors must be strictly more similar than this
	SimilarityThreshold float64

	// a neighbor's rating must reach this to nominate an item
	MinNeighborRating float64

	// subtracted from a neighbor's rating before weighting
	NeutralRating float64

	// items with fewer ratings never appear in the popularity fallback
	MinPopularityRatings int

	// center each user on the mean of rated cells only instead of all cells
	CenterRatedOnly bool
}

const (
	defaultSimilarityThreshold  = 0.3
	defaultMinNeighborRating    = 4.0
	defaultNeutralRating        = 2.5
	defaultMinPopularityRatings = 2
)

func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:  defaultSimilarityThreshold,
		MinNeighborRating:    defaultMinNeighborRating,
		NeutralRating:        defaultNeutralRating,
		MinPopularityRatings: defaultMinPopularityRatings,
		CenterRatedOnly:      false,
	}
}
