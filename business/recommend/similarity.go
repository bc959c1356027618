package recommend

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// SimilarityMatrix holds user-user cosine similarity of centered rating rows.
// Users is ascending and indexes both axes of Values.
type SimilarityMatrix struct {
	Users  []int64     `json:"users"`
	Values [][]float64 `json:"values"`
}

// matches reports whether sim is a well-formed n x n matrix over users.
func (sim *SimilarityMatrix) matches(users []int64) bool {
	if sim == nil || !slices.Equal(sim.Users, users) || len(sim.Values) != len(users) {
		return false
	}
	for _, row := range sim.Values {
		if len(row) != len(users) {
			return false
		}
	}
	return true
}

// ComputeSimilarity centers every user row and takes pairwise cosine
// similarity. A pair involving a zero-norm row scores 0; the diagonal is 1.
func ComputeSimilarity(m *UserItemMatrix, centerRatedOnly bool) *SimilarityMatrix {
	n := len(m.Users)
	sim := &SimilarityMatrix{
		Users:  append([]int64(nil), m.Users...),
		Values: make([][]float64, n),
	}
	for i := range sim.Values {
		sim.Values[i] = make([]float64, n)
		sim.Values[i][i] = 1
	}
	if m.ratings == nil {
		return sim
	}

	centered := m.centered(centerRatedOnly)

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		norms[i] = mat.Norm(centered.RowView(i), 2)
	}

	// upper triangle only, mirrored, so sim(a,b) == sim(b,a) exactly
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := 0.0
			if norms[i] > 0 && norms[j] > 0 {
				s = mat.Dot(centered.RowView(i), centered.RowView(j)) / (norms[i] * norms[j])
				s = clamp(s, -1, 1)
			}
			sim.Values[i][j] = s
			sim.Values[j][i] = s
		}
	}

	return sim
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *SimilarityMatrix) indexOf(userID int64) (int, bool) {
	i := sort.Search(len(s.Users), func(i int) bool { return s.Users[i] >= userID })
	if i < len(s.Users) && s.Users[i] == userID {
		return i, true
	}
	return 0, false
}

// Similarity returns sim(a, b) and whether both users are known.
func (s *SimilarityMatrix) Similarity(a, b int64) (float64, bool) {
	i, ok := s.indexOf(a)
	if !ok {
		return 0, false
	}
	j, ok := s.indexOf(b)
	if !ok {
		return 0, false
	}
	return s.Values[i][j], true
}

// Neighbor is another user whose similarity to the target passed the threshold.
type Neighbor struct {
	UserID     int64
	Similarity float64
}

// Neighbors returns users other than userID with similarity strictly above
// threshold, in ascending user id order.
func (s *SimilarityMatrix) Neighbors(userID int64, threshold float64) []Neighbor {
	i, ok := s.indexOf(userID)
	if !ok {
		return nil
	}

	var out []Neighbor
	for j, other := range s.Users {
		if j == i {
			continue
		}
		if v := s.Values[i][j]; v > threshold {
			out = append(out, Neighbor{UserID: other, Similarity: v})
		}
	}
	return out
}
