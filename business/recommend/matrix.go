package recommend

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"

	"rateMenu/domain"

	"gonum.org/v1/gonum/mat"
)

// UserItemMatrix is the dense users x items rating table, both axes in
// ascending id order. Unrated cells hold 0 and are marked false in the
// presence mask; callers must consult the mask, never the zero.
type UserItemMatrix struct {
	Users []int64
	Items []int64

	userIndex map[int64]int
	itemIndex map[int64]int

	ratings *mat.Dense // nil when there are no observations
	rated   [][]bool
}

// BuildUserItemMatrix builds the matrix from raw observations. When the same
// (user, item) pair appears more than once the last observation wins.
func BuildUserItemMatrix(observations []domain.Rating) *UserItemMatrix {
	userSet := make(map[int64]struct{})
	itemSet := make(map[int64]struct{})
	for _, o := range observations {
		userSet[o.UserID] = struct{}{}
		itemSet[o.MenuItemID] = struct{}{}
	}

	m := &UserItemMatrix{
		Users:     sortedKeys(userSet),
		Items:     sortedKeys(itemSet),
		userIndex: make(map[int64]int, len(userSet)),
		itemIndex: make(map[int64]int, len(itemSet)),
	}
	for i, u := range m.Users {
		m.userIndex[u] = i
	}
	for j, it := range m.Items {
		m.itemIndex[it] = j
	}

	if len(m.Users) == 0 || len(m.Items) == 0 {
		return m
	}

	m.ratings = mat.NewDense(len(m.Users), len(m.Items), nil)
	m.rated = make([][]bool, len(m.Users))
	for i := range m.rated {
		m.rated[i] = make([]bool, len(m.Items))
	}

	for _, o := range observations {
		i, j := m.userIndex[o.UserID], m.itemIndex[o.MenuItemID]
		m.ratings.Set(i, j, o.Rating)
		m.rated[i][j] = true
	}

	return m
}

func sortedKeys(set map[int64]struct{}) []int64 {
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (m *UserItemMatrix) UserIndex(userID int64) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// Rating returns the rating at row i, column j and whether it was observed.
func (m *UserItemMatrix) Rating(i, j int) (float64, bool) {
	if m.ratings == nil || !m.rated[i][j] {
		return 0, false
	}
	return m.ratings.At(i, j), true
}

// centered returns a copy of the ratings with each row's mean subtracted.
// With ratedOnly the mean covers observed cells and unrated cells stay 0;
// otherwise the mean covers every column and every cell is shifted.
func (m *UserItemMatrix) centered(ratedOnly bool) *mat.Dense {
	rows, cols := m.ratings.Dims()
	out := mat.NewDense(rows, cols, nil)

	for i := 0; i < rows; i++ {
		sum, n := 0.0, 0
		for j := 0; j < cols; j++ {
			if ratedOnly && !m.rated[i][j] {
				continue
			}
			sum += m.ratings.At(i, j)
			n++
		}
		if n == 0 {
			continue
		}
		mean := sum / float64(n)

		for j := 0; j < cols; j++ {
			if ratedOnly && !m.rated[i][j] {
				continue
			}
			out.Set(i, j, m.ratings.At(i, j)-mean)
		}
	}

	return out
}

// Fingerprint identifies the observation set the matrix was built from. Any
// change to a rating, a user, or an item changes it.
func (m *UserItemMatrix) Fingerprint(ratedOnly bool) string {
	h := fnv.New64a()
	buf := make([]byte, 8)

	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		_, _ = h.Write(buf)
	}

	if ratedOnly {
		write(1)
	} else {
		write(0)
	}
	write(uint64(len(m.Users)))
	for _, u := range m.Users {
		write(uint64(u))
	}
	write(uint64(len(m.Items)))
	for _, it := range m.Items {
		write(uint64(it))
	}
	for i := range m.rated {
		for j, ok := range m.rated[i] {
			if !ok {
				continue
			}
			write(uint64(i))
			write(uint64(j))
			write(math.Float64bits(m.ratings.At(i, j)))
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
