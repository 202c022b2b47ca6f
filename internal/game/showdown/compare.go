package showdown

import "sort"

// Compare orders two evaluations: negative when a loses, positive when a
// wins, 0 for a true tie. Missing tie-break values count as 0.
func Compare(a, b Evaluation) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	n := max(len(a.RankValues), len(b.RankValues))
	for i := 0; i < n; i++ {
		if d := at(a.RankValues, i) - at(b.RankValues, i); d != 0 {
			return d
		}
	}
	return 0
}

func at(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Placing is one entry of a ranked table.
type Placing struct {
	// Index is the position of the evaluation in the input slice.
	Index int `json:"index"`
	// Place is 1 for the best hand. Tied hands share a place and the next
	// distinct hand skips the shared places (1, 1, 3).
	Place      int        `json:"place"`
	Evaluation Evaluation `json:"evaluation"`
}

// Rank sorts evaluations best first and assigns places. Ties keep input
// order.
func Rank(evals []Evaluation) []Placing {
	out := make([]Placing, len(evals))
	for i, e := range evals {
		out[i] = Placing{Index: i, Evaluation: e}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i].Evaluation, out[j].Evaluation) > 0
	})
	for i := range out {
		if i > 0 && Compare(out[i].Evaluation, out[i-1].Evaluation) == 0 {
			out[i].Place = out[i-1].Place
		} else {
			out[i].Place = i + 1
		}
	}
	return out
}

// Winners returns the input indices of every hand tied for first place.
func Winners(evals []Evaluation) []int {
	var idx []int
	for _, p := range Rank(evals) {
		if p.Place != 1 {
			break
		}
		idx = append(idx, p.Index)
	}
	return idx
}
