package suggest

import "sort"

// Ranking is the single ordering used everywhere a cached list is
// sorted: frequency descending, then word text ascending. Texts are
// unique per id, so the order is a strict total order on distinct ids.
// All per-node caches must be sorted with the same Ranking or they
// stop being mutually consistent.
type Ranking struct {
	dict *Dictionary
}

// Less reports whether id a ranks before id b.
func (r Ranking) Less(a, b int) bool {
	fa, fb := r.dict.Frequency(a), r.dict.Frequency(b)
	if fa != fb {
		return fa > fb
	}
	return r.dict.Text(a) < r.dict.Text(b)
}

// Sort orders ids in place by the ranking.
func (r Ranking) Sort(ids []int) {
	sort.Slice(ids, func(i, j int) bool {
		return r.Less(ids[i], ids[j])
	})
}

// sortSuggestions orders resolved suggestions the same way the id
// ranking would: frequency descending, word ascending on ties.
func sortSuggestions(s []Suggestion) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Frequency != s[j].Frequency {
			return s[i].Frequency > s[j].Frequency
		}
		return s[i].Word < s[j].Word
	})
}

func sortByWord(s []Suggestion) {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Word < s[j].Word
	})
}
