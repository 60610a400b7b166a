// Package suggest is the core: the word dictionary, the indexed trie
// with per-node Top-K caches, and the incremental maintenance that
// keeps the caches correct after every mutation.
package suggest

// Suggester is the surface the CLI and server layers program against.
type Suggester interface {
	// Query returns up to k cached suggestions for prefix.
	Query(prefix string, k int) []Suggestion

	// Scan returns every live word under prefix with frequency >= minFreq,
	// ranked, via exhaustive traversal.
	Scan(prefix string, limit, minFreq int) []Suggestion

	// Insert increments word's frequency by delta and marks it live.
	Insert(word string, delta int)

	// Update sets word's frequency exactly and marks it live.
	Update(word string, freq int)

	// Remove marks word not live and strips it from cached lists.
	Remove(word string)

	// Snapshot returns all live words sorted by text, for persistence.
	Snapshot() []Suggestion

	// Stats returns basic engine counters.
	Stats() map[string]int
}

var _ Suggester = (*Engine)(nil)
