package suggest

import (
	"sync"
)

// DefaultKPerNode is the per-node cache bound used when the caller
// does not configure one. K stays small and fixed, which keeps every
// mutation at O(depth * K log K) regardless of dictionary size.
const DefaultKPerNode = 12

// Suggestion is one ranked completion candidate.
type Suggestion struct {
	Word      string
	Frequency int
}

// Engine is the indexed-trie suggestion engine. Queries read cached
// per-node Top-K lists in time proportional to prefix length plus K;
// mutations keep every cache on the word's path correct incrementally.
//
// Mutations take an exclusive lock for their duration since a single
// mutation touches every node along a path. Queries share a read lock
// and may run concurrently with each other.
type Engine struct {
	mu       sync.RWMutex
	dict     *Dictionary
	rank     Ranking
	trie     *trie
	mirror   *mirror
	kPerNode int
}

// NewEngine creates an engine with the given per-node cache bound.
// Values below 1 fall back to DefaultKPerNode. The bound is fixed for
// the engine's lifetime; changing it would require a full rebuild.
func NewEngine(kPerNode int) *Engine {
	if kPerNode < 1 {
		kPerNode = DefaultKPerNode
	}
	dict := NewDictionary()
	return &Engine{
		dict:     dict,
		rank:     Ranking{dict: dict},
		trie:     newTrie(),
		mirror:   newMirror(),
		kPerNode: kPerNode,
	}
}

// KPerNode returns the per-node cache bound.
func (e *Engine) KPerNode() int { return e.kPerNode }

// Insert increments word's frequency by delta and marks it live.
// An empty word is a no-op. Frequencies never go below zero.
func (e *Engine) Insert(word string, delta int) {
	if word == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.dict.EnsureID(word)
	e.dict.SetFrequency(id, e.dict.Frequency(id)+delta)
	e.dict.SetLive(id, true)
	e.promote(word, id)
}

// Update sets word's frequency to freq exactly and marks it live.
func (e *Engine) Update(word string, freq int) {
	if word == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.dict.EnsureID(word)
	e.dict.SetFrequency(id, freq)
	e.dict.SetLive(id, true)
	e.promote(word, id)
}

// Remove marks word as gone: frequency 0, not live, stripped from
// every cache on its path. The word's id and trie edges persist.
// Unknown words are a no-op.
//
// Stripping does not backfill the freed cache slot from other live
// words in the subtree that were previously squeezed out by capacity,
// so a node may under-report suggestions until a later insert or
// update touches that subtree. Scan gives the exact view.
func (e *Engine) Remove(word string) {
	if word == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.dict.Lookup(word)
	if !ok {
		return
	}
	e.dict.SetFrequency(id, 0)
	e.dict.SetLive(id, false)
	e.mirror.delete(word)

	node := e.trie.root
	stripID(node, id)
	for i := 0; i < len(word); i++ {
		child, ok := node.children[word[i]]
		if !ok {
			return
		}
		node = child
		stripID(node, id)
	}
	if node.terminal == id {
		node.terminal = noWord
	}
}

// Query returns the best k suggestions for prefix, ranked by frequency
// descending with lexicographic tie-break. At most the node's cached
// Top-K entries are returned; k <= 0 or an unknown prefix yields an
// empty result. Frequencies are resolved live from the dictionary.
func (e *Engine) Query(prefix string, k int) []Suggestion {
	if k <= 0 {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	node, ok := e.trie.walkReadOnly(prefix)
	if !ok {
		return nil
	}
	if k > len(node.topK) {
		k = len(node.topK)
	}
	out := make([]Suggestion, 0, k)
	for _, id := range node.topK[:k] {
		out = append(out, Suggestion{
			Word:      e.dict.Text(id),
			Frequency: e.dict.Frequency(id),
		})
	}
	return out
}

// Scan walks the whole subtree under prefix exhaustively and returns
// every live word with frequency >= minFreq, ranked. Unlike Query it
// is not bounded by the per-node cache, at the cost of visiting the
// full subtree. limit <= 0 means no limit.
func (e *Engine) Scan(prefix string, limit, minFreq int) []Suggestion {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.mirror.scan(prefix, minFreq)
	sortSuggestions(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Snapshot returns every live word with its frequency, sorted by word
// text ascending. This is the save-file order.
func (e *Engine) Snapshot() []Suggestion {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.dict.LiveIDs()
	out := make([]Suggestion, 0, len(ids))
	for _, id := range ids {
		out = append(out, Suggestion{
			Word:      e.dict.Text(id),
			Frequency: e.dict.Frequency(id),
		})
	}
	// Live ids come out in allocation order, not text order.
	sortByWord(out)
	return out
}

// Stats returns basic engine counters.
func (e *Engine) Stats() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	live := 0
	maxFreq := 0
	for _, id := range e.dict.LiveIDs() {
		live++
		if f := e.dict.Frequency(id); f > maxFreq {
			maxFreq = f
		}
	}
	return map[string]int{
		"totalWords":   e.dict.Len(),
		"liveWords":    live,
		"trieNodes":    e.trie.nodes,
		"maxFrequency": maxFreq,
		"kPerNode":     e.kPerNode,
	}
}

// promote re-ranks id into every cache on word's path after its
// frequency or live status changed. Append-if-missing, re-sort, trim:
// an id that does not make a node's current Top-K is simply dropped by
// the trim and stays discoverable only through deeper nodes or Scan.
// Caller holds the write lock.
func (e *Engine) promote(word string, id int) {
	path := e.trie.walkOrCreate(word)
	for _, node := range path {
		if !containsID(node.topK, id) {
			node.topK = append(node.topK, id)
		}
		e.rank.Sort(node.topK)
		if len(node.topK) > e.kPerNode {
			node.topK = node.topK[:e.kPerNode]
		}
	}
	path[len(path)-1].terminal = id
	e.mirror.upsert(word, e.dict.Frequency(id))
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// stripID deletes id from a node's cache preserving the relative order
// of the rest, so no re-sort is needed.
func stripID(node *trieNode, id int) {
	for i, v := range node.topK {
		if v == id {
			node.topK = append(node.topK[:i], node.topK[i+1:]...)
			return
		}
	}
}
