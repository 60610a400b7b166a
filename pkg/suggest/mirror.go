package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// mirror keeps a patricia trie of word -> frequency next to the
// indexed trie. The per-node caches answer bounded queries; the mirror
// serves exhaustive subtree scans for anything that needs more than
// the cached view (deep listings, the reference checks in tests).
type mirror struct {
	trie *patricia.Trie
}

func newMirror() *mirror {
	return &mirror{trie: patricia.NewTrie()}
}

func (m *mirror) upsert(word string, freq int) {
	// Insert would keep the old item for an existing key; Set overwrites.
	m.trie.Set(patricia.Prefix(word), freq)
}

func (m *mirror) delete(word string) {
	m.trie.Delete(patricia.Prefix(word))
}

// scan visits the whole subtree under prefix and collects every word
// with frequency >= minFreq. Results are unordered; callers sort.
func (m *mirror) scan(prefix string, minFreq int) []Suggestion {
	var out []Suggestion
	err := m.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int)
		if !ok {
			log.Errorf("unexpected item type %T for word %s", item, p)
			return nil
		}
		if freq < minFreq {
			return nil
		}
		out = append(out, Suggestion{Word: string(p), Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("visiting subtree for %q: %v", prefix, err)
	}
	return out
}
