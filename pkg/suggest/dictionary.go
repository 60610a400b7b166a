package suggest

// Dictionary is the central word table. Every word ever seen gets a
// dense integer id on first encounter; the id is never reused or
// reassigned, even after the word is removed. Trie caches store ids,
// so stable ids are what keeps them valid without generation checks.
type Dictionary struct {
	words []string
	freqs []int
	live  []bool
	index map[string]int
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		index: make(map[string]int),
	}
}

// EnsureID returns the id for word, allocating a new record
// (frequency 0, not live) the first time the word is seen.
func (d *Dictionary) EnsureID(word string) int {
	if id, ok := d.index[word]; ok {
		return id
	}
	id := len(d.words)
	d.words = append(d.words, word)
	d.freqs = append(d.freqs, 0)
	d.live = append(d.live, false)
	d.index[word] = id
	return id
}

// Lookup returns the id for word without allocating one.
func (d *Dictionary) Lookup(word string) (int, bool) {
	id, ok := d.index[word]
	return id, ok
}

// Text returns the word for id. Texts are immutable once assigned.
func (d *Dictionary) Text(id int) string { return d.words[id] }

// Frequency returns the current frequency for id.
func (d *Dictionary) Frequency(id int) int { return d.freqs[id] }

// SetFrequency sets the frequency for id. Negative values clamp to 0.
func (d *Dictionary) SetFrequency(id, freq int) {
	if freq < 0 {
		freq = 0
	}
	d.freqs[id] = freq
}

// Live reports whether id currently names a live word.
func (d *Dictionary) Live(id int) bool { return d.live[id] }

// SetLive flips the live flag for id.
func (d *Dictionary) SetLive(id int, v bool) { d.live[id] = v }

// Len returns the number of ids ever allocated, live or not.
func (d *Dictionary) Len() int { return len(d.words) }

// LiveIDs returns the ids of all live words, in id order.
func (d *Dictionary) LiveIDs() []int {
	ids := make([]int, 0, len(d.words))
	for id := range d.words {
		if d.live[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
