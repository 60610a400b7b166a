package suggest

import (
	"fmt"
	"testing"
)

func queryWords(e *Engine, prefix string, k int) []string {
	res := e.Query(prefix, k)
	words := make([]string, len(res))
	for i, s := range res {
		words[i] = s.Word
	}
	return words
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine(5)
	if got := e.Query("xyz", 5); len(got) != 0 {
		t.Errorf("expected empty result on fresh engine, got %v", got)
	}
}

func TestDefaultKPerNode(t *testing.T) {
	if got := NewEngine(0).KPerNode(); got != DefaultKPerNode {
		t.Errorf("expected default bound %d, got %d", DefaultKPerNode, got)
	}
	if got := NewEngine(-3).KPerNode(); got != DefaultKPerNode {
		t.Errorf("expected default bound %d for negative input, got %d", DefaultKPerNode, got)
	}
}

// Ties always break to the lexicographically smaller word.
func TestTieBreak(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)
	e.Update("car", 5)
	e.Update("cap", 3)

	got := e.Query("ca", 2)
	want := []Suggestion{{"car", 5}, {"cat", 5}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Query(ca, 2) = %v, want %v", got, want)
	}
}

func TestRemovalPromotesNext(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)
	e.Update("car", 5)
	e.Update("cap", 3)
	e.Remove("car")

	got := e.Query("ca", 2)
	want := []Suggestion{{"cat", 5}, {"cap", 3}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Query(ca, 2) after remove = %v, want %v", got, want)
	}
}

func TestNonPositiveK(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)

	for _, k := range []int{0, -1, -100} {
		if got := e.Query("ca", k); len(got) != 0 {
			t.Errorf("Query(ca, %d) = %v, want empty", k, got)
		}
	}
}

func TestRemovalExclusion(t *testing.T) {
	e := NewEngine(5)
	words := []string{"sun", "sunny", "sunshine", "sunset"}
	for i, w := range words {
		e.Update(w, 10+i)
	}
	e.Remove("sunny")

	target := "sunny"
	for i := 0; i <= len(target); i++ {
		prefix := target[:i]
		for _, k := range []int{1, 3, 10} {
			for _, s := range e.Query(prefix, k) {
				if s.Word == target {
					t.Fatalf("removed word %q returned for Query(%q, %d)", target, prefix, k)
				}
			}
		}
	}
}

func TestRemoveUnknownWordIsNoop(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)
	e.Remove("dog")
	e.Remove("")

	if got := queryWords(e, "ca", 5); !equalWords(got, []string{"cat"}) {
		t.Errorf("engine state disturbed by no-op removals: %v", got)
	}
}

func TestEmptyWordMutationsAreNoops(t *testing.T) {
	e := NewEngine(5)
	e.Insert("", 3)
	e.Update("", 7)

	if got := e.Stats()["totalWords"]; got != 0 {
		t.Errorf("empty-word mutations allocated %d records", got)
	}
}

func TestInsertAccumulates(t *testing.T) {
	e := NewEngine(5)
	e.Insert("cat", 5)
	e.Insert("cat", 3)

	got := e.Query("cat", 1)
	if len(got) != 1 || got[0].Frequency != 8 {
		t.Errorf("expected accumulated frequency 8, got %v", got)
	}
}

func TestFrequencyNeverNegative(t *testing.T) {
	e := NewEngine(5)
	e.Insert("cat", 2)
	e.Insert("cat", -10)

	got := e.Query("cat", 1)
	if len(got) != 1 || got[0].Frequency != 0 {
		t.Errorf("expected frequency clamped to 0, got %v", got)
	}
}

func TestIdempotentUpdate(t *testing.T) {
	e := NewEngine(3)
	seed := map[string]int{"car": 9, "cat": 9, "cap": 4, "cab": 2, "dog": 7}
	for w, f := range seed {
		e.Update(w, f)
	}

	e.Update("cap", 4)
	first := queryWords(e, "ca", 3)
	e.Update("cap", 4)
	second := queryWords(e, "ca", 3)

	if !equalWords(first, second) {
		t.Errorf("repeated identical update changed caches: %v then %v", first, second)
	}
}

// Raising a word's frequency never worsens its position in a list that
// already contains it.
func TestMonotonicRankUnderIncrease(t *testing.T) {
	e := NewEngine(5)
	e.Update("cab", 10)
	e.Update("cap", 8)
	e.Update("cat", 2)

	position := func() int {
		for i, w := range queryWords(e, "ca", 5) {
			if w == "cat" {
				return i
			}
		}
		return -1
	}

	last := position()
	for i := 0; i < 6; i++ {
		e.Insert("cat", 3)
		now := position()
		if now < 0 {
			t.Fatalf("word disappeared from cache after frequency increase")
		}
		if now > last {
			t.Fatalf("rank worsened from %d to %d after frequency increase", last, now)
		}
		last = now
	}
	if last != 0 {
		t.Errorf("expected cat to reach the top, stuck at position %d", last)
	}
}

// Insertion order must not matter: the same data produces identical
// caches no matter how it arrived.
func TestOrderIndependence(t *testing.T) {
	data := map[string]int{
		"rate": 7, "rat": 7, "ratio": 12, "rational": 3, "raven": 7, "raw": 1,
	}
	orders := [][]string{
		{"rate", "rat", "ratio", "rational", "raven", "raw"},
		{"raw", "raven", "rational", "ratio", "rat", "rate"},
		{"ratio", "raw", "rate", "rational", "rat", "raven"},
	}

	var reference []string
	for i, order := range orders {
		e := NewEngine(4)
		for _, w := range order {
			e.Update(w, data[w])
		}
		got := queryWords(e, "ra", 4)
		if i == 0 {
			reference = got
			continue
		}
		if !equalWords(got, reference) {
			t.Errorf("order %d produced %v, want %v", i, got, reference)
		}
	}
}

func TestCapacityTrim(t *testing.T) {
	e := NewEngine(2)
	e.Update("twig", 9)
	e.Update("twin", 8)
	e.Update("twist", 1)

	if got := queryWords(e, "tw", 10); !equalWords(got, []string{"twig", "twin"}) {
		t.Errorf("expected capped cache [twig twin], got %v", got)
	}

	// A rank improvement re-admits the dropped word; the cache stays
	// capped at two, so the last-ranked word falls out instead.
	e.Update("twist", 20)
	if got := queryWords(e, "tw", 10); !equalWords(got, []string{"twist", "twig"}) {
		t.Errorf("expected twist readmitted at the top, got %v", got)
	}

	// The squeezed-out word is still served from its own deeper prefix.
	if got := queryWords(e, "twin", 10); !equalWords(got, []string{"twin"}) {
		t.Errorf("expected twin under its own prefix, got %v", got)
	}
}

// Removal strips without backfilling: a word squeezed out earlier by
// capacity does not come back until a mutation touches the subtree.
func TestRemovalDoesNotBackfill(t *testing.T) {
	e := NewEngine(2)
	e.Update("twig", 9)
	e.Update("twin", 8)
	e.Update("twist", 1)
	e.Remove("twig")

	got := queryWords(e, "tw", 10)
	if !equalWords(got, []string{"twin"}) {
		t.Errorf("expected under-reported cache [twin], got %v", got)
	}

	// Scan still sees the full picture.
	scan := e.Scan("tw", 0, 0)
	if len(scan) != 2 || scan[0].Word != "twin" || scan[1].Word != "twist" {
		t.Errorf("Scan(tw) = %v, want [twin twist]", scan)
	}

	// Touching the squeezed-out word repairs the cache.
	e.Update("twist", 1)
	if got := queryWords(e, "tw", 10); !equalWords(got, []string{"twin", "twist"}) {
		t.Errorf("expected backfill after update, got %v", got)
	}
}

func TestQueryResolvesLiveFrequencies(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)
	e.Update("cab", 3)
	e.Update("cat", 50)

	got := e.Query("ca", 1)
	if len(got) != 1 || got[0] != (Suggestion{"cat", 50}) {
		t.Errorf("expected live frequency 50, got %v", got)
	}
}

func TestEmptyPrefixReturnsGlobalTop(t *testing.T) {
	e := NewEngine(3)
	e.Update("alpha", 1)
	e.Update("zebra", 10)
	e.Update("mango", 5)

	if got := queryWords(e, "", 2); !equalWords(got, []string{"zebra", "mango"}) {
		t.Errorf("Query(\"\", 2) = %v, want [zebra mango]", got)
	}
}

func TestTrieEdgesPersistAfterRemoval(t *testing.T) {
	e := NewEngine(5)
	e.Update("solo", 4)
	before := e.Stats()["trieNodes"]
	e.Remove("solo")

	if after := e.Stats()["trieNodes"]; after != before {
		t.Errorf("trie nodes changed on removal: %d -> %d", before, after)
	}
	// The node still resolves, its cache is just empty.
	if got := e.Query("solo", 5); len(got) != 0 {
		t.Errorf("expected empty cache at surviving node, got %v", got)
	}
}

func TestIDsStableAcrossRemoval(t *testing.T) {
	e := NewEngine(5)
	e.Update("cat", 5)
	id, ok := e.dict.Lookup("cat")
	if !ok {
		t.Fatal("cat not in dictionary")
	}
	e.Remove("cat")
	e.Insert("cat", 2)

	again, _ := e.dict.Lookup("cat")
	if again != id {
		t.Errorf("id changed across remove/re-insert: %d -> %d", id, again)
	}
	e.Update("dog", 1)
	dogID, _ := e.dict.Lookup("dog")
	if dogID != id+1 {
		t.Errorf("ids not dense: expected %d for next word, got %d", id+1, dogID)
	}
}

func TestSnapshotSortedByWord(t *testing.T) {
	e := NewEngine(5)
	e.Update("pear", 3)
	e.Update("apple", 9)
	e.Update("plum", 1)
	e.Remove("plum")

	snap := e.Snapshot()
	want := []Suggestion{{"apple", 9}, {"pear", 3}}
	if len(snap) != 2 || snap[0] != want[0] || snap[1] != want[1] {
		t.Errorf("Snapshot() = %v, want %v", snap, want)
	}
}

// Without removals, every node's cache must agree with the exhaustive
// ranking truncated to the cache bound.
func TestCacheMatchesExhaustiveRanking(t *testing.T) {
	const k = 3
	e := NewEngine(k)
	words := []string{
		"go", "gopher", "golang", "goal", "goat", "gold", "golden",
		"gone", "good", "google", "goose", "gorge", "got", "govern",
	}
	for i, w := range words {
		e.Update(w, (i*7)%5+1)
	}
	// Mix in some increments and absolute updates.
	e.Insert("goal", 4)
	e.Update("goose", 9)
	e.Insert("go", 2)

	prefixes := []string{"g", "go", "gol", "goo", "gos", "gov", "gone"}
	for _, p := range prefixes {
		t.Run(fmt.Sprintf("prefix_%s", p), func(t *testing.T) {
			want := e.Scan(p, k, 0)
			got := e.Query(p, k)
			if len(got) != len(want) {
				t.Fatalf("Query(%q) = %v, exhaustive ranking %v", p, got, want)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("Query(%q)[%d] = %v, exhaustive %v", p, i, got[i], want[i])
				}
			}
		})
	}
}

func TestScanThresholdAndLimit(t *testing.T) {
	e := NewEngine(2)
	e.Update("day", 30)
	e.Update("dawn", 20)
	e.Update("dash", 10)
	e.Update("data", 5)

	got := e.Scan("da", 2, 10)
	want := []Suggestion{{"day", 30}, {"dawn", 20}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Scan(da, 2, 10) = %v, want %v", got, want)
	}
}

// Scan must reflect the latest frequency of a word that was mutated
// more than once, not the one it first entered with.
func TestScanTracksRepeatedMutations(t *testing.T) {
	e := NewEngine(4)
	e.Update("goose", 1)
	e.Update("goose", 9)
	e.Insert("gold", 3)
	e.Insert("gold", 4)

	got := e.Scan("go", 0, 0)
	want := []Suggestion{{"goose", 9}, {"gold", 7}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Scan(go) = %v, want %v", got, want)
	}

	// Query and Scan agree on the updated word.
	if q := e.Query("goo", 1); len(q) != 1 || q[0] != (Suggestion{"goose", 9}) {
		t.Errorf("Query(goo, 1) = %v, want [{goose 9}]", q)
	}
}

func TestStats(t *testing.T) {
	e := NewEngine(7)
	e.Update("cat", 5)
	e.Update("car", 8)
	e.Remove("cat")

	stats := e.Stats()
	if stats["totalWords"] != 2 {
		t.Errorf("totalWords = %d, want 2", stats["totalWords"])
	}
	if stats["liveWords"] != 1 {
		t.Errorf("liveWords = %d, want 1", stats["liveWords"])
	}
	if stats["maxFrequency"] != 8 {
		t.Errorf("maxFrequency = %d, want 8", stats["maxFrequency"])
	}
	if stats["kPerNode"] != 7 {
		t.Errorf("kPerNode = %d, want 7", stats["kPerNode"])
	}
	// root + c,a,t,r = 5
	if stats["trieNodes"] != 5 {
		t.Errorf("trieNodes = %d, want 5", stats["trieNodes"])
	}
}
