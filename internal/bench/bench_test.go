package bench

import (
	"testing"

	"github.com/wordrank/wordrank/pkg/suggest"
)

func TestRunEmptyEngine(t *testing.T) {
	if _, err := Run(suggest.NewEngine(5), Options{Queries: 10}); err == nil {
		t.Fatal("expected error for engine with no data")
	}
}

func TestRun(t *testing.T) {
	e := suggest.NewEngine(5)
	for i, w := range []string{"apple", "apricot", "banana", "berry", "cherry"} {
		e.Update(w, i+1)
	}

	res, err := Run(e, Options{Queries: 200, PrefixLen: 2, Workers: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Queries != 200 {
		t.Errorf("Queries = %d, want 200", res.Queries)
	}
	if res.Workers != 4 {
		t.Errorf("Workers = %d, want 4", res.Workers)
	}
	if res.Elapsed <= 0 || res.PerQuery <= 0 {
		t.Errorf("timings not recorded: %+v", res)
	}
}

func TestRunDefaults(t *testing.T) {
	e := suggest.NewEngine(5)
	e.Update("word", 1)

	res, err := Run(e, Options{Queries: 50})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Workers != 1 {
		t.Errorf("Workers = %d, want default 1", res.Workers)
	}
}
