// Package bench runs randomized prefix-query benchmarks against a live
// engine. Queries only take the engine's read lock, so workers can run
// them concurrently.
package bench

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wordrank/wordrank/pkg/suggest"
)

// Options controls a benchmark run.
type Options struct {
	Queries   int
	PrefixLen int
	Workers   int
	Limit     int
	Seed      int64
}

// Result summarizes a completed run.
type Result struct {
	Queries  int
	Workers  int
	Elapsed  time.Duration
	PerQuery time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("ran %d queries across %d workers in %v (avg %v/query)",
		r.Queries, r.Workers, r.Elapsed, r.PerQuery)
}

// Run samples random prefixes from the engine's live words and fires
// opts.Queries queries split across opts.Workers goroutines, after a
// short warm-up pass.
func Run(engine suggest.Suggester, opts Options) (Result, error) {
	if opts.Queries < 1 {
		opts.Queries = 10000
	}
	if opts.PrefixLen < 1 {
		opts.PrefixLen = 3
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.Seed == 0 {
		opts.Seed = 123456789
	}

	words := engine.Snapshot()
	if len(words) == 0 {
		return Result{}, fmt.Errorf("no data to benchmark")
	}

	sample := make([]string, len(words))
	for i, w := range words {
		sample[i] = w.Word
	}

	prefixes := makePrefixes(sample, opts)

	// Warm-up, sequential.
	warm := opts.Queries
	if warm > 100 {
		warm = 100
	}
	for i := 0; i < warm; i++ {
		engine.Query(prefixes[i%len(prefixes)], opts.Limit)
	}

	perWorker := opts.Queries / opts.Workers
	extra := opts.Queries % opts.Workers

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < opts.Workers; w++ {
		n := perWorker
		if w < extra {
			n++
		}
		offset := w
		g.Go(func() error {
			for i := 0; i < n; i++ {
				p := prefixes[(offset+i*opts.Workers)%len(prefixes)]
				engine.Query(p, opts.Limit)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	return Result{
		Queries:  opts.Queries,
		Workers:  opts.Workers,
		Elapsed:  elapsed,
		PerQuery: elapsed / time.Duration(opts.Queries),
	}, nil
}

// makePrefixes draws random words and truncates each to the requested
// prefix length. The seed is fixed per run so results are comparable.
func makePrefixes(sample []string, opts Options) []string {
	rng := rand.New(rand.NewSource(opts.Seed))
	count := opts.Queries
	if count > 4096 {
		count = 4096
	}
	prefixes := make([]string, count)
	for i := range prefixes {
		w := sample[rng.Intn(len(sample))]
		n := opts.PrefixLen
		if n > len(w) {
			n = len(w)
		}
		prefixes[i] = w[:n]
	}
	return prefixes
}
