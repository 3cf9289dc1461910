package analyzer

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// BatchResult pairs one input URL with its report, or with the input error
// that prevented analysis.
type BatchResult struct {
	URL    string
	Report *Report
	Err    error
}

// ProgressFunc is invoked after each URL in a batch settles.
type ProgressFunc func(BatchResult)

// Runner analyzes multiple URLs with bounded concurrency and a global rate
// limit, so batch scans do not hammer the reputation providers.
type Runner struct {
	Concurrency int // Maximum number of URLs analyzed at once
	RateLimit   int // Analyses started per second (global)
}

// Run analyzes every URL and returns results in input order. A malformed URL
// yields a BatchResult with Err set; it never aborts the rest of the batch.
func (r *Runner) Run(ctx context.Context, analyzer *Analyzer, urls []string, progress ProgressFunc) []BatchResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rps := r.RateLimit
	if rps <= 0 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make([]BatchResult, len(urls))

	for i, target := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			report, err := analyzer.Analyze(ctx, u)
			result := BatchResult{URL: u, Report: report, Err: err}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			if progress != nil {
				progress(result)
			}
		}(i, target)
	}

	wg.Wait()
	return results
}
