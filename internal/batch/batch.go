// Package batch runs metadata extraction over many files with bounded concurrency.
package batch

import (
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grayfold/jatstab/internal/article"
	"github.com/grayfold/jatstab/internal/jats"
)

// Result is the outcome of extracting one file. Exactly one of Article or
// Err is meaningful; a failed file never affects any other file's result.
type Result struct {
	Path    string
	Article article.Article
	Err     error
}

// Runner extracts article records from files in parallel. The zero value is
// usable: it runs with NumCPU workers and no logging.
type Runner struct {
	// Jobs is the maximum number of files processed concurrently.
	// Zero or negative means runtime.NumCPU().
	Jobs int
	// Log receives per-file warnings. Defaults to a no-op logger.
	Log zerolog.Logger
}

// Run extracts every file and returns one result per input, in input order.
// Each file is an independent unit of work; extraction shares no state across
// files, so failures are isolated and results are collected positionally.
func (r Runner) Run(paths []string) []Result {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			art, err := jats.ExtractFile(path)
			if err != nil {
				r.Log.Warn().Str("file", path).Err(err).Msg("extraction failed")
				results[i] = Result{Path: path, Err: err}
				return
			}
			r.Log.Debug().Str("file", path).Str("id", art.ID).Msg("extracted")
			results[i] = Result{Path: path, Article: art}
		}(i, path)
	}

	wg.Wait()
	return results
}

// Split separates results into successfully extracted articles and the
// errors of failed units, both in input order.
func Split(results []Result) ([]article.Article, []error) {
	var arts []article.Article
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		arts = append(arts, res.Article)
	}
	return arts, errs
}
