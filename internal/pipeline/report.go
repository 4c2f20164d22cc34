package pipeline

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/codr1/stylethemes/internal/builderr"
)

// Report tallies one batch job. Per-item failures are recorded, never
// returned, so a job always runs to completion.
type Report struct {
	Job       string
	Succeeded int
	Failed    int
	Skipped   int
	Errors    []error
}

// Fail records a failed item.
func (r *Report) Fail(err error) {
	r.Failed++
	r.Errors = append(r.Errors, err)
}

// Skip records an item skipped because a dependency was missing.
func (r *Report) Skip(err error) {
	r.Skipped++
	r.Errors = append(r.Errors, err)
}

// Record classifies err as a skip or a failure.
func (r *Report) Record(err error) {
	if errors.Is(err, builderr.ErrMissingDependency) {
		r.Skip(err)
		return
	}
	r.Fail(err)
}

func (r *Report) HasFailures() bool {
	return r.Failed > 0
}

// Merge folds other into r.
func (r *Report) Merge(other Report) {
	r.Succeeded += other.Succeeded
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("job", r.Job).
		Int("succeeded", r.Succeeded).
		Int("failed", r.Failed).
		Int("skipped", r.Skipped)
}
