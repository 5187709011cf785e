package fileops

import (
	"errors"

	"github.com/google/uuid"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// Status is the outcome for one source of a batch.
type Status int

const (
	Done Status = iota
	Failed
	// Skipped sources were never attempted.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

type Result struct {
	Source vfs.Location
	Target string
	Status Status
	Err    error
}

// Report lists one Result per source, in input order.
type Report struct {
	ID      uuid.UUID
	Op      string
	Results []Result
}

func newReport(id uuid.UUID, op string, sources []vfs.Location) *Report {
	r := &Report{ID: id, Op: op, Results: make([]Result, len(sources))}
	for i, src := range sources {
		r.Results[i] = Result{Source: src, Status: Skipped}
	}
	return r
}

func (r *Report) fail(i int, err error) {
	r.Results[i].Status = Failed
	r.Results[i].Err = err
}

// failAll marks every source Failed with err. Used when a batch is rejected
// before anything is touched.
func (r *Report) failAll(err error) *Report {
	for i := range r.Results {
		r.fail(i, err)
	}
	return r
}

// skipRest records why the sources after i were not attempted.
func (r *Report) skipRest(i int, err error) {
	for j := i + 1; j < len(r.Results); j++ {
		r.Results[j].Status = Skipped
		r.Results[j].Err = err
	}
}

func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == Failed {
			out = append(out, res)
		}
	}
	return out
}

// Err joins the errors of every failed source, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failures() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}
