package problem

import (
	"context"
	"time"

	"github.com/npillmayer/areamethod/evaluator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Status is the outcome of checking a problem.
type Status int8

// Outcomes of a check.
const (
	Unchecked Status = iota // no expectation given
	Passed
	Failed
	Error
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "FAILED"
	case Error:
		return "ERROR"
	}
	return "-"
}

// Report is the outcome of running a single problem.
type Report struct {
	Problem *Problem
	Result  evaluator.Result
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Check runs a problem and compares the result with its expectation.
func Check(p *Problem, opts ...evaluator.Option) Report {
	start := time.Now()
	r := Report{Problem: p}
	r.Result, r.Err = p.Run(opts...)
	r.Elapsed = time.Since(start)
	if r.Err != nil {
		tracer().Errorf("%s: %v", p.Name, r.Err)
		r.Status = Error
		return r
	}
	if p.Expect == nil {
		return r
	}
	ok, err := p.Matches(r.Result)
	switch {
	case err != nil:
		r.Status, r.Err = Error, err
	case ok:
		r.Status = Passed
	default:
		r.Status = Failed
	}
	tracer().Infof("%s: %v in %v", p.Name, r.Status, r.Elapsed)
	return r
}

// RunAll checks problems concurrently, running at most workers problems at
// a time. Reports are in the order of the problems. The options must not
// share a memo table, as memo tables are not safe for concurrent use.
func RunAll(ctx context.Context, problems []*Problem, workers int, opts ...evaluator.Option) ([]Report, error) {
	if workers < 1 {
		workers = 1
	}
	reports := make([]Report, len(problems))
	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range problems {
		i, p := i, p
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			reports[i] = Check(p, opts...)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, ctx.Err()
}

// AllPassed is true if no report failed or errored.
func AllPassed(reports []Report) bool {
	for _, r := range reports {
		if r.Status == Failed || r.Status == Error {
			return false
		}
	}
	return true
}
