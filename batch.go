// SPDX-License-Identifier: EPL-2.0

package saundifix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/saundifix/analysis"
	"github.com/ik5/saundifix/effects"
)

// Job is one file to render.
type Job struct {
	Input  string
	Output string
	Params effects.Parameters
}

// JobResult describes how a Job ended. Err is nil on success.
type JobResult struct {
	Index int
	Job   Job

	Frames   int
	Duration time.Duration
	Elapsed  time.Duration
	// Report is set when Options.Report is true and the job succeeded.
	Report *analysis.Report

	Err error
}

// EventKind tells batch events apart.
type EventKind int

const (
	JobStarted EventKind = iota
	JobFinished
)

func (k EventKind) String() string {
	switch k {
	case JobStarted:
		return "started"
	case JobFinished:
		return "finished"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports batch progress. Result is set for JobFinished only.
type Event struct {
	Kind   EventKind
	Index  int
	Job    Job
	Result *JobResult
}

// ProcessBatch renders jobs concurrently, at most opts.Workers at a time.
// Results are returned in job order. A failing job does not stop the others;
// cancelling ctx makes every job not yet started fail with the context
// error. The returned error joins every job error.
func ProcessBatch(ctx context.Context, jobs []Job, opts Options) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(opts.workers())

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = runJob(ctx, i, job, opts)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Job.Input, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

func runJob(ctx context.Context, index int, job Job, opts Options) JobResult {
	res := JobResult{Index: index, Job: job}

	if err := ctx.Err(); err != nil {
		res.Err = err
		opts.emit(Event{Kind: JobFinished, Index: index, Job: job, Result: &res})
		return res
	}

	opts.emit(Event{Kind: JobStarted, Index: index, Job: job})

	start := time.Now()
	out, err := ProcessFile(ctx, job.Input, job.Output, job.Params, opts)
	res.Elapsed = time.Since(start)
	res.Err = err

	if err == nil {
		res.Frames = out.Frames()
		res.Duration = out.Duration()
		if opts.Report {
			report := analysis.Analyze(out)
			res.Report = &report
		}
	}

	opts.emit(Event{Kind: JobFinished, Index: index, Job: job, Result: &res})
	return res
}
