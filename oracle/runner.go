// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"context"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/sync/errgroup"
	"github.com/cosnicolaou/usdst/internal/logging"
)

type Option func(o *options)

type options struct {
	recorder    *logging.ProgressRecorder
	concurrency int
	shrinkLimit int
}

// WithRecorder sets the recorder used to track the progress of each
// property.
func WithRecorder(r *logging.ProgressRecorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithConcurrency limits the number of properties evaluated concurrently,
// 0 means no limit.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithShrinkLimit limits the number of shrinking steps taken for each
// failing sample.
func WithShrinkLimit(n int) Option {
	return func(o *options) {
		o.shrinkLimit = n
	}
}

// Failure represents a failing sample, both as generated and after
// shrinking.
type Failure struct {
	Original Sample
	Shrunk   Sample
	Shrinks  int
	Result   Result
}

// PropertyReport summarizes the evaluation of a single property.
type PropertyReport struct {
	Name        string
	Description string
	Seed        uint64
	logging.Counts
	Classes   []Bucket[string]
	Collected []Bucket[string]
	Failures  []Failure
	Elapsed   time.Duration
}

func (pr PropertyReport) OK() bool {
	return pr.Failed == 0
}

// Report summarizes an oracle run, Seed is the seed actually used and
// can be supplied via Config to repeat the run.
type Report struct {
	Seed       uint64
	Properties []PropertyReport
}

func (r Report) OK() bool {
	for _, pr := range r.Properties {
		if !pr.OK() {
			return false
		}
	}
	return true
}

func (r Report) Lookup(name string) (PropertyReport, bool) {
	for _, pr := range r.Properties {
		if pr.Name == name {
			return pr, true
		}
	}
	return PropertyReport{}, false
}

// Run evaluates all of the configured properties concurrently. Each
// property uses its own generator, seeded with the run's seed plus the
// property's index, so that runs are repeatable. The returned error is
// non-nil only if the configuration is invalid or the context is
// canceled; failing properties are recorded in the Report.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	o := options{shrinkLimit: 100}
	for _, opt := range opts {
		opt(&o)
	}
	if o.recorder == nil {
		o.recorder = logging.NewProgressRecorder()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	ctx = ctxlog.WithAttributes(ctx, "mod", "oracle")
	report := Report{
		Seed:       seed,
		Properties: make([]PropertyReport, len(cfg.Properties)),
	}
	g := &errgroup.T{}
	if o.concurrency > 0 {
		g = errgroup.WithConcurrency(g, o.concurrency)
	}
	for i, p := range cfg.Properties {
		g.Go(func() error {
			pr, err := runProperty(ctx, cfg, p, seed+uint64(i), o)
			report.Properties[i] = pr
			return err
		})
	}
	return report, g.Wait()
}

func runProperty(ctx context.Context, cfg Config, p Property, seed uint64, o options) (PropertyReport, error) {
	logger := ctxlog.Logger(ctx)
	id := logging.WritePropertyStart(logger, p.Name, cfg.Samples, seed)
	rec := o.recorder.NewRunning(&logging.ProgressRecord{
		ID:       id,
		Property: p.Name,
		Samples:  cfg.Samples,
		Seed:     seed,
	})
	pr := PropertyReport{
		Name:        p.Name,
		Description: p.Description,
		Seed:        seed,
	}
	gen := NewGenerator(seed, cfg.Zones, cfg.FromYear, cfg.ToYear, cfg.MaxOffset)
	var classes, collected []string
	var err error
	start := time.Now()
	for range cfg.Samples {
		if err = ctx.Err(); err != nil {
			break
		}
		s := gen.Sample()
		r := p.Check(s)
		switch r.Status {
		case Discarded:
			pr.Discarded++
			continue
		case Passed:
			pr.Passed++
		case Failed:
			pr.Failed++
			if len(pr.Failures) < cfg.MaxFailures {
				f := shrink(p, s, r, o.shrinkLimit)
				pr.Failures = append(pr.Failures, f)
				logging.WriteFailure(logger, id, p.Name,
					f.Shrunk.Local(), f.Shrunk.Zone.Name, f.Shrunk.Offset.Duration(),
					labelStrings(f.Result.FailedLabels()), f.Shrinks)
			}
		}
		if r.IsTrivial {
			pr.Trivial++
		}
		classes = append(classes, r.Classes...)
		if len(r.Collected) > 0 {
			collected = append(collected, r.Collected)
		}
	}
	pr.Elapsed = time.Since(start)
	pr.Classes = Distribute(classes)
	pr.Collected = Distribute(collected)
	logging.WritePropertyDone(logger, id, p.Name, pr.Counts, pr.Elapsed, err)
	o.recorder.Done(rec, time.Now(), pr.Counts, err)
	return pr, err
}

// shrink repeatedly replaces the failing sample with the first of its
// candidates that also fails, until none do or the limit is reached.
func shrink(p Property, s Sample, r Result, limit int) Failure {
	f := Failure{Original: s, Shrunk: s, Result: r}
	for f.Shrinks < limit {
		improved := false
		for c := range candidates(f.Shrunk) {
			if cr := p.Check(c); cr.Status == Failed {
				f.Shrunk, f.Result = c, cr
				f.Shrinks++
				improved = true
				break
			}
		}
		if !improved {
			break
		}
	}
	return f
}

func labelStrings(labels []Label) []string {
	s := make([]string, len(labels))
	for i, l := range labels {
		s[i] = l.String()
	}
	return s
}
