// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"iter"
	"sync"
	"time"

	"cloudeng.io/algo/container/list"
)

// ProgressRecorder records the properties that are currently being
// evaluated and those that have completed. It is safe for concurrent use.
type ProgressRecorder struct {
	mu      sync.Mutex
	done    []*ProgressRecord
	running *list.Double[*ProgressRecord]
}

func NewProgressRecorder() *ProgressRecorder {
	return &ProgressRecorder{
		done:    make([]*ProgressRecord, 0, 16),
		running: list.NewDouble[*ProgressRecord](),
	}
}

type ProgressRecord struct {
	ID       int64
	Property string
	Samples  int
	Seed     uint64
	Started  time.Time

	// The following fields are filled in by Done.
	Completed time.Time
	Counts    Counts
	Error     error

	listID list.DoubleID[*ProgressRecord]
}

func (pr *ProgressRecord) Status() string {
	switch {
	case pr.Completed.IsZero():
		return "running"
	case pr.Error != nil:
		return "interrupted"
	case pr.Counts.Failed > 0:
		return "failed"
	}
	return "passed"
}

func (pr *ProgressRecord) Elapsed() time.Duration {
	if pr.Completed.IsZero() {
		return 0
	}
	return pr.Completed.Sub(pr.Started)
}

func (pr *ProgressRecord) ErrorMessage() string {
	if pr.Error == nil {
		return ""
	}
	return pr.Error.Error()
}

// NewRunning adds pr to the set of running properties. The Started
// field is set to the current time if it is not already set.
func (r *ProgressRecorder) NewRunning(pr *ProgressRecord) *ProgressRecord {
	if pr == nil {
		return pr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if pr.Started.IsZero() {
		pr.Started = time.Now()
	}
	pr.listID = r.running.Append(pr)
	return pr
}

// Done moves pr from the running to the completed set.
func (r *ProgressRecorder) Done(pr *ProgressRecord, completed time.Time, counts Counts, err error) {
	if pr == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pr.Completed = completed
	pr.Counts = counts
	pr.Error = err
	r.done = append(r.done, pr)
	r.running.RemoveItem(pr.listID)
}

func (r *ProgressRecorder) Completed() iter.Seq[*ProgressRecord] {
	return func(yield func(*ProgressRecord) bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, pr := range r.done {
			if !yield(pr) {
				return
			}
		}
	}
}

func (r *ProgressRecorder) Running() iter.Seq[*ProgressRecord] {
	return func(yield func(*ProgressRecord) bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for pr := range r.running.Forward() {
			if !yield(pr) {
				return
			}
		}
	}
}
