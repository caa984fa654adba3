// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"log/slog"
	"sync/atomic"
	"time"

	"cloudeng.io/datetime"
)

var runID int64

const (
	LogStart   = "property-start"
	LogFailure = "property-failure"
	LogDone    = "property-done"
)

// WritePropertyStart logs the start of the evaluation of a property and
// returns a unique identifier that must be passed to WriteFailure and
// WritePropertyDone.
func WritePropertyStart(l *slog.Logger, property string, samples int, seed uint64) int64 {
	id := atomic.AddInt64(&runID, 1)
	l.Info(LogStart,
		"id", id,
		"property", property,
		"samples", samples,
		"seed", seed)
	return id
}

// WriteFailure logs a failing, and possibly shrunk, sample. The instant
// must be in the location of the named zone.
func WriteFailure(l *slog.Logger, id int64, property string, instant time.Time, zone string, offset time.Duration, labels []string, shrinks int) {
	l.Warn(LogFailure,
		"id", id,
		"property", property,
		"date", datetime.CalendarDateFromTime(instant).String(),
		"instant", instant,
		"zone", zone,
		"offset", offset,
		"labels", labels,
		"shrinks", shrinks)
}

// WritePropertyDone logs the completion of a property, err is non-nil if
// evaluation was interrupted.
func WritePropertyDone(l *slog.Logger, id int64, property string, counts Counts, elapsed time.Duration, err error) {
	l.Info(LogDone,
		"id", id,
		"property", property,
		"passed", counts.Passed,
		"failed", counts.Failed,
		"discarded", counts.Discarded,
		"trivial", counts.Trivial,
		"elapsed", elapsed,
		"err", err)
}
