// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cosnicolaou/usdst/internal/logging"
	"github.com/jedib0t/go-pretty/v6/table"
)

type LogFlags struct {
	Property string `subcmd:"property,,display log info for the specified property only"`
}

type LogSummaryFlags struct {
	LogFlags
	Failures bool `subcmd:"failures,true,display the failures recorded in the log"`
	TSV      bool `subcmd:"tsv,false,print the summary in tab separated values"`
}

type Log struct {
	out io.Writer
}

type logEntryHandler func(logging.Entry) error

func (l *Log) processLog(rd io.Reader, fv *LogFlags, lh logEntryHandler) error {
	sc := logging.NewScanner(rd)
	for le := range sc.Entries(true) {
		if len(fv.Property) > 0 && le.Property != fv.Property {
			continue
		}
		if err := lh(le); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (l *Log) Summary(_ context.Context, flags any, args []string) error {
	fv := flags.(*LogSummaryFlags)
	sr := &summaryRecorder{
		ProgressRecorder: logging.NewProgressRecorder(),
		running:          map[int64]*logging.ProgressRecord{},
		failures:         table.NewWriter(),
	}
	sr.failures.SetTitle("Failures")
	sr.failures.AppendHeader(table.Row{"Property", "Date", "Instant", "Zone", "Offset", "Shrinks", "Labels"})
	if len(args) == 0 {
		err := l.processLog(os.Stdin, &fv.LogFlags, sr.process)
		sr.print(l.out, fv)
		return err
	}
	for _, arg := range args {
		if err := l.processFile(arg, &fv.LogFlags, sr.process); err != nil {
			sr.print(l.out, fv)
			return err
		}
	}
	sr.print(l.out, fv)
	return nil
}

func (l *Log) processFile(name string, fv *LogFlags, lh logEntryHandler) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := l.processLog(f, fv, lh); err != nil {
		return fmt.Errorf("failed to process log file: %q: %w", name, err)
	}
	return nil
}

type summaryRecorder struct {
	*logging.ProgressRecorder
	running  map[int64]*logging.ProgressRecord
	failures table.Writer
	nfailed  int
}

func (sr *summaryRecorder) print(out io.Writer, fv *LogSummaryFlags) {
	render(out, tableManager{}.Progress(sr.ProgressRecorder), fv.TSV)
	if fv.Failures && sr.nfailed > 0 {
		render(out, sr.failures, fv.TSV)
	}
}

func (sr *summaryRecorder) process(le logging.Entry) error {
	switch le.Msg {
	case logging.LogStart:
		sr.running[le.ID] = sr.NewRunning(le.ProgressRecord())
	case logging.LogFailure:
		sr.nfailed++
		sr.failures.AppendRow(table.Row{le.Name(), le.Date, le.Instant, le.Zone, le.Offset, le.Shrinks, le.Labels})
	case logging.LogDone:
		rec, ok := sr.running[le.ID]
		if !ok {
			return nil
		}
		delete(sr.running, le.ID)
		sr.Done(rec, le.Time, le.Counts, le.Err)
	}
	return nil
}
