// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/usdst/dst"
	"github.com/cosnicolaou/usdst/internal/logging"
	"github.com/cosnicolaou/usdst/oracle"
	"github.com/jedib0t/go-pretty/v6/table"
)

type tableManager struct{}

func render(out io.Writer, tw table.Writer, tsv bool) {
	if tsv {
		_, _ = out.Write([]byte(tw.RenderTSV()))
	} else {
		_, _ = out.Write([]byte(tw.Render()))
	}
	fmt.Fprintln(out)
}

func noon(cd datetime.CalendarDate, loc *time.Location) time.Time {
	return time.Date(cd.Year(), time.Month(cd.Month()), cd.Day(), 12, 0, 0, 0, loc)
}

// Check returns a table of the DST status of each date, if loc is not
// nil the time zone database's status at noon on each date is included.
func (tm tableManager) Check(dates []datetime.CalendarDate, loc *time.Location) (table.Writer, error) {
	tw := table.NewWriter()
	hdr := table.Row{"Date", "Weekday", "DST", "Transition Day"}
	if loc != nil {
		hdr = append(hdr, loc.String()+" (noon)")
	}
	tw.AppendHeader(hdr)
	for _, cd := range dates {
		isDST, err := dst.IsDaylightTime(cd)
		if err != nil {
			return nil, err
		}
		transition, err := dst.IsTransitionDay(cd)
		if err != nil {
			return nil, err
		}
		row := table.Row{cd, noon(cd, time.UTC).Weekday(), isDST, transition}
		if loc != nil {
			row = append(row, noon(cd, loc).IsDST())
		}
		tw.AppendRow(row)
	}
	return tw, nil
}

func (tm tableManager) Transitions(from, to int) (table.Writer, error) {
	tw := table.NewWriter()
	tw.SetTitle("US Daylight Saving Time")
	tw.AppendHeader(table.Row{"Year", "Start", "End", "Days"})
	for year := from; year <= to; year++ {
		start, end, err := dst.Transitions(year)
		if err != nil {
			return nil, err
		}
		days := noon(end, time.UTC).Sub(noon(start, time.UTC)) / (24 * time.Hour)
		tw.AppendRow(table.Row{year, start, end, int(days)})
	}
	return tw, nil
}

func (tm tableManager) Properties(props []oracle.Property) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Property", "Description", "Default"})
	for _, p := range props {
		tw.AppendRow(table.Row{p.Name, p.Description, !p.ExpectedToFail})
	}
	return tw
}

func status(ok bool) string {
	if ok {
		return "passed"
	}
	return "failed"
}

func (tm tableManager) Summary(report oracle.Report) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Seed %v", report.Seed))
	tw.AppendHeader(table.Row{"Property", "Passed", "Failed", "Discarded", "Trivial", "Elapsed", "Status"})
	for _, pr := range report.Properties {
		tw.AppendRow(table.Row{pr.Name, pr.Passed, pr.Failed, pr.Discarded, pr.Trivial, pr.Elapsed.Round(time.Millisecond), status(pr.OK())})
	}
	return tw
}

func (tm tableManager) Failures(report oracle.Report) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Failures")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	tw.AppendHeader(table.Row{"Property", "Original", "Shrunk", "Shrinks", "Labels"})
	for _, pr := range report.Properties {
		for _, f := range pr.Failures {
			labels := make([]string, 0, len(f.Result.Labels))
			for _, l := range f.Result.FailedLabels() {
				labels = append(labels, l.String())
			}
			tw.AppendRow(table.Row{pr.Name, f.Original, f.Shrunk, f.Shrinks, strings.Join(labels, "\n")})
		}
	}
	return tw
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

// Observations returns a table of the classes and collected values
// recorded for each property.
func (tm tableManager) Observations(report oracle.Report) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Observations")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
	})
	tw.AppendHeader(table.Row{"Property", "Kind", "Value", "Count", "%"})
	for _, pr := range report.Properties {
		tested := pr.Passed + pr.Failed
		if pr.Trivial > 0 {
			tw.AppendRow(table.Row{pr.Name, "trivial", "", pr.Trivial, percent(pr.Trivial, tested)})
		}
		for _, b := range pr.Classes {
			tw.AppendRow(table.Row{pr.Name, "class", b.Value, b.Count, percent(b.Count, tested)})
		}
		for _, b := range pr.Collected {
			tw.AppendRow(table.Row{pr.Name, "collected", b.Value, b.Count, percent(b.Count, tested)})
		}
	}
	return tw
}

func distributionTable[T comparable](title string, buckets []oracle.Bucket[T], total int) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Value", "Count", "%"})
	for _, b := range buckets {
		tw.AppendRow(table.Row{b.Value, b.Count, percent(b.Count, total)})
	}
	return tw
}

func (tm tableManager) Progress(recorder *logging.ProgressRecorder) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Property", "Samples", "Seed", "Passed", "Failed", "Discarded", "Trivial", "Elapsed", "Status", "Error"})
	for pr := range recorder.Completed() {
		tw.AppendRow(table.Row{pr.ID, pr.Property, pr.Samples, pr.Seed,
			pr.Counts.Passed, pr.Counts.Failed, pr.Counts.Discarded, pr.Counts.Trivial,
			pr.Elapsed(), pr.Status(), pr.ErrorMessage()})
	}
	for pr := range recorder.Running() {
		tw.AppendRow(table.Row{pr.ID, pr.Property, pr.Samples, pr.Seed,
			"", "", "", "", "", pr.Status(), ""})
	}
	return tw
}
