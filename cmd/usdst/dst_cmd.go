// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/usdst/dst"
	"github.com/cosnicolaou/usdst/oracle"
)

type CheckFlags struct {
	TZ  string `subcmd:"tz,,compare against the time zone database for the named zone at noon on each date"`
	TSV bool   `subcmd:"tsv,false,print the results in tab separated values"`
}

type NthFlags struct{}

type TransitionsFlags struct {
	From int  `subcmd:"from,2007,first year to display"`
	To   int  `subcmd:"to,2030,last year to display"`
	TSV  bool `subcmd:"tsv,false,print the results in tab separated values"`
}

type DST struct {
	out io.Writer
}

func (d *DST) Check(_ context.Context, flags any, args []string) error {
	fv := flags.(*CheckFlags)
	var loc *time.Location
	if len(fv.TZ) > 0 {
		z, err := oracle.LoadZone(fv.TZ)
		if err != nil {
			return err
		}
		loc = z.Location
	}
	dates := make([]datetime.CalendarDate, 0, len(args))
	for _, arg := range args {
		var cd datetime.CalendarDate
		if err := cd.Parse(arg); err != nil {
			return fmt.Errorf("invalid date: %q: %w", arg, err)
		}
		dates = append(dates, cd)
	}
	if len(dates) == 0 {
		now := time.Now()
		if loc != nil {
			now = now.In(loc)
		}
		dates = append(dates, datetime.CalendarDateFromTime(now))
	}
	tw, err := tableManager{}.Check(dates, loc)
	if err != nil {
		return err
	}
	render(d.out, tw, fv.TSV)
	return nil
}

func parseInt(name, val string) (int, error) {
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %v: %q: %w", name, val, err)
	}
	return v, nil
}

func (d *DST) Nth(_ context.Context, _ any, args []string) error {
	year, err := parseInt("year", args[0])
	if err != nil {
		return err
	}
	month, err := parseInt("month", args[1])
	if err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is not in the range 1-12", dst.ErrInvalidArgument, month)
	}
	n, err := parseInt("n", args[2])
	if err != nil {
		return err
	}
	weekday, err := dst.ParseWeekday(args[3])
	if err != nil {
		return err
	}
	day, err := dst.NthWeekday(year, datetime.Month(month), n, weekday)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, datetime.NewCalendarDate(year, datetime.Month(month), day))
	return nil
}

func (d *DST) Transitions(_ context.Context, flags any, _ []string) error {
	fv := flags.(*TransitionsFlags)
	if fv.From > fv.To {
		return fmt.Errorf("from year %v is after to year %v", fv.From, fv.To)
	}
	tw, err := tableManager{}.Transitions(fv.From, fv.To)
	if err != nil {
		return err
	}
	render(d.out, tw, fv.TSV)
	return nil
}
