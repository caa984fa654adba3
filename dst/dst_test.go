// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dst_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/usdst/dst"
)

func isDST(t *testing.T, year int, month datetime.Month, day int) bool {
	t.Helper()
	v, err := dst.IsDaylightTime(datetime.NewCalendarDate(year, month, day))
	if err != nil {
		t.Fatalf("%v/%v/%v: unexpected error: %v", year, month, day, err)
	}
	return v
}

func TestIsDaylightTime(t *testing.T) {
	for i, tc := range []struct {
		year  int
		month datetime.Month
		day   int
		dst   bool
	}{
		{2016, 3, 12, false},
		{2016, 3, 13, true},
		{2016, 11, 6, true},
		{2016, 11, 7, false},
		{2024, 3, 9, false},
		{2024, 3, 10, true},
		{2024, 11, 3, true},
		{2024, 11, 4, false},
		{2016, 1, 1, false},
		{2016, 2, 29, false},
		{2016, 4, 1, true},
		{2016, 10, 31, true},
		{2016, 12, 31, false},
		{2006, 7, 1, false},
		{2006, 3, 31, false},
	} {
		if got, want := isDST(t, tc.year, tc.month, tc.day), tc.dst; got != want {
			t.Errorf("%v: %v/%v/%v: got %v, want %v", i, tc.year, tc.month, tc.day, got, want)
		}
	}
}

func TestDaylightTimeProperties(t *testing.T) {
	for year := dst.FirstRuleYear; year <= 2200; year++ {
		if got, want := isDST(t, year, 1, 1), false; got != want {
			t.Errorf("%v/1/1: got %v, want %v", year, got, want)
		}
		if got, want := isDST(t, year, 7, 1), true; got != want {
			t.Errorf("%v/7/1: got %v, want %v", year, got, want)
		}
		start, err := dst.NthWeekday(year, 3, 2, time.Sunday)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := isDST(t, year, 3, start-1), false; got != want {
			t.Errorf("%v/3/%v: got %v, want %v", year, start-1, got, want)
		}
		for day := start; day <= 31; day++ {
			if got, want := isDST(t, year, 3, day), true; got != want {
				t.Errorf("%v/3/%v: got %v, want %v", year, day, got, want)
			}
		}
		end, err := dst.NthWeekday(year, 11, 1, time.Sunday)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := isDST(t, year, 11, end), true; got != want {
			t.Errorf("%v/11/%v: got %v, want %v", year, end, got, want)
		}
		if got, want := isDST(t, year, 11, end+1), false; got != want {
			t.Errorf("%v/11/%v: got %v, want %v", year, end+1, got, want)
		}
	}
}

func TestBeforeFirstRuleYear(t *testing.T) {
	for year := 1970; year < dst.FirstRuleYear; year++ {
		for month := datetime.Month(1); month <= 12; month++ {
			for day := 1; day <= dst.DaysInMonth(year, month); day++ {
				if isDST(t, year, month, day) {
					t.Fatalf("%v/%v/%v: got true, want false", year, month, day)
				}
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	start := datetime.NewCalendarDate(2020, 1, 1)
	end := datetime.NewCalendarDate(2020, 12, 31)
	for cd := range datetime.NewCalendarDateRange(start, end).Dates() {
		first, err := dst.IsDaylightTime(cd)
		if err != nil {
			t.Fatal(err)
		}
		second, err := dst.IsDaylightTime(cd)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := second, first; got != want {
			t.Errorf("%v: got %v, want %v", cd, got, want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 12)
	for month := datetime.Month(1); month <= 12; month++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for year := 2007; year < 2107; year++ {
				for day := 1; day <= dst.DaysInMonth(year, month); day++ {
					if _, err := dst.IsDaylightTime(datetime.NewCalendarDate(year, month, day)); err != nil {
						errs <- err
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInvalidDates(t *testing.T) {
	for i, tc := range []struct {
		year  int
		month datetime.Month
		day   int
	}{
		{2023, 2, 29},
		{2100, 2, 29},
		{2016, 4, 31},
		{2016, 0, 1},
		{2016, 13, 1},
		{2016, 6, 0},
		{2016, 6, -1},
	} {
		if err := dst.ValidateDate(tc.year, tc.month, tc.day); !errors.Is(err, dst.ErrInvalidArgument) {
			t.Errorf("%v: got %v, want %v", i, err, dst.ErrInvalidArgument)
		}
	}
	for _, cd := range []datetime.CalendarDate{
		datetime.NewCalendarDate(2023, 2, 29),
		datetime.NewCalendarDate(2016, 4, 31),
	} {
		if _, err := dst.IsDaylightTime(cd); !errors.Is(err, dst.ErrInvalidArgument) {
			t.Errorf("%v: got %v, want %v", cd, err, dst.ErrInvalidArgument)
		}
		if _, err := dst.IsTransitionDay(cd); !errors.Is(err, dst.ErrInvalidArgument) {
			t.Errorf("%v: got %v, want %v", cd, err, dst.ErrInvalidArgument)
		}
	}
	if err := dst.ValidateDate(2024, 2, 29); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTransitions(t *testing.T) {
	nd := datetime.NewCalendarDate
	for i, tc := range []struct {
		year       int
		start, end datetime.CalendarDate
	}{
		{2007, nd(2007, 3, 11), nd(2007, 11, 4)},
		{2016, nd(2016, 3, 13), nd(2016, 11, 6)},
		{2024, nd(2024, 3, 10), nd(2024, 11, 3)},
		{2025, nd(2025, 3, 9), nd(2025, 11, 2)},
	} {
		start, end, err := dst.Transitions(tc.year)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", i, err)
			continue
		}
		if got, want := start, tc.start; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := end, tc.end; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		for _, cd := range []datetime.CalendarDate{start, end} {
			transition, err := dst.IsTransitionDay(cd)
			if err != nil || !transition {
				t.Errorf("%v: %v: got %v, %v, want true", i, cd, transition, err)
			}
		}
	}
	if _, _, err := dst.Transitions(2006); !errors.Is(err, dst.ErrInvalidArgument) {
		t.Errorf("got %v, want %v", err, dst.ErrInvalidArgument)
	}
	for _, cd := range []datetime.CalendarDate{nd(2024, 3, 9), nd(2024, 11, 4), nd(2006, 3, 12)} {
		if transition, err := dst.IsTransitionDay(cd); err != nil || transition {
			t.Errorf("%v: got %v, %v, want false", cd, transition, err)
		}
	}
}

func TestInDaylightTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone database not available: %v", err)
	}
	// 2016-03-13 04:00 UTC is 2016-03-12 23:00 EST.
	before := time.Date(2016, 3, 13, 4, 0, 0, 0, time.UTC).In(ny)
	after := time.Date(2016, 3, 13, 5, 0, 0, 0, time.UTC).In(ny)
	for i, tc := range []struct {
		when time.Time
		dst  bool
	}{
		{before, false},
		{after, true},
		{before.UTC(), true},
	} {
		v, err := dst.InDaylightTime(tc.when)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", i, err)
			continue
		}
		if got, want := v, tc.dst; got != want {
			t.Errorf("%v: %v: got %v, want %v", i, tc.when, got, want)
		}
	}
}

func TestExtremeYears(t *testing.T) {
	for i, tc := range []struct {
		year  int
		month datetime.Month
		day   int
		dst   bool
	}{
		{-1, 7, 1, false},
		{0, 7, 1, false},
		{-400 * 1000, 7, 1, false},
		{dst.MaxCalendarYear + 1 + 2007, 7, 1, true},
		{dst.MaxCalendarYear + 1 + 2007, 1, 1, false},
		{1 << 40, 7, 1, true},
		{1 << 40, 3, 9, false},
		{1 << 40, 3, 10, true},
	} {
		got, err := dst.IsDaylightDate(tc.year, tc.month, tc.day)
		if err != nil {
			t.Errorf("%v: %v: %v", i, tc.year, err)
			continue
		}
		if want := tc.dst; got != want {
			t.Errorf("%v: %v/%v/%v: got %v, want %v", i, tc.year, tc.month, tc.day, got, want)
		}
	}

	for i, tc := range []struct {
		t   time.Time
		dst bool
	}{
		{time.Date(-1, 7, 1, 12, 0, 0, 0, time.UTC), false},
		{time.Date(dst.MaxCalendarYear+1+2007, 7, 1, 12, 0, 0, 0, time.UTC), true},
		{time.Date(dst.MaxCalendarYear+1+1999, 7, 1, 12, 0, 0, 0, time.UTC), true},
	} {
		got, err := dst.InDaylightTime(tc.t)
		if err != nil {
			t.Fatal(err)
		}
		if want := tc.dst; got != want {
			t.Errorf("%v: %v: got %v, want %v", i, tc.t, got, want)
		}
	}

	// 1<<40 has the same calendar as 2176.
	if got, want := dst.DaysInMonth(1<<40, 2), 29; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	got, err := dst.NthWeekday(1<<40, 3, 2, time.Sunday)
	if err != nil {
		t.Fatal(err)
	}
	want, err := dst.NthWeekday(2176, 3, 2, time.Sunday)
	if err != nil {
		t.Fatal(err)
	}
	if got != want || got != 10 {
		t.Errorf("got %v, want %v", got, want)
	}
	if err := dst.ValidateDate(1<<40, 2, 29); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := dst.ValidateDate(-1<<40+1, 2, 29); err == nil {
		t.Errorf("expected an error for a non-leap year")
	}

	if _, _, err := dst.Transitions(dst.MaxCalendarYear + 1); !errors.Is(err, dst.ErrInvalidArgument) {
		t.Errorf("unexpected or missing error: %v", err)
	}
	if _, _, err := dst.Transitions(dst.MaxCalendarYear); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
