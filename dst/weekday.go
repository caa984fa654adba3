// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dst

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"golang.org/x/text/cases"
)

// cycleYear returns the year in [2000, 2400) that has the same calendar
// as year. The Gregorian calendar repeats every 400 years, which is also
// a whole number of weeks, so leap years and weekdays are preserved for
// any int year, including those that time.Date cannot represent.
func cycleYear(year int) int {
	return 2000 + ((year%400)+400)%400
}

// DaysInMonth returns the number of days in the specified month, allowing
// for leap years. The month must be in the range 1-12.
func DaysInMonth(year int, month datetime.Month) int {
	return time.Date(cycleYear(year), time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func firstWeekday(year int, month datetime.Month) time.Weekday {
	return time.Date(cycleYear(year), time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func validMonth(year int, month datetime.Month) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d for year %d is not in the range 1-12", ErrInvalidArgument, month, year)
	}
	return nil
}

func validWeekday(weekday time.Weekday) error {
	if weekday < time.Sunday || weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d is not in the range 0-6", ErrInvalidArgument, weekday)
	}
	return nil
}

// NthWeekday returns the day of the month of the n'th occurrence (1 being
// the first) of the specified weekday in the specified month, e.g. the 2nd
// Sunday of March 2016 is the 13th. ErrInvalidArgument is returned if the
// month or weekday are out of range or the month contains fewer than n
// occurrences of the weekday.
func NthWeekday(year int, month datetime.Month, n int, weekday time.Weekday) (int, error) {
	if err := validMonth(year, month); err != nil {
		return 0, err
	}
	if err := validWeekday(weekday); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: occurrence %d must be at least 1", ErrInvalidArgument, n)
	}
	wd := firstWeekday(year, month)
	days := DaysInMonth(year, month)
	seen := 0
	for day := 1; day <= days; day++ {
		if wd == weekday {
			seen++
			if seen == n {
				return day, nil
			}
		}
		wd = (wd + 1) % 7
	}
	return 0, fmt.Errorf("%w: %v %d has only %d %v(s), not %d", ErrInvalidArgument, time.Month(month), year, seen, weekday, n)
}

// nthWeekdayClosedForm computes the same result as NthWeekday using
// modular arithmetic on the weekday of the first day of the month. It
// does not validate its arguments and may return a day beyond the end
// of the month.
func nthWeekdayClosedForm(year int, month datetime.Month, n int, weekday time.Weekday) int {
	first := firstWeekday(year, month)
	return 1 + int((weekday-first+7)%7) + 7*(n-1)
}

var foldCase = cases.Fold()

// ParseWeekday parses a weekday name, either in full or as its three
// letter abbreviation, ignoring case.
func ParseWeekday(val string) (time.Weekday, error) {
	folded := foldCase.String(strings.TrimSpace(val))
	if len(folded) >= 3 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			name := foldCase.String(wd.String())
			if folded == name || folded == name[:3] {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unrecognised weekday: %q", ErrInvalidArgument, val)
}
