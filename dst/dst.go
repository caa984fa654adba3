// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dst approximates whether a calendar date falls within United
// States Daylight Saving Time using the rules in effect since 2007, that
// is, from the second Sunday of March through to the first Sunday of
// November.
//
// The calculation is performed on calendar dates only and hence the
// entire day of a transition is treated as being within Daylight Saving
// Time even though the transition itself occurs at 2AM local time. Callers
// that compare against a time zone database must expect disagreements for
// instants on either transition day.
package dst

import (
	"errors"
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// FirstRuleYear is the first year in which the current rules apply.
const FirstRuleYear = 2007

// MaxCalendarYear is the largest year that a datetime.CalendarDate can
// represent.
const MaxCalendarYear = 0xffff

// ErrInvalidArgument is returned, wrapped, for all structurally invalid
// calendar inputs.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateDate returns ErrInvalidArgument if year/month/day do not
// describe a valid calendar date.
func ValidateDate(year int, month datetime.Month, day int) error {
	if err := validMonth(year, month); err != nil {
		return err
	}
	if dim := DaysInMonth(year, month); day < 1 || day > dim {
		return fmt.Errorf("%w: day %d is not in the range 1-%d for %v %d", ErrInvalidArgument, day, dim, time.Month(month), year)
	}
	return nil
}

// StartOfDaylightTime returns the day of March on which Daylight Saving
// Time starts, ie. the second Sunday.
func StartOfDaylightTime(year int) (int, error) {
	return NthWeekday(year, 3, 2, time.Sunday)
}

// EndOfDaylightTime returns the day of November on which Daylight Saving
// Time ends, ie. the first Sunday.
func EndOfDaylightTime(year int) (int, error) {
	return NthWeekday(year, 11, 1, time.Sunday)
}

// IsDaylightTime returns true if the supplied date falls within Daylight
// Saving Time. Dates prior to 2007 always return false. ErrInvalidArgument
// is returned if the date is not a valid calendar date.
func IsDaylightTime(date datetime.CalendarDate) (bool, error) {
	return IsDaylightDate(date.Year(), date.Month(), date.Day())
}

// IsDaylightDate is like IsDaylightTime but accepts any int year.
func IsDaylightDate(year int, month datetime.Month, day int) (bool, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return false, err
	}
	if year < FirstRuleYear {
		return false, nil
	}
	switch {
	case month == 3:
		start, err := StartOfDaylightTime(year)
		if err != nil {
			return false, err
		}
		return day >= start, nil
	case month == 11:
		end, err := EndOfDaylightTime(year)
		if err != nil {
			return false, err
		}
		return day <= end, nil
	case month < 3 || month > 11:
		return false, nil
	default:
		return true, nil
	}
}

// InDaylightTime is like IsDaylightTime but uses the calendar date of t
// in t's own location.
func InDaylightTime(t time.Time) (bool, error) {
	year, month, day := t.Date()
	return IsDaylightDate(year, datetime.Month(month), day)
}

// Transitions returns the dates on which Daylight Saving Time starts and
// ends for the specified year, which must be in the range FirstRuleYear
// to MaxCalendarYear.
func Transitions(year int) (start, end datetime.CalendarDate, err error) {
	if year < FirstRuleYear {
		err = fmt.Errorf("%w: year %d predates the %d rules", ErrInvalidArgument, year, FirstRuleYear)
		return
	}
	if year > MaxCalendarYear {
		err = fmt.Errorf("%w: year %d is after %d", ErrInvalidArgument, year, MaxCalendarYear)
		return
	}
	sd, err := StartOfDaylightTime(year)
	if err != nil {
		return
	}
	ed, err := EndOfDaylightTime(year)
	if err != nil {
		return
	}
	start = datetime.NewCalendarDate(year, 3, sd)
	end = datetime.NewCalendarDate(year, 11, ed)
	return
}

// IsTransitionDay returns true if date is the day on which Daylight
// Saving Time starts or ends. These are the days on which IsDaylightTime
// may disagree with a time zone database.
func IsTransitionDay(date datetime.CalendarDate) (bool, error) {
	if err := ValidateDate(date.Year(), date.Month(), date.Day()); err != nil {
		return false, err
	}
	if date.Year() < FirstRuleYear {
		return false, nil
	}
	start, end, err := Transitions(date.Year())
	if err != nil {
		return false, err
	}
	return date == start || date == end, nil
}
