// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/usdst/dst"
	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const (
	WestOfGreenwich = "west of greenwich"
	WithinGreenwich = "within greenwich"
	EastOfGreenwich = "east of greenwich"
	TransitionDay   = "transition-day"
	Disagreement    = "disagreement"
)

func meridian(r Result, t time.Time) Result {
	_, offset := t.Zone()
	return r.Classify(offset < 0, WestOfGreenwich).
		Classify(offset == 0, WithinGreenwich).
		Classify(offset > 0, EastOfGreenwich)
}

// evaluate returns the evaluator's and the time zone database's view of
// whether the sample's local time is within daylight saving time.
func evaluate(s Sample) (local time.Time, ours, authority bool, err error) {
	local = s.Local()
	ours, err = dst.InDaylightTime(local)
	return local, ours, local.IsDST(), err
}

func flags(local time.Time, ours, authority bool) string {
	return fmt.Sprintf("%v: evaluator %v, authority %v", local.Format(time.RFC3339), ours, authority)
}

func usRuleApplies(local time.Time) bool {
	return local.Year() >= dst.FirstRuleYear && FollowsUSRule(local.Location(), local.Year())
}

// DSTOracleNaive compares the evaluator against the time zone database for
// every sample regardless of year or zone and is expected to fail.
func DSTOracleNaive() Property {
	return Property{
		Name:           "dst-oracle-naive",
		Description:    "the evaluator agrees with the time zone database for any instant in any zone",
		ExpectedToFail: true,
		Check: func(s Sample) Result {
			local, ours, authority, err := evaluate(s)
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			r := Labelled("same-flag", ours == authority, flags(local, ours, authority)).
				Trivial(!ObservesDST(local.Location(), local.Year())).
				Collect(local.Weekday())
			return meridian(r, local)
		},
	}
}

// DSTOracleConditional only considers samples from 2007 onwards, in zones
// following the US rules, that the time zone database reports as being
// in daylight saving time.
func DSTOracleConditional() Property {
	return Property{
		Name:        "dst-oracle-conditional",
		Description: "the evaluator reports daylight saving time whenever the time zone database does for US zones since 2007",
		Check: func(s Sample) Result {
			local, ours, authority, err := evaluate(s)
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			return Labelled("evaluator-dst", ours, flags(local, ours, authority)).
				When(authority && usRuleApplies(local))
		},
	}
}

// DSTOracleTransition allows for the evaluator ignoring the time of day
// on transition days and is expected to hold.
func DSTOracleTransition() Property {
	return Property{
		Name:        "dst-oracle-transition",
		Description: "the evaluator agrees with the time zone database for US zones since 2007 except on transition days",
		Check: func(s Sample) Result {
			local, ours, authority, err := evaluate(s)
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			transition, err := dst.IsTransitionDay(datetime.CalendarDateFromTime(local))
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			return Labelled("same-flag-or-transition-day", ours == authority || transition, flags(local, ours, authority)).
				Classify(transition, TransitionDay).
				Classify(ours != authority, Disagreement).
				When(usRuleApplies(local))
		},
	}
}

// DSTIdempotent checks that repeated evaluation yields the same result.
func DSTIdempotent() Property {
	return Property{
		Name:        "dst-idempotent",
		Description: "evaluating the same date twice yields the same result",
		Check: func(s Sample) Result {
			cd := datetime.CalendarDateFromTime(s.Local())
			first, err := dst.IsDaylightTime(cd)
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			second, err := dst.IsDaylightTime(cd)
			if err != nil {
				return Labelled("valid-date", false, err.Error())
			}
			return Labelled("same-result", first == second, cd.String())
		},
	}
}

// DaysInverse checks that adding and then subtracting an offset are
// inverses.
func DaysInverse() Property {
	return Property{
		Name:        "days-inverse",
		Description: "adding and then subtracting a number of days yields the original instant",
		Check: func(s Sample) Result {
			d := s.Offset.Duration()
			return Check(s.Instant.Add(d).Add(-d).Equal(s.Instant))
		},
	}
}

// ZoneShiftInterchange checks that adding an offset and changing the
// zone can be reordered.
func ZoneShiftInterchange() Property {
	return Property{
		Name:        "zone-shift-interchange",
		Description: "adding days and then changing zone is the same instant as changing zone and then adding days",
		Check: func(s Sample) Result {
			d := s.Offset.Duration()
			addThenShift := s.Instant.Add(d).In(s.Zone.Location)
			shiftThenAdd := s.Instant.In(s.Zone.Location).Add(d)
			r := Labelled("same-instant", addThenShift.Equal(shiftThenAdd),
				fmt.Sprintf("%v != %v", addThenShift, shiftThenAdd)).
				Trivial(!ObservesDST(s.Zone.Location, addThenShift.Year())).
				Collect(s.Local().Weekday())
			return meridian(r, addThenShift)
		},
	}
}

// ZoneDetour checks that converting via an intermediate zone has no
// effect on either the instant or its offset.
func ZoneDetour() Property {
	return Property{
		Name:        "zone-detour",
		Description: "converting via a second zone yields the same instant and offset as converting directly",
		Check: func(s Sample) Result {
			viaDetour := s.Instant.In(s.Detour.Location).In(s.Zone.Location)
			directly := s.Instant.In(s.Zone.Location)
			_, viaOffset := viaDetour.Zone()
			_, directOffset := directly.Zone()
			return Labelled("same-instant", viaDetour.Equal(directly),
				fmt.Sprintf("%v = %v", viaDetour, directly)).
				And("same-offset", viaOffset == directOffset,
					fmt.Sprintf("%v = %v", viaOffset, directOffset)).
				Classify(s.Detour == s.Zone, "no detour")
		},
	}
}

// months returns a number of months, 1-12, derived from the sample's
// offset.
func months(s Sample) int {
	return 1 + int(s.Offset.Duration()/day)%12
}

// ZoneOffsetInvariance checks that adding months to a local time leaves
// its UTC offset unchanged, which does not hold for zones that observe
// daylight saving time.
func ZoneOffsetInvariance() Property {
	return Property{
		Name:           "zone-offset-invariance",
		Description:    "adding months to a local time does not change its UTC offset",
		ExpectedToFail: true,
		Check: func(s Sample) Result {
			local := s.Local()
			m := months(s)
			shifted := local.AddDate(0, m, 0)
			_, before := local.Zone()
			_, after := shifted.Zone()
			r := Labelled("same-offset", before == after,
				fmt.Sprintf("%v + %d months = %v", local.Format(time.RFC3339), m, shifted.Format(time.RFC3339))).
				Trivial(!ObservesDST(local.Location(), local.Year()) && !ObservesDST(local.Location(), shifted.Year())).
				Collect(m)
			return meridian(r, local)
		},
	}
}

// UnitOfTimeAddition checks that adding a number of days as calendar
// days or as hours yields the same instant in UTC. In a local zone the
// two differ when a daylight saving transition is crossed, such samples
// are classified.
func UnitOfTimeAddition() Property {
	return Property{
		Name:        "unit-of-time-addition",
		Description: "adding n calendar days in UTC is the same as adding 24n hours",
		Check: func(s Sample) Result {
			days := int(s.Offset.Duration() / day)
			asDays := s.Instant.AddDate(0, 0, days)
			asHours := s.Instant.Add(time.Duration(days*24) * time.Hour)
			local := s.Local()
			crosses := !local.AddDate(0, 0, days).Equal(local.Add(time.Duration(days*24) * time.Hour))
			return Labelled("same-instant", asDays.Equal(asHours),
				fmt.Sprintf("%v != %v", asDays, asHours)).
				Classify(crosses, "crosses-transition").
				Classify(days%7 == 0, "whole-weeks")
		},
	}
}

// holidays defined as the nth weekday of a month.
var nthWeekdayHolidays = []struct {
	name    string
	holiday *cal.Holiday
	month   datetime.Month
	n       int
	weekday time.Weekday
}{
	{"mlk-day", us.MlkDay, 1, 3, time.Monday},
	{"presidents-day", us.PresidentsDay, 2, 3, time.Monday},
	{"labor-day", us.LaborDay, 9, 1, time.Monday},
	{"thanksgiving-day", us.ThanksgivingDay, 11, 4, time.Thursday},
}

// NthWeekdayHolidays checks dst.NthWeekday against an independent
// calendar of US federal holidays for the sample's year.
func NthWeekdayHolidays() Property {
	return Property{
		Name:        "nth-weekday-holidays",
		Description: "the nth weekday of a month agrees with the US federal holidays that are defined that way",
		Check: func(s Sample) Result {
			year := s.Local().Year()
			r := Check(true)
			for _, h := range nthWeekdayHolidays {
				actual, _ := h.holiday.Calc(year)
				if actual.IsZero() {
					continue
				}
				day, err := dst.NthWeekday(year, h.month, h.n, h.weekday)
				if err != nil {
					r = r.And(h.name, false, err.Error())
					continue
				}
				r = r.And(h.name, day == actual.Day(),
					fmt.Sprintf("%v: %v != %v", year, day, actual.Day()))
			}
			return r.When(len(r.Labels) > 0)
		},
	}
}

// Properties returns all of the built-in properties.
func Properties() []Property {
	return []Property{
		DSTOracleNaive(),
		DSTOracleConditional(),
		DSTOracleTransition(),
		DSTIdempotent(),
		DaysInverse(),
		ZoneShiftInterchange(),
		ZoneDetour(),
		ZoneOffsetInvariance(),
		UnitOfTimeAddition(),
		NthWeekdayHolidays(),
	}
}

// DefaultProperties returns the built-in properties that are expected
// to hold.
func DefaultProperties() []Property {
	var props []Property
	for _, p := range Properties() {
		if !p.ExpectedToFail {
			props = append(props, p)
		}
	}
	return props
}

// LookupProperty returns the built-in property with the specified name.
func LookupProperty(name string) (Property, bool) {
	for _, p := range Properties() {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
