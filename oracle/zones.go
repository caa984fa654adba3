// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"fmt"
	"time"

	"github.com/cosnicolaou/usdst/dst"
	"gopkg.in/yaml.v3"
)

var (
	// USZones are time zones that have followed the current United States
	// rules since 2007.
	USZones = []string{
		"America/New_York",
		"America/Chicago",
		"America/Denver",
		"America/Los_Angeles",
		"America/Anchorage",
		"America/Detroit",
		"America/Boise",
		"America/Indiana/Indianapolis",
	}

	// OtherZones are time zones that either do not observe daylight
	// saving time or observe it according to different rules.
	OtherZones = []string{
		"America/Phoenix",
		"Pacific/Honolulu",
		"UTC",
		"Europe/London",
		"Europe/Amsterdam",
		"Australia/Sydney",
		"Asia/Tokyo",
		"America/Sao_Paulo",
	}
)

// Zone is a named time.Location.
type Zone struct {
	Name string
	*time.Location
}

func (z Zone) String() string {
	return z.Name
}

func (z *Zone) UnmarshalYAML(node *yaml.Node) error {
	nz, err := LoadZone(node.Value)
	if err != nil {
		return err
	}
	*z = nz
	return nil
}

// LoadZone loads the named time zone, an empty name is an error rather
// than a request for UTC.
func LoadZone(name string) (Zone, error) {
	if len(name) == 0 {
		return Zone{}, fmt.Errorf("empty time zone name")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("failed to load time zone %q: %w", name, err)
	}
	return Zone{Name: name, Location: loc}, nil
}

// LoadZones loads all of the named time zones.
func LoadZones(names ...string) ([]Zone, error) {
	zones := make([]Zone, 0, len(names))
	for _, name := range names {
		z, err := LoadZone(name)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func noon(loc *time.Location, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}

// ObservesDST returns true if loc observes daylight saving time at some
// point during the specified year, as determined by sampling January 1st
// and July 1st.
func ObservesDST(loc *time.Location, year int) bool {
	return noon(loc, year, time.January, 1).IsDST() || noon(loc, year, time.July, 1).IsDST()
}

// FollowsUSRule returns true if the time zone database reports that loc
// follows the United States rules for the specified year. The days either
// side of each transition are checked at noon.
func FollowsUSRule(loc *time.Location, year int) bool {
	start, end, err := dst.Transitions(year)
	if err != nil {
		return false
	}
	sd, ed := start.Day(), end.Day()
	for _, check := range []struct {
		month time.Month
		day   int
		dst   bool
	}{
		{time.January, 1, false},
		{time.March, sd - 1, false},
		{time.March, sd, true},
		{time.July, 1, true},
		{time.November, ed - 1, true},
		{time.November, ed, false},
	} {
		if noon(loc, year, check.month, check.day).IsDST() != check.dst {
			return false
		}
	}
	return true
}
