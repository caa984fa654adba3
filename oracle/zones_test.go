// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle_test

import (
	"testing"
	_ "time/tzdata"

	"github.com/cosnicolaou/usdst/oracle"
)

func mustLoadZone(t *testing.T, name string) oracle.Zone {
	t.Helper()
	z, err := oracle.LoadZone(name)
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func TestLoadZones(t *testing.T) {
	zones, err := oracle.LoadZones(oracle.USZones...)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(zones), len(oracle.USZones); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	for i, z := range zones {
		if got, want := z.String(), oracle.USZones[i]; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, err := oracle.LoadZone(""); err == nil {
		t.Errorf("expected an error for an empty zone name")
	}
	if _, err := oracle.LoadZones("America/New_York", "Nowhere/Special"); err == nil {
		t.Errorf("expected an error for an unknown zone")
	}
}

func TestObservesDST(t *testing.T) {
	for i, tc := range []struct {
		zone string
		year int
		want bool
	}{
		{"America/New_York", 2016, true},
		{"America/New_York", 1990, true},
		{"Australia/Sydney", 2016, true},
		{"Europe/London", 2016, true},
		{"America/Phoenix", 2016, false},
		{"Pacific/Honolulu", 2016, false},
		{"Asia/Tokyo", 2016, false},
		{"UTC", 2016, false},
	} {
		z := mustLoadZone(t, tc.zone)
		if got, want := oracle.ObservesDST(z.Location, tc.year), tc.want; got != want {
			t.Errorf("%v: %v: %v: got %v, want %v", i, tc.zone, tc.year, got, want)
		}
	}
}

func TestFollowsUSRule(t *testing.T) {
	for _, name := range oracle.USZones {
		z := mustLoadZone(t, name)
		for year := 2007; year <= 2030; year++ {
			if !oracle.FollowsUSRule(z.Location, year) {
				t.Errorf("%v: %v: expected zone to follow the US rules", name, year)
			}
		}
	}
	for _, name := range oracle.OtherZones {
		z := mustLoadZone(t, name)
		for year := 2007; year <= 2030; year++ {
			if oracle.FollowsUSRule(z.Location, year) {
				t.Errorf("%v: %v: expected zone to not follow the US rules", name, year)
			}
		}
	}
	ny := mustLoadZone(t, "America/New_York")
	for _, year := range []int{1970, 1990, 2006} {
		if oracle.FollowsUSRule(ny.Location, year) {
			t.Errorf("%v: rules prior to 2007 should not be considered", year)
		}
	}
}
