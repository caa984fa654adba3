// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cosnicolaou/usdst/oracle"
)

const testConfig = `
samples: 100
seed: 7
from_year: 2007
to_year: 2020
max_offset: 72h
max_failures: 1
zones: [America/New_York, Europe/London]
properties: [dst-oracle-transition, zone-detour]
`

func checkConfig(t *testing.T, cfg oracle.Config) {
	t.Helper()
	if got, want := cfg.Samples, 100; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.Seed, uint64(7); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.FromYear, 2007; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.ToYear, 2020; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.MaxOffset.Duration(), 72*time.Hour; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.MaxFailures, 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(cfg.Zones), 2; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := cfg.Zones[1].Name, "Europe/London"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(cfg.Properties), 2; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := cfg.Properties[0].Name, "dst-oracle-transition"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseConfig(t *testing.T) {
	ctx := context.Background()
	cfg, err := oracle.ParseConfig(ctx, []byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	checkConfig(t, cfg)

	file := filepath.Join(t.TempDir(), "oracle.yaml")
	if err := os.WriteFile(file, []byte(testConfig), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err = oracle.ParseConfigFile(ctx, file)
	if err != nil {
		t.Fatal(err)
	}
	checkConfig(t, cfg)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := oracle.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Samples, oracle.DefaultSamples; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.FromYear, oracle.DefaultFromYear; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.ToYear, oracle.DefaultToYear; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.MaxOffset.Duration(), oracle.DefaultMaxOffset; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(cfg.Zones), len(oracle.USZones)+len(oracle.OtherZones); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(cfg.Properties), len(oracle.DefaultProperties()); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.MaxFailures, oracle.DefaultMaxFailures; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConfigMaxFailures(t *testing.T) {
	cfg, err := oracle.ParseConfig(context.Background(), []byte("max_failures: 0\nproperties: [dst-oracle-naive]"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.MaxFailures, 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.Properties[0].Name, "dst-oracle-naive"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConfigErrors(t *testing.T) {
	ctx := context.Background()
	for i, tc := range []struct {
		config string
		errs   []string
	}{
		{"properties: [no-such-property, other]", []string{
			`unknown property: "no-such-property"`,
			`unknown property: "other"`,
		}},
		{"zones: [Nowhere/Special]", []string{`failed to load time zone "Nowhere/Special"`}},
		{"from_year: 2030\nto_year: 2020", []string{"from_year 2030 is after to_year 2020"}},
		{"samples: -1\nmax_failures: -2", []string{
			"samples must not be negative",
			"max_failures must not be negative",
		}},
		{"max_offset: -1h", []string{"invalid argument"}},
		{"max_offset: 23h", []string{"max_offset must be at least one day"}},
	} {
		_, err := oracle.ParseConfig(ctx, []byte(tc.config))
		if err == nil {
			t.Errorf("%v: expected an error", i)
			continue
		}
		for _, e := range tc.errs {
			if !strings.Contains(err.Error(), e) {
				t.Errorf("%v: %q does not contain %q", i, err, e)
			}
		}
	}
}
