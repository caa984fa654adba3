// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/cosnicolaou/usdst/internal/logging"
	"github.com/cosnicolaou/usdst/oracle"
)

type OracleFlags struct {
	Config     string `subcmd:"config,,oracle configuration file, the built-in defaults are used if not specified"`
	Samples    int    `subcmd:"samples,0,number of samples for each property, overrides the configuration file"`
	Seed       uint64 `subcmd:"seed,0,random number seed, overrides the configuration file"`
	Zones      string `subcmd:"zones,,comma separated list of time zones, overrides the configuration file"`
	Properties string `subcmd:"properties,,comma separated list of properties, overrides the configuration file"`
}

type OracleRunFlags struct {
	OracleFlags
	LogFile     string `subcmd:"log-file,,log file, logs are written to stderr if not specified"`
	Concurrency int    `subcmd:"concurrency,0,maximum number of properties to evaluate concurrently, 0 for no limit"`
	Verbose     bool   `subcmd:"verbose,false,display the classes and values observed for each property"`
	TSV         bool   `subcmd:"tsv,false,print the results in tab separated values"`
}

type OracleDistributionFlags struct {
	OracleFlags
	TSV bool `subcmd:"tsv,false,print the results in tab separated values"`
}

type OraclePropertiesFlags struct{}

type Oracle struct {
	out io.Writer
}

func splitList(val string) []string {
	var parts []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); len(p) > 0 {
			parts = append(parts, p)
		}
	}
	return parts
}

func loadConfig(ctx context.Context, fv *OracleFlags) (oracle.Config, error) {
	var cfg oracle.Config
	var err error
	if len(fv.Config) > 0 {
		cfg, err = oracle.ParseConfigFile(ctx, fv.Config)
		if err != nil {
			return oracle.Config{}, fmt.Errorf("failed to parse config file: %q: %w", fv.Config, err)
		}
	} else {
		cfg, err = oracle.DefaultConfig()
		if err != nil {
			return oracle.Config{}, err
		}
	}
	if fv.Samples > 0 {
		cfg.Samples = fv.Samples
	}
	if fv.Seed != 0 {
		cfg.Seed = fv.Seed
	}
	if zones := splitList(fv.Zones); len(zones) > 0 {
		cfg.Zones, err = oracle.LoadZones(zones...)
		if err != nil {
			return oracle.Config{}, err
		}
	}
	if names := splitList(fv.Properties); len(names) > 0 {
		cfg.Properties = nil
		for _, name := range names {
			p, ok := oracle.LookupProperty(name)
			if !ok {
				return oracle.Config{}, fmt.Errorf("unknown property: %q", name)
			}
			cfg.Properties = append(cfg.Properties, p)
		}
	}
	return cfg, cfg.Validate()
}

func newLogfile(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func (o *Oracle) setupLogging(ctx context.Context, logfile string) (context.Context, func(), error) {
	if len(logfile) == 0 {
		return ctxlog.NewJSONLogger(ctx, os.Stderr, nil), func() {}, nil
	}
	f, err := newLogfile(logfile)
	if err != nil {
		return ctx, func() {}, err
	}
	return ctxlog.NewJSONLogger(ctx, f, nil), func() { f.Close() }, nil
}

func (o *Oracle) Run(ctx context.Context, flags any, _ []string) error {
	fv := flags.(*OracleRunFlags)
	cfg, err := loadConfig(ctx, &fv.OracleFlags)
	if err != nil {
		return err
	}
	ctx, cleanup, err := o.setupLogging(ctx, fv.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	ctxlog.Info(ctx, "starting oracle", "samples", cfg.Samples, "seed", cfg.Seed, "from_year", cfg.FromYear, "to_year", cfg.ToYear, "zones", len(cfg.Zones), "properties", len(cfg.Properties))

	report, err := oracle.Run(ctx, cfg,
		oracle.WithRecorder(logging.NewProgressRecorder()),
		oracle.WithConcurrency(fv.Concurrency))
	tm := tableManager{}
	render(o.out, tm.Summary(report), fv.TSV)
	if !report.OK() {
		render(o.out, tm.Failures(report), fv.TSV)
	}
	if fv.Verbose {
		render(o.out, tm.Observations(report), fv.TSV)
	}
	if err != nil {
		return err
	}
	var failed []string
	for _, pr := range report.Properties {
		if !pr.OK() {
			failed = append(failed, pr.Name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("properties failed (seed %v): %v", report.Seed, strings.Join(failed, ", "))
	}
	return nil
}

func (o *Oracle) Properties(_ context.Context, _ any, _ []string) error {
	render(o.out, tableManager{}.Properties(oracle.Properties()), false)
	return nil
}

func (o *Oracle) Distribution(ctx context.Context, flags any, _ []string) error {
	fv := flags.(*OracleDistributionFlags)
	cfg, err := loadConfig(ctx, &fv.OracleFlags)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := oracle.NewGenerator(seed, cfg.Zones, cfg.FromYear, cfg.ToYear, cfg.MaxOffset)
	zones := make([]string, cfg.Samples)
	years := make([]int, cfg.Samples)
	offsets := make([]time.Duration, cfg.Samples)
	for i := range cfg.Samples {
		s := gen.Sample()
		zones[i] = s.Zone.Name
		years[i] = s.Local().Year()
		offsets[i] = s.Offset.Duration()
	}
	render(o.out, distributionTable(fmt.Sprintf("Zones (seed %v)", seed), oracle.Distribute(zones), cfg.Samples), fv.TSV)
	render(o.out, distributionTable(fmt.Sprintf("Years (seed %v)", seed), oracle.Distribute(years), cfg.Samples), fv.TSV)
	render(o.out, distributionTable(fmt.Sprintf("Offsets (seed %v)", seed), oracle.Distribute(offsets), cfg.Samples), fv.TSV)
	return nil
}
