// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"github.com/cosnicolaou/usdst/dst"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSamples     = 500
	DefaultFromYear    = 1990
	DefaultToYear      = 2040
	DefaultMaxOffset   = 2000 * time.Hour
	DefaultMaxFailures = 3
)

type configFile struct {
	Samples     int                  `yaml:"samples" cmd:"number of samples to evaluate for each property"`
	Seed        uint64               `yaml:"seed" cmd:"random number seed, 0 for a time based seed"`
	FromYear    int                  `yaml:"from_year" cmd:"earliest year for generated instants"`
	ToYear      int                  `yaml:"to_year" cmd:"latest year for generated instants"`
	MaxOffset   dst.PositiveDuration `yaml:"max_offset" cmd:"largest offset added to generated instants, rounded down to whole days"`
	MaxFailures *int                 `yaml:"max_failures" cmd:"maximum number of failures retained for each property, 0 to retain none"`
	Zones       []Zone               `yaml:"zones,flow" cmd:"time zones that instants are projected into"`
	Properties  []string             `yaml:"properties,flow" cmd:"properties to be evaluated"`
}

// Config represents the configuration of an oracle run.
type Config struct {
	Samples     int
	Seed        uint64
	FromYear    int
	ToYear      int
	MaxOffset   dst.PositiveDuration
	MaxFailures int
	Zones       []Zone
	Properties  []Property
}

// DefaultConfig returns a configuration that evaluates the
// DefaultProperties against all of USZones and OtherZones.
func DefaultConfig() (Config, error) {
	return configFile{}.createConfig()
}

// ParseConfigFile parses the supplied configuration file as per ParseConfig.
func ParseConfigFile(ctx context.Context, cfgFile string) (Config, error) {
	var cfg configFile
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.createConfig()
}

// ParseConfig parses the supplied YAML configuration, any omitted fields
// are set to their default values.
func ParseConfig(_ context.Context, cfgData []byte) (Config, error) {
	var cfg configFile
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.createConfig()
}

func (cfg configFile) createConfig() (Config, error) {
	c := Config{
		Samples:     orDefault(cfg.Samples, DefaultSamples),
		Seed:        cfg.Seed,
		FromYear:    orDefault(cfg.FromYear, DefaultFromYear),
		ToYear:      orDefault(cfg.ToYear, DefaultToYear),
		MaxOffset:   cfg.MaxOffset,
		MaxFailures: DefaultMaxFailures,
		Zones:       cfg.Zones,
	}
	if cfg.MaxFailures != nil {
		c.MaxFailures = *cfg.MaxFailures
	}
	if c.MaxOffset.IsZero() {
		c.MaxOffset, _ = dst.NewPositiveDuration(DefaultMaxOffset)
	}
	var errs errors.M
	if len(c.Zones) == 0 {
		zones, err := LoadZones(slices.Concat(USZones, OtherZones)...)
		errs.Append(err)
		c.Zones = zones
	}
	for _, name := range cfg.Properties {
		p, ok := LookupProperty(name)
		if !ok {
			errs.Append(fmt.Errorf("unknown property: %q", name))
			continue
		}
		c.Properties = append(c.Properties, p)
	}
	if len(cfg.Properties) == 0 {
		c.Properties = DefaultProperties()
	}
	errs.Append(c.Validate())
	if err := errs.Err(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns an error describing all of the problems with the
// configuration.
func (c Config) Validate() error {
	var errs errors.M
	if c.Samples < 0 {
		errs.Append(fmt.Errorf("samples must not be negative: %v", c.Samples))
	}
	if c.MaxFailures < 0 {
		errs.Append(fmt.Errorf("max_failures must not be negative: %v", c.MaxFailures))
	}
	if c.FromYear > c.ToYear {
		errs.Append(fmt.Errorf("from_year %v is after to_year %v", c.FromYear, c.ToYear))
	}
	if c.MaxOffset.Duration() < 24*time.Hour {
		errs.Append(fmt.Errorf("max_offset must be at least one day: %v", c.MaxOffset.Duration()))
	}
	if len(c.Zones) == 0 {
		errs.Append(fmt.Errorf("no time zones specified"))
	}
	return errs.Err()
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
