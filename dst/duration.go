// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dst

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// PositiveDuration is a time.Duration that is always greater than zero.
// The zero value is not valid and is reported by IsZero.
type PositiveDuration struct {
	value time.Duration
}

// NewPositiveDuration returns ErrInvalidArgument unless d > 0.
func NewPositiveDuration(d time.Duration) (PositiveDuration, error) {
	if d <= 0 {
		return PositiveDuration{}, fmt.Errorf("%w: duration %v must be greater than 0", ErrInvalidArgument, d)
	}
	return PositiveDuration{value: d}, nil
}

func (p PositiveDuration) Duration() time.Duration {
	return p.value
}

func (p PositiveDuration) IsZero() bool {
	return p.value == 0
}

func (p PositiveDuration) String() string {
	return fmt.Sprintf("PositiveDuration(%v)", p.value)
}

// Parse parses a duration in time.ParseDuration format.
func (p *PositiveDuration) Parse(val string) error {
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	pd, err := NewPositiveDuration(d)
	if err != nil {
		return err
	}
	*p = pd
	return nil
}

func (p *PositiveDuration) UnmarshalYAML(node *yaml.Node) error {
	return p.Parse(node.Value)
}
