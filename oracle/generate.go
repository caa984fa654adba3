// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/cosnicolaou/usdst/dst"
)

const day = 24 * time.Hour

// Sample is a single generated input for a Property.
type Sample struct {
	Instant time.Time            // UTC instant.
	Zone    Zone                 // Zone the instant is projected into.
	Detour  Zone                 // Second zone used by zone-detour.
	Offset  dst.PositiveDuration // Whole number of days.
}

// Local returns the instant in the sample's zone.
func (s Sample) Local() time.Time {
	return s.Instant.In(s.Zone.Location)
}

func (s Sample) String() string {
	return fmt.Sprintf("%v (%v) +%v via %v", s.Local().Format(time.RFC3339), s.Zone, s.Offset.Duration(), s.Detour)
}

// Generator generates random samples; it is not safe for concurrent use.
type Generator struct {
	rnd     *rand.Rand
	zones   []Zone
	from    int64
	span    int64
	maxDays int64
}

// NewGenerator returns a generator whose instants lie in the years
// [fromYear, toYear] and whose offsets are whole days no greater than
// maxOffset. A maxOffset of less than one day is treated as one day,
// Config.Validate rejects such configurations.
func NewGenerator(seed uint64, zones []Zone, fromYear, toYear int, maxOffset dst.PositiveDuration) *Generator {
	from := time.Date(fromYear, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	to := time.Date(toYear+1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	return &Generator{
		rnd:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		zones:   zones,
		from:    from,
		span:    max(to-from, 1),
		maxDays: max(int64(maxOffset.Duration()/day), 1),
	}
}

// Zone returns a randomly chosen zone.
func (g *Generator) Zone() Zone {
	return g.zones[g.rnd.IntN(len(g.zones))]
}

// Instant returns a random UTC instant with second resolution.
func (g *Generator) Instant() time.Time {
	return time.Unix(g.from+g.rnd.Int64N(g.span), 0).UTC()
}

// Offset returns a random positive number of whole days.
func (g *Generator) Offset() dst.PositiveDuration {
	pd, _ := dst.NewPositiveDuration(time.Duration(1+g.rnd.Int64N(g.maxDays)) * day)
	return pd
}

func (g *Generator) Sample() Sample {
	return Sample{
		Instant: g.Instant(),
		Zone:    g.Zone(),
		Detour:  g.Zone(),
		Offset:  g.Offset(),
	}
}

// Bucket is a single entry in the histogram returned by Distribute.
type Bucket[T comparable] struct {
	Value T
	Count int
}

// Distribute returns a histogram of values ordered by decreasing count,
// values with the same count appear in the order in which they were
// first seen.
func Distribute[T comparable](values []T) []Bucket[T] {
	index := map[T]int{}
	buckets := []Bucket[T]{}
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(buckets)
			index[v] = i
			buckets = append(buckets, Bucket[T]{Value: v})
		}
		buckets[i].Count++
	}
	slices.SortStableFunc(buckets, func(a, b Bucket[T]) int {
		return b.Count - a.Count
	})
	return buckets
}

// ShrinkOffset returns successively halved offsets, rounded down to whole
// days, none of which is less than one day.
func ShrinkOffset(p dst.PositiveDuration) iter.Seq[dst.PositiveDuration] {
	return func(yield func(dst.PositiveDuration) bool) {
		for d := p.Duration() / day / 2; d > 0; d /= 2 {
			pd, _ := dst.NewPositiveDuration(d * day)
			if !yield(pd) {
				return
			}
		}
	}
}

// ShrinkInstant returns simpler instants for the sample, namely its local
// time truncated to the hour and then to the start of the local day.
// Candidates equal to the sample's own instant are not returned.
func ShrinkInstant(s Sample) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		l := s.Local()
		for _, c := range []time.Time{
			time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), 0, 0, 0, l.Location()),
			time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, l.Location()),
		} {
			if c.Equal(s.Instant) {
				continue
			}
			if !yield(c.UTC()) {
				return
			}
		}
	}
}

// candidates returns all of the shrunk variants of s.
func candidates(s Sample) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for instant := range ShrinkInstant(s) {
			c := s
			c.Instant = instant
			if !yield(c) {
				return
			}
		}
		for offset := range ShrinkOffset(s.Offset) {
			c := s
			c.Offset = offset
			if !yield(c) {
				return
			}
		}
		if s.Detour != s.Zone {
			c := s
			c.Detour = s.Zone
			yield(c)
		}
	}
}
