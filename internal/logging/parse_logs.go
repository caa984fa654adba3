// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"cloudeng.io/datetime"
)

type logEntry struct {
	Time     time.Time `json:"time"`
	Level    string    `json:"level"`
	Msg      string    `json:"msg"`
	Mod      string    `json:"mod"`
	ID       int64     `json:"id"`
	Property string    `json:"property"`
	Samples  int       `json:"samples"`
	Seed     uint64    `json:"seed"`
	Date     Date      `json:"date"`
	Instant  time.Time `json:"instant"`
	Zone     string    `json:"zone"`
	Offset   int64     `json:"offset"`
	Labels   []string  `json:"labels"`
	Shrinks  int       `json:"shrinks"`
	Elapsed  int64     `json:"elapsed"`
	Err      string    `json:"err"`
	Counts
}

type Entry struct {
	logEntry

	Date     datetime.CalendarDate
	Instant  time.Time
	Offset   time.Duration
	Elapsed  time.Duration
	Err      error
	LogEntry string // Original log line
}

func ParseLogLine(line string) (Entry, error) {
	var le Entry
	le.LogEntry = line
	if err := json.Unmarshal([]byte(line), &le.logEntry); err != nil {
		return le, err
	}
	le.Date = datetime.CalendarDate(le.logEntry.Date)
	le.Instant = le.logEntry.Instant
	if len(le.Zone) > 0 {
		loc, err := time.LoadLocation(le.Zone)
		if err != nil {
			return le, err
		}
		le.Instant = le.Instant.In(loc)
	}
	le.Offset = time.Duration(le.logEntry.Offset)
	le.Elapsed = time.Duration(le.logEntry.Elapsed)
	if e := le.logEntry.Err; e != "" {
		le.Err = errors.New(e)
	}
	return le, nil
}

func (le Entry) Name() string {
	return fmt.Sprintf("%v#%v", le.Property, le.ID)
}

// ProgressRecord returns a new ProgressRecord for a LogStart entry.
func (le Entry) ProgressRecord() *ProgressRecord {
	return &ProgressRecord{
		ID:       le.ID,
		Property: le.Property,
		Samples:  le.Samples,
		Seed:     le.Seed,
		Started:  le.Time,
	}
}

type Scanner struct {
	sc  *bufio.Scanner
	err error
}

func NewScanner(rd io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(rd)}
}

// Entries returns an iterator over the Scanner's log entries. Lines
// that are not produced by the oracle are skipped if oracleOnly is true.
// The iterator stops at the first error and the Scanner's Err method
// should be checked after the iterator has completed.
func (ls *Scanner) Entries(oracleOnly bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			if !ls.sc.Scan() {
				ls.err = ls.sc.Err()
				return
			}
			le, err := ParseLogLine(ls.sc.Text())
			if err != nil {
				ls.err = err
				return
			}
			if oracleOnly && le.Mod != "oracle" {
				continue
			}
			if !yield(le) {
				return
			}
		}
	}
}

func (ls *Scanner) Err() error {
	return ls.err
}
