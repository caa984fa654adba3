// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"strings"

	"cloudeng.io/datetime"
)

// Date is a datetime.CalendarDate that is written to, and read from,
// JSON log records using its string form.
type Date datetime.CalendarDate

func (ld Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + datetime.CalendarDate(ld).String() + `"`), nil
}

func (ld *Date) UnmarshalJSON(data []byte) error {
	return (*datetime.CalendarDate)(ld).Parse(strings.Trim(string(data), `"`))
}

// Counts records the outcomes of evaluating a property over a set of
// samples.
type Counts struct {
	Passed    int `json:"passed"`
	Failed    int `json:"failed"`
	Discarded int `json:"discarded"`
	Trivial   int `json:"trivial"`
}

// Total returns the number of samples evaluated.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Discarded
}
