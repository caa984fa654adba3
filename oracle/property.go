// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package oracle

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the outcome of evaluating a Property against a single Sample.
type Status int

const (
	Passed Status = iota
	Failed
	Discarded
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Discarded:
		return "discarded"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label names a single sub-check of a compound property so that failures
// can be attributed to the part of the property that does not hold.
type Label struct {
	Name   string
	OK     bool
	Detail string
}

func (l Label) String() string {
	if len(l.Detail) == 0 {
		return l.Name
	}
	return l.Name + ": " + l.Detail
}

// Result is the result of evaluating a Property, together with any
// observations made about the sample.
type Result struct {
	Status    Status
	Labels    []Label
	Classes   []string
	Collected string
	IsTrivial bool
}

// Check returns a Result that passes iff ok is true.
func Check(ok bool) Result {
	if ok {
		return Result{Status: Passed}
	}
	return Result{Status: Failed}
}

// Labelled returns a Result for a single labelled sub-check.
func Labelled(name string, ok bool, detail string) Result {
	return Check(true).And(name, ok, detail)
}

// And adds a labelled sub-check, the result fails if any sub-check fails.
func (r Result) And(name string, ok bool, detail string) Result {
	r.Labels = append(slices.Clip(r.Labels), Label{Name: name, OK: ok, Detail: detail})
	if !ok && r.Status == Passed {
		r.Status = Failed
	}
	return r
}

// When discards the sample unless cond is true.
func (r Result) When(cond bool) Result {
	if !cond {
		r.Status = Discarded
	}
	return r
}

// Classify adds class to the result's classes if cond is true.
func (r Result) Classify(cond bool, class string) Result {
	if cond {
		r.Classes = append(slices.Clip(r.Classes), class)
	}
	return r
}

// Trivial marks the result as trivial if cond is true.
func (r Result) Trivial(cond bool) Result {
	r.IsTrivial = r.IsTrivial || cond
	return r
}

// Collect records the string form of v.
func (r Result) Collect(v any) Result {
	r.Collected = fmt.Sprint(v)
	return r
}

// FailedLabels returns the sub-checks that did not hold.
func (r Result) FailedLabels() []Label {
	var failed []Label
	for _, l := range r.Labels {
		if !l.OK {
			failed = append(failed, l)
		}
	}
	return failed
}

func (r Result) String() string {
	var out strings.Builder
	out.WriteString(r.Status.String())
	for _, l := range r.FailedLabels() {
		out.WriteString(", ")
		out.WriteString(l.String())
	}
	return out.String()
}

// Property is a named check evaluated over many generated samples.
// ExpectedToFail is set for properties that demonstrate a plausible but
// incorrect belief, they are only evaluated when requested by name.
type Property struct {
	Name           string
	Description    string
	ExpectedToFail bool
	Check          func(Sample) Result
}
