// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	_ "time/tzdata"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: usdst
summary: usdst approximates United States daylight saving time and evaluates that approximation against the time zone database
commands:
  - name: dst
    summary: evaluate the daylight saving time rules in effect since 2007
    commands:
      - name: check
        summary: display whether each date is within daylight saving time, today is used if no dates are specified
        arguments:
          - <date>...
      - name: nth
        summary: display the date of the nth occurrence of a weekday within a month
        arguments:
          - <year>
          - <month> - numeric month, 1-12
          - <n> - occurrence, 1-5
          - <weekday> - weekday name or its three letter abbreviation
      - name: transitions
        summary: display the dates on which daylight saving time starts and ends

  - name: oracle
    summary: evaluate properties of the approximation against the time zone database
    commands:
      - name: run
        summary: evaluate the configured properties over randomly generated samples
      - name: properties
        summary: list the built-in properties
      - name: distribution
        summary: display the distribution of generated samples across zones and years
  - name: logs
    summary: query/inspect the log files
    commands:
      - name: summary
        summary: replay the log of an oracle run, stdin is read if no files are specified
        arguments:
          - <log-files>...
`

func cli() *subcmd.CommandSetYAML {
	cmd := subcmd.MustFromYAML(cmdSpec)

	dst := &DST{out: os.Stdout}
	cmd.Set("dst", "check").MustRunner(dst.Check, &CheckFlags{})
	cmd.Set("dst", "nth").MustRunner(dst.Nth, &NthFlags{})
	cmd.Set("dst", "transitions").MustRunner(dst.Transitions, &TransitionsFlags{})

	oracle := &Oracle{out: os.Stdout}
	cmd.Set("oracle", "run").MustRunner(oracle.Run, &OracleRunFlags{})
	cmd.Set("oracle", "properties").MustRunner(oracle.Properties, &OraclePropertiesFlags{})
	cmd.Set("oracle", "distribution").MustRunner(oracle.Distribution, &OracleDistributionFlags{})

	log := &Log{out: os.Stdout}
	cmd.Set("logs", "summary").MustRunner(log.Summary, &LogSummaryFlags{})
	return cmd
}

var errInterrupt = errors.New("interrupt")

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancelCause(ctx)
	cmdutil.HandleSignals(func() { cancel(errInterrupt) }, os.Interrupt)
	err := cli().Dispatch(ctx)
	if context.Cause(ctx) == errInterrupt {
		cmdutil.Exit("%v", errInterrupt)
	}
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}
