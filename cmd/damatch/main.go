// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ferienpass/damatch"
)

func main() {
	app := &cli.App{
		Name:  "damatch",
		Usage: "Utility for matching activity bookings to occasions",
		Commands: []*cli.Command{
			runCmd,
			rematchCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

// matcherFlags are shared by every command that runs the matcher.
var matcherFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "minutes-between",
		Value: 0,
		Usage: "minimum gap in minutes between two accepted bookings",
	},
	&cli.StringFlag{
		Name:  "align",
		Value: "none",
		Usage: "stretch booking dates to calendar periods (none|day|week|month)",
	},
	&cli.IntFlag{
		Name:  "default-limit",
		Value: -1,
		Usage: "max accepted bookings per attendee (-1 for unlimited)",
	},
	&cli.StringSliceFlag{
		Name:  "limit",
		Usage: "per-attendee limit override, e.g. --limit Tom=1",
	},
	&cli.BoolFlag{
		Name:  "stability",
		Usage: "verify the result contains no blocking pair (slow)",
	},
	&cli.BoolFlag{
		Name:  "soft-budget",
		Usage: "stop early instead of failing when the loop budget runs out",
	},
	&cli.BoolFlag{
		Name:  "no-sort",
		Usage: "skip sorting bookings by attendee (input already grouped)",
	},
	&cli.BoolFlag{
		Name:  "verbose",
		Usage: "trace proposal rounds",
	},
}

func matcherFromFlags(ctx *cli.Context) (*damatch.Matcher, error) {
	align, err := damatch.ParseAlignment(ctx.String("align"))
	if err != nil {
		return nil, err
	}

	m := &damatch.Matcher{
		StabilityCheck: ctx.Bool("stability"),
		MinutesBetween: ctx.Int("minutes-between"),
		Align:          align,
		Verbose:        ctx.Bool("verbose"),
	}

	if ctx.Bool("soft-budget") {
		soft := false
		m.HardBudget = &soft
	}
	if ctx.Bool("no-sort") {
		noSort := false
		m.SortBookings = &noSort
	}
	if l := ctx.Int("default-limit"); l >= 0 {
		m.DefaultLimit = &l
	}

	for _, s := range ctx.StringSlice("limit") {
		attendee, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid limit %q, want attendee=n", s)
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid limit %q, want attendee=n", s)
		}
		if m.AttendeeLimits == nil {
			m.AttendeeLimits = make(map[string]int)
		}
		m.AttendeeLimits[attendee] = n
	}

	return m, nil
}
