// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ferienpass/damatch"
	"github.com/ferienpass/damatch/periodstore"
)

var rematchCmd = &cli.Command{
	Name:  "rematch",
	Usage: "Recompute and persist the matching of one booking period",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "dsn",
			Required: true,
			EnvVars:  []string{"DATABASE_URL"},
			Usage:    "specify the Postgres connection string",
		},
		&cli.StringFlag{
			Name:     "period",
			Required: true,
			Usage:    "specify the booking period id (uuid)",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "use development logging",
		},
	}, matcherFlags...),
	Action: func(ctx *cli.Context) error {
		m, err := matcherFromFlags(ctx)
		if err != nil {
			return err
		}
		return doRematch(ctx.Context, ctx.String("dsn"), ctx.String("period"), m, ctx.Bool("dev"))
	},
}

func doRematch(ctx context.Context, dsn, period string, m *damatch.Matcher, dev bool) error {
	periodID, err := uuid.Parse(period)
	if err != nil {
		return fmt.Errorf("invalid period id: %w", err)
	}

	var log *zap.Logger
	if dev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	store, err := periodstore.Open(ctx, dsn, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	res, err := store.Rematch(ctx, periodID, m)
	if err != nil {
		return err
	}

	fmt.Printf("open: %d, accepted: %d, blocked: %d\n",
		len(res.Open), len(res.Accepted), len(res.Blocked))
	return nil
}
