// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ferienpass/damatch"
	"github.com/ferienpass/damatch/wishscore"
)

var runCmd = &cli.Command{
	Name:    "run",
	Usage:   "Match a booking file against an occasion file, scoring by priority",
	Aliases: []string{"r"},
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "booking",
			Required: true,
			Usage:    "specify the input booking.json",
		},
		&cli.StringFlag{
			Name:     "occasion",
			Required: true,
			Usage:    "specify the input occasion.json",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: true,
			Usage:    "specify the output partition.json",
		},
	}, matcherFlags...),
	Action: func(ctx *cli.Context) error {
		m, err := matcherFromFlags(ctx)
		if err != nil {
			return err
		}
		return doRun(m, ctx.String("booking"), ctx.String("occasion"), ctx.String("out"))
	},
}

type bookingFile struct {
	Bookings []*damatch.Booking `json:"bookings"`
}

type occasionFile struct {
	Occasions []*damatch.Occasion `json:"occasions"`
}

type partitionFile struct {
	Open     []string `json:"open"`
	Accepted []string `json:"accepted"`
	Blocked  []string `json:"blocked"`
}

func doRun(m *damatch.Matcher, bookingFileName, occasionFileName, outFileName string) error {
	bookings, err := loadBookings(bookingFileName)
	if err != nil {
		return fmt.Errorf("load booking file failed: %w", err)
	}

	occasions, err := loadOccasions(occasionFileName)
	if err != nil {
		return fmt.Errorf("load occasion file failed: %w", err)
	}

	m.Scorer = wishscore.Sum(wishscore.Priority{})

	res, err := m.Match(bookings, occasions)
	if err != nil {
		return err
	}

	fmt.Printf("open: %d, accepted: %d, blocked: %d\n",
		len(res.Open), len(res.Accepted), len(res.Blocked))

	if err := writePartition(outFileName, res); err != nil {
		return fmt.Errorf("write partition file failed: %w", err)
	}
	return nil
}

func loadBookings(file string) ([]*damatch.Booking, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var bookings bookingFile
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings.Bookings, nil
}

func loadOccasions(file string) ([]*damatch.Occasion, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var occasions occasionFile
	if err := json.Unmarshal(data, &occasions); err != nil {
		return nil, err
	}
	return occasions.Occasions, nil
}

func writePartition(file string, res damatch.Result) error {
	part := partitionFile{
		Open:     bookingIDs(res.Open),
		Accepted: bookingIDs(res.Accepted),
		Blocked:  bookingIDs(res.Blocked),
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(part); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}

func bookingIDs(bookings []*damatch.Booking) []string {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
