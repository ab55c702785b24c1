// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package periodstore loads the bookings and occasions of one booking
// period from Postgres, runs the matcher over them and writes the
// resulting partition back as booking state updates in a single
// transaction.
package periodstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ferienpass/damatch"
)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// Open connects a store to the database at dsn.
func Open(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return New(pool, log), nil
}

// New wraps an existing pool. A nil logger disables logging.
func New(pool *pgxpool.Pool, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{pool: pool, log: log}
}

func (s *Store) Close() {
	s.pool.Close()
}

// Period is the in-memory snapshot the matcher consumes. Booking date
// ranges are taken from the booked occasion's dates.
type Period struct {
	ID        uuid.UUID
	Bookings  []*damatch.Booking
	Occasions []*damatch.Occasion
}

// LoadPeriod reads the occasions, their dates and the not-cancelled
// bookings of one booking period.
func (s *Store) LoadPeriod(ctx context.Context, periodID uuid.UUID) (*Period, error) {
	p := &Period{ID: periodID}
	byID := make(map[string]*damatch.Occasion)

	rows, err := s.pool.Query(ctx, `
		SELECT o.id::text, o.activity_id::text, o.max_spots, o.skip_overlap_check
		FROM occasions o
		WHERE o.period_id = $1
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("load occasions: %w", err)
	}
	for rows.Next() {
		o := &damatch.Occasion{}
		if err := rows.Scan(&o.ID, &o.ActivityID, &o.MaxSpots, &o.SkipOverlapCheck); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan occasion: %w", err)
		}
		byID[o.ID] = o
		p.Occasions = append(p.Occasions, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load occasions: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT d.occasion_id::text, d.starts_at, d.ends_at
		FROM occasion_dates d
		JOIN occasions o ON o.id = d.occasion_id
		WHERE o.period_id = $1
		ORDER BY d.starts_at
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("load occasion dates: %w", err)
	}
	for rows.Next() {
		var occasionID string
		var r damatch.DateRange
		if err := rows.Scan(&occasionID, &r.Start, &r.End); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan occasion date: %w", err)
		}
		if o, ok := byID[occasionID]; ok {
			o.Ranges = append(o.Ranges, r)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load occasion dates: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT b.id::text, b.occasion_id::text, b.attendee_id::text, b.state, b.priority
		FROM bookings b
		JOIN occasions o ON o.id = b.occasion_id
		WHERE o.period_id = $1 AND b.state <> 'cancelled'
		ORDER BY b.attendee_id, b.id
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	for rows.Next() {
		b := &damatch.Booking{}
		var state string
		if err := rows.Scan(&b.ID, &b.OccasionID, &b.AttendeeID, &state, &b.Priority); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.State, err = damatch.ParseState(state)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		if o, ok := byID[b.OccasionID]; ok {
			b.Ranges = o.Ranges
		}
		p.Bookings = append(p.Bookings, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	s.log.Debug("period loaded",
		zap.Stringer("period", periodID),
		zap.Int("occasions", len(p.Occasions)),
		zap.Int("bookings", len(p.Bookings)))
	return p, nil
}

// Rematch loads one period, runs the matcher and persists the changed
// booking states atomically. Rows whose state did not change are left
// untouched and cancelled bookings are never written.
func (s *Store) Rematch(ctx context.Context, periodID uuid.UUID, m *damatch.Matcher) (damatch.Result, error) {
	p, err := s.LoadPeriod(ctx, periodID)
	if err != nil {
		return damatch.Result{}, err
	}

	res, err := m.Match(p.Bookings, p.Occasions)
	if err != nil {
		return damatch.Result{}, fmt.Errorf("match period %s: %w", periodID, err)
	}

	updates := stateUpdates(res)
	if err := s.applyUpdates(ctx, updates); err != nil {
		return damatch.Result{}, err
	}

	s.log.Info("period rematched",
		zap.Stringer("period", periodID),
		zap.Int("open", len(res.Open)),
		zap.Int("accepted", len(res.Accepted)),
		zap.Int("blocked", len(res.Blocked)),
		zap.Int("updated", len(updates)))
	return res, nil
}

func (s *Store) applyUpdates(ctx context.Context, updates []stateUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, u := range updates {
		_, err = tx.Exec(ctx, `
			UPDATE bookings SET state = $2
			WHERE id = $1 AND state <> 'cancelled'
		`, u.id, u.state.String())
		if err != nil {
			return fmt.Errorf("update booking %s: %w", u.id, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
