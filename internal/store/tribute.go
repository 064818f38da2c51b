package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const tributeColumns = `id, mode, credits_accrued, resource_usage_mb, operations_tracked, last_ritual_date, updated_at`

func scanTribute(row scanner) (*model.TributeConfig, error) {
	var (
		cfg        model.TributeConfig
		mode       string
		lastRitual sql.NullInt64
		updatedAt  int64
	)
	if err := row.Scan(&cfg.ID, &mode, &cfg.CreditsAccrued, &cfg.ResourceUsageMB,
		&cfg.OperationsTracked, &lastRitual, &updatedAt); err != nil {
		return nil, err
	}
	cfg.Mode = model.TributeMode(mode)
	cfg.LastRitualDate = nullableTime(lastRitual)
	cfg.UpdatedAt = fromMillis(updatedAt)
	return &cfg, nil
}

// TributeConfig returns the current tribute configuration, or ErrNotFound
// when it has not been initialized.
func (s *Store) TributeConfig(ctx context.Context) (*model.TributeConfig, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tributeColumns+` FROM tribute_config WHERE id = 1`)
	cfg, err := scanTribute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying tribute config: %w", err)
	}
	return cfg, nil
}

// GetOrInitTributeConfig returns the current configuration, creating it with
// default values if absent. Concurrent first calls create exactly one row.
func (s *Store) GetOrInitTributeConfig(ctx context.Context) (*model.TributeConfig, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tribute_config (id, mode, credits_accrued, resource_usage_mb, operations_tracked, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		string(model.ModeSymbolic), model.DefaultCredits, model.DefaultResourceMB,
		model.DefaultOperations, millis(s.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing tribute config: %w", err)
	}
	return s.TributeConfig(ctx)
}

// UpdateTributeMode sets the active mode and returns the updated
// configuration along with the mode it replaced.
func (s *Store) UpdateTributeMode(ctx context.Context, mode model.TributeMode) (*model.TributeConfig, model.TributeMode, error) {
	if !mode.Valid() {
		return nil, "", fmt.Errorf("%w: %q", model.ErrInvalidMode, mode)
	}

	now := s.now()
	var (
		cfg      *model.TributeConfig
		previous model.TributeMode
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var prev string
		err := tx.QueryRowContext(ctx, `SELECT mode FROM tribute_config WHERE id = 1`).Scan(&prev)
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying tribute mode: %w", err)
		}
		previous = model.TributeMode(prev)

		row := tx.QueryRowContext(ctx, `
			UPDATE tribute_config SET mode = ?, updated_at = ?
			WHERE id = 1
			RETURNING `+tributeColumns,
			string(mode), millis(now),
		)
		if cfg, err = scanTribute(row); err != nil {
			return fmt.Errorf("updating tribute mode: %w", err)
		}

		return insertTributeEvent(ctx, tx, model.TributeEvent{
			Timestamp: now,
			Kind:      model.TributeEventMode,
			Mode:      mode,
		})
	})
	if err != nil {
		return nil, "", err
	}
	return cfg, previous, nil
}

// IncrementTributeStats atomically adds the given deltas to the tribute
// counters. The addition happens inside a single UPDATE so concurrent
// callers never lose increments. Deltas that would push a counter past
// math.MaxInt64 fail with ErrCounterOverflow and change nothing.
func (s *Store) IncrementTributeStats(ctx context.Context, credits, resourceMB, operations int64) (*model.TributeConfig, error) {
	if credits < 0 || resourceMB < 0 || operations < 0 {
		return nil, fmt.Errorf("%w: credits=%d resourceMB=%d operations=%d",
			model.ErrNegativeDelta, credits, resourceMB, operations)
	}

	now := s.now()
	var cfg *model.TributeConfig
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE tribute_config SET
				credits_accrued    = credits_accrued + ?,
				resource_usage_mb  = resource_usage_mb + ?,
				operations_tracked = operations_tracked + ?,
				updated_at         = ?
			WHERE id = 1
				AND credits_accrued    <= 9223372036854775807 - ?
				AND resource_usage_mb  <= 9223372036854775807 - ?
				AND operations_tracked <= 9223372036854775807 - ?
			RETURNING `+tributeColumns,
			credits, resourceMB, operations, millis(now),
			credits, resourceMB, operations,
		)
		var err error
		cfg, err = scanTribute(row)
		if errors.Is(err, sql.ErrNoRows) {
			return missingOrOverflow(ctx, tx, credits, resourceMB, operations)
		}
		if err != nil {
			return fmt.Errorf("incrementing tribute stats: %w", err)
		}

		return insertTributeEvent(ctx, tx, model.TributeEvent{
			Timestamp:  now,
			Kind:       model.TributeEventRecord,
			Mode:       cfg.Mode,
			Credits:    credits,
			ResourceMB: resourceMB,
			Operations: operations,
		})
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// missingOrOverflow explains why the guarded increment matched no row.
func missingOrOverflow(ctx context.Context, tx *sql.Tx, credits, resourceMB, operations int64) error {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tribute_config WHERE id = 1`).Scan(&count); err != nil {
		return fmt.Errorf("checking tribute config: %w", err)
	}
	if count == 0 {
		return model.ErrNotFound
	}
	return fmt.Errorf("%w: credits=%d resourceMB=%d operations=%d",
		model.ErrCounterOverflow, credits, resourceMB, operations)
}

func insertTributeEvent(ctx context.Context, tx *sql.Tx, ev model.TributeEvent) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tribute_events (ts, kind, mode, credits, resource_mb, operations)
		VALUES (?, ?, ?, ?, ?, ?)`,
		millis(ev.Timestamp), string(ev.Kind), string(ev.Mode),
		ev.Credits, ev.ResourceMB, ev.Operations,
	)
	if err != nil {
		return fmt.Errorf("inserting tribute event: %w", err)
	}
	return nil
}

// TributeEvents returns ledger rows newer than since, oldest first.
func (s *Store) TributeEvents(ctx context.Context, since time.Time) ([]model.TributeEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, kind, mode, credits, resource_mb, operations
		FROM tribute_events
		WHERE ts >= ?
		ORDER BY ts ASC, id ASC`, millis(since))
	if err != nil {
		return nil, fmt.Errorf("querying tribute events: %w", err)
	}
	defer rows.Close()

	var events []model.TributeEvent
	for rows.Next() {
		var (
			ev         model.TributeEvent
			ts         int64
			kind, mode string
		)
		if err := rows.Scan(&ev.ID, &ts, &kind, &mode, &ev.Credits, &ev.ResourceMB, &ev.Operations); err != nil {
			return nil, fmt.Errorf("scanning tribute event: %w", err)
		}
		ev.Timestamp = fromMillis(ts)
		ev.Kind = model.TributeEventKind(kind)
		ev.Mode = model.TributeMode(mode)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// TributeHistory aggregates the ledger into per-day rows (UTC days) covering
// the last n days, oldest first. The mode of a day is the mode in effect at
// its last ledger event.
func (s *Store) TributeHistory(ctx context.Context, days int) ([]model.TributeDay, error) {
	if days < 1 {
		days = 1
	}
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	events, err := s.TributeEvents(ctx, start)
	if err != nil {
		return nil, err
	}

	var history []model.TributeDay
	for _, ev := range events {
		date := ev.Timestamp.Format(time.DateOnly)
		if len(history) == 0 || history[len(history)-1].Date != date {
			history = append(history, model.TributeDay{Date: date})
		}
		day := &history[len(history)-1]
		day.Mode = ev.Mode
		day.Credits += ev.Credits
		day.Operations += ev.Operations
	}
	return history, nil
}
