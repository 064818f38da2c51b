package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const integrityColumns = `id, ts, status, integrity_score, issues_found, details`

func scanIntegrityCheck(row scanner) (*model.IntegrityCheck, error) {
	var (
		c       model.IntegrityCheck
		ts      int64
		status  string
		details sql.NullString
	)
	if err := row.Scan(&c.ID, &ts, &status, &c.IntegrityScore, &c.IssuesFound, &details); err != nil {
		return nil, err
	}
	c.Timestamp = fromMillis(ts)
	c.Status = model.IntegrityStatus(status)
	if details.Valid && details.String != "" {
		if err := json.Unmarshal([]byte(details.String), &c.Details); err != nil {
			return nil, fmt.Errorf("decoding integrity details: %w", err)
		}
	}
	return &c, nil
}

// RecordIntegrityCheck appends a check stamped with the current time.
func (s *Store) RecordIntegrityCheck(ctx context.Context, status model.IntegrityStatus, score, issues int, details model.IntegrityDetails) (*model.IntegrityCheck, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown integrity status %q", status)
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidScore, score)
	}
	if issues < 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidIssues, issues)
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshaling integrity details: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO integrity_checks (ts, status, integrity_score, issues_found, details)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+integrityColumns,
		millis(s.now()), string(status), score, issues, string(raw),
	)
	c, err := scanIntegrityCheck(row)
	if err != nil {
		return nil, fmt.Errorf("inserting integrity check: %w", err)
	}
	return c, nil
}

// LatestIntegrityCheck returns the most recent check.
func (s *Store) LatestIntegrityCheck(ctx context.Context) (*model.IntegrityCheck, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+integrityColumns+` FROM integrity_checks
		ORDER BY ts DESC, id DESC
		LIMIT 1`)
	c, err := scanIntegrityCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest integrity check: %w", err)
	}
	return c, nil
}

// IntegrityChecks returns the limit most recent checks, newest first.
func (s *Store) IntegrityChecks(ctx context.Context, limit int) ([]*model.IntegrityCheck, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+integrityColumns+` FROM integrity_checks
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying integrity checks: %w", err)
	}
	defer rows.Close()

	var checks []*model.IntegrityCheck
	for rows.Next() {
		c, err := scanIntegrityCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning integrity check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// CountIntegrityChecks returns the number of recorded checks.
func (s *Store) CountIntegrityChecks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM integrity_checks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting integrity checks: %w", err)
	}
	return n, nil
}
