package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// maxHistoryHours is the widest window a time.Duration can express.
const maxHistoryHours = int(math.MaxInt64 / int64(time.Hour))

const metricColumns = `id, ts, cpu_usage, memory_usage, storage_usage, network_usage, operations_count`

func scanMetric(row scanner) (*model.SystemMetric, error) {
	var (
		m  model.SystemMetric
		ts int64
	)
	if err := row.Scan(&m.ID, &ts, &m.CPUUsage, &m.MemoryUsage, &m.StorageUsage,
		&m.NetworkUsage, &m.OperationsCount); err != nil {
		return nil, err
	}
	m.Timestamp = fromMillis(ts)
	return &m, nil
}

// RecordMetric appends a metric snapshot stamped with the current time.
func (s *Store) RecordMetric(ctx context.Context, m model.SystemMetric) (*model.SystemMetric, error) {
	if m.CPUUsage < 0 || m.MemoryUsage < 0 || m.StorageUsage < 0 || m.NetworkUsage < 0 || m.OperationsCount < 0 {
		return nil, model.ErrNegativeMetric
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO system_metrics (ts, cpu_usage, memory_usage, storage_usage, network_usage, operations_count)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+metricColumns,
		millis(s.now()), m.CPUUsage, m.MemoryUsage, m.StorageUsage, m.NetworkUsage, m.OperationsCount,
	)
	recorded, err := scanMetric(row)
	if err != nil {
		return nil, fmt.Errorf("inserting system metric: %w", err)
	}
	return recorded, nil
}

// LatestMetric returns the most recent snapshot.
func (s *Store) LatestMetric(ctx context.Context) (*model.SystemMetric, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+metricColumns+` FROM system_metrics
		ORDER BY ts DESC, id DESC
		LIMIT 1`)
	m, err := scanMetric(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest metric: %w", err)
	}
	return m, nil
}

// MetricsHistory returns snapshots from the last hours, oldest first so
// charts can read them left to right. Windows wider than a time.Duration
// can hold return every snapshot.
func (s *Store) MetricsHistory(ctx context.Context, hours int) ([]*model.SystemMetric, error) {
	var since int64
	if hours < maxHistoryHours {
		since = millis(s.now().Add(-time.Duration(max(hours, 0)) * time.Hour))
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+metricColumns+` FROM system_metrics
		WHERE ts >= ?
		ORDER BY ts ASC, id ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("querying metrics history: %w", err)
	}
	defer rows.Close()

	var metrics []*model.SystemMetric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning system metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// PruneMetrics deletes snapshots older than before and reports how many
// rows were removed.
func (s *Store) PruneMetrics(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM system_metrics WHERE ts < ?`, millis(before))
	if err != nil {
		return 0, fmt.Errorf("pruning system metrics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned metrics: %w", err)
	}
	return n, nil
}
