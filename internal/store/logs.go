package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const defaultLogLimit = 10

const logColumns = `id, agent_id, ts, message, level, metadata`

func scanLog(row scanner) (*model.ActivityLog, error) {
	var (
		l        model.ActivityLog
		agentID  sql.NullInt64
		ts       int64
		level    string
		metadata sql.NullString
	)
	if err := row.Scan(&l.ID, &agentID, &ts, &l.Message, &level, &metadata); err != nil {
		return nil, err
	}
	if agentID.Valid {
		id := agentID.Int64
		l.AgentID = &id
	}
	l.Timestamp = fromMillis(ts)
	l.Level = model.LogLevel(level)
	l.Metadata = nullableJSON(metadata)
	return &l, nil
}

// CreateLog appends an activity log entry stamped with the current time.
// An empty level defaults to info.
func (s *Store) CreateLog(ctx context.Context, entry model.ActivityLog) (*model.ActivityLog, error) {
	if entry.Level == "" {
		entry.Level = model.LevelInfo
	}
	if !entry.Level.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidLevel, entry.Level)
	}

	var agentID any
	if entry.AgentID != nil {
		agentID = *entry.AgentID
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO activity_logs (agent_id, ts, message, level, metadata)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+logColumns,
		agentID, millis(s.now()), entry.Message, string(entry.Level), jsonArg(entry.Metadata),
	)
	l, err := scanLog(row)
	if err != nil {
		return nil, fmt.Errorf("inserting activity log: %w", err)
	}
	return l, nil
}

// Logs returns the limit most recent entries, newest first.
func (s *Store) Logs(ctx context.Context, limit int) ([]*model.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.queryLogs(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
}

// LogsByAgent returns the limit most recent entries attributed to agentID,
// newest first.
func (s *Store) LogsByAgent(ctx context.Context, agentID int64, limit int) ([]*model.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.queryLogs(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		WHERE agent_id = ?
		ORDER BY ts DESC, id DESC
		LIMIT ?`, agentID, limit)
}

func (s *Store) queryLogs(ctx context.Context, query string, args ...any) ([]*model.ActivityLog, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.ActivityLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
