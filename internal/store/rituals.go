package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const ritualColumns = `id, start_date, completion_date, status, days_analyzed, recommended_mode, insights, data_selection_config`

// selectionConfig is the persisted form of a ritual's data selection.
type selectionConfig struct {
	DataTypes []string `json:"dataTypes"`
}

func scanRitual(row scanner) (*model.Ritual, error) {
	var (
		r          model.Ritual
		start      int64
		completion sql.NullInt64
		status     string
		mode       sql.NullString
		insights   sql.NullString
		selection  string
	)
	if err := row.Scan(&r.ID, &start, &completion, &status, &r.DaysAnalyzed,
		&mode, &insights, &selection); err != nil {
		return nil, err
	}
	r.StartDate = fromMillis(start)
	r.CompletionDate = nullableTime(completion)
	r.Status = model.RitualStatus(status)
	if mode.Valid {
		m := model.TributeMode(mode.String)
		r.RecommendedMode = &m
	}
	r.Insights = nullableJSON(insights)

	var cfg selectionConfig
	if err := json.Unmarshal([]byte(selection), &cfg); err != nil {
		return nil, fmt.Errorf("decoding ritual data selection: %w", err)
	}
	r.DataSelection = cfg.DataTypes
	if r.DataSelection == nil {
		r.DataSelection = []string{}
	}
	return &r, nil
}

// CreateRitual starts a pending ritual. The tribute configuration's last
// ritual date and the reflexologist agent are updated in the same
// transaction.
func (s *Store) CreateRitual(ctx context.Context, daysAnalyzed int, selection []string) (*model.Ritual, error) {
	if daysAnalyzed < 1 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidDays, daysAnalyzed)
	}
	if err := model.ValidateSelectionTags(selection); err != nil {
		return nil, err
	}
	if selection == nil {
		selection = []string{}
	}
	raw, err := json.Marshal(selectionConfig{DataTypes: selection})
	if err != nil {
		return nil, fmt.Errorf("marshaling data selection: %w", err)
	}

	now := millis(s.now())
	var ritual *model.Ritual
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO monetization_rituals (start_date, status, days_analyzed, data_selection_config)
			VALUES (?, ?, ?, ?)
			RETURNING `+ritualColumns,
			now, string(model.RitualPending), daysAnalyzed, string(raw),
		)
		var err error
		if ritual, err = scanRitual(row); err != nil {
			return fmt.Errorf("inserting ritual: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE tribute_config SET last_ritual_date = ?, updated_at = ?
			WHERE id = 1`, now, now); err != nil {
			return fmt.Errorf("stamping last ritual date: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE agents SET status = ?, last_active = ?
			WHERE kind = ?`,
			string(model.AgentActive), now, string(model.KindReflexologist)); err != nil {
			return fmt.Errorf("activating reflexologist: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ritual, nil
}

// Ritual returns the ritual with the given id.
func (s *Store) Ritual(ctx context.Context, id int64) (*model.Ritual, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ritualColumns+` FROM monetization_rituals WHERE id = ?`, id)
	r, err := scanRitual(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying ritual %d: %w", id, err)
	}
	return r, nil
}

// Rituals returns rituals with the given status, newest first. An empty
// status returns every ritual.
func (s *Store) Rituals(ctx context.Context, status model.RitualStatus) ([]*model.Ritual, error) {
	query := `SELECT ` + ritualColumns + ` FROM monetization_rituals`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rituals: %w", err)
	}
	defer rows.Close()

	var rituals []*model.Ritual
	for rows.Next() {
		r, err := scanRitual(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ritual: %w", err)
		}
		rituals = append(rituals, r)
	}
	return rituals, rows.Err()
}

// CompleteRitual moves a pending ritual to completed, recording the
// recommended mode and insights. A ritual completes at most once: a second
// call returns ErrRitualCompleted.
func (s *Store) CompleteRitual(ctx context.Context, id int64, mode model.TributeMode, insights json.RawMessage) (*model.Ritual, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidMode, mode)
	}

	var ritual *model.Ritual
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE monetization_rituals SET
				status = ?, completion_date = ?, recommended_mode = ?, insights = ?
			WHERE id = ? AND status = ?
			RETURNING `+ritualColumns,
			string(model.RitualCompleted), millis(s.now()), string(mode), jsonArg(insights),
			id, string(model.RitualPending),
		)
		var err error
		ritual, err = scanRitual(row)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("completing ritual %d: %w", id, err)
		}

		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM monetization_rituals WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying ritual %d: %w", id, err)
		}
		return model.ErrRitualCompleted
	})
	if err != nil {
		return nil, err
	}
	return ritual, nil
}
