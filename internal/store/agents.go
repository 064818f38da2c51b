package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const agentColumns = `id, name, endpoint, status, kind, description, config, last_active, created_at`

func scanAgent(row scanner) (*model.Agent, error) {
	var (
		a            model.Agent
		status, kind string
		config       sql.NullString
		lastActive   sql.NullInt64
		createdAt    int64
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Endpoint, &status, &kind, &a.Description,
		&config, &lastActive, &createdAt); err != nil {
		return nil, err
	}
	a.Status = model.AgentStatus(status)
	a.Kind = model.AgentKind(kind)
	a.Config = nullableJSON(config)
	a.LastActive = nullableTime(lastActive)
	a.CreatedAt = fromMillis(createdAt)
	return &a, nil
}

// GetAgents returns all agents ordered by id. When the table is empty the
// default agents are created first.
func (s *Store) GetAgents(ctx context.Context) ([]*model.Agent, error) {
	var agents []*model.Agent
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents`).Scan(&count); err != nil {
			return fmt.Errorf("counting agents: %w", err)
		}
		if count == 0 {
			if err := s.seedAgents(ctx, tx); err != nil {
				return err
			}
		}

		rows, err := tx.QueryContext(ctx, `SELECT `+agentColumns+` FROM agents ORDER BY id ASC`)
		if err != nil {
			return fmt.Errorf("querying agents: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAgent(rows)
			if err != nil {
				return fmt.Errorf("scanning agent: %w", err)
			}
			agents = append(agents, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *Store) queryAgent(ctx context.Context, where string, arg any) (*model.Agent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE `+where+` ORDER BY id ASC LIMIT 1`, arg)
	a, err := scanAgent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying agent: %w", err)
	}
	return a, nil
}

// Agent returns the agent with the given id.
func (s *Store) Agent(ctx context.Context, id int64) (*model.Agent, error) {
	return s.queryAgent(ctx, "id = ?", id)
}

// AgentByName returns the agent with the given display name.
func (s *Store) AgentByName(ctx context.Context, name string) (*model.Agent, error) {
	return s.queryAgent(ctx, "name = ?", name)
}

// AgentByKind returns the lowest-id agent of the given kind.
func (s *Store) AgentByKind(ctx context.Context, kind model.AgentKind) (*model.Agent, error) {
	return s.queryAgent(ctx, "kind = ?", string(kind))
}

// CreateAgent inserts a new agent and returns it with its assigned id.
func (s *Store) CreateAgent(ctx context.Context, a model.Agent) (*model.Agent, error) {
	if !a.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidStatus, a.Status)
	}
	if a.Kind == "" {
		a.Kind = model.KindOther
	}
	if !a.Kind.Valid() {
		return nil, fmt.Errorf("unknown agent kind %q", a.Kind)
	}

	var created *model.Agent
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = insertAgent(ctx, tx, a, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAgentStatus sets an agent's status. Moving to active stamps
// lastActive with the current time.
func (s *Store) UpdateAgentStatus(ctx context.Context, id int64, status model.AgentStatus) (*model.Agent, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE agents SET
			status = ?,
			last_active = CASE WHEN ? = 'active' THEN ? ELSE last_active END
		WHERE id = ?
		RETURNING `+agentColumns,
		string(status), string(status), millis(s.now()), id,
	)
	a, err := scanAgent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating agent %d status: %w", id, err)
	}
	return a, nil
}
