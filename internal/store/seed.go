package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// DefaultAgents are created on first start.
func DefaultAgents() []model.Agent {
	return []model.Agent{
		{
			Name:        "Integrity Watcher",
			Endpoint:    "/api/integrity",
			Status:      model.AgentActive,
			Kind:        model.KindIntegrityWatcher,
			Description: "Monitors domain integrity and detects violations.",
		},
		{
			Name:        "Tribute Steward",
			Endpoint:    "/api/tribute",
			Status:      model.AgentActive,
			Kind:        model.KindTributeSteward,
			Description: "Manages flow tributes and monetization.",
		},
		{
			Name:        "LLM Reflexologist",
			Endpoint:    "/api/reflexologist",
			Status:      model.AgentDormant,
			Kind:        model.KindReflexologist,
			Description: "Analyzes system patterns and proposes optimized monetization strategies.",
		},
	}
}

func insertAgent(ctx context.Context, tx *sql.Tx, a model.Agent, now time.Time) (*model.Agent, error) {
	var lastActive any
	if a.Status == model.AgentActive {
		lastActive = millis(now)
	}
	row := tx.QueryRowContext(ctx, `
		INSERT INTO agents (name, endpoint, status, kind, description, config, last_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+agentColumns,
		a.Name, a.Endpoint, string(a.Status), string(a.Kind), a.Description,
		jsonArg(a.Config), lastActive, millis(now),
	)
	created, err := scanAgent(row)
	if err != nil {
		return nil, fmt.Errorf("inserting agent %q: %w", a.Name, err)
	}
	return created, nil
}

func (s *Store) seedAgents(ctx context.Context, tx *sql.Tx) error {
	now := s.now()
	for _, a := range DefaultAgents() {
		if _, err := insertAgent(ctx, tx, a, now); err != nil {
			return err
		}
	}
	slog.Info("seeded default agents", "count", len(DefaultAgents()))
	return nil
}

// EnsureSeeded creates the default agents, the tribute configuration and an
// initial log entry when they are missing. It is safe to call repeatedly and
// is meant to run once at process start.
func (s *Store) EnsureSeeded(ctx context.Context) error {
	if _, err := s.GetAgents(ctx); err != nil {
		return fmt.Errorf("seeding agents: %w", err)
	}
	if _, err := s.GetOrInitTributeConfig(ctx); err != nil {
		return fmt.Errorf("seeding tribute config: %w", err)
	}

	var logCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&logCount); err != nil {
		return fmt.Errorf("counting activity logs: %w", err)
	}
	if logCount == 0 {
		if _, err := s.CreateLog(ctx, model.ActivityLog{
			Message: "System initialized with database storage",
			Level:   model.LevelInfo,
		}); err != nil {
			return fmt.Errorf("seeding activity log: %w", err)
		}
	}
	return nil
}
