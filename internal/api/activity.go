package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// recordActivity appends an info log attributed to the first agent of kind.
// A missing agent leaves the entry unattributed.
func (s *Server) recordActivity(ctx context.Context, kind model.AgentKind, msg string, metadata any) (*model.Agent, error) {
	agent, err := s.store.AgentByKind(ctx, kind)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	entry := model.ActivityLog{Message: msg, Level: model.LevelInfo}
	if agent != nil {
		entry.AgentID = &agent.ID
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding log metadata: %w", err)
		}
		entry.Metadata = raw
	}
	if _, err := s.store.CreateLog(ctx, entry); err != nil {
		return nil, err
	}
	return agent, nil
}

// publish emits an event; failures are logged and never fail the request.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("publishing event", "topic", topic, "error", err)
	}
}
