package store

import (
	"context"
	"log/slog"
	"time"
)

// DefaultMetricsRetention is how long synthetic metric snapshots are kept.
const DefaultMetricsRetention = 7 * 24 * time.Hour

// Pruner periodically removes metric snapshots older than the retention.
type Pruner struct {
	store     *Store
	retention time.Duration
	interval  time.Duration
}

// NewPruner creates a pruner that keeps retention worth of snapshots.
func NewPruner(store *Store, retention time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		interval:  1 * time.Hour,
	}
}

// Run starts the pruner loop. It blocks until the context is cancelled.
func (p *Pruner) Run(ctx context.Context) error {
	slog.Info("pruner started", "interval", p.interval, "retention", p.retention)

	// Run once at startup
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("pruner stopped")
			return ctx.Err()
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	cutoff := p.store.now().Add(-p.retention)
	rows, err := p.store.PruneMetrics(ctx, cutoff)
	if err != nil {
		slog.Error("pruning failed", "table", "system_metrics", "error", err)
		return
	}
	if rows > 0 {
		slog.Info("pruned old data", "table", "system_metrics", "rows", rows)
	}
}
