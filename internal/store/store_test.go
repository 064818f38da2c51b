package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestStore(t testing.TB) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newSeededStore(t testing.TB) *Store {
	t.Helper()
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeeded(context.Background()))
	return s
}

func TestNew(t *testing.T) {
	s := newTestStore(t)
	assert.NotNil(t, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/dir/test.db")
	assert.Error(t, err)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSeeded(context.Background()))
	_, _, err = s.UpdateTributeMode(context.Background(), model.ModeRoyalty)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	cfg, err := s.TributeConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ModeRoyalty, cfg.Mode)
}

func TestEnsureSeeded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx))
	require.NoError(t, s.EnsureSeeded(ctx))

	agents, err := s.GetAgents(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 3)
	assert.Equal(t, "Integrity Watcher", agents[0].Name)
	assert.Equal(t, model.AgentActive, agents[0].Status)
	assert.NotNil(t, agents[0].LastActive)
	assert.Equal(t, model.KindTributeSteward, agents[1].Kind)
	assert.Equal(t, model.AgentDormant, agents[2].Status)
	assert.Nil(t, agents[2].LastActive)

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ModeSymbolic, cfg.Mode)
	assert.Equal(t, int64(model.DefaultCredits), cfg.CreditsAccrued)
	assert.Equal(t, int64(model.DefaultResourceMB), cfg.ResourceUsageMB)
	assert.Equal(t, int64(model.DefaultOperations), cfg.OperationsTracked)
	assert.Nil(t, cfg.LastRitualDate)

	logs, err := s.Logs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "System initialized with database storage", logs[0].Message)
}

func TestGetAgents_SeedsEmptyTable(t *testing.T) {
	s := newTestStore(t)
	agents, err := s.GetAgents(context.Background())
	require.NoError(t, err)
	assert.Len(t, agents, len(DefaultAgents()))
}

// --- Tribute ---

func TestTributeConfig_NotInitialized(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.TributeConfig(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, _, err = s.UpdateTributeMode(ctx, model.ModeDonation)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.IncrementTributeStats(ctx, 1, 1, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGetOrInitTributeConfig_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := s.GetOrInitTributeConfig(ctx)
			return err
		})
	}
	require.NoError(t, g.Wait())

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM tribute_config`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestUpdateTributeMode_RoundTrip(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	previous := model.ModeSymbolic
	for _, mode := range []model.TributeMode{model.ModeDonation, model.ModeRoyalty, model.ModeFriction, model.ModeSymbolic} {
		cfg, prev, err := s.UpdateTributeMode(ctx, mode)
		require.NoError(t, err)
		assert.Equal(t, mode, cfg.Mode)
		assert.Equal(t, previous, prev)

		got, err := s.TributeConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, mode, got.Mode)
		previous = mode
	}
}

func TestUpdateTributeMode_Invalid(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, _, err := s.UpdateTributeMode(ctx, "bogus")
	assert.ErrorIs(t, err, model.ErrInvalidMode)
	assert.True(t, model.IsValidation(err))

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ModeSymbolic, cfg.Mode)
}

func TestUpdateTributeMode_KeepsCounters(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	before, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	after, _, err := s.UpdateTributeMode(ctx, model.ModeFriction)
	require.NoError(t, err)

	assert.Equal(t, before.CreditsAccrued, after.CreditsAccrued)
	assert.Equal(t, before.ResourceUsageMB, after.ResourceUsageMB)
	assert.Equal(t, before.OperationsTracked, after.OperationsTracked)
}

func TestIncrementTributeStats_Sum(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	deltas := [][3]int64{{10, 20, 30}, {0, 0, 0}, {5, 1, 7}, {100, 0, 2}}
	var c, r, o int64
	for _, d := range deltas {
		_, err := s.IncrementTributeStats(ctx, d[0], d[1], d[2])
		require.NoError(t, err)
		c, r, o = c+d[0], r+d[1], o+d[2]
	}

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCredits+c, cfg.CreditsAccrued)
	assert.Equal(t, model.DefaultResourceMB+r, cfg.ResourceUsageMB)
	assert.Equal(t, model.DefaultOperations+o, cfg.OperationsTracked)
}

func TestIncrementTributeStats_Negative(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.IncrementTributeStats(ctx, -1, 0, 0)
	assert.ErrorIs(t, err, model.ErrNegativeDelta)

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(model.DefaultCredits), cfg.CreditsAccrued)
}

func TestIncrementTributeStats_Overflow(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		name             string
		credits, mb, ops int64
	}{
		{"credits", math.MaxInt64, 0, 0},
		{"resource usage", 0, math.MaxInt64, 0},
		{"operations", 0, 0, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.IncrementTributeStats(ctx, tt.credits, tt.mb, tt.ops)
			require.ErrorIs(t, err, model.ErrCounterOverflow)
			assert.True(t, model.IsValidation(err))

			cfg, err := s.TributeConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(model.DefaultCredits), cfg.CreditsAccrued)
			assert.Equal(t, int64(model.DefaultResourceMB), cfg.ResourceUsageMB)
			assert.Equal(t, int64(model.DefaultOperations), cfg.OperationsTracked)
		})
	}
}

func TestIncrementTributeStats_FillsToMax(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	cfg, err := s.IncrementTributeStats(ctx, math.MaxInt64-model.DefaultCredits, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), cfg.CreditsAccrued)

	_, err = s.IncrementTributeStats(ctx, 1, 0, 0)
	assert.ErrorIs(t, err, model.ErrCounterOverflow)

	_, err = s.IncrementTributeStats(ctx, 0, 1, 1)
	assert.NoError(t, err)
}

func TestIncrementTributeStats_Concurrent(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	const k = 50

	var g errgroup.Group
	for range k {
		g.Go(func() error {
			_, err := s.IncrementTributeStats(ctx, 1, 1, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(model.DefaultCredits+k), cfg.CreditsAccrued)
	assert.Equal(t, int64(model.DefaultResourceMB+k), cfg.ResourceUsageMB)
	assert.Equal(t, int64(model.DefaultOperations+k), cfg.OperationsTracked)
}

func TestTributeHistory(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return today.AddDate(0, 0, -10) }
	_, err := s.IncrementTributeStats(ctx, 99, 0, 99)
	require.NoError(t, err)

	s.now = func() time.Time { return today.AddDate(0, 0, -1) }
	_, err = s.IncrementTributeStats(ctx, 10, 1, 4)
	require.NoError(t, err)
	_, _, err = s.UpdateTributeMode(ctx, model.ModeDonation)
	require.NoError(t, err)

	s.now = func() time.Time { return today }
	_, err = s.IncrementTributeStats(ctx, 5, 1, 2)
	require.NoError(t, err)
	_, err = s.IncrementTributeStats(ctx, 3, 1, 1)
	require.NoError(t, err)

	history, err := s.TributeHistory(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "2026-03-09", history[0].Date)
	assert.Equal(t, model.ModeDonation, history[0].Mode)
	assert.Equal(t, int64(10), history[0].Credits)
	assert.Equal(t, int64(4), history[0].Operations)

	assert.Equal(t, "2026-03-10", history[1].Date)
	assert.Equal(t, int64(8), history[1].Credits)
	assert.Equal(t, int64(3), history[1].Operations)
}

// --- Rituals ---

func TestRitualLifecycle(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	r, err := s.CreateRitual(ctx, 7, []string{model.SelectResourceUsage, model.SelectDomainContext})
	require.NoError(t, err)
	assert.Equal(t, model.RitualPending, r.Status)
	assert.Equal(t, 7, r.DaysAnalyzed)
	assert.Nil(t, r.CompletionDate)
	assert.Nil(t, r.RecommendedMode)
	assert.Equal(t, []string{model.SelectResourceUsage, model.SelectDomainContext}, r.DataSelection)

	cfg, err := s.TributeConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg.LastRitualDate)
	assert.Equal(t, r.StartDate, *cfg.LastRitualDate)

	refl, err := s.AgentByKind(ctx, model.KindReflexologist)
	require.NoError(t, err)
	assert.Equal(t, model.AgentActive, refl.Status)
	require.NotNil(t, refl.LastActive)

	insights := json.RawMessage(`{"keyInsight":"steady"}`)
	done, err := s.CompleteRitual(ctx, r.ID, model.ModeRoyalty, insights)
	require.NoError(t, err)
	assert.Equal(t, model.RitualCompleted, done.Status)
	require.NotNil(t, done.CompletionDate)
	require.NotNil(t, done.RecommendedMode)
	assert.Equal(t, model.ModeRoyalty, *done.RecommendedMode)
	assert.JSONEq(t, string(insights), string(done.Insights))

	_, err = s.CompleteRitual(ctx, r.ID, model.ModeDonation, nil)
	assert.ErrorIs(t, err, model.ErrRitualCompleted)

	got, err := s.Ritual(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModeRoyalty, *got.RecommendedMode)
}

func TestCreateRitual_Validation(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.CreateRitual(ctx, 0, nil)
	assert.ErrorIs(t, err, model.ErrInvalidDays)

	_, err = s.CreateRitual(ctx, 3, []string{"weather"})
	assert.ErrorIs(t, err, model.ErrInvalidSelector)

	rituals, err := s.Rituals(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rituals)
}

func TestCreateRitual_EmptySelection(t *testing.T) {
	s := newSeededStore(t)
	r, err := s.CreateRitual(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, r.DataSelection)
}

func TestCompleteRitual_Errors(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.CompleteRitual(ctx, 999, model.ModeDonation, nil)
	assert.ErrorIs(t, err, model.ErrNotFound)

	r, err := s.CreateRitual(ctx, 2, nil)
	require.NoError(t, err)
	_, err = s.CompleteRitual(ctx, r.ID, "bogus", nil)
	assert.ErrorIs(t, err, model.ErrInvalidMode)

	got, err := s.Ritual(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RitualPending, got.Status)
}

func TestCompleteRitual_ConcurrentOnce(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	r, err := s.CreateRitual(ctx, 3, nil)
	require.NoError(t, err)

	results := make([]error, 10)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			_, results[i] = s.CompleteRitual(ctx, r.ID, model.ModeSymbolic, nil)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, conflict int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, model.ErrRitualCompleted):
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, conflict)
}

func TestRituals_FilterAndOrder(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []int64
	for i := range 3 {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		r, err := s.CreateRitual(ctx, i+1, nil)
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	_, err := s.CompleteRitual(ctx, ids[0], model.ModeDonation, nil)
	require.NoError(t, err)

	all, err := s.Rituals(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	pending, err := s.Rituals(ctx, model.RitualPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	completed, err := s.Rituals(ctx, model.RitualCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, ids[0], completed[0].ID)
}

func TestRitual_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Ritual(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// --- Logs ---

func TestLogs_LimitAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i := range 10 {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		_, err := s.CreateLog(ctx, model.ActivityLog{Message: string(rune('a' + i))})
		require.NoError(t, err)
	}

	logs, err := s.Logs(ctx, 5)
	require.NoError(t, err)
	require.Len(t, logs, 5)
	assert.Equal(t, "j", logs[0].Message)
	assert.Equal(t, "f", logs[4].Message)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].Timestamp.After(logs[i-1].Timestamp))
	}
}

func TestLogs_SameTimestampOrderedByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fixed := time.Now()
	s.now = func() time.Time { return fixed }

	for _, msg := range []string{"first", "second", "third"} {
		_, err := s.CreateLog(ctx, model.ActivityLog{Message: msg})
		require.NoError(t, err)
	}

	logs, err := s.Logs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "third", logs[0].Message)
	assert.Equal(t, "first", logs[2].Message)
}

func TestCreateLog_Defaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	l, err := s.CreateLog(ctx, model.ActivityLog{
		Message:  "hello",
		Metadata: json.RawMessage(`{"previousMode":"symbolic"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, model.LevelInfo, l.Level)
	assert.Nil(t, l.AgentID)
	assert.JSONEq(t, `{"previousMode":"symbolic"}`, string(l.Metadata))

	_, err = s.CreateLog(ctx, model.ActivityLog{Message: "x", Level: "loud"})
	assert.ErrorIs(t, err, model.ErrInvalidLevel)
}

func TestLogsByAgent(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	watcher, err := s.AgentByKind(ctx, model.KindIntegrityWatcher)
	require.NoError(t, err)
	steward, err := s.AgentByKind(ctx, model.KindTributeSteward)
	require.NoError(t, err)

	for range 3 {
		_, err := s.CreateLog(ctx, model.ActivityLog{AgentID: &watcher.ID, Message: "check"})
		require.NoError(t, err)
	}
	_, err = s.CreateLog(ctx, model.ActivityLog{AgentID: &steward.ID, Message: "tribute"})
	require.NoError(t, err)

	logs, err := s.LogsByAgent(ctx, watcher.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for _, l := range logs {
		require.NotNil(t, l.AgentID)
		assert.Equal(t, watcher.ID, *l.AgentID)
	}
}

// --- Metrics ---

func TestMetricsHistory_Window(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.now = func() time.Time { return now.Add(-2 * time.Hour) }
	_, err := s.RecordMetric(ctx, model.SystemMetric{CPUUsage: 1})
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(-30 * time.Minute) }
	_, err = s.RecordMetric(ctx, model.SystemMetric{CPUUsage: 2})
	require.NoError(t, err)

	s.now = func() time.Time { return now }
	metrics, err := s.MetricsHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, 2, metrics[0].CPUUsage)

	metrics, err = s.MetricsHistory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, 1, metrics[0].CPUUsage)
}

func TestMetricsHistory_WideWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.now = func() time.Time { return now.Add(-48 * time.Hour) }
	_, err := s.RecordMetric(ctx, model.SystemMetric{CPUUsage: 1})
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	for _, hours := range []int{200000 * 24, maxHistoryHours, maxHistoryHours + 1, math.MaxInt} {
		metrics, err := s.MetricsHistory(ctx, hours)
		require.NoError(t, err, hours)
		assert.Len(t, metrics, 1, "hours=%d", hours)
	}

	metrics, err := s.MetricsHistory(ctx, -5)
	require.NoError(t, err)
	assert.Empty(t, metrics)
}

func TestRecordMetric(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestMetric(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.RecordMetric(ctx, model.SystemMetric{CPUUsage: -1})
	assert.ErrorIs(t, err, model.ErrNegativeMetric)

	m, err := s.RecordMetric(ctx, model.SystemMetric{
		CPUUsage: 40, MemoryUsage: 50, StorageUsage: 20, NetworkUsage: 10, OperationsCount: 7,
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)

	latest, err := s.LatestMetric(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.ID, latest.ID)
	assert.Equal(t, 7, latest.OperationsCount)
	assert.Equal(t, time.UTC, latest.Timestamp.Location())
}

func TestPruneMetrics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.now = func() time.Time { return now.Add(-time.Hour) }
	_, err := s.RecordMetric(ctx, model.SystemMetric{})
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	_, err = s.RecordMetric(ctx, model.SystemMetric{})
	require.NoError(t, err)

	n, err := s.PruneMetrics(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// --- Integrity ---

func TestIntegrityChecks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestIntegrityCheck(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	details := model.IntegrityDetails{
		Metrics:            []model.IntegrityMetric{{Name: "Data Sovereignty", Value: 100}},
		ChecksPerformed:    1,
		SecurityStatus:     "Optimal",
		CheckFrequency:     "Every 30 minutes",
		MonitoringSettings: []string{"Realtime"},
	}
	c, err := s.RecordIntegrityCheck(ctx, model.IntegrityHealthy, 98, 0, details)
	require.NoError(t, err)
	assert.Equal(t, details, c.Details)

	_, err = s.RecordIntegrityCheck(ctx, model.IntegrityWarning, 71, 2, model.IntegrityDetails{})
	require.NoError(t, err)

	latest, err := s.LatestIntegrityCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.IntegrityWarning, latest.Status)
	assert.Equal(t, 71, latest.IntegrityScore)

	n, err := s.CountIntegrityChecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	checks, err := s.IntegrityChecks(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, checks, 1)
}

func TestRecordIntegrityCheck_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordIntegrityCheck(ctx, model.IntegrityHealthy, 101, 0, model.IntegrityDetails{})
	assert.ErrorIs(t, err, model.ErrInvalidScore)

	_, err = s.RecordIntegrityCheck(ctx, model.IntegrityHealthy, 50, -1, model.IntegrityDetails{})
	assert.ErrorIs(t, err, model.ErrInvalidIssues)

	_, err = s.RecordIntegrityCheck(ctx, "sparkly", 50, 0, model.IntegrityDetails{})
	assert.Error(t, err)
}

// --- Agents ---

func TestUpdateAgentStatus(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	refl, err := s.AgentByName(ctx, "LLM Reflexologist")
	require.NoError(t, err)
	require.Nil(t, refl.LastActive)

	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a, err := s.UpdateAgentStatus(ctx, refl.ID, model.AgentActive)
	require.NoError(t, err)
	assert.Equal(t, model.AgentActive, a.Status)
	require.NotNil(t, a.LastActive)
	assert.Equal(t, fixed, *a.LastActive)

	s.now = func() time.Time { return fixed.Add(time.Hour) }
	a, err = s.UpdateAgentStatus(ctx, refl.ID, model.AgentDormant)
	require.NoError(t, err)
	assert.Equal(t, model.AgentDormant, a.Status)
	assert.Equal(t, fixed, *a.LastActive)

	_, err = s.UpdateAgentStatus(ctx, refl.ID, "sleepy")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = s.UpdateAgentStatus(ctx, 999, model.AgentActive)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateAgent(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	a, err := s.CreateAgent(ctx, model.Agent{
		Name:        "Cartographer",
		Endpoint:    "/api/map",
		Status:      model.AgentMetering,
		Description: "Maps flows.",
		Config:      json.RawMessage(`{"depth":3}`),
	})
	require.NoError(t, err)
	assert.Equal(t, model.KindOther, a.Kind)
	assert.JSONEq(t, `{"depth":3}`, string(a.Config))

	got, err := s.Agent(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cartographer", got.Name)

	_, err = s.CreateAgent(ctx, model.Agent{Name: "Dup", Status: "nope"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = s.Agent(ctx, 12345)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func BenchmarkIncrementTributeStats(b *testing.B) {
	s := newSeededStore(b)
	ctx := context.Background()
	for b.Loop() {
		if _, err := s.IncrementTributeStats(ctx, 1, 1, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLogs(b *testing.B) {
	s := newSeededStore(b)
	ctx := context.Background()
	for i := range 500 {
		_, err := s.CreateLog(ctx, model.ActivityLog{Message: fmt.Sprintf("entry %d", i)})
		require.NoError(b, err)
	}
	for b.Loop() {
		if _, err := s.Logs(ctx, 10); err != nil {
			b.Fatal(err)
		}
	}
}
