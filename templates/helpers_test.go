package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	ts := time.Date(2026, 4, 1, 9, 5, 7, 0, time.Local)
	assert.Equal(t, "09:05:07", FormatClock(ts))
	assert.Equal(t, "09:05", FormatShortClock(ts))
	assert.Equal(t, "9h", FormatHour(ts))
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "Never conducted", FormatLongDate(nil, "Never conducted"))
	ts := time.Date(2026, 6, 12, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "June 12, 2026", FormatLongDate(&ts, ""))
}

func TestFormatDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Never", FormatDaysAgo(nil, now))

	threeDays := now.Add(-3*24*time.Hour - time.Hour)
	assert.Equal(t, "3 days ago", FormatDaysAgo(&threeDays, now))

	recent := now.Add(-time.Hour)
	assert.Equal(t, "0 days ago", FormatDaysAgo(&recent, now))

	future := now.Add(time.Hour)
	assert.Equal(t, "0 days ago", FormatDaysAgo(&future, now))
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 20 * time.Second, "just now"},
		{"one minute", time.Minute, "1 minute ago"},
		{"minutes", 3 * time.Minute, "3 minutes ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"days", 50 * time.Hour, "2 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(now.Add(-tt.ago), now))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "5m 30s", FormatDuration(5*time.Minute+30*time.Second))
	assert.Equal(t, "2h 15m", FormatDuration(2*time.Hour+15*time.Minute))
}

func TestAgentTagAndColor(t *testing.T) {
	tests := []struct {
		name       string
		agent      *model.Agent
		tag, color string
	}{
		{"nil", nil, "SYSTEM", "gray"},
		{"watcher", &model.Agent{Name: "Integrity Watcher", Kind: model.KindIntegrityWatcher}, "INTEGRITY_WATCHER", "green"},
		{"steward", &model.Agent{Name: "Tribute Steward", Kind: model.KindTributeSteward}, "TRIBUTE_STEWARD", "blue"},
		{"reflexologist", &model.Agent{Name: "LLM Reflexologist", Kind: model.KindReflexologist}, "REFLEXOLOGIST", "purple"},
		{"other", &model.Agent{Name: "flow friction", Kind: model.KindOther}, "FLOW", "yellow"},
		{"unnamed", &model.Agent{Kind: model.KindOther}, "SYSTEM", "yellow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tag, AgentTag(tt.agent))
			assert.Equal(t, tt.color, AgentColor(tt.agent))
		})
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "green", StatusColor(model.AgentActive))
	assert.Equal(t, "blue", StatusColor(model.AgentMetering))
	assert.Equal(t, "purple", StatusColor(model.AgentDormant))
	assert.Equal(t, "gray", StatusColor(model.AgentInactive))
}

func TestModeColor(t *testing.T) {
	assert.Equal(t, "yellow", ModeColor(model.ModeSymbolic))
	assert.Equal(t, "green", ModeColor(model.ModeDonation))
	assert.Equal(t, "purple", ModeColor(model.ModeRoyalty))
	assert.Equal(t, "red", ModeColor(model.ModeFriction))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, 0, ProgressBarWidth(-5))
	assert.Equal(t, 55, ProgressBarWidth(55))
	assert.Equal(t, 100, ProgressBarWidth(140))

	assert.Equal(t, "bar-ok", ProgressBarClass(10))
	assert.Equal(t, "bar-warning", ProgressBarClass(80))
	assert.Equal(t, "bar-critical", ProgressBarClass(95))
}

func TestSparklinePolyline(t *testing.T) {
	assert.Empty(t, SparklinePolyline(nil, 240, 40))

	single := []*model.SystemMetric{{OperationsCount: 5}}
	assert.Equal(t, "120.0,40.0", SparklinePolyline(single, 240, 40))

	series := []*model.SystemMetric{{OperationsCount: 0}, {OperationsCount: 10}, {OperationsCount: 5}}
	assert.Equal(t, "0.0,40.0 120.0,0.0 240.0,20.0", SparklinePolyline(series, 240, 40))
}

func TestOverview_Render(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	watcherID := int64(1)
	data := OverviewData{
		Now:     now,
		Tribute: &model.TributeConfig{Mode: model.ModeRoyalty, CreditsAccrued: 245},
		Agents: []*model.Agent{
			{ID: 1, Name: "Integrity Watcher", Endpoint: "/api/integrity", Status: model.AgentActive, Kind: model.KindIntegrityWatcher},
			{ID: 2, Name: "<script>", Status: model.AgentDormant, Kind: model.KindOther},
		},
		Logs: []*model.ActivityLog{
			{AgentID: &watcherID, Timestamp: now, Message: "check ok"},
			{Timestamp: now, Message: "boot"},
		},
		Metrics:   []*model.SystemMetric{{OperationsCount: 1}, {OperationsCount: 3}},
		Integrity: &model.IntegrityCheck{Status: model.IntegrityHealthy, IntegrityScore: 98, Timestamp: now.Add(-3 * time.Minute)},
	}

	var buf bytes.Buffer
	require.NoError(t, Overview(data).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "Royalty")
	assert.Contains(t, html, "245 credits")
	assert.Contains(t, html, "Never")
	assert.Contains(t, html, "INTEGRITY_WATCHER")
	assert.Contains(t, html, "SYSTEM")
	assert.Contains(t, html, "3 minutes ago")
	assert.Contains(t, html, "<polyline")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestOverview_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Overview(OverviewData{Now: time.Now()}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "FlowLand Steward")
	assert.NotContains(t, buf.String(), "<svg")
}

func FuzzAgentTag(f *testing.F) {
	for _, seed := range []string{"Integrity Watcher", "", "  ", "flow friction", "ß eszett"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, name string) {
		tag := AgentTag(&model.Agent{Name: name, Kind: model.KindOther})
		if tag == "" {
			t.Fatalf("AgentTag(%q) is empty", name)
		}
		if strings.ContainsAny(tag, " \t") {
			t.Fatalf("AgentTag(%q) = %q contains whitespace", name, tag)
		}
	})
}
