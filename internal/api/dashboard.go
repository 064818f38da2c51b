package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/bongona/FlowLandSteward/templates"
)

const (
	dashboardLogLimit    = 6
	dashboardMetricHours = 6

	defaultIntegrityScore = 98
	defaultResourceUsage  = "12.3 MB/s"
)

// fallbackOperations is the hourly series shown before any metric exists,
// oldest first.
var fallbackOperations = []int{63, 42, 51, 30, 56, 45}

type submetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type statusCard struct {
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	Icon       string     `json:"icon"`
	Color      string     `json:"color"`
	Percentage *int       `json:"percentage,omitempty"`
	Subvalue   string     `json:"subvalue,omitempty"`
	Submetric  *submetric `json:"submetric,omitempty"`
}

type logEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	Agent      string `json:"agent"`
	AgentColor string `json:"agentColor"`
	Message    string `json:"message"`
}

type hourlyMetric struct {
	Hour       string `json:"hour"`
	Operations int    `json:"operations"`
}

type flowMetrics struct {
	TotalOperations int            `json:"totalOperations"`
	PeakRate        string         `json:"peakRate"`
	HourlyMetrics   []hourlyMetric `json:"hourlyMetrics"`
}

type lastCheck struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type agentView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Endpoint    string            `json:"endpoint"`
	Status      model.AgentStatus `json:"status"`
	StatusColor string            `json:"statusColor"`
	Description string            `json:"description"`
	Kind        model.AgentKind   `json:"kind"`

	LastCheck         *lastCheck `json:"lastCheck,omitempty"`
	Mode              string     `json:"mode,omitempty"`
	Metering          string     `json:"metering,omitempty"`
	LastActivation    string     `json:"lastActivation,omitempty"`
	ActivationTrigger string     `json:"activationTrigger,omitempty"`
}

// @Summary Dashboard status cards
// @Description Returns the four headline cards: cloaked domain, flow friction layer, active agents and tribute mode
// @Produce json
// @Success 200 {array} statusCard
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/status [get]
func (s *Server) handleDashboardStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	agents, err := s.store.GetAgents(ctx)
	if err != nil {
		writeStoreError(w, r, err, "Agents", "Error fetching dashboard status")
		return
	}
	tribute, err := s.store.GetOrInitTributeConfig(ctx)
	if err != nil {
		writeStoreError(w, r, err, "Tribute configuration", "Error fetching dashboard status")
		return
	}

	integrityScore := defaultIntegrityScore
	check, err := s.store.LatestIntegrityCheck(ctx)
	switch {
	case err == nil:
		integrityScore = check.IntegrityScore
	case !errors.Is(err, model.ErrNotFound):
		writeStoreError(w, r, err, "", "Error fetching dashboard status")
		return
	}

	resourceUsage := defaultResourceUsage
	metric, err := s.store.LatestMetric(ctx)
	switch {
	case err == nil:
		resourceUsage = fmt.Sprintf("%d MB/s", metric.NetworkUsage)
	case !errors.Is(err, model.ErrNotFound):
		writeStoreError(w, r, err, "", "Error fetching dashboard status")
		return
	}

	active := 0
	for _, a := range agents {
		if a.Status == model.AgentActive || a.Status == model.AgentMetering {
			active++
		}
	}
	tributePct := creditsPercentage

	writeJSON(w, r, []statusCard{
		{
			Title:      "Cloaked Domain",
			Value:      "Active",
			Icon:       "fa-shield-alt",
			Color:      "green",
			Percentage: &integrityScore,
			Subvalue:   "Integrity",
		},
		{
			Title:     "Flow Friction Layer",
			Value:     "Metering",
			Icon:      "fa-tachometer-alt",
			Color:     "blue",
			Submetric: &submetric{Label: "Resource Usage", Value: resourceUsage},
		},
		{
			Title: "Active Agents",
			Value: fmt.Sprintf("%d/%d", active, len(agents)),
			Icon:  "fa-robot",
			Color: "purple",
		},
		{
			Title:      "Tribute Mode",
			Value:      tribute.Mode.Label(),
			Icon:       "fa-hand-holding-usd",
			Color:      "yellow",
			Percentage: &tributePct,
			Submetric:  &submetric{Label: "Credits Accrued", Value: strconv.FormatInt(tribute.CreditsAccrued, 10)},
		},
	})
}

// formatLogs shapes log rows for display, resolving each agent id against
// agents.
func formatLogs(logs []*model.ActivityLog, agents []*model.Agent) []logEntry {
	byID := make(map[int64]*model.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	out := make([]logEntry, 0, len(logs))
	for _, l := range logs {
		var agent *model.Agent
		if l.AgentID != nil {
			agent = byID[*l.AgentID]
		}
		out = append(out, logEntry{
			ID:         strconv.FormatInt(l.ID, 10),
			Timestamp:  templates.FormatClock(l.Timestamp),
			Agent:      templates.AgentTag(agent),
			AgentColor: templates.AgentColor(agent),
			Message:    l.Message,
		})
	}
	return out
}

// @Summary Recent activity
// @Description Returns the six most recent activity log entries formatted for display
// @Produce json
// @Success 200 {array} logEntry
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/logs [get]
func (s *Server) handleDashboardLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logs, err := s.store.Logs(ctx, dashboardLogLimit)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching activity logs")
		return
	}
	agents, err := s.store.GetAgents(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching activity logs")
		return
	}
	writeJSON(w, r, formatLogs(logs, agents))
}

// @Summary Flow metrics
// @Description Returns hourly operation counts over the last six hours
// @Produce json
// @Success 200 {object} flowMetrics
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/metrics [get]
func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.MetricsHistory(r.Context(), dashboardMetricHours)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching flow metrics")
		return
	}

	var points []hourlyMetric
	if len(history) == 0 {
		now := s.now()
		for i, ops := range fallbackOperations {
			ts := now.Add(-time.Duration(len(fallbackOperations)-1-i) * time.Hour)
			points = append(points, hourlyMetric{Hour: templates.FormatHour(ts), Operations: ops})
		}
	} else {
		for _, m := range history {
			points = append(points, hourlyMetric{Hour: templates.FormatHour(m.Timestamp), Operations: m.OperationsCount})
		}
	}

	resp := flowMetrics{HourlyMetrics: points}
	peak := 0
	for _, p := range points {
		resp.TotalOperations += p.Operations
		peak = max(peak, p.Operations)
	}
	resp.PeakRate = fmt.Sprintf("%d/hr", peak)
	writeJSON(w, r, resp)
}

// @Summary Dashboard tribute panel
// @Description Returns the active tribute mode and display statistics
// @Produce json
// @Success 200 {object} tributeResponse
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/tribute [get]
func (s *Server) handleDashboardTribute(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetOrInitTributeConfig(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "Tribute configuration", "Error fetching tribute data")
		return
	}
	writeJSON(w, r, tributeResponse{
		ActiveMode: cfg.Mode,
		Statistics: s.statisticsFor(cfg),
	})
}

// @Summary Agent cards
// @Description Returns every agent with kind-specific display fields
// @Produce json
// @Success 200 {array} agentView
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/agents [get]
func (s *Server) handleDashboardAgents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	agents, err := s.store.GetAgents(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching agents")
		return
	}

	check, err := s.store.LatestIntegrityCheck(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		writeStoreError(w, r, err, "", "Error fetching agents")
		return
	}
	tribute, err := s.store.GetOrInitTributeConfig(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching agents")
		return
	}

	now := s.now()
	views := make([]agentView, 0, len(agents))
	for _, a := range agents {
		v := agentView{
			ID:          strconv.FormatInt(a.ID, 10),
			Name:        a.Name,
			Endpoint:    a.Endpoint,
			Status:      a.Status,
			StatusColor: templates.StatusColor(a.Status),
			Description: a.Description,
			Kind:        a.Kind,
		}

		switch a.Kind {
		case model.KindIntegrityWatcher:
			lc := &lastCheck{Time: "Never", Status: "All Clear"}
			if check != nil {
				lc.Time = templates.FormatAge(check.Timestamp, now)
				if check.IssuesFound > 0 {
					lc.Status = fmt.Sprintf("%d issues", check.IssuesFound)
				}
			}
			v.LastCheck = lc
		case model.KindTributeSteward:
			v.Mode = tribute.Mode.DisplayName()
			v.Metering = fmt.Sprintf("%d operations", tribute.OperationsTracked)
		case model.KindReflexologist:
			v.LastActivation = "Never"
			if a.LastActive != nil {
				v.LastActivation = templates.FormatAge(*a.LastActive, now)
			}
			v.ActivationTrigger = "Monetization Ritual"
		}
		views = append(views, v)
	}
	writeJSON(w, r, views)
}
