package api

import (
	"log/slog"
	"net/http"

	"github.com/bongona/FlowLandSteward/templates"
)

const overviewLogLimit = 10

// @Summary Overview page
// @Description Server-rendered read-only overview of tribute, agents, integrity and recent activity
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "Not Found")
		return
	}

	ctx := r.Context()
	data := templates.OverviewData{Now: s.now()}
	var err error
	if data.Tribute, err = s.store.GetOrInitTributeConfig(ctx); err != nil {
		writeStoreError(w, r, err, "", "Error rendering overview")
		return
	}
	if data.Agents, err = s.store.GetAgents(ctx); err != nil {
		writeStoreError(w, r, err, "", "Error rendering overview")
		return
	}
	if data.Logs, err = s.store.Logs(ctx, overviewLogLimit); err != nil {
		writeStoreError(w, r, err, "", "Error rendering overview")
		return
	}
	if data.Metrics, err = s.store.MetricsHistory(ctx, dashboardMetricHours); err != nil {
		writeStoreError(w, r, err, "", "Error rendering overview")
		return
	}
	if check, err := s.store.LatestIntegrityCheck(ctx); err == nil {
		data.Integrity = check
	}

	renderHTML(w, r, templates.Overview(data))
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// @Summary Health check
// @Description Returns service health. Reports 503 when the database is unreachable.
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /healthz [get]
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	resp := healthResponse{
		Status:    "ok",
		Timestamp: now.Unix(),
		Uptime:    templates.FormatDuration(max(now.Sub(s.started), 0)),
	}
	if err := s.store.Ping(r.Context()); err != nil {
		slog.Warn("health check failed", "error", err)
		resp.Status = "unavailable"
		writeJSONStatus(w, r, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, r, resp)
}
