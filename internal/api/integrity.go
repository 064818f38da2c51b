package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bongona/FlowLandSteward/internal/events"
	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/bongona/FlowLandSteward/templates"
)

const integrityLogLimit = 10

// Figures reported by a synthesized integrity check.
const (
	syntheticIntegrityScore = 98
	syntheticIssues         = 0
)

type integrityStatusResponse struct {
	Status             model.IntegrityStatus   `json:"status"`
	LastCheck          string                  `json:"lastCheck"`
	IntegrityScore     int                     `json:"integrityScore"`
	Metrics            []model.IntegrityMetric `json:"metrics"`
	ChecksPerformed    int                     `json:"checksPerformed"`
	IssuesFound        int                     `json:"issuesFound"`
	LastAnomaly        *string                 `json:"lastAnomaly"`
	SecurityStatus     string                  `json:"securityStatus"`
	CheckFrequency     string                  `json:"checkFrequency"`
	MonitoringSettings []string                `json:"monitoringSettings"`
}

type integrityCheckResponse struct {
	Status         model.IntegrityStatus `json:"status"`
	Timestamp      time.Time             `json:"timestamp"`
	IntegrityScore int                   `json:"integrityScore"`
	Message        string                `json:"message"`
}

// @Summary Integrity status
// @Description Returns the most recent integrity check
// @Produce json
// @Success 200 {object} integrityStatusResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/integrity/status [get]
func (s *Server) handleIntegrityStatus(w http.ResponseWriter, r *http.Request) {
	check, err := s.store.LatestIntegrityCheck(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "Integrity check", "Error fetching integrity status")
		return
	}

	d := check.Details
	writeJSON(w, r, integrityStatusResponse{
		Status:             check.Status,
		LastCheck:          templates.FormatShortClock(check.Timestamp),
		IntegrityScore:     check.IntegrityScore,
		Metrics:            d.Metrics,
		ChecksPerformed:    d.ChecksPerformed,
		IssuesFound:        check.IssuesFound,
		LastAnomaly:        d.LastAnomaly,
		SecurityStatus:     d.SecurityStatus,
		CheckFrequency:     d.CheckFrequency,
		MonitoringSettings: d.MonitoringSettings,
	})
}

// @Summary Integrity watcher logs
// @Description Returns the ten most recent log entries of the integrity watcher
// @Produce json
// @Success 200 {array} logEntry
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/integrity/logs [get]
func (s *Server) handleIntegrityLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	watcher, err := s.store.AgentByKind(ctx, model.KindIntegrityWatcher)
	if err != nil {
		writeStoreError(w, r, err, "Integrity Watcher agent", "Error fetching integrity logs")
		return
	}
	logs, err := s.store.LogsByAgent(ctx, watcher.ID, integrityLogLimit)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching integrity logs")
		return
	}

	out := make([]logEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, logEntry{
			ID:         strconv.FormatInt(l.ID, 10),
			Timestamp:  templates.FormatClock(l.Timestamp),
			Agent:      templates.AgentTag(watcher),
			AgentColor: templates.AgentColor(watcher),
			Message:    l.Message,
		})
	}
	writeJSON(w, r, out)
}

// @Summary Run integrity check
// @Description Records a synthesized healthy integrity check
// @Produce json
// @Success 200 {object} integrityCheckResponse
// @Failure 500 {object} errorResponse
// @Router /api/integrity/check [post]
func (s *Server) handleIntegrityCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	performed, err := s.store.CountIntegrityChecks(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error running integrity check")
		return
	}

	check, err := s.store.RecordIntegrityCheck(ctx, model.IntegrityHealthy, syntheticIntegrityScore, syntheticIssues,
		model.IntegrityDetails{
			Metrics: []model.IntegrityMetric{
				{Name: "System Integrity", Value: 98},
				{Name: "Data Sovereignty", Value: 100},
				{Name: "Resource Security", Value: 95},
				{Name: "Access Control", Value: 97},
			},
			ChecksPerformed:    performed + 1,
			SecurityStatus:     "secure",
			CheckFrequency:     "hourly",
			MonitoringSettings: []string{"resource", "network", "file", "auth"},
		})
	if err != nil {
		writeStoreError(w, r, err, "", "Error running integrity check")
		return
	}

	if _, err := s.recordActivity(ctx, model.KindIntegrityWatcher,
		"System integrity check completed successfully",
		map[string]any{"score": check.IntegrityScore},
	); err != nil {
		writeStoreError(w, r, err, "", "Error running integrity check")
		return
	}

	s.publish(ctx, events.TopicIntegrityChecked, events.IntegrityChecked{Check: check})

	writeJSON(w, r, integrityCheckResponse{
		Status:         check.Status,
		Timestamp:      check.Timestamp,
		IntegrityScore: check.IntegrityScore,
		Message:        "Integrity check completed successfully",
	})
}
