package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/bongona/FlowLandSteward/internal/events"
	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/bongona/FlowLandSteward/internal/notify"
	"github.com/bongona/FlowLandSteward/internal/reflexologist"
	"github.com/bongona/FlowLandSteward/templates"
)

// ritualInterval is the recommended spacing between rituals.
const ritualInterval = 30 * 24 * time.Hour

// domainContextHours is the metrics window summarized on the rituals page.
const domainContextHours = 24

// analysisHours converts a ritual's analysis window to hours, saturating
// instead of wrapping for very large windows.
func analysisHours(days int) int {
	return min(days, math.MaxInt/24) * 24
}

type completedRitual struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	DaysAnalyzed    int    `json:"daysAnalyzed"`
	RecommendedMode string `json:"recommendedMode"`
	KeyInsight      string `json:"keyInsight"`
}

type scheduledRitual struct {
	ID            int64    `json:"id"`
	ScheduledDate string   `json:"scheduledDate"`
	DaysToAnalyze int      `json:"daysToAnalyze"`
	DataSelection []string `json:"dataSelection"`
}

type ritualStatus struct {
	CanPerform          bool   `json:"canPerform"`
	RecommendedInterval string `json:"recommendedInterval"`
	NextRecommendedDate string `json:"nextRecommendedDate"`
}

type ritualsResponse struct {
	LastRitual    string                      `json:"lastRitual"`
	Completed     []completedRitual           `json:"completed"`
	Scheduled     []scheduledRitual           `json:"scheduled"`
	RitualStatus  ritualStatus                `json:"ritualStatus"`
	DomainContext reflexologist.DomainContext `json:"domainContext"`
}

type dataSelectionRequest struct {
	ResourceUsage      *bool `json:"resourceUsage"`
	OperationFrequency *bool `json:"operationFrequency"`
	DomainContext      *bool `json:"domainContext"`
}

type createRitualRequest struct {
	DaysAnalyzed  *int                  `json:"daysAnalyzed"`
	DataSelection *dataSelectionRequest `json:"dataSelection"`
}

// selection returns the parsed data selection, or false when any required
// field is absent.
func (req createRitualRequest) selection() (model.DataSelection, bool) {
	ds := req.DataSelection
	if req.DaysAnalyzed == nil || ds == nil ||
		ds.ResourceUsage == nil || ds.OperationFrequency == nil || ds.DomainContext == nil {
		return model.DataSelection{}, false
	}
	return model.DataSelection{
		ResourceUsage:      *ds.ResourceUsage,
		OperationFrequency: *ds.OperationFrequency,
		DomainContext:      *ds.DomainContext,
	}, true
}

type createRitualResponse struct {
	Message  string             `json:"message"`
	RitualID int64              `json:"ritualId"`
	Status   model.RitualStatus `json:"status"`
}

type completeRitualRequest struct {
	RecommendedMode string `json:"recommendedMode"`
}

// keyInsight extracts the headline from stored insights.
func keyInsight(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var in reflexologist.Insights
	if err := json.Unmarshal(raw, &in); err != nil {
		slog.Debug("decoding ritual insights", "error", err)
		return ""
	}
	return in.KeyInsight
}

// @Summary Monetization rituals
// @Description Returns completed and pending rituals with scheduling hints and a domain context summary
// @Produce json
// @Success 200 {object} ritualsResponse
// @Failure 500 {object} errorResponse
// @Router /api/monetization/rituals [get]
func (s *Server) handleRituals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := s.store.GetOrInitTributeConfig(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching monetization rituals")
		return
	}
	rituals, err := s.store.Rituals(ctx, "")
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching monetization rituals")
		return
	}
	metrics, err := s.store.MetricsHistory(ctx, domainContextHours)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching monetization rituals")
		return
	}

	resp := ritualsResponse{
		LastRitual: templates.FormatLongDate(cfg.LastRitualDate, "Never conducted"),
		Completed:  []completedRitual{},
		Scheduled:  []scheduledRitual{},
		RitualStatus: ritualStatus{
			CanPerform:          true,
			RecommendedInterval: "30 days",
			NextRecommendedDate: s.now().Local().Format(time.DateOnly),
		},
		DomainContext: reflexologist.Summarize(metrics),
	}
	if cfg.LastRitualDate != nil {
		resp.RitualStatus.NextRecommendedDate = cfg.LastRitualDate.Add(ritualInterval).Local().Format(time.DateOnly)
	}

	for _, rt := range rituals {
		switch rt.Status {
		case model.RitualCompleted:
			c := completedRitual{
				ID:           rt.ID,
				Date:         rt.StartDate.Local().Format(time.DateOnly),
				DaysAnalyzed: rt.DaysAnalyzed,
				KeyInsight:   keyInsight(rt.Insights),
			}
			if rt.CompletionDate != nil {
				c.Date = rt.CompletionDate.Local().Format(time.DateOnly)
			}
			if rt.RecommendedMode != nil {
				c.RecommendedMode = rt.RecommendedMode.DisplayName()
			}
			resp.Completed = append(resp.Completed, c)
		case model.RitualPending:
			labels := make([]string, 0, len(rt.DataSelection))
			for _, tag := range rt.DataSelection {
				labels = append(labels, model.SelectionLabel(tag))
			}
			resp.Scheduled = append(resp.Scheduled, scheduledRitual{
				ID:            rt.ID,
				ScheduledDate: rt.StartDate.Local().Format(time.DateOnly),
				DaysToAnalyze: rt.DaysAnalyzed,
				DataSelection: labels,
			})
		}
	}

	writeJSON(w, r, resp)
}

// @Summary Start monetization ritual
// @Description Creates a pending ritual and activates the reflexologist agent
// @Accept json
// @Produce json
// @Param body body createRitualRequest true "Ritual configuration"
// @Success 200 {object} createRitualResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/monetization/rituals [post]
func (s *Server) handleCreateRitual(w http.ResponseWriter, r *http.Request) {
	var req createRitualRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid ritual configuration")
		return
	}
	selection, ok := req.selection()
	if !ok || *req.DaysAnalyzed < 1 {
		writeError(w, r, http.StatusBadRequest, "Invalid ritual configuration")
		return
	}

	ctx := r.Context()
	tags := selection.Tags()
	ritual, err := s.store.CreateRitual(ctx, *req.DaysAnalyzed, tags)
	if err != nil {
		writeStoreError(w, r, err, "", "Error initiating monetization ritual")
		return
	}

	if _, err := s.recordActivity(ctx, model.KindReflexologist,
		"Monetization ritual initiated - agent activated for analysis",
		map[string]any{"daysAnalyzed": ritual.DaysAnalyzed, "dataSelectionTypes": tags},
	); err != nil {
		writeStoreError(w, r, err, "", "Error initiating monetization ritual")
		return
	}

	s.publish(ctx, events.TopicRitualStarted, events.RitualStarted{Ritual: ritual})

	writeJSON(w, r, createRitualResponse{
		Message:  "Monetization ritual initiated successfully",
		RitualID: ritual.ID,
		Status:   ritual.Status,
	})
}

// @Summary Get ritual
// @Description Returns one ritual by id
// @Produce json
// @Param id path int true "Ritual ID"
// @Success 200 {object} model.Ritual
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/monetization/rituals/{id} [get]
func (s *Server) handleRitual(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	ritual, err := s.store.Ritual(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "Ritual", "Error fetching ritual")
		return
	}
	writeJSON(w, r, ritual)
}

// @Summary Complete ritual
// @Description Runs the reflexologist analysis and completes a pending ritual. The recommended mode may be overridden.
// @Accept json
// @Produce json
// @Param id path int true "Ritual ID"
// @Param body body completeRitualRequest false "Optional mode override"
// @Success 200 {object} model.Ritual
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/monetization/rituals/{id}/complete [post]
func (s *Server) handleCompleteRitual(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req completeRitualRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "Invalid completion request")
		return
	}
	var override model.TributeMode
	if req.RecommendedMode != "" {
		if override, err = model.ParseTributeMode(req.RecommendedMode); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()
	ritual, err := s.store.Ritual(ctx, id)
	if err != nil {
		writeStoreError(w, r, err, "Ritual", "Error completing ritual")
		return
	}
	if ritual.Status == model.RitualCompleted {
		writeStoreError(w, r, model.ErrRitualCompleted, "", "")
		return
	}

	tribute, err := s.store.GetOrInitTributeConfig(ctx)
	if err != nil {
		writeStoreError(w, r, err, "", "Error completing ritual")
		return
	}
	metrics, err := s.store.MetricsHistory(ctx, analysisHours(ritual.DaysAnalyzed))
	if err != nil {
		writeStoreError(w, r, err, "", "Error completing ritual")
		return
	}

	result := reflexologist.Analyze(reflexologist.Input{
		Ritual:  ritual,
		Tribute: tribute,
		Metrics: metrics,
	}).Override(override)
	insights, err := result.JSON()
	if err != nil {
		writeStoreError(w, r, err, "", "Error completing ritual")
		return
	}

	completed, err := s.store.CompleteRitual(ctx, id, result.Mode, insights)
	if err != nil {
		writeStoreError(w, r, err, "Ritual", "Error completing ritual")
		return
	}

	agent, err := s.recordActivity(ctx, model.KindReflexologist,
		fmt.Sprintf("Monetization ritual %d completed - recommended mode %s", id, result.Mode.DisplayName()),
		map[string]any{"ritualId": id, "recommendedMode": result.Mode},
	)
	if err != nil {
		writeStoreError(w, r, err, "", "Error completing ritual")
		return
	}
	if agent != nil {
		if _, err := s.store.UpdateAgentStatus(ctx, agent.ID, model.AgentDormant); err != nil {
			writeStoreError(w, r, err, "", "Error completing ritual")
			return
		}
	}

	s.notify(ctx, model.Notification{
		Type:      notify.TypeRitualCompleted,
		Severity:  notify.SeverityInfo,
		Title:     "Monetization ritual completed",
		Message:   fmt.Sprintf("Ritual %d recommends %s. %s", id, result.Mode.DisplayName(), result.Insights.KeyInsight),
		Subject:   fmt.Sprintf("ritual-%d", id),
		Timestamp: s.now(),
		Metadata:  map[string]string{"recommended_mode": string(result.Mode)},
	})
	s.publish(ctx, events.TopicRitualCompleted, events.RitualCompleted{Ritual: completed})

	writeJSON(w, r, completed)
}
