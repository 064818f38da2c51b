package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bongona/FlowLandSteward/internal/events"
	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/bongona/FlowLandSteward/internal/notify"
	"github.com/bongona/FlowLandSteward/templates"
)

// Display percentages shown beside the tribute counters. They are fixed
// presentation values, not derived from the counters.
const (
	creditsPercentage    = 64
	resourcePercentage   = 32
	operationsPercentage = 78
)

type tributeStatistics struct {
	CreditsAccrued       int64  `json:"creditsAccrued"`
	CreditsPercentage    int    `json:"creditsPercentage"`
	ResourceUsage        string `json:"resourceUsage"`
	ResourcePercentage   int    `json:"resourcePercentage"`
	OperationsTracked    int64  `json:"operationsTracked"`
	OperationsPercentage int    `json:"operationsPercentage"`
	LastRitual           string `json:"lastRitual"`
}

type tributeResponse struct {
	ActiveMode model.TributeMode `json:"activeMode"`
	Statistics tributeStatistics `json:"statistics"`
}

type tributeHistoryRow struct {
	Date       string `json:"date"`
	Mode       string `json:"mode"`
	Credits    int64  `json:"credits"`
	Operations int64  `json:"operations"`
}

type tributeDetailResponse struct {
	tributeResponse
	History []tributeHistoryRow `json:"history"`
}

type tributeModeRequest struct {
	Mode *string `json:"mode"`
}

type tributeRecordRequest struct {
	Credits    *int64 `json:"credits"`
	ResourceMB *int64 `json:"resourceMB"`
	Operations *int64 `json:"operations"`
}

func (s *Server) statisticsFor(cfg *model.TributeConfig) tributeStatistics {
	return tributeStatistics{
		CreditsAccrued:       cfg.CreditsAccrued,
		CreditsPercentage:    creditsPercentage,
		ResourceUsage:        fmt.Sprintf("%d MB", cfg.ResourceUsageMB),
		ResourcePercentage:   resourcePercentage,
		OperationsTracked:    cfg.OperationsTracked,
		OperationsPercentage: operationsPercentage,
		LastRitual:           templates.FormatDaysAgo(cfg.LastRitualDate, s.now()),
	}
}

// @Summary Tribute configuration
// @Description Returns the active mode, statistics and per-day history from the tribute ledger
// @Produce json
// @Success 200 {object} tributeDetailResponse
// @Failure 500 {object} errorResponse
// @Router /api/tribute [get]
func (s *Server) handleTribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := s.store.GetOrInitTributeConfig(ctx)
	if err != nil {
		writeStoreError(w, r, err, "Tribute configuration", "Error fetching tribute configuration")
		return
	}
	days, err := s.store.TributeHistory(ctx, s.historyDays)
	if err != nil {
		writeStoreError(w, r, err, "", "Error fetching tribute configuration")
		return
	}

	history := make([]tributeHistoryRow, 0, len(days))
	for _, d := range days {
		history = append(history, tributeHistoryRow{
			Date:       d.Date,
			Mode:       d.Mode.Label(),
			Credits:    d.Credits,
			Operations: d.Operations,
		})
	}

	writeJSON(w, r, tributeDetailResponse{
		tributeResponse: tributeResponse{
			ActiveMode: cfg.Mode,
			Statistics: s.statisticsFor(cfg),
		},
		History: history,
	})
}

// @Summary Set tribute mode
// @Description Switches the active tribute mode
// @Accept json
// @Produce json
// @Param body body tributeModeRequest true "New mode"
// @Success 200 {object} model.TributeConfig
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/tribute/mode [post]
func (s *Server) handleTributeMode(w http.ResponseWriter, r *http.Request) {
	var req tributeModeRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Mode == nil {
		writeError(w, r, http.StatusBadRequest, "Invalid tribute mode")
		return
	}
	mode, err := model.ParseTributeMode(*req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid tribute mode")
		return
	}

	ctx := r.Context()
	cfg, previous, err := s.store.UpdateTributeMode(ctx, mode)
	if err != nil {
		writeStoreError(w, r, err, "Tribute configuration", "Error updating tribute mode")
		return
	}

	if _, err := s.recordActivity(ctx, model.KindTributeSteward,
		fmt.Sprintf("Tribute mode updated to %q by user", mode),
		map[string]any{"previousMode": previous},
	); err != nil {
		writeStoreError(w, r, err, "", "Error updating tribute mode")
		return
	}

	if previous != mode {
		s.notify(ctx, model.Notification{
			Type:      notify.TypeTributeMode,
			Severity:  notify.SeverityInfo,
			Title:     "Tribute mode changed",
			Message:   fmt.Sprintf("Tribute mode changed from %s to %s", previous.Label(), mode.Label()),
			Subject:   string(mode),
			Timestamp: cfg.UpdatedAt,
			Metadata:  map[string]string{"previous_mode": string(previous)},
		})
	}
	s.publish(ctx, events.TopicTributeModeChanged, events.TributeModeChanged{
		PreviousMode: previous,
		Tribute:      cfg,
		At:           cfg.UpdatedAt,
	})

	writeJSON(w, r, cfg)
}

// @Summary Record tribute
// @Description Adds metered credits, resource usage and operations to the tribute counters
// @Accept json
// @Produce json
// @Param body body tributeRecordRequest true "Non-negative integer deltas"
// @Success 200 {object} model.TributeConfig
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/tribute/record [post]
func (s *Server) handleTributeRecord(w http.ResponseWriter, r *http.Request) {
	var req tributeRecordRequest
	err := decodeJSON(w, r, &req)
	if err != nil || req.Credits == nil || req.ResourceMB == nil || req.Operations == nil ||
		*req.Credits < 0 || *req.ResourceMB < 0 || *req.Operations < 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "Invalid tribute data: "+err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "Invalid tribute data")
		return
	}
	credits, resourceMB, operations := *req.Credits, *req.ResourceMB, *req.Operations

	ctx := r.Context()
	cfg, err := s.store.IncrementTributeStats(ctx, credits, resourceMB, operations)
	if err != nil {
		writeStoreError(w, r, err, "Tribute configuration", "Error recording tribute")
		return
	}

	if _, err := s.recordActivity(ctx, model.KindTributeSteward,
		fmt.Sprintf("Metered %dMB of data - %d credits added", resourceMB, credits),
		map[string]any{"credits": credits, "resourceMB": resourceMB, "operations": operations},
	); err != nil {
		writeStoreError(w, r, err, "", "Error recording tribute")
		return
	}

	if _, err := s.store.RecordMetric(ctx, s.sampler.Sample(int(operations))); err != nil {
		writeStoreError(w, r, err, "", "Error recording tribute")
		return
	}

	s.publish(ctx, events.TopicTributeRecorded, events.TributeRecorded{
		Credits:    credits,
		ResourceMB: resourceMB,
		Operations: operations,
		Tribute:    cfg,
	})

	writeJSON(w, r, cfg)
}
