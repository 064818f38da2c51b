package api

import (
	"fmt"
	"net/http"

	"github.com/bongona/FlowLandSteward/internal/model"
)

type agentStatusRequest struct {
	Status *string `json:"status"`
}

// @Summary Set agent status
// @Description Manually changes an agent's status. Moving to active stamps lastActive.
// @Accept json
// @Produce json
// @Param id path int true "Agent ID"
// @Param body body agentStatusRequest true "New status"
// @Success 200 {object} model.Agent
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/agents/{id}/status [patch]
func (s *Server) handleAgentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req agentStatusRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Status == nil {
		writeError(w, r, http.StatusBadRequest, "Invalid agent status")
		return
	}
	status, err := model.ParseAgentStatus(*req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	agent, err := s.store.UpdateAgentStatus(ctx, id, status)
	if err != nil {
		writeStoreError(w, r, err, "Agent", "Error updating agent status")
		return
	}

	if _, err := s.store.CreateLog(ctx, model.ActivityLog{
		AgentID: &agent.ID,
		Message: fmt.Sprintf("%s status set to %s", agent.Name, agent.Status),
		Level:   model.LevelInfo,
	}); err != nil {
		writeStoreError(w, r, err, "", "Error updating agent status")
		return
	}

	writeJSON(w, r, agent)
}
