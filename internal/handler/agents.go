package handler

import (
	"log/slog"
	"net/http"

	models "devcloud/internal/domain/models/hub"
	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// AgentHandler serves the agent hub
type AgentHandler struct {
	agents *hubService.AgentHub
	logger *slog.Logger
}

// NewAgentHandler creates a new agent hub handler
func NewAgentHandler(agents *hubService.AgentHub, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{
		agents: agents,
		logger: logger,
	}
}

// AgentStatusRequest is the body of PUT /api/agents/{id}/status
type AgentStatusRequest struct {
	Status models.AgentStatus `json:"status"`
}

// List returns every agent profile
// GET /api/agents
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.agents.List())
}

// SetStatus deploys or retires an agent
// PUT /api/agents/{id}/status
func (h *AgentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req AgentStatusRequest
	if !parseBody(w, r, &req) {
		return
	}

	agent, err := h.agents.SetStatus(r.PathValue("id"), req.Status)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, agent)
}
