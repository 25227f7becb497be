package hub

import (
	"fmt"
	"log/slog"
	"sync"

	"devcloud/internal/domain"
	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
)

// AgentHub is the fixed registry of agent profiles. Deploying or retiring
// an agent only flips its status and logs a notification.
type AgentHub struct {
	recorder hubSvc.NotificationRecorder
	logger   *slog.Logger

	mu     sync.RWMutex
	agents []models.Agent
}

// NewAgentHub creates a hub over a copy of profiles
func NewAgentHub(profiles []models.Agent, recorder hubSvc.NotificationRecorder, logger *slog.Logger) *AgentHub {
	return &AgentHub{
		recorder: recorder,
		logger:   logger,
		agents:   append([]models.Agent(nil), profiles...),
	}
}

// List returns every profile in registry order
func (h *AgentHub) List() []models.Agent {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]models.Agent(nil), h.agents...)
}

// SetStatus deploys (active) or retires (idle) an agent
func (h *AgentHub) SetStatus(id string, status models.AgentStatus) (models.Agent, error) {
	if !status.Valid() {
		return models.Agent{}, &domain.ValidationError{Message: fmt.Sprintf("unknown agent status %q", status)}
	}

	h.mu.Lock()
	idx := -1
	for i := range h.agents {
		if h.agents[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.mu.Unlock()
		return models.Agent{}, &domain.NotFoundError{Message: fmt.Sprintf("agent %q not found", id)}
	}
	h.agents[idx].Status = status
	agent := h.agents[idx]
	h.mu.Unlock()

	action := "Retired"
	if status == models.AgentActive {
		action = "Deployed"
	}
	h.logger.Info("agent status changed", "agent_id", id, "status", status)
	h.recorder.Record(fmt.Sprintf("%s has been %s.", agent.Name, action), models.NotifyInfo)
	return agent, nil
}
