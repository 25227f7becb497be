package handler

import (
	"log/slog"
	"net/http"

	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// ReadmeHandler drafts and saves project READMEs
type ReadmeHandler struct {
	workspace *hubService.Workspace
	logger    *slog.Logger
}

// NewReadmeHandler creates a new README handler
func NewReadmeHandler(workspace *hubService.Workspace, logger *slog.Logger) *ReadmeHandler {
	return &ReadmeHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// GenerateReadmeRequest is the body of POST /api/projects/{id}/readme/generate
type GenerateReadmeRequest struct {
	Description string `json:"description"`
}

// GenerateReadmeResponse carries an unsaved draft
type GenerateReadmeResponse struct {
	ProjectID string `json:"project_id"`
	Content   string `json:"content"`
}

// Generate asks the assistant for a draft. Nothing is stored.
// POST /api/projects/{id}/readme/generate
func (h *ReadmeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateReadmeRequest
	if !parseBody(w, r, &req) {
		return
	}

	projectID := r.PathValue("id")
	draft, err := h.workspace.GenerateReadme(r.Context(), projectID, req.Description)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, GenerateReadmeResponse{
		ProjectID: projectID,
		Content:   draft,
	})
}

// SaveReadmeRequest is the body of PUT /api/projects/{id}/readme
type SaveReadmeRequest struct {
	Content string `json:"content"`
}

// Save creates or replaces the project's README.md
// PUT /api/projects/{id}/readme
func (h *ReadmeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveReadmeRequest
	if !parseBody(w, r, &req) {
		return
	}

	file, err := h.workspace.SaveReadme(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}
