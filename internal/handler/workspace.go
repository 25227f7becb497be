package handler

import (
	"log/slog"
	"net/http"

	models "devcloud/internal/domain/models/hub"
	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// WorkspaceHandler serves the navigation state: view, selector, search,
// folder stack and overlay
type WorkspaceHandler struct {
	workspace *hubService.Workspace
	logger    *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspace *hubService.Workspace, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// HealthCheck handles GET /health
func (h *WorkspaceHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// GetView returns the current view
// GET /api/view
func (h *WorkspaceHandler) GetView(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workspace.View())
}

// SelectView switches the top-level scope
// PUT /api/view/selector
func (h *WorkspaceHandler) SelectView(w http.ResponseWriter, r *http.Request) {
	var sel models.Selector
	if !parseBody(w, r, &sel) {
		return
	}
	if sel.Kind == "" {
		httputil.RespondError(w, http.StatusBadRequest, "selector type is required")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.workspace.SelectView(sel))
}

// SearchRequest is the body of PUT /api/view/search
type SearchRequest struct {
	Query string `json:"query"`
}

// SetSearch sets the search query. An empty query ends the search.
// PUT /api/view/search
func (h *WorkspaceHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !parseBody(w, r, &req) {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.workspace.SetSearchQuery(req.Query))
}

// OpenItem descends into a folder or opens a file preview
// POST /api/view/items/{id}/open
func (h *WorkspaceHandler) OpenItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.workspace.OpenItem(r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GoBack leaves the innermost folder
// POST /api/view/back
func (h *WorkspaceHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	view, err := h.workspace.GoBack()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GoToBreadcrumb jumps to a breadcrumb; index 0 is the root
// POST /api/view/breadcrumbs/{index}
func (h *WorkspaceHandler) GoToBreadcrumb(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r, "index")
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "breadcrumb index must be a non-negative integer")
		return
	}

	view, err := h.workspace.GoToBreadcrumb(index)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// OverlayRequest is the body of PUT /api/view/overlay
type OverlayRequest struct {
	Kind     models.OverlayKind `json:"kind"`
	TargetID string             `json:"target_id,omitempty"`
}

// OpenOverlay makes one overlay active
// PUT /api/view/overlay
func (h *WorkspaceHandler) OpenOverlay(w http.ResponseWriter, r *http.Request) {
	var req OverlayRequest
	if !parseBody(w, r, &req) {
		return
	}

	overlay, err := h.workspace.OpenOverlay(req.Kind, req.TargetID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, overlay)
}

// CloseOverlay returns to no overlay
// DELETE /api/view/overlay
func (h *WorkspaceHandler) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workspace.CloseOverlay())
}

// ListBackends returns services followed by local drives
// GET /api/backends
func (h *WorkspaceHandler) ListBackends(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workspace.Backends())
}

// ListProjects returns all projects
// GET /api/projects
func (h *WorkspaceHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workspace.Projects())
}
