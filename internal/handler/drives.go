package handler

import (
	"log/slog"
	"net/http"

	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// DriveHandler handles local drives, repository clone/push, sync between
// backends and the AI analyzers
type DriveHandler struct {
	workspace *hubService.Workspace
	logger    *slog.Logger
}

// NewDriveHandler creates a new drive handler
func NewDriveHandler(workspace *hubService.Workspace, logger *slog.Logger) *DriveHandler {
	return &DriveHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// AddDrive creates an empty local drive seeded with starter files
// POST /api/drives
// Returns 409 if a backend already uses the name
func (h *DriveHandler) AddDrive(w http.ResponseWriter, r *http.Request) {
	var req hubSvc.AddDriveRequest
	if !parseBody(w, r, &req) {
		return
	}

	result, err := h.workspace.AddLocalDrive(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// Clone simulates cloning a repository into a new local drive
// POST /api/drives/clone
func (h *DriveHandler) Clone(w http.ResponseWriter, r *http.Request) {
	var req hubSvc.CloneRequest
	if !parseBody(w, r, &req) {
		return
	}

	result, err := h.workspace.CloneRepository(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// PushRequest is the body of POST /api/drives/{id}/push
type PushRequest struct {
	CommitMessage string `json:"commit_message"`
}

// Push simulates pushing a local drive
// POST /api/drives/{id}/push
func (h *DriveHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req PushRequest
	if !parseBody(w, r, &req) {
		return
	}

	err := h.workspace.PushRepository(r.Context(), &hubSvc.PushRequest{
		DriveID:       r.PathValue("id"),
		CommitMessage: req.CommitMessage,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Sync copies the top-level items of one backend into another
// POST /api/sync
func (h *DriveHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req hubSvc.SyncRequest
	if !parseBody(w, r, &req) {
		return
	}

	result, err := h.workspace.Sync(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// AnalysisResponse carries assistant output for the analyzer overlays
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// AnalyzeBackend summarises the files of one backend
// POST /api/backends/{id}/analyze
func (h *DriveHandler) AnalyzeBackend(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.workspace.AnalyzeBackend(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, AnalysisResponse{Analysis: analysis})
}

// EcosystemRequest is the body of POST /api/ecosystem/analyze
type EcosystemRequest struct {
	Listing string `json:"listing"`
	Notes   string `json:"notes,omitempty"`
}

// AnalyzeEcosystem analyses a pasted directory listing
// POST /api/ecosystem/analyze
func (h *DriveHandler) AnalyzeEcosystem(w http.ResponseWriter, r *http.Request) {
	var req EcosystemRequest
	if !parseBody(w, r, &req) {
		return
	}

	analysis, err := h.workspace.AnalyzeEcosystem(r.Context(), req.Listing, req.Notes)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, AnalysisResponse{Analysis: analysis})
}
