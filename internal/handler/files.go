package handler

import (
	"log/slog"
	"net/http"

	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// FileHandler handles file uploads, content edits and editor chat
type FileHandler struct {
	workspace *hubService.Workspace
	logger    *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(workspace *hubService.Workspace, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// Upload adds a file to a backend
// POST /api/files
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req hubSvc.UploadRequest
	if !parseBody(w, r, &req) {
		return
	}

	file, err := h.workspace.Upload(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile returns one file including its content
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.workspace.GetFile(r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// ContentRequest is the body of PUT /api/files/{id}/content
type ContentRequest struct {
	Content string `json:"content"`
}

// SaveContent stores edited content. A file deleted in the meantime is
// answered with 204 and nothing changes.
// PUT /api/files/{id}/content
func (h *FileHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if !parseBody(w, r, &req) {
		return
	}

	file, err := h.workspace.SaveFileContent(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if file == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// ChatRequest is the body of POST /api/files/{id}/chat
type ChatRequest struct {
	Mode   models.AssistanceMode `json:"mode"`
	Prompt string                `json:"prompt"`
}

// Chat asks the assistant about a file and returns the chat history.
// A failed assistant call shows up as an AI message, not as an error.
// POST /api/files/{id}/chat
func (h *FileHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !parseBody(w, r, &req) {
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeChat
	}

	chat, err := h.workspace.Chat(r.Context(), r.PathValue("id"), req.Mode, req.Prompt)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// ChatHistory returns a file's chat, starting with the greeting, and
// whether a request is outstanding
// GET /api/files/{id}/chat
func (h *FileHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	chat, err := h.workspace.ChatHistory(r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// ApplyCodeRequest is the body of POST /api/files/{id}/chat/apply.
// Without a message index the latest code block is applied.
type ApplyCodeRequest struct {
	Message *int `json:"message"`
}

// ApplyChatCode replaces the file's content with a code block from its chat
// POST /api/files/{id}/chat/apply
func (h *FileHandler) ApplyChatCode(w http.ResponseWriter, r *http.Request) {
	var req ApplyCodeRequest
	if !parseBody(w, r, &req) {
		return
	}
	index := -1
	if req.Message != nil {
		index = *req.Message
		if index < 0 {
			httputil.RespondError(w, http.StatusBadRequest, "message index must not be negative")
			return
		}
	}

	file, err := h.workspace.ApplyChatCode(r.Context(), r.PathValue("id"), index)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if file == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}
