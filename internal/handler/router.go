package handler

import (
	"log/slog"
	"net/http"

	"devcloud/internal/handler/sse"
	hubService "devcloud/internal/service/hub"
)

// NewRouter registers every dashboard route on a new mux
func NewRouter(
	workspace *hubService.Workspace,
	notifications *hubService.NotificationStream,
	agents *hubService.AgentHub,
	sseConfig *sse.Config,
	logger *slog.Logger,
) *http.ServeMux {
	workspaceHandler := NewWorkspaceHandler(workspace, logger)
	fileHandler := NewFileHandler(workspace, logger)
	readmeHandler := NewReadmeHandler(workspace, logger)
	driveHandler := NewDriveHandler(workspace, logger)
	notificationHandler := NewNotificationHandler(workspace, notifications, sseConfig, logger)
	agentHandler := NewAgentHandler(agents, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", workspaceHandler.HealthCheck)

	// Registries
	mux.HandleFunc("GET /api/backends", workspaceHandler.ListBackends)
	mux.HandleFunc("GET /api/projects", workspaceHandler.ListProjects)

	// View state
	mux.HandleFunc("GET /api/view", workspaceHandler.GetView)
	mux.HandleFunc("PUT /api/view/selector", workspaceHandler.SelectView)
	mux.HandleFunc("PUT /api/view/search", workspaceHandler.SetSearch)
	mux.HandleFunc("POST /api/view/items/{id}/open", workspaceHandler.OpenItem)
	mux.HandleFunc("POST /api/view/back", workspaceHandler.GoBack)
	mux.HandleFunc("POST /api/view/breadcrumbs/{index}", workspaceHandler.GoToBreadcrumb)
	mux.HandleFunc("PUT /api/view/overlay", workspaceHandler.OpenOverlay)
	mux.HandleFunc("DELETE /api/view/overlay", workspaceHandler.CloseOverlay)

	// Files
	mux.HandleFunc("POST /api/files", fileHandler.Upload)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("PUT /api/files/{id}/content", fileHandler.SaveContent)
	mux.HandleFunc("GET /api/files/{id}/chat", fileHandler.ChatHistory)
	mux.HandleFunc("POST /api/files/{id}/chat", fileHandler.Chat)
	mux.HandleFunc("POST /api/files/{id}/chat/apply", fileHandler.ApplyChatCode)

	// Project READMEs
	mux.HandleFunc("POST /api/projects/{id}/readme/generate", readmeHandler.Generate)
	mux.HandleFunc("PUT /api/projects/{id}/readme", readmeHandler.Save)

	// Drives, sync and analysis
	mux.HandleFunc("POST /api/drives", driveHandler.AddDrive)
	mux.HandleFunc("POST /api/drives/clone", driveHandler.Clone)
	mux.HandleFunc("POST /api/drives/{id}/push", driveHandler.Push)
	mux.HandleFunc("POST /api/sync", driveHandler.Sync)
	mux.HandleFunc("POST /api/backends/{id}/analyze", driveHandler.AnalyzeBackend)
	mux.HandleFunc("POST /api/ecosystem/analyze", driveHandler.AnalyzeEcosystem)

	// Agent hub
	mux.HandleFunc("GET /api/agents", agentHandler.List)
	mux.HandleFunc("PUT /api/agents/{id}/status", agentHandler.SetStatus)

	// Notifications
	mux.HandleFunc("GET /api/notifications", notificationHandler.List)
	mux.HandleFunc("POST /api/notifications/read", notificationHandler.MarkAllRead)
	mux.HandleFunc("GET /api/notifications/stream", notificationHandler.Stream)

	return mux
}
