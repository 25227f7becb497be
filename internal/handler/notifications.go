package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	mstream "github.com/haowjy/meridian-stream-go"

	models "devcloud/internal/domain/models/hub"
	"devcloud/internal/handler/sse"
	"devcloud/internal/httputil"
	hubService "devcloud/internal/service/hub"
)

// eventReady opens every notification stream
const eventReady = "ready"

// NotificationHandler serves the activity log
type NotificationHandler struct {
	workspace *hubService.Workspace
	stream    *hubService.NotificationStream
	config    *sse.Config
	logger    *slog.Logger
}

// NewNotificationHandler creates a new notification handler.
// A nil config uses sse.DefaultConfig.
func NewNotificationHandler(workspace *hubService.Workspace, stream *hubService.NotificationStream, config *sse.Config, logger *slog.Logger) *NotificationHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &NotificationHandler{
		workspace: workspace,
		stream:    stream,
		config:    config,
		logger:    logger,
	}
}

// NotificationsResponse is the activity log plus its unread badge count
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// List returns every notification, newest first
// GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.workspace.Notifications()
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}

	httputil.RespondJSON(w, http.StatusOK, NotificationsResponse{
		Notifications: list,
		UnreadCount:   unread,
	})
}

// MarkAllRead clears the unread badge
// POST /api/notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.workspace.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

// Stream pushes new notifications via Server-Sent Events until the client
// disconnects. A reconnecting client sends Last-Event-ID and receives only
// what it missed.
// GET /api/notifications/stream
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	streamID := uuid.NewString()
	writer, ok := sse.NewWriter(w, streamID)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Join before catching up so nothing recorded in between is lost.
	// The same notification may then arrive twice; seen drops the copy.
	events := h.stream.AddClient(streamID)
	defer h.stream.RemoveClient(streamID)

	lastEventID := r.Header.Get("Last-Event-ID")
	h.logger.Info("notification stream opened",
		"stream_id", streamID,
		"last_event_id", lastEventID,
		"request_id", httputil.GetRequestID(r),
	)
	defer h.logger.Info("notification stream closed", "stream_id", streamID)

	if err := writer.WriteEvent(eventReady, "", map[string]string{"stream_id": streamID}); err != nil {
		return
	}

	seen := make(map[string]struct{})
	write := func(event mstream.Event) error {
		if event.ID != "" {
			if _, dup := seen[event.ID]; dup {
				return nil
			}
			seen[event.ID] = struct{}{}
		}
		return writer.WriteRaw(event.Type, event.ID, event.Data)
	}

	if h.config.ReplayUnread || lastEventID != "" {
		for _, event := range h.stream.Catchup(lastEventID) {
			if err := write(event); err != nil {
				return
			}
		}
	}

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	keepAliveDone := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAliveDone:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := write(event); err != nil {
				h.logger.Warn("notification stream write failed",
					"stream_id", streamID,
					"error", err,
				)
				return
			}
		}
	}
}
