package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	mstream "github.com/haowjy/meridian-stream-go"

	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/metrics"
)

const (
	// NotificationStreamID names the single long-lived activity stream
	NotificationStreamID = "notifications"

	// EventNotification is the SSE event type carrying one notification
	EventNotification = "notification"
)

// NotificationStream fans recorded notifications out to SSE clients.
// Every event carries the notification ID, so a client that sees an entry
// both in catch-up and live can drop the second copy.
type NotificationStream struct {
	stream   *mstream.Stream
	recorder hubSvc.NotificationRecorder
	logger   *slog.Logger
	sub      chan models.Notification
}

// NewNotificationStream wires a stream to the recorder. Call Start before
// adding clients.
func NewNotificationStream(recorder hubSvc.NotificationRecorder, logger *slog.Logger) *NotificationStream {
	ns := &NotificationStream{
		recorder: recorder,
		logger:   logger,
	}
	ns.stream = mstream.NewStream(
		NotificationStreamID,
		ns.workFunc,
		mstream.WithCatchup(ns.catchup),
		mstream.WithEventIDs(true),
		mstream.WithBufferSize(subscriberBuffer),
	)
	return ns
}

// Start begins draining the recorder. Everything recorded after Start
// returns reaches connected clients.
func (ns *NotificationStream) Start() {
	ns.sub = ns.recorder.Subscribe()
	ns.stream.Start()
}

// Stop ends the stream and closes every client channel
func (ns *NotificationStream) Stop() {
	ns.stream.Cancel()
}

// AddClient registers a live listener
func (ns *NotificationStream) AddClient(clientID string) <-chan mstream.Event {
	ch := ns.stream.AddClient(clientID)
	metrics.SetNotificationSubscribers(ns.stream.ClientCount())
	return ch
}

// RemoveClient closes a listener added by AddClient
func (ns *NotificationStream) RemoveClient(clientID string) {
	ns.stream.RemoveClient(clientID)
	metrics.SetNotificationSubscribers(ns.stream.ClientCount())
}

// Catchup returns the events a client missed, oldest first. With no
// lastEventID that is every unread notification.
func (ns *NotificationStream) Catchup(lastEventID string) []mstream.Event {
	return ns.stream.GetCatchupEvents(lastEventID)
}

// Status reports the underlying stream state
func (ns *NotificationStream) Status() mstream.Status {
	return ns.stream.Status()
}

func (ns *NotificationStream) workFunc(ctx context.Context, send func(mstream.Event)) error {
	ch := ns.sub
	defer ns.recorder.Unsubscribe(ch)

	ns.logger.Debug("notification stream started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := notificationEvent(n)
			if err != nil {
				ns.logger.Error("failed to encode notification", "id", n.ID, "error", err)
				continue
			}
			send(event)
			// The recorder is the durable log, so the replay buffer only
			// needs to cover the broadcast itself.
			if err := ns.stream.PersistAndClear(func([]mstream.Event) error { return nil }); err != nil {
				ns.logger.Warn("failed to clear notification buffer", "error", err)
			}
		}
	}
}

func (ns *NotificationStream) catchup(streamID string, lastEventID string) ([]mstream.Event, error) {
	list := ns.recorder.List() // newest first

	ns.logger.Debug("building notification catchup",
		"stream_id", streamID,
		"last_event_id", lastEventID,
	)

	var missed []models.Notification
	found := false
	if lastEventID != "" {
		for i, n := range list {
			if n.ID == lastEventID {
				missed = list[:i]
				found = true
				break
			}
		}
	}
	if !found {
		for _, n := range list {
			if !n.Read {
				missed = append(missed, n)
			}
		}
	}

	events := make([]mstream.Event, 0, len(missed))
	for i := len(missed) - 1; i >= 0; i-- {
		event, err := notificationEvent(missed[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func notificationEvent(n models.Notification) (mstream.Event, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return mstream.Event{}, err
	}
	return mstream.NewEvent(data).WithType(EventNotification).WithID(n.ID), nil
}
