package hub

import (
	"log/slog"
	"sync"

	models "devcloud/internal/domain/models/hub"
	hubSvc "devcloud/internal/domain/services/hub"
	"devcloud/internal/metrics"

	"github.com/google/uuid"
)

const subscriberBuffer = 64

// Recorder is the in-memory activity log. Entries are kept newest first and
// fanned out to live subscribers (see NotificationStream).
type Recorder struct {
	clock  Clock
	logger *slog.Logger

	mu    sync.RWMutex
	items []models.Notification

	subMu       sync.RWMutex
	subscribers map[chan models.Notification]struct{}
}

var _ hubSvc.NotificationRecorder = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder(clock Clock, logger *slog.Logger) *Recorder {
	return &Recorder{
		clock:       clock,
		logger:      logger,
		subscribers: make(map[chan models.Notification]struct{}),
	}
}

func (r *Recorder) Record(message string, kind models.NotificationType) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		Timestamp: r.clock.Now(),
	}

	r.mu.Lock()
	items := make([]models.Notification, 0, len(r.items)+1)
	items = append(items, n)
	r.items = append(items, r.items...)
	r.mu.Unlock()

	r.logger.Info("notification recorded", "type", kind, "message", message)
	metrics.RecordNotification(string(kind))
	r.publish(n)
	return n
}

func (r *Recorder) List() []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Notification(nil), r.items...)
}

func (r *Recorder) UnreadCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (r *Recorder) MarkAllRead() {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]models.Notification, len(r.items))
	for i, n := range r.items {
		n.Read = true
		items[i] = n
	}
	r.items = items
}

func (r *Recorder) Subscribe() chan models.Notification {
	ch := make(chan models.Notification, subscriberBuffer)
	r.subMu.Lock()
	r.subscribers[ch] = struct{}{}
	r.subMu.Unlock()
	return ch
}

func (r *Recorder) Unsubscribe(ch chan models.Notification) {
	r.subMu.Lock()
	if _, ok := r.subscribers[ch]; ok {
		delete(r.subscribers, ch)
		close(ch)
	}
	r.subMu.Unlock()
}

// publish never blocks: slow subscribers miss entries
func (r *Recorder) publish(n models.Notification) {
	r.subMu.RLock()
	defer r.subMu.RUnlock()
	for ch := range r.subscribers {
		select {
		case ch <- n:
		default:
			r.logger.Debug("notification dropped for slow subscriber", "id", n.ID)
		}
	}
}
