package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Writer serialises events and keep-alive comments onto one response.
// The keep-alive goroutine and the event loop share it, so every write
// holds the lock.
type Writer struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	streamID string
}

// NewWriter prepares w for an event stream: it sets the SSE headers and
// flushes the status line. Returns false when w cannot flush.
func NewWriter(w http.ResponseWriter, streamID string) (*Writer, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher, streamID: streamID}, true
}

// StreamID identifies the stream in logs
func (s *Writer) StreamID() string { return s.streamID }

// WriteEvent writes one named event with a JSON data line and flushes
func (s *Writer) WriteEvent(event, id string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	return s.WriteRaw(event, id, data)
}

// WriteRaw writes one named event whose data is already encoded
func (s *Writer) WriteRaw(event, id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, err := fmt.Fprintf(s.w, "id: %s\n", id); err != nil {
			return fmt.Errorf("write event failed: %w", err)
		}
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("write event failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment line, which clients ignore
func (s *Writer) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}
