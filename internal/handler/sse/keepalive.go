package sse

import (
	"log/slog"
	"time"
)

// KeepAliveStrategy decides when keep-alive pings are written on a stream
type KeepAliveStrategy interface {
	// Start begins sending pings through writer. The returned channel
	// closes once pinging stops, either on Stop or on a failed write.
	Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{}

	// Stop terminates pinging. Safe to call more than once.
	Stop()
}

// KeepAliveWriter writes one keep-alive ping
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// TickerKeepAlive pings at a fixed interval
type TickerKeepAlive struct {
	interval time.Duration
	done     chan struct{}
}

// NewTickerKeepAlive creates a ticker-based keep-alive
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start pings until Stop is called or a write fails
func (k *TickerKeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	stopped := make(chan struct{})
	ticker := time.NewTicker(k.interval)

	go func() {
		defer close(stopped)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Warn("keep-alive write failed, stopping", "error", err)
					return
				}
			case <-k.done:
				return
			}
		}
	}()

	return stopped
}

// Stop terminates the keep-alive
func (k *TickerKeepAlive) Stop() {
	select {
	case <-k.done:
	default:
		close(k.done)
	}
}
