package sse

import "time"

// Config holds configuration for notification streams
type Config struct {
	// KeepAliveInterval is how often a comment line is sent on an idle
	// stream so proxies do not drop it
	KeepAliveInterval time.Duration

	// ReplayUnread sends the current unread notifications when a client
	// connects without a Last-Event-ID, before any live events. A client
	// that reconnects with Last-Event-ID always gets what it missed.
	ReplayUnread bool
}

// DefaultConfig returns the default stream configuration
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
		ReplayUnread:      true,
	}
}
