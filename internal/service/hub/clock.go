package hub

import (
	"context"
	"time"

	models "devcloud/internal/domain/models/hub"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Latency is the synthetic delay of a simulated network operation
// (upload, save, clone, sync, push). The operation applies exactly once,
// after Wait returns nil. The gateway never passes a cancellable context.
type Latency interface {
	Wait(ctx context.Context) error
}

// FixedLatency waits a constant duration. Zero completes immediately.
type FixedLatency time.Duration

func (d FixedLatency) Wait(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// today formats the clock's date as a FileItem modified date
func today(c Clock) string {
	return c.Now().Format(models.DateLayout)
}
