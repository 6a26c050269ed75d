package playback

import (
	"context"
	"time"
)

// StartTicker invokes c.Tick on a fixed interval until the returned
// stop function is called or ctx is cancelled. Tick is idempotent, so
// cancellation simply stops the rescheduling; no teardown is needed.
func StartTicker(ctx context.Context, c *Controller, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}()
	return cancel
}
