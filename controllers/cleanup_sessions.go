package controllers

import (
	"context"
	"log"
	"time"
	"warbler/models"
	"warbler/stores"
)

// StartPeriodicCleanup sweeps expired and idle sessions until ctx is done.
func StartPeriodicCleanup(ctx context.Context, sessions stores.SessionStore, interval time.Duration) {
	if interval <= 0 {
		log.Printf("Invalid cleanup interval %s, using %s", interval, models.DefaultCleanupInterval)
		interval = models.DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := sessions.Cleanup(now); removed > 0 {
					log.Printf("Cleaned up %d expired sessions", removed)
				}
			}
		}
	}()
}
