package sync

import (
	"context"
	stdsync "sync"
	"time"
)

// Debounced returns a trailing-edge debounced trigger around Search: only
// the last query seen within the interval is sent. The returned function is
// safe for concurrent use.
func (s *PostSyncer) Debounced(ctx context.Context, interval time.Duration) func(query string) {
	if interval <= 0 {
		return func(query string) {
			_ = s.Search(ctx, query)
		}
	}

	var mu stdsync.Mutex
	var timer *time.Timer

	return func(query string) {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(interval, func() {
			_ = s.Search(ctx, query)
		})
	}
}
