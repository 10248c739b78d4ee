package catalog

import (
	"context"
	"log"
	"time"
)

// Refresher periodically pulls the catalog from the signals service and
// publishes it to the store. Fetch failures are logged and otherwise
// ignored: the store keeps serving the last-known-good snapshot, and
// the scoring path is never blocked on the network.
type Refresher struct {
	store    *Store
	client   *Client
	interval time.Duration
	timeout  time.Duration
}

// NewRefresher creates a refresher polling at the given interval.
func NewRefresher(store *Store, client *Client, interval, timeout time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Refresher{store: store, client: client, interval: interval, timeout: timeout}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. Intended to be launched in its own goroutine.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cat, err := r.client.Fetch(fetchCtx)
	if err != nil {
		log.Printf("catalog refresh failed, keeping current snapshot: %v", err)
		return
	}
	if cat.IsEmpty() {
		log.Printf("catalog refresh returned empty document, keeping current snapshot")
		return
	}
	r.store.Swap(cat)
}
