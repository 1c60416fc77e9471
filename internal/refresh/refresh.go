// Package refresh periodically re-fetches the portfolio collection on a
// cron schedule so long-running views stay close to the server state.
package refresh

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/store"
)

// Watcher drives scheduled portfolio refreshes. Each tick performs one full
// fetch; fetch failures are reported through the OnRefresh callback and do
// not stop the schedule.
type Watcher struct {
	store    *store.Store
	schedule string
	cron     *cron.Cron

	// OnRefresh is invoked after every refresh attempt with the fetch
	// result. It runs on the scheduler goroutine.
	OnRefresh func(err error)
}

// NewWatcher creates a watcher that refreshes the given store. The schedule
// uses cron syntax, including descriptors such as "@every 30s".
func NewWatcher(s *store.Store, schedule string) *Watcher {
	return &Watcher{store: s, schedule: schedule}
}

// Start validates the schedule and begins refreshing. It returns an error
// for an unparseable schedule and otherwise runs until Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(w.schedule, func() {
		err := w.store.Fetch(ctx)
		if w.OnRefresh != nil {
			w.OnRefresh(err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", w.schedule, err)
	}

	w.cron = c
	c.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh to finish.
func (w *Watcher) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}
