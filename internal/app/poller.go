package app

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"pillterm/internal/api"
	"pillterm/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the backend is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client *api.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := refresh(ctx, store, client); err != nil {
				failures++
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh performs the home-screen load: today's schedules and the medicine
// list, fetched concurrently and joined fail-fast. A failure in either branch
// fails the whole refresh; the store keeps its previous data.
func refresh(ctx context.Context, store *state.Store, client *api.Client) error {
	var medicines []api.Medicine
	var schedules []api.Schedule

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = client.TodaySchedules(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		medicines, err = client.Medicines(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		store.Update(nil, nil, err)
		log.Printf("refresh failed: %v", err)
		return err
	}

	store.Update(medicines, schedules, nil)
	return nil
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures yields the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
