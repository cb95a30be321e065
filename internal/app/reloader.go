package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/gridview/internal/dataset"
	"github.com/five82/gridview/internal/state"
)

// maxBackoff caps the retry delay after repeated reload failures.
const maxBackoff = 30 * time.Second

// StartReloader launches a background goroutine that re-reads the dataset at
// path whenever its fingerprint changes. Failures back off exponentially. It
// returns immediately.
func StartReloader(ctx context.Context, store *state.Store, path string, interval time.Duration, opts ...dataset.Option) {
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if _, err := reload(store, path, opts...); err != nil {
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// reload loads path into the store if it changed since the last successful
// load. It reports whether new records were stored.
func reload(store *state.Store, path string, opts ...dataset.Option) (bool, error) {
	fp, err := dataset.Stat(path)
	if err != nil {
		store.Update(nil, dataset.Fingerprint{}, err)
		slog.Warn("dataset stat failed", "path", path, "err", err)
		return false, err
	}
	if fp.Equal(store.Fingerprint()) {
		store.Recover()
		return false, nil
	}

	records, err := dataset.Load(path, opts...)
	if err != nil {
		store.Update(nil, fp, err)
		slog.Warn("dataset reload failed", "path", path, "err", err)
		return false, err
	}
	store.Update(records, fp, nil)
	slog.Info("dataset reloaded", "path", path, "rows", len(records))
	return true, nil
}

// calculateBackoff doubles the base interval for every consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
