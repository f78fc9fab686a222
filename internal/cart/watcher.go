package cart

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"time"
)

// Watcher polls a cart entry and reports changes made outside this process,
// such as by another replica sharing the same KV.
type Watcher struct {
	kv       KV
	interval time.Duration
	logger   *slog.Logger
}

func NewWatcher(kv KV, interval time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{kv: kv, interval: interval, logger: logger}
}

// Watch emits an event for owner whenever the content at key changes. The
// channel is closed once ctx is done.
func (w *Watcher) Watch(ctx context.Context, key, owner string) <-chan Event {
	out := make(chan Event, 1)
	last, _ := w.fingerprint(ctx, key)

	go func() {
		defer close(out)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, ok := w.fingerprint(ctx, key)
				if !ok || current == last {
					continue
				}

				last = current

				select {
				case out <- Event{Owner: owner}:
				default:
				}
			}
		}
	}()

	return out
}

func (w *Watcher) fingerprint(ctx context.Context, key string) ([32]byte, bool) {
	raw, _, err := w.kv.Get(ctx, key)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("Cart poll failed", slog.String("key", key), slog.Any("error", err))
		}

		return [32]byte{}, false
	}

	return sha256.Sum256([]byte(raw)), true
}
