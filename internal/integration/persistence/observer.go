package persistence

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minPollInterval = 100 * time.Millisecond

// pollQuery runs load on every tick and emits when the result set changes.
// The first result is always emitted. Load errors are emitted as they happen
// and force the next successful load to be emitted too.
func pollQuery[T, S any](
	ctx context.Context,
	interval time.Duration,
	load func(context.Context) ([]T, error),
	version func(T) (uuid.UUID, time.Time),
	wrap func([]T, error) S,
) <-chan S {
	if interval < minPollInterval {
		interval = minPollInterval
	}

	out := make(chan S, 1)
	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := ""
		emitted := false
		for {
			items, err := load(ctx)
			if ctx.Err() != nil {
				return
			}

			var snapshot S
			changed := false
			if err != nil {
				snapshot, changed = wrap(nil, err), true
				emitted = false
			} else if current := fingerprint(items, version); !emitted || current != last {
				snapshot, changed = wrap(items, nil), true
				last, emitted = current, true
			}

			if changed {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func fingerprint[T any](items []T, version func(T) (uuid.UUID, time.Time)) string {
	var b strings.Builder
	for _, item := range items {
		id, updatedAt := version(item)
		b.WriteString(id.String())
		b.WriteByte('@')
		b.WriteString(strconv.FormatInt(updatedAt.UnixNano(), 10))
		b.WriteByte(';')
	}
	return b.String()
}
