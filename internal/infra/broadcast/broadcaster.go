package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/metrics"
)

// Callback receives availability changes for the date it subscribed to.
type Callback = func(ctx context.Context, event booking.Event) error

// Disposer removes a subscription. Calling it more than once is a no-op.
type Disposer = func()

type subscription struct {
	id uint64
	cb Callback
}

// Broadcaster is an in-process fan-out keyed by calendar date.
type Broadcaster struct {
	mu      sync.RWMutex
	nextID  uint64
	subs    map[string][]subscription
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewBroadcaster(logger *slog.Logger, m *metrics.Metrics) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subs:    make(map[string][]subscription),
		logger:  logger,
		metrics: m,
	}
}

func dateKey(date time.Time) string {
	return booking.DateOf(date).Format(booking.DateLayout)
}

func (b *Broadcaster) Subscribe(date time.Time, cb Callback) Disposer {
	key := dateKey(date)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[key] = append(b.subs[key], subscription{id: id, cb: cb})
	b.mu.Unlock()
	b.gaugeAdd(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.remove(key, id)
		})
	}
}

func (b *Broadcaster) remove(key string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[key]
	for i, s := range list {
		if s.id != id {
			continue
		}
		next := make([]subscription, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, key)
		} else {
			b.subs[key] = next
		}
		b.gaugeAdd(-1)
		return
	}
}

// Notify calls every callback registered for date in registration order.
// A failing or panicking callback is logged and does not stop the others.
func (b *Broadcaster) Notify(ctx context.Context, date time.Time, event booking.Event) {
	key := dateKey(date)

	b.mu.RLock()
	list := b.subs[key]
	b.mu.RUnlock()

	for _, s := range list {
		if err := b.invoke(ctx, s.cb, event); err != nil {
			b.logger.WarnContext(ctx, "availability subscriber failed",
				"date", key,
				"event", string(event.Type),
				"error", err.Error())
		}
	}
}

func (b *Broadcaster) invoke(ctx context.Context, cb Callback, event booking.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Newf("subscriber panicked: %v", r)
		}
	}()
	return cb(ctx, event)
}

func (b *Broadcaster) Subscribers(date time.Time) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[dateKey(date)])
}

func (b *Broadcaster) gaugeAdd(delta float64) {
	if b.metrics != nil {
		b.metrics.Subscribers.Add(delta)
	}
}
