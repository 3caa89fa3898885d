//go:build unit

package broadcast_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/infra/broadcast"
	"showtime-booking/internal/pkg/metrics"
	"showtime-booking/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ shared.AvailabilityNotifier = (*broadcast.Broadcaster)(nil)
	_ shared.AvailabilityFeed     = (*broadcast.Broadcaster)(nil)
)

var (
	feb15 = time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	feb16 = time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)
)

func event(date time.Time) booking.Event {
	return booking.NewEvent(booking.EventCreated, nil, date, date)
}

func TestBroadcaster(t *testing.T) {
	ctx := context.Background()

	t.Run("callbacks run in registration order for their date only", func(t *testing.T) {
		b := broadcast.NewBroadcaster(nil, nil)
		var calls []string
		b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error { calls = append(calls, "first"); return nil })
		b.Subscribe(feb16, func(_ context.Context, _ booking.Event) error { calls = append(calls, "other day"); return nil })
		b.Subscribe(feb15.Add(20*time.Hour), func(_ context.Context, _ booking.Event) error { calls = append(calls, "second"); return nil })

		b.Notify(ctx, feb15, event(feb15))
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("a failing or panicking callback does not stop the rest", func(t *testing.T) {
		b := broadcast.NewBroadcaster(nil, nil)
		var got []booking.Event
		b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error { return errors.New("boom") })
		b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error { panic("subscriber bug") })
		b.Subscribe(feb15, func(_ context.Context, e booking.Event) error { got = append(got, e); return nil })

		require.NotPanics(t, func() { b.Notify(ctx, feb15, event(feb15)) })
		require.Len(t, got, 1)
		assert.Equal(t, "2024-02-15", got[0].Date)
	})

	t.Run("disposer is idempotent", func(t *testing.T) {
		m := metrics.New("broadcast_test")
		b := broadcast.NewBroadcaster(nil, m)
		calls := 0
		dispose := b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error { calls++; return nil })
		keep := b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error { return nil })
		assert.Equal(t, 2, b.Subscribers(feb15))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.Subscribers))

		dispose()
		dispose()
		assert.Equal(t, 1, b.Subscribers(feb15))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscribers))

		b.Notify(ctx, feb15, event(feb15))
		assert.Zero(t, calls)

		keep()
		assert.Zero(t, b.Subscribers(feb15))
	})

	t.Run("unsubscribing from inside a callback", func(t *testing.T) {
		b := broadcast.NewBroadcaster(nil, nil)
		var dispose func()
		calls := 0
		dispose = b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error {
			calls++
			dispose()
			return nil
		})

		b.Notify(ctx, feb15, event(feb15))
		b.Notify(ctx, feb15, event(feb15))
		assert.Equal(t, 1, calls)
	})

	t.Run("concurrent subscribe, notify and dispose", func(t *testing.T) {
		m := metrics.New("broadcast_concurrent_test")
		b := broadcast.NewBroadcaster(nil, m)

		var steady atomic.Int64
		disposeSteady := b.Subscribe(feb15, func(_ context.Context, _ booking.Event) error {
			steady.Add(1)
			return nil
		})

		const workers, notifies = 16, 50
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				date := feb15
				if i%2 == 1 {
					date = feb16
				}
				for range 20 {
					dispose := b.Subscribe(date, func(_ context.Context, _ booking.Event) error { return nil })
					_ = b.Subscribers(date)
					dispose()
					dispose()
				}
			}(i)
			go func() {
				defer wg.Done()
				for range notifies {
					b.Notify(ctx, feb15, event(feb15))
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(workers*notifies), steady.Load())
		assert.Equal(t, 1, b.Subscribers(feb15))
		assert.Zero(t, b.Subscribers(feb16))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscribers))

		disposeSteady()
		assert.Zero(t, b.Subscribers(feb15))
		assert.Zero(t, testutil.ToFloat64(m.Subscribers))
	})
}
