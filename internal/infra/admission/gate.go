package admission

import (
	"context"
	"log/slog"
	"math"
	"time"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/metrics"
)

var ErrCounterUnavailable = errs.New("admission counter unavailable")

// Counter persists attempts. Record stores one attempt at `at` and returns
// the number of attempts for (identifier, action) inside (at-window, at],
// this one included, with the oldest of them.
type Counter interface {
	Record(ctx context.Context, identifier, action string, at time.Time, window time.Duration) (count int, oldest time.Time, err error)
}

type Gate struct {
	mode    admission.Mode
	limit   int
	window  time.Duration
	counter Counter
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewGate(
	mode admission.Mode,
	limit int,
	window time.Duration,
	counter Counter,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		mode:    mode,
		limit:   limit,
		window:  window,
		counter: counter,
		clock:   clk,
		logger:  logger,
		metrics: m,
	}
}

func (g *Gate) Mode() admission.Mode {
	return g.mode
}

func (g *Gate) Limit() int {
	return g.limit
}

// Check records the attempt and decides. Every attempt counts toward the
// window, blocked ones included. A counter failure is returned as an error
// and the caller decides whether to fail open.
func (g *Gate) Check(ctx context.Context, identifier, action string) (admission.Decision, error) {
	if g.mode == admission.ModeDisabled {
		return admission.Open(g.limit), nil
	}

	now := g.clock.Now()
	count, oldest, err := g.counter.Record(ctx, identifier, action, now, g.window)
	if err != nil {
		g.observe(action, "error")
		return admission.Decision{}, errs.Mark(errs.Wrap(err, "record admission attempt"), ErrCounterUnavailable)
	}

	if count <= g.limit {
		g.observe(action, "allowed")
		return admission.Decision{Allowed: true, Remaining: g.limit - count}, nil
	}

	if g.mode == admission.ModeLogOnly {
		g.logger.WarnContext(ctx, "admission limit exceeded (log-only)",
			"identifier", identifier,
			"action", action,
			"attempts", count,
			"limit", g.limit)
		g.observe(action, "flagged")
		return admission.Decision{Allowed: true, Remaining: 0, Flagged: true}, nil
	}

	retry := retryAfterSeconds(oldest.Add(g.window).Sub(now))
	g.logger.InfoContext(ctx, "admission denied",
		"identifier", identifier,
		"action", action,
		"attempts", count,
		"retry_after_s", retry)
	g.observe(action, "denied")
	return admission.Decision{Allowed: false, Remaining: 0, RetryAfterSeconds: &retry}, nil
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

func (g *Gate) observe(action, result string) {
	if g.metrics != nil {
		g.metrics.AdmissionDecisions.WithLabelValues(action, result).Inc()
	}
}
