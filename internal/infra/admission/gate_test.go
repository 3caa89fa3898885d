//go:build unit

package admission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"showtime-booking/internal/domain/admission"
	inadmission "showtime-booking/internal/infra/admission"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	limit  = 5
	window = 15 * time.Minute
	client = "203.0.113.7"
)

type failingCounter struct{}

func (failingCounter) Record(context.Context, string, string, time.Time, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

type GateTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.MockClock
	counter *inadmission.MemoryCounter
	metrics *metrics.Metrics
}

func (s *GateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
	s.counter = inadmission.NewMemoryCounter()
	s.metrics = metrics.New("gate_test")
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) gate(mode admission.Mode) *inadmission.Gate {
	return inadmission.NewGate(mode, limit, window, s.counter, s.clock, nil, s.metrics)
}

// attempts checks n times, one minute apart, and returns the last decision.
func (s *GateTestSuite) attempts(g *inadmission.Gate, n int) admission.Decision {
	var d admission.Decision
	for i := range n {
		if i > 0 {
			s.clock.Add(time.Minute)
		}
		var err error
		d, err = g.Check(s.ctx, client, admission.ActionCreateBooking)
		s.Require().NoError(err)
	}
	return d
}

func (s *GateTestSuite) TestEnforce() {
	g := s.gate(admission.ModeEnforce)

	fifth := s.attempts(g, limit)
	s.True(fifth.Allowed)
	s.Equal(0, fifth.Remaining)

	s.clock.Add(time.Minute)
	sixth, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
	s.Require().NoError(err)
	s.False(sixth.Allowed)
	s.Equal(0, sixth.Remaining)
	s.Require().NotNil(sixth.RetryAfterSeconds)
	// first attempt at 09:00, now 09:05, window 15m
	s.Equal(10*60, *sixth.RetryAfterSeconds)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.AdmissionDecisions.WithLabelValues(admission.ActionCreateBooking, "denied")))
}

func (s *GateTestSuite) TestRemainingCountsDown() {
	g := s.gate(admission.ModeEnforce)
	for want := limit - 1; want >= 0; want-- {
		d, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
		s.Require().NoError(err)
		s.Equal(want, d.Remaining)
	}
}

func (s *GateTestSuite) TestLogOnlyAllowsButReportsZeroRemaining() {
	g := s.gate(admission.ModeLogOnly)

	sixth := s.attempts(g, limit+1)
	s.True(sixth.Allowed)
	s.True(sixth.Flagged)
	s.Equal(0, sixth.Remaining)
	s.Nil(sixth.RetryAfterSeconds)
}

func (s *GateTestSuite) TestBlockedAttemptsStillCount() {
	g := s.gate(admission.ModeEnforce)
	s.attempts(g, limit+3)

	// 09:17: only 09:03..09:07 are inside the window, three of them blocked
	s.clock.Add(window - 5*time.Minute)
	d, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
	s.Require().NoError(err)
	s.False(d.Allowed)
}

func (s *GateTestSuite) TestWindowExpiry() {
	g := s.gate(admission.ModeEnforce)
	s.attempts(g, limit)

	s.clock.Add(window)
	d, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
	s.Require().NoError(err)
	s.True(d.Allowed)
}

func (s *GateTestSuite) TestClientsAreIndependent() {
	g := s.gate(admission.ModeEnforce)
	s.attempts(g, limit+1)

	d, err := g.Check(s.ctx, "198.51.100.1", admission.ActionCreateBooking)
	s.Require().NoError(err)
	s.True(d.Allowed)
	s.Equal(limit-1, d.Remaining)
}

func (s *GateTestSuite) TestDisabledRecordsNothing() {
	g := s.gate(admission.ModeDisabled)
	for range limit * 2 {
		d, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
		s.Require().NoError(err)
		s.True(d.Allowed)
		s.Equal(limit, d.Remaining)
	}

	n, _, err := s.counter.Record(s.ctx, client, admission.ActionCreateBooking, s.clock.Now(), window)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *GateTestSuite) TestCounterFailureIsReported() {
	g := inadmission.NewGate(admission.ModeEnforce, limit, window, failingCounter{}, s.clock, nil, s.metrics)

	_, err := g.Check(s.ctx, client, admission.ActionCreateBooking)
	s.Require().Error(err)
	s.True(errs.Is(err, inadmission.ErrCounterUnavailable))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AdmissionDecisions.WithLabelValues(admission.ActionCreateBooking, "error")))
}

func TestParseMode(t *testing.T) {
	cases := map[string]admission.Mode{
		"true":     admission.ModeEnforce,
		" TRUE ":   admission.ModeEnforce,
		"log":      admission.ModeLogOnly,
		"log-only": admission.ModeLogOnly,
		"false":    admission.ModeDisabled,
		"":         admission.ModeDisabled,
		"yes":      admission.ModeDisabled,
	}
	for flag, want := range cases {
		assert.Equal(t, want, admission.ParseMode(flag), "flag %q", flag)
	}
}

func TestMemoryCounterPrunes(t *testing.T) {
	c := inadmission.NewMemoryCounter()
	ctx := context.Background()
	t0 := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		_, _, err := c.Record(ctx, client, "a", t0.Add(time.Duration(i)*time.Minute), time.Hour)
		require.NoError(t, err)
	}
	n, oldest, err := c.Record(ctx, client, "a", t0.Add(time.Hour+90*time.Second), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, t0.Add(2*time.Minute), oldest)
}
