package components

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	inadmission "showtime-booking/internal/infra/admission"
	"showtime-booking/internal/infra/broadcast"
	"showtime-booking/internal/infra/cache"
	"showtime-booking/internal/infra/db"
	inredis "showtime-booking/internal/infra/redis"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/pkg/metrics"
	"showtime-booking/internal/usecase/queries"
	"showtime-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

// EngineModule builds the process-wide availability state: one engine,
// one cache, one broadcaster and one admission gate.
var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		NewBusinessLocation,
		NewAvailabilityEngine,
		NewAvailabilityCache,
		func(c AvailabilityCache) queries.AvailabilityCache { return c },
		func(c AvailabilityCache) shared.CacheInvalidator { return c },
		fx.Annotate(
			broadcast.NewBroadcaster,
			fx.As(new(shared.AvailabilityNotifier), new(shared.AvailabilityFeed)),
		),
		NewAdmissionCounter,
		fx.Annotate(
			NewAdmissionGate,
			fx.As(new(shared.AdmissionGate)),
		),
	),
)

func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Availability.Location()
}

func NewAvailabilityEngine(cfg config.Config, loc *time.Location) (*availability.Engine, error) {
	policy, err := PolicyFromConfig(cfg.Availability)
	if err != nil {
		return nil, err
	}
	hours, err := BusinessHoursFromConfig(cfg.Availability)
	if err != nil {
		return nil, err
	}
	return availability.NewEngine(policy, hours, loc)
}

func PolicyFromConfig(cfg config.AvailabilityConfig) (availability.Policy, error) {
	leads := make(map[booking.Service]int, len(cfg.ServiceSetupLead))
	for name, minutes := range cfg.ServiceSetupLead {
		svc, err := booking.ParseService(strings.TrimSpace(name))
		if err != nil {
			return availability.Policy{}, fmt.Errorf("SERVICE_SETUP_LEAD: %w", err)
		}
		leads[svc] = minutes
	}
	return availability.Policy{
		BufferMinutes:      cfg.BufferMinutes,
		SetupLeadMinutes:   cfg.SetupLeadMinutes,
		ServiceSetupLead:   leads,
		GranularityMinutes: cfg.GranularityMinutes,
		MaxAlternatives:    cfg.MaxAlternatives,
		SearchWindowDays:   cfg.SearchWindowDays,
	}, nil
}

func BusinessHoursFromConfig(cfg config.AvailabilityConfig) (availability.BusinessHours, error) {
	if cfg.BusinessHoursFile == "" {
		return availability.DefaultBusinessHours(), nil
	}
	file, err := config.LoadBusinessHours(cfg.BusinessHoursFile)
	if err != nil {
		return availability.BusinessHours{}, err
	}
	days, err := file.ByWeekday()
	if err != nil {
		return availability.BusinessHours{}, err
	}

	overrides := make(map[time.Weekday]availability.DayHours, len(days))
	for wd, d := range days {
		if d.Closed {
			overrides[wd] = availability.ClosedDay()
			continue
		}
		dh, err := availability.NewDayHours(d.Open, d.Close)
		if err != nil {
			return availability.BusinessHours{}, fmt.Errorf("business hours for %s: %w", wd, err)
		}
		overrides[wd] = dh
	}
	return availability.NewBusinessHours(overrides), nil
}

// AvailabilityCache is read by the queries and invalidated by the commands.
type AvailabilityCache interface {
	queries.AvailabilityCache
	shared.CacheInvalidator
}

func NewAvailabilityCache(cfg config.Config, clk clock.Clock, m *metrics.Metrics) AvailabilityCache {
	if !cfg.Cache.Enabled {
		slog.Info("availability cache disabled")
		return cache.NopCache[queries.Snapshot]{}
	}
	return cache.New[queries.Snapshot](clk, cfg.Cache.MaxEntries, m)
}

func NewAdmissionCounter(lc fx.Lifecycle, cfg config.Config, dbtx db.DBTX) (inadmission.Counter, error) {
	switch strings.ToLower(cfg.Admission.Backend) {
	case "memory":
		return inadmission.NewMemoryCounter(), nil
	case "redis":
		client, cleanup, err := inredis.Connect(cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return inadmission.NewRedisCounter(client), nil
	case "postgres", "":
		return inadmission.NewPostgresCounter(dbtx), nil
	default:
		return nil, fmt.Errorf("unknown ADMISSION_BACKEND %q", cfg.Admission.Backend)
	}
}

func NewAdmissionGate(
	cfg config.Config,
	counter inadmission.Counter,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *inadmission.Gate {
	mode := admission.ParseMode(cfg.Admission.Mode)
	logger.Info("admission gate configured",
		"mode", mode.String(),
		"backend", cfg.Admission.Backend,
		"limit", cfg.Admission.Limit,
		"window", cfg.Admission.Window.String())
	return inadmission.NewGate(mode, cfg.Admission.Limit, cfg.Admission.Window, counter, clk, logger, m)
}
