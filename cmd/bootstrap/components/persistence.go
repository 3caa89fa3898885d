package components

import (
	"time"

	"showtime-booking/internal/infra/db"
	"showtime-booking/internal/infra/readstore"
	"showtime-booking/internal/infra/uow"
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			NewBookingReadStore,
			fx.As(new(shared.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewBookingReadStore(dbtx db.DBTX, loc *time.Location, cfg config.Config) *readstore.BookingReadStore {
	return readstore.NewBookingReadStore(dbtx, loc, cfg.Availability.StoreTimeout)
}
