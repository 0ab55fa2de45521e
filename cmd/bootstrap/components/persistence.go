package components

import (
	"coach-booking/internal/infra/cache"
	"coach-booking/internal/infra/readstore"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/infra/uow"
	"coach-booking/internal/pkg/config"
	"coach-booking/internal/usecase/queries"
	"coach-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Availability
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AvailabilityViewQueries)),
		),
		NewAvailabilityReadStore,
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

// NewAvailabilityReadStore puts the redis read-through cache in front of the template table when one is configured.
func NewAvailabilityReadStore(q readstore.AvailabilityViewQueries, db sqlc.DBTX, store cache.Store, cfg config.Config) queries.AvailabilityReadStore {
	base := readstore.NewAvailabilityReadStore(q, db)
	if store == nil {
		return base
	}
	return readstore.NewCachedAvailabilityStore(base, store, cfg.Cache.TemplateTTL)
}

func NewUnitOfWork(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoWWithRetry(pool, q, uow.RetryPolicy{
		MaxRetries:  cfg.DB.TxMaxRetries,
		BaseBackoff: cfg.DB.TxRetryBackoff,
	})
}
