package router

import (
	"database/sql"
	"net/http"

	mem "kennel-console/internal/adapters/storage/memory"
	pg "kennel-console/internal/adapters/storage/postgres"
	"kennel-console/internal/domain/breeds"
	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/feeding"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reporting"
	"kennel-console/internal/domain/reservations"
	"kennel-console/internal/middleware"
	"kennel-console/internal/platform/logger"

	_ "kennel-console/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Feed de cambios de kennels. Con memory se usa el propio store si es nil.
	Feed kennels.ChangeFeed

	Logger logger.Logger

	// Puede ser nil: /breeds responde 502.
	Breeds breeds.Searcher

	// Tarifa diaria por defecto del checkout (0 => 400).
	DefaultPerDayRate int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.OperatorContext)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		store reservations.Store
		feed  = opts.Feed
	)
	if opts.DB != nil {
		store = pg.NewStore(opts.DB)
	} else {
		m := mem.NewStore()
		store = m
		if feed == nil {
			feed = m
		}
	}
	repos := store.Repos()

	// Services por módulo
	kennelsSvc := kennels.NewService(repos.Kennels, feed, log)
	customersSvc := customers.NewService(repos.Customers)
	feedingSvc := feeding.NewService(repos.Feeding, repos.Kennels)
	reservationsSvc := reservations.NewService(store, reservations.Options{
		Logger:            log,
		DefaultPerDayRate: opts.DefaultPerDayRate,
	})
	reportingSvc := reporting.NewService(repos)
	breedsSvc := breeds.NewService(opts.Breeds, log)

	// Rutas por módulo
	kennels.RegisterRoutes(r, kennelsSvc)
	customers.RegisterRoutes(r, customersSvc)
	reservations.RegisterRoutes(r, reservationsSvc)
	feeding.RegisterRoutes(r, feedingSvc)
	reporting.RegisterRoutes(r, reportingSvc)
	breeds.RegisterRoutes(r, breedsSvc)

	return r
}
