// Command server wires the reference data catalog: stores (PostgreSQL or
// in-memory), the per-entity engines with their descriptors, optional Redis
// caching and Kafka event publishing, and the HTTP transport. Business
// logic lives in the internal packages; this file only composes them.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"refdata/internal/catalog/cache"
	"refdata/internal/catalog/core"
	"refdata/internal/catalog/handler"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/service"
	"refdata/internal/catalog/store/memory"
	pgstore "refdata/internal/catalog/store/postgres"
	"refdata/internal/platform/config"
	"refdata/internal/platform/events"
	"refdata/internal/platform/httpserver"
	"refdata/internal/platform/logger"
	"refdata/internal/platform/metrics"
	platformredis "refdata/internal/platform/redis"
	"refdata/internal/platform/token"
	authmw "refdata/pkg/platform/middleware/auth"
	"refdata/pkg/platform/middleware/logging"
	"refdata/pkg/platform/middleware/recovery"
	"refdata/pkg/platform/middleware/request"
	"refdata/pkg/platform/middleware/requesttime"
	"refdata/pkg/platform/tx"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// lazyExists defers the store lookup to call time so descriptors can be
// built before every store exists. Descriptors for mutually referencing
// entities (partner parent, contract pricing) need this.
func lazyExists[A core.Attributes](store *core.Store[A]) core.ExistsFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		return core.ExistsInStore(*store)(ctx, id)
	}
}

func lazyReferrer[A core.Attributes](store *core.Store[A], field string) core.ExistsFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		return core.EnabledReferrerExists(*store, field)(ctx, id)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		bankStore     core.Store[models.BankAttributes]
		currencyStore core.Store[models.CurrencyAttributes]
		sectorStore   core.Store[models.SectorAttributes]
		partnerStore  core.Store[models.PartnerAttributes]
		accountStore  core.Store[models.PartnerAccountAttributes]
		contractStore core.Store[models.ContractAttributes]
		pricingStore  core.Store[models.PricingAttributes]
		bindingStore  core.Store[models.ContractPricingAttributes]
	)

	bankDesc := models.BankDescriptor()
	currencyDesc := models.CurrencyDescriptor()
	sectorDesc := models.SectorDescriptor(core.DependentCheck{
		Description: "an enabled partner",
		Exists:      lazyReferrer(&partnerStore, "sector_id"),
	})
	partnerDesc := models.PartnerDescriptor(models.PartnerRefs{
		SectorExists:  lazyExists(&sectorStore),
		PartnerExists: lazyExists(&partnerStore),
		AccountExists: lazyExists(&accountStore),
	})
	accountDesc := models.PartnerAccountDescriptor(models.PartnerAccountRefs{
		BankExists:     lazyExists(&bankStore),
		CurrencyExists: lazyExists(&currencyStore),
	},
		core.DependentCheck{
			Description: "an enabled partner (commission account)",
			Exists:      lazyReferrer(&partnerStore, "commission_account_id"),
		},
		core.DependentCheck{
			Description: "an enabled partner (activity account)",
			Exists:      lazyReferrer(&partnerStore, "activity_account_id"),
		},
	)
	contractDesc := models.ContractDescriptor(lazyExists(&partnerStore), core.DependentCheck{
		Description: "an enabled contract pricing",
		Exists:      lazyReferrer(&bindingStore, "contract_id"),
	})
	pricingDesc := models.PricingDescriptor(lazyExists(&currencyStore), core.DependentCheck{
		Description: "an enabled contract pricing",
		Exists:      lazyReferrer(&bindingStore, "pricing_id"),
	})
	bindingDesc := models.ContractPricingDescriptor(models.ContractPricingRefs{
		ContractExists: lazyExists(&contractStore),
		PricingExists:  lazyExists(&pricingStore),
	})

	uow := core.NewNopUnitOfWork()
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if err := pgstore.EnsureSchema(ctx, db); err != nil {
			return err
		}
		bankStore = pgstore.New(db, pgstore.BankMapper())
		currencyStore = pgstore.New(db, pgstore.CurrencyMapper())
		sectorStore = pgstore.New(db, pgstore.SectorMapper())
		partnerStore = pgstore.New(db, pgstore.PartnerMapper())
		accountStore = pgstore.New(db, pgstore.PartnerAccountMapper())
		contractStore = pgstore.New(db, pgstore.ContractMapper())
		pricingStore = pgstore.New(db, pgstore.PricingMapper())
		bindingStore = pgstore.New(db, pgstore.ContractPricingMapper())
		uow = tx.NewUnitOfWork(db)
		log.Info("using postgres stores")
	} else {
		bankStore = memory.New(bankDesc)
		currencyStore = memory.New(currencyDesc)
		sectorStore = memory.New(sectorDesc)
		partnerStore = memory.New(partnerDesc)
		accountStore = memory.New(accountDesc)
		contractStore = memory.New(contractDesc)
		pricingStore = memory.New(pricingDesc)
		bindingStore = memory.New(bindingDesc)
		log.Info("using in-memory stores")
	}

	var publisher core.EventPublisher = events.NewRecorder()
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kp.Close()
		publisher = kp
		log.Info("publishing events to kafka", "topic", cfg.Kafka.Topic)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("caching enabled", "ttl", cfg.Redis.CacheTTL)
	}

	m := metrics.New()

	bankSvc := newService(bankDesc, bankStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	currencySvc := newService(currencyDesc, currencyStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	sectorSvc := newService(sectorDesc, sectorStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	partnerSvc := newService(partnerDesc, partnerStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	accountSvc := newService(accountDesc, accountStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	contractSvc := newService(contractDesc, contractStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	pricingSvc := newService(pricingDesc, pricingStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)
	bindingSvc := newService(bindingDesc, bindingStore, uow, publisher, redisClient, cfg.Redis.CacheTTL, log, m)

	tokenSvc := token.NewService(cfg.JWTSigningKey, "refdata")

	r := chi.NewRouter()
	r.Use(recovery.Middleware(log))
	r.Use(request.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(logging.Middleware(log))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authmw.RequireAuth(token.MiddlewareAdapter{Service: tokenSvc}, log))
		handler.NewBank(bankSvc, log).Register(r)
		handler.NewCurrency(currencySvc, log).Register(r)
		handler.NewSector(sectorSvc, log).Register(r)
		handler.NewPartner(partnerSvc, log).Register(r)
		handler.NewPartnerAccount(accountSvc, log).Register(r)
		handler.NewContract(contractSvc, log).Register(r)
		handler.NewPricing(pricingSvc, log).Register(r)
		handler.NewContractPricing(bindingSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting refdata server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newService assembles the engine and service for one entity type with the
// shared infrastructure.
func newService[A service.Attributes](
	desc core.Descriptor[A],
	store core.Store[A],
	uow core.UnitOfWork,
	publisher core.EventPublisher,
	redisClient *platformredis.Client,
	cacheTTL time.Duration,
	log *slog.Logger,
	m *metrics.Metrics,
) *service.Service[A] {
	engine := core.NewEngine(desc, store,
		core.WithUnitOfWork[A](uow),
		core.WithPublisher[A](publisher),
		core.WithLogger[A](log),
	)
	opts := []service.Option[A]{
		service.WithLogger[A](log),
		service.WithMetrics[A](m),
	}
	if redisClient != nil {
		opts = append(opts, service.WithCache(cache.New[A](redisClient.Client, desc.Kind, cacheTTL)))
	}
	return service.New(engine, opts...)
}
