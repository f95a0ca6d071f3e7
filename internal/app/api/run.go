package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogcache "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/cache/redis"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	usermemory "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-storefront/internal/platform/redis"
	storefront "github.com/Apurer/go-gin-storefront/web"
)

const serviceName = "storefront"

// Run boots the storefront with observability, repositories, and caches wired.
// It blocks until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	cacheClient, closeCache := platformredis.ConnectOrSkip(ctx, cfg.RedisAddr, logger)
	defer closeCache()

	catalogService, err := buildCatalogService(ctx, cfg, db, cacheClient, instruments)
	if err != nil {
		return err
	}

	registry := cartmemory.NewRegistry(
		cartmemory.WithMaxSessions(cfg.CartMaxSessions),
		cartmemory.WithIdleTTL(cfg.CartSessionIdleTTL),
		cartmemory.WithLogger(logger),
		cartmemory.WithMeter(instruments.Meter("internal.cart.registry")),
	)
	cartService := cartobs.New(
		cartapp.NewService(registry, cartcatalog.NewLookup(catalogService)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	userRepo, sessions := buildUserStores(db)
	userService := userobs.New(
		userapp.NewService(userRepo, sessions, userapp.WithSessionTTL(cfg.SessionTTL)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	if cfg.SessionPurgeInterval > 0 {
		go purgeSessions(ctx, sessions, cfg.SessionPurgeInterval, logger)
	}

	router := storefront.NewRouter(
		storefront.Dependencies{Cart: cartService, Catalog: catalogService, Users: userService, Carts: registry},
		storefront.Settings{
			SessionCookieName: cfg.SessionCookieName,
			CookieSecure:      cfg.SessionCookieSecure,
			LoginTTL:          cfg.SessionTTL,
			Logger:            logger,
		},
		otelgin.Middleware(serviceName),
	)
	return serve(ctx, ":"+cfg.Port, router, logger)
}

func buildCatalogService(ctx context.Context, cfg Config, db *gorm.DB, cacheClient *goredis.Client, instruments *platformobservability.Instruments) (catalogports.Service, error) {
	logger := instruments.Logger
	var core *catalogapp.Service
	if db != nil {
		logger.Info("catalog repositories configured with postgres")
		core = catalogapp.NewService(
			catalogpostgres.NewProductRepository(db),
			catalogpostgres.NewCategoryRepository(db),
			catalogpostgres.NewSupplierRepository(db),
		)
	} else {
		core = catalogapp.NewService(
			catalogmemory.NewProductRepository(),
			catalogmemory.NewCategoryRepository(),
			catalogmemory.NewSupplierRepository(),
		)
	}
	if cfg.CatalogSeed {
		if err := core.Seed(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	var service catalogports.Service = core
	if cacheClient != nil {
		service = catalogcache.New(core, cacheClient,
			catalogcache.WithTTL(cfg.CatalogCacheTTL),
			catalogcache.WithLogger(logger),
		)
	}
	return catalogobs.New(service,
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	), nil
}

func buildUserStores(db *gorm.DB) (userports.Repository, userports.SessionStore) {
	if db == nil {
		return usermemory.NewRepository(), usermemory.NewSessionStore()
	}
	return userpostgres.NewRepository(db), userpostgres.NewSessionStore(db)
}

func purgeSessions(ctx context.Context, sessions userports.SessionStore, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("expired login sessions purged", slog.Int64("count", purged))
		}
	}
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down storefront")
	return server.Shutdown(shutdownCtx)
}
