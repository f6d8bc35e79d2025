package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/tiendaverde/storefront/internal/cart"
	"github.com/tiendaverde/storefront/internal/domain/catalog"
	"github.com/tiendaverde/storefront/internal/domain/offer"
	"github.com/tiendaverde/storefront/internal/domain/purchase"
	"github.com/tiendaverde/storefront/internal/fsstore"
	"github.com/tiendaverde/storefront/internal/handler"
	"github.com/tiendaverde/storefront/internal/repository"
	"github.com/tiendaverde/storefront/internal/translate"
	"github.com/tiendaverde/storefront/internal/upstream"
	"github.com/tiendaverde/storefront/pkg/health"
	"github.com/tiendaverde/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()

	// Stores: PostgreSQL when a database URL is configured, otherwise the
	// JSON files of the original deployment.
	var (
		offers offer.Repository
		ledger purchase.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		offers = repository.NewOfferRepository(pool)
		ledger = repository.NewPurchaseRepository(pool)

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	} else {
		lg.Info("No database configured, using file stores",
			zap.String("ofertas", cfg.OfertasFile),
			zap.String("compras", cfg.ComprasFile),
		)
		fileOffers := fsstore.NewOfferStore(cfg.OfertasFile)
		offers = fileOffers
		ledger = fsstore.NewLedger(cfg.ComprasFile)

		healthSvc.AddReadinessCheck("offer-file", time.Second, func(ctx context.Context) error {
			_, err := fileOffers.List(ctx)
			return err
		})
	}

	// External collaborators.
	source := upstream.NewClient(upstream.Config{
		URL:     cfg.Catalog.URL,
		Timeout: cfg.Catalog.Timeout,
	})

	var translator translate.Translator = translate.Noop{}
	if cfg.Translate.Enabled {
		translator = translate.NewGoogleClient(translate.GoogleConfig{
			Endpoint: cfg.Translate.Endpoint,
			Source:   cfg.Translate.Source,
			Target:   cfg.Translate.Target,
			Timeout:  cfg.Translate.Timeout,
		})
	}

	// Domain services.
	catalogSvc := catalog.NewService(source, offers, translator, lg.Named("catalog"))

	var resolver purchase.PriceResolver
	if !cfg.Checkout.TrustClientPrices {
		resolver = catalogSvc
	}
	purchaseSvc := purchase.NewService(ledger, resolver)

	// Cart store.
	var carts cart.Store = cart.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		carts = cart.NewRedisStore(rdb, cfg.Redis.CartTTL)

		healthSvc.AddReadinessCheck("redis", 2*time.Second, func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Mux: health endpoints + storefront routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	handler.New(catalogSvc, purchaseSvc, carts).Register(mux)

	instrumented := otelhttp.NewHandler(mux, "tienda-api",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "X-Cart-ID", "X-Request-ID"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
