package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prakashthakuri/Happy-Hours/api/controllers"
	"github.com/prakashthakuri/Happy-Hours/api/routes"
	"github.com/prakashthakuri/Happy-Hours/internal/payments"
	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	"github.com/prakashthakuri/Happy-Hours/pkg/metrics"
	"github.com/prakashthakuri/Happy-Hours/pkg/migrate"
	"github.com/prakashthakuri/Happy-Hours/pkg/redis"
	"github.com/prakashthakuri/Happy-Hours/pkg/square"
	"github.com/prakashthakuri/Happy-Hours/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	locker, err := redis.NewUserLocker(redisClient, cfg.Locks.TTL, cfg.Locks.Wait)
	if err != nil {
		logg.Error(context.Background(), "failed to create user locker", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	paymentMetrics := metrics.NewPaymentMetrics(reg)

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}
	squareClient, err := square.NewClient(context.Background(), cfg.Square, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap square", err)
		os.Exit(1)
	}
	squareGateway := payments.NewSquareGateway(squareClient)
	paymentAdapter, err := payments.NewAdapter(cfg.Payments, map[enums.PaymentMethod]payments.Gateway{
		enums.PaymentMethodCardGateway:        payments.NewStripeGateway(stripeClient),
		enums.PaymentMethodAlternatePayWallet: squareGateway,
		enums.PaymentMethodGiftCard:           squareGateway,
	}, paymentMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment adapter", err)
		os.Exit(1)
	}

	svcs, err := newServices(serviceDeps{
		DB:      dbClient,
		Locker:  locker,
		Charger: paymentAdapter,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	readiness := map[string]controllers.Pinger{
		"db":    dbClient,
		"redis": redisClient,
	}
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			readiness,
			redisClient,
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			svcs.catalog,
			svcs.cart,
			svcs.checkout,
			svcs.orders,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}
