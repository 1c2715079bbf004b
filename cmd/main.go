package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"orderhub/internal/cache"
	"orderhub/internal/config"
	httpapi "orderhub/internal/http"
	"orderhub/internal/logging"
	"orderhub/internal/repository"
	"orderhub/internal/service"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}
	cfgDir := os.Getenv("ORDERHUB_CONFIG_DIR")
	if cfgDir == "" {
		cfgDir = "configs"
	}

	cfg, err := config.Load(cfgDir, env)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}
	defer cleanup()

	ordersSvc := service.NewOrderService(repos,
		service.NewRandomHubSelector(cfg.Orders.HubIDs, nil),
		service.WithTotalReconciliation(cfg.Orders.ReconcileTotal),
	)
	srv := httpapi.NewServer(ordersSvc)

	httpServer := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      srv.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr, "env", env, "storage", cfg.Storage.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func buildRepositories(cfg config.Config) (service.Repositories, func(), error) {
	var repos service.Repositories
	closers := []func(){}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Storage.Driver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return repos, cleanup, err
		}
		closers = append(closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			cleanup()
			return repos, func() {}, err
		}
		store := repository.NewPgStore(pool)
		if err := store.Migrate(ctx); err != nil {
			cleanup()
			return repos, func() {}, err
		}
		repos = service.Repositories{
			Customers: repository.NewPgCustomers(store),
			Products:  repository.NewPgProducts(store),
			Hubs:      repository.NewPgHubs(store),
			Statuses:  repository.NewPgStatuses(store),
			Orders:    repository.NewPgOrders(store),
			Tx:        repository.NewPgTx(store),
		}
	default:
		seed, err := cfg.Seed.Data()
		if err != nil {
			return repos, cleanup, err
		}
		store := repository.NewMemoryStore()
		repository.Seed(store, seed)
		repos = service.Repositories{
			Customers: repository.NewMemoryCustomers(store),
			Products:  store,
			Hubs:      repository.NewMemoryHubs(store),
			Statuses:  repository.NewMemoryStatuses(store),
			Orders:    repository.NewMemoryOrders(store),
			Tx:        repository.NewMemoryTx(store),
		}
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		closers = append(closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			cleanup()
			return repos, func() {}, err
		}
		repos.Customers = cache.NewCustomers(rdb, cfg.Redis.TTL, cfg.Redis.Prefix, repos.Customers)
		repos.Hubs = cache.NewHubs(rdb, cfg.Redis.TTL, cfg.Redis.Prefix, repos.Hubs)
	}

	return repos, cleanup, nil
}
