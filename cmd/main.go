package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"linebook/internal/adapters"
	"linebook/internal/adapters/chessrules"
	"linebook/internal/bootstrap"
	explorerDelivery "linebook/internal/delivery/explorer"
	ownMiddleware "linebook/internal/middleware"
	repo "linebook/internal/repository"
	explorerUC "linebook/internal/usecase/explorer"
)

type mainDeliveryHandler struct {
	explorer *explorerDelivery.ExplorerHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}

	logger := NewLogger(cfg.LogDevelopment)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go handleShutdown(ctx, cancel, srv, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger(development bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.explorer.Routes(r)
	r.Handle("/metrics", promhttp.Handler())
}

// initDatabaseAdapters connects only the stores that are configured. The
// explorer works without either: no cache means recompiling every request,
// no Mongo means saved lines are unavailable.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	adaptersSet := &dataBaseAdapters{}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
		adaptersSet.mongoAdapter = mongoAdapter
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		adaptersSet.redisAdapter = redisAdapter
	}

	log.Infof("database adapters initialized (mongo=%t, redis=%t)", adaptersSet.mongoAdapter != nil, adaptersSet.redisAdapter != nil)
	return adaptersSet
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	opts := []explorerUC.Option{explorerUC.WithShareBase(cfg.ShareBaseUrl)}
	if databaseAdapters.redisAdapter != nil {
		cache := repo.NewRedisDocumentCache(databaseAdapters.redisAdapter.GetClient(), cfg.CacheTTL())
		opts = append(opts, explorerUC.WithCache(cache))
	}
	if databaseAdapters.mongoAdapter != nil {
		store := repo.NewLineRepository(log, databaseAdapters.mongoAdapter.Database)
		opts = append(opts, explorerUC.WithStore(store))
	}

	uc := explorerUC.NewExplorerUseCase(chessrules.New(), log, opts...)

	return &mainDeliveryHandler{
		explorer: explorerDelivery.NewExplorerHandler(cfg, log, uc),
	}
}

func handleShutdown(ctx context.Context, cancelFunc context.CancelFunc, srv *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigs:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown: %v", err)
	}
	cancelFunc()
}
