package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-sheet-charts/internal/adapter/inbound/http"
	"github.com/anthanhphan/go-sheet-charts/internal/adapter/outbound/blob"
	"github.com/anthanhphan/go-sheet-charts/internal/adapter/outbound/memstore"
	"github.com/anthanhphan/go-sheet-charts/internal/adapter/outbound/redisstore"
	"github.com/anthanhphan/go-sheet-charts/internal/config"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/go-sheet-charts/internal/service"
	"github.com/anthanhphan/go-sheet-charts/pkg/idgen"
	"github.com/anthanhphan/go-sheet-charts/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg        *config.Config
	store      port.ResourceStore
	server     *httpHandler.Server
	reconciler *service.Reconciler
	pool       *resilience.WorkerPool
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Resource store and ID generator clock
	var store port.ResourceStore
	var clock idgen.Clock
	switch cfg.Store.Backend {
	case "memory":
		store = memstore.New(memstore.Options{
			ScanInterval: time.Duration(cfg.Store.MemScanIntervalMS) * time.Millisecond,
		})
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := redisstore.New(redisClient, cfg.Redis.DB)
		// Deletion events require keyspace notifications; enabling them
		// is the one piece of store schema this service owns.
		if err := rs.EnsureNotifications(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to enable store notifications: %w", err)
		}
		store = rs
		clock = idgen.NewRedisClock(redisClient)
	}

	idGen, err := idgen.New(cfg.App.NodeID, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	// 4. Payload store
	payloads, err := blob.New(cfg.App.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init payload store: %w", err)
	}

	// 5. Services
	pool := resilience.NewWorkerPool(cfg.App.BackgroundWorkers, cfg.App.BackgroundQueueLen)
	fileSvc := service.NewFileService(store, payloads, idGen, pool, time.Duration(cfg.App.ProcessingDelayMS)*time.Millisecond)
	chartSvc := service.NewChartService(store, idGen)
	statsSvc := service.NewStatsService(store)

	reconciler := service.NewReconciler(store, payloads, service.ReconcilerConfig{
		SweepInterval:        time.Duration(cfg.App.SweepIntervalS) * time.Second,
		StaleProcessingAfter: time.Duration(cfg.App.StaleProcessingS) * time.Second,
		PayloadGrace:         time.Duration(cfg.App.PayloadGraceS) * time.Second,
	})

	// 6. HTTP Server
	server := httpHandler.NewServer(cfg, fileSvc, chartSvc, statsSvc, payloads)

	return &App{
		cfg:        cfg,
		store:      store,
		server:     server,
		reconciler: reconciler,
		pool:       pool,
	}, nil
}

func (a *App) Run() error {
	a.reconciler.Start(context.Background())

	logger.Infow("Sheet-charts service starting", "addr", a.cfg.Server.Addr, "store", a.cfg.Store.Backend)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down services")
	a.reconciler.Stop()
	a.pool.Close()
	a.pool.Wait()
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.store.Close(); err != nil {
		logger.Errorw("Store close error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}
