package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	httpHandler "github.com/anthanhphan/icon-layout-configurator/internal/images/adapter/inbound/http"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/adapter/outbound/disk"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/config"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/service"
	"github.com/anthanhphan/icon-layout-configurator/pkg/idgen"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	redisClient *redis.Client
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Storage root is created up front, not on first write
	store, err := disk.New(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// 4. Timestamp source
	clock, redisClient := newClock(cfg.Clock)

	// 5. Service & HTTP Server
	svc := service.NewImageService(store, idgen.NewStamper(clock), cfg.Server.PublicBaseURL)
	httpServer := httpHandler.NewServer(cfg, svc)

	return &App{
		cfg:         cfg,
		server:      httpServer,
		redisClient: redisClient,
	}, nil
}

// newClock returns the configured clock. The Redis client is returned so it
// can be closed on shutdown; it is nil for the system clock.
func newClock(cfg config.ClockConfig) (idgen.Clock, *redis.Client) {
	if cfg.Source != config.ClockRedis {
		return &idgen.SystemClock{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logger.Infow("Using Redis clock for upload stamps", "addr", cfg.Redis.Addr)
	return idgen.NewRedisClock(client, time.Duration(cfg.Redis.TimeoutMS)*time.Millisecond), client
}

func (a *App) Run() error {
	logger.Infow("Image service starting",
		"addr", a.cfg.Server.Addr,
		"storage_dir", a.cfg.Storage.Dir,
		"clock", a.cfg.Clock.Source,
	)
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
		logger.Errorw("Image server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down image service")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("Image service shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.Warnw("Redis client close failed", "error", err.Error())
		}
	}

	return runErr
}
