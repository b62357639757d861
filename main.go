package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/catalog"
	"github.com/example/corneal-ai/internal/config"
	"github.com/example/corneal-ai/internal/grpcclient"
	"github.com/example/corneal-ai/internal/handlers"
	"github.com/example/corneal-ai/internal/logging"
	"github.com/example/corneal-ai/internal/repository"
	"github.com/example/corneal-ai/internal/scorer"
	"github.com/example/corneal-ai/internal/storage"
	"github.com/example/corneal-ai/internal/usecase"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db := initDatabase(ctx, cfg, logger)
	analysisRepo := repository.NewAnalysisRepository(db, logger)
	if err := analysisRepo.AutoMigrate(ctx); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}
	userRepo := repository.NewUserRepository(db, logger)
	if err := userRepo.AutoMigrate(ctx); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	redisCtx, redisCancel := context.WithTimeout(ctx, 5*time.Second)
	defer redisCancel()
	redisClient := initRedis(redisCtx, cfg, logger)
	cache := usecase.NewRedisCache(redisClient)

	imageScorer, scorerConn, modelLoaded := initScorer(ctx, cfg, logger)
	if scorerConn != nil {
		defer scorerConn.Close()
	}

	var artifacts usecase.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		store, err := storage.New(ctx, cfg.Minio.Endpoint, cfg.Minio.Region, cfg.Minio.Bucket, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, logger)
		if err != nil {
			logger.Fatal("failed to connect to object store", zap.Error(err))
		}
		artifacts = store
	}

	var provider auth.Provider
	if cfg.Auth.ProviderURL != "" {
		provider = auth.NewHTTPProvider(cfg.Auth.ProviderURL)
	}

	analyses := usecase.NewAnalysisUseCase(analysisRepo, cache, imageScorer, artifacts, catalog.Corneal(), logger, cfg.Scorer.Timeout.Std())
	sessions := usecase.NewSessionUseCase(userRepo, cache, provider, logger, cfg.Auth.SessionTTL.Std())
	users := usecase.NewUserUseCase(userRepo, logger)

	r := gin.Default()
	r.MaxMultipartMemory = handlers.MaxUploadSize

	mw := auth.NewMiddleware(sessions, cfg.Auth.JWTSecret, cfg.Auth.JWTAudience)
	h := handlers.New(analyses, sessions, users, modelLoaded, cfg.Auth.SecureCookies, cfg.Auth.CookieDomain)
	handlers.RegisterRoutes(r, h, mw)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	logger.Info("corneal diagnostics API listening", zap.String("addr", cfg.Server.Addr), zap.Bool("model_loaded", modelLoaded))
	if err := serveHTTPServer(server, cfg.Server.ShutdownTimeout.Std(), logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initDatabase(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to access db handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		zapLogger.Fatal("database ping failed", zap.Error(err))
	}

	return db
}

func initRedis(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

// initScorer dials the inference service when one is configured. When it is
// absent or unreachable the service still starts, degraded, on the synthetic
// fallback scorer; /api/health exposes the difference.
func initScorer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (scorer.Scorer, *grpc.ClientConn, bool) {
	if cfg.Scorer.Addr == "" {
		logger.Warn("no scorer configured, running degraded on the synthetic fallback")
		return scorer.NewSynthetic(logger), nil, false
	}

	client, conn, err := grpcclient.DialScorer(ctx, cfg.Scorer.Addr, logger)
	if err != nil {
		logger.Warn("scorer unreachable, running degraded on the synthetic fallback",
			zap.Error(err), zap.String("addr", cfg.Scorer.Addr))
		return scorer.NewSynthetic(logger), nil, false
	}
	return client, conn, true
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
