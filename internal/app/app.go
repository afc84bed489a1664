package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"marketplace_service/config"
	"marketplace_service/internal/delivery"
	grpcHandler "marketplace_service/internal/delivery/grpc"
	"marketplace_service/internal/domain"
	"marketplace_service/internal/repository"
	"marketplace_service/internal/storage"
	"marketplace_service/internal/usecase"
	"marketplace_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

// App owns the backends selected by configuration and the HTTP and gRPC servers on top.
type App struct {
	cfg *config.Config
	log *logrus.Logger

	router     *gin.Engine
	grpcServer *grpclib.Server
	health     *health.Server

	postgres *sql.DB
	sqlite   *gorm.DB
	redis    *redis.Client
}

func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	productRepo, err := a.productRepository(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	viewCounter, err := a.viewCounter(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	images, err := storage.NewDiskImageStore(cfg.UploadsDir, cfg.UploadsURLPrefix, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	logger.Info("Repositories initialized.")

	productUseCase := usecase.NewProductUseCase(productRepo, images, logger)
	viewUseCase := usecase.NewViewUseCase(viewCounter, logger)
	logger.Info("Use cases initialized.")

	productHandler := delivery.NewProductHandler(productUseCase, logger)
	viewHandler := delivery.NewViewHandler(viewUseCase, logger)
	a.router = delivery.NewRouter(delivery.RouterConfig{
		UploadsDir:         cfg.UploadsDir,
		UploadsURLPrefix:   cfg.UploadsURLPrefix,
		MaxMultipartMemory: cfg.MaxUploadMB << 20,
		CORSAllowOrigin:    cfg.CORSAllowOrigin,
	}, productHandler, viewHandler, logger)

	a.grpcServer = grpclib.NewServer(grpclib.UnaryInterceptor(grpcHandler.LoggingInterceptor(logger)))
	grpcHandler.RegisterMarketplaceServer(a.grpcServer, grpcHandler.NewMarketplaceHandler(productUseCase, viewUseCase, logger))
	a.health = health.NewServer()
	healthpb.RegisterHealthServer(a.grpcServer, a.health)
	a.health.SetServingStatus(grpcHandler.ServiceName, healthpb.HealthCheckResponse_SERVING)
	logger.Info("Handlers initialized.")

	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) GRPCServer() *grpclib.Server {
	return a.grpcServer
}

// Run serves HTTP (and gRPC when GRPC_PORT is set) until ctx is cancelled or a server fails,
// then shuts both down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.log.Infof("Starting server on port %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.cfg.GrpcPort != "" {
		lis, err := net.Listen("tcp", a.cfg.GrpcPort)
		if err != nil {
			errCh <- fmt.Errorf("failed to listen on port %s: %w", a.cfg.GrpcPort, err)
		} else {
			go func() {
				a.log.Infof("gRPC server listening on %s", a.cfg.GrpcPort)
				if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
					errCh <- fmt.Errorf("grpc server: %w", err)
				}
			}()
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Warn("Shutdown signal received...")
	case runErr = <-errCh:
		a.log.Errorf("Server failed: %v", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.health.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("HTTP server shutdown error: %v", err)
	}
	a.grpcServer.GracefulStop()
	a.log.Info("Servers stopped.")
	return runErr
}

func (a *App) Close() error {
	var errs []error
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	if a.sqlite != nil {
		if sqlDB, err := a.sqlite.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}

func (a *App) productRepository(ctx context.Context) (domain.ProductRepository, error) {
	switch a.cfg.StorageDriver {
	case config.DriverMemory:
		a.log.Warn("Products are kept in memory and will be lost on restart")
		return repository.NewMemoryProductRepository(a.log), nil
	case config.DriverFile:
		return repository.NewFileProductRepository(a.cfg.ProductsFile, a.log), nil
	case config.DriverPostgres:
		database, err := a.postgresDB(ctx)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresProductRepository(ctx, database, a.log)
	case config.DriverSQLite:
		database, err := a.sqliteDB()
		if err != nil {
			return nil, err
		}
		return repository.NewGormProductRepository(ctx, database, a.log)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", a.cfg.StorageDriver)
	}
}

func (a *App) viewCounter(ctx context.Context) (domain.ViewCounter, error) {
	switch a.cfg.ViewCounterDriver {
	case config.DriverMemory:
		return repository.NewMemoryViewCounter(), nil
	case config.DriverFile:
		return repository.NewFileViewCounter(a.cfg.ViewsFile, a.log), nil
	case config.DriverPostgres:
		database, err := a.postgresDB(ctx)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresViewCounter(ctx, database, a.log)
	case config.DriverSQLite:
		database, err := a.sqliteDB()
		if err != nil {
			return nil, err
		}
		return repository.NewGormViewCounter(ctx, database, a.log)
	case config.DriverRedis:
		if a.redis == nil {
			rdb, err := db.ConnectRedis(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
			if err != nil {
				return nil, err
			}
			a.redis = rdb
			a.log.Infof("Redis connection established at %s.", a.cfg.RedisAddr)
		}
		return repository.NewRedisViewCounter(a.redis, a.cfg.RedisViewKey, a.log), nil
	default:
		return nil, fmt.Errorf("unsupported view counter driver %q", a.cfg.ViewCounterDriver)
	}
}

func (a *App) postgresDB(ctx context.Context) (*sql.DB, error) {
	if a.postgres != nil {
		return a.postgres, nil
	}
	database, err := db.ConnectPostgres(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.postgres = database
	a.log.Info("Database connection established.")
	return database, nil
}

func (a *App) sqliteDB() (*gorm.DB, error) {
	if a.sqlite != nil {
		return a.sqlite, nil
	}
	database, err := db.ConnectSQLite(a.cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	a.sqlite = database
	a.log.Infof("SQLite database opened at %s.", a.cfg.SQLitePath)
	return database, nil
}
