package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/event"
	"github.com/umalmyha/crm/internal/infra"
	"github.com/umalmyha/crm/migrations"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultConnectTimeout = 5 * time.Second

// @title                      CRM API
// @version                    1.0
// @description                Customers and addresses management API
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("failed to load .env file - %s", err)
	}

	cfg, err := config.Build()
	if err != nil {
		logger.Fatal(err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("failed to parse log level - %s", err)
	}
	logger.SetLevel(level)

	if err := start(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func start(cfg config.Config, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	pool, err := infra.Postgresql(ctx, cfg.PostgresCfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := infra.Migrate(migrations.FS, cfg.PostgresCfg.MigrationURI(), logger); err != nil {
		return err
	}

	rdb, err := infra.Redis(ctx, cfg.RedisCfg)
	if err != nil {
		return err
	}
	defer closeRedis(rdb, logger)

	var mongoClient *mongo.Client
	if cfg.StorageDriver == config.StorageDriverMongo {
		mongoClient, err = infra.Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return err
		}
		defer disconnectMongo(mongoClient, logger)
	}

	publisher := event.NewLogPublisher(logger)
	if cfg.KafkaCfg.Enabled() {
		publisher = event.NewKafkaPublisher(cfg.KafkaCfg.Brokers, logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Errorf("failed to close event publisher - %s", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := infra.Build(infra.Deps{
		Config:      cfg,
		Logger:      logger,
		PgPool:      pool,
		MongoClient: mongoClient,
		RedisClient: rdb,
		Publisher:   publisher,
		Registry:    registry,
	})
	if err != nil {
		return err
	}

	return serve(app, cfg, logger, pool)
}

func serve(app *infra.App, cfg config.Config, logger *logrus.Logger, pool *pgxpool.Pool) error {
	e := app.Router()
	grpcSrv := app.GrpcServer()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GrpcCfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen grpc port - %w", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 2)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		errorCh <- e.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	go func() {
		logger.Infof("grpc server is listening on %s", lis.Addr())
		errorCh <- grpcSrv.Serve(lis)
	}()

	select {
	case <-shutdownCh:
		logger.Info("shutdown signal has been sent, stopping the servers...")
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("shutting down the servers, unexpected error occurred - %s", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
	defer cancel()

	grpcSrv.GracefulStop()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop http server gracefully - %w", err)
	}

	logger.WithField("acquiredConns", pool.Stat().AcquiredConns()).Info("servers stopped")
	return nil
}

func closeRedis(rdb *redis.Client, logger logrus.FieldLogger) {
	if err := rdb.Close(); err != nil {
		logger.Errorf("failed to close redis connection - %s", err)
	}
}

func disconnectMongo(client *mongo.Client, logger logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Errorf("failed to disconnect from mongo - %s", err)
	}
}
