package infra

import (
	"context"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/crm/docs" // swagger docs
	"github.com/umalmyha/crm/internal/auth"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/event"
	"github.com/umalmyha/crm/internal/handlers"
	"github.com/umalmyha/crm/internal/interceptors"
	"github.com/umalmyha/crm/internal/middleware"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
	"github.com/umalmyha/crm/pkg/db/transactor"
	"github.com/umalmyha/crm/proto"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"google.golang.org/grpc"
)

// Deps are external resources application is built on, MongoClient is set for mongo storage only
type Deps struct {
	Config      config.Config
	Logger      logrus.FieldLogger
	PgPool      *pgxpool.Pool
	MongoClient *mongo.Client
	RedisClient *redis.Client
	Publisher   event.Publisher
	Registry    *prometheus.Registry
}

// App holds services shared by HTTP and gRPC transports
type App struct {
	deps        Deps
	validator   *validation.EchoValidator
	verifier    *auth.Verifier
	authSvc     service.AuthService
	customerSvc service.CustomerService
	addressSvc  service.AddressService
}

// Build wires repositories, caches and services according to configured storage driver
func Build(d Deps) (*App, error) {
	cfg := d.Config

	v, err := validation.New()
	if err != nil {
		return nil, err
	}

	// Transactors
	pgTrx := transactor.NewPgx(d.PgPool)

	// Extra functionality
	jwtCfg := cfg.AuthCfg.JwtCfg
	signer := auth.NewSigner(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	verifier := auth.NewVerifier(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.PublicKey)

	// Repositories
	userRps := repository.NewPostgresUserRepository(pgTrx)
	rfrTokenRps := repository.NewPostgresRefreshTokenRepository(pgTrx)

	var customerRps repository.CustomerRepository
	var addressRps repository.AddressRepository
	var storageTrx transactor.Transactor
	if cfg.StorageDriver == config.StorageDriverMongo {
		db := d.MongoClient.Database(cfg.MongoCfg.Database)
		customerRps = repository.NewMongoCustomerRepository(db)
		addressRps = repository.NewMongoAddressRepository(db)
		storageTrx = transactor.Passthrough
	} else {
		customerRps = repository.NewPostgresCustomerRepository(pgTrx)
		addressRps = repository.NewPostgresAddressRepository(pgTrx)
		storageTrx = pgTrx
	}
	d.Logger.WithField("driver", cfg.StorageDriver).Info("storage for customers and addresses selected")

	// Caches
	customerCache := cache.NewRedisCustomerCache(d.RedisClient, cfg.RedisCfg.TTL)
	addressCache := cache.NewRedisAddressCache(d.RedisClient, cfg.RedisCfg.TTL)

	// Services
	rfrTokenCfg := cfg.AuthCfg.RefreshTokenCfg
	return &App{
		deps:        d,
		validator:   v,
		verifier:    verifier,
		authSvc:     service.NewAuthService(signer, &rfrTokenCfg, pgTrx, userRps, rfrTokenRps),
		customerSvc: service.NewCustomerService(customerRps, addressRps, customerCache, d.Publisher, d.Logger),
		addressSvc:  service.NewAddressService(addressRps, customerRps, addressCache, customerCache, storageTrx, d.Publisher, d.Logger),
	}, nil
}

// Router builds HTTP application
func (a *App) Router() *echo.Echo {
	d := a.deps
	access := d.Config.AuthCfg.AccessCfg

	e := echo.New()
	e.HideBanner = true
	e.Validator = a.validator
	e.JSONSerializer = handlers.JSONSerializer{}
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(d.Logger)

	// Middleware
	httpMetrics := middleware.NewHTTPMetrics(d.Registry)
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{AllowOrigins: d.Config.HTTPCfg.CorsOrigins}))
	e.Use(httpMetrics.Middleware())

	authorizeMw := middleware.Authorize(a.verifier)
	readMw := chain(authorizeMw, middleware.RequireRoles(access.ReadRoles...))
	writeMw := chain(authorizeMw, middleware.RequireRoles(access.WriteRoles...))

	// Operational routes
	healthHandler := handlers.NewHealthHTTPHandler(a.pingers())
	e.GET("/health/live", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	api := e.Group("/api")
	handlers.NewAuthHTTPHandler(a.authSvc).Mount(api)
	handlers.NewCustomerHTTPHandler(a.customerSvc).Mount(api, readMw, writeMw)
	handlers.NewAddressHTTPHandler(a.addressSvc).Mount(api, readMw, writeMw)

	return e
}

// GrpcServer builds gRPC server exposing customers service
func (a *App) GrpcServer() *grpc.Server {
	d := a.deps
	access := d.Config.AuthCfg.AccessCfg
	svc := proto.CustomerServiceName

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.ErrorUnaryInterceptor(d.Logger, interceptors.UnaryApplicableForService(svc)),
		interceptors.AuthUnaryInterceptor(a.verifier, access.ReadRoles, interceptors.UnaryApplicableForMethods(svc, "FindMany", "FindOne")),
		interceptors.AuthUnaryInterceptor(a.verifier, access.WriteRoles, interceptors.UnaryApplicableForMethods(svc, "Create", "Update", "Delete")),
	))
	proto.RegisterCustomerServiceServer(server, handlers.NewCustomerGrpcHandler(a.customerSvc, a.validator))

	return server
}

func (a *App) pingers() map[string]handlers.Pinger {
	d := a.deps

	pingers := map[string]handlers.Pinger{
		"postgres": d.PgPool.Ping,
		"redis": func(ctx context.Context) error {
			return d.RedisClient.Ping(ctx).Err()
		},
	}

	if d.MongoClient != nil {
		pingers["mongo"] = func(ctx context.Context) error {
			return d.MongoClient.Ping(ctx, readpref.Primary())
		}
	}
	return pingers
}

// chain combines middlewares, first one runs first
func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
