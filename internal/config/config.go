package config

import (
	"crypto"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
)

const jwtSigningAlgorithmEd25519 = "EdDSA"

// storage drivers supported for customers and addresses
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CorsOrigins     []string      `env:"HTTP_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

type GrpcCfg struct {
	Port int `env:"GRPC_PORT" envDefault:"3010"`
}

type MongoCfg struct {
	Host        string `env:"MONGO_HOST" envDefault:"localhost"`
	User        string `env:"MONGO_USER" envDefault:""`
	Password    string `env:"MONGO_PASSWORD" envDefault:""`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	Database    string `env:"MONGO_DB" envDefault:"crm"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// URI builds mongo connection string
func (c MongoCfg) URI() string {
	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.User, c.Password, c.Host, c.Port)
}

type PostgresCfg struct {
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

// URI builds postgres connection string, pool settings are passed as query parameters
func (c PostgresCfg) URI() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SslMode, c.PoolMaxConn,
	)
}

// MigrationURI builds postgres connection string understood by migrate pgx driver
func (c PostgresCfg) MigrationURI() string {
	return fmt.Sprintf(
		"pgx://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SslMode,
	)
}

type RedisCfg struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_CACHE_TTL" envDefault:"10m"`
}

type KafkaCfg struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:""`
}

// Enabled reports whether any broker is configured
func (c KafkaCfg) Enabled() bool {
	for _, b := range c.Brokers {
		if b != "" {
			return true
		}
	}
	return false
}

type JwtCfg struct {
	Issuer         string        `env:"AUTH_JWT_ISSUER" envDefault:"customers-api"`
	TimeToLive     time.Duration `env:"AUTH_JWT_TIME_TO_LIVE" envDefault:"10m"`
	PrivateKeyFile string        `env:"AUTH_JWT_PRIVATE_KEY_FILE"`
	PublicKeyFile  string        `env:"AUTH_JWT_PUBLIC_KEY_FILE"`
	SigningMethod  jwt.SigningMethod
	PrivateKey     crypto.PrivateKey
	PublicKey      crypto.PublicKey
}

type RefreshTokenCfg struct {
	MaxCount   int           `env:"AUTH_REFRESH_TOKEN_MAX_COUNT" envDefault:"5"`
	TimeToLive time.Duration `env:"AUTH_REFRESH_TOKEN_TIME_TO_LIVE" envDefault:"720h"`
}

// AccessCfg lists roles allowed to read and change customers and addresses
type AccessCfg struct {
	ReadRoles  []string `env:"AUTH_READ_ROLES" envSeparator:"," envDefault:"user,admin"`
	WriteRoles []string `env:"AUTH_WRITE_ROLES" envSeparator:"," envDefault:"admin,user"`
}

type AuthCfg struct {
	JwtCfg          JwtCfg
	RefreshTokenCfg RefreshTokenCfg
	AccessCfg       AccessCfg
}

type Config struct {
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	HTTPCfg       HTTPCfg
	GrpcCfg       GrpcCfg
	MongoCfg      MongoCfg
	PostgresCfg   PostgresCfg
	RedisCfg      RedisCfg
	KafkaCfg      KafkaCfg
	AuthCfg       AuthCfg
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.StorageDriver != StorageDriverPostgres && cfg.StorageDriver != StorageDriverMongo {
		return cfg, fmt.Errorf("unsupported storage driver %q, must be one of %s, %s", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMongo)
	}

	if err := loadJwtKeys(&cfg.AuthCfg.JwtCfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadJwtKeys(cfg *JwtCfg) error {
	cfg.SigningMethod = jwt.GetSigningMethod(jwtSigningAlgorithmEd25519)

	jwtPrivateKeyBytes, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read private key file for jwt - %w", err)
	}

	jwtPrivateKey, err := jwt.ParseEdPrivateKeyFromPEM(jwtPrivateKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to parse private key for jwt - %w", err)
	}
	cfg.PrivateKey = jwtPrivateKey

	jwtPublicKeyBytes, err := os.ReadFile(cfg.PublicKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read public key file for jwt - %w", err)
	}

	jwtPublicKey, err := jwt.ParseEdPublicKeyFromPEM(jwtPublicKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to parse public key for jwt - %w", err)
	}
	cfg.PublicKey = jwtPublicKey

	return nil
}
