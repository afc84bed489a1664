package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

type Config struct {
	Port     string `envconfig:"PORT"      default:"3000"`
	GrpcPort string `envconfig:"GRPC_PORT" default:":50051"` // empty disables gRPC
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver     string `envconfig:"STORAGE_DRIVER"      default:"file"`
	ViewCounterDriver string `envconfig:"VIEW_COUNTER_DRIVER"`
	ProductsFile      string `envconfig:"PRODUCTS_FILE"       default:"products.json"`
	ViewsFile         string `envconfig:"VIEWS_FILE"          default:"views.json"`

	UploadsDir       string `envconfig:"UPLOADS_DIR"        default:"uploads"`
	UploadsURLPrefix string `envconfig:"UPLOADS_URL_PREFIX" default:"/uploads"`
	MaxUploadMB      int64  `envconfig:"MAX_UPLOAD_MB"      default:"32"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"marketplace.db"`

	RedisAddr     string `envconfig:"REDIS_ADDR"     default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"       default:"0"`
	RedisViewKey  string `envconfig:"REDIS_VIEW_KEY" default:"marketplace:view_count"`

	CORSAllowOrigin string `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Process()
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: Port=%s, GRPC Port=%s, LogLevel=%s", config.Port, config.GrpcPort, config.LogLevel)
		logger.Infof("Configuration loaded: StorageDriver=%s, ViewCounterDriver=%s, UploadsDir=%s",
			config.StorageDriver, config.ViewCounterDriver, config.UploadsDir)
	})
	return &config
}

// Process reads the environment into a validated Config without touching .env files.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.ViewCounterDriver = strings.ToLower(strings.TrimSpace(c.ViewCounterDriver))
	if c.ViewCounterDriver == "" {
		c.ViewCounterDriver = c.StorageDriver
	}
	if !strings.HasPrefix(c.UploadsURLPrefix, "/") {
		c.UploadsURLPrefix = "/" + c.UploadsURLPrefix
	}
	if len(c.UploadsURLPrefix) > 1 {
		c.UploadsURLPrefix = strings.TrimRight(c.UploadsURLPrefix, "/")
	}
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.ViewCounterDriver {
	case DriverMemory, DriverFile, DriverPostgres, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unsupported VIEW_COUNTER_DRIVER %q", c.ViewCounterDriver)
	}
	if c.UsesDriver(DriverPostgres) && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
	}
	if c.UploadsURLPrefix == "/" {
		return fmt.Errorf("UPLOADS_URL_PREFIX cannot be the site root")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// UsesDriver reports whether the product store or the view counter uses driver.
func (c *Config) UsesDriver(driver string) bool {
	return c.StorageDriver == driver || c.ViewCounterDriver == driver
}

// ListenAddr accepts both "3000" and ":3000" forms of PORT.
func (c *Config) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
