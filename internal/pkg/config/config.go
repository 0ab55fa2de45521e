package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Booking   BookingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`

	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`

	TxMaxRetries   int           `envconfig:"DB_TX_MAX_RETRIES" default:"3"`
	TxRetryBackoff time.Duration `envconfig:"DB_TX_RETRY_BACKOFF" default:"100ms"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the external auth service; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type BookingConfig struct {
	LeadTime      time.Duration `envconfig:"BOOKING_LEAD_TIME" default:"1h"`
	TimeZone      string        `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	WindowDays    int           `envconfig:"BOOKING_WINDOW_DAYS" default:"14"`
	MaxWindowDays int           `envconfig:"BOOKING_MAX_WINDOW_DAYS" default:"60"`
	InitialStatus string        `envconfig:"BOOKING_INITIAL_STATUS" default:"confirmed"`
}

// Empty RedisAddr disables the availability template cache.
type CacheConfig struct {
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TemplateTTL   time.Duration `envconfig:"CACHE_TEMPLATE_TTL" default:"60s"`
}

type RateLimitConfig struct {
	BookingsPerMinute int `envconfig:"RATE_LIMIT_BOOKINGS_PER_MINUTE" default:"10"`
	Burst             int `envconfig:"RATE_LIMIT_BURST" default:"3"`
}

// MigrationConfig is loaded by cmd/migrate, which needs none of the server settings.
type MigrationConfig struct {
	DB       DBConfig
	Dir      string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	AtlasBin string `envconfig:"ATLAS_BIN" default:"atlas"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func LoadMigrationConfig() (MigrationConfig, error) {
	var cfg MigrationConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return MigrationConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,

			ConnectTimeout: 5 * time.Second,

			TxMaxRetries:   3,
			TxRetryBackoff: 10 * time.Millisecond,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Booking: BookingConfig{
			LeadTime:      time.Hour,
			TimeZone:      "UTC",
			WindowDays:    14,
			MaxWindowDays: 60,
			InitialStatus: "confirmed",
		},
		Cache: CacheConfig{
			TemplateTTL: time.Minute,
		},
		RateLimit: RateLimitConfig{
			BookingsPerMinute: 600,
			Burst:             100,
		},
	}
}
