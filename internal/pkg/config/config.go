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
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Metrics     MetricsConfig
	Reservation ReservationConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// Tokens are issued by the identity service; we only verify them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

// Empty Addr disables the availability cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"2m"`
	Prefix   string        `envconfig:"REDIS_KEY_PREFIX" default:"shopres"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// Defaults applied to every shop whose stored settings omit a field.
type ReservationConfig struct {
	TimeZone                   string        `envconfig:"RESERVATION_TIMEZONE" default:"Asia/Tokyo"`
	PhoneRegion                string        `envconfig:"RESERVATION_PHONE_REGION" default:"JP"`
	DefaultConfirmationMode    string        `envconfig:"RESERVATION_DEFAULT_CONFIRMATION_MODE" default:"auto"`
	DefaultCancellationHours   int           `envconfig:"RESERVATION_DEFAULT_CANCELLATION_HOURS" default:"24"`
	DefaultMaxAdvanceDays      int           `envconfig:"RESERVATION_DEFAULT_MAX_ADVANCE_DAYS" default:"60"`
	DefaultMinAdvanceHours     int           `envconfig:"RESERVATION_DEFAULT_MIN_ADVANCE_HOURS" default:"1"`
	DefaultAllowAnyStaff       bool          `envconfig:"RESERVATION_DEFAULT_ALLOW_ANY_STAFF" default:"true"`
	DefaultSlotDurationMinutes int           `envconfig:"RESERVATION_DEFAULT_SLOT_DURATION_MINUTES" default:"30"`
	IdempotencyTTL             time.Duration `envconfig:"RESERVATION_IDEMPOTENCY_TTL" default:"24h"`
	ListDefaultLimit           int           `envconfig:"RESERVATION_LIST_DEFAULT_LIMIT" default:"50"`
	ListMaxLimit               int           `envconfig:"RESERVATION_LIST_MAX_LIMIT" default:"200"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c ReservationConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid RESERVATION_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
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
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Redis: RedisConfig{
			TTL:    time.Minute,
			Prefix: "shopres-test",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		Reservation: ReservationConfig{
			TimeZone:                   "Asia/Tokyo",
			PhoneRegion:                "JP",
			DefaultConfirmationMode:    "auto",
			DefaultCancellationHours:   24,
			DefaultMaxAdvanceDays:      60,
			DefaultMinAdvanceHours:     1,
			DefaultAllowAnyStaff:       true,
			DefaultSlotDurationMinutes: 30,
			IdempotencyTTL:             24 * time.Hour,
			ListDefaultLimit:           50,
			ListMaxLimit:               200,
		},
	}
}
