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
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	JWT          JWTConfig
	Availability AvailabilityConfig
	Cache        CacheConfig
	Admission    AdmissionConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Metrics      MetricsConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/New_York"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,X-RateLimit-Remaining,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/New_York"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

// AvailabilityConfig carries every numeric threshold of the availability policy.
type AvailabilityConfig struct {
	TimeZone           string         `envconfig:"BUSINESS_TIMEZONE" default:"America/New_York"`
	BusinessHoursFile  string         `envconfig:"BUSINESS_HOURS_FILE"`
	GranularityMinutes int            `envconfig:"SLOT_GRANULARITY_MINUTES" default:"30"`
	BufferMinutes      int            `envconfig:"BOOKING_BUFFER_MINUTES" default:"30"`
	SetupLeadMinutes   int            `envconfig:"BOOKING_SETUP_LEAD_MINUTES" default:"60"`
	ServiceSetupLead   map[string]int `envconfig:"SERVICE_SETUP_LEAD" default:"dj:60,karaoke:45,photography:15"`
	MaxAlternatives    int            `envconfig:"MAX_ALTERNATIVES" default:"3"`
	SearchWindowDays   int            `envconfig:"ALTERNATIVE_SEARCH_DAYS" default:"3"`
	MaxRangeDays       int            `envconfig:"MAX_RANGE_DAYS" default:"366"`
	StoreTimeout       time.Duration  `envconfig:"AVAILABILITY_STORE_TIMEOUT" default:"3s"`
}

type CacheConfig struct {
	Enabled    bool          `envconfig:"AVAILABILITY_CACHE_ENABLED" default:"true"`
	TTL        time.Duration `envconfig:"AVAILABILITY_CACHE_TTL" default:"30s"`
	MaxEntries int           `envconfig:"AVAILABILITY_CACHE_MAX_ENTRIES" default:"1024"`
}

// AdmissionConfig.Mode keeps the historical flag values: "true" enforces,
// "log" only records, anything else disables the gate.
type AdmissionConfig struct {
	Mode    string        `envconfig:"BOOKING_RATE_LIMIT" default:"true"`
	Backend string        `envconfig:"ADMISSION_BACKEND" default:"postgres"`
	Limit   int           `envconfig:"ADMISSION_LIMIT" default:"5"`
	Window  time.Duration `envconfig:"ADMISSION_WINDOW" default:"15m"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled bool    `envconfig:"HTTP_RATE_LIMIT_ENABLED" default:"true"`
	RPS     float64 `envconfig:"HTTP_RATE_LIMIT_RPS" default:"5"`
	Burst   int     `envconfig:"HTTP_RATE_LIMIT_BURST" default:"20"`
}

type MetricsConfig struct {
	Enabled     bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path        string `envconfig:"METRICS_PATH" default:"/metrics"`
	ServiceName string `envconfig:"METRICS_SERVICE_NAME" default:"showtime_booking"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c AvailabilityConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone %q: %w", c.TimeZone, err)
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
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Availability: AvailabilityConfig{
			TimeZone:           "UTC",
			GranularityMinutes: 30,
			BufferMinutes:      30,
			SetupLeadMinutes:   30,
			ServiceSetupLead:   map[string]int{},
			MaxAlternatives:    3,
			SearchWindowDays:   2,
			MaxRangeDays:       366,
			StoreTimeout:       3 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        30 * time.Second,
			MaxEntries: 256,
		},
		Admission: AdmissionConfig{
			Mode:    "true",
			Backend: "memory",
			Limit:   5,
			Window:  15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "showtime_booking_test",
		},
	}
}
