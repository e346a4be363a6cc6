package config

import (
	"fmt"     // For error wrapping
	"net"     // For host:port joining
	"net/url" // For the postgres URL DSN
	"strings" // For splitting list values
	"time"    // For durations

	env "github.com/caarlos0/env/v11" // For parsing environment variables into the struct
	"github.com/go-sql-driver/mysql"  // For formatting the MySQL DSN
	"github.com/joho/godotenv"        // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"8080"`                  // Application port
	DBDriver    string        `env:"DB_DRIVER" envDefault:"mysql"`                // Database driver: mysql or postgres
	DBUser      string        `env:"DB_USER" envDefault:"root"`                   // Database user
	DBPassword  string        `env:"DB_PASSWORD"`                                 // Database password
	DBHost      string        `env:"DB_HOST" envDefault:"127.0.0.1"`              // Database host
	DBPort      string        `env:"DB_PORT"`                                     // Database port, defaults per driver
	DBName      string        `env:"DB_NAME" envDefault:"billing"`                // Database name
	AuthSecret  string        `env:"AUTH_SECRET,required"`                        // Session token signing secret
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"24h"`                // Session token lifetime
	SignInPath  string        `env:"SIGNIN_PATH" envDefault:"/signin"`            // Reserved sign-in page path
	BaseURL     string        `env:"BASE_URL" envDefault:"http://localhost:3000"` // Front-end base URL
	Currency    string        `env:"CURRENCY_SYMBOL" envDefault:"$"`              // Display prefix for prices
	RedisAddr   string        `env:"REDIS_ADDR"`                                  // Redis server address, empty disables caching
	RedisPass   string        `env:"REDIS_PASS"`                                  // Redis password
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`                     // Redis database number
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`                  // Customer list cache lifetime
	SignInLimit int           `env:"SIGNIN_RATE_LIMIT" envDefault:"10"`           // Sign-in attempts per minute per IP
	CORSOrigins string        `env:"CORS_ALLOWED_ORIGINS"`                        // Comma-separated allowed origins
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`                 // Log level
	IsProd      bool          `env:"IS_PROD" envDefault:"false"`                  // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}
	return &cfg, nil
}

// Port returns the configured database port or the driver's standard one
func (c *Config) Port() string {
	if c.DBPort != "" {
		return c.DBPort
	}
	if c.DBDriver == "postgres" {
		return "5432" // PostgreSQL default
	}
	return "3306" // MySQL default
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	addr := net.JoinHostPort(c.DBHost, c.Port()) // host:port, brackets for IPv6
	if c.DBDriver == "postgres" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword), // Escapes reserved characters
			Host:     addr,
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	}
	mc := mysql.NewConfig() // Driver defaults
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = addr
	mc.DBName = c.DBName
	mc.ParseTime = true       // Scan DATETIME into time.Time
	mc.ClientFoundRows = true // UPDATE reports matched rows, so an unchanged row still counts as found
	return mc.FormatDSN()
}

// AllowedOrigins returns the CORS origins as a slice
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
