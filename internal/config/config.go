package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	DBAutoMigrate bool
	DBLogLevel    string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret     string
	JWTTTLMinutes int

	LogLevel  string
	LogFormat string

	FeatureFlags      string
	AuthRatePerMinute int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads .env (if present, never overriding the real environment) and
// then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "offers"),
		MySQLUser: getenv("MYSQL_USER", "offers"),
		MySQLPass: getenv("MYSQL_PASS", "offers"),

		DBAutoMigrate: getbool("DB_AUTO_MIGRATE", false),
		DBLogLevel:    getenv("DB_LOG_LEVEL", "warn"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: getenv("REDIS_PASS", ""),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:     getenv("JWT_SECRET", ""),
		JWTTTLMinutes: getint("JWT_TTL_MINUTES", 60),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		FeatureFlags:      getenv("FEATURE_FLAGS", ""),
		AuthRatePerMinute: getint("AUTH_RATE_PER_MINUTE", 10),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("invalid JWT_TTL_MINUTES %d", c.JWTTTLMinutes)
	}
	if c.AuthRatePerMinute <= 0 {
		return fmt.Errorf("invalid AUTH_RATE_PER_MINUTE %d", c.AuthRatePerMinute)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
func (c *Config) JWTTTL() time.Duration         { return time.Duration(c.JWTTTLMinutes) * time.Minute }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps end_at comparisons in one zone
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
