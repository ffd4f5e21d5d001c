package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/inventory/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	AlgorithmHS256 = "HS256"
	AlgorithmEdDSA = "EdDSA"
)

type Config struct {
	Issuer string // Issuer claim for access tokens (default: inventory)

	DatabaseDriver string // Store driver, sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: inventory.db)
	DatabaseDSN    string // Postgres connection string, required when the driver is postgres

	Algorithm  string // Access token signing algorithm, HS256 or EdDSA (default: HS256)
	SecretFile string // HS256 secret, created when missing (default: secret)
	KeyFile    string // Ed25519 PEM key, created when missing (default: signing.pem)
	PepperFile string // Pepper for password hashing, created when missing (default: pepper)

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 7 days)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session purge interval (default: 1h)
	CORSOrigins          []string      // Allowed browser origins, "*" for any (default: none)
}

// fileConfig is the YAML overlay read from INVENTORY_CONFIG_FILE. Durations
// are strings so they accept the same forms as the environment.
type fileConfig struct {
	Issuer   string `yaml:"issuer"`
	Database struct {
		Driver string `yaml:"driver"`
		File   string `yaml:"file"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Signing struct {
		Algorithm  string `yaml:"algorithm"`
		SecretFile string `yaml:"secretFile"`
		KeyFile    string `yaml:"keyFile"`
	} `yaml:"signing"`
	PepperFile string `yaml:"pepperFile"`
	AccessTTL  string `yaml:"accessTTL"`
	RefreshTTL string `yaml:"refreshTTL"`
	Env        string `yaml:"env"`
	Log        struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Port                 int      `yaml:"port"`
	ShutdownGracePeriod  string   `yaml:"shutdownGracePeriod"`
	HousekeepingInterval string   `yaml:"housekeepingInterval"`
	CORSOrigins          []string `yaml:"corsOrigins"`
}

func defaultConfig() Config {
	return Config{
		Issuer:               "inventory",
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         "inventory.db",
		Algorithm:            AlgorithmHS256,
		SecretFile:           "secret",
		KeyFile:              "signing.pem",
		PepperFile:           "pepper",
		AccessTTL:            jwtx.DefaultAccessTokenTTL,
		RefreshTTL:           jwtx.DefaultRefreshTokenTTL,
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Hour,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file
// named by INVENTORY_CONFIG_FILE (if set), then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("INVENTORY_CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Issuer = getEnvOrDefault("INVENTORY_ISSUER", cfg.Issuer)
	cfg.DatabaseDriver = strings.ToLower(getEnvOrDefault("INVENTORY_DATABASE_DRIVER", cfg.DatabaseDriver))
	cfg.DatabaseFile = getEnvOrDefault("INVENTORY_DATABASE_FILE", cfg.DatabaseFile)
	cfg.DatabaseDSN = getEnvOrDefault("INVENTORY_DATABASE_DSN", cfg.DatabaseDSN)
	cfg.Algorithm = getEnvOrDefault("INVENTORY_ALGORITHM", cfg.Algorithm)
	cfg.SecretFile = getEnvOrDefault("INVENTORY_SECRET_FILE", cfg.SecretFile)
	cfg.KeyFile = getEnvOrDefault("INVENTORY_KEY_FILE", cfg.KeyFile)
	cfg.PepperFile = getEnvOrDefault("INVENTORY_PEPPER_FILE", cfg.PepperFile)
	cfg.AccessTTL = getEnvDurationOrDefault("INVENTORY_ACCESS_TTL", cfg.AccessTTL)
	cfg.RefreshTTL = getEnvDurationOrDefault("INVENTORY_REFRESH_TTL", cfg.RefreshTTL)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)

	if origins := os.Getenv("INVENTORY_CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	return cfg, cfg.Validate()
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.Issuer, fc.Issuer)
	setString(&c.DatabaseDriver, strings.ToLower(fc.Database.Driver))
	setString(&c.DatabaseFile, fc.Database.File)
	setString(&c.DatabaseDSN, fc.Database.DSN)
	setString(&c.Algorithm, fc.Signing.Algorithm)
	setString(&c.SecretFile, fc.Signing.SecretFile)
	setString(&c.KeyFile, fc.Signing.KeyFile)
	setString(&c.PepperFile, fc.PepperFile)
	setString(&c.Env, fc.Env)
	setString(&c.LogLevel, fc.Log.Level)
	setString(&c.LogFormat, fc.Log.Format)

	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"accessTTL", fc.AccessTTL, &c.AccessTTL},
		{"refreshTTL", fc.RefreshTTL, &c.RefreshTTL},
		{"shutdownGracePeriod", fc.ShutdownGracePeriod, &c.ShutdownGracePeriod},
		{"housekeepingInterval", fc.HousekeepingInterval, &c.HousekeepingInterval},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, ok := parseDuration(d.raw)
		if !ok {
			return fmt.Errorf("config file %s: invalid duration %s: %q", path, d.name, d.raw)
		}
		*d.dst = v
	}

	return nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("database file is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("INVENTORY_DATABASE_DSN is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}

	switch c.Algorithm {
	case AlgorithmHS256, AlgorithmEdDSA:
	default:
		errs = append(errs, fmt.Errorf("unsupported signing algorithm %q", c.Algorithm))
	}

	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("access token TTL must be positive"))
	}
	if c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("refresh token TTL must be positive"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("issuer is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, ok := parseDuration(value); ok {
		return d
	}

	return defaultValue
}

// parseDuration accepts Go duration strings ("1h", "30m", "90s") or a bare
// integer number of minutes.
func parseDuration(value string) (time.Duration, bool) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, true
	}

	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute, true
	}

	return 0, false
}
