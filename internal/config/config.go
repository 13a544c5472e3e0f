package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the petfeed API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Swipes   SwipesConfig   `yaml:"swipes"`
	Photos   PhotosConfig   `yaml:"photos"`
	Feed     FeedConfig     `yaml:"feed"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
// Feed endpoints are public; requester identity comes from the gateway header.
type AuthConfig struct {
	AdminAPIKeys []string `yaml:"admin_api_keys"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds listing storage settings.
type DatabaseConfig struct {
	Driver           string `yaml:"driver"` // postgres, sqlite (default: postgres)
	DSN              string `yaml:"dsn"`
	MaxConns         int32  `yaml:"max_conns"`
	SimpleProtocol   bool   `yaml:"simple_protocol"` // behind pgbouncer in transaction mode
	Bootstrap        bool   `yaml:"bootstrap"`       // sqlite only: create tables on start
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds the reported ids cache backend settings.
type CacheConfig struct {
	Driver   string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
}

// SwipesConfig holds the swipe store settings.
type SwipesConfig struct {
	Driver   string `yaml:"driver"` // sql, dynamodb (default: sql)
	Table    string `yaml:"table"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// PhotosConfig holds photo URL settings. Empty bucket and base URL disable photo URLs.
type PhotosConfig struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	PresignTTLSec int    `yaml:"presign_ttl_sec"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Enabled reports whether photo URLs can be produced.
func (p PhotosConfig) Enabled() bool {
	return p.Bucket != "" || p.PublicBaseURL != ""
}

// FeedConfig holds ranking and pagination settings.
type FeedConfig struct {
	CandidatePoolSize   int     `yaml:"candidate_pool_size"`
	PageSize            int     `yaml:"page_size"`
	DefaultRadiusKm     float64 `yaml:"default_radius_km"`
	ReportedCacheTTLSec int     `yaml:"reported_cache_ttl_sec"`
	RequestTimeoutSec   int     `yaml:"request_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// For local, variables from an optional .env file are loaded first.
func Load(env string) (Config, error) {
	if env == "local" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 15
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Swipes.Driver == "" {
		c.Swipes.Driver = "sql"
	}
	if c.Photos.PresignTTLSec <= 0 {
		c.Photos.PresignTTLSec = 900
	}
	if c.Feed.CandidatePoolSize <= 0 {
		c.Feed.CandidatePoolSize = 500
	}
	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = 20
	}
	if c.Feed.DefaultRadiusKm <= 0 {
		c.Feed.DefaultRadiusKm = 50
	}
	if c.Feed.ReportedCacheTTLSec <= 0 {
		c.Feed.ReportedCacheTTLSec = 120
	}
	if c.Feed.RequestTimeoutSec <= 0 {
		c.Feed.RequestTimeoutSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	case "sqlite":
		// empty dsn = in-memory
	default:
		return fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", c.Database.Driver)
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for redis")
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\" or \"redis\", got %q", c.Cache.Driver)
	}

	switch c.Swipes.Driver {
	case "sql":
	case "dynamodb":
		if c.Swipes.Table == "" {
			return fmt.Errorf("swipes.table is required for dynamodb")
		}
	default:
		return fmt.Errorf("swipes.driver must be \"sql\" or \"dynamodb\", got %q", c.Swipes.Driver)
	}

	if c.Feed.PageSize > c.Feed.CandidatePoolSize {
		return fmt.Errorf("feed.page_size (%d) must not exceed feed.candidate_pool_size (%d)",
			c.Feed.PageSize, c.Feed.CandidatePoolSize)
	}
	if c.Feed.DefaultRadiusKm < 1 || c.Feed.DefaultRadiusKm > 500 {
		return fmt.Errorf("feed.default_radius_km must be between 1 and 500, got %v", c.Feed.DefaultRadiusKm)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
