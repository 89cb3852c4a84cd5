package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when a nil config is passed to a function.
var ErrNilConfig = errors.New("nil config")

// envPrefix is the prefix of every grantflow environment variable.
const envPrefix = "GRANTFLOW_"

// HTTPConfig is the HTTP API configuration.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// RedisConfig is the configuration of the redis cache backend.
type RedisConfig struct {
	// Addr is the Redis address [host][:port].
	Addr string `env:"ADDR" yaml:"addr"`
	// Username is the Redis username.
	Username string `env:"USERNAME" yaml:"username"`
	// Password is the Redis password.
	Password string `env:"PASSWORD" yaml:"password"`
	// DB is the Redis database.
	DB int `env:"DB" yaml:"db"`
}

// CacheConfig configures the cache that holds per team field access maps.
type CacheConfig struct {
	// Backend is one of "lru", "redis" or "noop".
	Backend string `env:"BACKEND" yaml:"backend"`

	// Size is the number of entries kept by the lru backend.
	Size int `env:"SIZE" yaml:"size"`

	// TTL is how long a cached entry is valid.
	TTL time.Duration `env:"TTL" yaml:"ttl"`

	Redis RedisConfig `envPrefix:"REDIS_" yaml:"redis"`
}

// GeoConfig is the postal code centroid configuration.
type GeoConfig struct {
	// CentroidsPath is a GeoNames style postal code dump loaded into the
	// centroid table on start and by the reload job.
	CentroidsPath string `env:"CENTROIDS_PATH" yaml:"centroids_path"`

	// DefaultCountry is used when a contact has a postal code but no
	// country.
	DefaultCountry string `env:"DEFAULT_COUNTRY" yaml:"default_country"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// CentroidReload is the cron spec of the centroid reload job.
	CentroidReload string `env:"CENTROID_RELOAD" yaml:"centroid_reload"`
}

// Config is the configuration for grantflow.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP API.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Cache is the cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// Geo is the postal code centroid configuration.
	Geo GeoConfig `envPrefix:"GEO_" yaml:"geo"`

	// Jobs is the configuration for cron jobs
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// DataPath is the path to the directory where grantflow stores its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("GRANTFLOW_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("GRANTFLOW_NAME=%s", c.Name),
		fmt.Sprintf("GRANTFLOW_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("GRANTFLOW_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("GRANTFLOW_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("GRANTFLOW_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("GRANTFLOW_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("GRANTFLOW_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("GRANTFLOW_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("GRANTFLOW_CACHE_BACKEND=%s", c.Cache.Backend),
		fmt.Sprintf("GRANTFLOW_CACHE_SIZE=%d", c.Cache.Size),
		fmt.Sprintf("GRANTFLOW_CACHE_TTL=%s", c.Cache.TTL),
		fmt.Sprintf("GRANTFLOW_CACHE_REDIS_ADDR=%s", c.Cache.Redis.Addr),
		fmt.Sprintf("GRANTFLOW_CACHE_REDIS_DB=%d", c.Cache.Redis.DB),
		fmt.Sprintf("GRANTFLOW_GEO_CENTROIDS_PATH=%s", c.Geo.CentroidsPath),
		fmt.Sprintf("GRANTFLOW_GEO_DEFAULT_COUNTRY=%s", c.Geo.DefaultCountry),
		fmt.Sprintf("GRANTFLOW_JOBS_CENTROID_RELOAD=%s", c.Jobs.CentroidReload),
	}
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("GRANTFLOW_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("GRANTFLOW_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the config file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: envPrefix,
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the config file and environment variables.
// A missing config file is not an error.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if c.Exist() {
		if err := c.ParseFile(); err != nil {
			return err
		}
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the config file path.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the GRANTFLOW_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("GRANTFLOW_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file. GRANTFLOW_CONFIG_LOCATION
// takes precedence when it points to an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("GRANTFLOW_CONFIG_LOCATION"); exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Grantflow",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8080",
			PublicURL:  "http://localhost:8080",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:8081",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "grantflow.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite",
		},
		Cache: CacheConfig{
			Backend: "lru",
			Size:    1000,
			TTL:     5 * time.Minute,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Jobs: JobsConfig{
			CentroidReload: "@daily",
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.Geo.CentroidsPath != "" && !filepath.IsAbs(c.Geo.CentroidsPath) {
		c.Geo.CentroidsPath = filepath.Join(c.DataPath, c.Geo.CentroidsPath)
	}

	switch c.Cache.Backend {
	case "", "lru", "redis", "noop":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "json", "logfmt", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}
