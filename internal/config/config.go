// Package config loads the neo command's configuration.
//
// Values are resolved by viper in this order: command-line flags bound by the
// caller, NEO_* environment variables (a .env file in the working directory
// is loaded into the environment first), a neo.yaml config file, and the
// defaults below.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "NEO"

// Source kinds.
const (
	SourceLocal = "local"
	SourceS3    = "s3"
	SourceMinio = "minio"
)

// Config is the resolved configuration.
type Config struct {
	NEOFile       string `mapstructure:"neofile"`
	CADFile       string `mapstructure:"cadfile"`
	Index         string `mapstructure:"index"`
	Codec         string `mapstructure:"codec"`
	SkipMalformed bool   `mapstructure:"skip_malformed"`
	MemoryLimit   int64  `mapstructure:"memory_limit"`

	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// SourceConfig selects where the data files are read from.
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
	// Dir is the root for local files and for local output.
	Dir string `mapstructure:"dir"`

	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Secure    bool   `mapstructure:"secure"`

	// Concurrency is the number of parallel part downloads for S3.
	Concurrency int `mapstructure:"concurrency"`
	// RateLimit caps read throughput in bytes per second. Zero is unlimited.
	RateLimit int64 `mapstructure:"rate_limit"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures neo serve.
type ServerConfig struct {
	Addr                 string   `mapstructure:"addr"`
	CORSOrigins          []string `mapstructure:"cors_origins"`
	MaxConcurrentQueries int64    `mapstructure:"max_concurrent_queries"`
	CacheBytes           int64    `mapstructure:"cache_bytes"`
	Debug                bool     `mapstructure:"debug"`
}

// SetDefaults registers every key with its default so that environment
// variables resolve during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("neofile", "data/neos.csv")
	v.SetDefault("cadfile", "data/cad.json")
	v.SetDefault("index", "map")
	v.SetDefault("codec", "go-json")
	v.SetDefault("skip_malformed", false)
	v.SetDefault("memory_limit", 0)

	v.SetDefault("source.kind", SourceLocal)
	v.SetDefault("source.dir", ".")
	v.SetDefault("source.bucket", "")
	v.SetDefault("source.prefix", "")
	v.SetDefault("source.endpoint", "")
	v.SetDefault("source.access_key", "")
	v.SetDefault("source.secret_key", "")
	v.SetDefault("source.secure", true)
	v.SetDefault("source.concurrency", 5)
	v.SetDefault("source.rate_limit", 0)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_concurrent_queries", 0)
	v.SetDefault("server.cache_bytes", 16<<20)
	v.SetDefault("server.debug", false)
}

// Load resolves the configuration. configFile may be empty, in which case
// neo.yaml is searched in the working directory and $HOME/.config/neo; a
// missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("neo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/neo")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceLocal:
	case SourceS3:
		if c.Source.Bucket == "" {
			return fmt.Errorf("%w: source.bucket is required for s3", ErrInvalid)
		}
	case SourceMinio:
		if c.Source.Bucket == "" || c.Source.Endpoint == "" {
			return fmt.Errorf("%w: source.bucket and source.endpoint are required for minio", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown source.kind %q", ErrInvalid, c.Source.Kind)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}

	if c.MemoryLimit < 0 || c.Source.RateLimit < 0 || c.Server.CacheBytes < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalid)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return level, nil
}
