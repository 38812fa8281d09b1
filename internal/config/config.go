// Package config loads client and server configuration. Values are resolved
// in order: defaults, YAML file, GOPHSYNC_* environment variables, then
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/gophsync/internal/client/conflict"
	"github.com/iudanet/gophsync/internal/logging"
)

// EnvPrefix is the prefix of every environment variable read by this package
const EnvPrefix = "GOPHSYNC_"

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

// LookupFunc reads an environment variable. os.LookupEnv in production.
type LookupFunc func(key string) (string, bool)

// ClientConfig holds the CLI client configuration
type ClientConfig struct {
	Conflict      conflict.Config `yaml:"conflict"`
	Log           logging.Config  `yaml:"log"`
	DBPath        string          `yaml:"db_path"`
	ServerURL     string          `yaml:"server_url"`
	ClientID      string          `yaml:"client_id"`
	Secret        string          `yaml:"secret"`
	ProbeInterval time.Duration   `yaml:"probe_interval"`
	ProbeTimeout  time.Duration   `yaml:"probe_timeout"`
	SyncInterval  time.Duration   `yaml:"sync_interval"` // 0 отключает периодическую синхронизацию
}

// DefaultClientConfig returns the client defaults
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		DBPath:        "gophsync-client.db",
		ServerURL:     "http://localhost:8080",
		ProbeInterval: 15 * time.Second,
		ProbeTimeout:  5 * time.Second,
		Conflict: conflict.Config{
			Strategy:       conflict.StrategyRemoteWins,
			TimestampField: conflict.DefaultTimestampField,
		},
		Log: logging.DefaultConfig,
	}
}

// LoadClient reads the client configuration. An empty path skips the file.
func LoadClient(path string, lookup LookupFunc) (*ClientConfig, error) {
	cfg := DefaultClientConfig()
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}

	env := envReader{lookup: lookup}
	env.setString("DB", &cfg.DBPath)
	env.setString("SERVER", &cfg.ServerURL)
	env.setString("CLIENT_ID", &cfg.ClientID)
	env.setString("SECRET", &cfg.Secret)
	env.setDuration("PROBE_INTERVAL", &cfg.ProbeInterval)
	env.setDuration("PROBE_TIMEOUT", &cfg.ProbeTimeout)
	env.setDuration("SYNC_INTERVAL", &cfg.SyncInterval)
	env.setString("CONFLICT_STRATEGY", (*string)(&cfg.Conflict.Strategy))
	env.setString("TIMESTAMP_FIELD", &cfg.Conflict.TimestampField)
	env.setLogging(&cfg.Log)

	if env.err != nil {
		return nil, env.err
	}
	return &cfg, nil
}

// Validate checks the client configuration
func (c *ClientConfig) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("%w: server_url is required", ErrInvalidConfig)
	}
	if c.ProbeInterval <= 0 {
		return fmt.Errorf("%w: probe_interval must be positive", ErrInvalidConfig)
	}
	if c.ProbeTimeout <= 0 || c.ProbeTimeout > c.ProbeInterval {
		return fmt.Errorf("%w: probe_timeout must be positive and not exceed probe_interval", ErrInvalidConfig)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("%w: sync_interval must not be negative", ErrInvalidConfig)
	}
	switch c.Conflict.Strategy {
	case "", conflict.StrategyRemoteWins, conflict.StrategyLocalWins,
		conflict.StrategyLastWriteWins, conflict.StrategyFieldMerge:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, conflict.ErrUnknownStrategy, c.Conflict.Strategy)
	}
	return validateLog(c.Log)
}

// ServerConfig holds the sync server configuration
type ServerConfig struct {
	Log        logging.Config `yaml:"log"`
	Addr       string         `yaml:"addr"`
	DBPath     string         `yaml:"db_path"`
	JWTSecret  string         `yaml:"jwt_secret"`
	TokenTTL   time.Duration  `yaml:"token_ttl"`
	RateWindow time.Duration  `yaml:"rate_window"`
	RateLimit  int            `yaml:"rate_limit"` // запросов на IP за RateWindow
}

// MinJWTSecretLength is the shortest accepted HS256 signing key
const MinJWTSecretLength = 32

// DefaultServerConfig returns the server defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       ":8080",
		DBPath:     "gophsync-server.db",
		TokenTTL:   15 * time.Minute,
		RateLimit:  100,
		RateWindow: time.Minute,
		Log:        logging.DefaultConfig,
	}
}

// LoadServer reads the server configuration. An empty path skips the file.
func LoadServer(path string, lookup LookupFunc) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}

	env := envReader{lookup: lookup}
	env.setString("SERVER_ADDR", &cfg.Addr)
	env.setString("SERVER_DB", &cfg.DBPath)
	env.setString("JWT_SECRET", &cfg.JWTSecret)
	env.setDuration("TOKEN_TTL", &cfg.TokenTTL)
	env.setInt("RATE_LIMIT", &cfg.RateLimit)
	env.setDuration("RATE_WINDOW", &cfg.RateWindow)
	env.setLogging(&cfg.Log)

	if env.err != nil {
		return nil, env.err
	}
	return &cfg, nil
}

// Validate checks the server configuration
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("%w: jwt_secret must be at least %d bytes", ErrInvalidConfig, MinJWTSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token_ttl must be positive", ErrInvalidConfig)
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("%w: rate_limit and rate_window must be positive", ErrInvalidConfig)
	}
	return validateLog(c.Log)
}

func validateLog(cfg logging.Config) error {
	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch cfg.Format {
	case "", logging.FormatAuto, logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, cfg.Format)
	}
}

func readFile(path string, out any) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// envReader applies GOPHSYNC_* variables and keeps the first parse error
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(name string) (string, bool) {
	if e.lookup == nil {
		return "", false
	}
	v, ok := e.lookup(EnvPrefix + name)
	return v, ok && v != ""
}

func (e *envReader) setString(name string, dst *string) {
	if v, ok := e.get(name); ok {
		*dst = v
	}
}

func (e *envReader) setDuration(name string, dst *time.Duration) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(name, err)
		return
	}
	*dst = d
}

func (e *envReader) setInt(name string, dst *int) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, err)
		return
	}
	*dst = n
}

func (e *envReader) setLogging(cfg *logging.Config) {
	e.setString("LOG_LEVEL", &cfg.Level)
	e.setString("LOG_FORMAT", &cfg.Format)
}

func (e *envReader) fail(name string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
	}
}
