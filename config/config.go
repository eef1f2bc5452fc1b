// Package config loads the settings of the gopherproof command.
//
// Settings are read, in order, from their defaults, an optional YAML file,
// a .env file (GOPHERPROOF_ENV, or .env by default) and GOPHERPROOF_* environment variables.
// Later sources override earlier ones.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gopherproof/adequacy"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "GOPHERPROOF_"

// Config holds the settings of the prover and of its HTTP server.
type Config struct {
	// MaxVariables is the maximum number of variables of a formula to prove.
	MaxVariables int `yaml:"max_variables" validate:"min=1,max=6"`
	// CheckMaxVariables is the maximum number of variables of a formula checked for tautology.
	CheckMaxVariables int `yaml:"check_max_variables" validate:"min=1,max=63"`
	// Workers is the number of goroutines building a proof; 0 means one per CPU.
	Workers  int    `yaml:"workers" validate:"min=0,max=1024"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Server   Server `yaml:"server"`
}

// Server holds the settings of the HTTP server.
type Server struct {
	Addr string `yaml:"addr" validate:"required"`
	// RateLimitRPS and RateLimitBurst bound the requests per second of a client.
	RateLimitRPS   float64       `yaml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int           `yaml:"rate_limit_burst" validate:"min=1"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	// TrustProxy makes the server read the client address from the X-Real-IP and
	// X-Forwarded-For headers. Only enable it behind a proxy setting them.
	TrustProxy bool `yaml:"trust_proxy"`
}

// DefaultCheckMaxVariables is the default number of variables of the formulas checked for tautology.
const DefaultCheckMaxVariables = 24

// Default returns the default configuration.
func Default() Config {
	return Config{
		MaxVariables:      adequacy.DefaultMaxVariables,
		CheckMaxVariables: DefaultCheckMaxVariables,
		Workers:           0,
		LogLevel:          "info",
		Server: Server{
			Addr:           ":8080",
			RateLimitRPS:   5,
			RateLimitBurst: 10,
			RequestTimeout: 30 * time.Second,
		},
	}
}

var validate = validator.New()

// Validate checks that every setting is in its allowed range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load returns the configuration read from the file at path, if path is not empty,
// the .env file and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	envFile := os.Getenv(EnvPrefix + "ENV")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("could not load %s: %w", envFile, err)
	}
	if err := cfg.readEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open configuration: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("could not parse configuration %s: %w", path, err)
	}
	return nil
}

func (c *Config) readEnv() error {
	if err := envInt("MAX_VARIABLES", &c.MaxVariables); err != nil {
		return err
	}
	if err := envInt("CHECK_MAX_VARIABLES", &c.CheckMaxVariables); err != nil {
		return err
	}
	if err := envInt("WORKERS", &c.Workers); err != nil {
		return err
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sRATE_LIMIT_RPS %q: %w", EnvPrefix, v, err)
		}
		c.Server.RateLimitRPS = rps
	}
	if err := envInt("RATE_LIMIT_BURST", &c.Server.RateLimitBurst); err != nil {
		return err
	}
	if v := os.Getenv(EnvPrefix + "TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sTRUST_PROXY %q: %w", EnvPrefix, v, err)
		}
		c.Server.TrustProxy = b
	}
	if v := os.Getenv(EnvPrefix + "REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sREQUEST_TIMEOUT %q: %w", EnvPrefix, v, err)
		}
		c.Server.RequestTimeout = d
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, name, v, err)
	}
	*dst = i
	return nil
}

// Logger returns a logger writing messages of level c.LogLevel and above.
// The debug level uses zap's development settings, the other ones its production settings.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.LogLevel == "debug" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
