// Package config loads bot settings from a YAML file, a .env file and
// BOTMASTER_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"rgehrsitz/botmaster/internal/nlp"
	"rgehrsitz/botmaster/internal/random"
	"rgehrsitz/botmaster/internal/runtime"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BOTMASTER_"

// Sanitizer names.
const (
	SanitizerDefault  = "default"
	SanitizerIdentity = "identity"
)

var ErrUnknownSanitizer = errors.New("unknown sanitizer")

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Config struct {
	Sanitizer    string            `yaml:"sanitizer"`
	Seed         uint64            `yaml:"seed"` // 0 seeds from the clock
	MaxRedirects int               `yaml:"max_redirects"`
	Log          LogConfig         `yaml:"log"`
	Lemmas       map[string]string `yaml:"lemmas"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Sanitizer:    SanitizerDefault,
		MaxRedirects: runtime.DefaultMaxRedirects,
		Log:          LogConfig{Level: "info", Pretty: true},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used. A .env file in the working
// directory is read when present; it never overrides variables already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "SANITIZER"); ok {
		c.Sanitizer = v
	}
	if v, ok := lookup(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED: %w", envPrefix, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(envPrefix + "MAX_REDIRECTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_REDIRECTS: %w", envPrefix, err)
		}
		c.MaxRedirects = n
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(envPrefix + "LOG_PRETTY"); ok {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sLOG_PRETTY: %w", envPrefix, err)
		}
		c.Log.Pretty = pretty
	}
	return nil
}

// Validate checks values that cannot be caught while decoding.
func (c Config) Validate() error {
	switch strings.ToLower(c.Sanitizer) {
	case SanitizerDefault, SanitizerIdentity:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSanitizer, c.Sanitizer)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must not be negative, got %d", c.MaxRedirects)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// NewSanitizer builds the configured sanitizer, wrapped with the dictionary
// lemmatizer when lemmas are set.
func (c Config) NewSanitizer() (nlp.Sanitizer, error) {
	var s nlp.Sanitizer
	switch strings.ToLower(c.Sanitizer) {
	case SanitizerDefault:
		s = nlp.DefaultSanitizer{}
	case SanitizerIdentity:
		s = nlp.IdentitySanitizer{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSanitizer, c.Sanitizer)
	}
	if len(c.Lemmas) > 0 {
		s = nlp.LemmatizingSanitizer{Base: s, Lemmatizer: nlp.NewDictionaryLemmatizer(c.Lemmas)}
	}
	return s, nil
}

// NewRandom returns a seeded source, or a clock seeded one when Seed is 0.
func (c Config) NewRandom() random.Source {
	if c.Seed == 0 {
		return random.NewTimeSeeded()
	}
	return random.New(c.Seed)
}

// NewEngine builds an engine from the configuration, without rules.
func (c Config) NewEngine() (*runtime.Engine, error) {
	s, err := c.NewSanitizer()
	if err != nil {
		return nil, err
	}
	return runtime.NewEngine(s,
		runtime.WithRandom(c.NewRandom()),
		runtime.WithMaxRedirects(c.MaxRedirects),
	), nil
}

// SetupLogging points the global logger at w with the configured level.
func (c Config) SetupLogging(w io.Writer) error {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if c.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	return nil
}
