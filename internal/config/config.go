// Package config loads the configuration of the injectdemo service.
//
// Values are layered, lowest precedence first: built-in defaults, an
// optional YAML file, an optional .env file and INJECTDEMO_* environment
// variables. The result is validated with struct tags before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INJECTDEMO_GREETING_PREFIX.
const EnvPrefix = "INJECTDEMO"

// DefaultEnvFile is loaded when no env file is given and it exists.
const DefaultEnvFile = ".env"

// Config is the demo service configuration.
type Config struct {
	Name     string   `mapstructure:"name" validate:"required"`
	Logging  Logging  `mapstructure:"logging"`
	Greeting Greeting `mapstructure:"greeting"`
}

// Logging configures the zerolog loggers.
type Logging struct {
	Level  string `mapstructure:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=console json"`
}

// Greeting configures the greeter capability and the consumers using it.
type Greeting struct {
	Prefix    string `mapstructure:"prefix" validate:"required"`
	Consumers int    `mapstructure:"consumers" validate:"min=1,max=64"`
}

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile string // YAML config file path (optional)
	EnvFile    string // .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path. An empty path is ignored.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path. An empty path falls back to
// DefaultEnvFile when it exists.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load builds the configuration. Explicitly named files must exist.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	setDefaults(v)

	// 1. YAML config file
	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", lc.ConfigFile, err)
		}
	}

	// 2. .env file, never overriding variables already set
	envFile := lc.EnvFile
	if envFile == "" && fileExists(DefaultEnvFile) {
		envFile = DefaultEnvFile
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	// 3. Environment overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Name: "injectdemo",
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Greeting: Greeting{
			Prefix:    "hello",
			Consumers: 2,
		},
	}
}

// setDefaults registers every key so environment overrides apply to it.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("name", d.Name)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("greeting.prefix", d.Greeting.Prefix)
	v.SetDefault("greeting.consumers", d.Greeting.Consumers)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldPath(fe.Namespace())+": "+describe(fe))
	}

	return fmt.Errorf("invalid config: %s: %w", strings.Join(messages, "; "), err)
}

// fieldPath turns "Config.Greeting.Prefix" into "greeting.prefix".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		path = namespace
	}
	return strings.ToLower(path)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
