// Package logging builds the zerolog loggers of the injectdemo service and
// exposes them as registry capabilities.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/config"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Field names shared by every log line about the registry.
const (
	FieldCapability = "capability"
	FieldDuration   = "duration"
	FieldRegistry   = "registry"
)

// New creates a logger writing to w in the configured format.
// An unparsable level falls back to info.
func New(cfg config.Logging, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == FormatConsole {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.TimeOnly,
		})
	} else {
		zl = zerolog.New(w)
	}

	return zl.Level(level).With().Timestamp().Logger()
}

// Module registers zerolog.Logger as a Shared capability. The unnamed
// registration follows cfg.Format; the "console" and "json" registrations
// are always available.
func Module(cfg config.Logging, w io.Writer) *inject.Module {
	withFormat := func(format string) func() zerolog.Logger {
		return func() zerolog.Logger {
			c := cfg
			c.Format = format
			return New(c, w)
		}
	}

	return inject.NewModule("logging",
		inject.AddShared(func() zerolog.Logger { return New(cfg, w) }),
		inject.AddShared(withFormat(FormatConsole), inject.Name(FormatConsole)),
		inject.AddShared(withFormat(FormatJSON), inject.Name(FormatJSON)),
	)
}

// Hooks returns registry options that log every resolution with logger.
// Successful resolutions are logged at debug level, failures at error level.
func Hooks(logger zerolog.Logger) *inject.Options {
	return &inject.Options{
		OnResolved: func(key inject.Key, _ any, duration time.Duration) {
			logger.Debug().
				Str(FieldCapability, key.String()).
				Dur(FieldDuration, duration).
				Msg("capability resolved")
		},
		OnError: func(key inject.Key, err error) {
			logger.Error().
				Err(err).
				Str(FieldCapability, key.String()).
				Msg("capability resolution failed")
		},
	}
}

// ForRegistry returns a child logger tagged with the registry ID.
func ForRegistry(logger zerolog.Logger, r *inject.Registry) zerolog.Logger {
	return logger.With().Str(FieldRegistry, r.ID()).Logger()
}
