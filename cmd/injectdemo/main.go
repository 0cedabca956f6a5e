// Command injectdemo composes a registry from modules and runs consumers that
// declare their dependencies as lazy handles.
//
// Usage:
//
//	injectdemo [--config config.yml] [--env .env]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/app"
	"github.com/junioryono/inject/internal/config"
	"github.com/junioryono/inject/internal/logging"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) (err error) {
	flags := pflag.NewFlagSet("injectdemo", pflag.ContinueOnError)
	flags.SetOutput(out)
	configFile := flags.StringP("config", "c", "", "path to a YAML config file")
	envFile := flags.String("env", "", "path to a .env file (default .env when present)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(config.WithConfigFile(*configFile), config.WithEnvFile(*envFile))
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, out).With().Str("service", cfg.Name).Logger()

	registry := inject.NewRegistryWithOptions(logging.Hooks(logger))
	logger = logging.ForRegistry(logger, registry)
	defer func() {
		if closeErr := registry.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("registry teardown failed")
			err = errors.Join(err, closeErr)
		}
	}()

	registry.AddModules(
		logging.Module(cfg.Logging, out),
		app.Module(cfg.Greeting),
	)
	inject.SetDefault(registry)

	logger.Info().Int("capabilities", registry.Count()).Msg("registry composed")

	// Consumers bind to the default registry
	reports, err := app.Run(nil, cfg.Greeting.Consumers)
	if err != nil {
		return err
	}

	for _, report := range reports {
		logger.Info().
			Str("consumer", report.Consumer).
			Str("greeting", report.Greeting).
			Str("clock", report.Token).
			Msg("consumer report")
	}

	return nil
}
