// Package moderator parses moderator command flags and starts the HTTP runtime.
package moderator

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bicheichane/millers-hollow/internal/game/flow"
	"github.com/bicheichane/millers-hollow/internal/game/roles"
	"github.com/bicheichane/millers-hollow/internal/game/victory"
	"github.com/bicheichane/millers-hollow/internal/metrics"
	entrypoint "github.com/bicheichane/millers-hollow/internal/platform/cmd"
	"github.com/bicheichane/millers-hollow/internal/platform/config"
	"github.com/bicheichane/millers-hollow/internal/server"
	"github.com/bicheichane/millers-hollow/internal/service"
	"github.com/bicheichane/millers-hollow/internal/storage"
	"github.com/bicheichane/millers-hollow/internal/storage/memory"
	"github.com/bicheichane/millers-hollow/internal/storage/sqlite"
)

// Config holds moderator command configuration.
type Config struct {
	Addr       string `env:"MILLERS_HOLLOW_ADDR" envDefault:":8080" yaml:"addr"`
	DBPath     string `env:"MILLERS_HOLLOW_DB_PATH" yaml:"db_path"`
	LogLevel   string `env:"MILLERS_HOLLOW_LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	ConfigFile string `env:"MILLERS_HOLLOW_CONFIG" yaml:"-"`
}

// ParseConfig loads configuration in precedence order: environment, then
// the optional YAML file it points at, then command-line flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ConfigFile != "" {
		if err := config.LoadFile(cfg.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (empty keeps sessions in memory)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the moderator HTTP service and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	var store storage.Store
	if cfg.DBPath != "" {
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		store = db
		logger.Info().Str("path", cfg.DBPath).Msg("using sqlite store")
	} else {
		store = memory.New()
		logger.Warn().Msg("using in-memory store, sessions will not survive a restart")
	}

	registry, err := roles.BuildRegistry()
	if err != nil {
		return fmt.Errorf("build role registry: %w", err)
	}
	fl, err := flow.New(registry, victory.Parity{})
	if err != nil {
		return fmt.Errorf("build flow: %w", err)
	}

	m := metrics.New()
	svc := service.New(store, fl, m, logger)
	srv := server.New(server.Config{Addr: cfg.Addr}, svc, m, logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown()
	case err := <-errc:
		return err
	}
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger(), nil
}
