package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"place/internal/api"
	"place/internal/netcfg"
	"place/internal/session"
)

// App holds the resolved configuration and clients shared by all commands.
type App struct {
	Config     netcfg.Config
	ConfigPath string
	Session    *session.Store
	API        *api.Client
}

// NewApp resolves config (defaults, file, then flags), sets up logging and
// opens the session store of the selected profile.
func NewApp(ctx *CommandContext) (*App, error) {
	dir := session.DefaultDir(*ctx.Profile)

	path := strings.TrimSpace(*ctx.Config)
	if path == "" {
		path = filepath.Join(dir, "config.toml")
	}
	cfg, err := netcfg.Load(path)
	if err != nil {
		return nil, err
	}
	cfg, err = cfg.Apply(netcfg.Overrides{APIBase: *ctx.API, WSURL: *ctx.WS, LogLevel: *ctx.LogLevel})
	if err != nil {
		return nil, err
	}
	InitLogger(cfg.LogLevel)

	store, err := session.NewStore(dir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("component", "config").Str("api", cfg.APIBase).Str("ws", cfg.FeedURL()).Str("dir", dir).Msg("resolved")

	return &App{
		Config:     cfg,
		ConfigPath: path,
		Session:    store,
		API:        api.NewClient(cfg.APIBase, store),
	}, nil
}

// InitLogger points the global logger at stderr so command output on
// stdout stays clean.
func InitLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Str("app", "place").Logger()
	log.Logger = logger
	return logger
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}

// Fatalf prints a formatted error and exits.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
