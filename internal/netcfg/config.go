package netcfg

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the resolved client configuration. Env feeds the defaults, the
// file overrides them and flags override the file (see Apply).
type Config struct {
	APIBase  string
	WSURL    string
	LogLevel zerolog.Level

	// view settings, hot reloaded
	ShowGrid       bool
	GridMinZoom    float64
	PanStep        float64
	StartZoom      float64
	LeaderboardSec int
}

type fileConfig struct {
	APIBase        string  `toml:"api_base"`
	WSURL          string  `toml:"ws_url"`
	LogLevel       string  `toml:"log_level"`
	ShowGrid       bool    `toml:"show_grid"`
	GridMinZoom    float64 `toml:"grid_min_zoom"`
	PanStep        float64 `toml:"pan_step"`
	StartZoom      float64 `toml:"start_zoom"`
	LeaderboardSec int     `toml:"leaderboard_refresh_sec"`
}

func Default() Config {
	return Config{
		APIBase:        APIBase,
		WSURL:          ServerURL,
		LogLevel:       zerolog.InfoLevel,
		ShowGrid:       true,
		GridMinZoom:    8,
		PanStep:        24,
		StartZoom:      1,
		LeaderboardSec: 30,
	}
}

// Load reads a TOML file on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("api_base") {
		cfg.APIBase = strings.TrimRight(strings.TrimSpace(raw.APIBase), "/")
	}
	if meta.IsDefined("ws_url") {
		cfg.WSURL = strings.TrimSpace(raw.WSURL)
	}
	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("show_grid") {
		cfg.ShowGrid = raw.ShowGrid
	}
	if meta.IsDefined("grid_min_zoom") {
		if raw.GridMinZoom <= 0 {
			return Config{}, fmt.Errorf("grid_min_zoom must be positive, got %v", raw.GridMinZoom)
		}
		cfg.GridMinZoom = raw.GridMinZoom
	}
	if meta.IsDefined("pan_step") {
		if raw.PanStep <= 0 {
			return Config{}, fmt.Errorf("pan_step must be positive, got %v", raw.PanStep)
		}
		cfg.PanStep = raw.PanStep
	}
	if meta.IsDefined("start_zoom") {
		// 0 means fit the canvas to the window
		if raw.StartZoom < 0 {
			return Config{}, fmt.Errorf("start_zoom must not be negative, got %v", raw.StartZoom)
		}
		cfg.StartZoom = raw.StartZoom
	}
	if meta.IsDefined("leaderboard_refresh_sec") {
		if raw.LeaderboardSec < 1 {
			return Config{}, fmt.Errorf("leaderboard_refresh_sec must be >= 1, got %d", raw.LeaderboardSec)
		}
		cfg.LeaderboardSec = raw.LeaderboardSec
	}
	return cfg, nil
}

// Overrides are the command-line values; empty fields are ignored.
type Overrides struct {
	APIBase  string
	WSURL    string
	LogLevel string
}

func (c Config) Apply(o Overrides) (Config, error) {
	if s := strings.TrimSpace(o.APIBase); s != "" {
		c.APIBase = strings.TrimRight(s, "/")
	}
	if s := strings.TrimSpace(o.WSURL); s != "" {
		c.WSURL = s
	}
	if s := strings.TrimSpace(o.LogLevel); s != "" {
		lvl, err := zerolog.ParseLevel(s)
		if err != nil {
			return c, fmt.Errorf("parse --log-level: %w", err)
		}
		c.LogLevel = lvl
	}
	return c, nil
}

// FeedURL is the WebSocket endpoint for this config.
func (c Config) FeedURL() string { return WSURL(c.APIBase, c.WSURL) }
