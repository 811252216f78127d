package netcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridMinZoom != Default().GridMinZoom || !cfg.ShowGrid {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "place.toml")
	writeFile(t, path, `
api_base = "https://place.example.org/"
show_grid = false
log_level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBase != "https://place.example.org" {
		t.Fatalf("api_base: got %q", cfg.APIBase)
	}
	if cfg.ShowGrid {
		t.Fatalf("show_grid should be false")
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("log level: got %v", cfg.LogLevel)
	}
	if cfg.PanStep != Default().PanStep {
		t.Fatalf("pan_step should keep default, got %v", cfg.PanStep)
	}
	if got := cfg.FeedURL(); got != "wss://place.example.org/api/ws" {
		t.Fatalf("feed url: got %q", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"grid":  "grid_min_zoom = 0",
		"pan":   "pan_step = -3",
		"level": `log_level = "loud"`,
		"lb":    "leaderboard_refresh_sec = 0",
		"zoom":  "start_zoom = -1.5",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "place.toml")
			writeFile(t, path, body)
			if _, err := Load(path); err == nil {
				t.Fatalf("want error for %q", body)
			}
		})
	}
}

func TestLoadStartZoomZeroMeansFit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "place.toml")
	writeFile(t, path, "start_zoom = 0.0")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartZoom != 0 {
		t.Fatalf("start_zoom: got %v", cfg.StartZoom)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Default().Apply(Overrides{APIBase: "http://h:9/", WSURL: "ws://other/feed", LogLevel: "warn"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.APIBase != "http://h:9" || cfg.FeedURL() != "ws://other/feed" || cfg.LogLevel != zerolog.WarnLevel {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestWSURL(t *testing.T) {
	cases := []struct{ base, explicit, want string }{
		{"http://127.0.0.1:8080", "", "ws://127.0.0.1:8080/api/ws"},
		{"https://place.io/sub/", "", "wss://place.io/sub/api/ws"},
		{"http://x", "ws://y/z", "ws://y/z"},
		{"::bad", "", "ws://127.0.0.1:8080/api/ws"},
	}
	for _, c := range cases {
		if got := WSURL(c.base, c.explicit); got != c.want {
			t.Errorf("WSURL(%q,%q) = %q, want %q", c.base, c.explicit, got, c.want)
		}
	}
}

func TestWatcherPublishesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "place.toml")
	writeFile(t, path, "show_grid = true\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "show_grid = false\npan_step = 40\n")

	select {
	case cfg := <-w.Updates():
		if cfg.ShowGrid || cfg.PanStep != 40 {
			t.Fatalf("unexpected reload: %+v", cfg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
