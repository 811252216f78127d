package netcfg

import (
	"net/url"
	"os"
	"strings"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

var APIBase = getenv("PLACE_API_BASE", "http://127.0.0.1:8080") // REST
var ServerURL = getenv("PLACE_WS_URL", "")                       // WebSocket, derived from APIBase when empty

// WSURL returns the live feed endpoint. An explicit ws URL wins; otherwise
// the scheme of base is swapped (http->ws, https->wss) and /api/ws appended.
func WSURL(base, explicit string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "ws://127.0.0.1:8080/api/ws"
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/ws"
	u.RawQuery = ""
	return u.String()
}
