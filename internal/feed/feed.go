package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	neturl "net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"place/internal/protocol"
)

// Feed is one live connection to the pixel broadcast.
type Feed struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	inCh   chan protocol.PixelUpdate
	done   chan struct{}
	closed bool
	err    error
}

// Dial opens the feed. The token, when present, is sent both as header and
// query param; the stock server ignores it but proxies in front may not.
func Dial(ctx context.Context, wsURL, token string) (*Feed, error) {
	hdr := http.Header{}
	if token != "" {
		hdr.Set("Authorization", token)
		if u, err := neturl.Parse(wsURL); err == nil {
			q := u.Query()
			q.Set("token", token)
			u.RawQuery = q.Encode()
			wsURL = u.String()
		}
	}

	log.Debug().Str("component", "feed").Str("url", wsURL).Msg("dial")

	dialer := websocket.Dialer{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		Proxy:             http.ProxyFromEnvironment,
	}

	c, resp, err := dialer.DialContext(ctx, wsURL, hdr)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
			_ = resp.Body.Close()
			log.Warn().Str("component", "feed").Str("status", resp.Status).Str("body", string(body)).Msg("dial failed")
		} else {
			log.Warn().Str("component", "feed").Err(err).Msg("dial failed")
		}
		return nil, err
	}

	f := &Feed{conn: c, inCh: make(chan protocol.PixelUpdate, 256), done: make(chan struct{})}
	go f.reader()
	return f, nil
}

// Updates is closed when the connection ends; Err then tells why.
func (f *Feed) Updates() <-chan protocol.PixelUpdate { return f.inCh }

func (f *Feed) reader() {
	defer close(f.inCh)
	for {
		f.mu.Lock()
		c := f.conn
		f.mu.Unlock()
		if c == nil {
			return
		}
		typ, data, err := c.ReadMessage()
		if err != nil {
			f.mu.Lock()
			if !f.closed {
				f.err = err
				log.Info().Str("component", "feed").Err(err).Msg("connection lost")
			}
			f.closed = true
			f.conn = nil
			f.mu.Unlock()
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		u, err := Decode(data)
		if err != nil {
			log.Debug().Str("component", "feed").Err(err).Msg("skip frame")
			continue
		}
		select {
		case f.inCh <- u:
		case <-f.done:
			return
		}
	}
}

var errNotUpdate = errors.New("not a pixel update")

// Decode parses one text frame. The server occasionally sends plain-text
// diagnostics on the same socket; those are rejected.
func Decode(data []byte) (protocol.PixelUpdate, error) {
	var raw struct {
		X     *int   `json:"x"`
		Y     *int   `json:"y"`
		Color *uint8 `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return protocol.PixelUpdate{}, err
	}
	if raw.X == nil || raw.Y == nil || raw.Color == nil {
		return protocol.PixelUpdate{}, errNotUpdate
	}
	return protocol.PixelUpdate{X: *raw.X, Y: *raw.Y, Color: *raw.Color}, nil
}

// IsClosed reports whether Close() was called or the connection was torn down.
func (f *Feed) IsClosed() bool {
	if f == nil {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Err returns the read error that ended the feed, nil after a clean Close.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close closes the websocket and marks the Feed as closed.
func (f *Feed) Close() error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	c := f.conn
	f.conn = nil
	close(f.done)
	f.mu.Unlock()

	if c == nil {
		return nil
	}
	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.Close()
}
