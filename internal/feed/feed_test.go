package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"place/internal/protocol"
)

func TestDecode(t *testing.T) {
	u, err := Decode([]byte(`{"x":3,"y":4,"color":12}`))
	if err != nil || u != (protocol.PixelUpdate{X: 3, Y: 4, Color: 12}) {
		t.Fatalf("Decode = %+v, %v", u, err)
	}
	for _, bad := range []string{
		`Error serializing update message`,
		`{"x":3,"y":4}`,
		`{"x":3,"y":4,"color":300}`,
	} {
		if _, err := Decode([]byte(bad)); err == nil {
			t.Errorf("Decode(%q) should fail", bad)
		}
	}
}

func wsServer(t *testing.T, frames []string, gotToken chan<- string) string {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotToken != nil {
			gotToken <- r.Header.Get("Authorization")
		}
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer c.Close()
		for _, f := range frames {
			if err := c.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		time.Sleep(50 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}

func TestFeedDeliversUpdatesAndSkipsJunk(t *testing.T) {
	tokens := make(chan string, 1)
	url := wsServer(t, []string{
		`{"x":1,"y":2,"color":3}`,
		`not json`,
		`{"x":5,"y":6,"color":7}`,
	}, tokens)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	f, err := Dial(ctx, url, "tok")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer f.Close()

	if tok := <-tokens; tok != "tok" {
		t.Fatalf("Authorization = %q", tok)
	}

	var got []protocol.PixelUpdate
	timeout := time.After(3 * time.Second)
	for done := false; !done; {
		select {
		case u, ok := <-f.Updates():
			if !ok {
				done = true
				break
			}
			got = append(got, u)
		case <-timeout:
			t.Fatal("timed out")
		}
	}
	if len(got) != 2 || got[0].X != 1 || got[1].Color != 7 {
		t.Fatalf("updates = %+v", got)
	}
	if !f.IsClosed() {
		t.Fatalf("feed should report closed after server hangup")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	url := wsServer(t, nil, nil)
	f, err := Dial(context.Background(), url, "")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	var nilFeed *Feed
	if !nilFeed.IsClosed() || nilFeed.Close() != nil {
		t.Fatalf("nil feed should be closed and closable")
	}
}

func TestDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if _, err := Dial(context.Background(), url, ""); err == nil {
		t.Fatalf("want handshake error")
	}
}
