package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"place/internal/feed"
)

func (g *Game) retryConnect() {
	if g.connectInFlight {
		return
	}
	g.connSt = stateConnecting
	g.connErrMsg = ""
	g.connectInFlight = true
	go g.connectAsync(g.cfg.FeedURL(), g.token())
}

func (g *Game) connectAsync(url, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	f, err := feed.Dial(ctx, url, token)
	// send result without blocking forever; drop oldest on overflow
	select {
	case g.connCh <- connResult{f: f, err: err}:
	default:
		select {
		case <-g.connCh:
		default:
		}
		g.connCh <- connResult{f: f, err: err}
	}
}

func (g *Game) token() string {
	tok, err := g.store.Token()
	if err != nil {
		return ""
	}
	return tok
}

// updateConn drives idle/connecting/connected/failed and applies pending
// pixel updates from the feed.
func (g *Game) updateConn(now time.Time) {
	select {
	case res := <-g.connCh:
		g.connectInFlight = false
		if res.err != nil {
			log.Debug().Str("component", "feed").Err(res.err).Time("retry", now.Add(connRetry*time.Second)).Msg("feed unavailable")
			g.connSt = stateFailed
			g.connErrMsg = res.err.Error()
			g.connRetryAt = now.Add(connRetry * time.Second)
			break
		}
		g.feed = res.f
		g.connSt = stateConnected
		log.Info().Str("component", "feed").Msg("connected")
		// pixels placed while disconnected are only in the snapshot
		if g.board != nil && !g.loading {
			g.loadBoard()
		}
	default:
	}

	if g.connSt == stateConnected && g.feed.IsClosed() {
		log.Warn().Str("component", "feed").Err(g.feed.Err()).Msg("feed closed")
		g.connSt = stateFailed
		if err := g.feed.Err(); err != nil {
			g.connErrMsg = err.Error()
		}
		g.feed = nil
		g.connRetryAt = now.Add(connRetry * time.Second)
	}

	if g.connSt == stateFailed && now.After(g.connRetryAt) {
		g.retryConnect()
	}

	if g.feed == nil || g.board == nil || g.loading {
		return
	}
	for i := 0; i < maxFeedPull; i++ {
		select {
		case u, ok := <-g.feed.Updates():
			if !ok {
				return
			}
			g.applyUpdate(u.X, u.Y, u.Color)
		default:
			return
		}
	}
}

// reconnect drops the current feed and dials again, used when the endpoint
// or the token changed.
func (g *Game) reconnect() {
	if g.feed != nil {
		_ = g.feed.Close()
		g.feed = nil
	}
	g.connSt = stateIdle
	g.retryConnect()
}

func (g *Game) closeFeed() {
	if g.feed != nil {
		_ = g.feed.Close()
		g.feed = nil
	}
}
