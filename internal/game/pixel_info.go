package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"place/internal/canvas"
)

func (g *Game) updatePixelInfo(now time.Time) {
	if g.board == nil {
		return
	}
	if g.board.In(g.cursor.X, g.cursor.Y) {
		g.info.Point(g.cursor)
	} else {
		g.info.Point(canvas.NoSelection)
	}
	s, ok := g.info.Next(now)
	if !ok {
		return
	}
	client := g.client
	g.async(func() func(*Game) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		name, err := client.PixelOwner(ctx, s.X, s.Y)
		return func(g *Game) {
			if err != nil {
				log.Debug().Str("component", "net").Err(err).Int("x", s.X).Int("y", s.Y).Msg("pixel owner")
				g.info.Fail(s)
				return
			}
			g.info.Store(s, name)
		}
	})
}

// pixelLabel is the "(x, y) username" line for the cursor pixel.
func (g *Game) pixelLabel() string {
	if g.board == nil || !g.board.In(g.cursor.X, g.cursor.Y) {
		return ""
	}
	label := fmt.Sprintf("(%d, %d)", g.cursor.X, g.cursor.Y)
	if name, ok := g.info.Owner(); ok && name != "" {
		label += " " + name
	}
	return label
}
