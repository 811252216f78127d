package game

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"place/internal/canvas"
)

// loadBoard fetches the palette and the full canvas in the background.
func (g *Game) loadBoard() {
	if g.loading {
		return
	}
	g.loading = true
	g.loadErr = ""
	client := g.client
	fallback := g.palette.Clone()

	g.async(func() func(*Game) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := canvas.Load(ctx, client, fallback)
		return func(g *Game) {
			g.loading = false
			if err != nil {
				log.Error().Str("component", "net").Err(err).Msg("load canvas")
				g.loadErr = err.Error()
				g.notify("Could not load the canvas.", true)
				return
			}
			if res.Colors != nil {
				if err := g.palette.Replace(res.Colors); err != nil {
					log.Warn().Str("component", "net").Err(err).Msg("server palette rejected")
				}
			}
			g.setBoard(res.Board)
			w, h := res.Board.Size()
			log.Info().Str("component", "net").Int("w", w).Int("h", h).Str("source", res.Source).Msg("canvas loaded")
		}
	})
}

func (g *Game) setBoard(b *canvas.Board) {
	w, h := b.Size()
	if g.board == nil || g.boardImg == nil || g.boardImg.Bounds().Dx() != w || g.boardImg.Bounds().Dy() != h {
		if g.boardImg != nil {
			g.boardImg.Deallocate()
		}
		g.boardImg = ebiten.NewImage(w, h)
		g.fitted = false
	}
	g.board = b
	g.info.Reset()
	g.cam.SetView(g.viewW, g.viewH-topBarH-toolbarH, w, h)
	if !g.fitted {
		g.cam.Reset(g.cfg.StartZoom)
		if g.cfg.StartZoom <= 0 {
			g.cam.Fit()
		}
		g.fitted = true
	}
}

// applyUpdate paints one pixel and forgets who owned it before.
func (g *Game) applyUpdate(x, y int, color uint8) {
	if g.board.Set(x, y, color, g.palette) {
		g.info.Forget(x, y)
		return
	}
	log.Debug().Str("component", "feed").Int("x", x).Int("y", y).Uint8("color", color).Msg("update out of range")
}

// uploadBoard copies the board to its texture when it changed.
func (g *Game) uploadBoard() {
	if g.board == nil || g.boardImg == nil {
		return
	}
	if pix, dirty := g.board.Pix(); dirty {
		g.boardImg.WritePixels(pix)
	}
}
