package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"

	"place/internal/api"
	"place/internal/canvas"
	"place/internal/game/fonts"
	"place/internal/protocol"
)

// layoutToolbar computes the swatch and button rects for the current state.
func (g *Game) layoutToolbar() {
	y := g.viewH - toolbarH
	n := g.palette.Len()
	perRow := (g.viewW - 2*pad - 140) / (swatchSize + swatchGap)
	if perRow < 1 {
		perRow = 1
	}
	rows := (n + perRow - 1) / perRow
	size := swatchSize
	if rows > 1 {
		size = (toolbarH - 2*pad - (rows-1)*swatchGap/2) / rows
		if size < 8 {
			size = 8
		}
	}
	cols := n
	if cols > perRow {
		cols = perRow
	}
	totalW := cols*(size+swatchGap) - swatchGap
	x0 := (g.viewW - totalW - 140) / 2
	y0 := y + (toolbarH-(rows*size+(rows-1)*swatchGap/2))/2

	g.swatches = g.swatches[:0]
	for i := 0; i < n; i++ {
		c, r := i%perRow, i/perRow
		g.swatches = append(g.swatches, rect{x: x0 + c*(size+swatchGap), y: y0 + r*(size+swatchGap/2), w: size, h: size})
	}
	g.drawBtn = rect{x: x0 + totalW + 24, y: y + (toolbarH-40)/2, w: 116, h: 40}
}

func (g *Game) updateToolbar() {
	g.layoutToolbar()
	state := g.toolbarState()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) && canvas.CanDraw(state, g.selected, g.palette) {
			g.place()
		}
		return
	}
	mx, my := ebiten.CursorPosition()
	if my < g.viewH-toolbarH {
		return
	}
	switch state {
	case canvas.StatePalette:
		for i, r := range g.swatches {
			if r.hit(mx, my) {
				_ = g.palette.Toggle(i)
				return
			}
		}
		if canvas.CanDraw(state, g.selected, g.palette) && g.drawBtn.hit(mx, my) {
			g.place()
		}
	case canvas.StateNotConnected:
		g.openAuth()
	}
}

// place sends the selected color for the selected pixel.
func (g *Game) place() {
	if g.drawing {
		return
	}
	req := protocol.DrawRequest{X: g.selected.X, Y: g.selected.Y, Color: uint8(g.palette.Selected())}
	g.drawing = true
	client := g.client
	g.async(func() func(*Game) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cd, err := client.Draw(ctx, req)
		return func(g *Game) {
			g.drawing = false
			now := time.Now()
			switch {
			case err == nil:
				log.Info().Str("component", "net").Int("x", req.X).Int("y", req.Y).Uint8("color", req.Color).Int("cooldown", cd).Msg("pixel placed")
				if g.board != nil {
					g.applyUpdate(req.X, req.Y, req.Color)
				}
				g.cd.Set(cd, now)
				g.selected = canvas.NoSelection
			case errors.Is(err, api.ErrUnauthorized):
				g.logout("Session expired, please log in again.")
			case errors.Is(err, api.ErrCooldown):
				g.notify(api.Message(err), true)
				g.refreshProfile()
			default:
				log.Warn().Str("component", "net").Err(err).Msg("draw failed")
				g.notify(api.Message(err), true)
			}
		}
	})
}

func (g *Game) drawToolbar(screen *ebiten.Image) {
	y := g.viewH - toolbarH
	drawRect(screen, 0, float64(y), float64(g.viewW), toolbarH, colPanel)
	drawRect(screen, 0, float64(y), float64(g.viewW), 1, color.NRGBA{120, 170, 255, 55})
	g.layoutToolbar()

	face := fonts.UI(16)
	center := func(s string) {
		b := text.BoundString(face, s)
		text.Draw(screen, s, face, (g.viewW-b.Dx())/2, y+(toolbarH+b.Dy())/2-2, colText)
	}

	switch g.toolbarState() {
	case canvas.StateNotConnected:
		center("Log in to place pixels")
	case canvas.StateCooldown:
		n := g.cd.Remaining()
		unit := "seconds"
		if n == 1 {
			unit = "second"
		}
		center(fmt.Sprintf("%d %s", n, unit))
	case canvas.StatePalette:
		sel := g.palette.Selected()
		for i, r := range g.swatches {
			c, _ := g.palette.Color(i)
			if i == sel {
				drawRect(screen, float64(r.x-3), float64(r.y-3), float64(r.w+6), float64(r.h+6), color.White)
			}
			drawRect(screen, float64(r.x), float64(r.y), float64(r.w), float64(r.h), c)
		}
		if canvas.CanDraw(canvas.StatePalette, g.selected, g.palette) {
			label := "Place"
			if g.drawing {
				label = "..."
			}
			drawAccentButton(screen, imageRect(g.drawBtn), label, fonts.UI(14))
		}
	}
}
