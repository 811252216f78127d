package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"place/internal/canvas"
)

// canvasArea is the part of the window between the top bar and the toolbar.
func (g *Game) canvasArea() rect {
	return rect{x: 0, y: topBarH, w: g.viewW, h: g.viewH - topBarH - toolbarH}
}

// screenToPixel maps window coordinates to a board pixel.
func (g *Game) screenToPixel(mx, my int) canvas.Selection {
	x, y := g.cam.ScreenToPixel(float64(mx), float64(my-topBarH))
	return canvas.Selection{X: x, Y: y}
}

func (g *Game) updateCanvasInput(now time.Time) {
	if g.board == nil {
		return
	}
	area := g.canvasArea()
	mx, my := ebiten.CursorPosition()
	over := area.hit(mx, my)

	if over {
		g.cursor = g.screenToPixel(mx, my)
	}

	// wheel zoom, anchored at the pointer
	if _, wy := ebiten.Wheel(); wy != 0 && over {
		steps := 1
		if wy < 0 {
			steps = -1
		}
		g.cam.ZoomAt(float64(mx), float64(my-topBarH), steps)
	}

	// drag to pan, click to select
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && over {
		g.ptr.Press(mx, my)
	}
	if g.ptr.Down() {
		if dx, dy := g.ptr.Move(mx, my); dx != 0 || dy != 0 {
			g.cam.Pan(float64(dx), float64(dy))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.ptr.Release(now) && over {
			px := g.screenToPixel(mx, my)
			if g.board.In(px.X, px.Y) {
				g.selected = px
			}
		}
	}

	g.updateCanvasKeys(area)
}

func (g *Game) updateCanvasKeys(area rect) {
	step := g.cfg.PanStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.Pan(0, step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.Pan(0, -step)
	}

	cx, cy := float64(area.w)/2, float64(area.h)/2
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.cam.ZoomAt(cx, cy, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.cam.ZoomAt(cx, cy, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0) {
		g.cam.Fit()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.palette.Selected() != canvas.NoColor {
			g.palette.Deselect()
		} else {
			g.selected = canvas.NoSelection
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.board.In(g.cursor.X, g.cursor.Y) {
		coords := fmt.Sprintf("%d,%d", g.cursor.X, g.cursor.Y)
		if err := clipboard.WriteAll(coords); err != nil {
			g.notify("Clipboard unavailable.", true)
		} else {
			g.notify("Copied "+coords, false)
		}
	}
}

func (g *Game) drawCanvas(screen *ebiten.Image) {
	area := g.canvasArea()
	drawRect(screen, 0, float64(area.y), float64(area.w), float64(area.h), colBackdrop)
	if g.board == nil || g.boardImg == nil {
		return
	}
	g.uploadBoard()

	view := screen.SubImage(imageRect(area)).(*ebiten.Image)
	oy := float64(area.y)
	z := g.cam.Zoom

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(z, z)
	op.GeoM.Translate(g.cam.OffX, g.cam.OffY+oy)
	op.Filter = ebiten.FilterNearest
	view.DrawImage(g.boardImg, op)

	if g.cfg.ShowGrid && z >= g.cfg.GridMinZoom {
		g.drawGrid(view, area)
	}

	// selected pixel outline
	if g.selected.Valid() {
		sx, sy := g.cam.PixelToScreen(g.selected.X, g.selected.Y)
		vector.StrokeRect(view, float32(sx), float32(sy+oy), float32(z), float32(z), 2, color.White, false)
	}

	// cursor highlight tinted with the picked color
	if g.board.In(g.cursor.X, g.cursor.Y) {
		cx, cy, size := g.cam.CursorRect(g.cursor.X, g.cursor.Y)
		if c, ok := g.palette.SelectedColor(); ok {
			c.A = 0xbb
			vector.DrawFilledRect(view, float32(cx), float32(cy+oy), float32(size), float32(size), color.NRGBA{c.R, c.G, c.B, c.A}, false)
		} else {
			vector.StrokeRect(view, float32(cx), float32(cy+oy), float32(size), float32(size), 1, color.NRGBA{255, 255, 255, 0xbb}, false)
		}
	}
}

func (g *Game) drawGrid(dst *ebiten.Image, area rect) {
	w, h := g.board.Size()
	z := g.cam.Zoom
	oy := float64(area.y)
	line := color.NRGBA{0, 0, 0, 40}

	x0, y0 := g.cam.ScreenToPixel(0, 0)
	x1, y1 := g.cam.ScreenToPixel(float64(area.w), float64(area.h))
	x0, y0 = clampInt(x0, 0, w), clampInt(y0, 0, h)
	x1, y1 = clampInt(x1+1, 0, w), clampInt(y1+1, 0, h)

	top := math.Max(g.cam.OffY, 0) + oy
	bottom := math.Min(g.cam.OffY+float64(h)*z, float64(area.h)) + oy
	left := math.Max(g.cam.OffX, 0)
	right := math.Min(g.cam.OffX+float64(w)*z, float64(area.w))
	for x := x0; x <= x1; x++ {
		sx := float32(g.cam.OffX + float64(x)*z)
		vector.StrokeLine(dst, sx, float32(top), sx, float32(bottom), 1, line, false)
	}
	for y := y0; y <= y1; y++ {
		sy := float32(g.cam.OffY + float64(y)*z + oy)
		vector.StrokeLine(dst, float32(left), sy, float32(right), sy, 1, line, false)
	}
}
