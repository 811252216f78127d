package canvas

import (
	"math"

	"place/internal/protocol"
)

// keep at least this many screen pixels of the board inside the view
const minVisible = 32

// Camera maps board pixels to screen pixels: screen = offset + pixel*zoom.
type Camera struct {
	OffX, OffY float64
	Zoom       float64

	viewW, viewH   float64
	boardW, boardH float64
}

func NewCamera() *Camera { return &Camera{Zoom: 1} }

// SetView records the viewport and board sizes used for clamping.
func (c *Camera) SetView(viewW, viewH, boardW, boardH int) {
	c.viewW, c.viewH = float64(viewW), float64(viewH)
	c.boardW, c.boardH = float64(boardW), float64(boardH)
	c.clamp()
}

// Fit centers the board and picks the largest zoom that shows all of it.
func (c *Camera) Fit() {
	if c.boardW == 0 || c.boardH == 0 || c.viewW == 0 || c.viewH == 0 {
		return
	}
	z := math.Min(c.viewW/c.boardW, c.viewH/c.boardH) * 0.9
	c.Zoom = clampZoom(z)
	c.center()
}

// Reset centers the board at zoom z.
func (c *Camera) Reset(z float64) {
	c.Zoom = clampZoom(z)
	c.center()
}

func (c *Camera) center() {
	c.OffX = (c.viewW - c.boardW*c.Zoom) / 2
	c.OffY = (c.viewH - c.boardH*c.Zoom) / 2
	c.clamp()
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) || z < protocol.MinZoom {
		return protocol.MinZoom
	}
	if z > protocol.MaxZoom {
		return protocol.MaxZoom
	}
	return z
}

// ZoomAt multiplies (steps>0) or divides (steps<0) the zoom by ZoomStep per
// step, keeping the board point under (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy float64, steps int) {
	if steps == 0 {
		return
	}
	old := c.Zoom
	c.Zoom = clampZoom(old * math.Pow(protocol.ZoomStep, float64(steps)))
	if c.Zoom == old {
		return
	}
	f := c.Zoom / old
	c.OffX = sx - (sx-c.OffX)*f
	c.OffY = sy - (sy-c.OffY)*f
	c.clamp()
}

func (c *Camera) Pan(dx, dy float64) {
	c.OffX += dx
	c.OffY += dy
	c.clamp()
}

func (c *Camera) clamp() {
	if c.viewW == 0 || c.boardW == 0 {
		return
	}
	bw, bh := c.boardW*c.Zoom, c.boardH*c.Zoom
	c.OffX = clampF(c.OffX, minVisible-bw, c.viewW-minVisible)
	c.OffY = clampF(c.OffY, minVisible-bh, c.viewH-minVisible)
}

func clampF(v, lo, hi float64) float64 {
	if lo > hi {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// ScreenToPixel returns the board pixel under a screen point. The result may
// be outside the board; check with Board.In.
func (c *Camera) ScreenToPixel(sx, sy float64) (int, int) {
	return int(math.Floor((sx - c.OffX) / c.Zoom)), int(math.Floor((sy - c.OffY) / c.Zoom))
}

// PixelToScreen returns the top-left screen corner of a board pixel.
func (c *Camera) PixelToScreen(x, y int) (float64, float64) {
	return c.OffX + float64(x)*c.Zoom, c.OffY + float64(y)*c.Zoom
}

// CursorRect is the highlight square drawn around a pixel: it overhangs the
// pixel by a tenth of its size on every side.
func (c *Camera) CursorRect(x, y int) (sx, sy, size float64) {
	px, py := c.PixelToScreen(x, y)
	return px - c.Zoom*0.1, py - c.Zoom*0.1, c.Zoom * 1.2
}
