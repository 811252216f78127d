package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	colBackdrop = color.NRGBA{18, 18, 24, 255}
	colPanel    = color.NRGBA{14, 18, 28, 235}
	colText     = color.NRGBA{230, 232, 240, 255}
	colMuted    = color.NRGBA{160, 168, 190, 255}
	colError    = color.NRGBA{255, 150, 150, 255}
	colInfo     = color.NRGBA{150, 220, 160, 255}
	colAccent   = color.NRGBA{255, 69, 0, 255}
)

func drawRect(dst *ebiten.Image, x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

// fillRoundRect draws a rounded rectangle via rects + 4 corner circles (fast & AA).
func fillRoundRect(dst *ebiten.Image, x, y, w, h int, r float32, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if r < 0 {
		r = 0
	}
	maxr := float32(w)
	if float32(h) < maxr {
		maxr = float32(h)
	}
	if r > maxr/2 {
		r = maxr / 2
	}

	// center band
	drawRect(dst, float64(x)+float64(r), float64(y), float64(w)-float64(2*r), float64(h), col)
	// left/right bands
	drawRect(dst, float64(x), float64(y)+float64(r), float64(r), float64(h)-float64(2*r), col)
	drawRect(dst, float64(x+w)-float64(r), float64(y)+float64(r), float64(r), float64(h)-float64(2*r), col)
	// corners
	vector.DrawFilledCircle(dst, float32(x)+r, float32(y)+r, r, col, true)
	vector.DrawFilledCircle(dst, float32(x+w)-r, float32(y)+r, r, col, true)
	vector.DrawFilledCircle(dst, float32(x)+r, float32(y+h)-r, r, col, true)
	vector.DrawFilledCircle(dst, float32(x+w)-r, float32(y+h)-r, r, col, true)
}

func ptIn(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}

func drawGlassCard(dst *ebiten.Image, x, y, w, h int) {
	// shadow
	fillRoundRect(dst, x-6, y+8, w+12, h+16, 18, color.NRGBA{0, 0, 0, 90})
	fillRoundRect(dst, x, y, w, h, 18, colPanel)
	fillRoundRect(dst, x+3, y+3, w-6, (h-6)/3, 16, color.NRGBA{70, 110, 180, 28})
	fillRoundRect(dst, x, y, w, 1, 18, color.NRGBA{120, 170, 255, 55})
	fillRoundRect(dst, x, y+h-1, w, 1, 18, color.NRGBA{255, 255, 255, 20})
}

// drawButton draws a pill button with a centered label.
func drawButton(dst *ebiten.Image, rct image.Rectangle, label string, face font.Face, fill color.Color, fg color.Color) {
	fillRoundRect(dst, rct.Min.X-2, rct.Min.Y+3, rct.Dx()+4, rct.Dy()+3, 12, color.NRGBA{0, 0, 0, 80})
	fillRoundRect(dst, rct.Min.X, rct.Min.Y, rct.Dx(), rct.Dy(), 12, fill)
	fillRoundRect(dst, rct.Min.X+3, rct.Min.Y+3, rct.Dx()-6, (rct.Dy()-6)/2, 10, color.NRGBA{255, 255, 255, 30})

	lb := text.BoundString(face, label)
	tx := rct.Min.X + (rct.Dx()-lb.Dx())/2
	ty := rct.Min.Y + (rct.Dy()+lb.Dy())/2 - 2
	text.Draw(dst, label, face, tx, ty, fg)
}

func drawAccentButton(dst *ebiten.Image, rct image.Rectangle, label string, face font.Face) {
	drawButton(dst, rct, label, face, colAccent, color.White)
}

func drawPlainButton(dst *ebiten.Image, rct image.Rectangle, label string, face font.Face) {
	drawButton(dst, rct, label, face, color.NRGBA{44, 52, 72, 240}, colText)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
