package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Board is the client copy of the shared pixel grid as an RGBA image.
// It is only touched from the game loop.
type Board struct {
	img   *image.RGBA
	w, h  int
	dirty bool
}

func NewBoard(w, h int) *Board {
	return &Board{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h, dirty: true}
}

func (b *Board) Size() (int, int) { return b.w, b.h }

func (b *Board) In(x, y int) bool { return x >= 0 && y >= 0 && x < b.w && y < b.h }

// Set paints one pixel from a palette index. It returns false when the
// coordinate or index is out of range; nothing is changed then.
func (b *Board) Set(x, y int, idx uint8, p *Palette) bool {
	if !b.In(x, y) {
		return false
	}
	c, ok := p.Color(int(idx))
	if !ok {
		return false
	}
	b.img.SetRGBA(x, y, c)
	b.dirty = true
	return true
}

func (b *Board) At(x, y int) color.RGBA {
	if !b.In(x, y) {
		return color.RGBA{}
	}
	return b.img.RGBAAt(x, y)
}

// LoadSnapshot draws a server snapshot onto the board. Sizes must match.
func (b *Board) LoadSnapshot(src image.Image) error {
	if src.Bounds().Dx() != b.w || src.Bounds().Dy() != b.h {
		return fmt.Errorf("snapshot is %dx%d, canvas is %dx%d", src.Bounds().Dx(), src.Bounds().Dy(), b.w, b.h)
	}
	draw.Draw(b.img, b.img.Bounds(), src, src.Bounds().Min, draw.Src)
	b.dirty = true
	return nil
}

// LoadIndices fills the board from a raw dump of palette indices laid out
// column-major (index x*h+y). Unknown indices stay transparent.
func (b *Board) LoadIndices(raw []byte, p *Palette) error {
	if len(raw) != b.w*b.h {
		return fmt.Errorf("pixel dump has %d bytes, want %d", len(raw), b.w*b.h)
	}
	for x := 0; x < b.w; x++ {
		for y := 0; y < b.h; y++ {
			c, ok := p.Color(int(raw[x*b.h+y]))
			if !ok {
				c = color.RGBA{}
			}
			b.img.SetRGBA(x, y, c)
		}
	}
	b.dirty = true
	return nil
}

// Pix exposes the RGBA buffer for upload and reports whether it changed
// since the previous call.
func (b *Board) Pix() ([]byte, bool) {
	d := b.dirty
	b.dirty = false
	return b.img.Pix, d
}

func (b *Board) Image() *image.RGBA { return b.img }
