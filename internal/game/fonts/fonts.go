package fonts

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type family int

const (
	familyUI family = iota
	familyTitle
	familyMono
)

type key struct {
	fam  family
	size float64
}

var (
	mu    sync.Mutex
	cache = map[key]font.Face{}
)

func ttf(f family) []byte {
	switch f {
	case familyTitle:
		return gobold.TTF
	case familyMono:
		return gomono.TTF
	}
	return goregular.TTF
}

// face falls back to basicfont so a broken font never takes the UI down.
func face(f family, size float64) font.Face {
	k := key{f, size}
	mu.Lock()
	defer mu.Unlock()

	if ff, ok := cache[k]; ok {
		return ff
	}
	var out font.Face = basicfont.Face7x13
	if ft, err := opentype.Parse(ttf(f)); err == nil {
		if ff, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    size,
			DPI:     96,
			Hinting: font.HintingFull,
		}); err == nil {
			out = ff
		}
	}
	cache[k] = out
	return out
}

func UI(size float64) font.Face    { return face(familyUI, size) }
func Title(size float64) font.Face { return face(familyTitle, size) }
func Mono(size float64) font.Face  { return face(familyMono, size) }

// DrawOutlined draws s with a dark 1px outline, for labels over the canvas.
func DrawOutlined(dst *ebiten.Image, s string, ff font.Face, x, y int, fill color.Color) {
	shadow := color.RGBA{0, 0, 0, 200}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(dst, s, ff, x+dx, y+dy, shadow)
		}
	}
	text.Draw(dst, s, ff, x, y, fill)
}
