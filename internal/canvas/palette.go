package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultColors is the built-in 32-color palette, used until the server
// list arrives or when it cannot be fetched.
var DefaultColors = []string{
	"#6d001a", "#be0039", "#ff4500", "#ffa800",
	"#ffd635", "#fff8b8", "#00a368", "#00cc78",
	"#7eed56", "#00756f", "#009eaa", "#00ccc0",
	"#2450a4", "#3690ea", "#51e9f4", "#493ac1",
	"#6a5cff", "#94b3ff", "#811e9f", "#b44ac0",
	"#e4abff", "#de107f", "#ff3881", "#ff99aa",
	"#6d482f", "#9c6926", "#ffb470", "#000000",
	"#515252", "#898d90", "#d4d7d9", "#ffffff",
}

// NoColor is the selection index when nothing is picked.
const NoColor = -1

// ParseHex reads #rgb or #rrggbb.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Palette is the ordered list of selectable colors plus the current pick.
type Palette struct {
	colors   []color.RGBA
	hex      []string
	selected int
}

func NewPalette(hexes []string) (*Palette, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if len(hexes) > 256 {
		return nil, fmt.Errorf("palette has %d colors, max 256", len(hexes))
	}
	p := &Palette{selected: NoColor}
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		p.colors = append(p.colors, c)
		p.hex = append(p.hex, strings.ToLower(strings.TrimSpace(h)))
	}
	return p, nil
}

// MustDefault returns the built-in palette.
func MustDefault() *Palette {
	p, err := NewPalette(DefaultColors)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Palette) Len() int { return len(p.colors) }

// Color returns the color at i; ok is false when i is not a palette index.
func (p *Palette) Color(i int) (color.RGBA, bool) {
	if i < 0 || i >= len(p.colors) {
		return color.RGBA{}, false
	}
	return p.colors[i], true
}

func (p *Palette) Hex(i int) string {
	if i < 0 || i >= len(p.hex) {
		return ""
	}
	return p.hex[i]
}

func (p *Palette) Selected() int { return p.selected }

// SelectedColor returns the picked color, ok false when nothing is picked.
func (p *Palette) SelectedColor() (color.RGBA, bool) { return p.Color(p.selected) }

// Select picks index i. Out-of-range indices are rejected and leave the
// selection unchanged.
func (p *Palette) Select(i int) error {
	if i < 0 || i >= len(p.colors) {
		return fmt.Errorf("color index %d out of range [0,%d)", i, len(p.colors))
	}
	p.selected = i
	return nil
}

// Toggle selects i, or deselects it if it is already the pick.
func (p *Palette) Toggle(i int) error {
	if i == p.selected {
		p.Deselect()
		return nil
	}
	return p.Select(i)
}

func (p *Palette) Deselect() { p.selected = NoColor }

// Replace swaps in a new color list, keeping the selection when it is
// still in range.
func (p *Palette) Replace(hexes []string) error {
	np, err := NewPalette(hexes)
	if err != nil {
		return err
	}
	sel := p.selected
	*p = *np
	if sel >= 0 && sel < len(p.colors) {
		p.selected = sel
	}
	return nil
}

// Clone returns an independent copy, safe to read from another goroutine.
func (p *Palette) Clone() *Palette {
	c := *p
	c.colors = append([]color.RGBA(nil), p.colors...)
	c.hex = append([]string(nil), p.hex...)
	return &c
}
