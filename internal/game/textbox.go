package game

import (
	"image/color"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type textBox struct {
	Title     string
	Value     string
	Mask      bool
	MaxLen    int
	X, Y      int
	W, H      int
	focused   bool
	cursorOn  bool
	lastBlink time.Time
	face      font.Face
}

func newTextBox(title string, mask bool, maxLen int, face font.Face) *textBox {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &textBox{
		Title: title, W: 360, H: 40,
		Mask: mask, MaxLen: maxLen, face: face, lastBlink: time.Now(),
	}
}

func (t *textBox) rectContains(mx, my int) bool {
	return mx >= t.X && mx <= t.X+t.W && my >= t.Y && my <= t.Y+t.H
}

func (t *textBox) update() {
	// caret blink
	if time.Since(t.lastBlink) > 500*time.Millisecond {
		t.cursorOn = !t.cursorOn
		t.lastBlink = time.Now()
	}
	if !t.focused {
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 32 {
			continue
		}
		// limits are in bytes, as the server counts them
		if t.MaxLen > 0 && len(t.Value)+utf8.RuneLen(r) > t.MaxLen {
			break
		}
		t.Value += string(r)
	}
	// backspace (single-step to avoid "sawing")
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && t.Value != "" {
		rs := []rune(t.Value)
		t.Value = string(rs[:len(rs)-1])
	}
}

func (t *textBox) draw(dst *ebiten.Image, placeholder string) {
	fill := color.NRGBA{16, 22, 34, 220}
	border := color.NRGBA{120, 160, 255, 64}
	if t.focused {
		border = color.NRGBA{255, 120, 60, 160}
	}
	fillRoundRect(dst, t.X-1, t.Y-1, t.W+2, t.H+2, 10, border)
	fillRoundRect(dst, t.X, t.Y, t.W, t.H, 10, fill)

	val := t.Value
	if t.Mask && val != "" {
		val = strings.Repeat("•", len([]rune(t.Value)))
	}
	lineH := text.BoundString(t.face, "Hg").Dy()
	baseline := t.Y + (t.H+lineH)/2 - 2
	const padX = 12

	if val == "" && !t.focused && placeholder != "" {
		text.Draw(dst, placeholder, t.face, t.X+padX, baseline, color.NRGBA{180, 188, 210, 140})
		return
	}
	text.Draw(dst, val, t.face, t.X+padX, baseline, colText)

	if t.focused && t.cursorOn {
		w := text.BoundString(t.face, val).Dx()
		text.Draw(dst, "|", t.face, t.X+padX+w+1, baseline, colText)
	}
}

// form is an ordered set of text boxes with tab focus.
type form struct {
	boxes []*textBox
	focus int
}

func (f *form) setFocus(i int) {
	if len(f.boxes) == 0 {
		return
	}
	f.focus = (i + len(f.boxes)) % len(f.boxes)
	for j, b := range f.boxes {
		b.focused = j == f.focus
	}
}

// update handles clicks, tab and typing. It returns true when Enter was pressed.
func (f *form) update() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for i, b := range f.boxes {
			if b.rectContains(mx, my) {
				f.setFocus(i)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			f.setFocus(f.focus - 1)
		} else {
			f.setFocus(f.focus + 1)
		}
	}
	for _, b := range f.boxes {
		b.update()
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
}

func (f *form) clear() {
	for _, b := range f.boxes {
		b.Value = ""
	}
}
