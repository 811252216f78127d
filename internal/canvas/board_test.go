package canvas

import (
	"image"
	"image/color"
	"testing"
)

func TestBoardSetBounds(t *testing.T) {
	p := MustDefault()
	b := NewBoard(4, 3)
	if !b.Set(3, 2, 2, p) {
		t.Fatalf("in-range set failed")
	}
	if b.At(3, 2) != (color.RGBA{0xff, 0x45, 0x00, 0xff}) {
		t.Fatalf("pixel = %v", b.At(3, 2))
	}
	for _, xy := range [][2]int{{4, 0}, {0, 3}, {-1, 0}} {
		if b.Set(xy[0], xy[1], 0, p) {
			t.Errorf("Set(%d,%d) should be rejected", xy[0], xy[1])
		}
	}
	if b.Set(0, 0, 200, p) {
		t.Errorf("unknown palette index should be rejected")
	}
}

func TestBoardLoadIndicesColumnMajor(t *testing.T) {
	p := MustDefault()
	b := NewBoard(2, 3)
	// x*h + y
	raw := []byte{
		0, 1, 2, // x=0
		27, 31, 255, // x=1
	}
	if err := b.LoadIndices(raw, p); err != nil {
		t.Fatalf("LoadIndices: %v", err)
	}
	want1, _ := p.Color(1)
	if b.At(0, 1) != want1 {
		t.Fatalf("(0,1) = %v, want %v", b.At(0, 1), want1)
	}
	want27, _ := p.Color(27)
	if b.At(1, 0) != want27 {
		t.Fatalf("(1,0) = %v", b.At(1, 0))
	}
	if b.At(1, 2).A != 0 {
		t.Fatalf("unknown index should be transparent")
	}
	if err := b.LoadIndices(raw[:5], p); err == nil {
		t.Fatalf("short dump should fail")
	}
}

func TestBoardSnapshotSizeMismatch(t *testing.T) {
	b := NewBoard(2, 2)
	if err := b.LoadSnapshot(image.NewRGBA(image.Rect(0, 0, 3, 2))); err == nil {
		t.Fatalf("want size error")
	}
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{1, 2, 3, 255})
	if err := b.LoadSnapshot(src); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if b.At(1, 1) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("snapshot not copied")
	}
}

func TestBoardDirtyFlag(t *testing.T) {
	b := NewBoard(1, 1)
	if _, dirty := b.Pix(); !dirty {
		t.Fatalf("new board should be dirty")
	}
	if _, dirty := b.Pix(); dirty {
		t.Fatalf("flag should reset after Pix")
	}
	b.Set(0, 0, 0, MustDefault())
	if _, dirty := b.Pix(); !dirty {
		t.Fatalf("Set should mark dirty")
	}
}
