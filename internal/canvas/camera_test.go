package canvas

import (
	"math"
	"testing"

	"place/internal/protocol"
)

func TestZoomClamps(t *testing.T) {
	c := NewCamera()
	c.SetView(800, 600, 100, 100)
	c.Reset(1)
	c.ZoomAt(400, 300, 200)
	if c.Zoom != protocol.MaxZoom {
		t.Fatalf("zoom = %v, want max", c.Zoom)
	}
	c.ZoomAt(400, 300, -500)
	if c.Zoom != protocol.MinZoom {
		t.Fatalf("zoom = %v, want min", c.Zoom)
	}
}

func TestZoomKeepsPointUnderCursor(t *testing.T) {
	c := NewCamera()
	c.SetView(800, 600, 200, 200)
	c.Reset(2)
	sx, sy := 350.0, 260.0
	bx := (sx - c.OffX) / c.Zoom
	by := (sy - c.OffY) / c.Zoom

	c.ZoomAt(sx, sy, 3)

	ax := (sx - c.OffX) / c.Zoom
	ay := (sy - c.OffY) / c.Zoom
	if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
		t.Fatalf("point drifted: before (%v,%v) after (%v,%v)", bx, by, ax, ay)
	}
	if math.Abs(c.Zoom-2*math.Pow(1.1, 3)) > 1e-9 {
		t.Fatalf("zoom = %v", c.Zoom)
	}
}

func TestScreenToPixelFloors(t *testing.T) {
	c := &Camera{OffX: 10, OffY: 20, Zoom: 4}
	cases := []struct {
		sx, sy float64
		x, y   int
	}{
		{10, 20, 0, 0},
		{13.9, 23.9, 0, 0},
		{14, 24, 1, 1},
		{9, 19, -1, -1},
	}
	for _, tc := range cases {
		x, y := c.ScreenToPixel(tc.sx, tc.sy)
		if x != tc.x || y != tc.y {
			t.Errorf("ScreenToPixel(%v,%v) = %d,%d; want %d,%d", tc.sx, tc.sy, x, y, tc.x, tc.y)
		}
	}
}

func TestCursorRectOverhang(t *testing.T) {
	c := &Camera{Zoom: 10}
	x, y, s := c.CursorRect(2, 3)
	if x != 19 || y != 29 || s != 12 {
		t.Fatalf("CursorRect = %v,%v,%v", x, y, s)
	}
}

func TestPanKeepsBoardVisible(t *testing.T) {
	c := NewCamera()
	c.SetView(800, 600, 100, 100)
	c.Reset(1)
	c.Pan(10000, 10000)
	if c.OffX > 800-minVisible || c.OffY > 600-minVisible {
		t.Fatalf("board pushed off screen: %v,%v", c.OffX, c.OffY)
	}
	c.Pan(-20000, -20000)
	if c.OffX < minVisible-100 || c.OffY < minVisible-100 {
		t.Fatalf("board pushed off screen: %v,%v", c.OffX, c.OffY)
	}
}

func TestFitShowsWholeBoard(t *testing.T) {
	c := NewCamera()
	c.SetView(1000, 500, 100, 100)
	c.Fit()
	if c.Zoom != 4.5 {
		t.Fatalf("zoom = %v, want 4.5", c.Zoom)
	}
	if c.OffX != 275 || c.OffY != 25 {
		t.Fatalf("offset = %v,%v", c.OffX, c.OffY)
	}
}
