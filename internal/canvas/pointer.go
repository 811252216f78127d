package canvas

import "time"

const (
	// a click this soon after a drag ended is treated as part of the drag
	dragClickGuard = 100 * time.Millisecond
	// movement below this many pixels (squared) still counts as a click
	dragSlop2 = 4
)

// Pointer separates canvas drags from clicks.
type Pointer struct {
	down         bool
	lastX, lastY int
	startX       int
	startY       int
	dragged      bool
	dragEnded    time.Time
}

func (p *Pointer) Down() bool { return p.down }

func (p *Pointer) Press(x, y int) {
	p.down = true
	p.dragged = false
	p.lastX, p.lastY = x, y
	p.startX, p.startY = x, y
}

// Move returns the delta to pan by while the button is held.
func (p *Pointer) Move(x, y int) (dx, dy int) {
	if !p.down {
		return 0, 0
	}
	dx, dy = x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	ox, oy := x-p.startX, y-p.startY
	if ox*ox+oy*oy > dragSlop2 {
		p.dragged = true
	}
	return dx, dy
}

// Release ends the press and reports whether it was a click.
func (p *Pointer) Release(now time.Time) bool {
	if !p.down {
		return false
	}
	p.down = false
	if p.dragged {
		p.dragged = false
		p.dragEnded = now
		return false
	}
	return p.dragEnded.IsZero() || now.Sub(p.dragEnded) >= dragClickGuard
}
