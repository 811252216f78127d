package canvas

import (
	"testing"
	"time"
)

func TestCountdownTicksOncePerSecond(t *testing.T) {
	var c Countdown
	t0 := time.Unix(1000, 0)
	c.Set(3, t0)
	if c.Tick(t0.Add(999 * time.Millisecond)) {
		t.Fatalf("no change before a full second")
	}
	if !c.Tick(t0.Add(time.Second)) || c.Remaining() != 2 {
		t.Fatalf("remaining = %d", c.Remaining())
	}
	c.Tick(t0.Add(10 * time.Second))
	if c.Remaining() != 0 || c.Active() {
		t.Fatalf("countdown must stop at zero, got %d", c.Remaining())
	}
}

func TestCountdownNeverNegative(t *testing.T) {
	var c Countdown
	c.Set(-5, time.Now())
	if c.Remaining() != 0 {
		t.Fatalf("remaining = %d", c.Remaining())
	}
	now := time.Unix(2000, 0)
	c.SetUntil(1990, now)
	if c.Remaining() != 0 {
		t.Fatalf("past deadline should be zero, got %d", c.Remaining())
	}
}

func TestCountdownSetUntilRoundsUp(t *testing.T) {
	var c Countdown
	now := time.Unix(2000, 250_000_000)
	c.SetUntil(2010, now)
	if c.Remaining() != 10 {
		t.Fatalf("remaining = %d, want 10", c.Remaining())
	}
}

func TestToolbarStates(t *testing.T) {
	var cd Countdown
	p := MustDefault()
	if Toolbar(false, &cd) != StateNotConnected {
		t.Fatalf("logged out should show notConnected")
	}
	if s := Toolbar(true, &cd); s != StatePalette {
		t.Fatalf("state = %v", s)
	}
	if CanDraw(StatePalette, NoSelection, p) {
		t.Fatalf("no pixel selected")
	}
	_ = p.Select(3)
	if !CanDraw(StatePalette, Selection{1, 1}, p) {
		t.Fatalf("should be able to draw")
	}
	cd.Set(5, time.Now())
	if s := Toolbar(true, &cd); s != StateCooldown {
		t.Fatalf("state = %v", s)
	}
	if CanDraw(StateCooldown, Selection{1, 1}, p) {
		t.Fatalf("no drawing during cooldown")
	}
}
