package canvas

import (
	"math"
	"time"
)

// Countdown is the placement cooldown shown to the user, in whole seconds.
// The server enforces the real limit; this only mirrors it.
type Countdown struct {
	remaining int
	nextTick  time.Time
}

// Set starts counting down from sec seconds. Negative values mean zero.
func (c *Countdown) Set(sec int, now time.Time) {
	if sec < 0 {
		sec = 0
	}
	c.remaining = sec
	c.nextTick = now.Add(time.Second)
}

// SetUntil starts counting toward a unix timestamp.
func (c *Countdown) SetUntil(unix int64, now time.Time) {
	left := float64(unix) - float64(now.UnixNano())/1e9
	c.Set(int(math.Ceil(left)), now)
}

// Tick advances the countdown; it returns true when the value changed.
func (c *Countdown) Tick(now time.Time) bool {
	changed := false
	for c.remaining > 0 && !now.Before(c.nextTick) {
		c.remaining--
		c.nextTick = c.nextTick.Add(time.Second)
		changed = true
	}
	return changed
}

func (c *Countdown) Remaining() int { return c.remaining }

func (c *Countdown) Active() bool { return c.remaining > 0 }
