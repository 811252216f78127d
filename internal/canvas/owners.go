package canvas

import (
	"time"

	"golang.org/x/time/rate"
)

// maxOwners bounds the owner cache; it is emptied when full.
const maxOwners = 4096

// Owners caches who placed which pixel and paces the lookups so sweeping
// the pointer across the board stays cheap for the server.
type Owners struct {
	lim   *rate.Limiter
	names map[Selection]string
	// pending maps an in-flight lookup to whether the pixel changed since.
	pending map[Selection]bool
	want    Selection
}

func NewOwners(perSecond float64) *Owners {
	return &Owners{
		lim:     rate.NewLimiter(rate.Limit(perSecond), 1),
		names:   map[Selection]string{},
		pending: map[Selection]bool{},
		want:    NoSelection,
	}
}

func (o *Owners) Reset() {
	clear(o.names)
	clear(o.pending)
	o.want = NoSelection
}

// Forget drops the cached owner after the pixel changed. A lookup already
// in flight for it is marked stale and its answer discarded.
func (o *Owners) Forget(x, y int) {
	s := Selection{X: x, Y: y}
	delete(o.names, s)
	if _, ok := o.pending[s]; ok {
		o.pending[s] = true
	}
}

// Point sets the pixel the user is looking at.
func (o *Owners) Point(s Selection) { o.want = s }

// Owner returns the cached owner of the pointed pixel.
func (o *Owners) Owner() (string, bool) {
	name, ok := o.names[o.want]
	return name, ok
}

// Len reports how many owners are cached.
func (o *Owners) Len() int { return len(o.names) }

// Next returns the pixel to look up now, if any and if the limiter allows.
func (o *Owners) Next(now time.Time) (Selection, bool) {
	if !o.want.Valid() {
		return NoSelection, false
	}
	if _, inFlight := o.pending[o.want]; inFlight {
		return NoSelection, false
	}
	if _, ok := o.names[o.want]; ok {
		return NoSelection, false
	}
	if !o.lim.AllowN(now, 1) {
		return NoSelection, false
	}
	o.pending[o.want] = false
	return o.want, true
}

func (o *Owners) Store(s Selection, name string) {
	stale, ok := o.pending[s]
	delete(o.pending, s)
	if !ok || stale {
		return
	}
	if len(o.names) >= maxOwners {
		clear(o.names)
	}
	o.names[s] = name
}

func (o *Owners) Fail(s Selection) { delete(o.pending, s) }
