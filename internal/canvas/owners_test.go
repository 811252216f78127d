package canvas

import (
	"testing"
	"time"
)

func TestOwnersThrottle(t *testing.T) {
	o := NewOwners(4)
	now := time.Unix(1000, 0)

	o.Point(Selection{1, 1})
	s, ok := o.Next(now)
	if !ok || s != (Selection{1, 1}) {
		t.Fatalf("first lookup = %v %v", s, ok)
	}
	// same pixel already in flight
	if _, ok := o.Next(now.Add(time.Second)); ok {
		t.Fatalf("pending pixel looked up twice")
	}

	o.Point(Selection{2, 2})
	if _, ok := o.Next(now.Add(10 * time.Millisecond)); ok {
		t.Fatalf("limiter should hold the second lookup")
	}
	if _, ok := o.Next(now.Add(300 * time.Millisecond)); !ok {
		t.Fatalf("lookup after 250ms should pass")
	}
}

func TestOwnersCacheAndForget(t *testing.T) {
	o := NewOwners(100)
	now := time.Unix(1000, 0)
	px := Selection{3, 4}

	o.Point(px)
	if _, ok := o.Next(now); !ok {
		t.Fatalf("lookup refused")
	}
	o.Store(px, "alice")
	if name, ok := o.Owner(); !ok || name != "alice" {
		t.Fatalf("Owner = %q %v", name, ok)
	}
	if _, ok := o.Next(now.Add(time.Second)); ok {
		t.Fatalf("cached pixel looked up again")
	}

	o.Forget(3, 4)
	if _, ok := o.Owner(); ok {
		t.Fatalf("forgotten owner still cached")
	}
	if _, ok := o.Next(now.Add(2 * time.Second)); !ok {
		t.Fatalf("forgotten pixel should be looked up again")
	}

	o.Fail(px)
	o.Point(NoSelection)
	if _, ok := o.Next(now.Add(3 * time.Second)); ok {
		t.Fatalf("no pixel pointed, nothing to look up")
	}
}

func TestOwnersDropAnswerForRepaintedPixel(t *testing.T) {
	o := NewOwners(100)
	now := time.Unix(1000, 0)
	px := Selection{3, 4}

	o.Point(px)
	s, ok := o.Next(now)
	if !ok {
		t.Fatalf("lookup refused")
	}
	o.Forget(3, 4)
	o.Store(s, "alice")
	if name, ok := o.Owner(); ok {
		t.Fatalf("owner from before the repaint cached: %q", name)
	}
	s, ok = o.Next(now.Add(time.Second))
	if !ok || s != px {
		t.Fatalf("repainted pixel not looked up again: %v %v", s, ok)
	}
	o.Store(s, "bob")
	if name, _ := o.Owner(); name != "bob" {
		t.Fatalf("Owner = %q, want bob", name)
	}
}

func TestOwnersDropAnswerAfterReset(t *testing.T) {
	o := NewOwners(100)
	px := Selection{1, 2}
	o.Point(px)
	if _, ok := o.Next(time.Unix(1000, 0)); !ok {
		t.Fatalf("lookup refused")
	}
	o.Reset()
	o.Store(px, "alice")
	if o.Len() != 0 {
		t.Fatalf("answer for the previous board cached")
	}
}

func TestOwnersCacheBounded(t *testing.T) {
	o := NewOwners(1e6)
	now := time.Unix(1000, 0)
	for i := 0; i <= maxOwners; i++ {
		px := Selection{X: i % 1000, Y: i / 1000}
		o.Point(px)
		if _, ok := o.Next(now.Add(time.Duration(i) * time.Millisecond)); !ok {
			t.Fatalf("lookup %d refused", i)
		}
		o.Store(px, "u")
	}
	if n := o.Len(); n > maxOwners {
		t.Fatalf("cache holds %d owners, cap %d", n, maxOwners)
	}
	if name, ok := o.Owner(); !ok || name != "u" {
		t.Fatalf("latest owner missing after trim")
	}
}
