package game

import (
	"image"

	"place/internal/feed"
)

type connState int

const (
	stateIdle connState = iota
	stateConnecting
	stateConnected
	stateFailed

	// UI layout
	topBarH     = 44
	toolbarH    = 64
	swatchSize  = 26
	swatchGap   = 6
	pad         = 8
	connRetry   = 2 // seconds between feed dials
	maxFeedPull = 512
)

func (s connState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateConnecting:
		return "connecting"
	case stateConnected:
		return "connected"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

type overlay int

const (
	overlayNone overlay = iota
	overlayAuth
	overlayProfile
	overlayLeaderboard
)

// ---- Small utility types ----

type rect struct{ x, y, w, h int }

func (r rect) hit(mx, my int) bool {
	return mx >= r.x && mx <= r.x+r.w && my >= r.y && my <= r.y+r.h
}

func imageRect(r rect) image.Rectangle { return image.Rect(r.x, r.y, r.x+r.w, r.y+r.h) }

// Used by async connection
type connResult struct {
	f   *feed.Feed
	err error
}
