package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"place/internal/api"
	"place/internal/canvas"
	"place/internal/feed"
	"place/internal/netcfg"
	"place/internal/protocol"
	"place/internal/session"
)

type Game struct {
	cfg     netcfg.Config
	client  *api.Client
	store   *session.Store
	watcher *netcfg.Watcher

	viewW, viewH int

	// board
	board    *canvas.Board
	boardImg *ebiten.Image
	palette  *canvas.Palette
	cam      *canvas.Camera
	ptr      canvas.Pointer
	loading  bool
	loadErr  string
	fitted   bool

	// pointer / selection
	cursor   canvas.Selection
	selected canvas.Selection
	info     *canvas.Owners

	// account
	loggedIn bool
	name     string
	profile  protocol.User
	haveProf bool
	cd       canvas.Countdown
	drawing  bool

	// toolbar hit rects, rebuilt every Draw
	swatches []rect
	drawBtn  rect

	// top bar
	menuBtn, boardBtn     rect
	usersCount, usersLive int
	usersAt               time.Time

	// overlays
	open    overlay
	auth    *AuthUI
	prof    *ProfileUI
	leaders *LeaderboardUI

	// live feed
	feed            *feed.Feed
	connCh          chan connResult
	connSt          connState
	connErrMsg      string
	connRetryAt     time.Time
	connectInFlight bool

	// results of background requests, applied on the game loop
	results chan func(*Game)

	toast      string
	toastErr   bool
	toastUntil time.Time
}

// async runs work off the game loop; the returned closure, if any, is
// applied during the next Update.
func (g *Game) async(work func() func(*Game)) {
	go func() {
		if apply := work(); apply != nil {
			g.results <- apply
		}
	}()
}

func (g *Game) drainResults() {
	for {
		select {
		case apply := <-g.results:
			apply(g)
		default:
			return
		}
	}
}

func (g *Game) notify(msg string, isErr bool) {
	g.toast = msg
	g.toastErr = isErr
	g.toastUntil = time.Now().Add(4 * time.Second)
}

func (g *Game) toolbarState() canvas.ToolbarState {
	return canvas.Toolbar(g.loggedIn, &g.cd)
}
