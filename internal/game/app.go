package game

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"

	"place/internal/api"
	"place/internal/canvas"
	"place/internal/game/fonts"
	"place/internal/netcfg"
	"place/internal/protocol"
	"place/internal/session"
)

// Options wires the window to its collaborators. Watcher may be nil.
type Options struct {
	Config  netcfg.Config
	API     *api.Client
	Session *session.Store
	Watcher *netcfg.Watcher
}

// pixel-owner lookups per second
const ownerLookups = 4

func New(opt Options) *Game {
	g := &Game{
		cfg:      opt.Config,
		client:   opt.API,
		store:    opt.Session,
		watcher:  opt.Watcher,
		viewW:    protocol.ScreenW,
		viewH:    protocol.ScreenH,
		palette:  canvas.MustDefault(),
		cam:      canvas.NewCamera(),
		cursor:   canvas.NoSelection,
		selected: canvas.NoSelection,
		info:     canvas.NewOwners(ownerLookups),
		connCh:   make(chan connResult, 4),
		connSt:   stateIdle,
		results:  make(chan func(*Game), 64),
	}
	g.leaders = NewLeaderboardUI(g.client, time.Duration(g.cfg.LeaderboardSec)*time.Second)

	if g.store.HasToken() {
		g.loggedIn = true
		g.name = g.store.Username()
		g.refreshProfile()
	}
	g.loadBoard()
	g.retryConnect()
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	g.drainResults()
	g.applyConfig()
	g.updateConn(now)
	g.cd.Tick(now)
	g.pollForms()

	switch g.open {
	case overlayAuth:
		if !g.auth.Update() {
			g.closeOverlay()
		}
		return nil
	case overlayProfile:
		if !g.prof.Update() {
			g.closeOverlay()
		}
		return nil
	case overlayLeaderboard:
		if !g.leaders.Update(now) {
			g.closeOverlay()
		}
		return nil
	}

	g.updateTopBar(now)
	g.updateToolbar()
	g.updateCanvasInput(now)
	g.updatePixelInfo(now)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackdrop)
	g.drawCanvas(screen)
	g.drawToolbar(screen)
	g.drawTopBar(screen)

	if g.board == nil {
		msg := "Loading canvas..."
		col := colMuted
		if g.loadErr != "" && !g.loading {
			msg, col = "Could not load the canvas: "+g.loadErr, colError
		}
		face := fonts.UI(16)
		b := text.BoundString(face, msg)
		fonts.DrawOutlined(screen, msg, face, (g.viewW-b.Dx())/2, g.viewH/2, col)
	}

	switch g.open {
	case overlayAuth:
		g.auth.Draw(screen)
	case overlayProfile:
		g.prof.Draw(screen)
	case overlayLeaderboard:
		g.leaders.Draw(screen)
	}

	if g.toast != "" && time.Now().Before(g.toastUntil) {
		g.drawToast(screen)
	}
}

func (g *Game) drawToast(screen *ebiten.Image) {
	face := fonts.UI(14)
	b := text.BoundString(face, g.toast)
	w, h := b.Dx()+32, 36
	x, y := (g.viewW-w)/2, g.viewH-toolbarH-h-12
	fill := color.NRGBA{30, 40, 60, 230}
	if g.toastErr {
		fill = color.NRGBA{120, 30, 30, 230}
	}
	fillRoundRect(screen, x, y, w, h, 10, fill)
	text.Draw(screen, g.toast, face, x+16, y+(h+b.Dy())/2-2, colText)
}

// Layout follows the window so the canvas gets every pixel.
func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW < 320 {
		outsideW = 320
	}
	if outsideH < 240 {
		outsideH = 240
	}
	if outsideW != g.viewW || outsideH != g.viewH {
		g.viewW, g.viewH = outsideW, outsideH
		if g.board != nil {
			w, h := g.board.Size()
			g.cam.SetView(g.viewW, g.viewH-topBarH-toolbarH, w, h)
		}
	}
	return g.viewW, g.viewH
}

// ---- overlays ----

func (g *Game) openAuth() {
	if g.auth == nil {
		g.auth = NewAuthUI(g.client, g.store, g.onLogin)
	}
	g.auth.SetMode(AuthLogin)
	g.open = overlayAuth
}

func (g *Game) openProfile() {
	if g.prof == nil {
		g.prof = NewProfileUI(g.client, g.onProfileSaved, func() { g.logout("") }, func() {
			g.logout("Session expired, please log in again.")
		})
	}
	if g.haveProf {
		g.prof.SetUser(g.profile)
	}
	g.prof.Open()
	g.refreshProfile()
	g.open = overlayProfile
}

func (g *Game) openLeaderboard() {
	g.leaders.Open(g.name)
	g.open = overlayLeaderboard
}

func (g *Game) closeOverlay() { g.open = overlayNone }

// pollForms lands account requests that finished after their card closed.
// A signup or failed login brings the card back so its message is seen.
func (g *Game) pollForms() {
	if g.auth != nil && g.auth.Poll() && !g.loggedIn && g.open == overlayNone {
		g.open = overlayAuth
	}
	if g.prof != nil {
		g.prof.Poll()
	}
}

// ---- account ----

func (g *Game) onLogin(username string) {
	g.loggedIn = true
	g.name = username
	g.closeOverlay()
	g.refreshProfile()
	g.reconnect()
}

func (g *Game) onProfileSaved(username string) {
	if !g.loggedIn {
		return
	}
	g.name = username
	if err := g.store.SetUsername(username); err != nil {
		log.Warn().Str("component", "auth").Err(err).Msg("remember username")
	}
	g.refreshProfile()
}

// logout forgets the token; msg, when set, is shown to the user.
func (g *Game) logout(msg string) {
	if err := g.store.Clear(); err != nil {
		log.Warn().Str("component", "auth").Err(err).Msg("clear session")
	}
	g.loggedIn = false
	g.haveProf = false
	g.profile = protocol.User{}
	g.name = ""
	if g.prof != nil {
		g.prof.Reset()
	}
	g.cd.Set(0, time.Now())
	if g.open == overlayProfile {
		g.closeOverlay()
	}
	if msg != "" {
		g.notify(msg, true)
	}
	log.Info().Str("component", "auth").Msg("logged out")
	g.reconnect()
}

// refreshProfile fetches the profile and syncs the cooldown with it.
func (g *Game) refreshProfile() {
	if !g.loggedIn {
		return
	}
	client := g.client
	g.async(func() func(*Game) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		u, err := client.Profile(ctx)
		return func(g *Game) {
			if !g.loggedIn {
				return
			}
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					g.logout("Session expired, please log in again.")
					return
				}
				log.Warn().Str("component", "net").Err(err).Msg("profile")
				return
			}
			g.profile = u
			g.haveProf = true
			g.name = u.Username
			g.cd.SetUntil(u.Cooldown, time.Now())
			if g.prof != nil {
				g.prof.SetUser(u)
			}
		}
	})
}

// ---- config ----

// applyConfig picks up a reloaded config file. Only view settings change;
// endpoints and log level stay as resolved at startup.
func (g *Game) applyConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg := <-g.watcher.Updates():
		prev := g.cfg
		cfg.APIBase, cfg.WSURL = prev.APIBase, prev.WSURL
		cfg.LogLevel = prev.LogLevel
		g.cfg = cfg
		g.leaders.SetInterval(time.Duration(cfg.LeaderboardSec) * time.Second)
		log.Info().Str("component", "config").Bool("grid", cfg.ShowGrid).Float64("grid_min_zoom", cfg.GridMinZoom).Msg("config reloaded")
	default:
	}
}
