package game

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"

	"place/internal/game/fonts"
	"place/internal/protocol"
)

const usersRefresh = 30 * time.Second

func (g *Game) layoutTopBar() {
	g.menuBtn = rect{x: g.viewW - pad - 120, y: 6, w: 120, h: topBarH - 12}
	g.boardBtn = rect{x: g.menuBtn.x - pad - 130, y: 6, w: 130, h: topBarH - 12}
}

func (g *Game) updateTopBar(now time.Time) {
	if now.After(g.usersAt) {
		g.usersAt = now.Add(usersRefresh)
		g.refreshUsers()
	}
	g.layoutTopBar()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	switch {
	case g.menuBtn.hit(mx, my):
		if g.loggedIn {
			g.openProfile()
		} else {
			g.openAuth()
		}
	case g.boardBtn.hit(mx, my):
		g.openLeaderboard()
	}
}

func (g *Game) refreshUsers() {
	client := g.client
	g.async(func() func(*Game) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		total, err := client.UsersCount(ctx)
		if err != nil {
			log.Debug().Str("component", "net").Err(err).Msg("users count")
			return nil
		}
		live, err := client.UsersConnected(ctx)
		if err != nil {
			log.Debug().Str("component", "net").Err(err).Msg("users connected")
			live = -1
		}
		return func(g *Game) {
			g.usersCount = total
			if live >= 0 {
				g.usersLive = live
			}
		}
	})
}

func (g *Game) drawTopBar(screen *ebiten.Image) {
	drawRect(screen, 0, 0, float64(g.viewW), topBarH, colPanel)
	drawRect(screen, 0, topBarH-1, float64(g.viewW), 1, color.NRGBA{120, 170, 255, 55})
	g.layoutTopBar()

	title := fonts.Title(18)
	text.Draw(screen, protocol.GameName, title, pad+4, topBarH/2+7, colAccent)
	x := pad + 4 + text.BoundString(title, protocol.GameName).Dx() + 16

	// connection dot
	dot := color.NRGBA{120, 120, 120, 255}
	switch g.connSt {
	case stateConnected:
		dot = color.NRGBA{90, 200, 110, 255}
	case stateConnecting:
		dot = color.NRGBA{230, 190, 60, 255}
	case stateFailed:
		dot = color.NRGBA{220, 80, 70, 255}
	}
	vector.DrawFilledCircle(screen, float32(x+5), topBarH/2, 5, dot, true)
	x += 18

	ui := fonts.UI(13)
	status := fmt.Sprintf("%d users, %d online", g.usersCount, g.usersLive)
	switch {
	case g.loading:
		status = "Loading canvas..."
	case g.connSt == stateFailed:
		status = "Live updates offline, retrying"
	}
	text.Draw(screen, status, ui, x, topBarH/2+5, colMuted)
	x += text.BoundString(ui, status).Dx() + 24

	if label := g.pixelLabel(); label != "" {
		text.Draw(screen, label, fonts.Mono(13), x, topBarH/2+5, colText)
	}

	drawPlainButton(screen, imageRect(g.boardBtn), "Leaderboard", ui)
	menu := "Login"
	if g.loggedIn {
		menu = g.name
		if menu == "" {
			menu = "Profile"
		}
	}
	drawAccentButton(screen, imageRect(g.menuBtn), menu, ui)
}
