package game

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"

	"place/internal/api"
	"place/internal/game/fonts"
	"place/internal/protocol"
)

type lbResult struct {
	rows protocol.Leaderboard
	err  error
}

// LeaderboardUI lists the top players and refreshes while open.
type LeaderboardUI struct {
	client  *api.Client
	every   time.Duration
	nextAt  time.Time
	loading bool
	results chan lbResult

	rows protocol.Leaderboard
	err  string
	me   string

	card image.Rectangle
}

func NewLeaderboardUI(client *api.Client, every time.Duration) *LeaderboardUI {
	if every <= 0 {
		every = 30 * time.Second
	}
	return &LeaderboardUI{client: client, every: every, results: make(chan lbResult, 1)}
}

// Open forces a fetch now; me highlights the player's own row.
func (l *LeaderboardUI) Open(me string) {
	l.me = me
	l.nextAt = time.Time{}
}

func (l *LeaderboardUI) SetInterval(every time.Duration) {
	if every > 0 {
		l.every = every
	}
}

func (l *LeaderboardUI) fetch() {
	l.loading = true
	client := l.client
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rows, err := client.Leaderboard(ctx)
		l.results <- lbResult{rows: rows, err: err}
	}()
}

// Update returns false when the list should close.
func (l *LeaderboardUI) Update(now time.Time) bool {
	select {
	case res := <-l.results:
		l.loading = false
		if res.err != nil {
			log.Warn().Str("component", "net").Err(res.err).Msg("leaderboard")
			l.err = api.Message(res.err)
		} else {
			l.err = ""
			l.rows = res.rows
		}
	default:
	}
	if !l.loading && !now.Before(l.nextAt) {
		l.nextAt = now.Add(l.every)
		l.fetch()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !ptIn(mx, my, l.card) {
			return false
		}
	}
	return true
}

func (l *LeaderboardUI) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawRect(screen, 0, 0, float64(sw), float64(sh), color.NRGBA{6, 8, 12, 150})

	const rowH, headerH = 34, 76
	n := len(l.rows)
	if n > protocol.LeaderboardSize {
		n = protocol.LeaderboardSize
	}
	w := 420
	h := headerH + max(n, 1)*rowH + 24
	x, y := (sw-w)/2, (sh-h)/2
	l.card = image.Rect(x, y, x+w, y+h)
	drawGlassCard(screen, x, y, w, h)

	text.Draw(screen, "Leaderboard", fonts.Title(20), x+24, y+40, color.NRGBA{220, 230, 255, 255})
	if l.loading {
		text.Draw(screen, "refreshing", fonts.UI(12), x+w-100, y+40, colMuted)
	}

	ui, mono := fonts.UI(15), fonts.Mono(15)
	ry := y + headerH
	switch {
	case l.err != "" && len(l.rows) == 0:
		text.Draw(screen, l.err, ui, x+24, ry+20, colError)
		return
	case len(l.rows) == 0:
		text.Draw(screen, "No pixels placed yet.", ui, x+24, ry+20, colMuted)
		return
	}
	for i := 0; i < n; i++ {
		e := l.rows[i]
		if e.Name == l.me && l.me != "" {
			fillRoundRect(screen, x+12, ry-2, w-24, rowH-4, 8, color.NRGBA{255, 69, 0, 50})
		}
		fg := colText
		if e.Rank <= 3 {
			fg = color.NRGBA{255, 200, 90, 255}
		}
		text.Draw(screen, fmt.Sprintf("#%d", e.Rank), mono, x+24, ry+20, fg)
		text.Draw(screen, e.Name, ui, x+80, ry+20, colText)
		score := protocol.FormatCount(e.Pixels)
		sb := text.BoundString(mono, score)
		text.Draw(screen, score, mono, x+w-24-sb.Dx(), ry+20, colMuted)
		ry += rowH
	}
}
