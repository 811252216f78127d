package game

import (
	"context"
	"errors"
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

type profileResult struct {
	username string
	err      error
}

// ProfileUI shows the signed-in user and edits name and password.
type ProfileUI struct {
	client   *api.Client
	onSaved  func(username string)
	onLogout func()
	onDenied func()

	user protocol.User
	have bool

	edit                    form
	username, pass, current *textBox
	errs                    map[*textBox]fieldMsg

	busy    bool
	results chan profileResult

	card               image.Rectangle
	btnSave, btnLogout image.Rectangle
}

func NewProfileUI(client *api.Client, onSaved func(string), onLogout func(), onDenied func()) *ProfileUI {
	face := fonts.UI(14)
	p := &ProfileUI{
		client:   client,
		onSaved:  onSaved,
		onLogout: onLogout,
		onDenied: onDenied,
		errs:     map[*textBox]fieldMsg{},
		results:  make(chan profileResult, 1),
	}
	p.username = newTextBox("Username", false, protocol.UsernameMax, face)
	p.pass = newTextBox("New password", true, protocol.PasswordMax, face)
	p.current = newTextBox("Current password", true, protocol.PasswordMax, face)
	p.edit.boxes = []*textBox{p.username, p.pass, p.current}
	p.edit.setFocus(0)
	return p
}

// SetUser refreshes the shown profile; the username field follows it
// unless the user is editing it.
func (p *ProfileUI) SetUser(u protocol.User) {
	if !p.have || p.username.Value == p.user.Username {
		p.username.Value = u.Username
	}
	p.user = u
	p.have = true
}

func (p *ProfileUI) Open() {
	p.edit.setFocus(0)
	for k := range p.errs {
		delete(p.errs, k)
	}
}

// Reset forgets the shown user, for when the account changes.
func (p *ProfileUI) Reset() {
	p.user = protocol.User{}
	p.have = false
	p.username.Value, p.pass.Value, p.current.Value = "", "", ""
	clear(p.errs)
}

// Poll applies a finished edit whether or not the card is open.
func (p *ProfileUI) Poll() {
	select {
	case res := <-p.results:
		p.finish(res)
	default:
	}
}

// Update returns false when the card wants to be closed.
func (p *ProfileUI) Update() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		switch {
		case ptIn(mx, my, p.btnSave):
			p.submit()
		case ptIn(mx, my, p.btnLogout):
			if p.onLogout != nil {
				p.onLogout()
			}
			return false
		case !ptIn(mx, my, p.card):
			return false
		}
	}
	if p.edit.update() {
		p.submit()
	}
	return true
}

func (p *ProfileUI) submit() {
	if p.busy {
		return
	}
	for k := range p.errs {
		delete(p.errs, k)
	}
	e := protocol.ProfileEdit{
		Username:        p.username.Value,
		Password:        p.pass.Value,
		CurrentPassword: p.current.Value,
	}
	p.busy = true
	client := p.client
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := client.EditProfile(ctx, e)
		p.results <- profileResult{username: e.Username, err: err}
	}()
}

func (p *ProfileUI) finish(res profileResult) {
	p.busy = false
	if res.err != nil {
		var ve *api.ValidationError
		switch {
		case errors.As(res.err, &ve):
			box := p.current
			switch ve.Field {
			case "username":
				box = p.username
			case "password":
				box = p.pass
			}
			p.errs[box] = fieldMsg{text: ve.Message}
		case errors.Is(res.err, api.ErrUnauthorized):
			p.errs[p.current] = fieldMsg{text: "Session expired, please log in again."}
			if p.onDenied != nil {
				p.onDenied()
			}
		default:
			log.Warn().Str("component", "auth").Err(res.err).Msg("profile edit failed")
			p.errs[p.current] = fieldMsg{text: api.Message(res.err)}
		}
		return
	}
	log.Info().Str("component", "auth").Str("user", res.username).Msg("profile updated")
	p.pass.Value, p.current.Value = "", ""
	p.errs[p.current] = fieldMsg{text: "Profile saved.", info: true}
	if p.onSaved != nil {
		p.onSaved(res.username)
	}
}

func (p *ProfileUI) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawRect(screen, 0, 0, float64(sw), float64(sh), color.NRGBA{6, 8, 12, 170})

	const headerH, statsH, fieldH, footerH = 70, 56, 74, 80
	w := 460
	h := headerH + statsH + len(p.edit.boxes)*fieldH + footerH
	x, y := (sw-w)/2, (sh-h)/2
	p.card = image.Rect(x, y, x+w, y+h)
	drawGlassCard(screen, x, y, w, h)

	ui := fonts.UI(14)
	name := p.user.Username
	if name == "" {
		name = "Profile"
	}
	text.Draw(screen, name, fonts.Title(22), x+24, y+42, color.NRGBA{220, 230, 255, 255})
	if p.have {
		badge, col := "not verified", colError
		if p.user.Verified {
			badge, col = "verified", colInfo
		}
		bb := text.BoundString(ui, badge)
		text.Draw(screen, badge, ui, x+w-24-bb.Dx(), y+42, col)

		stats := fmt.Sprintf("Score %s    Rank #%d", protocol.FormatCount(p.user.Score), p.user.Rank)
		text.Draw(screen, stats, fonts.Mono(14), x+24, y+headerH+24, colText)
	} else {
		text.Draw(screen, "Loading...", ui, x+24, y+headerH+24, colMuted)
	}

	fy := y + headerH + statsH
	for _, b := range p.edit.boxes {
		text.Draw(screen, b.Title, ui, x+24, fy+2, colMuted)
		b.X, b.Y, b.W, b.H = x+24, fy+8, w-48, 38
		placeholder := ""
		if b == p.pass {
			placeholder = "leave empty to keep"
		}
		b.draw(screen, placeholder)
		if m, ok := p.errs[b]; ok {
			col := colError
			if m.info {
				col = colInfo
			}
			text.Draw(screen, m.text, fonts.UI(12), x+28, fy+62, col)
		}
		fy += fieldH
	}

	bw, bh := 180, 44
	by := y + h - footerH + (footerH-bh)/2
	p.btnSave = image.Rect(x+24, by, x+24+bw, by+bh)
	p.btnLogout = image.Rect(x+w-24-bw, by, x+w-24, by+bh)
	label := "Save"
	if p.busy {
		label = "Saving..."
	}
	drawAccentButton(screen, p.btnSave, label, ui)
	drawPlainButton(screen, p.btnLogout, "Log out", ui)
}
