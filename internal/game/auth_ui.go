package game

import (
	"context"
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"

	"place/internal/api"
	"place/internal/game/fonts"
	"place/internal/protocol"
	"place/internal/session"
)

type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthSignup
)

// fieldMsg is a line under a field; info lines are green, errors red.
type fieldMsg struct {
	text string
	info bool
}

type authResult struct {
	mode     AuthMode
	username string
	token    string
	err      error
}

// AuthUI is the login / signup card.
type AuthUI struct {
	mode    AuthMode
	client  *api.Client
	store   *session.Store
	onLogin func(username string)

	login  form
	signup form

	loginUser, loginPass                *textBox
	signupEmail, signupUser, signupPass *textBox

	errs map[*textBox]fieldMsg

	busy       bool
	results    chan authResult
	requireUBS bool
	ubsCh      chan bool

	remember     bool
	rememberRect image.Rectangle

	titleFace font.Face
	uiFace    font.Face

	cardX, cardY, cardW, cardH int
	btnSubmit                  image.Rectangle
	segLogin, segSignup        image.Rectangle
}

func NewAuthUI(client *api.Client, store *session.Store, onLogin func(username string)) *AuthUI {
	uiFace := fonts.UI(14)
	a := &AuthUI{
		mode:      AuthLogin,
		client:    client,
		store:     store,
		onLogin:   onLogin,
		errs:      map[*textBox]fieldMsg{},
		results:   make(chan authResult, 1),
		ubsCh:     make(chan bool, 1),
		remember:  true,
		titleFace: fonts.Title(22),
		uiFace:    uiFace,
	}
	a.loginUser = newTextBox("Username", false, 64, uiFace)
	a.loginPass = newTextBox("Password", true, protocol.PasswordMax, uiFace)
	a.signupEmail = newTextBox("Email", false, 254, uiFace)
	a.signupUser = newTextBox("Username", false, protocol.UsernameMax, uiFace)
	a.signupPass = newTextBox("Password", true, protocol.PasswordMax, uiFace)
	a.login.boxes = []*textBox{a.loginUser, a.loginPass}
	a.signup.boxes = []*textBox{a.signupEmail, a.signupUser, a.signupPass}
	if name := store.Username(); name != "" {
		a.loginUser.Value = name
		a.login.setFocus(1)
	} else {
		a.login.setFocus(0)
	}
	a.signup.setFocus(0)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ubs, err := client.RequiresUBS(ctx)
		if err != nil {
			log.Debug().Str("component", "auth").Err(err).Msg("ubs check failed")
			return
		}
		a.ubsCh <- ubs
	}()
	return a
}

func (a *AuthUI) activeForm() *form {
	if a.mode == AuthSignup {
		return &a.signup
	}
	return &a.login
}

func (a *AuthUI) SetMode(m AuthMode) {
	a.mode = m
	a.activeForm().setFocus(a.activeForm().focus)
}

func (a *AuthUI) Mode() AuthMode { return a.mode }

func (a *AuthUI) Busy() bool { return a.busy }

// Poll applies finished requests. It runs every frame, open or not, so a
// login that completes after the card was dismissed still lands; it
// reports whether a result was applied.
func (a *AuthUI) Poll() bool {
	select {
	case ubs := <-a.ubsCh:
		a.requireUBS = ubs
	default:
	}
	select {
	case res := <-a.results:
		a.finish(res)
		return true
	default:
		return false
	}
}

// Update returns false when the card wants to be closed.
func (a *AuthUI) Update() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return false
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		switch {
		case ptIn(mx, my, a.segLogin):
			a.SetMode(AuthLogin)
		case ptIn(mx, my, a.segSignup):
			a.SetMode(AuthSignup)
		case ptIn(mx, my, a.btnSubmit):
			a.submit()
		case ptIn(mx, my, a.rememberRect):
			a.remember = !a.remember
		case !ptIn(mx, my, image.Rect(a.cardX, a.cardY, a.cardX+a.cardW, a.cardY+a.cardH)):
			return false
		}
	}

	if a.activeForm().update() {
		a.submit()
	}
	return true
}

func (a *AuthUI) setErr(b *textBox, msg string) { a.errs[b] = fieldMsg{text: msg} }
func (a *AuthUI) setInfo(b *textBox, msg string) { a.errs[b] = fieldMsg{text: msg, info: true} }

func (a *AuthUI) clearErrs() {
	for k := range a.errs {
		delete(a.errs, k)
	}
}

func (a *AuthUI) submit() {
	if a.busy {
		return
	}
	a.clearErrs()

	switch a.mode {
	case AuthLogin:
		user, pass := a.loginUser.Value, a.loginPass.Value
		if err := api.ValidateLogin(user, pass); err != nil {
			a.showValidation(err)
			return
		}
		a.run(AuthLogin, user, func(ctx context.Context) (string, error) {
			return a.client.Login(ctx, user, pass)
		})

	case AuthSignup:
		req := api.NormalizeSignup(protocol.SignupRequest{
			Email:    a.signupEmail.Value,
			Username: a.signupUser.Value,
			Password: a.signupPass.Value,
		})
		a.signupEmail.Value, a.signupUser.Value, a.signupPass.Value = req.Email, req.Username, req.Password
		if err := api.ValidateSignup(req, a.requireUBS); err != nil {
			a.showValidation(err)
			return
		}
		a.run(AuthSignup, req.Username, func(ctx context.Context) (string, error) {
			return "", a.client.Signup(ctx, req, a.requireUBS)
		})
	}
}

func (a *AuthUI) run(mode AuthMode, user string, call func(context.Context) (string, error)) {
	a.busy = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		tok, err := call(ctx)
		a.results <- authResult{mode: mode, username: user, token: tok, err: err}
	}()
}

func (a *AuthUI) showValidation(err error) {
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	var box *textBox
	switch {
	case a.mode == AuthLogin && ve.Field == "username":
		box = a.loginUser
	case a.mode == AuthLogin:
		box = a.loginPass
	case ve.Field == "email":
		box = a.signupEmail
	case ve.Field == "username":
		box = a.signupUser
	default:
		box = a.signupPass
	}
	a.setErr(box, ve.Message)
	a.activeForm().setFocus(indexOf(a.activeForm().boxes, box))
}

func indexOf(bs []*textBox, b *textBox) int {
	for i, x := range bs {
		if x == b {
			return i
		}
	}
	return 0
}

func (a *AuthUI) finish(res authResult) {
	a.busy = false
	switch res.mode {
	case AuthLogin:
		if res.err != nil {
			log.Info().Str("component", "auth").Err(res.err).Msg("login failed")
			if errors.Is(res.err, api.ErrUnauthorized) {
				a.setErr(a.loginUser, "Invalid username or password.")
				a.setErr(a.loginPass, "Invalid username or password.")
			} else {
				a.setErr(a.loginPass, api.Message(res.err))
			}
			return
		}
		if err := a.store.Save(res.token, res.username, a.remember); err != nil {
			a.setErr(a.loginPass, err.Error())
			return
		}
		log.Info().Str("component", "auth").Str("user", res.username).Msg("logged in")
		a.loginPass.Value = ""
		if a.onLogin != nil {
			a.onLogin(res.username)
		}

	case AuthSignup:
		if res.err != nil {
			log.Info().Str("component", "auth").Err(res.err).Msg("signup failed")
			msg := "Something went wrong."
			var se *api.StatusError
			if errors.As(res.err, &se) && se.Body != "" {
				msg = se.Body
			}
			a.setErr(a.signupEmail, msg)
			a.setErr(a.signupUser, msg)
			a.setErr(a.signupPass, msg)
			return
		}
		a.loginUser.Value = res.username
		a.signup.clear()
		a.SetMode(AuthLogin)
		a.login.setFocus(1)
		a.setInfo(a.loginUser, "Verification email sent.")
		a.setInfo(a.loginPass, "Please check your inbox.")
	}
}

func (a *AuthUI) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawRect(screen, 0, 0, float64(sw), float64(sh), color.NRGBA{6, 8, 12, 170})

	boxes := a.activeForm().boxes
	const headerH, fieldH, rememberH, buttonH, footerH = 96, 74, 30, 48, 24
	a.cardW = 460
	a.cardH = headerH + len(boxes)*fieldH + rememberH + buttonH + footerH
	a.cardX = (sw - a.cardW) / 2
	a.cardY = (sh - a.cardH) / 2
	drawGlassCard(screen, a.cardX, a.cardY, a.cardW, a.cardH)

	title := "Login"
	if a.mode == AuthSignup {
		title = "Sign up"
	}
	text.Draw(screen, protocol.GameName, a.titleFace, a.cardX+24, a.cardY+40, color.NRGBA{220, 230, 255, 255})
	text.Draw(screen, title, a.uiFace, a.cardX+24, a.cardY+66, color.NRGBA{160, 190, 255, 200})

	// Segmented Login | Sign up pill
	segW, segH := 200, 34
	segX := a.cardX + a.cardW - segW - 24
	segY := a.cardY + 24
	fillRoundRect(screen, segX, segY, segW, segH, float32(segH/2), color.NRGBA{20, 28, 44, 210})
	a.segLogin = image.Rect(segX, segY, segX+segW/2, segY+segH)
	a.segSignup = image.Rect(segX+segW/2, segY, segX+segW, segY+segH)
	knob := a.segLogin
	if a.mode == AuthSignup {
		knob = a.segSignup
	}
	fillRoundRect(screen, knob.Min.X, knob.Min.Y, knob.Dx(), knob.Dy(), float32(segH/2), color.NRGBA{160, 50, 20, 220})
	text.Draw(screen, "Login", a.uiFace, segX+28, segY+23, color.White)
	text.Draw(screen, "Sign up", a.uiFace, segX+segW/2+22, segY+23, color.White)

	left := a.cardX + 24
	y := a.cardY + headerH
	for _, b := range boxes {
		text.Draw(screen, b.Title, a.uiFace, left, y+2, colMuted)
		b.X, b.Y = left, y+8
		b.W, b.H = a.cardW-48, 38
		b.draw(screen, "")
		if m, ok := a.errs[b]; ok {
			col := colError
			if m.info {
				col = colInfo
			}
			text.Draw(screen, m.text, fonts.UI(12), left+4, y+62, col)
		}
		y += fieldH
	}

	if a.mode == AuthLogin {
		cb := 16
		cbY := y + (rememberH-cb)/2 - 6
		a.rememberRect = image.Rect(left, cbY, left+cb, cbY+cb)
		drawRect(screen, float64(left), float64(cbY), float64(cb), float64(cb), color.NRGBA{24, 28, 40, 220})
		if a.remember {
			drawRect(screen, float64(left+3), float64(cbY+3), float64(cb-6), float64(cb-6), colAccent)
		}
		text.Draw(screen, "Remember me", a.uiFace, left+cb+10, cbY+cb-2, colMuted)
	} else {
		a.rememberRect = image.Rectangle{}
		if a.requireUBS {
			text.Draw(screen, "A UBS address is required.", fonts.UI(12), left, y+10, colMuted)
		}
	}

	btnW, btnH := 220, 44
	btnX := a.cardX + (a.cardW-btnW)/2
	btnY := a.cardY + a.cardH - footerH - btnH
	a.btnSubmit = image.Rect(btnX, btnY, btnX+btnW, btnY+btnH)
	label := "Login"
	if a.mode == AuthSignup {
		label = "Create account"
	}
	if a.busy {
		label = "Working..."
	}
	drawAccentButton(screen, a.btnSubmit, label, a.uiFace)
}
