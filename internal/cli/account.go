package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amterp/ra"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"place/internal/api"
	"place/internal/protocol"
)

const requestTimeout = 15 * time.Second

func registerLogin(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("login")
	cmd.SetDescription("Log in and remember the session for the window")

	ctx.LoginUsername, _ = ra.NewString("username").
		SetShort("u").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Username; asked for when missing").
		Register(cmd)

	ctx.LoginForget, _ = ra.NewBool("no-remember").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Check the credentials without saving the token").
		Register(cmd)

	ctx.LoginUsed, _ = parent.RegisterCmd(cmd)
}

func registerSignup(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("signup")
	cmd.SetDescription("Create an account; a verification mail is sent")

	ctx.SignupEmail, _ = ra.NewString("email").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Email address").
		Register(cmd)

	ctx.SignupUsername, _ = ra.NewString("username").
		SetShort("u").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Username, 3 to 15 characters").
		Register(cmd)

	ctx.SignupUsed, _ = parent.RegisterCmd(cmd)
}

func registerLogout(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("logout")
	cmd.SetDescription("Forget the saved session")
	ctx.LogoutUsed, _ = parent.RegisterCmd(cmd)
}

func registerVerify(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("verify")
	cmd.SetDescription("Confirm an email address with the code from the mail")

	ctx.VerifyCode, _ = ra.NewString("code").
		SetUsage("Verification code").
		Register(cmd)

	ctx.VerifyUsed, _ = parent.RegisterCmd(cmd)
}

func registerProfile(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("profile")
	cmd.SetDescription("Show the logged in user")
	ctx.ProfileUsed, _ = parent.RegisterCmd(cmd)
}

// validator adapts a form check to huh's Validate signature.
func validator(check func(string) error) func(string) error {
	return func(s string) error {
		if err := check(s); err != nil {
			return errors.New(api.Message(err))
		}
		return nil
	}
}

func runLogin(app *App, username string, forget bool) {
	var password string
	username = strings.TrimSpace(username)
	if username == "" {
		username = app.Session.Username()
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(validator(func(s string) error { return api.ValidateLogin(s, "x") })),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(validator(func(s string) error { return api.ValidateLogin("x", s) })),
	))
	if err := form.Run(); err != nil {
		Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	token, err := app.API.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			Fatalf("Invalid username or password.")
		}
		Fatal(errors.New(api.Message(err)))
	}
	if err := app.Session.Save(token, username, !forget); err != nil {
		Fatal(err)
	}
	log.Debug().Str("component", "auth").Str("dir", app.Session.Dir()).Bool("remember", !forget).Msg("session saved")
	PrintSuccess("Logged in as %s", StyleBold.Render(username))
}

func runSignup(app *App, email, username string) {
	ubsCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	requireUBS, err := app.API.RequiresUBS(ubsCtx)
	cancel()
	if err != nil {
		log.Warn().Str("component", "auth").Err(err).Msg("ubs check failed, assuming open signup")
	}

	var password string
	field := func(name string) func(string) error {
		return func(s string) error {
			r := api.NormalizeSignup(protocol.SignupRequest{Email: email, Username: username, Password: password})
			switch name {
			case "email":
				r.Email = strings.TrimSpace(s)
			case "username":
				r.Username = strings.TrimSpace(s)
			case "password":
				r.Password = strings.TrimSpace(s)
			}
			var ve *api.ValidationError
			if err := api.ValidateSignup(r, requireUBS); errors.As(err, &ve) && ve.Field == name {
				return errors.New(ve.Message)
			}
			return nil
		}
	}

	emailTitle := "Email"
	if requireUBS {
		emailTitle = "UBS email"
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(emailTitle).Value(&email).Validate(field("email")),
		huh.NewInput().Title("Username").Value(&username).Validate(field("username")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(field("password")),
	))
	if err := form.Run(); err != nil {
		Fatal(err)
	}

	req := protocol.SignupRequest{Email: email, Username: username, Password: password}
	if err := sendSignup(app.API, req, requireUBS); err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	PrintSuccess("Verification email sent.")
	PrintInfo("Please check your inbox.")
}

// sendSignup starts its deadline only now; the form before it may have
// taken any amount of time.
func sendSignup(c *api.Client, req protocol.SignupRequest, requireUBS bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return c.Signup(ctx, req, requireUBS)
}

func runLogout(app *App) {
	if err := app.Session.Clear(); err != nil {
		Fatal(err)
	}
	PrintSuccess("Logged out")
}

func runVerify(app *App, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := app.API.Verify(ctx, code); err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	PrintSuccess("Email verified, you can log in now.")
}

func runProfile(app *App) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	u, err := app.API.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			_ = app.Session.Clear()
			Fatalf("session expired, run `place login`")
		}
		Fatal(errors.New(api.Message(err)))
	}

	verified := StyleError.Render("not verified")
	if u.Verified {
		verified = StyleSuccess.Render("verified")
	}
	wait := "ready"
	if left := time.Until(time.Unix(u.Cooldown, 0)); left > 0 {
		wait = fmt.Sprintf("cooldown %s", left.Round(time.Second))
	}
	body := fmt.Sprintf("%s  %s\nscore %s  rank #%d\n%s",
		StyleBold.Render(u.Username), verified,
		protocol.FormatCount(u.Score), u.Rank,
		StyleMuted.Render(wait))
	fmt.Println(Box(body))
}
