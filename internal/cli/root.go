package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	API      *string
	WS       *string
	Config   *string
	Profile  *string
	LogLevel *string

	// login command
	LoginUsed     *bool
	LoginUsername *string
	LoginForget   *bool

	// signup command
	SignupUsed     *bool
	SignupEmail    *string
	SignupUsername *string

	// logout command
	LogoutUsed *bool

	// verify command
	VerifyUsed *bool
	VerifyCode *string

	// profile command
	ProfileUsed *bool

	// leaderboard command
	LeaderboardUsed  *bool
	LeaderboardLimit *int

	// export command
	ExportUsed  *bool
	ExportOut   *string
	ExportScale *int

	// whois command
	WhoisUsed *bool
	WhoisX    *int
	WhoisY    *int
}

// Run is the main entry point. Without a subcommand the window opens.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("place")
	cmd.SetDescription("Collaborative pixel canvas client")

	ctx.API, _ = ra.NewString("api").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("REST base URL (default $PLACE_API_BASE or http://127.0.0.1:8080)").
		Register(cmd, ra.WithGlobal(true))

	ctx.WS, _ = ra.NewString("ws").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("WebSocket URL, derived from --api when empty").
		Register(cmd, ra.WithGlobal(true))

	ctx.Config, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Config file (default <profile dir>/config.toml)").
		Register(cmd, ra.WithGlobal(true))

	ctx.Profile, _ = ra.NewString("profile").
		SetShort("p").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Session profile name; separate profiles keep separate logins").
		Register(cmd, ra.WithGlobal(true))

	ctx.LogLevel, _ = ra.NewString("log-level").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("trace, debug, info, warn or error").
		Register(cmd, ra.WithGlobal(true))

	registerLogin(cmd, ctx)
	registerSignup(cmd, ctx)
	registerLogout(cmd, ctx)
	registerVerify(cmd, ctx)
	registerProfile(cmd, ctx)
	registerLeaderboard(cmd, ctx)
	registerWhois(cmd, ctx)
	registerExport(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	executeCommand(ctx)
}

func executeCommand(ctx *CommandContext) {
	app, err := NewApp(ctx)
	if err != nil {
		Fatal(err)
	}

	switch {
	case *ctx.LoginUsed:
		runLogin(app, *ctx.LoginUsername, *ctx.LoginForget)

	case *ctx.SignupUsed:
		runSignup(app, *ctx.SignupEmail, *ctx.SignupUsername)

	case *ctx.LogoutUsed:
		runLogout(app)

	case *ctx.VerifyUsed:
		runVerify(app, *ctx.VerifyCode)

	case *ctx.ProfileUsed:
		runProfile(app)

	case *ctx.LeaderboardUsed:
		runLeaderboard(app, *ctx.LeaderboardLimit)

	case *ctx.WhoisUsed:
		runWhois(app, *ctx.WhoisX, *ctx.WhoisY)

	case *ctx.ExportUsed:
		runExport(app, *ctx.ExportOut, *ctx.ExportScale)

	default:
		runWindow(app)
	}
}
