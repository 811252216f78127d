package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"place/internal/api"
	"place/internal/protocol"
)

func registerLeaderboard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("leaderboard")
	cmd.SetDescription("Print the top players")

	ctx.LeaderboardLimit, _ = ra.NewInt("limit").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetDefault(protocol.LeaderboardSize).
		SetUsage("Rows to print (0 = all)").
		Register(cmd)

	ctx.LeaderboardUsed, _ = parent.RegisterCmd(cmd)
}

func registerWhois(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("whois")
	cmd.SetDescription("Print who placed the pixel at X Y")

	ctx.WhoisX, _ = ra.NewInt("x").
		SetUsage("Column").
		Register(cmd)
	ctx.WhoisY, _ = ra.NewInt("y").
		SetUsage("Row").
		Register(cmd)

	ctx.WhoisUsed, _ = parent.RegisterCmd(cmd)
}

func runLeaderboard(app *App, limit int) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	rows, err := app.API.Leaderboard(ctx)
	if err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	fmt.Print(RenderLeaderboard(rows, limit, app.Session.Username()))
}

// RenderLeaderboard formats rank, name and pixel count, one row per line.
// me, when non-empty, is highlighted.
func RenderLeaderboard(rows protocol.Leaderboard, limit int, me string) string {
	if len(rows) == 0 {
		return StyleMuted.Render("No pixels placed yet.") + "\n"
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	nameW := 0
	for _, r := range rows {
		nameW = max(nameW, len([]rune(r.Name)))
	}

	var b strings.Builder
	for _, r := range rows {
		rank := fmt.Sprintf("#%-3d", r.Rank)
		if r.Rank <= 3 {
			rank = StyleGold.Render(rank)
		}
		name := r.Name + strings.Repeat(" ", nameW-len([]rune(r.Name)))
		if me != "" && r.Name == me {
			name = StyleAccent.Render(name)
		}
		fmt.Fprintf(&b, "%s %s  %12s\n", rank, name, protocol.FormatCount(r.Pixels))
	}
	return b.String()
}

func runWhois(app *App, x, y int) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	w, h, err := app.API.Size(ctx)
	if err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		Fatalf("(%d, %d) is outside the %dx%d canvas", x, y, w, h)
	}
	name, err := app.API.PixelOwner(ctx, x, y)
	if err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	if name == "" {
		name = StyleMuted.Render("nobody")
	}
	fmt.Printf("(%d, %d) %s\n", x, y, name)
}
