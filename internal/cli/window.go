package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"place/internal/game"
	"place/internal/netcfg"
	"place/internal/protocol"
)

func runWindow(app *App) {
	w, err := netcfg.NewWatcher(app.ConfigPath)
	if err != nil {
		// the window still works, it just won't pick up edits
		log.Warn().Str("component", "config").Err(err).Msg("config watch disabled")
		w = nil
	} else {
		defer w.Close()
	}

	log.Info().Str("component", "net").Str("api", app.Config.APIBase).Str("ws", app.Config.FeedURL()).Msg("starting window")

	ebiten.SetWindowSize(protocol.ScreenW, protocol.ScreenH)
	ebiten.SetWindowTitle(protocol.GameName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(game.Options{
		Config:  app.Config,
		API:     app.API,
		Session: app.Session,
		Watcher: w,
	})
	if err := ebiten.RunGame(g); err != nil {
		Fatal(err)
	}
}
