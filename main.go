package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug       bool   `help:"Show animation signals and enable debug logging."`
	BaseMonitor bool   `short:"m" help:"Use base monitor instead of primary (for multi-monitor setups)."`
	Player      string `default:"player.yaml" help:"Player prefab in prefabs/."`
	Arena       string `default:"arena.yaml" help:"Arena prefab in prefabs/."`
	Script      string `help:"Drive the player from a tengo script instead of the devices."`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("thirdperson"),
		kong.Description("third-person character playground"),
		kong.UsageOnError(),
	)
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if CLI.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("thirdperson")

	game, err := NewGame(Options{
		Debug:  CLI.Debug,
		Player: CLI.Player,
		Arena:  CLI.Arena,
		Script: CLI.Script,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("start playground")
	}
	defer game.Close()

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("playground exited")
	}
}
