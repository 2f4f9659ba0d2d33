package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/thirdperson/arena"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/replay"
	"github.com/milk9111/thirdperson/script"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Record struct {
		Script string  `arg:"" help:"Intent script in prefabs/scripts (basename, .tengo optional)."`
		Out    string  `short:"o" default:"run.cbor" help:"Recording to write."`
		Ticks  int     `default:"600" help:"Number of ticks to simulate."`
		Dt     float64 `default:"0.016666666666666666" help:"Tick length in seconds."`
		Player string  `default:"player.yaml" help:"Player prefab."`
		Arena  string  `default:"arena.yaml" help:"Arena prefab."`
	} `cmd:"" help:"Drive a character from a script and record its intent."`

	Play struct {
		File string `arg:"" type:"existingfile" help:"Recording to replay."`
	} `cmd:"" help:"Replay a recording and compare the final state."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("replay"),
		kong.Description("record and replay character simulation runs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "record <script>":
		err = recordCommand()
	case "play <file>":
		err = playCommand()
	}
	if err != nil {
		writeError(err)
	}
}

func buildLinks(arenaName string) (component.Links, *arena.Arena, error) {
	spec, err := prefabs.LoadArenaSpec(arenaName)
	if err != nil {
		return component.Links{}, nil, err
	}
	a, err := arena.FromSpec(spec, arena.WithLogger(log.Logger))
	if err != nil {
		return component.Links{}, nil, err
	}
	spawn, _ := a.Spawn()
	return component.Links{Probe: a, Rays: a, Body: a.NewBody(spawn, 1)}, a, nil
}

func recordCommand() error {
	opts := CLI.Record
	cfg, err := prefabs.LoadPlayerConfig(opts.Player)
	if err != nil {
		return err
	}
	links, a, err := buildLinks(opts.Arena)
	if err != nil {
		return err
	}
	src, err := script.Load(opts.Script, script.WithLogger(log.Logger), script.WithDeltaTime(opts.Dt))
	if err != nil {
		return err
	}

	spawn, yaw := a.Spawn()
	rec, err := replay.Record(cfg, links, spawn, yaw, src, opts.Ticks, opts.Dt, ecs.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	rec.Arena = opts.Arena
	if err := replay.Save(opts.Out, rec); err != nil {
		return err
	}

	log.Info().
		Str("out", opts.Out).
		Int("frames", len(rec.Frames)).
		Float64("x", rec.Final.Position.X).
		Float64("y", rec.Final.Position.Y).
		Float64("z", rec.Final.Position.Z).
		Msg("recording written")
	return nil
}

func playCommand() error {
	rec, err := replay.Load(CLI.Play.File)
	if err != nil {
		return err
	}
	links, _, err := buildLinks(rec.Arena)
	if err != nil {
		return err
	}

	final, err := replay.Simulate(rec, links, ecs.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	log.Info().
		Int("frames", len(rec.Frames)).
		Float64("x", final.Position.X).
		Float64("y", final.Position.Y).
		Float64("z", final.Position.Z).
		Str("phase", final.Vertical.String()).
		Str("aim", final.Aim.Mode.String()).
		Msg("replay finished")

	if rec.Final == nil {
		return nil
	}
	if *rec.Final != final {
		return fmt.Errorf("replay: final state diverged from recording")
	}
	log.Info().Msg("final state matches recording")
	return nil
}
