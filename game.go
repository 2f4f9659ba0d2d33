package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/arena"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/script"
	"github.com/rs/zerolog"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tracerFrames = 20
)

type Options struct {
	Debug  bool
	Player string
	Arena  string
	Script string
}

type tracer struct {
	origin common.Vec3
	target common.Vec3
	hit    bool
	frames int
}

type Game struct {
	opts   Options
	logger zerolog.Logger

	world  *ecs.World
	arena  *arena.Arena
	player ecs.Entity
	cfg    component.PlayerConfig

	input   *Input
	camera  *FollowCamera
	bot     *script.Source
	watcher *prefabs.Watcher
	copier  *spawnCopier

	paused  bool
	pauseUI *ebitenui.UI
	debug   bool

	tracers   []tracer
	footsteps int
	landings  int
	lastHit   string
}

func NewGame(opts Options, logger zerolog.Logger) (*Game, error) {
	spec, err := prefabs.LoadArenaSpec(opts.Arena)
	if err != nil {
		return nil, err
	}
	a, err := arena.FromSpec(spec, arena.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		logger: logger,
		world:  ecs.NewWorld(ecs.WithLogger(logger), ecs.WithSystems(system.CharacterSystems()...)),
		arena:  a,
		input:  NewInput(),
		camera: NewFollowCamera(),
		copier: newSpawnCopier(logger),
		debug:  opts.Debug,
	}
	if opts.Script != "" {
		bot, err := script.Load(opts.Script, script.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		g.bot = bot
	}

	cfg, err := prefabs.LoadPlayerConfig(opts.Player)
	if err != nil {
		return nil, err
	}
	pos, yaw := a.Spawn()
	if err := g.spawn(cfg, pos, yaw); err != nil {
		return nil, err
	}

	if w, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
		logger.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
	} else {
		g.watcher = w
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// spawn creates the player at pos with cfg.
func (g *Game) spawn(cfg component.PlayerConfig, pos common.Vec3, yaw float64) error {
	links := component.Links{
		Probe:     g.arena,
		Rays:      g.arena,
		Body:      g.arena.NewBody(pos, cfg.GroundLayers),
		Camera:    g.camera,
		AimCamera: g.camera,
		Pointer:   g.input,
		Source:    g.input,
	}
	if g.bot != nil {
		links.Source = g.bot
	}

	e, err := g.world.Spawn(cfg, links, pos, yaw)
	if err != nil {
		return err
	}
	c, _ := g.world.Character(e)
	g.player = e
	g.cfg = cfg
	g.camera.Follow(c)
	g.bot.Observe(&c.State)
	return nil
}

// respawn replaces the player with freshly loaded tunables. keepPlace=false
// returns it to the arena spawn. Broken tunables keep the last good config.
func (g *Game) respawn(keepPlace bool) {
	pos, yaw := g.arena.Spawn()
	if c, ok := g.world.Character(g.player); ok && keepPlace {
		pos, yaw = c.State.Position, c.State.BodyYaw
	}

	cfg, err := prefabs.LoadPlayerConfig(g.opts.Player)
	if err != nil {
		g.logger.Error().Err(err).Msg("reload player tunables")
		cfg = g.cfg
	}

	g.world.Despawn(g.player)
	if err := g.spawn(cfg, pos, yaw); err != nil {
		g.logger.Error().Err(err).Msg("respawn failed")
	}
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.input.ResetMouse()
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsPlayerSpec(path) {
				g.logger.Info().Str("path", path).Msg("player tunables changed")
				g.respawn(true)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn().Err(err).Msg("prefab watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.PausePressed {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.CopyPressed {
		if c, ok := g.world.Character(g.player); ok {
			g.copier.Copy(c.State.Position, c.State.BodyYaw)
		}
	}

	dt := 1 / float64(ebiten.TPS())
	g.world.Step(dt)
	g.camera.Update(dt)
	g.handleEvents()
	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case component.ShotEvent:
			g.tracers = append(g.tracers, tracer{origin: data.Origin, target: data.Target, hit: data.Hit, frames: tracerFrames})
		case component.HitEvent:
			g.lastHit = data.ObjectID
		case component.CueEvent:
			switch evt.Type {
			case component.EventFootstep:
				g.footsteps++
			case component.EventLand:
				g.landings++
			}
		}
	}

	live := g.tracers[:0]
	for _, t := range g.tracers {
		t.frames--
		if t.frames > 0 {
			live = append(live, t)
		}
	}
	g.tracers = live
}

func (g *Game) Draw(screen *ebiten.Image) {
	c, ok := g.world.Character(g.player)
	if !ok {
		return
	}
	drawArena(screen, g.arena, c.State.Position)
	drawTracers(screen, g.tracers, c.State.Position)
	drawCharacter(screen, c, g.camera)
	drawHUD(screen, c, g.hudLine())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hudLine() string {
	line := fmt.Sprintf("FPS: %.2f  tick: %d  footsteps: %d  landings: %d", ebiten.ActualFPS(), g.world.Tick(), g.footsteps, g.landings)
	if g.lastHit != "" {
		line += "  last hit: " + g.lastHit
	}
	if !g.debug {
		return line
	}
	c, _ := g.world.Character(g.player)
	s := c.Signals()
	return line + fmt.Sprintf("\nspeed %.3f  motion %.2f  grounded %v  jumping %v  free fall %v  aiming %v",
		s.Speed, s.MotionSpeed, s.Grounded, s.Jumping, s.FreeFalling, s.Aiming)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
