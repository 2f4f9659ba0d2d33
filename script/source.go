// Package script drives a character from a tengo script. The script runs once
// per poll and sets any of the globals move_x, move_y, look_x, look_y, jump,
// sprint, aim, shoot and analog. It can read tick, dt and the observed player
// map (x, y, z, yaw, speed, grounded, aiming).
package script

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/rs/zerolog"
)

// Source is an IntentSource backed by a compiled tengo script.
type Source struct {
	name     string
	compiled *tengo.Compiled
	logger   zerolog.Logger
	dt       float64

	mu       sync.Mutex
	tick     int64
	observed *component.PlayerState
	failed   bool
}

type Option func(*Source)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithDeltaTime sets the dt global seen by the script.
func WithDeltaTime(dt float64) Option {
	return func(s *Source) {
		s.dt = dt
	}
}

// Load compiles a script from the prefabs scripts directory.
func Load(name string, opts ...Option) (*Source, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, opts...)
}

// New compiles src.
func New(name string, src []byte, opts ...Option) (*Source, error) {
	s := &Source{
		name:   name,
		logger: zerolog.Nop(),
		dt:     1.0 / 60,
	}
	for _, opt := range opts {
		opt(s)
	}

	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("dt", s.dt)
	_ = script.Add("player", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

// Observe lets the script read st on later polls.
func (s *Source) Observe(st *component.PlayerState) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.observed = st
	s.mu.Unlock()
}

// Tick returns the number of polls so far.
func (s *Source) Tick() int64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Poll runs the script once. A failing script yields an empty intent and is
// logged once until it recovers.
func (s *Source) Poll() component.Intent {
	if s == nil || s.compiled == nil {
		return component.Intent{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.run()
	s.tick++
	if err != nil {
		if !s.failed {
			s.logger.Error().Err(err).Str("script", s.name).Int64("tick", s.tick).Msg("intent script failed")
		}
		s.failed = true
		return component.Intent{}
	}
	s.failed = false
	return in
}

func (s *Source) run() (component.Intent, error) {
	if err := s.compiled.Set("tick", s.tick); err != nil {
		return component.Intent{}, err
	}
	if err := s.compiled.Set("dt", s.dt); err != nil {
		return component.Intent{}, err
	}
	if err := s.compiled.Set("player", playerMap(s.observed)); err != nil {
		return component.Intent{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.Intent{}, err
	}

	var in component.Intent
	in.Move.X = s.compiled.Get("move_x").Float()
	in.Move.Y = s.compiled.Get("move_y").Float()
	in.Look.X = s.compiled.Get("look_x").Float()
	in.Look.Y = s.compiled.Get("look_y").Float()
	in.Jump = s.compiled.Get("jump").Bool()
	in.Sprint = s.compiled.Get("sprint").Bool()
	in.Aim = s.compiled.Get("aim").Bool()
	in.Shoot = s.compiled.Get("shoot").Bool()
	in.AnalogMovement = s.compiled.Get("analog").Bool()
	return in, nil
}

func playerMap(st *component.PlayerState) map[string]any {
	if st == nil {
		return map[string]any{}
	}
	return map[string]any{
		"x":        st.Position.X,
		"y":        st.Position.Y,
		"z":        st.Position.Z,
		"yaw":      st.BodyYaw,
		"speed":    st.Speed,
		"grounded": st.Grounded,
		"aiming":   st.Aim.Aiming(),
	}
}
