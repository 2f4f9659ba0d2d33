package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/rs/zerolog"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// World owns the spawned characters, the system order and the per-tick event queue.
type World struct {
	entities   entityStore
	characters SparseSet[*component.Character]
	scheduler  *Scheduler
	events     EventQueue
	logger     zerolog.Logger

	dt   float64
	tick uint64
}

type Option func(*World)

// WithLogger sets the logger used by the world and its systems.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithSystems appends systems to the update order.
func WithSystems(systems ...System) Option {
	return func(w *World) {
		for _, s := range systems {
			w.scheduler.Add(s)
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		scheduler: NewScheduler(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Spawn creates a character at position facing yaw degrees.
func (w *World) Spawn(cfg component.PlayerConfig, links component.Links, position common.Vec3, yaw float64) (Entity, error) {
	if w == nil {
		return 0, errors.New("ecs: nil world")
	}
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("ecs: spawn: %w", err)
	}
	if links.Body != nil {
		position = links.Body.Position()
	}

	e := w.entities.create()
	w.characters.Set(e, &component.Character{
		Config: cfg,
		State:  component.NewPlayerState(cfg, position, yaw),
		Links:  links,
	})

	log := w.logger.With().Str("entity", e.String()).Logger()
	if missing := links.Missing(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("character spawned with degraded collaborators")
	}
	log.Info().Float64("x", position.X).Float64("y", position.Y).Float64("z", position.Z).Msg("character spawned")
	return e, nil
}

// Despawn destroys a character. It returns false for stale handles.
func (w *World) Despawn(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	w.characters.Remove(e)
	w.logger.Info().Str("entity", e.String()).Msg("character despawned")
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Character returns the character owned by e.
func (w *World) Character(e Entity) (*component.Character, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	return w.characters.Get(e)
}

// SetIntent overwrites the intent of e for the next tick. Characters with an
// intent source are refreshed from it instead.
func (w *World) SetIntent(e Entity, intent component.Intent) error {
	c, ok := w.Character(e)
	if !ok {
		return fmt.Errorf("ecs: set intent %s: %w", e, ErrEntityNotAlive)
	}
	c.Intent = intent
	return nil
}

// Len returns the number of live characters.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.characters.Len()
}

// ForEach calls fn for every live character in storage order. A panic inside
// fn is logged and skips only that character.
func (w *World) ForEach(fn func(e Entity, c *component.Character)) {
	if w == nil || fn == nil {
		return
	}
	entities := w.characters.Entities()
	values := w.characters.Values()
	for i := range entities {
		w.each(entities[i], values[i], fn)
	}
}

func (w *World) each(e Entity, c *component.Character, fn func(e Entity, c *component.Character)) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Str("entity", e.String()).Uint64("tick", w.tick).Msg("character update panicked")
		}
	}()
	fn(e, c)
}

// Step runs every system once with the given elapsed time. Events from the
// previous tick that were not drained are dropped.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	w.dt = dt
	w.tick++
	for _, s := range w.scheduler.systems {
		w.run(s)
	}
	w.ForEach(func(_ Entity, c *component.Character) {
		c.State.Tick = w.tick
	})
}

// run isolates a system so a panic cannot escape the tick.
func (w *World) run(s System) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Uint64("tick", w.tick).Msgf("system %T panicked", s)
		}
	}()
	s.Update(w)
}

// DeltaTime returns the elapsed time of the current tick.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick returns the number of completed or running steps.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Emit queues an event for collaborators to drain after the tick.
func (w *World) Emit(e Entity, eventType string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: eventType, Entity: e, Data: data})
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Logger returns the world logger.
func (w *World) Logger() *zerolog.Logger {
	if w == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return &w.logger
}
