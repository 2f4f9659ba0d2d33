package replay

import (
	"fmt"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
)

// Record steps a fresh world for ticks fixed-length ticks, driving the
// character from source, and returns the recording with its final state.
func Record(cfg component.PlayerConfig, links component.Links, spawn common.Vec3, yaw float64, source component.IntentSource, ticks int, dt float64, opts ...ecs.Option) (*Recording, error) {
	rec := NewRecorder(source, dt)
	links.Source = rec

	w := ecs.NewWorld(append(opts, ecs.WithSystems(system.CharacterSystems()...))...)
	e, err := w.Spawn(cfg, links, spawn, yaw)
	if err != nil {
		return nil, fmt.Errorf("replay: record: %w", err)
	}
	for i := 0; i < ticks; i++ {
		w.Step(dt)
	}

	c, _ := w.Character(e)
	final := c.State
	return &Recording{
		Version: Version,
		Config:  cfg,
		Spawn:   spawn,
		Yaw:     yaw,
		Frames:  rec.Frames(),
		Final:   &final,
	}, nil
}

// Simulate plays rec back in a fresh world and returns the final state.
// links supplies the collaborators; its intent source is replaced.
func Simulate(rec *Recording, links component.Links, opts ...ecs.Option) (component.PlayerState, error) {
	if rec == nil {
		return component.PlayerState{}, fmt.Errorf("replay: simulate: nil recording")
	}
	player := NewPlayer(rec.Frames)
	links.Source = player

	w := ecs.NewWorld(append(opts, ecs.WithSystems(system.CharacterSystems()...))...)
	e, err := w.Spawn(rec.Config, links, rec.Spawn, rec.Yaw)
	if err != nil {
		return component.PlayerState{}, fmt.Errorf("replay: simulate: %w", err)
	}
	for !player.Done() {
		w.Step(player.DeltaTime())
	}

	c, _ := w.Character(e)
	return c.State, nil
}
