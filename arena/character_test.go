package arena

import (
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterJumpsAndLandsOnFloor(t *testing.T) {
	a := testArena(t)
	w := ecs.NewWorld(ecs.WithSystems(system.CharacterSystems()...))
	e, err := w.Spawn(component.DefaultPlayerConfig(), component.Links{Probe: a, Rays: a, Body: a.NewBody(common.Vec3{}, 1)}, common.Vec3{}, 0)
	require.NoError(t, err)
	c, _ := w.Character(e)

	// wait out the spawn jump timeout
	for i := 0; i < 40; i++ {
		w.Step(1.0 / 60)
	}
	require.True(t, c.State.Grounded)
	w.Events().Drain()

	require.NoError(t, w.SetIntent(e, component.Intent{Jump: true}))
	w.Step(1.0 / 60)
	require.NoError(t, w.SetIntent(e, component.Intent{}))

	peak := 0.0
	lands := 0
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
		peak = max(peak, c.State.Position.Y)
		for _, evt := range w.Events().Drain() {
			if evt.Type == component.EventLand {
				lands++
			}
		}
	}

	assert.Equal(t, 1, lands)
	assert.InDelta(t, 1.2, peak, 0.1)
	assert.True(t, c.State.Grounded)
	assert.Equal(t, component.PhaseGrounded, c.State.Vertical)
	assert.InDelta(t, 0.0, c.State.Position.Y, 1e-9)
}

func TestCharacterStopsAtWall(t *testing.T) {
	a := testArena(t)
	w := ecs.NewWorld(ecs.WithSystems(system.CharacterSystems()...))
	e, err := w.Spawn(component.DefaultPlayerConfig(), component.Links{Probe: a, Body: a.NewBody(common.Vec3{}, 1)}, common.Vec3{}, 0)
	require.NoError(t, err)
	c, _ := w.Character(e)

	require.NoError(t, w.SetIntent(e, component.Intent{Move: common.Vec2{X: 1}, Sprint: true}))
	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 3-DefaultBodyRadius, c.State.Position.X, 1e-6)
	assert.Less(t, c.State.Speed, 1.0, "a blocked body reports no horizontal velocity")
}
