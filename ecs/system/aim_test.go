package system

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShotFiresWhenGateSatisfied(t *testing.T) {
	w, _, c := newTestWorld(t, component.Links{Body: &fakeBody{}})
	c.State.Aim.Mode = component.AimAiming
	c.State.Aim.FireTimer = 0.19
	c.Intent = component.Intent{Aim: true, Shoot: true}

	w.Step(0.02)

	events := w.Events().Drain()
	assert.Len(t, eventsOfType(events, component.EventShot), 1)
	assert.Empty(t, eventsOfType(events, component.EventHit))
	assert.Equal(t, 0.0, c.State.Aim.FireTimer)
}

func TestShotIntoSpaceUsesForwardAimPoint(t *testing.T) {
	cam := &fakeCamera{pos: common.Vec3{Y: 2, Z: -4}, forward: common.Vec3{Z: 1}}
	rays := &fakeRays{}
	w, _, c := newTestWorld(t, component.Links{Body: &fakeBody{}, Camera: cam, Rays: rays})
	c.State.Aim.FireTimer = 1
	c.Intent = component.Intent{Aim: true, Shoot: true}

	w.Step(0.02)

	events := w.Events().Drain()
	shots := eventsOfType(events, component.EventShot)
	require.Len(t, shots, 1)
	shot := shots[0].Data.(component.ShotEvent)
	assert.False(t, shot.Hit)
	assert.Empty(t, shot.ObjectID)
	assert.InDelta(t, 0.3, shot.Origin.X, 1e-9)
	assert.InDelta(t, 0.4, shot.Origin.Z, 1e-9)
	assert.InDelta(t, shot.Origin.X, shot.Target.X, 1e-9)
	assert.InDelta(t, shot.Origin.Y, shot.Target.Y, 1e-9)
	assert.InDelta(t, 100.4, shot.Target.Z, 1e-9)
	assert.Empty(t, eventsOfType(events, component.EventHit))
	assert.False(t, c.State.Aim.LastHitValid)
	assert.Equal(t, 1, rays.calls)
}

func TestShotReportsHit(t *testing.T) {
	cam := &fakeCamera{forward: common.Vec3{Z: 1}}
	rays := &fakeRays{hit: component.RayHit{Hit: true, Point: common.Vec3{Y: 1, Z: 10}, ObjectID: "crate"}}
	w, e, c := newTestWorld(t, component.Links{Body: &fakeBody{}, Camera: cam, Rays: rays})
	c.State.Aim.FireTimer = 1
	c.Intent = component.Intent{Aim: true, Shoot: true}

	w.Step(0.02)

	events := w.Events().Drain()
	hits := eventsOfType(events, component.EventHit)
	require.Len(t, hits, 1)
	assert.Equal(t, e, hits[0].Entity)
	assert.Equal(t, component.HitEvent{ObjectID: "crate", Point: common.Vec3{Y: 1, Z: 10}}, hits[0].Data)
	shot := eventsOfType(events, component.EventShot)[0].Data.(component.ShotEvent)
	assert.True(t, shot.Hit)
	assert.Equal(t, common.Vec3{Y: 1, Z: 10}, shot.Target)
	assert.Equal(t, common.Vec3{Y: 1, Z: 10}, c.State.Aim.LastAimPoint)
	assert.Equal(t, 0.0, c.State.Aim.FireTimer)
}

func TestAimingWithoutTriggerDoesNotFire(t *testing.T) {
	w, _, c := newTestWorld(t, component.Links{})
	c.Intent = component.Intent{Aim: true}

	for i := 0; i < 30; i++ {
		w.Step(0.02)
		assert.Empty(t, eventsOfType(w.Events().Drain(), component.EventShot))
	}
	assert.InDelta(t, 0.6, c.State.Aim.FireTimer, 1e-9)
}

func TestIdleDoesNotAdvanceFireTimer(t *testing.T) {
	w, _, c := newTestWorld(t, component.Links{})
	c.State.Aim.FireTimer = 0.1
	c.Intent = component.Intent{Shoot: true}

	w.Step(0.05)

	assert.Equal(t, 0.1, c.State.Aim.FireTimer)
	assert.Empty(t, w.Events().Drain())
}

func TestAimToggleKeepsFireTimer(t *testing.T) {
	aimCam := &fakeAimCamera{}
	w, _, c := newTestWorld(t, component.Links{AimCamera: aimCam})

	c.Intent.Aim = true
	w.Step(0.05)
	assert.True(t, aimCam.active)
	assert.True(t, c.State.Aim.CameraActive)
	assert.InDelta(t, 0.05, c.State.Aim.FireTimer, 1e-12)

	c.Intent.Aim = false
	w.Step(0.05)
	assert.False(t, aimCam.active)
	assert.Equal(t, component.AimIdle, c.State.Aim.Mode)
	assert.InDelta(t, 0.05, c.State.Aim.FireTimer, 1e-12)

	c.Intent.Aim = true
	w.Step(0.05)
	assert.InDelta(t, 0.1, c.State.Aim.FireTimer, 1e-12)
	assert.Equal(t, 3, aimCam.toggles)
}

func TestAimTransitionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	w := ecs.NewWorld(ecs.WithLogger(zerolog.New(&buf)), ecs.WithSystems(CharacterSystems()...))
	e, err := w.Spawn(component.DefaultPlayerConfig(), component.Links{}, common.Vec3{}, 0)
	require.NoError(t, err)
	require.NoError(t, w.SetIntent(e, component.Intent{Aim: true}))

	w.Step(0.05)
	w.Step(0.05)
	require.NoError(t, w.SetIntent(e, component.Intent{}))
	w.Step(0.05)

	log := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"from":"idle","to":"aiming"`)))
	assert.Contains(t, log, `"from":"aiming","to":"idle"`)
	assert.Contains(t, log, e.String())
}

func TestFireTimerMonotonicUntilShot(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w, _, c := newTestWorld(t, component.Links{})
	c.Intent.Aim = true
	prev := c.State.Aim.FireTimer
	for i := 0; i < 500; i++ {
		c.Intent.Shoot = rng.Intn(3) == 0
		w.Step(1.0 / 60)
		shots := eventsOfType(w.Events().Drain(), component.EventShot)
		if len(shots) > 0 {
			require.Equal(t, 0.0, c.State.Aim.FireTimer)
		} else {
			require.GreaterOrEqual(t, c.State.Aim.FireTimer, prev)
		}
		prev = c.State.Aim.FireTimer
	}
}

func TestAimTurnsBodyTowardsCameraForward(t *testing.T) {
	cam := &fakeCamera{forward: common.Vec3{X: 1}}
	w, _, c := newTestWorld(t, component.Links{Body: &fakeBody{}, Camera: cam})
	c.Intent.Aim = true
	c.Intent.Move = common.Vec2{X: -1}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 90.0, c.State.BodyYaw, 1.0)
}
