package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraRigLookScaling(t *testing.T) {
	cases := []struct {
		name      string
		pointer   component.PointerDevice
		aiming    bool
		look      common.Vec2
		wantYaw   float64
		wantPitch float64
	}{
		{"mouse_unscaled", fakePointer(true), false, common.Vec2{X: 4, Y: -2}, 4, -2},
		{"gamepad_scaled_by_dt", fakePointer(false), false, common.Vec2{X: 4, Y: -2}, 0.2, -0.1},
		{"no_device_scaled_by_dt", nil, false, common.Vec2{X: 4}, 0.2, 0},
		{"aim_sensitivity", fakePointer(true), true, common.Vec2{X: 4, Y: 2}, 2, 1},
		{"below_threshold_ignored", fakePointer(true), false, common.Vec2{X: 0.05, Y: 0.05}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _, c := newTestWorld(t, component.Links{Pointer: tc.pointer}, NewCameraRigSystem())
			if tc.aiming {
				c.State.Aim.Mode = component.AimAiming
			}
			c.Intent.Look = tc.look

			w.Step(0.05)

			assert.InDelta(t, tc.wantYaw, c.State.Camera.Yaw, 1e-9)
			assert.InDelta(t, tc.wantPitch, c.State.Camera.Pitch, 1e-9)
		})
	}
}

func TestCameraRigLocked(t *testing.T) {
	w, _, c := newTestWorld(t, component.Links{Pointer: fakePointer(true)}, NewCameraRigSystem())
	c.Config.LockCameraPosition = true
	c.Intent.Look = common.Vec2{X: 10, Y: 10}

	w.Step(0.05)

	assert.Equal(t, component.CameraRigState{}, c.State.Camera)
}

func TestCameraPitchStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w, _, c := newTestWorld(t, component.Links{Pointer: fakePointer(true)}, NewCameraRigSystem())
	for i := 0; i < 2000; i++ {
		c.Intent.Look = common.Vec2{X: rng.NormFloat64() * 200, Y: rng.NormFloat64() * 60}
		w.Step(1.0 / 60)
		require.GreaterOrEqual(t, c.State.Camera.Pitch, c.Config.BottomClamp)
		require.LessOrEqual(t, c.State.Camera.Pitch, c.Config.TopClamp)
		require.Greater(t, c.State.Camera.Yaw, -360.0)
		require.Less(t, c.State.Camera.Yaw, 360.0)
	}
}

func TestCameraOrientationAppliesOverride(t *testing.T) {
	cfg := component.DefaultPlayerConfig()
	cfg.CameraAngleOverride = 5
	rig := component.CameraRigState{Yaw: 12, Pitch: -3}

	pitch, yaw, roll := rig.Orientation(cfg)

	assert.Equal(t, 2.0, pitch)
	assert.Equal(t, 12.0, yaw)
	assert.Equal(t, 0.0, roll)
}

func TestIdleTicksAreStable(t *testing.T) {
	body := &fakeBody{}
	w, _, c := newTestWorld(t, component.Links{Body: body, Probe: &fakeProbe{grounded: true}, Pointer: fakePointer(true)})
	c.State.Camera = component.CameraRigState{Yaw: 33, Pitch: 12}
	c.State.BodyYaw = 33

	w.Step(1.0 / 60)
	first := c.State
	w.Step(1.0 / 60)
	second := c.State

	assert.Equal(t, first.Camera, second.Camera)
	assert.Equal(t, first.BodyYaw, second.BodyYaw)
	assert.Equal(t, first.Speed, second.Speed)
	assert.Equal(t, 0.0, second.Speed)
	assert.Less(t, second.JumpTimeoutRemaining, first.JumpTimeoutRemaining)
}
