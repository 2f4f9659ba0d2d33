package system

import (
	"math"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CameraRigSystem accumulates look input into the camera target's yaw and pitch.
type CameraRigSystem struct{}

func NewCameraRigSystem() *CameraRigSystem {
	return &CameraRigSystem{}
}

// Update turns the rig of every character by its look intent.
func (cs *CameraRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	w.ForEach(func(_ ecs.Entity, c *component.Character) {
		if c == nil {
			return
		}
		UpdateCameraRig(&c.State.Camera, &c.Config, c.Intent.Look, sensitivity(c), lookTimeFactor(c.Links.Pointer, dt))
	})
}

// UpdateCameraRig applies one tick of look input to rig.
func UpdateCameraRig(rig *component.CameraRigState, cfg *component.PlayerConfig, look common.Vec2, sensitivity, timeFactor float64) {
	if rig == nil || cfg == nil {
		return
	}
	if look.SqrLen() >= cfg.LookThreshold && !cfg.LockCameraPosition {
		rig.Yaw += look.X * timeFactor * sensitivity
		rig.Pitch += look.Y * timeFactor * sensitivity
	}
	rig.Yaw = common.ClampAngle(rig.Yaw, math.Inf(-1), math.Inf(1))
	rig.Pitch = common.ClampAngle(rig.Pitch, cfg.BottomClamp, cfg.TopClamp)
}

// lookTimeFactor leaves pointer deltas unscaled; rate devices are scaled by dt.
func lookTimeFactor(pointer component.PointerDevice, dt float64) float64 {
	if pointer != nil && pointer.HighPrecision() {
		return 1
	}
	return dt
}

func sensitivity(c *component.Character) float64 {
	if c.State.Aim.Aiming() {
		return c.Config.AimSensitivity
	}
	return c.Config.NormalSensitivity
}
