package main

import (
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
)

const (
	followDistance = 4.0
	aimDistance    = 1.6
	targetHeight   = 1.375
	// shoulder offset to the right while aiming
	aimShoulder = 0.5
)

// FollowCamera orbits the character's camera target at the rig's yaw and
// pitch. It stands in for the virtual camera of a renderer.
type FollowCamera struct {
	character *component.Character
	aiming    bool
	distance  float64
}

var (
	_ component.Camera    = (*FollowCamera)(nil)
	_ component.AimCamera = (*FollowCamera)(nil)
)

func NewFollowCamera() *FollowCamera {
	return &FollowCamera{distance: followDistance}
}

// Follow attaches the camera to c.
func (f *FollowCamera) Follow(c *component.Character) {
	f.character = c
}

// Update eases the boom length towards the aim or follow distance.
func (f *FollowCamera) Update(dt float64) {
	want := followDistance
	if f.aiming {
		want = aimDistance
	}
	f.distance = common.Lerp(f.distance, want, dt*10)
}

func (f *FollowCamera) SetAimActive(active bool) {
	f.aiming = active
}

func (f *FollowCamera) target() common.Vec3 {
	if f.character == nil {
		return common.Vec3{}
	}
	st := f.character.State
	t := st.Position.Add(common.Vec3{Y: targetHeight})
	if f.aiming {
		forward := common.YawForward(st.Camera.Yaw)
		right := common.Vec3{X: forward.Z, Z: -forward.X}
		t = t.Add(right.Scale(aimShoulder))
	}
	return t
}

func (f *FollowCamera) Position() common.Vec3 {
	return f.target().Sub(f.Forward().Scale(f.distance))
}

func (f *FollowCamera) Forward() common.Vec3 {
	if f.character == nil {
		return common.Vec3{Z: 1}
	}
	pitch, yaw, _ := f.character.State.Camera.Orientation(f.character.Config)
	return common.PitchYawForward(pitch, yaw)
}

func (f *FollowCamera) Yaw() float64 {
	if f.character == nil {
		return 0
	}
	return f.character.State.Camera.Yaw
}
