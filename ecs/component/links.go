package component

import "github.com/milk9111/thirdperson/common"

// GroundProbe reports whether a sphere at center overlaps anything on mask.
type GroundProbe interface {
	Probe(center common.Vec3, radius float64, mask uint) bool
}

// RayHit is the result of a ray test. ObjectID is empty when Hit is false.
type RayHit struct {
	Hit      bool
	Point    common.Vec3
	ObjectID string
}

type RayCaster interface {
	RayTest(origin, direction common.Vec3, maxDistance float64, mask uint) RayHit
}

// Body is the collision-aware mover that owns the character's position.
type Body interface {
	Position() common.Vec3
	HorizontalVelocity() common.Vec2
	Move(displacement common.Vec3, dt float64)
}

// Camera is the active view the player looks through.
type Camera interface {
	Position() common.Vec3
	Forward() common.Vec3
	Yaw() float64
}

// AimCamera is switched on while aiming.
type AimCamera interface {
	SetAimActive(active bool)
}

type PointerDevice interface {
	// HighPrecision is true when look input is already a per-tick delta (mouse).
	HighPrecision() bool
}

// IntentSource supplies one intent snapshot per tick.
type IntentSource interface {
	Poll() Intent
}

// Links holds the optional collaborators of a character. Any of them may be
// nil; the matching side effect is skipped.
type Links struct {
	Probe     GroundProbe
	Rays      RayCaster
	Body      Body
	Camera    Camera
	AimCamera AimCamera
	Pointer   PointerDevice
	Source    IntentSource
}

// Missing lists the collaborators that are not wired.
func (l Links) Missing() []string {
	var out []string
	if l.Probe == nil {
		out = append(out, "ground_probe")
	}
	if l.Rays == nil {
		out = append(out, "ray_caster")
	}
	if l.Body == nil {
		out = append(out, "body")
	}
	if l.Camera == nil {
		out = append(out, "camera")
	}
	if l.AimCamera == nil {
		out = append(out, "aim_camera")
	}
	if l.Pointer == nil {
		out = append(out, "pointer_device")
	}
	if l.Source == nil {
		out = append(out, "intent_source")
	}
	return out
}
