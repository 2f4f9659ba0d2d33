package component

import "github.com/milk9111/thirdperson/common"

// VerticalPhase is the vertical motion state of a character.
type VerticalPhase uint8

const (
	PhaseGrounded VerticalPhase = iota
	PhaseRising
	PhaseFalling
)

func (p VerticalPhase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseRising:
		return "rising"
	case PhaseFalling:
		return "falling"
	}
	return "unknown"
}

// AimMode is the aim controller state.
type AimMode uint8

const (
	AimIdle AimMode = iota
	AimAiming
)

func (m AimMode) String() string {
	if m == AimAiming {
		return "aiming"
	}
	return "idle"
}

// CameraRigState is the accumulated look orientation in degrees.
type CameraRigState struct {
	Yaw   float64 `cbor:"yaw"`
	Pitch float64 `cbor:"pitch"`
}

// Orientation returns the pitch, yaw and roll the camera target should use.
func (c CameraRigState) Orientation(cfg PlayerConfig) (pitch, yaw, roll float64) {
	return c.Pitch + cfg.CameraAngleOverride, c.Yaw, 0
}

type AimState struct {
	Mode          AimMode     `cbor:"mode"`
	CameraActive  bool        `cbor:"camera_active"`
	FireTimer     float64     `cbor:"fire_timer"`
	LastAimPoint  common.Vec3 `cbor:"last_aim_point"`
	LastHitValid  bool        `cbor:"last_hit_valid"`
	LastHitObject string      `cbor:"last_hit_object"`
}

// Aiming reports whether the aim controller is in aim mode.
func (a AimState) Aiming() bool {
	return a.Mode == AimAiming
}

// PlayerState is the mutable record the systems update every tick.
type PlayerState struct {
	Position common.Vec3 `cbor:"position"`
	BodyYaw  float64     `cbor:"body_yaw"`

	Speed            float64 `cbor:"speed"`
	AnimationBlend   float64 `cbor:"animation_blend"`
	InputMagnitude   float64 `cbor:"input_magnitude"`
	TargetRotation   float64 `cbor:"target_rotation"`
	RotationVelocity float64 `cbor:"rotation_velocity"`
	VerticalVelocity float64 `cbor:"vertical_velocity"`

	Grounded             bool          `cbor:"grounded"`
	Vertical             VerticalPhase `cbor:"vertical"`
	JumpTimeoutRemaining float64       `cbor:"jump_timeout"`
	FallTimeoutRemaining float64       `cbor:"fall_timeout"`
	FreeFall             bool          `cbor:"free_fall"`
	Jumped               bool          `cbor:"jumped"`
	InJump               bool          `cbor:"in_jump"`
	StrideDistance       float64       `cbor:"stride"`

	Camera CameraRigState `cbor:"camera"`
	Aim    AimState       `cbor:"aim"`

	Tick uint64 `cbor:"tick"`
}

// NewPlayerState returns the spawn state: grounded with both timeouts full.
func NewPlayerState(cfg PlayerConfig, position common.Vec3, yaw float64) PlayerState {
	return PlayerState{
		Position:             position,
		BodyYaw:              yaw,
		TargetRotation:       yaw,
		Grounded:             true,
		Vertical:             PhaseGrounded,
		JumpTimeoutRemaining: cfg.JumpTimeout,
		FallTimeoutRemaining: cfg.FallTimeout,
		Camera:               CameraRigState{Yaw: yaw},
	}
}
