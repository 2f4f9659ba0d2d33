package component

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/thirdperson/common"
)

var ErrInvalidConfig = errors.New("component: invalid player config")

// PlayerConfig holds the tunables of one character. It is fixed for the
// lifetime of the character.
type PlayerConfig struct {
	MoveSpeed          float64
	SprintSpeed        float64
	RotationSmoothTime float64
	SpeedChangeRate    float64
	SpeedOffset        float64

	JumpHeight       float64
	Gravity          float64
	TerminalVelocity float64
	JumpTimeout      float64
	FallTimeout      float64
	GroundedVelocity float64

	GroundedOffset float64
	GroundedRadius float64
	GroundLayers   uint
	FootstepStride float64

	TopClamp            float64
	BottomClamp         float64
	CameraAngleOverride float64
	LockCameraPosition  bool
	NormalSensitivity   float64
	AimSensitivity      float64
	LookThreshold       float64

	AimRange    float64
	FireRate    float64
	AimTurnRate float64
	AimLayers   uint
	ShootOffset common.Vec3
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		MoveSpeed:          2.0,
		SprintSpeed:        5.335,
		RotationSmoothTime: 0.12,
		SpeedChangeRate:    10,
		SpeedOffset:        0.1,

		JumpHeight:       1.2,
		Gravity:          -15,
		TerminalVelocity: 53,
		JumpTimeout:      0.5,
		FallTimeout:      0.15,
		GroundedVelocity: -2,

		GroundedOffset: -0.14,
		GroundedRadius: 0.28,
		GroundLayers:   1,
		FootstepStride: 1.4,

		TopClamp:          80,
		BottomClamp:       -80,
		NormalSensitivity: 1,
		AimSensitivity:    0.5,
		LookThreshold:     0.01,

		AimRange:    100,
		FireRate:    0.2,
		AimTurnRate: 20,
		AimLayers:   ^uint(0),
		ShootOffset: common.Vec3{X: 0.3, Y: 1.4, Z: 0.4},
	}
}

// Validate rejects tunables the simulation cannot integrate.
func (c PlayerConfig) Validate() error {
	switch {
	case c.MoveSpeed <= 0 || c.SprintSpeed <= 0:
		return fmt.Errorf("%w: move and sprint speed must be positive", ErrInvalidConfig)
	case c.SpeedChangeRate <= 0:
		return fmt.Errorf("%w: speed change rate must be positive", ErrInvalidConfig)
	case c.Gravity >= 0:
		return fmt.Errorf("%w: gravity must be negative, got %v", ErrInvalidConfig, c.Gravity)
	case c.JumpHeight < 0:
		return fmt.Errorf("%w: negative jump height", ErrInvalidConfig)
	case c.JumpTimeout < 0 || c.FallTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	case c.BottomClamp > c.TopClamp:
		return fmt.Errorf("%w: bottom clamp %v above top clamp %v", ErrInvalidConfig, c.BottomClamp, c.TopClamp)
	case c.AimRange <= 0:
		return fmt.Errorf("%w: aim range must be positive", ErrInvalidConfig)
	case c.FireRate <= 0:
		return fmt.Errorf("%w: fire rate must be positive", ErrInvalidConfig)
	}
	return nil
}

// JumpVelocity is the launch speed needed to reach JumpHeight under Gravity.
func (c PlayerConfig) JumpVelocity() float64 {
	return math.Sqrt(c.JumpHeight * -2 * c.Gravity)
}

// FallFloor is the most negative vertical velocity gravity may produce.
func (c PlayerConfig) FallFloor() float64 {
	return -math.Abs(c.TerminalVelocity)
}
