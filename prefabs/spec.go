package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := loadInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// loadInto decodes filename over spec. Keys missing from the file keep the
// values already in spec.
func loadInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// PlayerSpec mirrors player.yaml. Decode it over DefaultPlayerSpec so that
// omitted keys keep their defaults and explicit zeros stay zero.
type PlayerSpec struct {
	Name string `yaml:"name"`

	Locomotion LocomotionSpec `yaml:"locomotion"`
	Vertical   VerticalSpec   `yaml:"vertical"`
	Ground     GroundSpec     `yaml:"ground"`
	Camera     CameraSpec     `yaml:"camera"`
	Aim        AimSpec        `yaml:"aim"`
}

type LocomotionSpec struct {
	MoveSpeed          float64 `yaml:"move_speed"`
	SprintSpeed        float64 `yaml:"sprint_speed"`
	RotationSmoothTime float64 `yaml:"rotation_smooth_time"`
	SpeedChangeRate    float64 `yaml:"speed_change_rate"`
	SpeedOffset        float64 `yaml:"speed_offset"`
	FootstepStride     float64 `yaml:"footstep_stride"`
}

type VerticalSpec struct {
	JumpHeight       float64 `yaml:"jump_height"`
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	JumpTimeout      float64 `yaml:"jump_timeout"`
	FallTimeout      float64 `yaml:"fall_timeout"`
	GroundedVelocity float64 `yaml:"grounded_velocity"`
}

type GroundSpec struct {
	Offset float64 `yaml:"offset"`
	Radius float64 `yaml:"radius"`
	Layers uint    `yaml:"layers"`
}

type CameraSpec struct {
	TopClamp          float64 `yaml:"top_clamp"`
	BottomClamp       float64 `yaml:"bottom_clamp"`
	AngleOverride     float64 `yaml:"angle_override"`
	Locked            bool    `yaml:"locked"`
	NormalSensitivity float64 `yaml:"normal_sensitivity"`
	AimSensitivity    float64 `yaml:"aim_sensitivity"`
	LookThreshold     float64 `yaml:"look_threshold"`
}

type AimSpec struct {
	Range       float64     `yaml:"range"`
	FireRate    float64     `yaml:"fire_rate"`
	TurnRate    float64     `yaml:"turn_rate"`
	Layers      uint        `yaml:"layers"`
	ShootOffset common.Vec3 `yaml:"shoot_offset"`
}

// DefaultPlayerSpec returns the spec of DefaultPlayerConfig.
func DefaultPlayerSpec() PlayerSpec {
	cfg := component.DefaultPlayerConfig()
	return PlayerSpec{
		Name: "player",
		Locomotion: LocomotionSpec{
			MoveSpeed:          cfg.MoveSpeed,
			SprintSpeed:        cfg.SprintSpeed,
			RotationSmoothTime: cfg.RotationSmoothTime,
			SpeedChangeRate:    cfg.SpeedChangeRate,
			SpeedOffset:        cfg.SpeedOffset,
			FootstepStride:     cfg.FootstepStride,
		},
		Vertical: VerticalSpec{
			JumpHeight:       cfg.JumpHeight,
			Gravity:          cfg.Gravity,
			TerminalVelocity: cfg.TerminalVelocity,
			JumpTimeout:      cfg.JumpTimeout,
			FallTimeout:      cfg.FallTimeout,
			GroundedVelocity: cfg.GroundedVelocity,
		},
		Ground: GroundSpec{
			Offset: cfg.GroundedOffset,
			Radius: cfg.GroundedRadius,
			Layers: cfg.GroundLayers,
		},
		Camera: CameraSpec{
			TopClamp:          cfg.TopClamp,
			BottomClamp:       cfg.BottomClamp,
			AngleOverride:     cfg.CameraAngleOverride,
			Locked:            cfg.LockCameraPosition,
			NormalSensitivity: cfg.NormalSensitivity,
			AimSensitivity:    cfg.AimSensitivity,
			LookThreshold:     cfg.LookThreshold,
		},
		Aim: AimSpec{
			Range:       cfg.AimRange,
			FireRate:    cfg.FireRate,
			TurnRate:    cfg.AimTurnRate,
			Layers:      cfg.AimLayers,
			ShootOffset: cfg.ShootOffset,
		},
	}
}

func LoadPlayerSpec(name string) (*PlayerSpec, error) {
	if name == "" {
		name = "player.yaml"
	}
	spec := DefaultPlayerSpec()
	if err := loadInto(name, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadPlayerConfig loads a player spec and returns its validated config.
func LoadPlayerConfig(name string) (component.PlayerConfig, error) {
	spec, err := LoadPlayerSpec(name)
	if err != nil {
		return component.PlayerConfig{}, err
	}
	cfg := spec.Config()
	if err := cfg.Validate(); err != nil {
		return component.PlayerConfig{}, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return cfg, nil
}

func (s PlayerSpec) Config() component.PlayerConfig {
	return component.PlayerConfig{
		MoveSpeed:          s.Locomotion.MoveSpeed,
		SprintSpeed:        s.Locomotion.SprintSpeed,
		RotationSmoothTime: s.Locomotion.RotationSmoothTime,
		SpeedChangeRate:    s.Locomotion.SpeedChangeRate,
		SpeedOffset:        s.Locomotion.SpeedOffset,
		FootstepStride:     s.Locomotion.FootstepStride,

		JumpHeight:       s.Vertical.JumpHeight,
		Gravity:          s.Vertical.Gravity,
		TerminalVelocity: s.Vertical.TerminalVelocity,
		JumpTimeout:      s.Vertical.JumpTimeout,
		FallTimeout:      s.Vertical.FallTimeout,
		GroundedVelocity: s.Vertical.GroundedVelocity,

		GroundedOffset: s.Ground.Offset,
		GroundedRadius: s.Ground.Radius,
		GroundLayers:   s.Ground.Layers,

		TopClamp:            s.Camera.TopClamp,
		BottomClamp:         s.Camera.BottomClamp,
		CameraAngleOverride: s.Camera.AngleOverride,
		LockCameraPosition:  s.Camera.Locked,
		NormalSensitivity:   s.Camera.NormalSensitivity,
		AimSensitivity:      s.Camera.AimSensitivity,
		LookThreshold:       s.Camera.LookThreshold,

		AimRange:    s.Aim.Range,
		FireRate:    s.Aim.FireRate,
		AimTurnRate: s.Aim.TurnRate,
		AimLayers:   s.Aim.Layers,
		ShootOffset: s.Aim.ShootOffset,
	}
}

// ArenaSpec mirrors arena.yaml: static blocks plus the player spawn.
type ArenaSpec struct {
	Name   string      `yaml:"name"`
	Spawn  SpawnSpec   `yaml:"spawn"`
	Blocks []BlockSpec `yaml:"blocks"`
}

type SpawnSpec struct {
	Position common.Vec3 `yaml:"position"`
	Yaw      float64     `yaml:"yaw"`
}

// BlockSpec is an axis-aligned box. Layer defaults to 1.
type BlockSpec struct {
	Name  string      `yaml:"name"`
	Min   common.Vec3 `yaml:"min"`
	Max   common.Vec3 `yaml:"max"`
	Layer uint        `yaml:"layer"`
	Color *YAMLColor  `yaml:"color"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if name == "" {
		name = "arena.yaml"
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	for i := range spec.Blocks {
		if spec.Blocks[i].Layer == 0 {
			spec.Blocks[i].Layer = 1
		}
	}
	return &spec, nil
}

func (s ArenaSpec) Validate() error {
	seen := make(map[string]struct{}, len(s.Blocks))
	for i, b := range s.Blocks {
		if b.Name == "" {
			return fmt.Errorf("%w: block %d has no name", ErrInvalidSpec, i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate block %q", ErrInvalidSpec, b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z {
			return fmt.Errorf("%w: block %q has an empty extent", ErrInvalidSpec, b.Name)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
