package system

import (
	"math"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

const animationBlendEpsilon = 0.01

// LocomotionSystem integrates vertical motion, horizontal speed and body
// rotation, then hands the displacement to the character's body.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (l *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	w.ForEach(func(e ecs.Entity, c *component.Character) {
		if c == nil {
			return
		}
		l.updateVertical(w, e, c, dt)
		l.updateHorizontal(c, dt)
		l.move(w, e, c, dt)
	})
}

func (l *LocomotionSystem) updateVertical(w *ecs.World, e ecs.Entity, c *component.Character, dt float64) {
	cfg := &c.Config
	st := &c.State
	st.Jumped = false

	wasGrounded := st.Grounded
	if probe := c.Links.Probe; probe != nil {
		center := st.Position.Sub(common.Vec3{Y: cfg.GroundedOffset})
		st.Grounded = probe.Probe(center, cfg.GroundedRadius, cfg.GroundLayers)
	}

	switch {
	case wasGrounded && !st.Grounded:
		st.JumpTimeoutRemaining = cfg.JumpTimeout
	case !wasGrounded && st.Grounded:
		st.FallTimeoutRemaining = cfg.FallTimeout
		w.Emit(e, component.EventLand, component.CueEvent{Position: st.Position})
	}

	if st.Grounded {
		st.FreeFall = false
		// stop the velocity dropping infinitely when grounded
		if st.VerticalVelocity < 0 {
			st.VerticalVelocity = cfg.GroundedVelocity
		}
	}

	ctx := &component.LocomotionContext{
		Config:    cfg,
		Intent:    &c.Intent,
		State:     st,
		DeltaTime: dt,
	}
	ctx.ChangeState = func(next component.VerticalState) {
		if from := verticalState(st.Vertical); next != nil && from != next {
			w.Logger().Debug().Str("entity", e.String()).Str("from", from.Name()).Str("to", next.Name()).Msg("vertical state")
		}
		changeVerticalState(ctx, next)
	}
	verticalState(st.Vertical).Update(ctx)

	if st.Grounded {
		if st.JumpTimeoutRemaining >= 0 {
			st.JumpTimeoutRemaining -= dt
		}
	} else {
		if st.FallTimeoutRemaining >= 0 {
			st.FallTimeoutRemaining -= dt
		}
		st.FreeFall = st.FallTimeoutRemaining <= 0
	}

	// gravity, capped at terminal fall speed
	if floor := cfg.FallFloor(); st.VerticalVelocity > floor {
		st.VerticalVelocity = math.Max(st.VerticalVelocity+cfg.Gravity*dt, floor)
	}
}

func (l *LocomotionSystem) updateHorizontal(c *component.Character, dt float64) {
	cfg := &c.Config
	st := &c.State
	in := c.Intent

	targetSpeed := cfg.MoveSpeed
	if in.Sprint {
		targetSpeed = cfg.SprintSpeed
	}
	if in.Move.IsZero() {
		targetSpeed = 0
	}

	currentSpeed := st.Speed
	if body := c.Links.Body; body != nil {
		currentSpeed = body.HorizontalVelocity().Len()
	}

	inputMagnitude := in.InputMagnitude()
	st.InputMagnitude = inputMagnitude

	rate := dt * cfg.SpeedChangeRate
	if currentSpeed < targetSpeed-cfg.SpeedOffset || currentSpeed > targetSpeed+cfg.SpeedOffset {
		// curved rather than linear approach; rounding keeps float noise out of the animator
		st.Speed = common.RoundTo(common.Lerp(currentSpeed, targetSpeed*inputMagnitude, rate), 3)
	} else {
		st.Speed = targetSpeed
	}

	st.AnimationBlend = common.Lerp(st.AnimationBlend, targetSpeed, rate)
	if st.AnimationBlend < animationBlendEpsilon {
		st.AnimationBlend = 0
	}

	if in.Move.IsZero() {
		return
	}

	cameraYaw := st.Camera.Yaw
	if cam := c.Links.Camera; cam != nil {
		cameraYaw = cam.Yaw()
	}
	dir := common.Vec3{X: in.Move.X, Z: in.Move.Y}.Normalize()
	st.TargetRotation = math.Atan2(dir.X, dir.Z)*common.Rad2Deg + cameraYaw
	rotation := common.SmoothDampAngle(st.BodyYaw, st.TargetRotation, &st.RotationVelocity, cfg.RotationSmoothTime, dt)

	// aim mode owns the body rotation
	if !st.Aim.Aiming() {
		st.BodyYaw = rotation
	}
}

func (l *LocomotionSystem) move(w *ecs.World, e ecs.Entity, c *component.Character, dt float64) {
	body := c.Links.Body
	if body == nil {
		return
	}
	st := &c.State
	cfg := &c.Config

	horizontal := common.YawForward(st.TargetRotation).Scale(st.Speed * dt)
	vertical := common.Up.Scale(st.VerticalVelocity * dt)
	body.Move(horizontal.Add(vertical), dt)
	st.Position = body.Position()

	if !st.Grounded || cfg.FootstepStride <= 0 || st.Speed <= 0 {
		st.StrideDistance = 0
		return
	}
	st.StrideDistance += st.Speed * dt
	if st.StrideDistance >= cfg.FootstepStride {
		st.StrideDistance -= cfg.FootstepStride
		w.Emit(e, component.EventFootstep, component.CueEvent{Position: st.Position})
	}
}
