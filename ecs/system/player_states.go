package system

import "github.com/milk9111/thirdperson/ecs/component"

// Vertical state singletons (avoid allocations on transitions).
var (
	verticalGrounded component.VerticalState = &groundedState{}
	verticalRising   component.VerticalState = &risingState{}
	verticalFalling  component.VerticalState = &fallingState{}
)

type groundedState struct{}

type risingState struct{}

type fallingState struct{}

func verticalState(phase component.VerticalPhase) component.VerticalState {
	switch phase {
	case component.PhaseRising:
		return verticalRising
	case component.PhaseFalling:
		return verticalFalling
	}
	return verticalGrounded
}

func changeVerticalState(ctx *component.LocomotionContext, next component.VerticalState) {
	if ctx == nil || ctx.State == nil || next == nil {
		return
	}
	current := verticalState(ctx.State.Vertical)
	if current == next {
		return
	}
	current.Exit(ctx)
	ctx.State.Vertical = next.Phase()
	next.Enter(ctx)
}

func (groundedState) Name() string                   { return "grounded" }
func (groundedState) Phase() component.VerticalPhase { return component.PhaseGrounded }
func (groundedState) Enter(ctx *component.LocomotionContext) {
	if ctx != nil && ctx.State != nil {
		ctx.State.InJump = false
	}
}
func (groundedState) Exit(ctx *component.LocomotionContext) {}
func (groundedState) Update(ctx *component.LocomotionContext) {
	if ctx == nil || ctx.State == nil || ctx.ChangeState == nil {
		return
	}
	if !ctx.State.Grounded {
		ctx.ChangeState(verticalFalling)
		return
	}
	if ctx.Intent != nil && ctx.Intent.Jump && ctx.State.JumpTimeoutRemaining <= 0 {
		ctx.ChangeState(verticalRising)
	}
}

func (risingState) Name() string                   { return "rising" }
func (risingState) Phase() component.VerticalPhase { return component.PhaseRising }
func (risingState) Enter(ctx *component.LocomotionContext) {
	if ctx == nil || ctx.State == nil || ctx.Config == nil {
		return
	}
	// the square root of H * -2 * G is the launch speed that reaches H
	ctx.State.VerticalVelocity = ctx.Config.JumpVelocity()
	ctx.State.Jumped = true
	ctx.State.InJump = true
}
func (risingState) Exit(ctx *component.LocomotionContext) {}
func (risingState) Update(ctx *component.LocomotionContext) {
	if ctx == nil || ctx.State == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.State.VerticalVelocity > 0 {
		return
	}
	if ctx.State.Grounded {
		ctx.ChangeState(verticalGrounded)
		return
	}
	ctx.ChangeState(verticalFalling)
}

func (fallingState) Name() string                           { return "falling" }
func (fallingState) Phase() component.VerticalPhase         { return component.PhaseFalling }
func (fallingState) Enter(ctx *component.LocomotionContext) {}
func (fallingState) Exit(ctx *component.LocomotionContext)  {}
func (fallingState) Update(ctx *component.LocomotionContext) {
	if ctx == nil || ctx.State == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.State.Grounded {
		ctx.ChangeState(verticalGrounded)
	}
}
