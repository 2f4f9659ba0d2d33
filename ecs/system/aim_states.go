package system

import "github.com/milk9111/thirdperson/ecs/component"

var (
	aimIdle   component.AimModeState = &aimIdleState{}
	aimAiming component.AimModeState = &aimAimingState{}
)

type aimIdleState struct{}

type aimAimingState struct{}

func aimState(mode component.AimMode) component.AimModeState {
	if mode == component.AimAiming {
		return aimAiming
	}
	return aimIdle
}

func changeAimState(ctx *component.AimContext, next component.AimModeState) {
	if ctx == nil || ctx.State == nil || next == nil {
		return
	}
	current := aimState(ctx.State.Aim.Mode)
	if current == next {
		return
	}
	current.Exit(ctx)
	ctx.State.Aim.Mode = next.Mode()
	next.Enter(ctx)
}

func setAimCamera(ctx *component.AimContext, active bool) {
	ctx.State.Aim.CameraActive = active
	if ctx.Links != nil && ctx.Links.AimCamera != nil {
		ctx.Links.AimCamera.SetAimActive(active)
	}
}

func (aimIdleState) Name() string            { return "idle" }
func (aimIdleState) Mode() component.AimMode { return component.AimIdle }
func (aimIdleState) Enter(ctx *component.AimContext) {
	if ctx == nil || ctx.State == nil {
		return
	}
	setAimCamera(ctx, false)
	ctx.State.Aim.LastHitValid = false
	ctx.State.Aim.LastHitObject = ""
}
func (aimIdleState) Exit(ctx *component.AimContext) {}
func (aimIdleState) HandleInput(ctx *component.AimContext) {
	if ctx == nil || ctx.Intent == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Intent.Aim {
		ctx.ChangeState(aimAiming)
	}
}
func (aimIdleState) Update(ctx *component.AimContext) {}

func (aimAimingState) Name() string            { return "aiming" }
func (aimAimingState) Mode() component.AimMode { return component.AimAiming }
func (aimAimingState) Enter(ctx *component.AimContext) {
	if ctx == nil || ctx.State == nil {
		return
	}
	setAimCamera(ctx, true)
}
func (aimAimingState) Exit(ctx *component.AimContext) {}
func (aimAimingState) HandleInput(ctx *component.AimContext) {
	if ctx == nil || ctx.Intent == nil || ctx.ChangeState == nil {
		return
	}
	if !ctx.Intent.Aim {
		ctx.ChangeState(aimIdle)
	}
}
func (aimAimingState) Update(ctx *component.AimContext) {
	if ctx == nil || ctx.State == nil || ctx.Config == nil || ctx.Intent == nil {
		return
	}
	cfg := ctx.Config
	st := ctx.State
	aim := &st.Aim

	origin := shootOrigin(st, cfg.ShootOffset)
	target := origin
	aim.LastHitValid = false
	aim.LastHitObject = ""

	var cam component.Camera
	var rays component.RayCaster
	if ctx.Links != nil {
		cam = ctx.Links.Camera
		rays = ctx.Links.Rays
	}
	if cam != nil {
		forward := cam.Forward().Normalize()
		target = origin.Add(forward.Scale(cfg.AimRange))
		turnTowards(st, target, ctx.DeltaTime*cfg.AimTurnRate)

		if rays != nil {
			hit := rays.RayTest(cam.Position(), forward, cfg.AimRange, cfg.AimLayers)
			if hit.Hit {
				target = hit.Point
				aim.LastHitValid = true
				aim.LastHitObject = hit.ObjectID
			}
		}
	}
	aim.LastAimPoint = target

	// the gate keeps counting whether or not the trigger is held
	aim.FireTimer += ctx.DeltaTime
	if !ctx.Intent.Aim || !ctx.Intent.Shoot || aim.FireTimer < cfg.FireRate {
		return
	}
	if ctx.Emit != nil {
		ctx.Emit(component.EventShot, component.ShotEvent{
			Origin:   origin,
			Target:   target,
			Hit:      aim.LastHitValid,
			ObjectID: aim.LastHitObject,
		})
		if aim.LastHitValid {
			ctx.Emit(component.EventHit, component.HitEvent{ObjectID: aim.LastHitObject, Point: target})
		}
	}
	aim.FireTimer = 0
}
