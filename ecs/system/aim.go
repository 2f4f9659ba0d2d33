package system

import (
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// AimFireSystem toggles aim mode, resolves the aim target and gates shots by
// the fire rate.
type AimFireSystem struct{}

func NewAimFireSystem() *AimFireSystem {
	return &AimFireSystem{}
}

func (a *AimFireSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	log := w.Logger()
	w.ForEach(func(e ecs.Entity, c *component.Character) {
		if c == nil {
			return
		}
		ctx := &component.AimContext{
			Config:    &c.Config,
			Intent:    &c.Intent,
			State:     &c.State,
			Links:     &c.Links,
			DeltaTime: dt,
		}
		ctx.ChangeState = func(next component.AimModeState) {
			if from := aimState(c.State.Aim.Mode); next != nil && from != next {
				log.Debug().Str("entity", e.String()).Str("from", from.Name()).Str("to", next.Name()).Msg("aim state")
			}
			changeAimState(ctx, next)
		}
		ctx.Emit = func(eventType string, data any) {
			if hit, ok := data.(component.HitEvent); ok {
				log.Debug().Str("entity", e.String()).Str("object", hit.ObjectID).Msg("shot hit")
			}
			w.Emit(e, eventType, data)
		}

		aimState(c.State.Aim.Mode).HandleInput(ctx)
		aimState(c.State.Aim.Mode).Update(ctx)
	})
}

// shootOrigin places the configured muzzle offset in the body's frame.
func shootOrigin(st *component.PlayerState, offset common.Vec3) common.Vec3 {
	forward := common.YawForward(st.BodyYaw)
	right := common.Vec3{X: forward.Z, Z: -forward.X}
	return st.Position.
		Add(right.Scale(offset.X)).
		Add(common.Up.Scale(offset.Y)).
		Add(forward.Scale(offset.Z))
}

// turnTowards blends the body's facing towards point on the horizontal plane.
func turnTowards(st *component.PlayerState, point common.Vec3, t float64) {
	facing := point.Sub(st.Position).Horizontal().Normalize()
	if facing == (common.Vec3{}) {
		return
	}
	blended := common.LerpVec3(common.YawForward(st.BodyYaw), facing, t)
	if blended.Horizontal().Len() < 1e-6 {
		return
	}
	st.BodyYaw = common.ForwardYaw(blended)
}
