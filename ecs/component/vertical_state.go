package component

// VerticalState is one state of the vertical motion machine. Each state owns
// its enter/exit and per-tick transition logic.
type VerticalState interface {
	Name() string
	Phase() VerticalPhase
	Enter(ctx *LocomotionContext)
	Exit(ctx *LocomotionContext)
	Update(ctx *LocomotionContext)
}

// LocomotionContext gives a vertical state access to one character for one tick.
type LocomotionContext struct {
	Config      *PlayerConfig
	Intent      *Intent
	State       *PlayerState
	DeltaTime   float64
	ChangeState func(next VerticalState)
}
