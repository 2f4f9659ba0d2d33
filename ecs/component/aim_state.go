package component

// AimModeState is one state of the aim controller.
type AimModeState interface {
	Name() string
	Mode() AimMode
	Enter(ctx *AimContext)
	Exit(ctx *AimContext)
	HandleInput(ctx *AimContext)
	Update(ctx *AimContext)
}

// AimContext gives an aim state access to one character for one tick.
type AimContext struct {
	Config      *PlayerConfig
	Intent      *Intent
	State       *PlayerState
	Links       *Links
	DeltaTime   float64
	ChangeState func(next AimModeState)
	Emit        func(eventType string, data any)
}
