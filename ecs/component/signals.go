package component

// AnimationSignals are the named parameters an animator consumes each tick.
type AnimationSignals struct {
	Speed       float64
	MotionSpeed float64
	Grounded    bool
	Jumping     bool
	FreeFalling bool
	Aiming      bool
}

// Signals derives the animation parameters from s.
func (s PlayerState) Signals() AnimationSignals {
	return AnimationSignals{
		Speed:       s.AnimationBlend,
		MotionSpeed: s.InputMagnitude,
		Grounded:    s.Grounded,
		Jumping:     s.Jumped || s.InJump,
		FreeFalling: s.FreeFall,
		Aiming:      s.Aim.Aiming(),
	}
}
