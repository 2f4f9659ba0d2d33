package component

// Character bundles everything one playable character owns.
type Character struct {
	Config PlayerConfig
	Intent Intent
	State  PlayerState
	Links  Links
}

// Signals returns the animation parameters of the last tick.
func (c *Character) Signals() AnimationSignals {
	if c == nil {
		return AnimationSignals{}
	}
	return c.State.Signals()
}
