package system

import "github.com/milk9111/thirdperson/ecs"

// CharacterSystems returns the systems of one simulation tick in order.
// Aim reads this tick's camera rig; locomotion sees last tick's aim mode.
func CharacterSystems() []ecs.System {
	return []ecs.System{
		NewIntentSystem(),
		NewLocomotionSystem(),
		NewCameraRigSystem(),
		NewAimFireSystem(),
	}
}
