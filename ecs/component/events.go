package component

import "github.com/milk9111/thirdperson/common"

// Event types pushed onto the world queue.
const (
	EventFootstep = "footstep"
	EventLand     = "land"
	EventShot     = "shot"
	EventHit      = "hit"
)

// CueEvent asks an audio collaborator to play a cue at Position.
type CueEvent struct {
	Position common.Vec3
}

// ShotEvent is emitted once per satisfied fire-rate gate.
type ShotEvent struct {
	Origin   common.Vec3
	Target   common.Vec3
	Hit      bool
	ObjectID string
}

// HitEvent is emitted alongside a ShotEvent when the aim ray found a target.
type HitEvent struct {
	ObjectID string
	Point    common.Vec3
}
