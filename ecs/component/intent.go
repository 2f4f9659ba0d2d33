package component

import "github.com/milk9111/thirdperson/common"

// Intent is the per-tick input snapshot. The simulation only reads it.
type Intent struct {
	Move           common.Vec2 `cbor:"move"`
	Look           common.Vec2 `cbor:"look"`
	Jump           bool        `cbor:"jump"`
	Sprint         bool        `cbor:"sprint"`
	Aim            bool        `cbor:"aim"`
	Shoot          bool        `cbor:"shoot"`
	AnalogMovement bool        `cbor:"analog"`
}

// InputMagnitude is the move stick deflection for analog input and 1 otherwise.
func (in Intent) InputMagnitude() float64 {
	if in.AnalogMovement {
		return in.Move.Len()
	}
	return 1
}
