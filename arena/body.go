package arena

import (
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
)

var _ component.Body = (*Body)(nil)

const (
	DefaultBodyRadius = 0.28
	DefaultBodyHeight = 1.8
)

// Body is a box-shaped character mover. Position is the centre of its base.
type Body struct {
	arena  *Arena
	pos    common.Vec3
	radius float64
	height float64
	mask   uint

	velocity common.Vec2
}

// NewBody places a mover at pos that collides with blocks on mask.
func (a *Arena) NewBody(pos common.Vec3, mask uint) *Body {
	return &Body{
		arena:  a,
		pos:    pos,
		radius: DefaultBodyRadius,
		height: DefaultBodyHeight,
		mask:   mask,
	}
}

func (b *Body) Position() common.Vec3 {
	return b.pos
}

// HorizontalVelocity is the XZ distance actually covered by the last move.
func (b *Body) HorizontalVelocity() common.Vec2 {
	return b.velocity
}

// Move slides the body by displacement one axis at a time, vertical first.
func (b *Body) Move(displacement common.Vec3, dt float64) {
	start := b.pos
	b.pos.Y += b.resolveAxis(1, displacement.Y)
	b.pos.X += b.resolveAxis(0, displacement.X)
	b.pos.Z += b.resolveAxis(2, displacement.Z)

	if dt > 0 {
		b.velocity = common.Vec2{X: (b.pos.X - start.X) / dt, Y: (b.pos.Z - start.Z) / dt}
	} else {
		b.velocity = common.Vec2{}
	}
}

func (b *Body) bounds() box {
	return box{
		min: [3]float64{b.pos.X - b.radius, b.pos.Y, b.pos.Z - b.radius},
		max: [3]float64{b.pos.X + b.radius, b.pos.Y + b.height, b.pos.Z + b.radius},
	}
}

// resolveAxis returns how far the body may travel along axis before touching
// a block. Blocks the body already overlaps do not stop it.
func (b *Body) resolveAxis(axis int, delta float64) float64 {
	if b.arena == nil || delta == 0 {
		return delta
	}
	current := b.bounds()
	swept := current
	if delta > 0 {
		swept.max[axis] += delta
	} else {
		swept.min[axis] += delta
	}

	allowed := delta
	for _, blk := range b.arena.candidates(swept.footprint(), b.mask) {
		bounds := blk.bounds()
		if !swept.overlaps(bounds) || current.overlaps(bounds) {
			continue
		}
		if delta > 0 {
			allowed = min(allowed, max(bounds.min[axis]-current.max[axis], 0))
		} else {
			allowed = max(allowed, min(bounds.max[axis]-current.min[axis], 0))
		}
	}
	return allowed
}
