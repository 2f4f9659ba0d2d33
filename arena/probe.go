package arena

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
)

var (
	_ component.GroundProbe = (*Arena)(nil)
	_ component.RayCaster   = (*Arena)(nil)
)

// Probe reports whether a sphere overlaps any block on mask.
func (a *Arena) Probe(center common.Vec3, radius float64, mask uint) bool {
	if a == nil || radius <= 0 {
		return false
	}
	bb := cp.BB{L: center.X - radius, B: center.Z - radius, R: center.X + radius, T: center.Z + radius}
	p := toArray(center)
	for _, b := range a.candidates(bb, mask) {
		if b.bounds().sqrDistance(p) <= radius*radius {
			return true
		}
	}
	return false
}

// RayTest returns the nearest block hit within maxDistance along direction.
func (a *Arena) RayTest(origin, direction common.Vec3, maxDistance float64, mask uint) component.RayHit {
	dir := direction.Normalize()
	if a == nil || maxDistance <= 0 || dir == (common.Vec3{}) {
		return component.RayHit{}
	}
	delta := dir.Scale(maxDistance)
	end := origin.Add(delta)
	bb := cp.BB{
		L: min(origin.X, end.X), B: min(origin.Z, end.Z),
		R: max(origin.X, end.X), T: max(origin.Z, end.Z),
	}

	o := toArray(origin)
	d := toArray(delta)
	closest := 1.0
	var nearest *Block
	for _, b := range a.candidates(bb, mask) {
		hit, t := segmentBoxHit(o, d, b.bounds())
		if !hit || t > closest || (t == closest && nearest != nil) {
			continue
		}
		closest = t
		nearest = b
	}
	if nearest == nil {
		return component.RayHit{}
	}
	return component.RayHit{
		Hit:      true,
		Point:    origin.Add(delta.Scale(closest)),
		ObjectID: nearest.Name,
	}
}

// segmentBoxHit clips the segment o + t*d, t in [0,1], against b.
func segmentBoxHit(o, d [3]float64, b box) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < b.min[i] || o[i] > b.max[i] {
				return false, 0
			}
			continue
		}
		invD := 1.0 / d[i]
		t1 := (b.min[i] - o[i]) * invD
		t2 := (b.max[i] - o[i]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
