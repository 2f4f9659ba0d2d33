package system

import (
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	grounded bool
	centers  []common.Vec3
}

func (p *fakeProbe) Probe(center common.Vec3, radius float64, mask uint) bool {
	p.centers = append(p.centers, center)
	return p.grounded
}

type fakeBody struct {
	pos   common.Vec3
	vel   common.Vec2
	moves []common.Vec3
}

func (b *fakeBody) Position() common.Vec3           { return b.pos }
func (b *fakeBody) HorizontalVelocity() common.Vec2 { return b.vel }
func (b *fakeBody) Move(d common.Vec3, dt float64) {
	b.moves = append(b.moves, d)
	b.pos = b.pos.Add(d)
}

type fakeCamera struct {
	pos     common.Vec3
	forward common.Vec3
	yaw     float64
}

func (c *fakeCamera) Position() common.Vec3 { return c.pos }
func (c *fakeCamera) Forward() common.Vec3  { return c.forward }
func (c *fakeCamera) Yaw() float64          { return c.yaw }

type fakeRays struct {
	hit   component.RayHit
	calls int
}

func (r *fakeRays) RayTest(origin, direction common.Vec3, maxDistance float64, mask uint) component.RayHit {
	r.calls++
	return r.hit
}

type fakeAimCamera struct {
	active  bool
	toggles int
}

func (a *fakeAimCamera) SetAimActive(active bool) {
	a.active = active
	a.toggles++
}

type fakePointer bool

func (p fakePointer) HighPrecision() bool { return bool(p) }

type panicProbe struct{}

func (panicProbe) Probe(common.Vec3, float64, uint) bool { panic("probe exploded") }

func newTestWorld(t *testing.T, links component.Links, systems ...ecs.System) (*ecs.World, ecs.Entity, *component.Character) {
	t.Helper()
	if len(systems) == 0 {
		systems = CharacterSystems()
	}
	w := ecs.NewWorld(ecs.WithSystems(systems...))
	e, err := w.Spawn(component.DefaultPlayerConfig(), links, common.Vec3{}, 0)
	require.NoError(t, err)
	c, ok := w.Character(e)
	require.True(t, ok)
	return w, e, c
}

func eventsOfType(events []ecs.Event, eventType string) []ecs.Event {
	var out []ecs.Event
	for _, evt := range events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}
