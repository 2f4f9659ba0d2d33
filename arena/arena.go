// Package arena is the collision collaborator for characters: static boxes
// indexed in a chipmunk space, queried for ground probes, aim rays and
// character movement.
package arena

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/rs/zerolog"
)

// Block is a static axis-aligned box. Its XZ footprint lives in the cp space;
// the Y extent is checked after the broadphase.
type Block struct {
	Name  string
	Min   common.Vec3
	Max   common.Vec3
	Layer uint
	Color color.Color

	shape *cp.Shape
}

func (b *Block) bounds() box {
	return box{
		min: [3]float64{b.Min.X, b.Min.Y, b.Min.Z},
		max: [3]float64{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Arena owns the static geometry.
type Arena struct {
	space  *cp.Space
	blocks []*Block
	spawn  prefabs.SpawnSpec
	logger zerolog.Logger
}

type Option func(*Arena)

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Arena) {
		a.logger = logger
	}
}

// New indexes blocks. Blocks with no layer are put on layer 1.
func New(blocks []Block, opts ...Option) (*Arena, error) {
	a := &Arena{
		space:  cp.NewSpace(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	for i := range blocks {
		if err := a.add(blocks[i]); err != nil {
			return nil, err
		}
	}

	a.logger.Info().Int("blocks", len(a.blocks)).Msg("arena built")
	return a, nil
}

// FromSpec builds the arena described by an arena prefab.
func FromSpec(spec *prefabs.ArenaSpec, opts ...Option) (*Arena, error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: nil spec")
	}
	blocks := make([]Block, 0, len(spec.Blocks))
	for _, bs := range spec.Blocks {
		b := Block{Name: bs.Name, Min: bs.Min, Max: bs.Max, Layer: bs.Layer}
		if bs.Color != nil {
			b.Color = bs.Color.Color
		}
		blocks = append(blocks, b)
	}
	a, err := New(blocks, opts...)
	if err != nil {
		return nil, fmt.Errorf("arena: %s: %w", spec.Name, err)
	}
	a.spawn = spec.Spawn
	return a, nil
}

func (a *Arena) add(b Block) error {
	if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z {
		return fmt.Errorf("arena: block %q has an empty extent", b.Name)
	}
	if b.Layer == 0 {
		b.Layer = 1
	}
	block := &b
	shape := cp.NewBox2(a.space.StaticBody, cp.BB{L: b.Min.X, B: b.Min.Z, R: b.Max.X, T: b.Max.Z}, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, b.Layer, cp.ALL_CATEGORIES))
	shape.UserData = block
	a.space.AddShape(shape)
	block.shape = shape
	a.blocks = append(a.blocks, block)
	return nil
}

// Blocks returns the indexed blocks in insertion order.
func (a *Arena) Blocks() []*Block {
	if a == nil {
		return nil
	}
	return a.blocks
}

// Spawn returns the spawn point of a spec-built arena.
func (a *Arena) Spawn() (common.Vec3, float64) {
	if a == nil {
		return common.Vec3{}, 0
	}
	return a.spawn.Position, a.spawn.Yaw
}

// candidates returns the blocks on mask whose footprint touches bb, sorted by
// name so results do not depend on the spatial index.
func (a *Arena) candidates(bb cp.BB, mask uint) []*Block {
	var out []*Block
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	a.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if b, ok := shape.UserData.(*Block); ok {
			out = append(out, b)
		}
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// box is an axis-aligned box indexed by axis (0 = X, 1 = Y, 2 = Z).
type box struct {
	min [3]float64
	max [3]float64
}

const overlapEpsilon = 1e-6

func (b box) overlaps(o box) bool {
	for i := 0; i < 3; i++ {
		if b.min[i] >= o.max[i]-overlapEpsilon || b.max[i] <= o.min[i]+overlapEpsilon {
			return false
		}
	}
	return true
}

func (b box) footprint() cp.BB {
	return cp.BB{L: b.min[0], B: b.min[2], R: b.max[0], T: b.max[2]}
}

// sqrDistance returns the squared distance from p to the box.
func (b box) sqrDistance(p [3]float64) float64 {
	d := 0.0
	for i := 0; i < 3; i++ {
		c := math.Max(b.min[i], math.Min(p[i], b.max[i]))
		d += (p[i] - c) * (p[i] - c)
	}
	return d
}

func toArray(v common.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
