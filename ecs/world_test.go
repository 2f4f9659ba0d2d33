package ecs

import (
	"bytes"
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawn(t *testing.T, w *World) Entity {
	t.Helper()
	e, err := w.Spawn(component.DefaultPlayerConfig(), component.Links{}, common.Vec3{}, 0)
	require.NoError(t, err)
	return e
}

func TestWorldCharacterLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, spawn(t, w))
			}
			require.Equal(t, c.create, w.Len())
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			assert.True(t, w.Despawn(dead))
			assert.False(t, w.IsAlive(dead))
			assert.False(t, w.Despawn(dead), "second despawn of the same handle")
			_, ok := w.Character(dead)
			assert.False(t, ok)
			assert.Equal(t, c.create-1, w.Len())
			assert.Equal(t, c.create-1, w.entities.count())
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	old := spawn(t, w)
	require.True(t, w.Despawn(old))

	fresh := spawn(t, w)

	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, w.IsAlive(old))
	assert.True(t, w.IsAlive(fresh))
	assert.ErrorIs(t, w.SetIntent(old, component.Intent{Jump: true}), ErrEntityNotAlive)
}

func TestSpawnRejectsInvalidConfig(t *testing.T) {
	tests := map[string]func(*component.PlayerConfig){
		"zero fire rate":    func(c *component.PlayerConfig) { c.FireRate = 0 },
		"zero move speed":   func(c *component.PlayerConfig) { c.MoveSpeed = 0 },
		"zero sprint speed": func(c *component.PlayerConfig) { c.SprintSpeed = 0 },
		"negative speed":    func(c *component.PlayerConfig) { c.MoveSpeed = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorld()
			cfg := component.DefaultPlayerConfig()
			mutate(&cfg)

			_, err := w.Spawn(cfg, component.Links{}, common.Vec3{}, 0)

			assert.ErrorIs(t, err, component.ErrInvalidConfig)
			assert.Equal(t, 0, w.Len())
		})
	}
}

func TestSpawnLogsMissingCollaboratorsOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(WithLogger(zerolog.New(&buf)))

	spawn(t, w)
	w.Step(0.016)
	w.Step(0.016)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("degraded collaborators")))
}

func TestSparseSetSwapRemove(t *testing.T) {
	var s SparseSet[string]
	a, b, c := makeEntity(1, 0), makeEntity(2, 0), makeEntity(3, 0)
	s.Set(a, "a")
	s.Set(b, "b")
	s.Set(c, "c")

	require.True(t, s.Remove(a))

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has(a))
	v, ok := s.Get(c)
	assert.True(t, ok)
	assert.Equal(t, "c", v)
	assert.Equal(t, []Entity{c, b}, s.Entities())
	assert.False(t, s.Has(makeEntity(3, 1)), "different generation")
	assert.False(t, s.Remove(a))
}

func TestStepRunsSystemsInOrder(t *testing.T) {
	var order []string
	record := func(name string) System {
		return SystemFunc(func(w *World) { order = append(order, name) })
	}
	w := NewWorld(WithSystems(record("intent"), record("locomotion"), record("camera"), record("aim")))
	e := spawn(t, w)

	w.Step(0.02)

	assert.Equal(t, []string{"intent", "locomotion", "camera", "aim"}, order)
	assert.Equal(t, uint64(1), w.Tick())
	assert.Equal(t, 0.02, w.DeltaTime())
	c, _ := w.Character(e)
	assert.Equal(t, uint64(1), c.State.Tick)
}

func TestStepRecoversSystemPanic(t *testing.T) {
	var buf bytes.Buffer
	ran := false
	w := NewWorld(
		WithLogger(zerolog.New(&buf)),
		WithSystems(
			SystemFunc(func(*World) { panic("boom") }),
			SystemFunc(func(*World) { ran = true }),
		),
	)

	assert.NotPanics(t, func() { w.Step(0.02) })
	assert.True(t, ran)
	assert.Contains(t, buf.String(), "boom")
}

func TestForEachRecoversPerCharacter(t *testing.T) {
	var buf bytes.Buffer
	var first Entity
	visited := map[Entity]bool{}
	w := NewWorld(
		WithLogger(zerolog.New(&buf)),
		WithSystems(SystemFunc(func(w *World) {
			w.ForEach(func(e Entity, _ *component.Character) {
				if e == first {
					panic("bad collaborator")
				}
				visited[e] = true
			})
		})),
	)
	first = spawn(t, w)
	second := spawn(t, w)

	assert.NotPanics(t, func() { w.Step(0.02) })
	assert.True(t, visited[second])
	assert.False(t, visited[first])
	assert.Contains(t, buf.String(), "bad collaborator")
	assert.Contains(t, buf.String(), first.String())
}

func TestEventsLiveForOneTick(t *testing.T) {
	emit := true
	w := NewWorld(WithSystems(SystemFunc(func(w *World) {
		if emit {
			w.Emit(1, "footstep", nil)
		}
	})))

	w.Step(0.02)
	require.Equal(t, 1, w.Events().Len())

	emit = false
	w.Step(0.02)
	assert.Equal(t, 0, w.Events().Len())

	emit = true
	w.Step(0.02)
	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "footstep", events[0].Type)
	assert.Nil(t, w.Events().Drain())
}

func TestNilWorldIsInert(t *testing.T) {
	var w *World
	assert.NotPanics(t, func() {
		w.Step(1)
		w.Emit(1, "x", nil)
		w.ForEach(func(Entity, *component.Character) {})
	})
	assert.Equal(t, 0, w.Len())
	assert.False(t, w.IsAlive(1))
	assert.Nil(t, w.Events())
}
