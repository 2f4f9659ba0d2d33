package replay

import (
	"path/filepath"
	"testing"

	"github.com/milk9111/thirdperson/arena"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arenaLinks(t *testing.T, spawn common.Vec3) component.Links {
	t.Helper()
	spec, err := prefabs.LoadArenaSpec("")
	require.NoError(t, err)
	a, err := arena.FromSpec(spec)
	require.NoError(t, err)
	return component.Links{
		Probe: a,
		Rays:  a,
		Body:  a.NewBody(spawn, 1),
	}
}

func TestRecordThenSimulateIsDeterministic(t *testing.T) {
	src, err := script.Load("jumper")
	require.NoError(t, err)
	cfg := component.DefaultPlayerConfig()

	rec, err := Record(cfg, arenaLinks(t, common.Vec3{}), common.Vec3{}, 0, src, 240, 1.0/60)
	require.NoError(t, err)
	require.Len(t, rec.Frames, 240)

	b, err := Marshal(rec)
	require.NoError(t, err)
	loaded, err := Unmarshal(b)
	require.NoError(t, err)

	got, err := Simulate(loaded, arenaLinks(t, loaded.Spawn))
	require.NoError(t, err)

	require.NotNil(t, loaded.Final)
	assert.Equal(t, *loaded.Final, got)
	assert.NotEqual(t, common.Vec3{}, got.Position, "the script walks forward")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")
	rec := &Recording{
		Config: component.DefaultPlayerConfig(),
		Frames: []Frame{
			{DeltaTime: 0.02, Intent: component.Intent{Jump: true}},
			{DeltaTime: 0.02, Intent: component.Intent{Move: common.Vec2{Y: 1}, Sprint: true}},
		},
	}

	require.NoError(t, Save(path, rec))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Version, loaded.Version)
	assert.Equal(t, rec.Frames, loaded.Frames)
	assert.Equal(t, rec.Config, loaded.Config)
	assert.Nil(t, loaded.Final)
}

func TestUnmarshalRejectsUnknownVersion(t *testing.T) {
	// {"version": 9}
	_, err := Unmarshal([]byte{0xa1, 0x67, 'v', 'e', 'r', 's', 'i', 'o', 'n', 0x09})
	assert.ErrorIs(t, err, ErrVersion)
}

func TestPlayerRunsOut(t *testing.T) {
	p := NewPlayer([]Frame{{DeltaTime: 0.5, Intent: component.Intent{Aim: true}}})

	assert.False(t, p.Done())
	assert.Equal(t, 0.5, p.DeltaTime())
	assert.True(t, p.Poll().Aim)
	assert.True(t, p.Done())
	assert.Equal(t, component.Intent{}, p.Poll())
	assert.Equal(t, 0.0, p.DeltaTime())
}
