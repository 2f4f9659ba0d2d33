package script

import (
	"bytes"
	"testing"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollReadsGlobals(t *testing.T) {
	src := []byte(`
move_x := 0.5
move_y := -1
look_x := dt * 60
jump := tick == 1
sprint := true
`)
	s, err := New("inline", src)
	require.NoError(t, err)

	first := s.Poll()
	second := s.Poll()

	assert.Equal(t, common.Vec2{X: 0.5, Y: -1}, first.Move)
	assert.InDelta(t, 1.0, first.Look.X, 1e-9)
	assert.False(t, first.Jump)
	assert.True(t, first.Sprint)
	assert.False(t, first.Aim)
	assert.True(t, second.Jump)
	assert.Equal(t, int64(2), s.Tick())
}

func TestPollSeesObservedPlayer(t *testing.T) {
	s, err := New("inline", []byte(`jump := player.grounded == true && player.y < 1`))
	require.NoError(t, err)

	assert.False(t, s.Poll().Jump)

	st := component.NewPlayerState(component.DefaultPlayerConfig(), common.Vec3{Y: 0.5}, 0)
	s.Observe(&st)
	assert.True(t, s.Poll().Jump)
}

func TestCompileErrorIsWrapped(t *testing.T) {
	_, err := New("broken", []byte(`move_x := (`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script: compile broken")
}

func TestRuntimeErrorYieldsEmptyIntentAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	s, err := New("bad_op", []byte(`move_x := tick + "a"`), WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	assert.Equal(t, component.Intent{}, s.Poll())
	assert.Equal(t, component.Intent{}, s.Poll())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("intent script failed")))
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"patrol", "jumper.tengo", "prefabs/scripts/patrol.tengo"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name)
			require.NoError(t, err)
			s.Poll()
		})
	}
}

func TestPatrolWalksASquare(t *testing.T) {
	s, err := Load("patrol")
	require.NoError(t, err)

	in := s.Poll()
	assert.Equal(t, common.Vec2{Y: 1}, in.Move)
	assert.True(t, in.Sprint)

	for i := 0; i < 120; i++ {
		in = s.Poll()
	}
	assert.Equal(t, common.Vec2{X: 1}, in.Move)
	assert.False(t, in.Sprint)
}
