package playback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, n int, paused bool) *Controller {
	t.Helper()
	c, err := New(n, paused)
	require.NoError(t, err)
	return c
}

func TestNewRejectsEmpty(t *testing.T) {
	c, err := New(0, false)
	require.ErrorIs(t, err, ErrNoFrames)
	require.Nil(t, c)
}

func TestStepBackwardClampsAtZero(t *testing.T) {
	c := newController(t, 6, true)
	for i := 0; i < 10; i++ {
		require.Equal(t, 0, c.StepBackward())
	}
}

func TestStepForwardClampsAtLast(t *testing.T) {
	c := newController(t, 6, true)
	c.Seek(5)
	require.True(t, c.AtEnd())
	for i := 0; i < 10; i++ {
		require.Equal(t, 5, c.StepForward())
	}
}

func TestStepping(t *testing.T) {
	c := newController(t, 4, true)
	require.Equal(t, 1, c.StepForward())
	require.Equal(t, 2, c.StepForward())
	require.Equal(t, 1, c.StepBackward())
	require.Equal(t, 4, c.Len())
}

func TestSingleFrame(t *testing.T) {
	c := newController(t, 1, false)
	require.Equal(t, 0, c.StepForward())
	require.Equal(t, 0, c.StepBackward())
	require.Equal(t, 0, c.Tick())
	require.True(t, c.AtEnd())
}

func TestTickHonorsPause(t *testing.T) {
	c := newController(t, 5, false)
	require.Equal(t, 1, c.Tick())
	require.Equal(t, 1, c.TogglePause())
	require.True(t, c.Paused())
	require.Equal(t, 1, c.Tick())
	require.Equal(t, 1, c.Tick())
	c.TogglePause()
	require.False(t, c.Paused())
	require.Equal(t, 2, c.Tick())
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	require.Equal(t, 4, c.Index())
}

func TestResetPauses(t *testing.T) {
	c := newController(t, 5, false)
	c.Tick()
	c.Tick()
	require.Equal(t, 0, c.Reset())
	require.True(t, c.Paused())
	require.Equal(t, 0, c.Tick())
}

func TestSeekClamps(t *testing.T) {
	c := newController(t, 5, true)
	require.Equal(t, 0, c.Seek(-3))
	require.Equal(t, 4, c.Seek(40))
	require.Equal(t, 2, c.Seek(2))
}

func TestApply(t *testing.T) {
	c := newController(t, 5, true)
	require.Equal(t, 1, c.Apply(StepForward))
	require.Equal(t, 1, c.Apply(Tick))
	require.Equal(t, 1, c.Apply(TogglePause))
	require.Equal(t, 2, c.Apply(Tick))
	require.Equal(t, 1, c.Apply(StepBackward))
	require.Equal(t, 1, c.Apply(Quit))
	require.Equal(t, 1, c.Apply(None))
	require.Equal(t, 0, c.Apply(Reset))
	require.True(t, c.Paused())
}

func TestCommandNames(t *testing.T) {
	for _, cmd := range []Command{None, TogglePause, StepForward, StepBackward, Reset, Tick, Quit} {
		require.Equal(t, cmd, ParseCommand(cmd.String()))
	}
	require.Equal(t, None, ParseCommand("jump"))
	require.Equal(t, StepForward, ParseCommand(" Forward "))
}
