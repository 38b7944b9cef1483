// Package playback holds the cursor that scrubs through a generated
// trace and the dispatcher that turns host input into cursor commands.
//
// Nothing in this package locks. A host is expected to feed key events
// and timer ticks through a single queue (see Dispatcher) so that no two
// operations ever run at the same time.
package playback

import "errors"

var ErrNoFrames = errors.New("playback: nothing to play, trace has no frames")

// Controller is a clamped cursor over a sequence of frames. It only
// ever stores an index; the frames themselves are owned elsewhere and
// are never touched.
type Controller struct {
	index  int
	last   int
	paused bool
}

// New returns a Controller over a sequence of n frames, positioned at
// the first frame
func New(n int, paused bool) (*Controller, error) {
	if n < 1 {
		return nil, ErrNoFrames
	}
	return &Controller{
		last:   n - 1,
		paused: paused,
	}, nil
}

// Index returns the current frame index
func (c *Controller) Index() int {
	return c.index
}

// Len returns the number of frames the Controller scrubs over
func (c *Controller) Len() int {
	return c.last + 1
}

// Paused reports whether Tick is currently a no-op
func (c *Controller) Paused() bool {
	return c.paused
}

// AtEnd reports whether the cursor sits on the last frame
func (c *Controller) AtEnd() bool {
	return c.index == c.last
}

func (c *Controller) StepForward() int {
	if c.index < c.last {
		c.index++
	}
	return c.index
}

func (c *Controller) StepBackward() int {
	if c.index > 0 {
		c.index--
	}
	return c.index
}

func (c *Controller) TogglePause() int {
	c.paused = !c.paused
	return c.index
}

// Reset rewinds to the first frame and pauses playback
func (c *Controller) Reset() int {
	c.index = 0
	c.paused = true
	return c.index
}

// Tick advances one frame unless playback is paused. It is meant to be
// called by an external fixed interval timer.
func (c *Controller) Tick() int {
	if c.paused {
		return c.index
	}
	return c.StepForward()
}

// Seek moves to frame i, clamped to the valid range
func (c *Controller) Seek(i int) int {
	switch {
	case i < 0:
		c.index = 0
	case i > c.last:
		c.index = c.last
	default:
		c.index = i
	}
	return c.index
}

// Apply runs a single command and returns the resulting index. Quit and
// None leave the cursor alone.
func (c *Controller) Apply(cmd Command) int {
	switch cmd {
	case TogglePause:
		return c.TogglePause()
	case StepForward:
		return c.StepForward()
	case StepBackward:
		return c.StepBackward()
	case Reset:
		return c.Reset()
	case Tick:
		return c.Tick()
	}
	return c.index
}
