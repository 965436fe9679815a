package anim

import "time"

// Mode is the current animation.
type Mode int

const (
	Logo Mode = iota
	HappyLoop
	Peck
	Success
)

func (m Mode) String() string {
	switch m {
	case HappyLoop:
		return "happy_loop"
	case Peck:
		return "peck"
	case Success:
		return "success"
	default:
		return "logo"
	}
}

const (
	// DefaultInterval is the time between frame advances.
	DefaultInterval = 150 * time.Millisecond

	// PeckLoops is the number of full Peck cycles played per unlock.
	PeckLoops = 2

	successLoops = 1
)

// Event reports a loop-count transition produced by Tick.
type Event int

const (
	NoEvent Event = iota
	// PeckDone fires once Peck has played PeckLoops cycles. The controller is
	// back in Logo when it is returned.
	PeckDone
	// SuccessDone fires once the Success sequence has played. The controller
	// stays on the first Success frame; the caller picks the next mode.
	SuccessDone
)

// Controller is the animation state machine. It is not safe for concurrent
// use; the UI thread owns it.
type Controller struct {
	mode      Mode
	frame     int
	loopsLeft int
	reverse   bool
	interval  time.Duration
	lastTick  time.Time
}

// New creates a controller in Logo mode. A non-positive interval selects
// DefaultInterval.
func New(interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{interval: interval}
}

func (c *Controller) Mode() Mode              { return c.mode }
func (c *Controller) FrameIndex() int         { return c.frame }
func (c *Controller) LoopsLeft() int          { return c.loopsLeft }
func (c *Controller) Reverse() bool           { return c.reverse }
func (c *Controller) Interval() time.Duration { return c.interval }

// Active reports whether ticks can advance frames.
func (c *Controller) Active() bool {
	return c.mode != Logo
}

// SetMode switches to mode, restarting it only when it differs from the
// current one.
func (c *Controller) SetMode(mode Mode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	c.frame = 0
	c.loopsLeft = 0
}

// StartHappyLoop switches to the idle loop.
func (c *Controller) StartHappyLoop() {
	c.SetMode(HappyLoop)
}

// StartPeck restarts the working animation.
func (c *Controller) StartPeck() {
	c.mode = Peck
	c.frame = 0
	c.loopsLeft = PeckLoops
}

// StartSuccess plays the outcome animation once; reverse plays it backwards.
func (c *Controller) StartSuccess(reverse bool) {
	c.reverse = reverse
	c.mode = Success
	c.frame = 0
	c.loopsLeft = successLoops
}

// Set returns the frame set for the current mode.
func (c *Controller) Set() Set {
	switch c.mode {
	case HappyLoop:
		return SetHappyLoop
	case Peck:
		return SetPeck
	case Success:
		if c.reverse {
			return SetSuccessReverse
		}
		return SetSuccess
	default:
		return SetLogo
	}
}

// Frame returns the asset name currently shown.
func (c *Controller) Frame() string {
	frames := Frames(c.Set())
	idx := c.frame
	if idx >= len(frames) {
		idx = len(frames) - 1
	}
	return frames[idx]
}

// Tick advances one frame when the controller is active and at least one
// interval has passed since the previous advance. It reports whether a frame
// advanced and any loop-count transition.
func (c *Controller) Tick(now time.Time) (bool, Event) {
	if !c.Active() {
		return false, NoEvent
	}
	if now.Sub(c.lastTick) < c.interval {
		return false, NoEvent
	}
	c.lastTick = now

	count := len(Frames(c.Set()))
	c.frame = (c.frame + 1) % count
	if c.frame != 0 {
		return true, NoEvent
	}

	switch c.mode {
	case Peck:
		if c.loopsLeft > 0 {
			c.loopsLeft--
		}
		if c.loopsLeft == 0 {
			c.SetMode(Logo)
			return true, PeckDone
		}
	case Success:
		if c.loopsLeft > 0 {
			c.loopsLeft--
		}
		if c.loopsLeft == 0 {
			return true, SuccessDone
		}
	}
	return true, NoEvent
}
