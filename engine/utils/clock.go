package utils

// FrameClock is a manually advanced simulation clock. Time is in seconds
// since the clock was created and only moves when Advance is called, so
// every agent ticked within one frame sees the same Now and Delta.
type FrameClock struct {
	now   float64
	delta float64
	frame uint64
}

// NewFrameClock starting at now
func NewFrameClock(now float64) *FrameClock {
	return &FrameClock{now: now}
}

// Advance moves the clock one frame forward by dt seconds
func (c *FrameClock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.now += dt
	c.frame++
}

// Now seconds
func (c *FrameClock) Now() float64 {
	return c.now
}

// Delta of the last frame in seconds
func (c *FrameClock) Delta() float64 {
	return c.delta
}

// Frame count since creation
func (c *FrameClock) Frame() uint64 {
	return c.frame
}
