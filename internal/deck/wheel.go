package deck

import "math"

// onWheel accumulates deltaY over the wheel window and applies half of the scaled total.
//
// Trackpads send many small deltas and mouse wheels a few large ones; accumulating within
// the window evens them out while still updating on every event.
func (c *Controller) onWheel(deltaY float64) {
	if deltaY == 0 || math.IsNaN(deltaY) {
		return
	}
	c.cancel()

	now := c.now()
	if now.Sub(c.wheel.last) > c.tuning.WheelWindow {
		c.wheel.accumulated = 0
	}
	c.wheel.accumulated += deltaY
	c.wheel.last = now

	step := c.wheel.accumulated / c.tuning.WheelDivisor * c.tuning.WheelFactor
	c.trace.Do(func() {
		c.logger.Debug("wheel", "delta", deltaY, "accumulated", c.wheel.accumulated, "step", step)
	})

	if deltaY > 0 {
		c.wheelForward(step)
		return
	}
	c.wheelBackward(step)
}

// wheelForward wipes the current layer and commits once it is fully wiped.
func (c *Controller) wheelForward(step float64) {
	c.progress = clampProgress(c.progress + step)
	if c.progress >= 1 && c.index < c.count-1 {
		c.commitForward()
		return
	}
	c.render()
}

// wheelBackward un-wipes the current layer. From an unwiped layer it re-anchors on the
// previous layer at progress 1 and applies the step there.
func (c *Controller) wheelBackward(step float64) {
	if c.progress == 0 && c.index > 0 {
		c.index--
		c.progress = clampProgress(1 + step)
		c.render()
		c.layerChanged()
	} else {
		c.progress = clampProgress(c.progress + step)
		c.render()
	}

	if c.progress == 0 {
		c.wheel.accumulated = 0
	}
}
