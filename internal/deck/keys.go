package deck

// onKey handles discrete navigation. Keyboard input always completes whatever is in flight
// first, so rapid presses step through layers one at a time.
func (c *Controller) onKey(code KeyCode) bool {
	switch code {
	case KeyArrowDown, KeyPageDown:
		c.input = InputKey
		c.finish()
		if c.index < c.count-1 {
			c.animateTo(1, c.commitForward)
		}
		return true
	case KeyArrowUp, KeyPageUp:
		c.input = InputKey
		c.finish()
		if c.index > 0 {
			c.index--
			c.progress = 1
			c.render()
			c.layerChanged()
			c.after(c.tuning.StepBackDelay, func() { c.animateTo(0, nil) })
		}
		return true
	case KeyHome:
		c.input = InputKey
		c.SetImmediate(0, 0)
		return true
	case KeyEnd:
		c.input = InputKey
		c.SetImmediate(c.count-1, 0)
		return true
	}
	return false
}
