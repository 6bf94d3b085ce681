package deck

import "math"

func (c *Controller) onTouchStart(y float64) {
	c.cancel()
	c.touch = touchAnchor{active: true, startY: y, startProgress: c.progress}
}

// onTouchMove follows the finger directly; it never commits a layer mid-gesture.
func (c *Controller) onTouchMove(y float64) {
	if !c.touch.active {
		return
	}
	diff := c.touch.startY - y
	delta := diff / c.tuning.TouchDivisor

	switch {
	case diff >= 0, c.touch.startProgress > 0, c.touch.reanchored:
		c.progress = clampProgress(c.touch.startProgress + delta)
		c.render()
	case c.index > 0:
		// Dragging back from an unwiped layer: the previous layer becomes current, fully
		// wiped, and the rest of the gesture continues from there.
		c.index--
		c.touch.startProgress = 1
		c.touch.reanchored = true
		c.progress = clampProgress(1 + delta)
		c.render()
		c.layerChanged()
	}
}

// onTouchEnd settles the gesture with an animation.
func (c *Controller) onTouchEnd(y float64) {
	if !c.touch.active {
		return
	}
	anchor := c.touch
	c.touch = touchAnchor{}

	diff := anchor.startY - y
	hasNext := c.index < c.count-1

	switch {
	case math.Abs(diff) <= c.tuning.TouchThreshold:
		c.snapBack(anchor)
	case diff > 0 && c.progress > 0.5 && hasNext:
		c.animateTo(1, c.commitForward)
	case diff > 0:
		c.snapBack(anchor)
	case c.progress < 0.5:
		c.animateTo(0, nil)
	default:
		// A backward drag that leaves the layer mostly wiped finishes the wipe forward.
		c.animateTo(1, c.commitForward)
	}
}

// snapBack returns to where the gesture started. A re-anchored gesture started on the layer
// after the current one, so it wipes forward and commits back onto it.
func (c *Controller) snapBack(anchor touchAnchor) {
	if anchor.reanchored {
		c.animateTo(1, c.commitForward)
		return
	}
	c.animateTo(anchor.startProgress, nil)
}
