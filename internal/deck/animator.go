package deck

import (
	"math"
	"time"
)

// DefaultDuration is how long a settle animation takes.
const DefaultDuration = 300 * time.Millisecond

type phase int

const (
	idle phase = iota
	animating
)

// Animator interpolates a value toward a target with a cubic ease-out.
//
// It holds at most one animation. [Animator.Start] replaces whatever was running, and the
// replaced animation's completion callback is dropped.
type Animator struct {
	phase    phase
	from     float64
	target   float64
	started  time.Time
	duration time.Duration
	done     func()
}

// NewAnimator returns an idle animator. A non-positive duration falls back to [DefaultDuration].
func NewAnimator(d time.Duration) *Animator {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Animator{duration: d}
}

// Start begins animating from -> target at now. done runs once when the target is reached.
func (a *Animator) Start(from, target float64, now time.Time, done func()) {
	a.phase = animating
	a.from = from
	a.target = target
	a.started = now
	a.done = done
}

// Cancel drops the running animation without calling its completion callback.
func (a *Animator) Cancel() {
	a.phase = idle
	a.done = nil
}

// Active reports whether an animation is running.
func (a *Animator) Active() bool {
	return a.phase == animating
}

// Target returns the running animation's target.
func (a *Animator) Target() float64 {
	return a.target
}

// Step advances to now and returns the interpolated value. When finished is true the value is
// exactly the target, the animator is idle again and done is the completion callback (possibly nil).
func (a *Animator) Step(now time.Time) (value float64, finished bool, done func()) {
	if a.phase != animating {
		return a.target, false, nil
	}

	t := float64(now.Sub(a.started)) / float64(a.duration)
	if t < 0 {
		t = 0
	}
	if t >= 1 {
		value, done = a.Finish()
		return value, true, done
	}
	return a.from + (a.target-a.from)*Ease(t), false, nil
}

// Finish jumps straight to the target and returns it with the completion callback.
func (a *Animator) Finish() (float64, func()) {
	done := a.done
	a.phase = idle
	a.done = nil
	return a.target, done
}

// Ease is the cubic ease-out curve 1-(1-t)^3.
func Ease(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
