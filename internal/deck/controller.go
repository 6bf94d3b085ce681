package deck

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Tuning holds the constants that shape input handling and animation.
type Tuning struct {
	WheelWindow    time.Duration // idle time after which the wheel accumulator resets
	WheelDivisor   float64       // accumulated delta per unit of scroll amount
	WheelFactor    float64       // fraction of the scroll amount applied as progress
	TouchDivisor   float64       // drag distance (px) per unit of progress
	TouchThreshold float64       // drags at or below this distance (px) snap back
	Duration       time.Duration // settle animation length
	StepBackDelay  time.Duration // pause before a stepped-back layer starts wiping in
}

// DefaultTuning returns the stock input and animation constants.
func DefaultTuning() Tuning {
	return Tuning{
		WheelWindow:    200 * time.Millisecond,
		WheelDivisor:   1000,
		WheelFactor:    0.5,
		TouchDivisor:   300,
		TouchThreshold: 50,
		Duration:       DefaultDuration,
		StepBackDelay:  50 * time.Millisecond,
	}
}

// withDefaults fills zero fields from [DefaultTuning].
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.WheelWindow <= 0 {
		t.WheelWindow = d.WheelWindow
	}
	if t.WheelDivisor <= 0 {
		t.WheelDivisor = d.WheelDivisor
	}
	if t.WheelFactor <= 0 {
		t.WheelFactor = d.WheelFactor
	}
	if t.TouchDivisor <= 0 {
		t.TouchDivisor = d.TouchDivisor
	}
	if t.TouchThreshold <= 0 {
		t.TouchThreshold = d.TouchThreshold
	}
	if t.Duration <= 0 {
		t.Duration = d.Duration
	}
	if t.StepBackDelay <= 0 {
		t.StepBackDelay = d.StepBackDelay
	}
	return t
}

// Option configures a [Controller].
type Option func(*Controller)

// WithSink sets the output sink. Defaults to [NopSink].
func WithSink(s Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithClock sets the wall clock used for wheel accumulation and animation start times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the debug logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTuning overrides the input and animation constants. Zero fields keep their defaults.
func WithTuning(t Tuning) Option {
	return func(c *Controller) {
		c.tuning = t.withDefaults()
	}
}

// wheelState is the wheel accumulator.
type wheelState struct {
	accumulated float64
	last        time.Time
}

// touchAnchor is captured when a drag starts and read until it ends.
type touchAnchor struct {
	active        bool
	startY        float64
	startProgress float64
	reanchored    bool // the gesture moved the anchor onto the previous layer
}

// deferred is an action scheduled for a later tick.
type deferred struct {
	due time.Time
	run func()
}

// Controller owns the progress state of one deck and every input path that mutates it.
//
// A Controller is not safe for concurrent use; all calls belong on one goroutine.
type Controller struct {
	count    int
	index    int
	progress float64

	wheel   wheelState
	touch   touchAnchor
	anim    *Animator
	pending *deferred
	input   Input

	sink   Sink
	now    func() time.Time
	logger *log.Logger
	tuning Tuning
	trace  rate.Sometimes
}

// New creates a controller for count layers (at least one) positioned at layer 0, progress 0.
func New(count int, opts ...Option) *Controller {
	if count < 1 {
		count = 1
	}
	c := &Controller{
		count:  count,
		sink:   NopSink{},
		now:    time.Now,
		logger: log.New(io.Discard),
		tuning: DefaultTuning(),
		trace:  rate.Sometimes{Interval: 250 * time.Millisecond},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.anim = NewAnimator(c.tuning.Duration)
	return c
}

// Count returns the number of layers.
func (c *Controller) Count() int { return c.count }

// Index returns the current layer.
func (c *Controller) Index() int { return c.index }

// Progress returns how far the current layer has been wiped.
func (c *Controller) Progress() float64 { return c.progress }

// LastInput reports which input kind produced the latest change.
func (c *Controller) LastInput() Input { return c.input }

// Start dispatches the initial state to every sink.
func (c *Controller) Start() {
	c.input = InputStart
	c.render()
	c.layerChanged()
}

// Handle routes one input event. It reports whether the event was consumed, in which case
// the caller should suppress the input's default behaviour.
func (c *Controller) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case Wheel:
		c.input = InputWheel
		c.onWheel(ev.DeltaY)
		return true
	case TouchStart:
		c.input = InputTouch
		c.onTouchStart(ev.Y)
		return true
	case TouchMove:
		c.input = InputTouch
		c.onTouchMove(ev.Y)
		return true
	case TouchEnd:
		c.input = InputTouch
		c.onTouchEnd(ev.Y)
		return true
	case Key:
		return c.onKey(ev.Code)
	}
	return false
}

// Jump moves straight to index at progress 0. It does nothing when index is already current.
func (c *Controller) Jump(index int) {
	if clampIndex(index, c.count) == c.index {
		return
	}
	c.input = InputJump
	c.SetImmediate(index, 0)
}

// SetImmediate places the deck at (index, progress) without animating. Both values are
// clamped. Any running animation or scheduled action is cancelled.
func (c *Controller) SetImmediate(index int, progress float64) {
	c.cancel()
	prev := c.index
	c.index = clampIndex(index, c.count)
	c.progress = clampProgress(progress)
	c.render()
	if c.index != prev {
		c.layerChanged()
	}
}

// Advance adds delta to the current progress. Crossing 1 with a layer ahead commits to the
// next layer at progress 0, discarding the excess. Dropping below 0 with a layer behind moves
// onto the previous layer at 1 plus the remaining (negative) delta.
func (c *Controller) Advance(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	c.cancel()
	p := c.progress + delta
	switch {
	case p >= 1 && c.index < c.count-1:
		c.commitForward()
	case p < 0 && c.index > 0:
		c.index--
		c.progress = clampProgress(1 + p)
		c.render()
		c.layerChanged()
	default:
		c.progress = clampProgress(p)
		c.render()
	}
}

// Busy reports whether an animation or scheduled action still needs ticks.
func (c *Controller) Busy() bool {
	return c.pending != nil || c.anim.Active()
}

// Tick runs any due scheduled action and steps the animation to now. It returns [Controller.Busy].
func (c *Controller) Tick(now time.Time) bool {
	if c.pending != nil && !now.Before(c.pending.due) {
		run := c.pending.run
		c.pending = nil
		run()
	}

	if c.anim.Active() {
		value, finished, done := c.anim.Step(now)
		c.progress = clampProgress(value)
		c.render()
		if finished && done != nil {
			done()
		}
	}
	return c.Busy()
}

// animateTo starts settling progress toward target.
func (c *Controller) animateTo(target float64, done func()) {
	c.pending = nil
	c.anim.Start(c.progress, clampProgress(target), c.now(), done)
}

// after schedules run once d has elapsed.
func (c *Controller) after(d time.Duration, run func()) {
	c.pending = &deferred{due: c.now().Add(d), run: run}
}

// cancel drops the running animation and any scheduled action.
func (c *Controller) cancel() {
	c.anim.Cancel()
	c.pending = nil
}

// finish completes scheduled actions and animations immediately, including their callbacks.
func (c *Controller) finish() {
	for c.Busy() {
		if c.pending != nil {
			run := c.pending.run
			c.pending = nil
			run()
			continue
		}
		value, done := c.anim.Finish()
		c.progress = clampProgress(value)
		c.render()
		if done != nil {
			done()
		}
	}
}

// commitForward moves onto the next layer at progress 0. On the last layer it pins progress at 1.
func (c *Controller) commitForward() {
	if c.index >= c.count-1 {
		c.progress = 1
		c.render()
		return
	}
	c.index++
	c.progress = 0
	c.wheel.accumulated = 0
	c.render()
	c.layerChanged()
	c.logger.Debug("layer committed", "index", c.index, "input", c.input)
}

func (c *Controller) render() {
	c.sink.Render(c.index, c.progress)
}

func (c *Controller) layerChanged() {
	c.sink.LayerChanged(c.index)
	c.sink.SetMoreContent(c.index < c.count-1)
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}

func clampProgress(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
