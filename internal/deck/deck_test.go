package deck

import (
	"math"
	"math/rand"
	"testing"
	"time"

	tu "github.com/desertthunder/chapters/internal/testing"
)

func newDeck(t *testing.T, count int) (*Controller, *tu.RecordingSink, *tu.Clock) {
	t.Helper()
	sink := &tu.RecordingSink{}
	clock := tu.NewClock()
	return New(count, WithSink(sink), WithClock(clock.Now)), sink, clock
}

// settle ticks at roughly 60fps until nothing is in flight.
func settle(t *testing.T, c *Controller, clock *tu.Clock) {
	t.Helper()
	for i := 0; c.Busy(); i++ {
		if i > 200 {
			t.Fatal("controller never settled")
		}
		c.Tick(clock.Advance(16 * time.Millisecond))
	}
}

func assertState(t *testing.T, c *Controller, index int, progress float64) {
	t.Helper()
	if c.Index() != index {
		t.Errorf("expected index %d, got %d", index, c.Index())
	}
	if !tu.ApproxEqual(c.Progress(), progress) {
		t.Errorf("expected progress %.4f, got %.4f", progress, c.Progress())
	}
}

func TestProgressModel(t *testing.T) {
	t.Run("New clamps layer count", func(t *testing.T) {
		c := New(0)
		if c.Count() != 1 {
			t.Errorf("expected count 1, got %d", c.Count())
		}
		assertState(t, c, 0, 0)
	})

	t.Run("Start dispatches initial state", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Start()

		if got := sink.LastRender(t); got.Index != 0 || got.Progress != 0 {
			t.Errorf("expected render (0, 0), got %+v", got)
		}
		if len(sink.Layers) != 1 || sink.Layers[0] != 0 {
			t.Errorf("expected timeline update for layer 0, got %v", sink.Layers)
		}
		if !sink.LastMore(t) {
			t.Error("expected more-content indicator to be visible")
		}
	})

	t.Run("Start on a single layer hides the indicator", func(t *testing.T) {
		c, sink, _ := newDeck(t, 1)
		c.Start()
		if sink.LastMore(t) {
			t.Error("expected more-content indicator to be hidden")
		}
	})

	t.Run("SetImmediate clamps index and progress", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.SetImmediate(7, 1.5)
		assertState(t, c, 2, 1)
		if sink.LastMore(t) {
			t.Error("expected more-content indicator hidden on the last layer")
		}

		c.SetImmediate(-3, -0.2)
		assertState(t, c, 0, 0)
	})

	t.Run("SetImmediate is idempotent", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.SetImmediate(1, 0.25)
		c.SetImmediate(1, 0.25)

		if len(sink.Renders) != 2 {
			t.Fatalf("expected 2 renders, got %d", len(sink.Renders))
		}
		if sink.Renders[0] != sink.Renders[1] {
			t.Errorf("expected identical renders, got %+v and %+v", sink.Renders[0], sink.Renders[1])
		}
		if len(sink.Layers) != 1 {
			t.Errorf("expected a single timeline update, got %v", sink.Layers)
		}
	})

	t.Run("Advance within bounds renders only", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Advance(0.3)
		assertState(t, c, 0, 0.3)
		if len(sink.Layers) != 0 {
			t.Errorf("expected no timeline update, got %v", sink.Layers)
		}
	})

	t.Run("Advance commits forward and discards the excess", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Advance(1.2)
		assertState(t, c, 1, 0)

		if got := sink.LastRender(t); got.Index != 1 || got.Progress != 0 {
			t.Errorf("expected render (1, 0), got %+v", got)
		}
		if len(sink.Layers) != 1 || sink.Layers[0] != 1 {
			t.Errorf("expected timeline update for layer 1, got %v", sink.Layers)
		}
	})

	t.Run("Advance carries backward onto the previous layer", func(t *testing.T) {
		c, _, _ := newDeck(t, 3)
		c.SetImmediate(1, 0.2)
		c.Advance(-0.5)
		assertState(t, c, 0, 0.7)
	})

	t.Run("Advance clamps on the last layer", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.SetImmediate(2, 0.5)
		c.Advance(0.9)
		assertState(t, c, 2, 1)
		if sink.LastMore(t) {
			t.Error("expected more-content indicator hidden")
		}
	})

	t.Run("Advance clamps on the first layer", func(t *testing.T) {
		c, _, _ := newDeck(t, 3)
		c.Advance(-0.4)
		assertState(t, c, 0, 0)
	})

	t.Run("Advance ignores NaN", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Advance(nan())
		assertState(t, c, 0, 0)
		if len(sink.Renders) != 0 {
			t.Errorf("expected no renders, got %d", len(sink.Renders))
		}
	})

	t.Run("Jump", func(t *testing.T) {
		c, sink, _ := newDeck(t, 4)
		c.Jump(0)
		if len(sink.Renders) != 0 {
			t.Errorf("expected jump to the current layer to do nothing, got %d renders", len(sink.Renders))
		}

		c.Advance(0.4)
		c.Jump(3)
		assertState(t, c, 3, 0)
		if c.LastInput() != InputJump {
			t.Errorf("expected last input jump, got %s", c.LastInput())
		}
	})
}

func TestWheel(t *testing.T) {
	t.Run("accumulates within the window", func(t *testing.T) {
		c, _, clock := newDeck(t, 3)

		c.Handle(Wheel{DeltaY: 100})
		assertState(t, c, 0, 0.05)

		clock.Advance(50 * time.Millisecond)
		c.Handle(Wheel{DeltaY: 100})
		assertState(t, c, 0, 0.15)

		clock.Advance(300 * time.Millisecond)
		c.Handle(Wheel{DeltaY: 100})
		assertState(t, c, 0, 0.20)
	})

	t.Run("commits forward and resets the accumulator", func(t *testing.T) {
		c, sink, clock := newDeck(t, 3)

		c.Handle(Wheel{DeltaY: 2000})
		assertState(t, c, 1, 0)
		if len(sink.Layers) != 1 || sink.Layers[0] != 1 {
			t.Errorf("expected timeline update for layer 1, got %v", sink.Layers)
		}

		clock.Advance(10 * time.Millisecond)
		c.Handle(Wheel{DeltaY: 100})
		assertState(t, c, 1, 0.05)
	})

	t.Run("backward from an unwiped layer re-anchors on the previous layer", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.SetImmediate(1, 0)
		sink.Reset()

		c.Handle(Wheel{DeltaY: -400})
		assertState(t, c, 0, 0.8)
		if len(sink.Layers) != 1 || sink.Layers[0] != 0 {
			t.Errorf("expected timeline update for layer 0, got %v", sink.Layers)
		}
		if !sink.LastMore(t) {
			t.Error("expected more-content indicator visible")
		}
	})

	t.Run("backward within a layer stops at zero", func(t *testing.T) {
		c, _, clock := newDeck(t, 3)
		c.SetImmediate(1, 0.5)

		c.Handle(Wheel{DeltaY: -400})
		assertState(t, c, 1, 0.3)

		clock.Advance(10 * time.Millisecond)
		c.Handle(Wheel{DeltaY: -400})
		assertState(t, c, 1, 0)

		clock.Advance(10 * time.Millisecond)
		c.Handle(Wheel{DeltaY: -100})
		assertState(t, c, 0, 0.95)
	})

	t.Run("backward on the first layer rewinds its own wipe", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.SetImmediate(0, 0.5)
		c.Handle(Wheel{DeltaY: -200})
		assertState(t, c, 0, 0.4)

		c.SetImmediate(0, 0)
		sink.Reset()
		c.Handle(Wheel{DeltaY: -1000})
		assertState(t, c, 0, 0)
		if len(sink.Layers) != 0 {
			t.Errorf("expected no timeline update, got %v", sink.Layers)
		}
	})

	t.Run("last layer never advances", func(t *testing.T) {
		c, sink, clock := newDeck(t, 2)
		c.Handle(Wheel{DeltaY: 5000})
		assertState(t, c, 1, 0)

		for range 5 {
			clock.Advance(20 * time.Millisecond)
			c.Handle(Wheel{DeltaY: 5000})
		}
		assertState(t, c, 1, 1)
		if sink.LastMore(t) {
			t.Error("expected more-content indicator hidden")
		}
	})

	t.Run("zero delta is ignored", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Handle(Wheel{DeltaY: 0})
		if len(sink.Renders) != 0 {
			t.Errorf("expected no renders, got %d", len(sink.Renders))
		}
	})

	t.Run("cancels a running animation", func(t *testing.T) {
		c, _, _ := newDeck(t, 3)
		c.Handle(Key{Code: KeyArrowDown})
		if !c.Busy() {
			t.Fatal("expected animation to be running")
		}
		c.Handle(Wheel{DeltaY: 100})
		if c.Busy() {
			t.Error("expected wheel input to cancel the animation")
		}
	})
}

func TestTouch(t *testing.T) {
	tc := []struct {
		name     string
		count    int
		index    int
		progress float64
		startY   float64
		endY     float64
		want     int
		wantP    float64
	}{
		{name: "49px snaps back", count: 3, progress: 0.2, startY: 500, endY: 451, want: 0, wantP: 0.2},
		{name: "51px forward below half snaps back", count: 3, startY: 500, endY: 449, want: 0, wantP: 0},
		{name: "forward past half commits", count: 3, startY: 500, endY: 320, want: 1, wantP: 0},
		{name: "forward on the last layer snaps back", count: 3, index: 2, startY: 500, endY: 300, want: 2, wantP: 0},
		{name: "backward below half reveals", count: 3, index: 1, progress: 0.6, startY: 100, endY: 160, want: 1, wantP: 0},
		{name: "backward above half finishes forward", count: 3, index: 1, progress: 0.9, startY: 100, endY: 160, want: 2, wantP: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			c, _, clock := newDeck(t, tt.count)
			c.SetImmediate(tt.index, tt.progress)

			c.Handle(TouchStart{Y: tt.startY})
			c.Handle(TouchMove{Y: tt.endY})
			c.Handle(TouchEnd{Y: tt.endY})
			settle(t, c, clock)

			assertState(t, c, tt.want, tt.wantP)
		})
	}

	t.Run("move follows the finger without committing", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Handle(TouchStart{Y: 500})
		c.Handle(TouchMove{Y: 200})
		assertState(t, c, 0, 1)

		c.Handle(TouchMove{Y: 50})
		assertState(t, c, 0, 1)
		if len(sink.Layers) != 0 {
			t.Errorf("expected no commit mid-gesture, got %v", sink.Layers)
		}
	})

	t.Run("backward drag re-anchors once", func(t *testing.T) {
		c, sink, clock := newDeck(t, 3)
		c.SetImmediate(1, 0)
		sink.Reset()

		c.Handle(TouchStart{Y: 100})
		c.Handle(TouchMove{Y: 160})
		assertState(t, c, 0, 0.8)

		c.Handle(TouchMove{Y: 190})
		assertState(t, c, 0, 0.7)
		if len(sink.Layers) != 1 || sink.Layers[0] != 0 {
			t.Errorf("expected a single timeline update for layer 0, got %v", sink.Layers)
		}

		c.Handle(TouchEnd{Y: 190})
		settle(t, c, clock)
		assertState(t, c, 1, 0)
	})

	t.Run("long backward drag reveals the previous layer", func(t *testing.T) {
		c, _, clock := newDeck(t, 3)
		c.SetImmediate(1, 0)

		c.Handle(TouchStart{Y: 100})
		c.Handle(TouchMove{Y: 280})
		assertState(t, c, 0, 0.4)

		c.Handle(TouchEnd{Y: 280})
		settle(t, c, clock)
		assertState(t, c, 0, 0)
	})

	t.Run("short re-anchored drag restores the starting layer", func(t *testing.T) {
		c, _, clock := newDeck(t, 3)
		c.SetImmediate(1, 0)

		c.Handle(TouchStart{Y: 100})
		c.Handle(TouchMove{Y: 140})
		if c.Index() != 0 {
			t.Fatalf("expected re-anchor onto layer 0, got %d", c.Index())
		}

		c.Handle(TouchEnd{Y: 140})
		settle(t, c, clock)
		assertState(t, c, 1, 0)
	})

	t.Run("move without start is ignored", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Handle(TouchMove{Y: 10})
		c.Handle(TouchEnd{Y: 10})
		if len(sink.Renders) != 0 || c.Busy() {
			t.Error("expected stray touch events to be ignored")
		}
	})

	t.Run("start cancels a running animation", func(t *testing.T) {
		c, _, _ := newDeck(t, 3)
		c.Handle(Key{Code: KeyArrowDown})
		c.Handle(TouchStart{Y: 10})
		if c.Busy() {
			t.Error("expected touch start to cancel the animation")
		}
	})
}

func TestKeys(t *testing.T) {
	t.Run("down wipes forward then commits", func(t *testing.T) {
		c, sink, clock := newDeck(t, 3)
		if !c.Handle(Key{Code: KeyArrowDown}) {
			t.Fatal("expected key to be handled")
		}
		if !c.Busy() {
			t.Fatal("expected an animation")
		}
		settle(t, c, clock)
		assertState(t, c, 1, 0)

		sawFullWipe := false
		for _, r := range sink.Renders {
			if r.Index == 0 && r.Progress == 1 {
				sawFullWipe = true
			}
		}
		if !sawFullWipe {
			t.Error("expected layer 0 to be rendered fully wiped before the commit")
		}
		if len(sink.Layers) != 1 || sink.Layers[0] != 1 {
			t.Errorf("expected timeline update for layer 1, got %v", sink.Layers)
		}
	})

	t.Run("rapid presses step one layer each", func(t *testing.T) {
		c, _, clock := newDeck(t, 4)
		c.Handle(Key{Code: KeyPageDown})
		c.Handle(Key{Code: KeyArrowDown})
		settle(t, c, clock)
		assertState(t, c, 2, 0)
	})

	t.Run("down on the last layer does nothing", func(t *testing.T) {
		c, _, _ := newDeck(t, 2)
		c.SetImmediate(1, 0)
		c.Handle(Key{Code: KeyArrowDown})
		if c.Busy() {
			t.Error("expected no animation on the last layer")
		}
	})

	t.Run("up steps back then wipes in after a delay", func(t *testing.T) {
		c, sink, clock := newDeck(t, 3)
		c.SetImmediate(2, 0)
		sink.Reset()

		if !c.Handle(Key{Code: KeyArrowUp}) {
			t.Fatal("expected key to be handled")
		}
		assertState(t, c, 1, 1)
		if len(sink.Layers) != 1 || sink.Layers[0] != 1 {
			t.Errorf("expected timeline update for layer 1, got %v", sink.Layers)
		}

		c.Tick(clock.Advance(40 * time.Millisecond))
		assertState(t, c, 1, 1)

		settle(t, c, clock)
		assertState(t, c, 1, 0)
	})

	t.Run("up on the first layer does nothing", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Handle(Key{Code: KeyPageUp})
		if c.Busy() || len(sink.Renders) != 0 {
			t.Error("expected nothing to happen on the first layer")
		}
	})

	t.Run("home and end jump without animating", func(t *testing.T) {
		c, sink, _ := newDeck(t, 3)
		c.Advance(0.5)

		c.Handle(Key{Code: KeyEnd})
		assertState(t, c, 2, 0)
		if sink.LastMore(t) {
			t.Error("expected more-content indicator hidden on the last layer")
		}

		c.Handle(Key{Code: KeyHome})
		assertState(t, c, 0, 0)
		if !sink.LastMore(t) {
			t.Error("expected more-content indicator visible on the first layer")
		}
		if c.Busy() {
			t.Error("expected no animation")
		}
	})

	t.Run("unknown keys are not handled", func(t *testing.T) {
		c, _, _ := newDeck(t, 3)
		if c.Handle(Key{Code: KeyUnknown}) {
			t.Error("expected unknown key to pass through")
		}
	})
}

func TestAnimator(t *testing.T) {
	t.Run("converges exactly and completes once", func(t *testing.T) {
		c, sink, clock := newDeck(t, 3)
		c.SetImmediate(0, 0.3)

		calls := 0
		c.animateTo(1, func() { calls++ })
		settle(t, c, clock)

		if got := sink.LastRender(t); got.Progress != 1.0 {
			t.Errorf("expected final render at exactly 1, got %v", got.Progress)
		}
		if calls != 1 {
			t.Errorf("expected onComplete once, got %d", calls)
		}

		c.Tick(clock.Advance(time.Second))
		if calls != 1 {
			t.Errorf("expected onComplete once after extra ticks, got %d", calls)
		}
	})

	t.Run("eases out", func(t *testing.T) {
		start := time.Now()
		a := NewAnimator(300 * time.Millisecond)
		a.Start(0.3, 1, start, nil)

		value, finished, _ := a.Step(start.Add(150 * time.Millisecond))
		if finished {
			t.Fatal("expected animation to still be running")
		}
		if !tu.ApproxEqual(value, 0.3+0.7*0.875) {
			t.Errorf("expected eased value %.4f, got %.4f", 0.3+0.7*0.875, value)
		}

		value, finished, _ = a.Step(start.Add(300 * time.Millisecond))
		if !finished || value != 1 {
			t.Errorf("expected finished at 1, got %v (finished=%v)", value, finished)
		}
		if a.Active() {
			t.Error("expected animator to be idle")
		}
	})

	t.Run("a new animation supersedes the old one", func(t *testing.T) {
		start := time.Now()
		a := NewAnimator(0)
		first := 0
		a.Start(0, 1, start, func() { first++ })
		a.Start(0.5, 0, start, nil)

		value, finished, done := a.Step(start.Add(DefaultDuration))
		if !finished || value != 0 {
			t.Errorf("expected second animation to finish at 0, got %v", value)
		}
		if done != nil {
			done()
		}
		if first != 0 {
			t.Error("expected superseded callback to be dropped")
		}
	})

	t.Run("cancel drops the callback", func(t *testing.T) {
		a := NewAnimator(time.Millisecond)
		called := false
		a.Start(0, 1, time.Now(), func() { called = true })
		a.Cancel()
		if _, finished, _ := a.Step(time.Now().Add(time.Second)); finished || called {
			t.Error("expected cancelled animation to stay idle")
		}
	})

	t.Run("Ease endpoints", func(t *testing.T) {
		if Ease(0) != 0 || Ease(1) != 1 {
			t.Errorf("expected Ease(0)=0 and Ease(1)=1, got %v and %v", Ease(0), Ease(1))
		}
	})
}

func TestLayers(t *testing.T) {
	t.Run("marks", func(t *testing.T) {
		layers := Layers(3, 1, 0.4)
		want := []Layer{
			{Index: 0, Wipe: 1, Mark: Prev},
			{Index: 1, Wipe: 0.4, Mark: Active},
			{Index: 2, Wipe: 0, Mark: Unmarked},
		}
		for i, l := range layers {
			if l != want[i] {
				t.Errorf("layer %d: expected %+v, got %+v", i, want[i], l)
			}
		}
		if !tu.ApproxEqual(layers[1].Visible(), 0.6) {
			t.Errorf("expected active layer 60%% visible, got %v", layers[1].Visible())
		}
	})

	t.Run("clamps inputs", func(t *testing.T) {
		layers := Layers(2, 9, 3)
		if layers[1].Mark != Active || layers[1].Wipe != 1 {
			t.Errorf("expected clamped active layer, got %+v", layers[1])
		}
		if Layers(0, 0, 0) != nil {
			t.Error("expected no layers for an empty deck")
		}
	})
}

func TestMultiSink(t *testing.T) {
	a, b := &tu.RecordingSink{}, &tu.RecordingSink{}
	c := New(2, WithSink(Multi(a, nil, b)))
	c.Start()
	c.Advance(1)

	for name, s := range map[string]*tu.RecordingSink{"a": a, "b": b} {
		if len(s.Renders) != 2 || len(s.Layers) != 2 || len(s.MoreFlag) != 2 {
			t.Errorf("sink %s: expected 2 calls of each kind, got %d/%d/%d", name, len(s.Renders), len(s.Layers), len(s.MoreFlag))
		}
	}
}

func TestInvariants(t *testing.T) {
	c, sink, clock := newDeck(t, 5)
	rng := rand.New(rand.NewSource(7))
	y := 400.0

	check := func(step int) {
		if c.Index() < 0 || c.Index() >= c.Count() {
			t.Fatalf("step %d: index %d out of range", step, c.Index())
		}
		if c.Progress() < 0 || c.Progress() > 1 {
			t.Fatalf("step %d: progress %v out of range", step, c.Progress())
		}
	}

	for step := range 2000 {
		switch rng.Intn(8) {
		case 0:
			c.Handle(Wheel{DeltaY: rng.Float64()*1200 - 600})
		case 1:
			y = rng.Float64() * 800
			c.Handle(TouchStart{Y: y})
		case 2:
			c.Handle(TouchMove{Y: y + rng.Float64()*600 - 300})
		case 3:
			c.Handle(TouchEnd{Y: y + rng.Float64()*600 - 300})
		case 4:
			c.Handle(Key{Code: KeyCode(rng.Intn(7))})
		case 5:
			c.Advance(rng.Float64()*3 - 1.5)
		case 6:
			c.SetImmediate(rng.Intn(9)-2, rng.Float64()*3-1)
		default:
			c.Tick(clock.Advance(time.Duration(rng.Intn(40)) * time.Millisecond))
		}
		check(step)
	}

	for i, r := range sink.Renders {
		if r.Index < 0 || r.Index >= c.Count() || r.Progress < 0 || r.Progress > 1 {
			t.Fatalf("render %d out of range: %+v", i, r)
		}
	}
}

func nan() float64 { return math.NaN() }
