package deck

// Sink receives the controller's output. Calls are synchronous and happen after the state
// they describe has been fully updated, so progress is always within [0,1].
type Sink interface {
	Render(index int, progress float64) // Render applies (index, progress) to the visual layers
	LayerChanged(index int)             // LayerChanged moves the timeline's active marker
	SetMoreContent(visible bool)        // SetMoreContent toggles the "more below" indicator
}

// NopSink discards all output.
type NopSink struct{}

func (NopSink) Render(int, float64) {}
func (NopSink) LayerChanged(int)    {}
func (NopSink) SetMoreContent(bool) {}

// multiSink fans calls out to several sinks in order.
type multiSink []Sink

// Multi returns a [Sink] that forwards every call to each of sinks in order.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) Render(index int, progress float64) {
	for _, s := range m {
		s.Render(index, progress)
	}
}

func (m multiSink) LayerChanged(index int) {
	for _, s := range m {
		s.LayerChanged(index)
	}
}

func (m multiSink) SetMoreContent(visible bool) {
	for _, s := range m {
		s.SetMoreContent(visible)
	}
}
