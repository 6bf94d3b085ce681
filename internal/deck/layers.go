package deck

// Mark is the role a layer plays for a given (index, progress) pair.
type Mark int

const (
	Unmarked Mark = iota // beneath the current layer, fully visible
	Active               // the current layer, partially wiped
	Prev                 // before the current layer, fully wiped
)

func (m Mark) String() string {
	switch m {
	case Active:
		return "active"
	case Prev:
		return "prev"
	default:
		return ""
	}
}

// Layer describes how one layer is drawn.
type Layer struct {
	Index int
	Wipe  float64 // fraction wiped away, measured from the bottom edge
	Mark  Mark
}

// Visible returns the fraction of the layer still showing from the top edge.
func (l Layer) Visible() float64 {
	return 1 - l.Wipe
}

// Layers applies (index, progress) to count layers. The same result drives both the
// content and text panes.
func Layers(count, index int, progress float64) []Layer {
	if count < 1 {
		return nil
	}
	index = clampIndex(index, count)
	progress = clampProgress(progress)

	layers := make([]Layer, count)
	for i := range layers {
		switch {
		case i == index:
			layers[i] = Layer{Index: i, Wipe: progress, Mark: Active}
		case i < index:
			layers[i] = Layer{Index: i, Wipe: 1, Mark: Prev}
		default:
			layers[i] = Layer{Index: i, Wipe: 0, Mark: Unmarked}
		}
	}
	return layers
}
