package deck

// Event is the union of input events understood by [Controller.Handle].
type Event interface {
	isEvent()
}

// Wheel is a wheel tick. Positive DeltaY moves forward.
type Wheel struct {
	DeltaY float64
}

// TouchStart begins a drag gesture at vertical position Y (pixels).
type TouchStart struct {
	Y float64
}

// TouchMove continues the active drag gesture.
type TouchMove struct {
	Y float64
}

// TouchEnd releases the active drag gesture.
type TouchEnd struct {
	Y float64
}

// Key is a navigation key press.
type Key struct {
	Code KeyCode
}

var (
	_ Event = Wheel{}
	_ Event = TouchStart{}
	_ Event = TouchMove{}
	_ Event = TouchEnd{}
	_ Event = Key{}
)

func (Wheel) isEvent()      {}
func (TouchStart) isEvent() {}
func (TouchMove) isEvent()  {}
func (TouchEnd) isEvent()   {}
func (Key) isEvent()        {}

// KeyCode enumerates the navigation keys.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyArrowDown
	KeyPageDown
	KeyArrowUp
	KeyPageUp
	KeyHome
	KeyEnd
)

func (k KeyCode) String() string {
	switch k {
	case KeyArrowDown:
		return "ArrowDown"
	case KeyPageDown:
		return "PageDown"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyPageUp:
		return "PageUp"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Input identifies which kind of input caused the most recent state change.
type Input int

const (
	InputNone Input = iota
	InputStart
	InputWheel
	InputTouch
	InputKey
	InputJump
)

func (i Input) String() string {
	switch i {
	case InputStart:
		return "start"
	case InputWheel:
		return "wheel"
	case InputTouch:
		return "touch"
	case InputKey:
		return "key"
	case InputJump:
		return "jump"
	default:
		return "none"
	}
}
