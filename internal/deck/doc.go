// Package deck implements the progress state machine behind the chapter presenter.
//
// A deck is a linear sequence of layers with a current index and a wipe progress in [0,1].
// Progress 0 means the current layer is fully visible; progress 1 means it has been wiped away
// and the next layer is showing. Layers before the current one are always fully wiped and
// layers after it are always fully visible beneath it.
//
// # Input
//
// Raw input arrives as the [Event] union and is consumed by [Controller.Handle]:
//
//  1. [Wheel] : accumulated over a short window, then applied as a progress step
//  2. [TouchStart], [TouchMove], [TouchEnd] : anchor-based drag, settled with an animation on release
//  3. [Key] : discrete navigation (step forward, step back, first, last)
//
// Forward and backward transitions are deliberately not mirror images. Moving forward adds
// to the current layer's progress and commits once it reaches 1. Moving backward from a layer
// that is not wiped at all re-anchors onto the previous layer at progress 1 and wipes it back in.
//
// # Animation
//
// The [Animator] is an explicit Idle/Animating state machine stepped by [Controller.Tick].
// Starting a new animation replaces the previous one, so two interpolations never write
// progress at the same time.
//
// # Output
//
// Every mutation is followed by a synchronous call to the [Sink]. Out-of-range indexes and
// progress values are clamped rather than rejected; the controller never returns errors.
// [Layers] describes how a given (index, progress) pair applies to each layer.
package deck
