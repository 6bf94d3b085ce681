// Package ui implements the terminal presenter using bubbletea's Elm architecture.
//
// The (view) [Model] owns a [deck.Controller] and is also its sink: the controller reports
// (index, progress) through Render, timeline changes through LayerChanged and the boundary
// indicator through SetMoreContent, and View draws whatever was last reported.
//
// Terminal input is translated into deck events:
//   - mouse wheel : [deck.Wheel] with a fixed delta per notch
//   - left-button drag : [deck.TouchStart], [deck.TouchMove], [deck.TouchEnd], rows scaled to pixels
//   - arrows, page keys, home/end : [deck.Key]
//   - timeline clicks and digits : [deck.Controller.Jump]
//
// Animation frames are driven by [tea.Tick] only while the controller reports it is busy, with at most
// one tick loop in flight.
package ui
