// Package viz renders scenes in the terminal.
//
// The live view is a Bubble Tea program that calls [scene.Scene.Tick] once
// per frame and draws every drawable onto a braille [Canvas]:
//
//   - [Model]: the Bubble Tea model driving a scene
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Viewport]: world-to-canvas mapping that grows to fit the scene
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single frame while paused
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
