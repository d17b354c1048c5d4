package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies which mouse button a button event refers to.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// desktopWindow is the implementation of the Window interface. It owns the
// GLFW state and dispatches platform events to the registered callbacks.
type desktopWindow struct {
	title string

	// Current framebuffer size in pixels. Updated by the platform resize
	// callback, which reports framebuffer (not logical) dimensions so the
	// renderer sees real pixel counts on high-DPI displays.
	width  int
	height int

	// Size limits applied to the platform window. Zero means unconstrained.
	minWidth, minHeight int
	maxWidth, maxHeight int

	glfw *glfwState

	onUpdate      func()
	onResize      func(width, height uint32)
	onScroll      func(delta float32)
	onKey         func(keyCode uint32, pressed bool)
	onMouseButton func(button MouseButton, pressed bool, x, y int32)
	onMouseMove   func(x, y int32)
}

// Window wraps the platform window and its event loop. The renderer consumes
// it for surface creation; the engine drives it via ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop
	// iteration, after pending platform events have been dispatched.
	//
	// Parameters:
	//   - callback: function to call (nil disables)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size
	// changes. Dimensions are in pixels and are never zero.
	//
	// Parameters:
	//   - callback: function receiving the new width and height
	SetResizeCallback(callback func(width, height uint32))

	// SetScrollCallback sets the callback for scroll wheel events. Positive
	// delta scrolls up.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll delta
	SetScrollCallback(callback func(delta float32))

	// SetKeyCallback sets the callback for key events. Repeats are reported
	// as additional presses.
	//
	// Parameters:
	//   - callback: function receiving the key code and the press state
	SetKeyCallback(callback func(keyCode uint32, pressed bool))

	// SetMouseButtonCallback sets the callback for mouse button events. The
	// cursor position at the time of the event is included.
	//
	// Parameters:
	//   - callback: function receiving the button, press state, and cursor position
	SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns the wgpu.SurfaceDescriptor for creating a
	// WebGPU surface over this window. Nil when the window has been closed.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true until the window is closed
	IsRunning() bool

	// Close destroys the platform window and releases its resources.
	//
	// Returns:
	//   - error: an error if the window was never created
	Close() error

	// ProcessMessages runs the message loop on the calling goroutine,
	// dispatching events and firing the update callback each iteration.
	// Blocks until the window closes.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

var _ Window = &desktopWindow{}

// NewWindow creates and opens a desktop window with the specified options.
// Window creation must happen on the main goroutine; the constructor locks
// the calling OS thread for the lifetime of the message loop.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &desktopWindow{
		title:  "lumen",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := w.open(); err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	return w
}

func (w *desktopWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *desktopWindow) SetResizeCallback(callback func(width, height uint32)) {
	w.onResize = callback
}

func (w *desktopWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *desktopWindow) SetKeyCallback(callback func(keyCode uint32, pressed bool)) {
	w.onKey = callback
}

func (w *desktopWindow) SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int32)) {
	w.onMouseButton = callback
}

func (w *desktopWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *desktopWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.glfw == nil {
		return nil
	}
	return w.glfw.surfaceDescriptor()
}

func (w *desktopWindow) IsRunning() bool {
	return w.glfw != nil && w.glfw.alive()
}

func (w *desktopWindow) Close() error {
	if w.glfw == nil {
		return fmt.Errorf("window is not open")
	}
	w.glfw.close()
	return nil
}

func (w *desktopWindow) ProcessMessages() {
	for w.IsRunning() {
		w.glfw.poll()
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *desktopWindow) Width() int {
	return w.width
}

func (w *desktopWindow) Height() int {
	return w.height
}
