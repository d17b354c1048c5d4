package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwState holds the live GLFW window and its run flag.
type glfwState struct {
	win     *glfw.Window
	running bool
}

// open creates the GLFW window, applies size limits, and installs the event
// callbacks that forward into the desktopWindow's registered handlers.
func (w *desktopWindow) open() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU owns the swapchain, so no OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	if w.minWidth > 0 || w.minHeight > 0 || w.maxWidth > 0 || w.maxHeight > 0 {
		win.SetSizeLimits(limitOrDontCare(w.minWidth), limitOrDontCare(w.minHeight),
			limitOrDontCare(w.maxWidth), limitOrDontCare(w.maxHeight))
	}

	g := &glfwState{win: win, running: true}
	w.glfw = g

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			g.running = false
			win.SetShouldClose(true)
			return
		}
		if w.onKey != nil {
			// Repeats count as presses.
			w.onKey(uint32(key), action != glfw.Release)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.onMouseButton == nil {
			return
		}
		var b MouseButton
		switch button {
		case glfw.MouseButtonLeft:
			b = MouseButtonLeft
		case glfw.MouseButtonRight:
			b = MouseButtonRight
		case glfw.MouseButtonMiddle:
			b = MouseButtonMiddle
		default:
			return
		}
		x, y := win.GetCursorPos()
		w.onMouseButton(b, action == glfw.Press, int32(x), int32(y))
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(x), int32(y))
		}
	})

	// Resize events report framebuffer size, which differs from the logical
	// window size on high-DPI displays. The swapchain needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(uint32(width), uint32(height))
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// limitOrDontCare maps a zero limit to glfw.DontCare.
func limitOrDontCare(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func (g *glfwState) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwState) alive() bool {
	return g.running && !g.win.ShouldClose()
}

func (g *glfwState) close() {
	g.running = false
	g.win.SetShouldClose(true)
	g.win.Destroy()
	glfw.Terminate()
}

// poll dispatches pending events without blocking.
func (g *glfwState) poll() {
	glfw.PollEvents()
}
