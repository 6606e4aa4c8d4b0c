// Package window provides the native rendering surface for the splash
// cursor: a fullscreen, undecorated, always-on-top window with a
// transparent framebuffer, sized to the primary monitor.
package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
}

func (e *WindowError) Error() string {
	return e.msg
}

type Window struct {
	win *glfw.Window

	cursorFn func(x, y float64)
	resizeFn func()
	keyFn    func(key glfw.Key, action glfw.Action)
}

// New initializes GLFW and opens the overlay window with its GL context
// current on the calling thread.
func New() (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{msg: "failed to initialize GLFW: " + err.Error()}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		glfw.Terminate()
		return nil, &WindowError{msg: "no monitor available"}
	}
	mode := monitor.GetVideoMode()

	win, err := glfw.CreateWindow(mode.Width, mode.Height, "splash", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{msg: "failed to create overlay window: " + err.Error()}
	}
	win.SetPos(0, 0)
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win}

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.cursorFn != nil {
			w.cursorFn(x, y)
		}
	})
	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) {
		if w.resizeFn != nil {
			w.resizeFn()
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if w.keyFn != nil {
			w.keyFn(key, action)
		}
	})

	return w, nil
}

// Size returns the logical window dimensions.
func (w *Window) Size() (int, int) {
	return w.win.GetSize()
}

// ContentScale is the monitor's device pixel ratio for this window.
func (w *Window) ContentScale() float64 {
	sx, _ := w.win.GetContentScale()
	return float64(sx)
}

// SetCursorPosHandler installs fn as the pointer-move handler. A nil fn
// detaches it.
func (w *Window) SetCursorPosHandler(fn func(x, y float64)) {
	w.cursorFn = fn
}

// SetResizeHandler installs fn as the resize handler. A nil fn detaches it.
func (w *Window) SetResizeHandler(fn func()) {
	w.resizeFn = fn
}

// SetKeyHandler installs fn as the key handler.
func (w *Window) SetKeyHandler(fn func(key glfw.Key, action glfw.Action)) {
	w.keyFn = fn
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// Destroy releases the window and shuts GLFW down.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
