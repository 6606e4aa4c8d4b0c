//go:build js && wasm

package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/softglow/splash/internal/effect"
	"github.com/softglow/splash/internal/gpu"
)

// browserHost adapts the page environment to the effect's host boundary:
// requestAnimationFrame for scheduling, mousemove/resize listeners for
// input, and a full-viewport canvas as the surface.
type browserHost struct {
	window js.Value
	canvas js.Value

	frameFn func()
	raf     js.Func
}

func newBrowserHost(canvas js.Value) *browserHost {
	h := &browserHost{
		window: js.Global().Get("window"),
		canvas: canvas,
	}
	h.raf = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn := h.frameFn
		h.frameFn = nil
		if fn != nil {
			fn()
		}
		return nil
	})
	return h
}

func (h *browserHost) Size() (int, int) {
	return h.window.Get("innerWidth").Int(), h.window.Get("innerHeight").Int()
}

func (h *browserHost) ScaleFactor() float64 {
	dpr := h.window.Get("devicePixelRatio")
	if dpr.IsUndefined() {
		return 1
	}
	return dpr.Float()
}

func (h *browserHost) SetBackingSize(pw, ph int) {
	h.canvas.Set("width", pw)
	h.canvas.Set("height", ph)
}

func (h *browserHost) AcquirePipeline() (gpu.Pipeline, error) {
	return gpu.NewWebGL(h.canvas), nil
}

func (h *browserHost) RequestFrame(fn func()) func() {
	h.frameFn = fn
	id := js.Global().Call("requestAnimationFrame", h.raf)
	return func() {
		js.Global().Call("cancelAnimationFrame", id)
		h.frameFn = nil
	}
}

func (h *browserHost) AttachPointer(fn func(rawX, rawY float64)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		fn(e.Get("clientX").Float(), e.Get("clientY").Float())
		return nil
	})
	h.window.Call("addEventListener", "mousemove", cb)
	return func() {
		h.window.Call("removeEventListener", "mousemove", cb)
		cb.Release()
	}
}

func (h *browserHost) AttachResize(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	h.window.Call("addEventListener", "resize", cb)
	return func() {
		h.window.Call("removeEventListener", "resize", cb)
		cb.Release()
	}
}

func (h *browserHost) release() {
	h.raf.Release()
}

// createOverlayCanvas builds the rendering surface: full viewport, above
// all other content, and never intercepting pointer events meant for the
// page underneath.
func createOverlayCanvas() js.Value {
	doc := js.Global().Get("document")
	canvas := doc.Call("createElement", "canvas")

	style := canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "0")
	style.Set("left", "0")
	style.Set("width", "100vw")
	style.Set("height", "100vh")
	style.Set("pointerEvents", "none")
	style.Set("zIndex", "9999")

	doc.Get("body").Call("appendChild", canvas)
	return canvas
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	canvas := createOverlayCanvas()
	host := newBrowserHost(canvas)
	eff := effect.New(host, effect.Options{Logger: logger})
	eff.Mount()

	// Tear down with the page, before the runtime disappears under us.
	unload := js.FuncOf(func(this js.Value, args []js.Value) any {
		eff.Unmount()
		host.release()
		canvas.Call("remove")
		return nil
	})
	js.Global().Get("window").Call("addEventListener", "beforeunload", unload)

	select {}
}
