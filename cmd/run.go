package cmd

import (
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/softglow/splash/internal/config"
	"github.com/softglow/splash/internal/effect"
	"github.com/softglow/splash/internal/gpu"
	"github.com/softglow/splash/pkg/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the overlay",
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()
}

// overlayHost adapts the GLFW window to the effect's host boundary. Frames
// are pumped from the main loop rather than an external scheduler, so
// RequestFrame just parks the callback until the next loop iteration.
type overlayHost struct {
	win   *window.Window
	frame func()
}

func (h *overlayHost) Size() (int, int)     { return h.win.Size() }
func (h *overlayHost) ScaleFactor() float64 { return h.win.ContentScale() }

// SetBackingSize is a no-op: GLFW keeps the framebuffer sized to the
// window.
func (h *overlayHost) SetBackingSize(pw, ph int) {}

func (h *overlayHost) AcquirePipeline() (gpu.Pipeline, error) {
	return gpu.NewGL(), nil
}

func (h *overlayHost) RequestFrame(fn func()) func() {
	h.frame = fn
	return func() {
		h.frame = nil
	}
}

func (h *overlayHost) AttachPointer(fn func(rawX, rawY float64)) func() {
	h.win.SetCursorPosHandler(fn)
	return func() {
		h.win.SetCursorPosHandler(nil)
	}
}

func (h *overlayHost) AttachResize(fn func()) func() {
	h.win.SetResizeHandler(fn)
	return func() {
		h.win.SetResizeHandler(nil)
	}
}

func (h *overlayHost) pump() {
	fn := h.frame
	h.frame = nil
	if fn != nil {
		fn()
	}
}

func Run(cmd *cobra.Command, args []string) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	settings, err := config.LoadSettings(logger)
	if err != nil {
		logger.Warn("failed to load settings, using defaults", zap.Error(err))
		settings = config.Defaults()
	}

	win, err := window.New()
	if err != nil {
		log.Fatal("Failed to create overlay window:", err)
	}
	defer win.Destroy()

	win.SetKeyHandler(func(key glfw.Key, action glfw.Action) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	host := &overlayHost{win: win}
	eff := effect.New(host, effect.Options{
		Logger: logger,
		Track:  settings.TrackParams(),
		Cycle:  settings.Cycle(),
	})
	eff.Mount()
	defer eff.Unmount()

	// Clear first, then let event dispatch inject splats between clears,
	// then present.
	for !win.ShouldClose() {
		select {
		case <-interrupt:
			win.SetShouldClose(true)
			continue
		default:
		}

		host.pump()
		win.PollEvents()
		win.SwapBuffers()
	}
}
