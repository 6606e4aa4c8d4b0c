// Package effect wires the pointer tracker, color cycle and GPU pipeline to
// the host environment's mount/unmount boundary. One Effect instance owns
// one pipeline for its whole life; a remount is a new instance.
package effect

import (
	"errors"

	"go.uber.org/zap"

	"github.com/softglow/splash/internal/diag"
	"github.com/softglow/splash/internal/gpu"
	"github.com/softglow/splash/internal/huecycle"
	"github.com/softglow/splash/internal/models"
	"github.com/softglow/splash/internal/track"
	"github.com/softglow/splash/internal/viewport"
)

// Host is the effect's view of its environment: the drawable surface, the
// frame scheduler and the input event sources. Attach functions return the
// matching detach so listener lifetime is always instance-scoped.
//
// All Host callbacks are delivered on the single UI thread of the host; the
// effect does no locking.
type Host interface {
	viewport.Surface

	// AcquirePipeline provides the GPU pipeline for this instance's
	// surface. Returns gpu.UnsupportedContextError when the environment
	// has no GPU-capable context.
	AcquirePipeline() (gpu.Pipeline, error)

	// RequestFrame schedules fn for the next frame and returns a cancel.
	RequestFrame(fn func()) (cancel func())

	// AttachPointer subscribes to pointer-move events carrying raw device
	// coordinates with a top-left origin.
	AttachPointer(fn func(rawX, rawY float64)) (detach func())

	// AttachResize subscribes to the host's resize signal.
	AttachResize(fn func()) (detach func())
}

// State is the lifecycle stage of an Effect.
type State int

const (
	StateUnmounted State = iota
	StateInitializing
	StateActive
	StateTornDown
)

// Options tune an Effect. The zero value is the stock splash cursor.
type Options struct {
	Logger *zap.Logger
	Track  track.Params
	Cycle  huecycle.Cycle
}

// Effect is the splash cursor instance. Not safe for concurrent use; every
// method must run on the host's UI thread.
type Effect struct {
	host     Host
	reporter *diag.Reporter
	params   track.Params
	cycle    huecycle.Cycle

	state    State
	inert    bool
	pipeline gpu.Pipeline
	view     *viewport.Manager
	pointer  models.PointerState
	hue      models.Hue

	cancelFrame   func()
	detachPointer func()
	detachResize  func()
}

// New builds an unmounted Effect over the given host.
func New(host Host, opts Options) *Effect {
	return &Effect{
		host:     host,
		reporter: diag.New(opts.Logger),
		params:   opts.Track,
		cycle:    opts.Cycle,
	}
}

// Mount acquires every resource the effect needs and transitions it to
// Active. Context acquisition failure degrades the instance to an inert but
// still Active state: listeners stay attached as harmless no-ops and the
// failure is reported exactly once. Mount on anything but a fresh instance
// does nothing.
func (e *Effect) Mount() {
	if e.state != StateUnmounted {
		return
	}
	e.state = StateInitializing

	pipeline, err := e.host.AcquirePipeline()
	if err == nil && pipeline != nil {
		err = pipeline.Init()
	}
	if pipeline == nil {
		pipeline = nopPipeline{}
	}
	if err != nil {
		e.inert = true
		e.reporter.Report(classify(err), err)
	}
	e.pipeline = pipeline

	e.view = viewport.New(e.host, e.pipeline, e.reporter)
	e.view.Resize()

	e.cancelFrame = e.host.RequestFrame(e.frame)
	e.detachPointer = e.host.AttachPointer(e.pointerMove)
	e.detachResize = e.host.AttachResize(e.resize)

	e.state = StateActive
}

// Unmount detaches every listener, cancels the pending frame and releases
// the pipeline. Safe to call from any state and idempotent; nothing
// acquired by Mount survives it.
func (e *Effect) Unmount() {
	if e.state == StateUnmounted || e.state == StateTornDown {
		return
	}
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}
	if e.detachPointer != nil {
		e.detachPointer()
		e.detachPointer = nil
	}
	if e.detachResize != nil {
		e.detachResize()
		e.detachResize = nil
	}
	if e.pipeline != nil {
		e.pipeline.Release()
	}
	e.state = StateTornDown
}

// State returns the current lifecycle stage.
func (e *Effect) State() State {
	return e.state
}

// frame clears the surface to transparent black and reschedules itself. It
// draws nothing: splats are injected synchronously from pointer events, so
// each one persists only until the next clear.
func (e *Effect) frame() {
	if e.state != StateActive {
		return
	}
	e.pipeline.Clear()
	e.cancelFrame = e.host.RequestFrame(e.frame)
}

func (e *Effect) pointerMove(rawX, rawY float64) {
	if e.state != StateActive || e.inert {
		return
	}

	w, h := e.host.Size()
	next, sample := track.AdvanceParams(e.pointer, rawX, rawY, float64(w), float64(h), e.params)

	// A delivery at the already-tracked position is a duplicate, not a
	// movement: it neither advances the hue nor draws.
	if next.X == e.pointer.X && next.Y == e.pointer.Y {
		e.pointer = next
		return
	}
	e.pointer = next

	e.hue = e.cycle.Advance(e.hue)
	if !e.view.Valid() {
		return
	}

	e.pipeline.DrawSplat(models.Splat{
		X:      sample.X,
		Y:      sample.Y,
		Radius: sample.Radius,
		Color:  e.cycle.Color(e.hue),
	})
}

func (e *Effect) resize() {
	if e.state != StateActive {
		return
	}
	e.view.Resize()
}

func classify(err error) diag.Kind {
	var compileErr *gpu.ShaderCompileError
	var linkErr *gpu.ProgramLinkError
	switch {
	case errors.As(err, &compileErr):
		return diag.KindShaderCompile
	case errors.As(err, &linkErr):
		return diag.KindProgramLink
	default:
		return diag.KindUnsupportedContext
	}
}

// nopPipeline stands in when the host could not provide a context, keeping
// every later call harmless.
type nopPipeline struct{}

func (nopPipeline) Init() error            { return nil }
func (nopPipeline) SetViewport(int, int)   {}
func (nopPipeline) Clear()                 {}
func (nopPipeline) DrawSplat(models.Splat) {}
func (nopPipeline) Release()               {}
