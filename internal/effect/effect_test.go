package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/softglow/splash/internal/diag"
	"github.com/softglow/splash/internal/gpu"
	"github.com/softglow/splash/internal/huecycle"
	"github.com/softglow/splash/internal/models"
)

type recordingPipeline struct {
	inits    int
	initErr  error
	clears   int
	releases int
	viewW    int
	viewH    int
	splats   []models.Splat
}

func (p *recordingPipeline) Init() error {
	p.inits++
	return p.initErr
}
func (p *recordingPipeline) SetViewport(pw, ph int)   { p.viewW, p.viewH = pw, ph }
func (p *recordingPipeline) Clear()                   { p.clears++ }
func (p *recordingPipeline) DrawSplat(s models.Splat) { p.splats = append(p.splats, s) }
func (p *recordingPipeline) Release()                 { p.releases++ }

type fakeHost struct {
	w, h  int
	scale float64

	pipeline   gpu.Pipeline
	acquireErr error

	backW, backH int

	pendingFrame func()
	frameCancels int

	pointerFn       func(rawX, rawY float64)
	resizeFn        func()
	pointerAttached int
	resizeAttached  int
}

func newFakeHost(p gpu.Pipeline) *fakeHost {
	return &fakeHost{w: 1000, h: 1000, scale: 1, pipeline: p}
}

func (h *fakeHost) Size() (int, int)          { return h.w, h.h }
func (h *fakeHost) ScaleFactor() float64      { return h.scale }
func (h *fakeHost) SetBackingSize(pw, ph int) { h.backW, h.backH = pw, ph }

func (h *fakeHost) AcquirePipeline() (gpu.Pipeline, error) {
	return h.pipeline, h.acquireErr
}

func (h *fakeHost) RequestFrame(fn func()) func() {
	h.pendingFrame = fn
	return func() {
		h.frameCancels++
		h.pendingFrame = nil
	}
}

func (h *fakeHost) AttachPointer(fn func(rawX, rawY float64)) func() {
	h.pointerFn = fn
	h.pointerAttached++
	return func() {
		h.pointerFn = nil
		h.pointerAttached--
	}
}

func (h *fakeHost) AttachResize(fn func()) func() {
	h.resizeFn = fn
	h.resizeAttached++
	return func() {
		h.resizeFn = nil
		h.resizeAttached--
	}
}

func (h *fakeHost) stepFrame() {
	fn := h.pendingFrame
	h.pendingFrame = nil
	if fn != nil {
		fn()
	}
}

func TestMountActivatesAndSizes(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	host.scale = 2

	e := New(host, Options{})
	e.Mount()

	assert.Equal(t, StateActive, e.State())
	assert.Equal(t, 1, pipeline.inits)
	assert.Equal(t, 2000, pipeline.viewW)
	assert.Equal(t, 2000, pipeline.viewH)
	assert.NotNil(t, host.pendingFrame, "frame loop started")
	assert.Equal(t, 1, host.pointerAttached)
	assert.Equal(t, 1, host.resizeAttached)

	// Mount is not re-entrant.
	e.Mount()
	assert.Equal(t, 1, pipeline.inits)
}

func TestPointerMoveDrawsVelocityScaledSplat(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	e := New(host, Options{})
	e.Mount()

	// Large jump: speed saturates the cap.
	host.pointerFn(500, 500)
	require.Len(t, pipeline.splats, 1)
	s := pipeline.splats[0]
	assert.Equal(t, 0.5, s.X)
	assert.Equal(t, 0.5, s.Y)
	assert.InDelta(t, 0.10, s.Radius, 1e-12)
	assert.Equal(t, huecycle.Color(2), s.Color, "first event advances hue to 2")

	// Half-pixel nudge: base radius plus a sub-cap boost.
	host.pointerFn(500.5, 500)
	require.Len(t, pipeline.splats, 2)
	s = pipeline.splats[1]
	assert.InDelta(t, 0.05+0.0005*50, s.Radius, 1e-12)
	assert.Equal(t, huecycle.Color(4), s.Color)
}

func TestDuplicateDeliveryDoesNotAdvanceHue(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	e := New(host, Options{})
	e.Mount()

	host.pointerFn(100, 500)
	require.Len(t, pipeline.splats, 1)

	host.pointerFn(100, 500)
	assert.Len(t, pipeline.splats, 1, "no movement, no splat")

	host.pointerFn(200, 500)
	require.Len(t, pipeline.splats, 2)
	assert.Equal(t, huecycle.Color(4), pipeline.splats[1].Color,
		"duplicate delivery did not consume a hue step")
}

func TestFrameClearsAndReschedules(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	e := New(host, Options{})
	e.Mount()

	host.stepFrame()
	assert.Equal(t, 1, pipeline.clears)
	assert.NotNil(t, host.pendingFrame, "rescheduled")

	host.stepFrame()
	assert.Equal(t, 2, pipeline.clears)
}

func TestUnmountTearsEverythingDown(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	e := New(host, Options{})
	e.Mount()

	pointerFn := host.pointerFn
	host.pointerFn(500, 500)
	require.Len(t, pipeline.splats, 1)

	e.Unmount()

	assert.Equal(t, StateTornDown, e.State())
	assert.Equal(t, 1, pipeline.releases)
	assert.Equal(t, 0, host.pointerAttached)
	assert.Equal(t, 0, host.resizeAttached)
	assert.Nil(t, host.pendingFrame, "pending frame canceled")

	// Events queued before teardown land after it: still zero draw calls.
	pointerFn(600, 600)
	pointerFn(700, 700)
	e.frame()
	assert.Len(t, pipeline.splats, 1)
	assert.Equal(t, 0, pipeline.clears)

	// Idempotent, and no re-entry into Initializing.
	e.Unmount()
	e.Mount()
	assert.Equal(t, StateTornDown, e.State())
	assert.Equal(t, 1, pipeline.releases)
}

func TestUnsupportedContextDegradesToInert(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	host := newFakeHost(nil)
	host.acquireErr = &gpu.UnsupportedContextError{Reason: "no GL"}

	e := New(host, Options{Logger: zap.New(core)})
	e.Mount()

	assert.Equal(t, StateActive, e.State(), "inert but active")

	// Listeners and the loop stay harmless.
	host.pointerFn(500, 500)
	host.stepFrame()
	host.resizeFn()
	e.Unmount()

	entries := logs.FilterField(zap.String("kind", string(diag.KindUnsupportedContext)))
	assert.Equal(t, 1, entries.Len(), "reported exactly once")
}

func TestShaderFailureIsReportedByKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind diag.Kind
	}{
		{"compile", &gpu.ShaderCompileError{Stage: "fragment", Log: "bad"}, diag.KindShaderCompile},
		{"link", &gpu.ProgramLinkError{Log: "bad"}, diag.KindProgramLink},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			pipeline := &recordingPipeline{initErr: tc.err}
			host := newFakeHost(pipeline)

			e := New(host, Options{Logger: zap.New(core)})
			e.Mount()

			assert.Equal(t, StateActive, e.State())
			host.pointerFn(500, 500)
			assert.Empty(t, pipeline.splats)
			assert.Equal(t, 1, logs.FilterField(zap.String("kind", string(tc.kind))).Len())
		})
	}
}

func TestResizeSignalReconfiguresViewport(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	e := New(host, Options{})
	e.Mount()

	host.w, host.h = 640, 480
	host.resizeFn()

	assert.Equal(t, 640, pipeline.viewW)
	assert.Equal(t, 480, pipeline.viewH)
	assert.Equal(t, 640, host.backW)
	assert.Equal(t, 480, host.backH)
	assert.Equal(t, StateActive, e.State())
}

func TestZeroAreaSurfaceSkipsDraws(t *testing.T) {
	pipeline := &recordingPipeline{}
	host := newFakeHost(pipeline)
	host.w, host.h = 0, 0

	e := New(host, Options{})
	e.Mount()

	host.pointerFn(10, 10)
	assert.Empty(t, pipeline.splats)

	host.w, host.h = 800, 600
	host.resizeFn()
	host.pointerFn(400, 300)
	assert.Len(t, pipeline.splats, 1)

	e.Unmount()
	assert.Equal(t, StateTornDown, e.State())
}
