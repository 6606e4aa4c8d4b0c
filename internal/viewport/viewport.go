// Package viewport keeps the backing surface and the GPU viewport sized to
// the window's logical dimensions times its device pixel ratio.
package viewport

import (
	"github.com/softglow/splash/internal/diag"
	"github.com/softglow/splash/internal/gpu"
)

// Surface is the host-provided drawable the effect renders into.
type Surface interface {
	// Size returns the logical dimensions of the surface.
	Size() (w, h int)
	// ScaleFactor is the device pixel ratio.
	ScaleFactor() float64
	// SetBackingSize sets the surface's backing store to pixel dimensions.
	SetBackingSize(pw, ph int)
}

// Manager mirrors surface geometry into the pipeline. It never destroys the
// pipeline; a resize only reconfigures the viewport.
type Manager struct {
	surface  Surface
	pipeline gpu.Pipeline
	reporter *diag.Reporter

	pw, ph int
	valid  bool
	sized  bool
}

// New builds a Manager. Resize must be called once before the first frame
// and again on every resize signal.
func New(surface Surface, pipeline gpu.Pipeline, reporter *diag.Reporter) *Manager {
	return &Manager{surface: surface, pipeline: pipeline, reporter: reporter}
}

// Resize reads the current logical size and scale and pushes the resulting
// pixel dimensions to the surface and the pipeline. Unchanged dimensions
// are not re-pushed. A zero-area surface collapses the viewport to zero and
// rendering degrades to a no-op until the next valid resize.
func (m *Manager) Resize() {
	w, h := m.surface.Size()
	scale := m.surface.ScaleFactor()

	pw := int(float64(w) * scale)
	ph := int(float64(h) * scale)
	if pw < 0 {
		pw = 0
	}
	if ph < 0 {
		ph = 0
	}

	if m.sized && pw == m.pw && ph == m.ph {
		return
	}
	m.pw, m.ph = pw, ph
	m.sized = true

	m.valid = pw > 0 && ph > 0
	if !m.valid {
		// Transient: self-heals on the next valid resize. The unchanged-size
		// guard above keeps repeated zero-area signals from re-reporting.
		m.reporter.Report(diag.KindInvalidViewport, nil)
	}

	m.surface.SetBackingSize(pw, ph)
	m.pipeline.SetViewport(pw, ph)
}

// Valid reports whether the surface currently has a drawable area.
func (m *Manager) Valid() bool {
	return m.valid
}

// PixelSize returns the last pixel dimensions pushed to the pipeline.
func (m *Manager) PixelSize() (int, int) {
	return m.pw, m.ph
}
