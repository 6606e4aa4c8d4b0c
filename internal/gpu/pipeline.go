// Package gpu owns the rendering context, the compiled splat shader program
// and the static quad geometry, and exposes a single draw primitive. Two
// backends implement the same contract: OpenGL for native overlays and
// WebGL for the browser build.
package gpu

import "github.com/softglow/splash/internal/models"

// Pipeline is the drawing surface of the effect. Implementations are bound
// to a single rendering context and a single OS/UI thread.
//
// Init is called once. If it returns an error the pipeline is inert: every
// later call, Init included, is a harmless no-op. Release makes the
// pipeline inert as well; no draw call is ever issued past it.
type Pipeline interface {
	Init() error
	SetViewport(pw, ph int)
	Clear()
	DrawSplat(splat models.Splat)
	Release()
}

// quadVertices spans the full clip-space square as two triangles. Created
// once at Init, never mutated.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}
