// Package diag is the effect's diagnostic channel. Reports are
// fire-and-forget: they never block, never retry, and never surface as a
// failure to the host page.
package diag

import "go.uber.org/zap"

// Kind classifies a diagnostic report.
type Kind string

const (
	KindUnsupportedContext Kind = "unsupported_context"
	KindShaderCompile      Kind = "shader_compile"
	KindProgramLink        Kind = "program_link"
	KindInvalidViewport    Kind = "invalid_viewport"
)

// Reporter tags every report with its kind. The zero value discards
// everything, so library code can report unconditionally.
type Reporter struct {
	log *zap.Logger
}

// New builds a Reporter over the given logger. A nil logger discards.
func New(log *zap.Logger) *Reporter {
	return &Reporter{log: log}
}

// Report records one diagnostic. err may be nil for transient conditions
// that carry no cause beyond their kind.
func (r *Reporter) Report(kind Kind, err error) {
	if r == nil || r.log == nil {
		return
	}
	fields := []zap.Field{zap.String("kind", string(kind))}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	r.log.Warn("splash effect degraded", fields...)
}
