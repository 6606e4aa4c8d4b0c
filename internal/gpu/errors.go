package gpu

import "fmt"

// UnsupportedContextError means the host environment could not provide a
// GPU-capable rendering context. It is permanent for the lifetime of the
// effect instance.
type UnsupportedContextError struct {
	Reason string
}

func (e *UnsupportedContextError) Error() string {
	return fmt.Sprintf("gpu context unavailable: %s", e.Reason)
}

// ShaderCompileError carries the compiler diagnostic for a failed stage.
type ShaderCompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the linker diagnostic for stages that compiled
// but did not link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}
