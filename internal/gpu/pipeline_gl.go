//go:build !js

package gpu

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/softglow/splash/internal/models"
)

// GLPipeline draws splats through OpenGL. The GL context must be current on
// the calling thread before Init and stay current for the pipeline's life.
type GLPipeline struct {
	program uint32
	vao     uint32
	vbo     uint32

	centerLoc int32
	radiusLoc int32
	colorLoc  int32

	initialized bool
	inert       bool
}

// NewGL returns an uninitialized OpenGL pipeline.
func NewGL() *GLPipeline {
	return &GLPipeline{}
}

func (p *GLPipeline) Init() error {
	if p.initialized || p.inert {
		return nil
	}

	if err := gl.Init(); err != nil {
		p.inert = true
		return &UnsupportedContextError{Reason: err.Error()}
	}

	vertShader, err := compileShader(vertexSource, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		p.inert = true
		return err
	}
	fragShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		gl.DeleteShader(vertShader)
		p.inert = true
		return err
	}

	p.program = gl.CreateProgram()
	gl.AttachShader(p.program, vertShader)
	gl.AttachShader(p.program, fragShader)
	gl.LinkProgram(p.program)

	var status int32
	gl.GetProgramiv(p.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p.program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetProgramInfoLog(p.program, logLength, nil, &logMsg[0])
		gl.DeleteShader(vertShader)
		gl.DeleteShader(fragShader)
		gl.DeleteProgram(p.program)
		p.program = 0
		p.inert = true
		return &ProgramLinkError{Log: strings.TrimRight(string(logMsg), "\x00\n")}
	}

	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	p.centerLoc = gl.GetUniformLocation(p.program, gl.Str("center\x00"))
	p.radiusLoc = gl.GetUniformLocation(p.program, gl.Str("radius\x00"))
	p.colorLoc = gl.GetUniformLocation(p.program, gl.Str("color\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	posAttrib := uint32(gl.GetAttribLocation(p.program, gl.Str("position\x00")))
	gl.VertexAttribPointer(posAttrib, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(posAttrib)

	gl.BindVertexArray(0)

	gl.ClearColor(0, 0, 0, 0)

	p.initialized = true
	return nil
}

func (p *GLPipeline) SetViewport(pw, ph int) {
	if !p.initialized {
		return
	}
	gl.Viewport(0, 0, int32(pw), int32(ph))
}

func (p *GLPipeline) Clear() {
	if !p.initialized {
		return
	}
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (p *GLPipeline) DrawSplat(splat models.Splat) {
	if !p.initialized {
		return
	}

	gl.UseProgram(p.program)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.Uniform2f(p.centerLoc, float32(splat.X), float32(splat.Y))
	gl.Uniform1f(p.radiusLoc, float32(splat.Radius))
	gl.Uniform3f(p.colorLoc, float32(splat.Color.R), float32(splat.Color.G), float32(splat.Color.B))

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (p *GLPipeline) Release() {
	if p.initialized {
		gl.DeleteBuffers(1, &p.vbo)
		gl.DeleteVertexArrays(1, &p.vao)
		gl.DeleteProgram(p.program)
		p.initialized = false
	}
	p.inert = true
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
		gl.DeleteShader(shader)
		return 0, &ShaderCompileError{
			Stage: stage,
			Log:   strings.TrimRight(string(logMsg), "\x00\n"),
		}
	}

	return shader, nil
}
