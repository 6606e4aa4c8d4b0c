//go:build js && wasm

package gpu

import (
	"encoding/binary"
	"math"
	"syscall/js"

	"github.com/softglow/splash/internal/models"
)

// WebGLPipeline draws splats through a WebGL 1 context obtained from a
// canvas element.
type WebGLPipeline struct {
	canvas js.Value
	gl     js.Value
	consts glConsts

	program js.Value
	vbo     js.Value

	centerLoc js.Value
	radiusLoc js.Value
	colorLoc  js.Value
	posAttrib int

	initialized bool
	inert       bool
}

type glConsts struct {
	arrayBuffer      int
	staticDraw       int
	triangles        int
	floatType        int
	colorBufferBit   int
	blend            int
	srcAlpha         int
	oneMinusSrcAlpha int
	compileStatus    int
	linkStatus       int
	vertexShader     int
	fragmentShader   int
}

// NewWebGL returns an uninitialized WebGL pipeline over the given canvas.
func NewWebGL(canvas js.Value) *WebGLPipeline {
	return &WebGLPipeline{canvas: canvas}
}

func (p *WebGLPipeline) Init() error {
	if p.initialized || p.inert {
		return nil
	}

	attrs := js.Global().Get("Object").New()
	attrs.Set("alpha", true)
	attrs.Set("premultipliedAlpha", false)

	gl := p.canvas.Call("getContext", "webgl", attrs)
	if gl.IsNull() || gl.IsUndefined() {
		p.inert = true
		return &UnsupportedContextError{Reason: "canvas.getContext(\"webgl\") returned null"}
	}
	p.gl = gl
	p.initConsts()

	vertShader, err := p.compileShader(p.consts.vertexShader, vertexSourceES, "vertex")
	if err != nil {
		p.inert = true
		return err
	}
	fragShader, err := p.compileShader(p.consts.fragmentShader, fragmentSourceES, "fragment")
	if err != nil {
		gl.Call("deleteShader", vertShader)
		p.inert = true
		return err
	}

	program := gl.Call("createProgram")
	gl.Call("attachShader", program, vertShader)
	gl.Call("attachShader", program, fragShader)
	gl.Call("linkProgram", program)

	if !gl.Call("getProgramParameter", program, p.consts.linkStatus).Bool() {
		logMsg := gl.Call("getProgramInfoLog", program).String()
		gl.Call("deleteShader", vertShader)
		gl.Call("deleteShader", fragShader)
		gl.Call("deleteProgram", program)
		p.inert = true
		return &ProgramLinkError{Log: logMsg}
	}

	gl.Call("deleteShader", vertShader)
	gl.Call("deleteShader", fragShader)
	p.program = program

	p.centerLoc = gl.Call("getUniformLocation", program, "center")
	p.radiusLoc = gl.Call("getUniformLocation", program, "radius")
	p.colorLoc = gl.Call("getUniformLocation", program, "color")
	p.posAttrib = gl.Call("getAttribLocation", program, "position").Int()

	p.vbo = gl.Call("createBuffer")
	gl.Call("bindBuffer", p.consts.arrayBuffer, p.vbo)
	gl.Call("bufferData", p.consts.arrayBuffer, float32Array(quadVertices), p.consts.staticDraw)

	gl.Call("clearColor", 0, 0, 0, 0)

	p.initialized = true
	return nil
}

func (p *WebGLPipeline) SetViewport(pw, ph int) {
	if !p.initialized {
		return
	}
	p.gl.Call("viewport", 0, 0, pw, ph)
}

func (p *WebGLPipeline) Clear() {
	if !p.initialized {
		return
	}
	p.gl.Call("clear", p.consts.colorBufferBit)
}

func (p *WebGLPipeline) DrawSplat(splat models.Splat) {
	if !p.initialized {
		return
	}

	gl := p.gl
	gl.Call("useProgram", p.program)

	gl.Call("enable", p.consts.blend)
	gl.Call("blendFunc", p.consts.srcAlpha, p.consts.oneMinusSrcAlpha)

	gl.Call("uniform2f", p.centerLoc, splat.X, splat.Y)
	gl.Call("uniform1f", p.radiusLoc, splat.Radius)
	gl.Call("uniform3f", p.colorLoc, splat.Color.R, splat.Color.G, splat.Color.B)

	gl.Call("bindBuffer", p.consts.arrayBuffer, p.vbo)
	gl.Call("enableVertexAttribArray", p.posAttrib)
	gl.Call("vertexAttribPointer", p.posAttrib, 2, p.consts.floatType, false, 2*4, 0)

	gl.Call("drawArrays", p.consts.triangles, 0, 6)
}

func (p *WebGLPipeline) Release() {
	if p.initialized {
		if p.vbo.Truthy() {
			p.gl.Call("deleteBuffer", p.vbo)
		}
		if p.program.Truthy() {
			p.gl.Call("deleteProgram", p.program)
		}
		p.initialized = false
	}
	p.inert = true
}

func (p *WebGLPipeline) initConsts() {
	gl := p.gl
	p.consts = glConsts{
		arrayBuffer:      gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:       gl.Get("STATIC_DRAW").Int(),
		triangles:        gl.Get("TRIANGLES").Int(),
		floatType:        gl.Get("FLOAT").Int(),
		colorBufferBit:   gl.Get("COLOR_BUFFER_BIT").Int(),
		blend:            gl.Get("BLEND").Int(),
		srcAlpha:         gl.Get("SRC_ALPHA").Int(),
		oneMinusSrcAlpha: gl.Get("ONE_MINUS_SRC_ALPHA").Int(),
		compileStatus:    gl.Get("COMPILE_STATUS").Int(),
		linkStatus:       gl.Get("LINK_STATUS").Int(),
		vertexShader:     gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:   gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (p *WebGLPipeline) compileShader(shaderType int, source, stage string) (js.Value, error) {
	gl := p.gl
	shader := gl.Call("createShader", shaderType)
	gl.Call("shaderSource", shader, source)
	gl.Call("compileShader", shader)
	if !gl.Call("getShaderParameter", shader, p.consts.compileStatus).Bool() {
		logMsg := gl.Call("getShaderInfoLog", shader).String()
		gl.Call("deleteShader", shader)
		return js.Null(), &ShaderCompileError{Stage: stage, Log: logMsg}
	}
	return shader, nil
}

func float32Array(values []float32) js.Value {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	u8 := js.Global().Get("Uint8Array").New(len(buf))
	js.CopyBytesToJS(u8, buf)
	return js.Global().Get("Float32Array").New(u8.Get("buffer"), 0, len(values))
}
