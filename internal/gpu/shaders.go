package gpu

// The same vertex/fragment pair in two dialects: core-profile GLSL for the
// native backend and ES 1.00 for WebGL. The fragment stage produces a soft
// circular glow: opacity falls from 1 at the splat center to 0 at the splat
// radius with a smoothstep edge, in [0,1] texture-space coordinates.

const vertexSource = `#version 410 core
in vec2 position;
out vec2 uv;

void main() {
    uv = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentSource = `#version 410 core
uniform vec2 center;
uniform float radius;
uniform vec3 color;
in vec2 uv;
out vec4 fragColor;

void main() {
    float dist = distance(uv, center);
    float alpha = 1.0 - smoothstep(0.0, radius, dist);
    fragColor = vec4(color, alpha);
}
`

const vertexSourceES = `attribute vec2 position;
varying vec2 uv;

void main() {
    uv = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentSourceES = `precision mediump float;
uniform vec2 center;
uniform float radius;
uniform vec3 color;
varying vec2 uv;

void main() {
    float dist = distance(uv, center);
    float alpha = 1.0 - smoothstep(0.0, radius, dist);
    gl_FragColor = vec4(color, alpha);
}
`
