// Package glbackend implements the gpu contract on OpenGL 4.1 core. Every
// call must happen on the thread that owns the current GL context.
package glbackend

import (
	"fmt"
	"image"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var _ gpu.Device = (*Device)(nil)

type Device struct {
	state gpu.State
}

// NewDevice loads GL entry points for the current context and applies the
// default state.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	d := &Device{}
	d.apply(gpu.DefaultState())
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	return d, nil
}

// Version reports the GL version string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) apply(s gpu.State) {
	d.SetBlend(s.Blend)
	d.SetBlendFunc(s.BlendSrc, s.BlendDst)
	d.SetCullFace(s.CullFace)
	d.SetDepthTest(s.DepthTest)
	d.SetDepthFunc(s.DepthFunc)
	d.SetPolygonMode(s.PolygonMode)
}

func (d *Device) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) SetBlend(enabled bool) {
	toggle(gl.BLEND, enabled)
	d.state.Blend = enabled
}

func (d *Device) SetBlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
	d.state.BlendSrc, d.state.BlendDst = src, dst
}

func (d *Device) SetCullFace(enabled bool) {
	toggle(gl.CULL_FACE, enabled)
	d.state.CullFace = enabled
}

func (d *Device) SetDepthTest(enabled bool) {
	toggle(gl.DEPTH_TEST, enabled)
	d.state.DepthTest = enabled
}

func (d *Device) SetDepthFunc(fn gpu.DepthFunc) {
	gl.DepthFunc(depthFuncs[fn])
	d.state.DepthFunc = fn
}

func (d *Device) SetPolygonMode(mode gpu.PolygonMode) {
	if mode == gpu.PolygonLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	d.state.PolygonMode = mode
}

func (d *Device) State() gpu.State { return d.state }

func (d *Device) CreateTexture(name string, img *image.RGBA) (core.Texture, error) {
	return newTexture2D(name, img)
}

func (d *Device) CreateCubemap(name string, faces [6]*image.RGBA) (core.Texture, error) {
	return newCubemap(name, faces)
}

func (d *Device) CompileShader(name, vertexSrc, fragmentSrc string) (gpu.Shader, error) {
	return newShader(name, vertexSrc, fragmentSrc)
}

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

var blendFactors = map[gpu.BlendFactor]uint32{
	gpu.BlendZero:             gl.ZERO,
	gpu.BlendOne:              gl.ONE,
	gpu.BlendSrcAlpha:         gl.SRC_ALPHA,
	gpu.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
}

var depthFuncs = map[gpu.DepthFunc]uint32{
	gpu.DepthLess:   gl.LESS,
	gpu.DepthLEqual: gl.LEQUAL,
	gpu.DepthEqual:  gl.EQUAL,
	gpu.DepthAlways: gl.ALWAYS,
}
