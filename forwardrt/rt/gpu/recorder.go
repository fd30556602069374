package gpu

import (
	"fmt"
	"image"
	"slices"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureBinding is how the Recorder stores a sampler uniform.
type TextureBinding struct {
	Texture core.Texture
	Slot    int
}

// DrawCall is one recorded Draw with the state and uniforms in effect.
type DrawCall struct {
	Shader    string
	Mesh      *core.Mesh
	Primitive core.Primitive
	State     State
	Uniforms  map[string]any
}

func (c DrawCall) Float(name string) float32 {
	v, _ := c.Uniforms[name].(float32)
	return v
}

func (c DrawCall) Int(name string) int32 {
	v, _ := c.Uniforms[name].(int32)
	return v
}

func (c DrawCall) Vec3(name string) mgl32.Vec3 {
	v, _ := c.Uniforms[name].(mgl32.Vec3)
	return v
}

func (c DrawCall) Vec4(name string) mgl32.Vec4 {
	v, _ := c.Uniforms[name].(mgl32.Vec4)
	return v
}

func (c DrawCall) Mat4(name string) mgl32.Mat4 {
	v, _ := c.Uniforms[name].(mgl32.Mat4)
	return v
}

func (c DrawCall) Texture(name string) TextureBinding {
	v, _ := c.Uniforms[name].(TextureBinding)
	return v
}

func (c DrawCall) Vec3Array(name string) []mgl32.Vec3 {
	v, _ := c.Uniforms[name].([]mgl32.Vec3)
	return v
}

var _ Device = (*Recorder)(nil)

// Recorder is a headless Device. It keeps every draw call with a snapshot
// of state and uniforms, which makes it the device for tests and for
// running the viewer without a window.
type Recorder struct {
	ClearColor mgl32.Vec4
	Clears     int
	Calls      []DrawCall
	Uploads    int
	Viewport   [2]int

	// FailShaders makes CompileShader fail for the listed program names.
	FailShaders map[string]bool

	state  State
	active *recordedShader
}

func NewRecorder() *Recorder {
	return &Recorder{state: DefaultState()}
}

// Reset drops recorded calls and clears; device state is kept.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Clears = 0
}

// CallsWith returns the recorded calls that used the named shader.
func (r *Recorder) CallsWith(shader string) []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Shader == shader {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) SetClearColor(c mgl32.Vec4) { r.ClearColor = c }
func (r *Recorder) Clear()                     { r.Clears++ }

func (r *Recorder) SetViewport(width, height int) {
	r.Viewport = [2]int{width, height}
}

func (r *Recorder) SetBlend(enabled bool) { r.state.Blend = enabled }
func (r *Recorder) SetBlendFunc(src, dst BlendFactor) {
	r.state.BlendSrc, r.state.BlendDst = src, dst
}
func (r *Recorder) SetCullFace(enabled bool)        { r.state.CullFace = enabled }
func (r *Recorder) SetDepthTest(enabled bool)       { r.state.DepthTest = enabled }
func (r *Recorder) SetDepthFunc(fn DepthFunc)       { r.state.DepthFunc = fn }
func (r *Recorder) SetPolygonMode(mode PolygonMode) { r.state.PolygonMode = mode }
func (r *Recorder) State() State                    { return r.state }

func (r *Recorder) UploadMesh(m *core.Mesh) error {
	if m.Handle == nil {
		m.Handle = r
		r.Uploads++
	}
	return nil
}

func (r *Recorder) Draw(m *core.Mesh, primitive core.Primitive) {
	_ = r.UploadMesh(m)
	call := DrawCall{
		Mesh:      m,
		Primitive: primitive,
		State:     r.state,
		Uniforms:  map[string]any{},
	}
	if r.active != nil {
		call.Shader = r.active.name
		for k, v := range r.active.uniforms {
			call.Uniforms[k] = v
		}
	}
	r.Calls = append(r.Calls, call)
}

func (r *Recorder) CreateTexture(name string, img *image.RGBA) (core.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %s: nil image", name)
	}
	b := img.Bounds()
	return &recordedTexture{name: name, w: b.Dx(), h: b.Dy()}, nil
}

func (r *Recorder) CreateCubemap(name string, faces [6]*image.RGBA) (core.Texture, error) {
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("cubemap %s: face %d missing", name, i)
		}
	}
	b := faces[0].Bounds()
	return &recordedTexture{name: name, w: b.Dx(), h: b.Dy(), cubemap: true}, nil
}

func (r *Recorder) CompileShader(name, vertexSrc, fragmentSrc string) (Shader, error) {
	if r.FailShaders[name] {
		return nil, fmt.Errorf("%w: %s: forced failure", ErrShaderCompile, name)
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, fmt.Errorf("%w: %s: empty source", ErrShaderCompile, name)
	}
	return &recordedShader{name: name, rec: r, uniforms: map[string]any{}}, nil
}

type recordedTexture struct {
	name    string
	w, h    int
	cubemap bool
}

func (t *recordedTexture) Name() string     { return t.name }
func (t *recordedTexture) Size() (int, int) { return t.w, t.h }
func (t *recordedTexture) Cubemap() bool    { return t.cubemap }

// recordedShader keeps uniform values across draws like a GL program does.
type recordedShader struct {
	name     string
	rec      *Recorder
	uniforms map[string]any
}

func (s *recordedShader) Name() string { return s.name }
func (s *recordedShader) Enable()      { s.rec.active = s }
func (s *recordedShader) Disable() {
	if s.rec.active == s {
		s.rec.active = nil
	}
}

func (s *recordedShader) SetFloat(name string, v float32)   { s.uniforms[name] = v }
func (s *recordedShader) SetInt(name string, v int32)       { s.uniforms[name] = v }
func (s *recordedShader) SetVec2(name string, v mgl32.Vec2) { s.uniforms[name] = v }
func (s *recordedShader) SetVec3(name string, v mgl32.Vec3) { s.uniforms[name] = v }
func (s *recordedShader) SetVec4(name string, v mgl32.Vec4) { s.uniforms[name] = v }
func (s *recordedShader) SetMat4(name string, m mgl32.Mat4) { s.uniforms[name] = m }

func (s *recordedShader) SetFloatArray(name string, v []float32) {
	s.uniforms[name] = slices.Clone(v)
}
func (s *recordedShader) SetIntArray(name string, v []int32) {
	s.uniforms[name] = slices.Clone(v)
}
func (s *recordedShader) SetVec2Array(name string, v []mgl32.Vec2) {
	s.uniforms[name] = slices.Clone(v)
}
func (s *recordedShader) SetVec3Array(name string, v []mgl32.Vec3) {
	s.uniforms[name] = slices.Clone(v)
}

func (s *recordedShader) SetTexture(name string, tex core.Texture, slot int) {
	s.uniforms[name] = TextureBinding{Texture: tex, Slot: slot}
}
