package gpu

import (
	"image"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLEqual
	DepthEqual
	DepthAlways
)

func (f DepthFunc) String() string {
	switch f {
	case DepthLess:
		return "LESS"
	case DepthLEqual:
		return "LEQUAL"
	case DepthEqual:
		return "EQUAL"
	case DepthAlways:
		return "ALWAYS"
	}
	return "UNKNOWN"
}

type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// State is the subset of fixed-function state the renderer touches.
type State struct {
	Blend       bool
	BlendSrc    BlendFactor
	BlendDst    BlendFactor
	CullFace    bool
	DepthTest   bool
	DepthFunc   DepthFunc
	PolygonMode PolygonMode
}

// DefaultState is the state every draw must leave behind.
func DefaultState() State {
	return State{
		Blend:       false,
		BlendSrc:    BlendSrcAlpha,
		BlendDst:    BlendOneMinusSrcAlpha,
		CullFace:    true,
		DepthTest:   true,
		DepthFunc:   DepthLess,
		PolygonMode: PolygonFill,
	}
}

// Device issues state changes and draw calls. Implementations are not safe
// for concurrent use; all calls happen on the render thread.
type Device interface {
	SetClearColor(c mgl32.Vec4)
	Clear()
	SetViewport(width, height int)

	SetBlend(enabled bool)
	SetBlendFunc(src, dst BlendFactor)
	SetCullFace(enabled bool)
	SetDepthTest(enabled bool)
	SetDepthFunc(fn DepthFunc)
	SetPolygonMode(mode PolygonMode)
	State() State

	// UploadMesh creates GPU buffers for m and stores them in m.Handle.
	// Draw uploads lazily, so calling it up front is optional.
	UploadMesh(m *core.Mesh) error
	// Draw renders m with the currently enabled shader.
	Draw(m *core.Mesh, primitive core.Primitive)

	CreateTexture(name string, img *image.RGBA) (core.Texture, error)
	// CreateCubemap takes faces in +X, -X, +Y, -Y, +Z, -Z order.
	CreateCubemap(name string, faces [6]*image.RGBA) (core.Texture, error)
	CompileShader(name, vertexSrc, fragmentSrc string) (Shader, error)
}

// Shader is a linked program with name-addressed uniforms. Setting a uniform
// the program does not declare is a no-op.
type Shader interface {
	Name() string
	Enable()
	Disable()

	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, m mgl32.Mat4)
	SetTexture(name string, tex core.Texture, slot int)

	SetFloatArray(name string, v []float32)
	SetIntArray(name string, v []int32)
	SetVec2Array(name string, v []mgl32.Vec2)
	SetVec3Array(name string, v []mgl32.Vec3)
}
