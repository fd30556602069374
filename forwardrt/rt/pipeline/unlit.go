package pipeline

import (
	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// unlitStrategy draws albedo times color with the "texture" program.
type unlitStrategy struct {
	r *Renderer
}

func (s unlitStrategy) Shade(model mgl32.Mat4, mesh *core.Mesh, m *core.Material) int {
	if !drawable(mesh, m) {
		return 0
	}
	sh := s.r.shader("texture")
	if sh == nil {
		return 0
	}

	s.r.applyMaterialState(m)
	sh.Enable()
	s.r.bindCommon(sh, model, m)
	s.r.bindTexture(sh, "u_texture", m.Texture(core.ChannelAlbedo), 0)

	s.r.device.Draw(mesh, core.PrimitiveTriangles)

	sh.Disable()
	s.r.restoreState()
	return 1
}
