package pipeline

import (
	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// litStrategy shades with the frame's lights, either all at once through
// the light arrays of "lightSP" or one additive pass per light with
// "lightMP".
type litStrategy struct {
	r         *Renderer
	multipass bool
}

func (s litStrategy) program() string {
	if s.multipass {
		return "lightMP"
	}
	return "lightSP"
}

func (s litStrategy) Shade(model mgl32.Mat4, mesh *core.Mesh, m *core.Material) int {
	if !drawable(mesh, m) {
		return 0
	}
	r := s.r
	sh := r.shader(s.program())
	if sh == nil {
		return 0
	}

	r.applyMaterialState(m)
	sh.Enable()
	r.bindCommon(sh, model, m)
	sh.SetVec3("u_ambient_light", r.frame.Ambient)
	sh.SetVec3("u_emissive_factor", m.EmissiveFactor)
	r.bindChannels(sh, m)

	var draws int
	if s.multipass {
		draws = s.shadeMultipass(sh, mesh)
	} else {
		block := packLights(r.frame.Lights)
		block.upload(sh)
		r.device.Draw(mesh, core.PrimitiveTriangles)
		draws = 1
	}

	sh.Disable()
	r.restoreState()
	return draws
}

// shadeMultipass lays down ambient and emissive first, then adds each light
// on top of exactly the fragments the base pass wrote.
func (s litStrategy) shadeMultipass(sh gpu.Shader, mesh *core.Mesh) int {
	dev := s.r.device

	dev.SetDepthFunc(gpu.DepthLEqual)
	sh.SetInt("u_light_type", LightCodeAmbientPass)
	dev.Draw(mesh, core.PrimitiveTriangles)
	draws := 1

	if len(s.r.frame.Lights) == 0 {
		return draws
	}

	dev.SetBlend(true)
	dev.SetBlendFunc(gpu.BlendSrcAlpha, gpu.BlendOne)
	dev.SetDepthFunc(gpu.DepthEqual)
	for _, l := range s.r.frame.Lights {
		newLightParams(l).upload(sh)
		dev.Draw(mesh, core.PrimitiveTriangles)
		draws++
	}
	dev.SetDepthFunc(gpu.DepthLess)
	return draws
}
