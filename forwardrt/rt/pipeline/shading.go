package pipeline

import (
	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// alphaCutoffDisabled is sent as u_alpha_cutoff for non-MASK materials.
const alphaCutoffDisabled float32 = 0.001

// ShadingStrategy draws one mesh with one material and returns the number
// of draw calls issued. Implementations leave device state at its defaults.
type ShadingStrategy interface {
	Shade(model mgl32.Mat4, mesh *core.Mesh, material *core.Material) int
}

// channelBinding maps a texture channel to its sampler, slot and the
// feature flag that tells the shader whether to use it.
type channelBinding struct {
	sampler string
	flag    string
}

var channelBindings = [core.TextureChannelCount]channelBinding{
	core.ChannelAlbedo:            {sampler: "u_texture"},
	core.ChannelNormalMap:         {sampler: "u_normalmap", flag: "u_use_normalmap"},
	core.ChannelEmissive:          {sampler: "u_emissive", flag: "u_use_emissive"},
	core.ChannelOcclusion:         {sampler: "u_occlusion", flag: "u_use_occlusion"},
	core.ChannelMetallicRoughness: {sampler: "u_metal_roughness", flag: "u_use_specular"},
}

func drawable(mesh *core.Mesh, material *core.Material) bool {
	return mesh != nil && material != nil && mesh.VertexCount() > 0
}

func alphaCutoff(m *core.Material) float32 {
	if m.AlphaMode == core.AlphaMask {
		return m.AlphaCutoff
	}
	return alphaCutoffDisabled
}

// shader returns the named program. A missing program is logged once per
// name and the caller skips its draw.
func (r *Renderer) shader(name string) gpu.Shader {
	sh := r.shaders.Get(name)
	if sh == nil && !r.missing[name] {
		r.missing[name] = true
		r.log.Warnf("shader %q not found, skipping draws that need it", name)
	}
	return sh
}

// applyMaterialState sets blend, cull, depth and fill state for material.
func (r *Renderer) applyMaterialState(m *core.Material) {
	if m.AlphaMode == core.AlphaBlend {
		r.device.SetBlend(true)
		r.device.SetBlendFunc(gpu.BlendSrcAlpha, gpu.BlendOneMinusSrcAlpha)
	} else {
		r.device.SetBlend(false)
	}
	r.device.SetCullFace(!m.TwoSided)
	r.device.SetDepthTest(true)
	if r.settings.Wireframe {
		r.device.SetPolygonMode(gpu.PolygonLine)
	}
}

// restoreState puts the device back to gpu.DefaultState.
func (r *Renderer) restoreState() {
	def := gpu.DefaultState()
	r.device.SetBlend(def.Blend)
	r.device.SetBlendFunc(def.BlendSrc, def.BlendDst)
	r.device.SetPolygonMode(def.PolygonMode)
	r.device.SetDepthFunc(def.DepthFunc)
	r.device.SetDepthTest(def.DepthTest)
	r.device.SetCullFace(def.CullFace)
}

// bindCommon uploads the uniforms every material program declares.
func (r *Renderer) bindCommon(sh gpu.Shader, model mgl32.Mat4, m *core.Material) {
	sh.SetMat4("u_model", model)
	r.bindCamera(sh)
	sh.SetFloat("u_time", r.clock())
	sh.SetVec4("u_color", m.Color)
	sh.SetFloat("u_alpha_cutoff", alphaCutoff(m))
}

func (r *Renderer) bindCamera(sh gpu.Shader) {
	cam := r.frame.Camera
	sh.SetMat4("u_viewprojection", cam.ViewProjection)
	sh.SetVec3("u_camera_position", cam.Eye)
}

// bindTexture binds tex, or the white texture when tex is nil, and reports
// whether a real texture was bound.
func (r *Renderer) bindTexture(sh gpu.Shader, sampler string, tex core.Texture, slot int) bool {
	if tex == nil {
		sh.SetTexture(sampler, r.textures.WhiteTexture(), slot)
		return false
	}
	sh.SetTexture(sampler, tex, slot)
	return true
}

// featureEnabled reports the UI switch gating a texture channel.
func (r *Renderer) featureEnabled(ch core.TextureChannel) bool {
	switch ch {
	case core.ChannelNormalMap:
		return r.settings.UseNormalMaps
	case core.ChannelEmissive:
		return r.settings.UseEmissive
	case core.ChannelOcclusion:
		return r.settings.UseOcclusion
	case core.ChannelMetallicRoughness:
		return r.settings.UseSpecular
	}
	return true
}

// bindChannels binds all five channels at slots 0..4 and sets each feature
// flag to 1 only when the texture exists and its switch is on.
func (r *Renderer) bindChannels(sh gpu.Shader, m *core.Material) {
	for ch := core.TextureChannel(0); ch < core.TextureChannelCount; ch++ {
		b := channelBindings[ch]
		present := r.bindTexture(sh, b.sampler, m.Texture(ch), int(ch))
		if b.flag == "" {
			continue
		}
		var use int32
		if present && r.featureEnabled(ch) {
			use = 1
		}
		sh.SetInt(b.flag, use)
	}
}
