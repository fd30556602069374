package pipeline

import (
	"path/filepath"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

const skyboxScale = 10

// resolveSkybox looks up the scene's cubemap. No file name or a failed
// lookup both mean no skybox.
func (r *Renderer) resolveSkybox(scene *core.Scene) core.Texture {
	if scene.SkyboxFilename == "" {
		return nil
	}
	tex := r.textures.Cubemap(filepath.Join(scene.BaseFolder, scene.SkyboxFilename))
	if tex == nil {
		r.log.Debugf("skybox %q not available", scene.SkyboxFilename)
	}
	return tex
}

// renderSkybox draws the sphere around the eye with depth test and culling
// off, then restores the defaults.
func (r *Renderer) renderSkybox(cubemap core.Texture) int {
	sh := r.shader("skybox")
	if sh == nil {
		return 0
	}
	cam := r.frame.Camera

	r.device.SetBlend(false)
	r.device.SetDepthTest(false)
	r.device.SetCullFace(false)
	if r.settings.Wireframe {
		r.device.SetPolygonMode(gpu.PolygonLine)
	}

	sh.Enable()
	model := mgl32.Translate3D(cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z()).
		Mul4(mgl32.Scale3D(skyboxScale, skyboxScale, skyboxScale))
	sh.SetMat4("u_model", model)
	r.bindCamera(sh)
	sh.SetTexture("u_texture", cubemap, 0)
	r.device.Draw(r.sphere, core.PrimitiveTriangles)
	sh.Disable()

	r.restoreState()
	return 1
}
