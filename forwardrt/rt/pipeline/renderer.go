package pipeline

import (
	"fmt"
	"time"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/gekko3d/forward/forwardrt/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// Logger is the logging the renderer needs.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// TextureSource hands out textures owned by an asset cache. Lookups that
// fail return nil.
type TextureSource interface {
	Texture(path string) core.Texture
	Cubemap(path string) core.Texture
	WhiteTexture() core.Texture
}

// Config configures New. The zero value uses the built-in atlas and
// DefaultSettings.
type Config struct {
	// AtlasPath is a shader atlas on disk. Empty selects the built-in atlas.
	AtlasPath string
	Settings  *Settings
	// Clock feeds u_time in seconds. Defaults to time since New.
	Clock  func() float32
	Logger Logger
}

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Opaque      int
	Transparent int
	Lights      int
	Hidden      int
	Culled      int
	Draws       int
	Overlays    int
	Skybox      bool
}

// Renderer is a forward renderer. It owns only per-frame lists and two
// small procedural meshes; textures, shaders and scene meshes are borrowed.
type Renderer struct {
	device   gpu.Device
	shaders  *gpu.ShaderLibrary
	textures TextureSource
	settings *Settings
	clock    func() float32
	log      Logger

	frame Frame
	stats FrameStats

	sphere   *core.Mesh
	wireCube *core.Mesh
	missing  map[string]bool
}

// New loads the shader atlas and prepares the renderer. An atlas that
// cannot be loaded yields an error wrapping gpu.ErrAtlasLoad.
func New(device gpu.Device, textures TextureSource, cfg Config) (*Renderer, error) {
	r := &Renderer{
		device:   device,
		shaders:  gpu.NewShaderLibrary(device),
		textures: textures,
		settings: cfg.Settings,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		sphere:   core.NewSphereMesh(1, 32, 16),
		wireCube: core.NewWireCubeMesh(),
		missing:  map[string]bool{},
	}
	if r.settings == nil {
		s := DefaultSettings()
		r.settings = &s
	}
	if r.log == nil {
		r.log = nopLogger{}
	}
	if r.clock == nil {
		start := time.Now()
		r.clock = func() float32 { return float32(time.Since(start).Seconds()) }
	}

	var err error
	if cfg.AtlasPath != "" {
		err = r.shaders.LoadAtlas(cfg.AtlasPath)
	} else {
		err = r.shaders.LoadAtlasFS(shaders.FS, shaders.AtlasFile)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	r.log.Debugf("renderer: loaded shaders %v", r.shaders.Names())

	for _, m := range []*core.Mesh{r.sphere, r.wireCube} {
		if err := device.UploadMesh(m); err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
	}
	return r, nil
}

// Settings returns the live settings; changes apply from the next frame.
func (r *Renderer) Settings() *Settings { return r.settings }

// Shaders returns the loaded shader library.
func (r *Renderer) Shaders() *gpu.ShaderLibrary { return r.shaders }

// Frame exposes the lists of the last rendered frame.
func (r *Renderer) Frame() *Frame { return &r.frame }

// strategy picks the shading path for the current settings.
func (r *Renderer) strategy() ShadingStrategy {
	if !r.settings.UseLighting {
		return unlitStrategy{r: r}
	}
	return litStrategy{r: r, multipass: r.settings.Multipass}
}

// RenderScene draws one frame of scene as seen by camera.
func (r *Renderer) RenderScene(scene *core.Scene, camera *core.Camera) FrameStats {
	r.stats = FrameStats{}
	if scene == nil || camera == nil {
		r.frame.reset(scene, camera, false)
		r.log.Warnf("renderer: nothing to render (scene=%v camera=%v)", scene != nil, camera != nil)
		return r.stats
	}

	// Setup.
	r.frame.reset(scene, camera, !r.settings.DisableLights)
	skybox := r.resolveSkybox(scene)
	r.restoreState()

	// Clear.
	bg := scene.BackgroundColor
	r.device.SetClearColor(mgl32.Vec4{bg.X(), bg.Y(), bg.Z(), 1})
	r.device.Clear()

	if skybox != nil {
		r.stats.Skybox = r.renderSkybox(skybox) > 0
	}

	r.frame.classify()
	strategy := r.strategy()

	for _, node := range r.frame.Opaque {
		r.renderNode(node, strategy)
	}

	sortBackToFront(r.frame.Transparent)
	for _, node := range r.frame.Transparent {
		r.renderNode(node, strategy)
	}

	r.stats.Opaque = len(r.frame.Opaque)
	r.stats.Transparent = len(r.frame.Transparent)
	r.stats.Lights = len(r.frame.Lights)
	return r.stats
}

// renderNode draws a single node if it is visible, complete and inside the
// frustum. Children are not visited; they have their own list entries.
func (r *Renderer) renderNode(node *core.Node, strategy ShadingStrategy) {
	if !node.Visible {
		r.stats.Hidden++
		return
	}
	model := node.GlobalMatrix()
	if !node.Renderable() {
		return
	}

	box := core.TransformBoundingBox(model, node.Mesh.Box)
	if !r.frame.Camera.TestBoxInFrustum(box.Center, box.HalfSize) {
		r.stats.Culled++
		return
	}

	if r.settings.Boundaries {
		r.stats.Overlays += r.renderBounding(model, node.Mesh)
	}
	r.stats.Draws += strategy.Shade(model, node.Mesh, node.Material)
}

var boundingColor = mgl32.Vec4{0, 1, 0, 1}

// renderBounding outlines the mesh's local box under model.
func (r *Renderer) renderBounding(model mgl32.Mat4, mesh *core.Mesh) int {
	sh := r.shader("flat")
	if sh == nil {
		return 0
	}
	box := mesh.Box
	m := model.
		Mul4(mgl32.Translate3D(box.Center.X(), box.Center.Y(), box.Center.Z())).
		Mul4(mgl32.Scale3D(box.HalfSize.X(), box.HalfSize.Y(), box.HalfSize.Z()))

	r.device.SetBlend(false)
	sh.Enable()
	sh.SetMat4("u_model", m)
	r.bindCamera(sh)
	sh.SetVec4("u_color", boundingColor)
	r.device.Draw(r.wireCube, core.PrimitiveLines)
	sh.Disable()
	r.restoreState()
	return 1
}
