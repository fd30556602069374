package pipeline

import (
	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame holds everything gathered for one RenderScene call. It is reset at
// the start of each frame and its lists only borrow nodes and lights from
// the scene.
type Frame struct {
	Scene  *core.Scene
	Camera *core.Camera

	Opaque      []*core.Node
	Transparent []*core.Node
	Lights      []*core.LightEntity

	// Ambient is the scene ambient term plus every ambient light entity.
	Ambient mgl32.Vec3

	collectLights bool
}

var _ core.FrameCollector = (*Frame)(nil)

func (f *Frame) reset(scene *core.Scene, camera *core.Camera, collectLights bool) {
	f.Scene = scene
	f.Camera = camera
	clear(f.Opaque)
	clear(f.Transparent)
	clear(f.Lights)
	f.Opaque = f.Opaque[:0]
	f.Transparent = f.Transparent[:0]
	f.Lights = f.Lights[:0]
	f.Ambient = mgl32.Vec3{}
	if scene != nil {
		f.Ambient = scene.AmbientLight
	}
	f.collectLights = collectLights
}

// classify asks every visible entity to contribute to the frame.
func (f *Frame) classify() {
	for _, ent := range f.Scene.Entities {
		if ent == nil || !ent.IsVisible() {
			continue
		}
		ent.Collect(f)
	}
}

func (f *Frame) CollectPrefab(root *core.Node) {
	if root != nil {
		f.categorize(root, f.Camera)
	}
}

func (f *Frame) CollectLight(light *core.LightEntity) {
	if !f.collectLights {
		return
	}
	if light.Type == core.LightAmbient {
		f.Ambient = f.Ambient.Add(light.Radiance())
		return
	}
	f.Lights = append(f.Lights, light)
}

// categorize walks node depth-first, parent before children. Nodes with a
// BLEND material get their camera distance written and go to the
// transparent list; everything else goes to the opaque list.
func (f *Frame) categorize(node *core.Node, camera *core.Camera) {
	if node.Material != nil && node.Material.AlphaMode == core.AlphaBlend {
		pos := core.Translation(node.GlobalMatrix())
		node.DistanceToCamera = pos.Sub(camera.Eye).Len()
		f.Transparent = append(f.Transparent, node)
	} else {
		f.Opaque = append(f.Opaque, node)
	}
	for _, child := range node.Children {
		f.categorize(child, camera)
	}
}
