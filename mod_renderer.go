package forward

import (
	"github.com/gekko3d/forward/forwardrt/rt/pipeline"
)

// RendererModule draws SceneResource once per frame. It needs a
// DeviceResource, AssetServer and SceneResource; TimeModule is optional and
// feeds u_time. A shader atlas that fails to load stops the app with exit
// code 1.
type RendererModule struct {
	AtlasPath string
	Settings  *pipeline.Settings
}

type RendererState struct {
	Renderer *pipeline.Renderer
	Last     pipeline.FrameStats
	Frames   uint64
}

var toggleKeys = [...]int{KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9}

const statsEvery = 300

func (m RendererModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[RendererState](app); ok {
		app.Logger().Errorf("renderer installed twice")
		panic("renderer already installed")
	}
	dev := MustResource[DeviceResource](app)
	assets := MustResource[AssetServer](app)

	settings := m.Settings
	if settings == nil {
		defaults := pipeline.DefaultSettings()
		settings = &defaults
	}
	var clock func() float32
	if t, ok := Resource[Time](app); ok {
		clock = t.Seconds
	}

	renderer, err := pipeline.New(dev.Device, assets, pipeline.Config{
		AtlasPath: m.AtlasPath,
		Settings:  settings,
		Clock:     clock,
		Logger:    app.Logger(),
	})
	if err != nil {
		cmd.Logger().Errorf("%v", err)
		cmd.Exit(1)
		return
	}
	cmd.AddResources(&RendererState{Renderer: renderer})

	app.UseSystem(
		System(rendererToggleSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func rendererToggleSystem(input *Input, state *RendererState, cmd *Commands) {
	for i, toggle := range state.Renderer.Settings().Toggles() {
		if i >= len(toggleKeys) {
			break
		}
		if !input.JustPressed[toggleKeys[i]] {
			continue
		}
		*toggle.Value = !*toggle.Value
		cmd.Logger().Infof("%s: %s", toggle.Label, onOff(*toggle.Value))
	}
}

func renderSystem(state *RendererState, scene *SceneResource, dev *DeviceResource, cmd *Commands) {
	if cam := scene.Camera; cam != nil && cam.Aspect != dev.Aspect() {
		cam.SetPerspective(cam.Fov, dev.Aspect(), cam.Near, cam.Far)
	}

	state.Last = state.Renderer.RenderScene(scene.Scene, scene.Camera)
	state.Frames++

	if state.Frames%statsEvery == 1 {
		s := state.Last
		cmd.Logger().Debugf("frame %d: %d opaque, %d transparent, %d lights, %d culled, %d draws",
			state.Frames, s.Opaque, s.Transparent, s.Lights, s.Culled, s.Draws)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
