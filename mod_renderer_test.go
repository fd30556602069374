package forward

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/forward/forwardrt/rt/pipeline"
)

type loggerModule struct {
	logger *DefaultLogger
}

func (m loggerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(m.logger)
}

func newHeadlessApp(t *testing.T, renderer RendererModule, frames uint64) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewAppBuilder().
		WithFrameLimit(frames).
		UseModule(
			loggerModule{NewWriterLogger(&out, &errOut, "test", true)},
			TimeModule{},
			HeadlessModule{Width: 800, Height: 400},
			AssetServerModule{},
			SceneModule{},
			renderer,
		).
		Build()
	return app, &out, &errOut
}

func TestHeadlessRenderDefaultScene(t *testing.T) {
	app, _, errOut := newHeadlessApp(t, RendererModule{}, 3)
	app.Run()

	assert.Equal(t, 0, app.ExitCode())
	state := MustResource[RendererState](app)
	dev := MustResource[DeviceResource](app)
	rec, ok := dev.Recorder()
	require.True(t, ok)

	assert.Equal(t, uint64(3), state.Frames)
	assert.Equal(t, 2, state.Last.Transparent)
	assert.Equal(t, 3, state.Last.Lights)
	assert.Equal(t, 7, state.Last.Draws)
	assert.Len(t, rec.Calls, state.Last.Draws, "recorder holds only the last frame")
	assert.Equal(t, 1, rec.Clears)
	assert.Equal(t, [2]int{800, 400}, rec.Viewport)
	assert.Len(t, rec.CallsWith("lightSP"), 7)
	assert.Empty(t, errOut.String())

	cam := MustResource[SceneResource](app).Camera
	assert.InDelta(t, 2, cam.Aspect, 1e-6)
}

func TestRendererTogglesFromKeys(t *testing.T) {
	app, out, _ := newHeadlessApp(t, RendererModule{}, 0)
	input := MustResource[Input](app)
	state := MustResource[RendererState](app)
	rec, _ := MustResource[DeviceResource](app).Recorder()

	require.True(t, app.Step())
	require.False(t, state.Renderer.Settings().Multipass)

	input.Press(KeyF3)
	require.True(t, app.Step())
	assert.True(t, state.Renderer.Settings().Multipass)
	assert.NotEmpty(t, rec.CallsWith("lightMP"))
	assert.Empty(t, rec.CallsWith("lightSP"))
	assert.Contains(t, out.String(), "Multipass: on")

	// The key is still held, so no second toggle.
	require.True(t, app.Step())
	assert.True(t, state.Renderer.Settings().Multipass)

	input.Release(KeyF3)
	input.Press(KeyF4)
	require.True(t, app.Step())
	assert.False(t, state.Renderer.Settings().UseLighting)
	assert.Len(t, rec.CallsWith("texture"), state.Last.Draws)
}

func TestRendererUsesGivenSettings(t *testing.T) {
	settings := pipeline.DefaultSettings()
	settings.Boundaries = true
	app, _, _ := newHeadlessApp(t, RendererModule{Settings: &settings}, 1)
	app.Run()

	state := MustResource[RendererState](app)
	assert.Same(t, &settings, state.Renderer.Settings())
	assert.Equal(t, state.Last.Draws, state.Last.Overlays)
}

func TestRendererAtlasFailureExits(t *testing.T) {
	app, _, errOut := newHeadlessApp(t, RendererModule{AtlasPath: filepath.Join(t.TempDir(), "none.glsl")}, 5)

	assert.Equal(t, 1, app.ExitCode())
	_, ok := Resource[RendererState](app)
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "ERROR")

	app.Run()
	assert.Equal(t, uint64(0), app.Frame())
}

func TestFlyingCameraMovesForward(t *testing.T) {
	server, _, _ := newTestAssets(t)
	scene, cam, err := BuildScene(&SceneDef{Camera: CameraDef{Eye: mgl32.Vec3{0, 0, 10}, Center: mgl32.Vec3{0, 0, 0}}}, server)
	require.NoError(t, err)
	res := &SceneResource{Scene: scene, Camera: cam}

	input := &Input{}
	fly := &FlyingCamera{Speed: 2, Sensitivity: 0.1}
	clock := &Time{Dt: time.Second}

	input.Press(KeyW)
	FlyingCameraInputSystem(input, fly)
	FlyingCameraControlSystem(clock, fly, res)

	assert.InDelta(t, 0, fly.Yaw, 1e-4)
	assert.InDelta(t, 0, fly.Pitch, 1e-4)
	assert.InDelta(t, 8, cam.Eye.Z(), 1e-4)
	assert.InDelta(t, -1, cam.Forward().Z(), 1e-4)

	input.Release(KeyW)
	input.Press(KeyD)
	FlyingCameraInputSystem(input, fly)
	FlyingCameraControlSystem(clock, fly, res)
	assert.InDelta(t, 2, cam.Eye.X(), 1e-4)
}

func TestFlyingCameraMouseLook(t *testing.T) {
	server, _, _ := newTestAssets(t)
	scene, cam, err := BuildScene(&SceneDef{Camera: CameraDef{Eye: mgl32.Vec3{0, 0, 10}, Center: mgl32.Vec3{0, 0, 0}}}, server)
	require.NoError(t, err)
	res := &SceneResource{Scene: scene, Camera: cam}

	input := &Input{}
	fly := &FlyingCamera{Speed: 1, Sensitivity: 1}
	input.Press(KeyTab)
	FlyingCameraInputSystem(input, fly)
	require.True(t, input.MouseCaptured)

	input.clearEdges()
	input.MouseDeltaX = 90
	input.MouseDeltaY = -1000
	FlyingCameraInputSystem(input, fly)
	FlyingCameraControlSystem(&Time{Dt: time.Millisecond}, fly, res)

	assert.InDelta(t, 90, fly.Yaw, 1e-3)
	assert.InDelta(t, 89, fly.Pitch, 1e-3, "pitch is clamped")
}

func TestRendererInstalledOnce(t *testing.T) {
	assert.PanicsWithValue(t, "renderer already installed", func() {
		NewAppBuilder().
			UseModule(HeadlessModule{}, AssetServerModule{}, SceneModule{}).
			UseModule(RendererModule{}, RendererModule{}).
			Build()
	})
}
