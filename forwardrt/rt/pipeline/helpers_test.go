package pipeline

import (
	"fmt"
	"image"
	"testing"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type fakeTextures struct {
	white    core.Texture
	named    map[string]core.Texture
	cubemaps map[string]core.Texture
}

func newFakeTextures(t *testing.T, rec *gpu.Recorder) *fakeTextures {
	white, err := rec.CreateTexture("white", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	return &fakeTextures{
		white:    white,
		named:    map[string]core.Texture{},
		cubemaps: map[string]core.Texture{},
	}
}

func (f *fakeTextures) Texture(path string) core.Texture { return f.named[path] }
func (f *fakeTextures) Cubemap(path string) core.Texture { return f.cubemaps[path] }
func (f *fakeTextures) WhiteTexture() core.Texture       { return f.white }

func (f *fakeTextures) make(t *testing.T, rec *gpu.Recorder, name string) core.Texture {
	tex, err := rec.CreateTexture(name, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, err)
	f.named[name] = tex
	return tex
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

type harness struct {
	r        *Renderer
	rec      *gpu.Recorder
	textures *fakeTextures
	log      *recordingLogger
	settings *Settings
}

const testTime = 1.5

func newHarness(t *testing.T, configure func(*Settings)) *harness {
	t.Helper()
	rec := gpu.NewRecorder()
	s := DefaultSettings()
	if configure != nil {
		configure(&s)
	}
	h := &harness{
		rec:      rec,
		textures: newFakeTextures(t, rec),
		log:      &recordingLogger{},
		settings: &s,
	}
	r, err := New(rec, h.textures, Config{
		Settings: h.settings,
		Clock:    func() float32 { return testTime },
		Logger:   h.log,
	})
	require.NoError(t, err)
	h.r = r
	return h
}

// camera at the origin looking down -Z.
func forwardCamera() *core.Camera {
	cam := core.NewCamera()
	cam.SetPerspective(60, 1, 0.1, 100)
	cam.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return cam
}

func meshNode(name string, mesh *core.Mesh, mat *core.Material, pos mgl32.Vec3) *core.Node {
	n := core.NewNode(name)
	n.Mesh = mesh
	n.Material = mat
	n.Transform.Position = pos
	return n
}

// prefabScene places nodes under one prefab entity without cloning them,
// so tests can inspect the same node pointers the renderer sees.
func prefabScene(nodes ...*core.Node) *core.Scene {
	root := core.NewNode("root")
	for _, n := range nodes {
		root.AddChild(n)
	}
	s := core.NewScene()
	s.AddEntity(&core.PrefabEntity{
		Name:    "prefab",
		Prefab:  core.NewPrefab("prefab", root),
		Root:    root,
		Visible: true,
	})
	return s
}

func blendMaterial(name string) *core.Material {
	m := core.NewMaterial(name, mgl32.Vec4{1, 1, 1, 0.5})
	m.AlphaMode = core.AlphaBlend
	return m
}

func pointLight(name string, pos mgl32.Vec3) *core.LightEntity {
	l := core.NewLightEntity(name, core.LightPoint)
	l.Root.Transform.Position = pos
	return l
}
