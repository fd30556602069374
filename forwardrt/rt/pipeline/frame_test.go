package pipeline

import (
	"math"
	"testing"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeIsTotalAndExclusive(t *testing.T) {
	mesh := core.NewCubeMesh(1, 1, 1)
	root := core.NewNode("root")
	a := root.AddChild(meshNode("a", mesh, core.DefaultMaterial(), mgl32.Vec3{1, 0, 0}))
	b := a.AddChild(meshNode("b", mesh, blendMaterial("glass"), mgl32.Vec3{0, 3, 0}))
	masked := core.DefaultMaterial()
	masked.AlphaMode = core.AlphaMask
	c := root.AddChild(meshNode("c", mesh, masked, mgl32.Vec3{}))
	d := b.AddChild(meshNode("d", nil, blendMaterial("bare"), mgl32.Vec3{0, 0, 4}))

	cam := core.NewCamera()
	cam.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	var f Frame
	f.reset(core.NewScene(), cam, true)
	f.categorize(root, cam)

	assert.Equal(t, []*core.Node{root, a, c}, f.Opaque)
	assert.Equal(t, []*core.Node{b, d}, f.Transparent)

	// Distances use the global translation.
	assert.InDelta(t, math.Sqrt(1+9), b.DistanceToCamera, 1e-5)
	assert.InDelta(t, math.Sqrt(1+9+16), d.DistanceToCamera, 1e-5)
	assert.Zero(t, a.DistanceToCamera)
	assert.Zero(t, c.DistanceToCamera)
}

func TestFrameResetBetweenFrames(t *testing.T) {
	h := newHarness(t, nil)
	scene := prefabScene(
		meshNode("solid", core.NewCubeMesh(1, 1, 1), core.DefaultMaterial(), mgl32.Vec3{0, 0, -5}),
		meshNode("glass", core.NewQuadMesh(1, 1), blendMaterial("glass"), mgl32.Vec3{0, 0, -3}),
	)
	scene.AddEntity(pointLight("p", mgl32.Vec3{}))

	first := h.r.RenderScene(scene, forwardCamera())
	second := h.r.RenderScene(scene, forwardCamera())

	assert.Equal(t, first, second)
	assert.Len(t, h.r.Frame().Opaque, 2)
	assert.Len(t, h.r.Frame().Transparent, 1)
	assert.Len(t, h.r.Frame().Lights, 1)
}

func TestSortBackToFront(t *testing.T) {
	mk := func(name string, d float32) *core.Node {
		n := core.NewNode(name)
		n.DistanceToCamera = d
		return n
	}
	n1, n2, n3, n4 := mk("1", 3), mk("2", 12), mk("3", 3), mk("4", 7)
	nodes := []*core.Node{n1, n2, n3, n4}

	sortBackToFront(nodes)

	assert.Equal(t, []*core.Node{n2, n4, n1, n3}, nodes)
	for i := 1; i < len(nodes); i++ {
		assert.GreaterOrEqual(t, nodes[i-1].DistanceToCamera, nodes[i].DistanceToCamera)
	}
}

func TestPackLights(t *testing.T) {
	var lights []*core.LightEntity
	for i := 0; i < 12; i++ {
		lights = append(lights, pointLight("p", mgl32.Vec3{float32(i), 0, 0}))
	}

	block := packLights(lights)
	require.Equal(t, MaxLightsSP, block.Count)
	for i := 0; i < MaxLightsSP; i++ {
		assert.Equal(t, float32(i), block.Position[i].X())
	}

	small := packLights(lights[:3])
	assert.Equal(t, 3, small.Count)
	assert.Equal(t, mgl32.Vec3{}, small.Position[3])

	assert.Zero(t, packLights(nil).Count)
}

func TestLightParams(t *testing.T) {
	l := core.NewLightEntity("spot", core.LightSpot)
	l.Color = mgl32.Vec3{1, 0.5, 0.25}
	l.Intensity = 2
	l.ConeInner, l.ConeOuter = 60, 90
	l.MaxDistance = 42

	parent := core.NewNode("arm")
	parent.Transform.Position = mgl32.Vec3{0, 10, 0}
	parent.AddChild(l.Root)
	l.Root.Transform.Position = mgl32.Vec3{1, 0, 0}
	l.Root.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	p := newLightParams(l)
	assert.True(t, p.Position.ApproxEqual(mgl32.Vec3{1, 10, 0}), "got %v", p.Position)
	// +Z rotated 90 degrees about Y points along +X.
	assert.InDelta(t, 1, p.Front.X(), 1e-5)
	assert.InDelta(t, 0, p.Front.Y(), 1e-5)
	assert.InDelta(t, 0, p.Front.Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{2, 1, 0.5}, p.Color)
	assert.InDelta(t, 0.5, p.Cone.X(), 1e-6)
	assert.InDelta(t, 0, p.Cone.Y(), 1e-6)
	assert.Equal(t, float32(42), p.MaxDistance)
	assert.Equal(t, int32(2), p.Type)

	orphan := core.NewLightEntity("dir", core.LightDirectional)
	orphan.Root = nil
	q := newLightParams(orphan)
	assert.Equal(t, mgl32.Vec3{}, q.Position)
	assert.Equal(t, int32(3), q.Type)
}
