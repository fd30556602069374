package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 30}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	identity := tr.Matrix().Mul4(tr.InverseMatrix())

	for i := 0; i < 4; i++ {
		if !closeEnough(identity.At(i, i), 1.0, 0.001) {
			t.Errorf("Identity matrix element [%d,%d] should be 1.0, got %f", i, i, identity.At(i, i))
		}
	}
}

func TestNodeGlobalMatrix(t *testing.T) {
	parent := NewNode("parent")
	parent.Transform.Position = mgl32.Vec3{10, 0, 0}

	child := parent.AddChild(NewNode("child"))
	child.Transform.Position = mgl32.Vec3{0, 5, 0}

	grandchild := child.AddChild(NewNode("grandchild"))
	grandchild.Transform.Position = mgl32.Vec3{0, 0, 2}

	assert.True(t, Translation(grandchild.GlobalMatrix()).ApproxEqual(mgl32.Vec3{10, 5, 2}))

	// Parent at (10, 0, 0), Rot 90deg Y. Child local (5, 0, 0).
	// WorldPos = (10, 0, 0) + RotY(90) * (5, 0, 0) = (10, 0, -5)
	parent.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	child.Transform.Position = mgl32.Vec3{5, 0, 0}

	got := Translation(child.GlobalMatrix())
	assert.InDelta(t, 0, got.Sub(mgl32.Vec3{10, 0, -5}).Len(), 0.001, "got %v", got)
}

func TestNodeCloneSharesAssets(t *testing.T) {
	mesh := NewCubeMesh(1, 1, 1)
	mat := DefaultMaterial()

	root := NewNode("root")
	leaf := root.AddChild(NewNode("leaf"))
	leaf.Mesh, leaf.Material = mesh, mat

	cp := root.Clone()
	require.Len(t, cp.Children, 1)
	assert.NotSame(t, leaf, cp.Children[0])
	assert.Same(t, mesh, cp.Children[0].Mesh)
	assert.Same(t, mat, cp.Children[0].Material)
	assert.Same(t, cp, cp.Children[0].Parent())

	cp.Children[0].Transform.Position = mgl32.Vec3{1, 2, 3}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, leaf.Transform.Position)
}

func TestNodeWalkOrder(t *testing.T) {
	root := NewNode("a")
	b := root.AddChild(NewNode("b"))
	b.AddChild(NewNode("c"))
	root.AddChild(NewNode("d"))

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestAddChildReparents(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	c := a.AddChild(NewNode("c"))
	b.AddChild(c)

	assert.Empty(t, a.Children)
	assert.Same(t, b, c.Parent())
}

type collectorStub struct {
	prefabs []*Node
	lights  []*LightEntity
}

func (c *collectorStub) CollectPrefab(root *Node)        { c.prefabs = append(c.prefabs, root) }
func (c *collectorStub) CollectLight(light *LightEntity) { c.lights = append(c.lights, light) }

func TestEntityCollect(t *testing.T) {
	prefab := NewPrefab("crate", NewNode("crate"))
	withPrefab := NewPrefabEntity("crate-1", prefab)
	empty := NewPrefabEntity("empty", nil)
	light := NewLightEntity("sun", LightDirectional)
	marker := &MarkerEntity{Name: "spawn", Visible: true}

	c := &collectorStub{}
	for _, e := range []Entity{withPrefab, empty, light, marker} {
		e.Collect(c)
	}

	require.Len(t, c.prefabs, 1)
	assert.Same(t, withPrefab.Root, c.prefabs[0])
	require.Len(t, c.lights, 1)
	assert.Same(t, light, c.lights[0])
}

func TestMeshBoundingBox(t *testing.T) {
	m := NewCubeMesh(2, 4, 6)
	assert.True(t, m.Box.HalfSize.ApproxEqual(mgl32.Vec3{1, 2, 3}), "got %v", m.Box.HalfSize)
	assert.True(t, m.Box.Center.ApproxEqual(mgl32.Vec3{0, 0, 0}))
	assert.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.Interleaved(), 24*8)
}

func TestParseEnums(t *testing.T) {
	mode, err := ParseAlphaMode("blend")
	require.NoError(t, err)
	assert.Equal(t, AlphaBlend, mode)

	_, err = ParseAlphaMode("glass")
	assert.Error(t, err)

	ch, err := ParseTextureChannel("METALLIC_ROUGHNESS")
	require.NoError(t, err)
	assert.Equal(t, ChannelMetallicRoughness, ch)

	lt, err := ParseLightType("spot")
	require.NoError(t, err)
	assert.Equal(t, LightSpot, lt)
}

func TestPrefabInstantiate(t *testing.T) {
	root := NewNode("crate")
	root.Mesh = NewCubeMesh(1, 1, 1)
	prefab := NewPrefab("crate", root)

	tr := NewTransform()
	tr.Position = mgl32.Vec3{4, 0, 0}
	a := prefab.Instantiate("a", tr)
	b := prefab.Instantiate("b", NewTransform())

	require.Len(t, a.Root.Children, 1)
	assert.NotSame(t, root, a.Root.Children[0])
	assert.NotSame(t, a.Root.Children[0], b.Root.Children[0])
	assert.Same(t, root.Mesh, a.Root.Children[0].Mesh)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, Translation(a.Root.Children[0].GlobalMatrix()))
}

func TestSceneAddEntityAndFind(t *testing.T) {
	s := NewScene()
	sun := NewLightEntity("sun", LightDirectional)
	spawn := &MarkerEntity{Name: "spawn", Visible: true}
	s.AddEntity(sun, nil, spawn)
	s.AddEntity()

	require.Len(t, s.Entities, 3)
	assert.Same(t, spawn, s.Find("spawn"))
	assert.Same(t, sun, s.Find("sun"))
	assert.Nil(t, s.Find("missing"))
}

func TestNilEntitiesAreHidden(t *testing.T) {
	c := &collectorStub{}
	for _, e := range []Entity{(*PrefabEntity)(nil), (*LightEntity)(nil), (*MarkerEntity)(nil)} {
		assert.False(t, e.IsVisible())
		assert.Empty(t, e.EntityName())
		assert.NotPanics(t, func() { e.Collect(c) })
	}
	assert.Empty(t, c.prefabs)
	assert.Empty(t, c.lights)
}
