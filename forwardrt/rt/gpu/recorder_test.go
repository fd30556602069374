package gpu

import (
	"image"
	"testing"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderSnapshotsStateAndUniforms(t *testing.T) {
	rec := NewRecorder()
	sh, err := rec.CompileShader("flat", "vs", "fs")
	require.NoError(t, err)

	mesh := core.NewCubeMesh(1, 1, 1)

	sh.Enable()
	sh.SetVec4("u_color", mgl32.Vec4{1, 0, 0, 1})
	rec.SetBlend(true)
	rec.SetDepthFunc(DepthEqual)
	rec.Draw(mesh, core.PrimitiveTriangles)

	sh.SetVec4("u_color", mgl32.Vec4{0, 1, 0, 1})
	rec.SetBlend(false)
	rec.Draw(mesh, core.PrimitiveLines)
	sh.Disable()

	rec.Draw(mesh, core.PrimitiveTriangles)

	require.Len(t, rec.Calls, 3)
	first, second, third := rec.Calls[0], rec.Calls[1], rec.Calls[2]

	assert.Equal(t, "flat", first.Shader)
	assert.True(t, first.State.Blend)
	assert.Equal(t, DepthEqual, first.State.DepthFunc)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, first.Vec4("u_color"))

	assert.False(t, second.State.Blend)
	assert.Equal(t, core.PrimitiveLines, second.Primitive)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, second.Vec4("u_color"))

	assert.Empty(t, third.Shader)
	assert.Empty(t, third.Uniforms)
	assert.Equal(t, 1, rec.Uploads)
}

func TestRecorderArraysAreCopied(t *testing.T) {
	rec := NewRecorder()
	sh, err := rec.CompileShader("lightSP", "vs", "fs")
	require.NoError(t, err)
	sh.Enable()

	cols := []mgl32.Vec3{{1, 1, 1}}
	sh.SetVec3Array("u_light_col", cols)
	cols[0] = mgl32.Vec3{}
	rec.Draw(core.NewQuadMesh(1, 1), core.PrimitiveTriangles)

	assert.Equal(t, []mgl32.Vec3{{1, 1, 1}}, rec.Calls[0].Vec3Array("u_light_col"))
}

func TestRecorderTextures(t *testing.T) {
	rec := NewRecorder()
	tex, err := rec.CreateTexture("white", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	assert.False(t, tex.Cubemap())

	_, err = rec.CreateTexture("nil", nil)
	assert.Error(t, err)

	var faces [6]*image.RGBA
	_, err = rec.CreateCubemap("sky", faces)
	assert.Error(t, err)
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}
	cube, err := rec.CreateCubemap("sky", faces)
	require.NoError(t, err)
	assert.True(t, cube.Cubemap())
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.False(t, s.Blend)
	assert.True(t, s.CullFace)
	assert.True(t, s.DepthTest)
	assert.Equal(t, DepthLess, s.DepthFunc)
	assert.Equal(t, PolygonFill, s.PolygonMode)
	assert.Equal(t, s, NewRecorder().State())
}
