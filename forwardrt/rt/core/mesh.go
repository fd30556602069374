package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
	PrimitivePoints
)

// Mesh is CPU-side geometry plus an opaque handle owned by the GPU backend
// once uploaded. Meshes are shared between nodes and never freed by the
// render path.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Box       BoundingBox

	// Handle is set by the device on upload.
	Handle any
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// UpdateBoundingBox recomputes the local box from the positions.
func (m *Mesh) UpdateBoundingBox() {
	if len(m.Positions) == 0 {
		m.Box = BoundingBox{}
		return
	}
	minB, maxB := m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		minB = mgl32.Vec3{min(minB.X(), p.X()), min(minB.Y(), p.Y()), min(minB.Z(), p.Z())}
		maxB = mgl32.Vec3{max(maxB.X(), p.X()), max(maxB.Y(), p.Y()), max(maxB.Z(), p.Z())}
	}
	m.Box = BoxFromMinMax(minB, maxB)
}

// Interleaved packs position, normal and uv (8 floats per vertex).
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*8)
	for i, p := range m.Positions {
		var n mgl32.Vec3
		var uv mgl32.Vec2
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}
