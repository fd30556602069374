package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func NewSphereMesh(radius float32, slices, stacks int) *Mesh {
	m := &Mesh{Name: "sphere"}
	for y := 0; y <= stacks; y++ {
		v := float32(y) / float32(stacks)
		phi := float64(v) * math.Pi
		for x := 0; x <= slices; x++ {
			u := float32(x) / float32(slices)
			theta := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			m.Positions = append(m.Positions, n.Mul(radius))
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, mgl32.Vec2{u, v})
		}
	}
	row := uint32(slices + 1)
	for y := 0; y < stacks; y++ {
		for x := 0; x < slices; x++ {
			a := uint32(y)*row + uint32(x)
			b := a + row
			m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
	m.UpdateBoundingBox()
	return m
}

// NewCubeMesh builds a box centred at the origin with the given full size.
func NewCubeMesh(sizeX, sizeY, sizeZ float32) *Mesh {
	hx, hy, hz := sizeX/2, sizeY/2, sizeZ/2
	m := &Mesh{Name: "cube"}
	faces := []struct {
		n, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	half := mgl32.Vec3{hx, hy, hz}
	scale := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
	}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			m.Positions = append(m.Positions, scale(p))
			m.Normals = append(m.Normals, f.n)
			m.UVs = append(m.UVs, mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.UpdateBoundingBox()
	return m
}

// NewQuadMesh builds a unit-normal +Z quad in the XY plane.
func NewQuadMesh(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	m := &Mesh{
		Name: "quad",
		Positions: []mgl32.Vec3{
			{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0},
		},
		Normals: []mgl32.Vec3{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		},
		UVs: []mgl32.Vec2{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.UpdateBoundingBox()
	return m
}

// NewPlaneMesh builds a +Y facing ground plane in the XZ plane.
func NewPlaneMesh(size float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Name: "plane",
		Positions: []mgl32.Vec3{
			{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h},
		},
		Normals: []mgl32.Vec3{
			{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
		},
		UVs: []mgl32.Vec2{
			{0, 0}, {size, 0}, {size, size}, {0, size},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.UpdateBoundingBox()
	return m
}

// NewWireCubeMesh builds the 12 edges of a cube spanning -1..1, meant to be
// drawn as lines and scaled by a box half-size.
func NewWireCubeMesh() *Mesh {
	lo, hi := float32(-1), float32(1)
	m := &Mesh{
		Name: "wirecube",
		Positions: []mgl32.Vec3{
			{lo, lo, lo}, {hi, lo, lo}, {hi, lo, hi}, {lo, lo, hi},
			{lo, hi, lo}, {hi, hi, lo}, {hi, hi, hi}, {lo, hi, hi},
		},
		Indices: []uint32{
			// Bottom
			0, 1, 1, 2, 2, 3, 3, 0,
			// Top
			4, 5, 5, 6, 6, 7, 7, 4,
			// Sides
			0, 4, 1, 5, 2, 6, 3, 7,
		},
	}
	m.UpdateBoundingBox()
	return m
}

// NewProceduralMesh resolves a named primitive. Params follow the order used
// by the scene files: sphere [radius], cube [x y z], quad [w h], plane [size].
func NewProceduralMesh(kind string, params []float32) (*Mesh, bool) {
	param := func(i int, def float32) float32 {
		if i < len(params) && params[i] > 0 {
			return params[i]
		}
		return def
	}
	switch kind {
	case "sphere":
		return NewSphereMesh(param(0, 1), 32, 16), true
	case "cube":
		return NewCubeMesh(param(0, 1), param(1, 1), param(2, 1)), true
	case "quad":
		return NewQuadMesh(param(0, 1), param(1, 1)), true
	case "plane":
		return NewPlaneMesh(param(0, 10)), true
	}
	return nil, false
}
