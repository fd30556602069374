package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box stored as center and half extents.
type BoundingBox struct {
	Center   mgl32.Vec3
	HalfSize mgl32.Vec3
}

func BoxFromMinMax(minB, maxB mgl32.Vec3) BoundingBox {
	return BoundingBox{
		Center:   minB.Add(maxB).Mul(0.5),
		HalfSize: maxB.Sub(minB).Mul(0.5),
	}
}

func (b BoundingBox) Min() mgl32.Vec3 { return b.Center.Sub(b.HalfSize) }
func (b BoundingBox) Max() mgl32.Vec3 { return b.Center.Add(b.HalfSize) }

// TransformBoundingBox returns the conservative world-space box enclosing the
// eight transformed corners of box.
func TransformBoundingBox(m mgl32.Mat4, box BoundingBox) BoundingBox {
	minB, maxB := box.Min(), box.Max()
	corners := [8]mgl32.Vec3{
		{minB.X(), minB.Y(), minB.Z()},
		{maxB.X(), minB.Y(), minB.Z()},
		{minB.X(), maxB.Y(), minB.Z()},
		{maxB.X(), maxB.Y(), minB.Z()},
		{minB.X(), minB.Y(), maxB.Z()},
		{maxB.X(), minB.Y(), maxB.Z()},
		{minB.X(), maxB.Y(), maxB.Z()},
		{maxB.X(), maxB.Y(), maxB.Z()},
	}

	inf := float32(1e20)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}

	for _, c := range corners {
		wc := m.Mul4x1(c.Vec4(1.0)).Vec3()
		wMin = mgl32.Vec3{min(wMin.X(), wc.X()), min(wMin.Y(), wc.Y()), min(wMin.Z(), wc.Z())}
		wMax = mgl32.Vec3{max(wMax.X(), wc.X()), max(wMax.Y(), wc.Y()), max(wMax.Z(), wc.Z())}
	}

	return BoxFromMinMax(wMin, wMax)
}

// BoxInFrustum checks a center/half-size box against 6 planes whose normals
// point inside. A box is rejected only when it lies entirely behind a plane.
func BoxInFrustum(center, halfSize mgl32.Vec3, planes [6]mgl32.Vec4) bool {
	for i := 0; i < 6; i++ {
		p := planes[i]
		// Projected radius of the box onto the plane normal.
		r := abs32(p[0])*halfSize[0] + abs32(p[1])*halfSize[1] + abs32(p[2])*halfSize[2]
		dist := p[0]*center[0] + p[1]*center[1] + p[2]*center[2] + p[3]
		if dist+r < 0 {
			return false
		}
	}
	return true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
