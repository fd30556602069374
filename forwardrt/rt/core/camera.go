package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the view and projection of the frame being rendered. It is
// passed explicitly to the renderer; there is no global current camera.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3

	Fov    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4

	planes [6]mgl32.Vec4
}

func NewCamera() *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 2, 10},
		Center: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Fov:    45,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
	}
	c.updateMatrices()
	return c
}

func (c *Camera) LookAt(eye, center, up mgl32.Vec3) {
	c.Eye, c.Center, c.Up = eye, center, up
	c.updateMatrices()
}

func (c *Camera) SetPerspective(fov, aspect, near, far float32) {
	c.Fov, c.Aspect, c.Near, c.Far = fov, aspect, near, far
	c.updateMatrices()
}

// SetViewProjection overrides the matrices directly, bypassing LookAt and
// SetPerspective.
func (c *Camera) SetViewProjection(eye mgl32.Vec3, view, projection mgl32.Mat4) {
	c.Eye = eye
	c.View = view
	c.Projection = projection
	c.ViewProjection = projection.Mul4(view)
	c.planes = ExtractFrustum(c.ViewProjection)
}

func (c *Camera) Forward() mgl32.Vec3 {
	f := c.Center.Sub(c.Eye)
	if f.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

func (c *Camera) updateMatrices() {
	c.View = mgl32.LookAtV(c.Eye, c.Center, c.Up)
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
	c.ViewProjection = c.Projection.Mul4(c.View)
	c.planes = ExtractFrustum(c.ViewProjection)
}

func (c *Camera) FrustumPlanes() [6]mgl32.Vec4 {
	return c.planes
}

// TestBoxInFrustum reports whether the world-space box given by center and
// half-size may be visible. Boxes straddling a plane count as visible.
func (c *Camera) TestBoxInFrustum(center, halfSize mgl32.Vec3) bool {
	return BoxInFrustum(center, halfSize, c.planes)
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0 with the normal pointing inside.
func ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	var planes [6]mgl32.Vec4

	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes[0] = r3.Add(r0) // Left
	planes[1] = r3.Sub(r0) // Right
	planes[2] = r3.Add(r1) // Bottom
	planes[3] = r3.Sub(r1) // Top
	planes[4] = r3.Add(r2) // Near (OpenGL-style -1..1)
	planes[5] = r3.Sub(r2) // Far

	for i := 0; i < 6; i++ {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}

	return planes
}
