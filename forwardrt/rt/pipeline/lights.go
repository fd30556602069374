package pipeline

import (
	"math"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLightsSP is the light capacity of the single-pass shader.
const MaxLightsSP = 10

// LightCodeAmbientPass is the light type code of the multi-pass base draw.
// It never comes from a scene light.
const LightCodeAmbientPass int32 = 4

// lightParams is one light reduced to what the shaders consume.
type lightParams struct {
	Position    mgl32.Vec3
	Front       mgl32.Vec3
	Color       mgl32.Vec3
	Cone        mgl32.Vec2
	MaxDistance float32
	Type        int32
}

func newLightParams(l *core.LightEntity) lightParams {
	model := mgl32.Ident4()
	if l.Root != nil {
		model = l.Root.GlobalMatrix()
	}
	return lightParams{
		Position:    core.Translation(model),
		Front:       core.FrontVector(model),
		Color:       l.Radiance(),
		Cone:        mgl32.Vec2{cosDeg(l.ConeInner), cosDeg(l.ConeOuter)},
		MaxDistance: l.MaxDistance,
		Type:        int32(l.Type),
	}
}

func (p lightParams) upload(sh gpu.Shader) {
	sh.SetVec3("u_light_pos", p.Position)
	sh.SetVec3("u_light_front", p.Front)
	sh.SetVec3("u_light_col", p.Color)
	sh.SetVec2("u_cone_info", p.Cone)
	sh.SetFloat("u_max_distance", p.MaxDistance)
	sh.SetInt("u_light_type", p.Type)
}

// LightBlock is the fixed-size uniform layout of the single-pass shader.
type LightBlock struct {
	Count       int
	Position    [MaxLightsSP]mgl32.Vec3
	Front       [MaxLightsSP]mgl32.Vec3
	Color       [MaxLightsSP]mgl32.Vec3
	Cone        [MaxLightsSP]mgl32.Vec2
	MaxDistance [MaxLightsSP]float32
	Type        [MaxLightsSP]int32
}

// packLights fills a block with the first MaxLightsSP lights. The rest are
// dropped.
func packLights(lights []*core.LightEntity) LightBlock {
	var b LightBlock
	for _, l := range lights {
		if b.Count == MaxLightsSP {
			break
		}
		p := newLightParams(l)
		i := b.Count
		b.Position[i] = p.Position
		b.Front[i] = p.Front
		b.Color[i] = p.Color
		b.Cone[i] = p.Cone
		b.MaxDistance[i] = p.MaxDistance
		b.Type[i] = p.Type
		b.Count++
	}
	return b
}

// upload always sends full-capacity arrays; u_num_lights bounds the loop.
func (b *LightBlock) upload(sh gpu.Shader) {
	sh.SetInt("u_num_lights", int32(b.Count))
	sh.SetVec3Array("u_light_pos", b.Position[:])
	sh.SetVec3Array("u_light_front", b.Front[:])
	sh.SetVec3Array("u_light_col", b.Color[:])
	sh.SetVec2Array("u_cone_info", b.Cone[:])
	sh.SetFloatArray("u_max_distance", b.MaxDistance[:])
	sh.SetIntArray("u_light_type", b.Type[:])
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180))
}
