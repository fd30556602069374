package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

// Values double as the shader-side light type codes.
const (
	LightPoint       LightType = 1
	LightSpot        LightType = 2
	LightDirectional LightType = 3
	LightAmbient     LightType = 4
)

func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "POINT"
	case LightSpot:
		return "SPOT"
	case LightDirectional:
		return "DIRECTIONAL"
	case LightAmbient:
		return "AMBIENT"
	}
	return fmt.Sprintf("LightType(%d)", uint32(t))
}

func ParseLightType(s string) (LightType, error) {
	switch strings.ToUpper(s) {
	case "POINT":
		return LightPoint, nil
	case "SPOT":
		return LightSpot, nil
	case "DIRECTIONAL":
		return LightDirectional, nil
	case "AMBIENT":
		return LightAmbient, nil
	}
	return 0, fmt.Errorf("unknown light type %q", s)
}

// LightEntity is a scene-level light. Position and orientation come from its
// own transform node.
type LightEntity struct {
	Name        string
	Type        LightType
	Root        *Node
	Color       mgl32.Vec3 // RGB
	Intensity   float32
	ConeInner   float32 // half-angle in degrees (spot)
	ConeOuter   float32 // half-angle in degrees (spot)
	MaxDistance float32
	Visible     bool
}

func NewLightEntity(name string, typ LightType) *LightEntity {
	return &LightEntity{
		Name:        name,
		Type:        typ,
		Root:        NewNode(name),
		Color:       mgl32.Vec3{1, 1, 1},
		Intensity:   1,
		ConeInner:   20,
		ConeOuter:   30,
		MaxDistance: 100,
		Visible:     true,
	}
}

func (l *LightEntity) EntityName() string {
	if l == nil {
		return ""
	}
	return l.Name
}

func (l *LightEntity) IsVisible() bool { return l != nil && l.Visible }

func (l *LightEntity) Collect(c FrameCollector) {
	if l == nil {
		return
	}
	c.CollectLight(l)
}

// Radiance is the light colour scaled by its intensity.
func (l *LightEntity) Radiance() mgl32.Vec3 {
	return l.Color.Mul(l.Intensity)
}
