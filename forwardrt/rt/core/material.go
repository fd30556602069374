package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type AlphaMode uint32

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaOpaque:
		return "OPAQUE"
	case AlphaMask:
		return "MASK"
	case AlphaBlend:
		return "BLEND"
	}
	return fmt.Sprintf("AlphaMode(%d)", uint32(m))
}

func ParseAlphaMode(s string) (AlphaMode, error) {
	switch strings.ToUpper(s) {
	case "", "OPAQUE":
		return AlphaOpaque, nil
	case "MASK":
		return AlphaMask, nil
	case "BLEND":
		return AlphaBlend, nil
	}
	return AlphaOpaque, fmt.Errorf("unknown alpha mode %q", s)
}

type TextureChannel int

const (
	ChannelAlbedo TextureChannel = iota
	ChannelNormalMap
	ChannelEmissive
	ChannelOcclusion
	ChannelMetallicRoughness

	TextureChannelCount
)

var channelNames = [TextureChannelCount]string{
	"albedo",
	"normalmap",
	"emissive",
	"occlusion",
	"metallic_roughness",
}

func (c TextureChannel) String() string {
	if c >= 0 && c < TextureChannelCount {
		return channelNames[c]
	}
	return fmt.Sprintf("TextureChannel(%d)", int(c))
}

func ParseTextureChannel(s string) (TextureChannel, error) {
	for i, name := range channelNames {
		if strings.EqualFold(name, s) {
			return TextureChannel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown texture channel %q", s)
}

// Texture is a loaned handle to a GPU texture living in an asset cache.
// It stays valid for at least the lifetime of the scene that references it.
type Texture interface {
	Name() string
	Size() (width, height int)
	Cubemap() bool
}

type Material struct {
	Name           string
	Color          mgl32.Vec4 // RGBA
	AlphaMode      AlphaMode
	AlphaCutoff    float32 // only used by AlphaMask
	TwoSided       bool
	EmissiveFactor mgl32.Vec3
	Textures       [TextureChannelCount]Texture
}

func NewMaterial(name string, color mgl32.Vec4) *Material {
	return &Material{
		Name:        name,
		Color:       color,
		AlphaMode:   AlphaOpaque,
		AlphaCutoff: 0.5,
	}
}

// DefaultMaterial is opaque white.
func DefaultMaterial() *Material {
	return NewMaterial("default", mgl32.Vec4{1, 1, 1, 1})
}

func (m *Material) Texture(ch TextureChannel) Texture {
	if ch < 0 || ch >= TextureChannelCount {
		return nil
	}
	return m.Textures[ch]
}

func (m *Material) SetTexture(ch TextureChannel, tex Texture) {
	m.Textures[ch] = tex
}
