package shaders

import (
	"embed"
)

// AtlasFile is the name of the default atlas inside FS.
const AtlasFile = "atlas.glsl"

//go:embed atlas.glsl
var FS embed.FS

//go:embed atlas.glsl
var AtlasGLSL string
