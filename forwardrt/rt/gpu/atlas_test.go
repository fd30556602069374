package gpu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gekko3d/forward/forwardrt/rt/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniAtlas = `// comment line
flat  basic.vs  flat.fs

\basic.vs
void main() {}
\flat.fs
void main() { }
`

func TestParseAtlas(t *testing.T) {
	atlas, err := ParseAtlas(miniAtlas)
	require.NoError(t, err)
	require.Len(t, atlas.Programs, 1)
	assert.Equal(t, ProgramDef{Name: "flat", Vertex: "basic.vs", Fragment: "flat.fs"}, atlas.Programs[0])
	assert.Equal(t, "void main() {}\n", atlas.Sections["basic.vs"])
	assert.Equal(t, "void main() { }\n", atlas.Sections["flat.fs"])
}

func TestParseAtlasErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no programs", "\\a.vs\nx\n"},
		{"bad header", "flat basic.vs\n\\basic.vs\nx\n"},
		{"missing section", "flat basic.vs flat.fs\n\\basic.vs\nx\n"},
		{"duplicate section", "flat a b\n\\a\nx\n\\a\ny\n\\b\nz\n"},
		{"empty section name", "flat a b\n\\\nx\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAtlas(tc.src)
			assert.Error(t, err)
		})
	}

	_, err := ParseAtlas("")
	assert.ErrorIs(t, err, ErrNoPrograms)
}

func TestDefaultAtlasCompiles(t *testing.T) {
	lib := NewShaderLibrary(NewRecorder())
	require.NoError(t, lib.LoadAtlasFS(shaders.FS, shaders.AtlasFile))

	assert.Equal(t, []string{"flat", "lightMP", "lightSP", "skybox", "texture"}, lib.Names())
	for _, name := range lib.Names() {
		assert.NotNil(t, lib.Get(name), name)
	}
	assert.Nil(t, lib.Get("missing"))
}

func TestLoadAtlasFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.glsl")
	require.NoError(t, os.WriteFile(path, []byte(shaders.AtlasGLSL), 0o644))

	lib := NewShaderLibrary(NewRecorder())
	require.NoError(t, lib.LoadAtlas(path))
	assert.NotNil(t, lib.Get("lightSP"))
}

func TestLoadAtlasFailures(t *testing.T) {
	lib := NewShaderLibrary(NewRecorder())

	err := lib.LoadAtlas(filepath.Join(t.TempDir(), "nope.glsl"))
	assert.ErrorIs(t, err, ErrAtlasLoad)

	err = lib.LoadAtlasFS(fstest.MapFS{"a.glsl": {Data: []byte("garbage line here too many")}}, "a.glsl")
	assert.ErrorIs(t, err, ErrAtlasLoad)

	rec := NewRecorder()
	rec.FailShaders = map[string]bool{"flat": true}
	lib = NewShaderLibrary(rec)
	err = lib.LoadAtlasSource("mini", miniAtlas)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAtlasLoad))
	assert.True(t, errors.Is(err, ErrShaderCompile))
	assert.Nil(t, lib.Get("flat"))
}
