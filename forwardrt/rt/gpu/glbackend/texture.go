package glbackend

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type texture struct {
	id      uint32
	name    string
	w, h    int
	cubemap bool
}

func (t *texture) Name() string     { return t.name }
func (t *texture) Size() (int, int) { return t.w, t.h }
func (t *texture) Cubemap() bool    { return t.cubemap }

func (t *texture) target() uint32 {
	if t.cubemap {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

func newTexture2D(name string, img *image.RGBA) (*texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %s: nil image", name)
	}
	b := img.Bounds()
	t := &texture{name: name, w: b.Dx(), h: b.Dy()}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.w), int32(t.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func newCubemap(name string, faces [6]*image.RGBA) (*texture, error) {
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("cubemap %s: face %d missing", name, i)
		}
	}
	b := faces[0].Bounds()
	t := &texture{name: name, w: b.Dx(), h: b.Dy(), cubemap: true}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	for i, f := range faces {
		fb := f.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, int32(fb.Dx()), int32(fb.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}
