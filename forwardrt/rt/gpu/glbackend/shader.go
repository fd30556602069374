package glbackend

import (
	"fmt"
	"strings"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type shader struct {
	name      string
	program   uint32
	locations map[string]int32
}

func newShader(name, vertexSrc, fragmentSrc string) (*shader, error) {
	vert, err := compileStage(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%w: %s vertex: %w", gpu.ErrShaderCompile, name, err)
	}
	frag, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return nil, fmt.Errorf("%w: %s fragment: %w", gpu.ErrShaderCompile, name, err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("%w: %s link: %v", gpu.ErrShaderCompile, name, log)
	}

	return &shader{name: name, program: prog, locations: map[string]int32{}}, nil
}

func compileStage(src string, stage uint32) (uint32, error) {
	sh := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%v", log)
	}
	return sh, nil
}

func (s *shader) Name() string { return s.name }
func (s *shader) Enable()      { gl.UseProgram(s.program) }
func (s *shader) Disable()     { gl.UseProgram(0) }

// location caches lookups; -1 (not declared) is cached too.
func (s *shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

func (s *shader) SetFloat(name string, v float32) {
	if loc := s.location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (s *shader) SetInt(name string, v int32) {
	if loc := s.location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func (s *shader) SetVec2(name string, v mgl32.Vec2) {
	if loc := s.location(name); loc >= 0 {
		gl.Uniform2f(loc, v[0], v[1])
	}
}

func (s *shader) SetVec3(name string, v mgl32.Vec3) {
	if loc := s.location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (s *shader) SetVec4(name string, v mgl32.Vec4) {
	if loc := s.location(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (s *shader) SetMat4(name string, m mgl32.Mat4) {
	if loc := s.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (s *shader) SetTexture(name string, tex core.Texture, slot int) {
	loc := s.location(name)
	t, ok := tex.(*texture)
	if loc < 0 || !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(t.target(), t.id)
	gl.Uniform1i(loc, int32(slot))
	gl.ActiveTexture(gl.TEXTURE0)
}

func (s *shader) SetFloatArray(name string, v []float32) {
	if loc := s.location(name); loc >= 0 && len(v) > 0 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

func (s *shader) SetIntArray(name string, v []int32) {
	if loc := s.location(name); loc >= 0 && len(v) > 0 {
		gl.Uniform1iv(loc, int32(len(v)), &v[0])
	}
}

func (s *shader) SetVec2Array(name string, v []mgl32.Vec2) {
	if loc := s.location(name); loc >= 0 && len(v) > 0 {
		gl.Uniform2fv(loc, int32(len(v)), &v[0][0])
	}
}

func (s *shader) SetVec3Array(name string, v []mgl32.Vec3) {
	if loc := s.location(name); loc >= 0 && len(v) > 0 {
		gl.Uniform3fv(loc, int32(len(v)), &v[0][0])
	}
}
