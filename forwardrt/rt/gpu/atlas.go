package gpu

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

var (
	ErrAtlasLoad     = errors.New("shader atlas load failed")
	ErrShaderCompile = errors.New("shader compile failed")
	ErrNoPrograms    = errors.New("shader atlas declares no programs")
)

// ProgramDef names a program and the atlas sections holding its stages.
type ProgramDef struct {
	Name     string
	Vertex   string
	Fragment string
}

// Atlas is a parsed shader atlas: a header of program lines
//
//	name vertex.vs fragment.fs
//
// followed by source sections, each opened by a line "\section.name".
// Lines starting with // in the header are comments.
type Atlas struct {
	Programs []ProgramDef
	Sections map[string]string
}

func ParseAtlas(src string) (*Atlas, error) {
	atlas := &Atlas{Sections: map[string]string{}}

	var current string
	var body strings.Builder
	inHeader := true
	flush := func() {
		if current != "" {
			atlas.Sections[current] = body.String()
		}
		body.Reset()
	}

	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, `\`) {
			flush()
			inHeader = false
			current = strings.TrimSpace(trimmed[1:])
			if current == "" {
				return nil, fmt.Errorf("line %d: empty section name", lineNo)
			}
			if _, dup := atlas.Sections[current]; dup {
				return nil, fmt.Errorf("line %d: duplicate section %q", lineNo, current)
			}
			continue
		}

		if inHeader {
			if trimmed == "" || strings.HasPrefix(trimmed, "//") {
				continue
			}
			fields := strings.Fields(trimmed)
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: expected \"name vs fs\", got %q", lineNo, trimmed)
			}
			atlas.Programs = append(atlas.Programs, ProgramDef{Name: fields[0], Vertex: fields[1], Fragment: fields[2]})
			continue
		}

		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(atlas.Programs) == 0 {
		return nil, ErrNoPrograms
	}
	for _, p := range atlas.Programs {
		for _, sec := range []string{p.Vertex, p.Fragment} {
			if _, ok := atlas.Sections[sec]; !ok {
				return nil, fmt.Errorf("program %s: missing section %q", p.Name, sec)
			}
		}
	}
	return atlas, nil
}

// ShaderLibrary compiles atlas programs on a device and hands them out by
// name.
type ShaderLibrary struct {
	device  Device
	shaders map[string]Shader
}

func NewShaderLibrary(device Device) *ShaderLibrary {
	return &ShaderLibrary{device: device, shaders: map[string]Shader{}}
}

func (l *ShaderLibrary) LoadAtlas(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAtlasLoad, err)
	}
	return l.LoadAtlasSource(path, string(data))
}

func (l *ShaderLibrary) LoadAtlasFS(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAtlasLoad, err)
	}
	return l.LoadAtlasSource(path, string(data))
}

// LoadAtlasSource parses src and compiles every program it declares. Any
// parse or compile failure fails the whole load; programs compiled before
// the failure are discarded.
func (l *ShaderLibrary) LoadAtlasSource(origin, src string) error {
	atlas, err := ParseAtlas(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAtlasLoad, origin, err)
	}

	compiled := make(map[string]Shader, len(atlas.Programs))
	for _, p := range atlas.Programs {
		sh, err := l.device.CompileShader(p.Name, atlas.Sections[p.Vertex], atlas.Sections[p.Fragment])
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAtlasLoad, origin, err)
		}
		compiled[p.Name] = sh
	}
	for name, sh := range compiled {
		l.shaders[name] = sh
	}
	return nil
}

// Get returns the named program or nil.
func (l *ShaderLibrary) Get(name string) Shader {
	return l.shaders[name]
}

func (l *ShaderLibrary) Names() []string {
	names := make([]string, 0, len(l.shaders))
	for n := range l.shaders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
