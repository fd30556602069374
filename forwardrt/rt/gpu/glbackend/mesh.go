package glbackend

import (
	"fmt"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type meshBuffers struct {
	vao, vbo, ebo uint32
	vertexCount   int32
	indexCount    int32
}

const floatsPerVertex = 8

func (d *Device) UploadMesh(m *core.Mesh) error {
	if _, ok := m.Handle.(*meshBuffers); ok {
		return nil
	}
	if m.VertexCount() == 0 {
		return fmt.Errorf("mesh %s: no vertices", m.Name)
	}

	data := m.Interleaved()
	buf := &meshBuffers{
		vertexCount: int32(m.VertexCount()),
		indexCount:  int32(len(m.Indices)),
	}

	gl.GenVertexArrays(1, &buf.vao)
	gl.GenBuffers(1, &buf.vbo)
	gl.BindVertexArray(buf.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	if buf.indexCount > 0 {
		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	m.Handle = buf
	return nil
}

func (d *Device) Draw(m *core.Mesh, primitive core.Primitive) {
	if err := d.UploadMesh(m); err != nil {
		return
	}
	buf := m.Handle.(*meshBuffers)

	mode := uint32(gl.TRIANGLES)
	switch primitive {
	case core.PrimitiveLines:
		mode = gl.LINES
	case core.PrimitivePoints:
		mode = gl.POINTS
	}

	gl.BindVertexArray(buf.vao)
	if buf.indexCount > 0 {
		gl.DrawElements(mode, buf.indexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, buf.vertexCount)
	}
	gl.BindVertexArray(0)
}

// ReleaseMesh frees the GPU buffers of m, if any.
func (d *Device) ReleaseMesh(m *core.Mesh) {
	buf, ok := m.Handle.(*meshBuffers)
	if !ok {
		return
	}
	if buf.ebo != 0 {
		gl.DeleteBuffers(1, &buf.ebo)
	}
	gl.DeleteBuffers(1, &buf.vbo)
	gl.DeleteVertexArrays(1, &buf.vao)
	m.Handle = nil
}
