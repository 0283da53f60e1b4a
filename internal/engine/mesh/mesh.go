// Package mesh uploads indexed OBJ meshes to OpenGL buffers.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/breakout/pkg/formats"
)

// Attribute locations shared with the mesh shader.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2
)

// Attrib describes one float vertex attribute inside the interleaved buffer.
type Attrib struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// Stride is the byte size of one formats.OBJVertex.
const Stride = int32(unsafe.Sizeof(formats.OBJVertex{}))

// AttribLayout returns the attribute bindings in location order.
func AttribLayout() []Attrib {
	var v formats.OBJVertex
	return []Attrib{
		{Location: AttribPosition, Components: 3, Offset: unsafe.Offsetof(v.Position)},
		{Location: AttribNormal, Components: 3, Offset: unsafe.Offsetof(v.Normal)},
		{Location: AttribTexCoord, Components: 2, Offset: unsafe.Offsetof(v.TexCoord)},
	}
}

// Mesh is a GPU-resident indexed triangle mesh.
type Mesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Upload copies the mesh into a new VAO with vertex and element buffers.
// It must run on the thread owning the GL context.
func Upload(m *formats.OBJMesh) (*Mesh, error) {
	if m == nil {
		return nil, fmt.Errorf("upload: nil mesh")
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	gm := &Mesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(Stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	for _, a := range AttribLayout() {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, Stride, a.Offset)
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gm, nil
}

// IndexCount returns the number of indices drawn by Draw.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

// Draw issues one indexed triangle draw call.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
