package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/hekla/graphics"
)

const (
	bytesFloat32       = 4
	vertexPositionSize = 3 // x,y,z
	positionSlot       = 0 // layout (location = 0) in the vertex shader
)

// quadVertices are the corners of a centered quad in normalized device coordinates.
var quadVertices = []mgl32.Vec3{
	{0.5, 0.5, 0.0},   // top right
	{0.5, -0.5, 0.0},  // bottom right
	{-0.5, -0.5, 0.0}, // bottom left
	{-0.5, 0.5, 0.0},  // top left
}

// quadIndices split the quad into two triangles.
var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// Mesh is an indexed triangle list resident on the GPU: a vertex array object
// plus the vertex and element buffers it references. Its contents never
// change after NewMesh.
type Mesh struct {
	dev        graphics.Device
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// NewQuad uploads the unit quad.
func NewQuad(dev graphics.Device) *Mesh {
	return NewMesh(dev, quadVertices, quadIndices)
}

// NewMesh uploads positions and indices and describes the layout as a tightly
// packed vec3 in attribute slot 0.
func NewMesh(dev graphics.Device, vertices []mgl32.Vec3, indices []uint32) *Mesh {
	m := &Mesh{dev: dev, IndexCount: int32(len(indices))}

	m.VAO = dev.GenVertexArray()
	dev.BindVertexArray(m.VAO)

	m.VBO = dev.GenBuffer()
	dev.BindBuffer(graphics.ArrayBuffer, m.VBO)
	dev.BufferFloats(graphics.ArrayBuffer, flatten(vertices))

	// The element buffer binding is captured by the bound VAO.
	m.EBO = dev.GenBuffer()
	dev.BindBuffer(graphics.ElementArrayBuffer, m.EBO)
	dev.BufferUints(graphics.ElementArrayBuffer, indices)

	dev.VertexAttrib(positionSlot, vertexPositionSize, vertexPositionSize*bytesFloat32, 0)

	dev.BindVertexArray(0)
	return m
}

// Draw issues a single indexed draw of the whole mesh.
func (m *Mesh) Draw() {
	m.dev.BindVertexArray(m.VAO)
	m.dev.DrawTriangles(m.IndexCount)
	m.dev.BindVertexArray(0)
}

func (m *Mesh) Destroy() {
	if m == nil || m.VAO == 0 {
		return
	}
	m.dev.DeleteVertexArray(m.VAO)
	m.dev.DeleteBuffer(m.VBO)
	m.dev.DeleteBuffer(m.EBO)
	m.VAO, m.VBO, m.EBO = 0, 0, 0
}

func flatten(vertices []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vertices)*vertexPositionSize)
	for _, v := range vertices {
		out = append(out, v.X(), v.Y(), v.Z())
	}
	return out
}
