package graphics

import "github.com/go-gl/mathgl/mgl32"

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// BufferTarget selects the binding point a buffer is uploaded to.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Info holds the strings the driver reports about the current context.
type Info struct {
	Version     string
	GLSLVersion string
	Vendor      string
	Renderer    string
}

// Device is the subset of the OpenGL API issued by the application.
// All methods must be called on the thread that owns the context.
type Device interface {
	Info() Info

	Viewport(x, y, width, height int32)
	Clear(color mgl32.Vec4)

	// CompileShader creates and compiles a shader object. When ok is false,
	// infoLog holds the full compiler output and the object must still be deleted.
	CompileShader(stage Stage, source string) (id uint32, ok bool, infoLog string)
	DeleteShader(id uint32)
	// LinkProgram creates a program from the given shaders and links it.
	LinkProgram(shaders ...uint32) (id uint32, ok bool, infoLog string)
	DeleteProgram(id uint32)
	UseProgram(id uint32)

	GenVertexArray() uint32
	BindVertexArray(id uint32)
	DeleteVertexArray(id uint32)
	GenBuffer() uint32
	BindBuffer(target BufferTarget, id uint32)
	DeleteBuffer(id uint32)
	BufferFloats(target BufferTarget, data []float32)
	BufferUints(target BufferTarget, data []uint32)
	// VertexAttrib describes float attribute slot as size components with the
	// given byte stride and offset into the bound array buffer, and enables it.
	VertexAttrib(slot uint32, size, stride int32, offset int)

	// DrawTriangles issues an indexed triangle draw of count uint32 indices.
	DrawTriangles(count int32)

	// ReadPixels reads the back framebuffer as tightly packed RGBA rows,
	// bottom row first.
	ReadPixels(width, height int) []byte
}
