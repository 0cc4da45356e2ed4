package renderer

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/hekla/graphics"
	"github.com/richinsley/hekla/shader"
)

// State is the render loop's lifecycle state.
type State int

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	if s == Closing {
		return "closing"
	}
	return "running"
}

// FrameSink receives every presented frame as RGBA rows, bottom row first.
type FrameSink interface {
	WriteFrame(pixels []byte, width, height int) error
	// Done reports that the sink wants no more frames.
	Done() bool
}

// Renderer draws the quad every frame until its window is asked to close.
// All GPU objects it uses are created before the first frame and are only
// bound, never modified, inside the loop.
type Renderer struct {
	dev        graphics.Device
	window     graphics.Window
	program    *shader.Program
	mesh       *Mesh
	background mgl32.Vec4
	sink       FrameSink

	pending []graphics.Event
	state   State
	frames  int
}

// Setup logs the driver strings, builds the shader program and uploads the
// quad. The returned renderer owns both and releases them in Destroy.
func Setup(dev graphics.Device, window graphics.Window, background mgl32.Vec4) (*Renderer, error) {
	info := dev.Info()
	slog.Info("OpenGL version", "version", info.Version)
	slog.Info("GLSL version", "version", info.GLSLVersion)
	slog.Info("OpenGL vendor", "vendor", info.Vendor)
	slog.Info("OpenGL renderer", "renderer", info.Renderer)

	mesh := NewQuad(dev)
	program, err := shader.Build(dev, shader.VertexSource, shader.FragmentSource)
	if err != nil {
		mesh.Destroy()
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	return New(dev, window, program, mesh, background), nil
}

// New wires an already built program and mesh into a renderer and matches
// the viewport to the window's current framebuffer.
func New(dev graphics.Device, window graphics.Window, program *shader.Program, mesh *Mesh, background mgl32.Vec4) *Renderer {
	r := &Renderer{
		dev:        dev,
		window:     window,
		program:    program,
		mesh:       mesh,
		background: background,
		state:      Running,
	}
	r.resize(window.FramebufferSize())
	return r
}

// SetFrameSink makes every drawn frame be read back and written to s.
func (r *Renderer) SetFrameSink(s FrameSink) {
	r.sink = s
}

func (r *Renderer) State() State {
	return r.state
}

// Frames returns how many frames have been presented.
func (r *Renderer) Frames() int {
	return r.frames
}

// Run steps the loop until the window should close and returns the number
// of frames presented.
func (r *Renderer) Run() (int, error) {
	for !r.window.ShouldClose() {
		if err := r.Step(); err != nil {
			return r.frames, err
		}
	}
	r.state = Closing
	return r.frames, nil
}

// Step handles the events gathered by the previous poll, then draws,
// presents and polls once unless a close was requested.
func (r *Renderer) Step() error {
	r.processInput(r.pending)
	r.pending = nil
	if r.window.ShouldClose() {
		r.state = Closing
		return nil
	}

	r.DrawFrame()
	if r.sink != nil {
		if err := r.capture(); err != nil {
			return err
		}
	}
	r.window.SwapBuffers()
	r.frames++
	r.pending = r.window.PollEvents()
	return nil
}

// DrawFrame clears the framebuffer and draws the quad. It issues the same
// calls every time.
func (r *Renderer) DrawFrame() {
	r.dev.Clear(r.background)
	r.program.Use()
	r.mesh.Draw()
}

func (r *Renderer) processInput(events []graphics.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case graphics.KeyEvent:
			if e.Key == graphics.KeyEscape && e.Action == graphics.Press {
				r.window.RequestClose()
				r.state = Closing
			}
		case graphics.ResizeEvent:
			r.resize(e.Width, e.Height)
		}
	}
}

func (r *Renderer) resize(width, height int) {
	r.dev.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) capture() error {
	width, height := r.window.FramebufferSize()
	if err := r.sink.WriteFrame(r.dev.ReadPixels(width, height), width, height); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", r.frames, err)
	}
	if r.sink.Done() {
		slog.Info("Recording complete", "frames", r.frames+1)
		r.window.RequestClose()
		r.state = Closing
	}
	return nil
}

// Destroy releases the program and the mesh.
func (r *Renderer) Destroy() {
	r.program.Destroy()
	r.mesh.Destroy()
}
