// Package graphicstest provides in-memory implementations of the graphics
// interfaces for tests that must run without a GPU or a display.
package graphicstest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/hekla/graphics"
)

// Device records every call it receives and hands out increasing object IDs.
type Device struct {
	Calls []string

	// FailCompile makes CompileShader fail for the given stages.
	FailCompile map[graphics.Stage]string
	// FailLink makes LinkProgram fail with this log when non-empty.
	FailLink string

	Buffers map[uint32][]byte

	nextID    uint32
	live      map[uint32]string
	bound     map[graphics.BufferTarget]uint32
	viewport  [4]int32
	clearedTo mgl32.Vec4
}

var _ graphics.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		Buffers: make(map[uint32][]byte),
		live:    make(map[uint32]string),
		bound:   make(map[graphics.BufferTarget]uint32),
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) alloc(kind string) uint32 {
	d.nextID++
	d.live[d.nextID] = kind
	return d.nextID
}

func (d *Device) free(kind string, id uint32) {
	if d.live[id] == kind {
		delete(d.live, id)
	}
}

// Live returns the number of objects of kind ("shader", "program", "buffer",
// "vertexarray") that were created and not yet deleted.
func (d *Device) Live(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps object state.
func (d *Device) Reset() {
	d.Calls = nil
}

// Count returns how many recorded calls equal call.
func (d *Device) Count(call string) int {
	n := 0
	for _, c := range d.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (d *Device) CurrentViewport() [4]int32 { return d.viewport }

func (d *Device) ClearedTo() mgl32.Vec4 { return d.clearedTo }

func (d *Device) Info() graphics.Info {
	return graphics.Info{
		Version:     "3.3.0 Fake",
		GLSLVersion: "3.30",
		Vendor:      "hekla",
		Renderer:    "graphicstest",
	}
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.viewport = [4]int32{x, y, width, height}
	d.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

func (d *Device) Clear(color mgl32.Vec4) {
	d.clearedTo = color
	d.record("Clear(%v)", color)
}

func (d *Device) CompileShader(stage graphics.Stage, source string) (uint32, bool, string) {
	id := d.alloc("shader")
	d.record("CompileShader(%s)", stage)
	if msg, ok := d.FailCompile[stage]; ok {
		return id, false, msg
	}
	return id, true, ""
}

func (d *Device) DeleteShader(id uint32) {
	d.free("shader", id)
	d.record("DeleteShader(%d)", id)
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, bool, string) {
	id := d.alloc("program")
	d.record("LinkProgram(%v)", shaders)
	if d.FailLink != "" {
		return id, false, d.FailLink
	}
	return id, true, ""
}

func (d *Device) DeleteProgram(id uint32) {
	d.free("program", id)
	d.record("DeleteProgram(%d)", id)
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram(%d)", id)
}

func (d *Device) GenVertexArray() uint32 {
	id := d.alloc("vertexarray")
	d.record("GenVertexArray() = %d", id)
	return id
}

func (d *Device) BindVertexArray(id uint32) {
	d.record("BindVertexArray(%d)", id)
}

func (d *Device) DeleteVertexArray(id uint32) {
	d.free("vertexarray", id)
	d.record("DeleteVertexArray(%d)", id)
}

func (d *Device) GenBuffer() uint32 {
	id := d.alloc("buffer")
	d.record("GenBuffer() = %d", id)
	return id
}

func (d *Device) BindBuffer(target graphics.BufferTarget, id uint32) {
	d.bound[target] = id
	d.record("BindBuffer(%d,%d)", target, id)
}

func (d *Device) DeleteBuffer(id uint32) {
	d.free("buffer", id)
	delete(d.Buffers, id)
	d.record("DeleteBuffer(%d)", id)
}

func (d *Device) BufferFloats(target graphics.BufferTarget, data []float32) {
	d.Buffers[d.bound[target]] = []byte(fmt.Sprint(data))
	d.record("BufferFloats(%d,%d)", target, len(data))
}

func (d *Device) BufferUints(target graphics.BufferTarget, data []uint32) {
	d.Buffers[d.bound[target]] = []byte(fmt.Sprint(data))
	d.record("BufferUints(%d,%d)", target, len(data))
}

func (d *Device) VertexAttrib(slot uint32, size, stride int32, offset int) {
	d.record("VertexAttrib(%d,%d,%d,%d)", slot, size, stride, offset)
}

func (d *Device) DrawTriangles(count int32) {
	d.record("DrawTriangles(%d)", count)
}

// ReadPixels returns a frame whose rows are filled with their row index.
func (d *Device) ReadPixels(width, height int) []byte {
	d.record("ReadPixels(%d,%d)", width, height)
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		row := pixels[y*width*4 : (y+1)*width*4]
		for i := range row {
			row[i] = byte(y)
		}
	}
	return pixels
}

// Window replays scripted event batches, one batch per PollEvents call.
type Window struct {
	Width, Height int
	Script        [][]graphics.Event

	closing   bool
	Swaps     int
	Polls     int
	Destroyed bool
}

var _ graphics.Window = (*Window)(nil)

func NewWindow(width, height int, script ...[]graphics.Event) *Window {
	return &Window{Width: width, Height: height, Script: script}
}

func (w *Window) ShouldClose() bool { return w.closing }

func (w *Window) RequestClose() { w.closing = true }

func (w *Window) SwapBuffers() { w.Swaps++ }

// PollEvents returns the next scripted batch. Once the script runs out the
// window closes itself, as a user clicking the close button would.
func (w *Window) PollEvents() []graphics.Event {
	w.Polls++
	if len(w.Script) == 0 {
		w.closing = true
		return nil
	}
	batch := w.Script[0]
	w.Script = w.Script[1:]
	for _, ev := range batch {
		if r, ok := ev.(graphics.ResizeEvent); ok {
			w.Width, w.Height = r.Width, r.Height
		}
	}
	return batch
}

func (w *Window) FramebufferSize() (int, int) { return w.Width, w.Height }

func (w *Window) Shutdown() { w.Destroyed = true }
