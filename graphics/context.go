package graphics

import "errors"

var (
	// ErrWindowCreation is returned when the window or its GL context cannot be created.
	ErrWindowCreation = errors.New("window creation failed")
	// ErrLoader is returned when the GL entry points cannot be resolved.
	ErrLoader = errors.New("failed to load OpenGL functions")
)

// Window defines the interface for a window owning an OpenGL context.
type Window interface {
	ShouldClose() bool
	RequestClose()
	SwapBuffers()
	// PollEvents drains pending OS events and returns them in arrival order.
	PollEvents() []Event
	FramebufferSize() (int, int)
	Shutdown()
}

// Key identifies a keyboard key. Values match GLFW key codes.
type Key int

const (
	KeyUnknown Key = -1
	KeySpace   Key = 32
	KeyEscape  Key = 256
	KeyEnter   Key = 257
)

// Action is the transition a key went through.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is delivered synchronously from Window.PollEvents.
type Event interface {
	isEvent()
}

// KeyEvent reports a key transition.
type KeyEvent struct {
	Key    Key
	Action Action
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
