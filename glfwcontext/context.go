package glfwcontext

import (
	"fmt"
	"log/slog"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/hekla/graphics"
	"github.com/richinsley/hekla/options"
)

// Context owns a GLFW window and its OpenGL context.
type Context struct {
	window *glfw.Window
	events eventQueue
}

var _ graphics.Window = (*Context)(nil)

// New creates a window with a core profile context of the requested version
// and makes it current on the calling thread.
func New(opts *options.Options, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graphics.ErrWindowCreation, err)
	}
	win.MakeContextCurrent()

	c := &Context{window: win}
	win.SetFramebufferSizeCallback(c.events.framebufferSizeCallback)
	win.SetKeyCallback(c.events.keyCallback)
	return c, nil
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) RequestClose() {
	c.window.SetShouldClose(true)
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

// PollEvents processes pending GLFW events. The callbacks fired while doing
// so are collected and returned in order.
func (c *Context) PollEvents() []graphics.Event {
	glfw.PollEvents()
	return c.events.drain()
}

func (c *Context) FramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Shutdown only destroys the window; call TerminateGraphics afterwards.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %v", graphics.ErrWindowCreation, err)
	}
	slog.Debug("GLFW initialized", "version", glfw.GetVersionString())
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	slog.Debug("GLFW terminated")
}
