package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/hekla/graphics"
)

// eventQueue turns GLFW callbacks into graphics events. GLFW only invokes
// callbacks from inside PollEvents, on the main thread, so no locking.
type eventQueue struct {
	pending []graphics.Event
}

func (q *eventQueue) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	q.pending = append(q.pending, graphics.KeyEvent{
		Key:    translateKey(key),
		Action: translateAction(action),
	})
}

func (q *eventQueue) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	q.pending = append(q.pending, graphics.ResizeEvent{Width: width, Height: height})
}

func (q *eventQueue) drain() []graphics.Event {
	events := q.pending
	q.pending = nil
	return events
}

// translateKey relies on graphics.Key sharing GLFW's key codes.
func translateKey(key glfw.Key) graphics.Key {
	return graphics.Key(key)
}

func translateAction(action glfw.Action) graphics.Action {
	switch action {
	case glfw.Press:
		return graphics.Press
	case glfw.Repeat:
		return graphics.Repeat
	default:
		return graphics.Release
	}
}
