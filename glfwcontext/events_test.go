package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/hekla/graphics"
)

func TestEventQueueOrder(t *testing.T) {
	var q eventQueue
	q.keyCallback(nil, glfw.KeyA, 0, glfw.Press, 0)
	q.framebufferSizeCallback(nil, 1024, 768)
	q.keyCallback(nil, glfw.KeyEscape, 0, glfw.Release, 0)

	got := q.drain()
	want := []graphics.Event{
		graphics.KeyEvent{Key: graphics.Key(glfw.KeyA), Action: graphics.Press},
		graphics.ResizeEvent{Width: 1024, Height: 768},
		graphics.KeyEvent{Key: graphics.KeyEscape, Action: graphics.Release},
	}
	if len(got) != len(want) {
		t.Fatalf("drain() returned %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}

	if rest := q.drain(); len(rest) != 0 {
		t.Errorf("second drain() = %v, want empty", rest)
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want graphics.Key
	}{
		{glfw.KeyEscape, graphics.KeyEscape},
		{glfw.KeyEnter, graphics.KeyEnter},
		{glfw.KeySpace, graphics.KeySpace},
		{glfw.KeyUnknown, graphics.KeyUnknown},
		{glfw.KeyQ, graphics.Key(glfw.KeyQ)},
	}
	for _, tt := range tests {
		if got := translateKey(tt.in); got != tt.want {
			t.Errorf("translateKey(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTranslateAction(t *testing.T) {
	tests := []struct {
		in   glfw.Action
		want graphics.Action
	}{
		{glfw.Press, graphics.Press},
		{glfw.Release, graphics.Release},
		{glfw.Repeat, graphics.Repeat},
	}
	for _, tt := range tests {
		if got := translateAction(tt.in); got != tt.want {
			t.Errorf("translateAction(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
