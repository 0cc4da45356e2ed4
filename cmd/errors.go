package main

import (
	"errors"
	"log/slog"

	"github.com/richinsley/hekla/encoder"
	"github.com/richinsley/hekla/graphics"
	"github.com/richinsley/hekla/shader"
)

// failureMessage names the startup step that produced err.
func failureMessage(err error) string {
	var compileErr *shader.CompileError
	var linkErr *shader.LinkError
	switch {
	case errors.Is(err, graphics.ErrWindowCreation):
		return "Failed to create GLFW window"
	case errors.Is(err, graphics.ErrLoader):
		return "Failed to initialize OpenGL function loader"
	case errors.As(err, &compileErr):
		return "Shader " + compileErr.Stage.String() + " compilation failed"
	case errors.As(err, &linkErr):
		return "Shader program linking failed"
	case errors.Is(err, encoder.ErrRecording):
		return "Recording failed"
	default:
		return "Hekla failed"
	}
}

// reportFailure logs err at error level. The error text carries the full
// compiler or linker log when a shader stage failed.
func reportFailure(err error) {
	slog.Error(failureMessage(err), "error", err)
}
