package shader

import (
	"fmt"
	"log/slog"

	"github.com/richinsley/hekla/graphics"
)

// CompileError carries the compiler output for a failed stage.
type CompileError struct {
	Stage graphics.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the linker output for a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Unit is a compiled shader object for a single stage.
type Unit struct {
	ID    uint32
	Stage graphics.Stage
}

// Program is a linked shader program. It owns its GL object until Destroy.
type Program struct {
	dev graphics.Device
	ID  uint32
}

func (p *Program) Use() {
	p.dev.UseProgram(p.ID)
}

func (p *Program) Destroy() {
	if p == nil || p.ID == 0 {
		return
	}
	p.dev.DeleteProgram(p.ID)
	p.ID = 0
}

// Compile compiles source for stage. On failure the shader object is
// released and a *CompileError is returned.
func Compile(dev graphics.Device, stage graphics.Stage, source string) (Unit, error) {
	id, ok, infoLog := dev.CompileShader(stage, source)
	if !ok {
		dev.DeleteShader(id)
		return Unit{}, &CompileError{Stage: stage, Log: infoLog}
	}
	return Unit{ID: id, Stage: stage}, nil
}

// Link links a vertex and a fragment unit. Both units are deleted whether or
// not linking succeeds.
func Link(dev graphics.Device, vs, fs Unit) (*Program, error) {
	if vs.Stage != graphics.VertexStage || fs.Stage != graphics.FragmentStage {
		dev.DeleteShader(vs.ID)
		dev.DeleteShader(fs.ID)
		return nil, fmt.Errorf("link expects vertex and fragment units, got %s and %s", vs.Stage, fs.Stage)
	}

	id, ok, infoLog := dev.LinkProgram(vs.ID, fs.ID)
	dev.DeleteShader(vs.ID)
	dev.DeleteShader(fs.ID)
	if !ok {
		dev.DeleteProgram(id)
		return nil, &LinkError{Log: infoLog}
	}
	return &Program{dev: dev, ID: id}, nil
}

// Build compiles both stages and links them.
func Build(dev graphics.Device, vertexSource, fragmentSource string) (*Program, error) {
	vs, err := Compile(dev, graphics.VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := Compile(dev, graphics.FragmentStage, fragmentSource)
	if err != nil {
		dev.DeleteShader(vs.ID)
		return nil, err
	}
	p, err := Link(dev, vs, fs)
	if err != nil {
		return nil, err
	}
	slog.Debug("shader program linked", "program", p.ID)
	return p, nil
}
