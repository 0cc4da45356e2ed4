package translator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/hekla/graphics"
)

const (
	coreHeader = "#version 330 core"
	esHeader   = "#version 300 es\nprecision highp float;\nprecision highp int;"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide ANGLE translator, creating it on
// first use.
func GetTranslator(ctx context.Context) (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// Report is the result of validating one shader stage.
type Report struct {
	Stage graphics.Stage
	// Code is the source as ANGLE re-emits it for GLSL 330.
	Code string
	// Variables lists the active uniforms, inputs and outputs by source name.
	Variables []string
}

// Validate checks a GLSL 330 core source without a GPU by running it
// through ANGLE as ESSL 3.00 and emitting GLSL 330.
func Validate(ctx context.Context, stage graphics.Stage, source string) (*Report, error) {
	t, err := GetTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	es, err := toESSL(source)
	if err != nil {
		return nil, err
	}
	out, err := t.TranslateShader(es, stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}

	r := &Report{Stage: stage, Code: out.Code}
	for name := range out.Variables {
		r.Variables = append(r.Variables, name)
	}
	sort.Strings(r.Variables)
	return r, nil
}

// toESSL swaps the desktop version directive for an ESSL 3.00 one with
// default precisions. Everything else in the shaders is shared syntax.
func toESSL(source string) (string, error) {
	first, rest, _ := strings.Cut(source, "\n")
	if strings.TrimSpace(first) != coreHeader {
		return "", fmt.Errorf("expected %q on the first line, got %q", coreHeader, first)
	}
	return esHeader + "\n" + rest, nil
}
