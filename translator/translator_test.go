package translator

import (
	"context"
	"strings"
	"testing"

	"github.com/richinsley/hekla/graphics"
	"github.com/richinsley/hekla/shader"
)

func TestToESSL(t *testing.T) {
	got, err := toESSL(shader.FragmentSource)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "#version 300 es\nprecision highp float;") {
		t.Errorf("header not rewritten:\n%s", got)
	}
	if strings.Contains(got, "330 core") {
		t.Error("desktop version directive left in source")
	}
	if !strings.Contains(got, "out vec4 FragColor;") {
		t.Error("shader body lost")
	}
}

func TestToESSLRejectsOtherVersions(t *testing.T) {
	for _, src := range []string{
		"#version 410 core\nvoid main() {}\n",
		"void main() {}\n",
		"",
	} {
		if _, err := toESSL(src); err == nil {
			t.Errorf("toESSL(%q) = nil error", src)
		}
	}
}

func TestValidateBuiltinShaders(t *testing.T) {
	ctx := context.Background()
	if _, err := GetTranslator(ctx); err != nil {
		t.Skipf("shader translator unavailable: %v", err)
	}

	tests := []struct {
		stage  graphics.Stage
		source string
	}{
		{graphics.VertexStage, shader.VertexSource},
		{graphics.FragmentStage, shader.FragmentSource},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			r, err := Validate(ctx, tt.stage, tt.source)
			if err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if r.Code == "" {
				t.Error("empty translated code")
			}
			if r.Stage != tt.stage {
				t.Errorf("Stage = %s", r.Stage)
			}
		})
	}
}

func TestValidateReportsSyntaxErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := GetTranslator(ctx); err != nil {
		t.Skipf("shader translator unavailable: %v", err)
	}
	broken := "#version 330 core\nout vec4 FragColor;\nvoid main()\n{\n   FragColor = vec4(1.0, 0.5\n}\n"
	if _, err := Validate(ctx, graphics.FragmentStage, broken); err == nil {
		t.Error("Validate() accepted a shader with a syntax error")
	}
}
