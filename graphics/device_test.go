package graphics

import "testing"

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{VertexStage, "vertex"},
		{FragmentStage, "fragment"},
		{Stage(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
