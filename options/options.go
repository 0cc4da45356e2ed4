package options

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Options configures the window, the GL context and optional frame capture.
// The zero value is not usable; start from Default.
type Options struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`

	// Requested context version. Always a core profile.
	GLMajor int `yaml:"gl_major"`
	GLMinor int `yaml:"gl_minor"`

	// ClearColor is the RGBA background the framebuffer is cleared to.
	ClearColor [4]float32 `yaml:"clear_color"`

	Record RecordOptions `yaml:"record"`
}

// RecordOptions controls capture of rendered frames to a video file.
type RecordOptions struct {
	Output     string `yaml:"output"` // empty disables recording
	FPS        int    `yaml:"fps"`
	Frames     int    `yaml:"frames"` // 0 records until the window closes
	Codec      string `yaml:"codec"`
	FFMPEGPath string `yaml:"ffmpeg_path"`
}

func Default() *Options {
	return &Options{
		Width:      800,
		Height:     600,
		Title:      "Hekla - OpenGL Window",
		GLMajor:    3,
		GLMinor:    3,
		ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		Record: RecordOptions{
			FPS:   60,
			Codec: "libx264",
		},
	}
}

// Load reads a YAML file and overlays it on the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (*Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	if o.GLMajor < 3 || (o.GLMajor == 3 && o.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d is below the required 3.3 core", o.GLMajor, o.GLMinor)
	}
	if !o.Recording() && o.Record.Frames != 0 {
		return fmt.Errorf("record frames set to %d without a record output", o.Record.Frames)
	}
	if o.Recording() {
		if o.Record.FPS <= 0 {
			return fmt.Errorf("invalid record fps %d", o.Record.FPS)
		}
		if o.Record.Frames < 0 {
			return fmt.Errorf("invalid record frame count %d", o.Record.Frames)
		}
	}
	return nil
}

func (o *Options) Recording() bool {
	return o.Record.Output != ""
}

// Background returns the clear color with each component clamped to [0, 1].
func (o *Options) Background() mgl32.Vec4 {
	var c mgl32.Vec4
	for i, v := range o.ClearColor {
		c[i] = mgl32.Clamp(v, 0, 1)
	}
	return c
}
