package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/richinsley/hekla/encoder"
	"github.com/richinsley/hekla/gldevice"
	"github.com/richinsley/hekla/glfwcontext"
	"github.com/richinsley/hekla/graphics"
	"github.com/richinsley/hekla/options"
	"github.com/richinsley/hekla/renderer"
	"github.com/richinsley/hekla/shader"
	"github.com/richinsley/hekla/translator"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func run(opts *options.Options) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden.
	window, err := glfwcontext.New(opts, !opts.Recording())
	if err != nil {
		return err
	}
	defer window.Shutdown()

	if err := gldevice.Init(); err != nil {
		return err
	}
	dev := gldevice.New()

	r, err := renderer.Setup(dev, window, opts.Background())
	if err != nil {
		return err
	}
	defer r.Destroy()

	if opts.Recording() {
		width, height := window.FramebufferSize()
		rec, err := encoder.NewRecorder(&opts.Record, width, height)
		if err != nil {
			return fmt.Errorf("failed to start recorder: %w", err)
		}
		r.SetFrameSink(rec)
		frames, runErr := r.Run()
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = err
		}
		if runErr != nil {
			return runErr
		}
		slog.Info("Recorded video", "output", opts.Record.Output, "frames", frames)
		return nil
	}

	frames, err := r.Run()
	slog.Debug("Render loop finished", "frames", frames)
	return err
}

// check validates the built-in shaders offline and prints their interface.
func check() error {
	ctx := context.Background()
	for _, s := range []struct {
		stage  graphics.Stage
		source string
	}{
		{graphics.VertexStage, shader.VertexSource},
		{graphics.FragmentStage, shader.FragmentSource},
	} {
		report, err := translator.Validate(ctx, s.stage, s.source)
		if err != nil {
			return err
		}
		slog.Info("Shader OK", "stage", s.stage.String(), "variables", report.Variables)
	}
	return nil
}

func main() {
	var configPath = flag.String("config", "", "Path to a YAML options file")
	var checkOnly = flag.Bool("check", false, "Validate the shaders without opening a window and exit")
	var record = flag.String("record", "", "Record frames to this video file")
	var frames = flag.Int("frames", 0, "Number of frames to record (0 records until the window closes)")
	var debug = flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	opts := options.Default()
	if *configPath != "" {
		var err error
		opts, err = options.Load(*configPath)
		if err != nil {
			slog.Error("Failed to load options", "error", err)
			os.Exit(-1)
		}
	}
	if *record != "" {
		opts.Record.Output = *record
	}
	if *frames != 0 {
		opts.Record.Frames = *frames
	}
	if err := opts.Validate(); err != nil {
		slog.Error("Invalid options", "error", err)
		os.Exit(-1)
	}

	if *checkOnly {
		if err := check(); err != nil {
			slog.Error("Shader check failed", "error", err)
			os.Exit(-1)
		}
		return
	}

	if err := run(opts); err != nil {
		reportFailure(err)
		os.Exit(-1)
	}
}
