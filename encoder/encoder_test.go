package encoder

import (
	"bytes"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/richinsley/hekla/graphics/graphicstest"
	"github.com/richinsley/hekla/options"
)

type pipeBuffer struct {
	bytes.Buffer
	closed bool
	err    error
}

func (p *pipeBuffer) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.Buffer.Write(b)
}

func (p *pipeBuffer) Close() error {
	p.closed = true
	return nil
}

func newTestRecorder(width, height, limit int) (*Recorder, *pipeBuffer, chan error) {
	pipe := &pipeBuffer{}
	done := make(chan error, 1)
	return newRecorder(pipe, done, nil, width, height, limit), pipe, done
}

func TestFlipRows(t *testing.T) {
	src := []byte{
		0, 0, 1, 1,
		2, 2, 3, 3,
		4, 4, 5, 5,
	}
	dst := make([]byte, len(src))
	flipRows(dst, src, 4)
	want := []byte{
		4, 4, 5, 5,
		2, 2, 3, 3,
		0, 0, 1, 1,
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("flipRows() = %v, want %v", dst, want)
	}
}

func TestWriteFrameFlipsAndCounts(t *testing.T) {
	r, pipe, done := newTestRecorder(2, 3, 2)
	dev := graphicstest.NewDevice()

	frame := dev.ReadPixels(2, 3)
	if err := r.WriteFrame(frame, 2, 3); err != nil {
		t.Fatal(err)
	}
	if r.Done() {
		t.Fatal("Done() after 1 of 2 frames")
	}
	out := pipe.Bytes()
	// The fake fills each row with its index; row 2 comes out first.
	if out[0] != 2 || out[len(out)-1] != 0 {
		t.Errorf("rows not flipped: first=%d last=%d", out[0], out[len(out)-1])
	}

	if err := r.WriteFrame(frame, 2, 3); err != nil {
		t.Fatal(err)
	}
	if !r.Done() || r.Frames() != 2 {
		t.Errorf("Done() = %v, Frames() = %d", r.Done(), r.Frames())
	}
	if pipe.Len() != 2*2*3*4 {
		t.Errorf("wrote %d bytes", pipe.Len())
	}

	done <- nil
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if !pipe.closed {
		t.Error("pipe not closed")
	}
}

func TestWriteFrameRejectsWrongSize(t *testing.T) {
	r, _, _ := newTestRecorder(4, 4, 0)
	if err := r.WriteFrame(make([]byte, 8*4*4), 8, 4); !errors.Is(err, ErrRecording) {
		t.Errorf("frame of different size: WriteFrame() = %v, want ErrRecording", err)
	}
	if err := r.WriteFrame(make([]byte, 10), 4, 4); !errors.Is(err, ErrRecording) {
		t.Errorf("short pixel buffer: WriteFrame() = %v, want ErrRecording", err)
	}
	if r.Done() {
		t.Error("unlimited recorder reported Done")
	}
}

func TestWriteFramePipeError(t *testing.T) {
	r, pipe, _ := newTestRecorder(1, 1, 0)
	pipe.err = errors.New("broken pipe")
	err := r.WriteFrame(make([]byte, 4), 1, 1)
	if !errors.Is(err, pipe.err) || !errors.Is(err, ErrRecording) {
		t.Errorf("WriteFrame() = %v, want %v wrapped in ErrRecording", err, pipe.err)
	}
}

func TestCloseReportsFFmpegError(t *testing.T) {
	r, _, done := newTestRecorder(1, 1, 0)
	boom := errors.New("exit status 1")
	done <- boom
	err := r.Close()
	if !errors.Is(err, boom) || !errors.Is(err, ErrRecording) {
		t.Errorf("Close() = %v, want %v wrapped in ErrRecording", err, boom)
	}
}

func TestArgs(t *testing.T) {
	in := inputArgs(800, 600, 30)
	if in["s"] != "800x600" || in["pix_fmt"] != "rgba" || in["f"] != "rawvideo" || in["r"] != 30 {
		t.Errorf("inputArgs() = %v", in)
	}

	tests := []struct {
		codec, output string
		wantCodec     string
		wantTag       bool
	}{
		{"", "out.mp4", "libx264", false},
		{"libx264", "out.mkv", "libx264", false},
		{"hevc", "out.mp4", "libx265", true},
		{"hevc", "out.mkv", "libx265", false},
		{"libvpx-vp9", "out.webm", "libvpx-vp9", false},
	}
	for _, tt := range tests {
		args := outputArgs(&options.RecordOptions{Codec: tt.codec, Output: tt.output})
		if args["c:v"] != tt.wantCodec {
			t.Errorf("codec %q: c:v = %v, want %s", tt.codec, args["c:v"], tt.wantCodec)
		}
		if _, ok := args["tag:v"]; ok != tt.wantTag {
			t.Errorf("codec %q output %q: tag:v present = %v", tt.codec, tt.output, ok)
		}
	}
}

func TestNewRecorderRejectsEmptyFrame(t *testing.T) {
	if _, err := NewRecorder(&options.RecordOptions{Output: "x.mp4", FPS: 30}, 0, 600); !errors.Is(err, ErrRecording) {
		t.Errorf("NewRecorder(0x600) = %v, want ErrRecording", err)
	}
}

func TestCommandSendsDiagnosticsToStderr(t *testing.T) {
	tests := []struct {
		name       string
		ffmpegPath string
		stderr     *bytes.Buffer
	}{
		{"default binary", "", &bytes.Buffer{}},
		{"custom binary", "/opt/ffmpeg/bin/ffmpeg", &bytes.Buffer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options.RecordOptions{Output: "out.mp4", FPS: 30, Codec: "libx264", FFMPEGPath: tt.ffmpegPath}
			cmd := command(opts, 320, 240, strings.NewReader(""), tt.stderr).Compile()
			if cmd.Stderr != tt.stderr {
				t.Errorf("Stderr = %v, want the supplied writer", cmd.Stderr)
			}
			if cmd.Stdout == os.Stdout {
				t.Error("Stdout is the process stdout")
			}
			if !slices.Contains(cmd.Args, "out.mp4") || !slices.Contains(cmd.Args, "320x240") {
				t.Errorf("Args = %v, want output path and frame size", cmd.Args)
			}
			if tt.ffmpegPath != "" && cmd.Path != tt.ffmpegPath {
				t.Errorf("Path = %q, want %q", cmd.Path, tt.ffmpegPath)
			}
		})
	}
}
