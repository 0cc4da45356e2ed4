package encoder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/richinsley/hekla/options"
	"github.com/schollz/progressbar/v3"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const bytesPerPixel = 4 // RGBA8

// ErrRecording wraps every failure to start, feed or finish the encoder.
var ErrRecording = errors.New("recording failed")

// Recorder pipes raw RGBA frames into an ffmpeg process that encodes them
// to a video file. Frames arrive bottom row first, as glReadPixels returns
// them, and are flipped before writing.
type Recorder struct {
	width   int
	height  int
	limit   int
	written int

	pipe    io.WriteCloser
	done    chan error
	bar     *progressbar.ProgressBar
	flipped []byte
}

// NewRecorder starts ffmpeg writing to opts.Output.
func NewRecorder(opts *options.RecordOptions, width, height int) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", ErrRecording, width, height)
	}
	pipeReader, pipeWriter := io.Pipe()

	cmd := command(opts, width, height, pipeReader, os.Stderr)

	done := make(chan error, 1)
	go func() {
		err := cmd.Run()
		// Unblock a writer stuck on a pipe nobody reads any more.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		done <- err
	}()

	var bar *progressbar.ProgressBar
	if opts.Frames > 0 {
		bar = progressbar.Default(int64(opts.Frames), "recording")
	} else {
		bar = progressbar.Default(-1, "recording")
	}

	slog.Info("Recording", "output", opts.Output, "size", fmt.Sprintf("%dx%d", width, height), "fps", opts.FPS, "codec", opts.Codec)
	return newRecorder(pipeWriter, done, bar, width, height, opts.Frames), nil
}

// command builds the ffmpeg invocation reading raw frames from in. ffmpeg's
// own diagnostics go to stderr so they stay apart from the log on stdout.
func command(opts *options.RecordOptions, width, height int, in io.Reader, stderr io.Writer) *ffmpeg.Stream {
	cmd := ffmpeg.Input("pipe:", inputArgs(width, height, opts.FPS)).
		Output(opts.Output, outputArgs(opts)).
		OverWriteOutput().WithInput(in).WithErrorOutput(stderr)
	if opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
	}
	return cmd
}

func newRecorder(pipe io.WriteCloser, done chan error, bar *progressbar.ProgressBar, width, height, limit int) *Recorder {
	return &Recorder{
		width:   width,
		height:  height,
		limit:   limit,
		pipe:    pipe,
		done:    done,
		bar:     bar,
		flipped: make([]byte, width*height*bytesPerPixel),
	}
}

// WriteFrame writes one frame. The frame size must match the recorder's.
func (r *Recorder) WriteFrame(pixels []byte, width, height int) error {
	if width != r.width || height != r.height {
		return fmt.Errorf("%w: frame is %dx%d, recording %dx%d", ErrRecording, width, height, r.width, r.height)
	}
	if len(pixels) != len(r.flipped) {
		return fmt.Errorf("%w: frame has %d bytes, want %d", ErrRecording, len(pixels), len(r.flipped))
	}
	flipRows(r.flipped, pixels, width*bytesPerPixel)
	if _, err := r.pipe.Write(r.flipped); err != nil {
		return fmt.Errorf("%w: failed to write frame to ffmpeg: %w", ErrRecording, err)
	}
	r.written++
	if r.bar != nil {
		r.bar.Add(1)
	}
	return nil
}

// Done reports whether the configured frame count has been written.
func (r *Recorder) Done() bool {
	return r.limit > 0 && r.written >= r.limit
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int {
	return r.written
}

// Close ends the stream and waits for ffmpeg to finish the file.
func (r *Recorder) Close() error {
	r.pipe.Close()
	err := <-r.done
	if r.bar != nil {
		r.bar.Close()
	}
	if err != nil {
		return fmt.Errorf("%w: ffmpeg failed after %d frames: %w", ErrRecording, r.written, err)
	}
	return nil
}

func inputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       fps,
	}
}

func outputArgs(opts *options.RecordOptions) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
	}
	switch opts.Codec {
	case "hevc", "libx265":
		args["c:v"] = "libx265"
		if strings.HasSuffix(opts.Output, ".mp4") {
			args["tag:v"] = "hvc1"
		}
	case "":
		args["c:v"] = "libx264"
	default:
		args["c:v"] = opts.Codec
	}
	return args
}

// flipRows copies src into dst with the row order reversed.
func flipRows(dst, src []byte, stride int) {
	rows := len(src) / stride
	for y := 0; y < rows; y++ {
		copy(dst[y*stride:(y+1)*stride], src[(rows-1-y)*stride:(rows-y)*stride])
	}
}
