package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// SetCommandContextForTests swaps the process launcher and returns a restore
// function.
func SetCommandContextForTests(fn func(context.Context, string, ...string) *exec.Cmd) func() {
	previous := commandContext
	commandContext = fn
	return func() { commandContext = previous }
}

// Spec describes the common format every input is normalized to before
// concatenation.
type Spec struct {
	SampleRateHz int
	Channels     int
	SampleFormat string
}

// Encoding describes the codec applied to a concatenation or re-encode output.
type Encoding struct {
	Codec   string
	BitRate string
}

// Fixed pipeline formats. Dialogue concatenation keeps a higher-fidelity WAV
// intermediate; the final episode pass normalizes jingle/prompt sources too
// and encodes MP3.
var (
	DialogueSpec = Spec{SampleRateHz: 24000, Channels: 1, SampleFormat: "s16"}
	EpisodeSpec  = Spec{SampleRateHz: 44100, Channels: 1, SampleFormat: "s16"}

	WAVEncoding = Encoding{Codec: "pcm_s16le"}
	MP3Encoding = Encoding{Codec: "libmp3lame", BitRate: "128k"}
)

// Runner is the narrow interface the assembler needs from the media tool.
// It exists so stage logic can be tested against a fake implementation
// without invoking real media tooling.
type Runner interface {
	// Normalize re-encodes input to the given spec, writing output.
	Normalize(ctx context.Context, input, output string, spec Spec) error
	// Concat joins the ordered inputs into output using the given encoding.
	Concat(ctx context.Context, inputs []string, output string, enc Encoding) error
	// Encode re-encodes a single input to output using the given encoding.
	Encode(ctx context.Context, input, output string, enc Encoding) error
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

func (c *CLI) Normalize(ctx context.Context, input, output string, spec Spec) error {
	if input == "" || output == "" {
		return errors.New("normalize: input and output required")
	}
	args := []string{
		"-y", "-i", input,
		"-ar", strconv.Itoa(spec.SampleRateHz),
		"-ac", strconv.Itoa(spec.Channels),
		"-sample_fmt", spec.SampleFormat,
		output,
	}
	return c.run(ctx, args)
}

func (c *CLI) Concat(ctx context.Context, inputs []string, output string, enc Encoding) error {
	if len(inputs) == 0 {
		return errors.New("concat: no input files")
	}
	if output == "" {
		return errors.New("concat: output required")
	}

	listDir, err := os.MkdirTemp(filepath.Dir(output), ".concat-")
	if err != nil {
		return fmt.Errorf("concat: create list dir: %w", err)
	}
	defer os.RemoveAll(listDir)

	listPath := filepath.Join(listDir, "filelist.txt")
	if err := writeFileList(listPath, inputs); err != nil {
		return err
	}

	args := []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath}
	args = append(args, encodingArgs(enc)...)
	args = append(args, output)
	return c.run(ctx, args)
}

func (c *CLI) Encode(ctx context.Context, input, output string, enc Encoding) error {
	if input == "" || output == "" {
		return errors.New("encode: input and output required")
	}
	args := []string{"-y", "-i", input}
	args = append(args, encodingArgs(enc)...)
	args = append(args, output)
	return c.run(ctx, args)
}

func (c *CLI) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", c.binary, strings.Join(args, " "), err, tail(string(output)))
	}
	return nil
}

func encodingArgs(enc Encoding) []string {
	args := []string{"-c:a", enc.Codec}
	if enc.BitRate != "" {
		args = append(args, "-b:a", enc.BitRate)
	}
	return args
}

func writeFileList(path string, inputs []string) error {
	var sb strings.Builder
	for _, input := range inputs {
		// concat demuxer quoting: ' becomes '\''
		escaped := strings.ReplaceAll(input, "'", `'\''`)
		sb.WriteString("file '")
		sb.WriteString(escaped)
		sb.WriteString("'\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("concat: write file list: %w", err)
	}
	return nil
}

// tail keeps error output short enough for a log line.
func tail(s string) string {
	s = strings.TrimSpace(s)
	const limit = 400
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}

var _ Runner = (*CLI)(nil)
