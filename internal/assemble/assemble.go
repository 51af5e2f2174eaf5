// Package assemble turns ordered audio inputs into single mixed-down
// files via a two-phase normalize-then-concatenate flow.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"podmill/internal/logging"
	"podmill/internal/media/ffmpeg"
	"podmill/internal/services"
)

// Assembler drives the normalize and concatenate phases.
type Assembler struct {
	runner ffmpeg.Runner
	logger *slog.Logger
}

// New constructs an Assembler over the given media runner.
func New(runner ffmpeg.Runner, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{runner: runner, logger: logger}
}

// ConcatenateDialogue joins the ordered per-segment files into one
// dialogue WAV. Every input is first normalized to the intermediate
// dialogue format so heterogeneous synthesis output concatenates
// cleanly.
func (a *Assembler) ConcatenateDialogue(ctx context.Context, segmentFiles []string, output string) error {
	const stage = "assembling_dialogue"
	if len(segmentFiles) == 0 {
		return services.Wrap(services.ErrValidation, stage, "concatenate", "no segment files", nil)
	}

	workDir, err := os.MkdirTemp(filepath.Dir(output), ".dialogue-")
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "concatenate", "create working directory", err)
	}
	defer os.RemoveAll(workDir)

	normalized, err := a.normalizeAll(ctx, segmentFiles, workDir, ffmpeg.DialogueSpec)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "normalize", "", err)
	}
	if err := a.runner.Concat(ctx, normalized, output, ffmpeg.WAVEncoding); err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "concatenate", "", err)
	}
	a.logger.Info("dialogue assembled",
		logging.Int("segments", len(segmentFiles)),
		logging.String("output", output),
	)
	return nil
}

// EpisodeInputs are the candidate parts of a final episode in fixed
// play order. Dialogue is required; the rest are included only when the
// named file exists.
type EpisodeInputs struct {
	Intro    string
	Prompt   string
	Dialogue string
	Outro    string
}

// ordered returns the inputs that will actually be concatenated, in
// play order.
func (in EpisodeInputs) ordered() []string {
	var files []string
	if fileExists(in.Intro) {
		files = append(files, in.Intro)
	}
	if fileExists(in.Prompt) {
		files = append(files, in.Prompt)
	}
	files = append(files, in.Dialogue)
	if fileExists(in.Outro) {
		files = append(files, in.Outro)
	}
	return files
}

// AssembleEpisode produces the final MP3. When jingles or a prompt
// recording are present, every part is re-normalized at episode quality
// and concatenated; when the dialogue is the only input, it is simply
// re-encoded.
func (a *Assembler) AssembleEpisode(ctx context.Context, inputs EpisodeInputs, output string) error {
	const stage = "assembling_episode"
	if inputs.Dialogue == "" {
		return services.Wrap(services.ErrValidation, stage, "assemble", "dialogue audio required", nil)
	}

	files := inputs.ordered()
	if len(files) == 1 {
		if err := a.runner.Encode(ctx, inputs.Dialogue, output, ffmpeg.MP3Encoding); err != nil {
			return services.Wrap(services.ErrExternalTool, stage, "encode", "", err)
		}
		a.logger.Info("episode encoded without jingles", logging.String("output", output))
		return nil
	}

	workDir, err := os.MkdirTemp(filepath.Dir(output), ".episode-")
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "assemble", "create working directory", err)
	}
	defer os.RemoveAll(workDir)

	normalized, err := a.normalizeAll(ctx, files, workDir, ffmpeg.EpisodeSpec)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "normalize", "", err)
	}
	if err := a.runner.Concat(ctx, normalized, output, ffmpeg.MP3Encoding); err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "concatenate", "", err)
	}
	a.logger.Info("episode assembled",
		logging.Int("parts", len(files)),
		logging.String("output", output),
	)
	return nil
}

func (a *Assembler) normalizeAll(ctx context.Context, inputs []string, workDir string, spec ffmpeg.Spec) ([]string, error) {
	normalized := make([]string, 0, len(inputs))
	for i, input := range inputs {
		out := filepath.Join(workDir, fmt.Sprintf("norm_%04d.wav", i))
		if err := a.runner.Normalize(ctx, input, out, spec); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", filepath.Base(input), err)
		}
		normalized = append(normalized, out)
	}
	return normalized, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
