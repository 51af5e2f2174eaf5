package assemble_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"podmill/internal/assemble"
	"podmill/internal/media/ffmpeg"
	"podmill/internal/services"
)

type call struct {
	op     string
	input  string
	inputs []string
	output string
	spec   ffmpeg.Spec
	enc    ffmpeg.Encoding
}

type fakeRunner struct {
	calls   []call
	failOps map[string]error
}

func (f *fakeRunner) Normalize(ctx context.Context, input, output string, spec ffmpeg.Spec) error {
	f.calls = append(f.calls, call{op: "normalize", input: input, output: output, spec: spec})
	if err := f.failOps["normalize"]; err != nil {
		return err
	}
	return os.WriteFile(output, []byte("norm"), 0o644)
}

func (f *fakeRunner) Concat(ctx context.Context, inputs []string, output string, enc ffmpeg.Encoding) error {
	f.calls = append(f.calls, call{op: "concat", inputs: inputs, output: output, enc: enc})
	if err := f.failOps["concat"]; err != nil {
		return err
	}
	return os.WriteFile(output, []byte("joined"), 0o644)
}

func (f *fakeRunner) Encode(ctx context.Context, input, output string, enc ffmpeg.Encoding) error {
	f.calls = append(f.calls, call{op: "encode", input: input, output: output, enc: enc})
	if err := f.failOps["encode"]; err != nil {
		return err
	}
	return os.WriteFile(output, []byte("encoded"), 0o644)
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConcatenateDialogueNormalizesEachSegment(t *testing.T) {
	dir := t.TempDir()
	segs := []string{
		writeAudio(t, dir, "segment_0000_Herman.wav"),
		writeAudio(t, dir, "segment_0001_Emma.wav"),
	}
	runner := &fakeRunner{}
	a := assemble.New(runner, nil)

	output := filepath.Join(dir, "dialogue.wav")
	if err := a.ConcatenateDialogue(context.Background(), segs, output); err != nil {
		t.Fatalf("ConcatenateDialogue: %v", err)
	}

	if len(runner.calls) != 3 {
		t.Fatalf("expected 2 normalize + 1 concat, got %d calls", len(runner.calls))
	}
	for i := 0; i < 2; i++ {
		c := runner.calls[i]
		if c.op != "normalize" || c.input != segs[i] {
			t.Errorf("call %d: %+v", i, c)
		}
		if c.spec != ffmpeg.DialogueSpec {
			t.Errorf("call %d spec: %+v", i, c.spec)
		}
	}
	concat := runner.calls[2]
	if concat.op != "concat" || concat.enc != ffmpeg.WAVEncoding || concat.output != output {
		t.Errorf("concat call: %+v", concat)
	}
	if len(concat.inputs) != 2 {
		t.Errorf("concat inputs: %v", concat.inputs)
	}
	// Normalized intermediates must not outlive the operation.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Errorf("working directory left behind: %s", e.Name())
		}
	}
}

func TestConcatenateDialogueEmptyList(t *testing.T) {
	a := assemble.New(&fakeRunner{}, nil)
	err := a.ConcatenateDialogue(context.Background(), nil, "out.wav")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssembleEpisodeFullOrder(t *testing.T) {
	dir := t.TempDir()
	intro := writeAudio(t, dir, "mixed-intro.mp3")
	prompt := writeAudio(t, dir, "prompt.mp3")
	dialogue := writeAudio(t, dir, "dialogue.wav")
	outro := writeAudio(t, dir, "mixed-outro.mp3")

	runner := &fakeRunner{}
	a := assemble.New(runner, nil)
	output := filepath.Join(dir, "episode.mp3")
	err := a.AssembleEpisode(context.Background(), assemble.EpisodeInputs{
		Intro:    intro,
		Prompt:   prompt,
		Dialogue: dialogue,
		Outro:    outro,
	}, output)
	if err != nil {
		t.Fatalf("AssembleEpisode: %v", err)
	}

	if len(runner.calls) != 5 {
		t.Fatalf("expected 4 normalize + 1 concat, got %d", len(runner.calls))
	}
	wantOrder := []string{intro, prompt, dialogue, outro}
	for i, want := range wantOrder {
		c := runner.calls[i]
		if c.op != "normalize" || c.input != want {
			t.Errorf("normalize %d: %+v, want input %s", i, c, want)
		}
		if c.spec != ffmpeg.EpisodeSpec {
			t.Errorf("normalize %d spec: %+v", i, c.spec)
		}
	}
	concat := runner.calls[4]
	if concat.op != "concat" || concat.enc != ffmpeg.MP3Encoding {
		t.Errorf("concat call: %+v", concat)
	}
}

func TestAssembleEpisodeOmitsMissingJingles(t *testing.T) {
	dir := t.TempDir()
	prompt := writeAudio(t, dir, "prompt.mp3")
	dialogue := writeAudio(t, dir, "dialogue.wav")

	runner := &fakeRunner{}
	a := assemble.New(runner, nil)
	err := a.AssembleEpisode(context.Background(), assemble.EpisodeInputs{
		Intro:    filepath.Join(dir, "missing-intro.mp3"),
		Prompt:   prompt,
		Dialogue: dialogue,
		Outro:    filepath.Join(dir, "missing-outro.mp3"),
	}, filepath.Join(dir, "episode.mp3"))
	if err != nil {
		t.Fatalf("AssembleEpisode: %v", err)
	}

	if len(runner.calls) != 3 {
		t.Fatalf("expected 2 normalize + 1 concat, got %d", len(runner.calls))
	}
	if runner.calls[0].input != prompt || runner.calls[1].input != dialogue {
		t.Errorf("order: %+v", runner.calls[:2])
	}
}

func TestAssembleEpisodeSingleInputReencodes(t *testing.T) {
	dir := t.TempDir()
	dialogue := writeAudio(t, dir, "dialogue.wav")

	runner := &fakeRunner{}
	a := assemble.New(runner, nil)
	output := filepath.Join(dir, "episode.mp3")
	err := a.AssembleEpisode(context.Background(), assemble.EpisodeInputs{Dialogue: dialogue}, output)
	if err != nil {
		t.Fatalf("AssembleEpisode: %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected a single encode call, got %+v", runner.calls)
	}
	c := runner.calls[0]
	if c.op != "encode" || c.input != dialogue || c.enc != ffmpeg.MP3Encoding {
		t.Errorf("encode call: %+v", c)
	}
}

func TestAssembleEpisodeNormalizeFailure(t *testing.T) {
	dir := t.TempDir()
	dialogue := writeAudio(t, dir, "dialogue.wav")
	outro := writeAudio(t, dir, "mixed-outro.mp3")

	runner := &fakeRunner{failOps: map[string]error{"normalize": errors.New("bad sample rate")}}
	a := assemble.New(runner, nil)
	err := a.AssembleEpisode(context.Background(), assemble.EpisodeInputs{
		Dialogue: dialogue,
		Outro:    outro,
	}, filepath.Join(dir, "episode.mp3"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
