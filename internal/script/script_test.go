package script_test

import (
	"errors"
	"testing"

	"podmill/internal/script"
)

var testVoices = map[string]string{
	"Herman": "am_adam",
	"Emma":   "bf_emma",
}

func TestParseAlternatingTurns(t *testing.T) {
	text := "Herman: Welcome back to the show.\n" +
		"Emma: Thanks Herman, great to be here.\n" +
		"Herman: Today we cover three stories.\n" +
		"Emma: And the first one is a big deal.\n"

	segments, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}

	wantSpeakers := []string{"Herman", "Emma", "Herman", "Emma"}
	for i, seg := range segments {
		if seg.Ordinal != i {
			t.Errorf("segment %d: ordinal %d", i, seg.Ordinal)
		}
		if seg.Speaker != wantSpeakers[i] {
			t.Errorf("segment %d: speaker %q, want %q", i, seg.Speaker, wantSpeakers[i])
		}
		if seg.Voice != testVoices[seg.Speaker] {
			t.Errorf("segment %d: voice %q for speaker %q", i, seg.Voice, seg.Speaker)
		}
		if seg.Text == "" {
			t.Errorf("segment %d: empty text", i)
		}
	}
	if segments[0].Text != "Welcome back to the show." {
		t.Errorf("segment 0 text: %q", segments[0].Text)
	}
}

func TestParseMultilineTurn(t *testing.T) {
	text := "Herman: This turn spans\nmore than one line.\nEmma: Short reply."

	segments, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "This turn spans\nmore than one line." {
		t.Errorf("multiline text: %q", segments[0].Text)
	}
}

func TestParseDiscardsEmptyTurns(t *testing.T) {
	text := "Herman: First.\nEmma:\nHerman: Third."

	segments, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Speaker != "Herman" || segments[1].Speaker != "Herman" {
		t.Errorf("speakers: %q, %q", segments[0].Speaker, segments[1].Speaker)
	}
	if segments[1].Ordinal != 1 {
		t.Errorf("ordinals must cover emitted segments only, got %d", segments[1].Ordinal)
	}
}

func TestParseIgnoresUnknownSpeakers(t *testing.T) {
	text := "Narrator: Previously on the show.\nHerman: Hello.\nEmma: Hi."

	segments, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	// The stray narration line attaches to no known turn and is dropped.
	if segments[0].Speaker != "Herman" {
		t.Errorf("first speaker: %q", segments[0].Speaker)
	}
}

func TestParseIdempotence(t *testing.T) {
	text := "Herman: One.\nEmma: Two.\nHerman: Three."

	first, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := script.Parse(script.Reconstruct(first), testVoices)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("segment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseFallbackLineScan(t *testing.T) {
	// Indented labels defeat the anchored boundary scan but the
	// line scan still recovers the turns.
	text := "  Herman: Hello there.\n  Emma: Hi."

	segments, err := script.Parse(text, testVoices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
}

func TestParseNoSegments(t *testing.T) {
	_, err := script.Parse("no dialogue here at all", testVoices)
	if !errors.Is(err, script.ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}

func TestParsePrefixedSpeakerNames(t *testing.T) {
	voices := map[string]string{
		"Em":   "af_bella",
		"Emma": "bf_emma",
	}
	segments, err := script.Parse("Emma: Hello.\nEm: Hi.", voices)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if segments[0].Speaker != "Emma" || segments[1].Speaker != "Em" {
		t.Fatalf("speakers: %q, %q", segments[0].Speaker, segments[1].Speaker)
	}
}

func TestReconstruct(t *testing.T) {
	segments := []script.Segment{
		{Speaker: "Herman", Text: "One.", Voice: "am_adam", Ordinal: 0},
		{Speaker: "Emma", Text: "Two.", Voice: "bf_emma", Ordinal: 1},
	}
	got := script.Reconstruct(segments)
	want := "Herman: One.\nEmma: Two."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
