package ffprobe_test

import (
	"testing"

	"podmill/internal/media/ffprobe"
)

func TestResultHelpers(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "audio", SampleRate: "24000", Channels: 1},
			{CodecType: "audio", SampleRate: "44100", Channels: 2},
		},
		Format: ffprobe.Format{
			Duration: "123.45",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SampleRateHz() != 24000 {
		t.Fatalf("unexpected sample rate: %d", result.SampleRateHz())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := ffprobe.Result{
		Format: ffprobe.Format{
			Duration: "bad",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SampleRateHz() != 0 {
		t.Fatalf("expected sample rate 0, got %d", result.SampleRateHz())
	}
}
