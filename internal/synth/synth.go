// Package synth renders parsed dialogue segments into per-segment
// audio files, one synthesis call per segment in strict ordinal order.
package synth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"podmill/internal/logging"
	"podmill/internal/script"
	"podmill/internal/services"
	"podmill/internal/services/kokoro"
)

// SpeechClient is the synthesis surface the synthesizer needs.
type SpeechClient interface {
	Synthesize(ctx context.Context, request kokoro.Request) ([]byte, error)
}

// SegmentTiming records one synthesis call.
type SegmentTiming struct {
	Ordinal           int     `json:"ordinal"`
	Speaker           string  `json:"speaker_id"`
	CharCount         int     `json:"char_count"`
	GenerationSeconds float64 `json:"generation_seconds"`
}

// GenerationStats aggregates the timings of one synthesis run. It is
// computed once after the run and never mutated afterward.
type GenerationStats struct {
	TotalSegments          int             `json:"total_segments"`
	TotalGenerationSeconds float64         `json:"total_generation_seconds"`
	AvgSecondsPerSegment   float64         `json:"avg_seconds_per_segment"`
	Segments               []SegmentTiming `json:"segment_times"`
}

// Synthesizer drives per-segment speech generation.
type Synthesizer struct {
	client SpeechClient
	speed  float64
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a Synthesizer. Speed is the pipeline-wide speech rate;
// values at or below zero fall back to 1.0.
func New(client SpeechClient, speed float64, logger *slog.Logger) *Synthesizer {
	if speed <= 0 {
		speed = 1.0
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Synthesizer{client: client, speed: speed, logger: logger, now: time.Now}
}

// Run synthesizes every segment into dir, strictly in ordinal order,
// and returns the ordered output file paths plus timing stats. Any
// failed segment aborts the run; there is no per-segment retry.
func (s *Synthesizer) Run(ctx context.Context, segments []script.Segment, dir string) ([]string, GenerationStats, error) {
	var stats GenerationStats
	if len(segments) == 0 {
		return nil, stats, services.Wrap(services.ErrValidation, "synthesizing", "run", "no segments to synthesize", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, stats, services.Wrap(services.ErrConfiguration, "synthesizing", "run", "create segment directory", err)
	}

	files := make([]string, 0, len(segments))
	for i, seg := range segments {
		path := filepath.Join(dir, SegmentFileName(seg))
		s.logger.Info("synthesizing segment",
			logging.Int("ordinal", seg.Ordinal),
			logging.String("speaker", seg.Speaker),
			logging.Int("progress", i+1),
			logging.Int("total", len(segments)),
		)

		start := s.now()
		audio, err := s.client.Synthesize(ctx, kokoro.Request{
			Text:  seg.Text,
			Voice: seg.Voice,
			Speed: s.speed,
		})
		elapsed := s.now().Sub(start).Seconds()
		if err != nil {
			detail := fmt.Sprintf("segment %d (%s)", seg.Ordinal, seg.Speaker)
			return nil, stats, services.Wrap(services.ErrExternalTool, "synthesizing", "synthesize", detail, err)
		}
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			detail := fmt.Sprintf("write segment %d audio", seg.Ordinal)
			return nil, stats, services.Wrap(services.ErrExternalTool, "synthesizing", "synthesize", detail, err)
		}

		files = append(files, path)
		stats.Segments = append(stats.Segments, SegmentTiming{
			Ordinal:           seg.Ordinal,
			Speaker:           seg.Speaker,
			CharCount:         len(seg.Text),
			GenerationSeconds: elapsed,
		})
		stats.TotalGenerationSeconds += elapsed
		s.logger.Debug("segment complete",
			logging.Int("ordinal", seg.Ordinal),
			logging.Float64("seconds", elapsed),
		)
	}

	stats.TotalSegments = len(files)
	stats.AvgSecondsPerSegment = stats.TotalGenerationSeconds / float64(stats.TotalSegments)
	return files, stats, nil
}

// SegmentFileName names one segment's audio file so ordinal and speaker
// remain visible on disk.
func SegmentFileName(seg script.Segment) string {
	return fmt.Sprintf("segment_%04d_%s.wav", seg.Ordinal, seg.Speaker)
}
