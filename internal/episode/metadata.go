package episode

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Metadata is the finished-episode record written alongside the audio.
// It is computed once from already-finalized values at the end of the
// pipeline.
type Metadata struct {
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	EpisodeName          string            `json:"episode_name"`
	AudioFile            string            `json:"audio_file"`
	ScriptFile           string            `json:"script_file"`
	SegmentCount         int               `json:"segment_count"`
	TTSEngine            string            `json:"tts_engine"`
	Voices               map[string]string `json:"voice_map"`
	GeneratedAt          time.Time         `json:"generated_at"`
	TotalTTSSeconds      float64           `json:"total_tts_seconds"`
	AvgSegmentSeconds    float64           `json:"avg_segment_seconds"`
	AudioDurationSeconds float64           `json:"audio_duration_seconds"`
	RealtimeFactor       float64           `json:"realtime_factor"`
}

// RealtimeFactor relates synthesis time to produced audio time. A zero
// duration yields zero rather than dividing by it.
func RealtimeFactor(totalTTSSeconds, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return totalTTSSeconds / durationSeconds
}

const metadataJSONName = "metadata.json"
const metadataTextName = "metadata.txt"

// writeMetadataFiles persists the record in both structured and
// human-readable form.
func writeMetadataFiles(dir string, meta Metadata) error {
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataJSONName), encoded, 0o644); err != nil {
		return fmt.Errorf("write metadata json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataTextName), []byte(renderMetadataText(meta)), 0o644); err != nil {
		return fmt.Errorf("write metadata text: %w", err)
	}
	return nil
}

func renderMetadataText(meta Metadata) string {
	var sb strings.Builder
	sb.WriteString("EPISODE METADATA\n")
	sb.WriteString("================\n\n")
	fmt.Fprintf(&sb, "Title:\n%s\n\n", orNA(meta.Title))
	fmt.Fprintf(&sb, "Description:\n%s\n\n", orNA(meta.Description))
	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "Episode Name: %s\n", orNA(meta.EpisodeName))
	fmt.Fprintf(&sb, "Generated: %s\n", meta.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "TTS Engine: %s\n", orNA(meta.TTSEngine))
	fmt.Fprintf(&sb, "Dialogue Segments: %d\n\n", meta.SegmentCount)

	sb.WriteString("Voices:\n")
	hosts := make([]string, 0, len(meta.Voices))
	for host := range meta.Voices {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	for _, host := range hosts {
		fmt.Fprintf(&sb, "  - %s: %s\n", host, meta.Voices[host])
	}

	sb.WriteString("\nGeneration Stats:\n")
	fmt.Fprintf(&sb, "  Total TTS Time: %.1fs\n", meta.TotalTTSSeconds)
	fmt.Fprintf(&sb, "  Avg per Segment: %.1fs\n", meta.AvgSegmentSeconds)
	fmt.Fprintf(&sb, "  Audio Duration: %.1fs\n", meta.AudioDurationSeconds)
	fmt.Fprintf(&sb, "  Real-time Factor: %.2fx\n", meta.RealtimeFactor)

	sb.WriteString("\nFiles:\n")
	fmt.Fprintf(&sb, "  - Audio: %s\n", filepath.Base(meta.AudioFile))
	fmt.Fprintf(&sb, "  - Script: %s\n", filepath.Base(meta.ScriptFile))
	return sb.String()
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
