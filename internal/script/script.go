// Package script parses diarized dialogue text into ordered speaker
// segments. Segments carry the ordinal that downstream synthesis and
// assembly use as the sole ordering key.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Segment is one speaker turn in a dialogue script.
type Segment struct {
	Speaker string `json:"speaker_id"`
	Text    string `json:"text"`
	Voice   string `json:"voice_id"`
	Ordinal int    `json:"ordinal"`
}

// ErrNoSegments reports that no speaker turns could be recovered from
// the script text.
var ErrNoSegments = errors.New("no dialogue segments found in script")

// Parse splits raw script text into ordered segments. voices maps each
// known speaker name to its voice identifier; only turns attributed to
// those speakers are recognized. Turns that are empty after trimming
// are discarded without reserving an ordinal.
func Parse(text string, voices map[string]string) ([]Segment, error) {
	if len(voices) == 0 {
		return nil, errors.New("no speakers configured")
	}

	segments := parseBoundaries(text, voices)
	if len(segments) == 0 {
		segments = parseLines(text, voices)
	}
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	return segments, nil
}

// parseBoundaries finds every "Speaker:" line start and captures the
// text up to the next boundary or end of input.
func parseBoundaries(text string, voices map[string]string) []Segment {
	pattern := regexp.MustCompile(`(?m)^(` + speakerAlternation(voices) + `):[ \t]*`)
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var segments []Segment
	for i, match := range matches {
		speaker := text[match[2]:match[3]]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[match[1]:end])
		if body == "" {
			continue
		}
		segments = append(segments, Segment{
			Speaker: speaker,
			Text:    body,
			Voice:   voices[speaker],
			Ordinal: len(segments),
		})
	}
	return segments
}

// parseLines is the recovery path for scripts the boundary scan cannot
// handle, such as labels pushed off column zero by indentation. Each
// line whose trimmed form starts with a known "Speaker:" prefix becomes
// one segment; continuation lines are folded into the preceding turn.
func parseLines(text string, voices map[string]string) []Segment {
	var segments []Segment
	var current *Segment

	for _, line := range strings.Split(text, "\n") {
		speaker, rest, ok := splitSpeakerLine(strings.TrimSpace(line), voices)
		if ok {
			flushSegment(&segments, current)
			current = &Segment{Speaker: speaker, Text: rest, Voice: voices[speaker]}
			continue
		}
		if current != nil {
			current.Text += "\n" + line
		}
	}
	flushSegment(&segments, current)
	return segments
}

func splitSpeakerLine(line string, voices map[string]string) (speaker, rest string, ok bool) {
	for name := range voices {
		prefix := name + ":"
		if strings.HasPrefix(line, prefix) {
			return name, strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", "", false
}

func flushSegment(segments *[]Segment, current *Segment) {
	if current == nil {
		return
	}
	text := strings.TrimSpace(current.Text)
	if text == "" {
		return
	}
	*segments = append(*segments, Segment{
		Speaker: current.Speaker,
		Text:    text,
		Voice:   current.Voice,
		Ordinal: len(*segments),
	})
}

// speakerAlternation builds the speaker half of the boundary pattern.
// Names are sorted longest first so a speaker whose name prefixes
// another cannot shadow it.
func speakerAlternation(voices map[string]string) string {
	names := make([]string, 0, len(voices))
	for name := range voices {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}

// Reconstruct renders segments back into "Speaker: text" form, one turn
// per line, in ordinal order.
func Reconstruct(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("%s: %s", seg.Speaker, seg.Text))
	}
	return strings.Join(lines, "\n")
}
