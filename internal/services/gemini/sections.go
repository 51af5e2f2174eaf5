package gemini

import (
	"sort"
	"strings"
)

// Metadata is the episode title/description pair derived from a script.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// metadataLabels are the sections the metadata call asks the model to
// emit. Order matters only as a tiebreak for labels at the same offset.
var metadataLabels = []string{"TITLE", "DESCRIPTION"}

// ParseMetadata extracts the labeled sections from a metadata response.
// An absent label leaves the corresponding field empty.
func ParseMetadata(text string) Metadata {
	sections := parseLabeledSections(text, metadataLabels)
	return Metadata{
		Title:       sections["TITLE"],
		Description: sections["DESCRIPTION"],
	}
}

type labelMark struct {
	label string
	start int
	body  int
}

// parseLabeledSections splits free text on "LABEL:" markers. Each
// found label's value is the text between its colon and the next found
// label (or end of text), trimmed. Labels that never occur map to the
// empty string.
func parseLabeledSections(text string, labels []string) map[string]string {
	sections := make(map[string]string, len(labels))
	var marks []labelMark
	for _, label := range labels {
		sections[label] = ""
		token := label + ":"
		idx := strings.Index(text, token)
		if idx < 0 {
			continue
		}
		marks = append(marks, labelMark{label: label, start: idx, body: idx + len(token)})
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].start < marks[j].start })

	for i, mark := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		sections[mark.label] = strings.TrimSpace(text[mark.body:end])
	}
	return sections
}
