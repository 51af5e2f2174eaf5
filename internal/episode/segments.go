package episode

import (
	"encoding/json"
	"fmt"

	"podmill/internal/script"
)

// marshalSegments serializes the ordered segment list for the episode
// directory.
func marshalSegments(segments []script.Segment) ([]byte, error) {
	encoded, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}
	return encoded, nil
}
