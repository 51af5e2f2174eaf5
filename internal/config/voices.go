package config

import "sort"

// knownVoices is the fixed catalog shipped with the Kokoro TTS image.
// A voice outside this set is a configuration defect, never a runtime choice.
var knownVoices = map[string]string{
	"af_bella":   "American Female",
	"af_sarah":   "American Female",
	"am_adam":    "American Male",
	"am_michael": "American Male",
	"bf_emma":    "British Female",
	"bm_george":  "British Male",
	"bm_lewis":   "British Male",
}

// IsKnownVoice reports whether a voice identifier is part of the fixed catalog.
func IsKnownVoice(voice string) bool {
	_, ok := knownVoices[voice]
	return ok
}

// KnownVoices returns the voice catalog identifiers in sorted order.
func KnownVoices() []string {
	voices := make([]string, 0, len(knownVoices))
	for voice := range knownVoices {
		voices = append(voices, voice)
	}
	sort.Strings(voices)
	return voices
}

// VoiceDescription returns the human-readable description for a catalog
// voice, or an empty string for an unknown one.
func VoiceDescription(voice string) string {
	return knownVoices[voice]
}
