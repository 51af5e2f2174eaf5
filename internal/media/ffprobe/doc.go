// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline uses it to measure finished audio durations (for the
// realtime-factor metadata) without shelling out ad hoc from stage code.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result expose the audio stream count, container
// duration, and sample rate.
package ffprobe
