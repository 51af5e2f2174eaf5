// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp episode names, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure context
//     (episode, stage, operation) uniform across stages.
//
// Use these helpers when wiring new stage logic so operational behaviour stays
// uniform across the pipeline.
package services
