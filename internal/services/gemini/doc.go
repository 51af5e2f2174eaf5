// Package gemini wraps the Google Gemini API for the two generation
// calls the pipeline makes: drafting a diarized dialogue script from a
// prompt recording, and deriving episode title/description metadata
// from that script.
package gemini
