// Package kokoro provides the HTTP client for the Kokoro
// text-to-speech service. One synthesis request covers one dialogue
// turn and returns WAV audio bytes.
package kokoro
