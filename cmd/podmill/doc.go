// Command podmill generates podcast episodes from recorded audio
// prompts: it drafts a two-host dialogue script with Gemini, speaks
// each turn with Kokoro TTS, assembles the audio with ffmpeg, and
// records metadata for the finished episode.
package main
