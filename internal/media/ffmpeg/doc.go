// Package ffmpeg wraps the ffmpeg command line as a narrow normalize /
// concatenate / encode interface.
//
// The Runner interface deliberately exposes only the three operations the
// assembler needs, so episode assembly can be exercised in tests with a fake
// runner while production code shells out to the real binary.
package ffmpeg
