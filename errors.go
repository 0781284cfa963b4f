// errors.go defines public error values for the lc3 package.

package lc3

import "errors"

// Public error values for encoding and decoding operations.
var (
	// ErrInvalidSampleRate indicates an unsupported sample rate.
	// Valid sample rates are: 8000, 16000, 24000, 32000, 44100, 48000.
	ErrInvalidSampleRate = errors.New("lc3: invalid sample rate (must be 8000, 16000, 24000, 32000, 44100, or 48000)")

	// ErrInvalidChannels indicates an unsupported channel count.
	ErrInvalidChannels = errors.New("lc3: invalid channels (must be >= 1)")

	// ErrInvalidFrameDuration indicates an unsupported frame duration.
	// Valid durations are 2.5, 5, 7.5 and 10 ms.
	ErrInvalidFrameDuration = errors.New("lc3: invalid frame duration (must be 2.5ms, 5ms, 7.5ms, or 10ms)")

	// ErrInvalidByteCount indicates a per-channel frame size outside the
	// coded range of 20 to 400 bytes.
	ErrInvalidByteCount = errors.New("lc3: invalid byte count (must be 20-400 per channel)")

	// ErrInvalidFrameSize indicates the PCM slice length doesn't match
	// FrameSamples() * channels.
	ErrInvalidFrameSize = errors.New("lc3: invalid frame size")

	// ErrBufferTooSmall indicates the output buffer cannot hold the frame.
	ErrBufferTooSmall = errors.New("lc3: output buffer too small")

	// ErrBadFrame indicates a damaged payload. The decoder has concealed
	// the frame and still produced a full block of PCM output.
	ErrBadFrame = errors.New("lc3: bad frame")
)

// validSampleRate returns true if the sample rate is valid for LC3.
func validSampleRate(rate int) bool {
	switch rate {
	case 8000, 16000, 24000, 32000, 44100, 48000:
		return true
	default:
		return false
	}
}
