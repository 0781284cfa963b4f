// encoder.go implements the public Encoder API for LC3 encoding.

package lc3

import (
	"time"

	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/encoder"
)

// Frame durations accepted by NewEncoder and NewDecoder.
const (
	FrameDuration2500us = 2500 * time.Microsecond
	FrameDuration5ms    = 5 * time.Millisecond
	FrameDuration7500us = 7500 * time.Microsecond
	FrameDuration10ms   = 10 * time.Millisecond
)

// MinFrameBytes and MaxFrameBytes bound the per-channel payload size.
const (
	MinFrameBytes = config.MinByteCount
	MaxFrameBytes = config.MaxByteCount
)

func frameMicros(d time.Duration) (int, bool) {
	switch d {
	case FrameDuration2500us, FrameDuration5ms, FrameDuration7500us, FrameDuration10ms:
		return int(d / time.Microsecond), true
	default:
		return 0, false
	}
}

// Encoder encodes interleaved PCM frames into LC3 payloads.
//
// An Encoder instance maintains internal state and is NOT safe for
// concurrent use. Each goroutine should create its own Encoder instance.
type Encoder struct {
	cfg      *config.Config
	channels int
	frames   []*encoder.Frame
	scratch  []float64
}

// NewEncoder creates an LC3 encoder.
//
// sampleRate must be one of: 8000, 16000, 24000, 32000, 44100, 48000.
// channels must be at least 1; channels are coded independently.
// frameDuration must be 2.5, 5, 7.5 or 10 ms.
func NewEncoder(sampleRate, channels int, frameDuration time.Duration) (*Encoder, error) {
	if !validSampleRate(sampleRate) {
		return nil, ErrInvalidSampleRate
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	us, ok := frameMicros(frameDuration)
	if !ok {
		return nil, ErrInvalidFrameDuration
	}
	cfg, err := config.New(sampleRate, us)
	if err != nil {
		return nil, ErrInvalidFrameDuration
	}

	e := &Encoder{
		cfg:      cfg,
		channels: channels,
		frames:   make([]*encoder.Frame, channels),
		scratch:  make([]float64, cfg.NF),
	}
	for ch := range e.frames {
		e.frames[ch] = encoder.NewFrame(cfg)
	}
	return e, nil
}

// FrameSamples returns the number of PCM samples per channel in one frame.
func (e *Encoder) FrameSamples() int { return e.cfg.NF }

// Delay returns the algorithmic delay of an encode/decode round trip in
// samples per channel.
func (e *Encoder) Delay() int { return e.cfg.NF - 2*e.cfg.Z }

// ByteCountFromBitrate converts a total bitrate in bits per second into
// the nearest valid per-channel byte count.
func (e *Encoder) ByteCountFromBitrate(bitrate int) int {
	return e.cfg.ByteCount(bitrate / e.channels)
}

// Encode encodes one frame of interleaved int16 PCM into out.
//
// pcm must hold FrameSamples() * channels samples. byteCount is the payload
// size per channel, 20 to 400 bytes; out must have room for
// byteCount * channels bytes.
//
// Returns the number of bytes written.
func (e *Encoder) Encode(pcm []int16, out []byte, byteCount int) (int, error) {
	if len(pcm) != e.cfg.NF*e.channels {
		return 0, ErrInvalidFrameSize
	}
	if !config.ValidByteCount(byteCount) {
		return 0, ErrInvalidByteCount
	}
	total := byteCount * e.channels
	if len(out) < total {
		return 0, ErrBufferTooSmall
	}
	for ch := 0; ch < e.channels; ch++ {
		deinterleave(e.scratch, pcm, ch, e.channels)
		e.frames[ch].Encode(e.scratch, out[ch*byteCount:(ch+1)*byteCount])
	}
	return total, nil
}

// Reset returns the encoder to its initial state, as after NewEncoder.
func (e *Encoder) Reset() {
	for _, f := range e.frames {
		f.Reset()
	}
}
