// decoder.go implements the public Decoder API for LC3 decoding.

package lc3

import (
	"time"

	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/decoder"
)

// Decoder decodes LC3 payloads into interleaved PCM frames.
//
// A Decoder instance maintains internal state and is NOT safe for
// concurrent use. Each goroutine should create its own Decoder instance.
type Decoder struct {
	cfg       *config.Config
	channels  int
	frames    []*decoder.Frame
	scratch   []float64
	lastBytes int
}

// NewDecoder creates an LC3 decoder with the same parameter rules as
// NewEncoder.
func NewDecoder(sampleRate, channels int, frameDuration time.Duration) (*Decoder, error) {
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

	d := &Decoder{
		cfg:       cfg,
		channels:  channels,
		frames:    make([]*decoder.Frame, channels),
		scratch:   make([]float64, cfg.NF),
		lastBytes: config.MinByteCount,
	}
	for ch := range d.frames {
		d.frames[ch] = decoder.NewFrame(cfg)
	}
	return d, nil
}

// FrameSamples returns the number of PCM samples per channel in one frame.
func (d *Decoder) FrameSamples() int { return d.cfg.NF }

// Decode reconstructs one frame of interleaved int16 PCM from an LC3
// payload of byteCount * channels bytes.
//
// pcm must hold FrameSamples() * channels samples and is always filled:
// a damaged payload is concealed from the last good frame and reported
// with ErrBadFrame.
func (d *Decoder) Decode(frame []byte, pcm []int16) error {
	if len(frame)%d.channels != 0 || !config.ValidByteCount(len(frame)/d.channels) {
		return ErrInvalidByteCount
	}
	if len(pcm) < d.cfg.NF*d.channels {
		return ErrBufferTooSmall
	}
	byteCount := len(frame) / d.channels
	d.lastBytes = byteCount

	concealed := false
	for ch := 0; ch < d.channels; ch++ {
		if d.frames[ch].Decode(frame[ch*byteCount:(ch+1)*byteCount], d.scratch) {
			concealed = true
		}
		interleave(pcm, d.scratch, ch, d.channels)
	}
	if concealed {
		return ErrBadFrame
	}
	return nil
}

// DecodeLost conceals a frame the transport never delivered, producing a
// full block of PCM from the last good frame.
func (d *Decoder) DecodeLost(pcm []int16) error {
	if len(pcm) < d.cfg.NF*d.channels {
		return ErrBufferTooSmall
	}
	for ch := 0; ch < d.channels; ch++ {
		d.frames[ch].DecodeLost(d.lastBytes, d.scratch)
		interleave(pcm, d.scratch, ch, d.channels)
	}
	return nil
}

// Reset returns the decoder to its initial state, as after NewDecoder.
func (d *Decoder) Reset() {
	for _, f := range d.frames {
		f.Reset()
	}
}
