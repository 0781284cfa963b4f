// Package config derives the per-stream constants of the LC3 codec from the
// sample rate and frame duration, per LC3 Specification Section 3.2.1.
package config

import (
	"errors"
	"fmt"
)

// Errors returned during configuration.
var (
	ErrSampleRate    = errors.New("config: unsupported sample rate")
	ErrFrameDuration = errors.New("config: unsupported frame duration")
)

// FrameUs values accepted by New.
const (
	Frame2500us  = 2500
	Frame5000us  = 5000
	Frame7500us  = 7500
	Frame10000us = 10000
)

// Byte-count bounds per channel, LC3 Specification Section 3.2.5.
const (
	MinByteCount = 20
	MaxByteCount = 400
)

// Config holds every constant derived from the (sample rate, frame duration)
// pair. It is immutable after New; encoder and decoder both embed one.
type Config struct {
	Fs      int // sample rate in Hz
	FsInd   int // sample rate index, 44100 and 48000 share index 4
	FrameUs int // frame duration in microseconds

	NF int // samples per frame and MDCT length
	NE int // coded spectral coefficients (NE <= NF)
	Z  int // leading/trailing zeros of the low-delay window
	NB int // number of energy bands

	// BandEdges has NB+1 entries; band b covers coefficients
	// [BandEdges[b], BandEdges[b+1]).
	BandEdges []int
}

var fsIndex = map[int]int{
	8000:  0,
	16000: 1,
	24000: 2,
	32000: 3,
	44100: 4,
	48000: 4,
}

// frame samples per duration, indexed by fsInd (44.1 kHz follows 48 kHz).
var nfTable = map[int][5]int{
	Frame10000us: {80, 160, 240, 320, 480},
	Frame7500us:  {60, 120, 180, 240, 360},
	Frame5000us:  {40, 80, 120, 160, 240},
	Frame2500us:  {20, 40, 60, 80, 120},
}

// energy band counts, LC3 Specification Section 3.7.1.
var nbTable = map[int][5]int{
	Frame10000us: {64, 64, 64, 64, 64},
	Frame7500us:  {60, 64, 64, 64, 64},
	Frame5000us:  {39, 50, 52, 54, 55},
	Frame2500us:  {20, 35, 40, 43, 44},
}

// New validates the pair and derives all frame constants.
func New(sampleRate, frameUs int) (*Config, error) {
	ind, ok := fsIndex[sampleRate]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	nfs, ok := nfTable[frameUs]
	if !ok {
		return nil, fmt.Errorf("%w: %dus", ErrFrameDuration, frameUs)
	}
	c := &Config{
		Fs:      sampleRate,
		FsInd:   ind,
		FrameUs: frameUs,
		NF:      nfs[ind],
		NB:      nbTable[frameUs][ind],
	}

	// NE drops the top fifth of the spectrum at the 48 kHz frame sizes.
	c.NE = c.NF
	switch c.NF {
	case 480:
		c.NE = 400
	case 360:
		c.NE = 300
	case 240:
		if frameUs == Frame5000us {
			c.NE = 200
		}
	case 120:
		if frameUs == Frame2500us {
			c.NE = 100
		}
	}

	switch frameUs {
	case Frame10000us:
		c.Z = 3 * c.NF / 8
	case Frame7500us:
		c.Z = 7 * c.NF / 30
	case Frame5000us:
		c.Z = c.NF / 4
	case Frame2500us:
		c.Z = 0
	}

	c.BandEdges = bandEdges(c.NE, c.NB, c.Fs, c.NF)
	return c, nil
}

// ByteCount converts a bitrate in bits per second into the frame byte budget,
// LC3 Specification Section 3.2.5. The 44.1 kHz mode stretches the nominal
// frame duration by 480/441.
func (c *Config) ByteCount(bitrate int) int {
	num := int64(bitrate) * int64(c.FrameUs)
	den := int64(8_000_000)
	if c.Fs == 44100 {
		num *= 480
		den *= 441
	}
	return int(num / den)
}

// ValidByteCount reports whether nbytes is inside the per-channel bounds.
func ValidByteCount(nbytes int) bool {
	return nbytes >= MinByteCount && nbytes <= MaxByteCount
}
