// pcm.go holds the sample conversion helpers shared by both directions.

package lc3

import "math"

// sampleToInt16 rounds a decoded sample to the nearest integer and
// saturates to the 16-bit range.
func sampleToInt16(v float64) int16 {
	r := math.Round(v)
	if r > 32767 {
		return 32767
	}
	if r < -32768 {
		return -32768
	}
	return int16(r)
}

// deinterleave copies channel ch of the interleaved block into dst.
func deinterleave(dst []float64, pcm []int16, ch, channels int) {
	for i := range dst {
		dst[i] = float64(pcm[i*channels+ch])
	}
}

// interleave writes a decoded channel back into the interleaved block.
func interleave(pcm []int16, src []float64, ch, channels int) {
	for i, v := range src {
		pcm[i*channels+ch] = sampleToInt16(v)
	}
}
