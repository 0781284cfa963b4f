// reader.go mirrors the writer: backward side-information bits and the
// forward arithmetic decoder, with bit-error detection per LC3
// Specification Section 3.4.2.
package bitstream

import "math/bits"

// Reader unpacks one frame. Bit errors never panic; they latch the Bec flag
// and the caller conceals the frame.
type Reader struct {
	buf   []byte
	nbits int

	bpSide   int
	maskSide uint8

	bp  int
	low uint32
	rng uint32

	Bec bool
}

// Reset points the reader at a received frame.
func (r *Reader) Reset(buf []byte) {
	r.buf = buf
	r.nbits = 8 * len(buf)
	r.bpSide = len(buf) - 1
	r.maskSide = 1
	r.bp = 0
	r.low = 0
	r.rng = 0x00ffffff
	r.Bec = false
}

func (r *Reader) byteAt(i int) byte {
	if i < 0 || i >= len(r.buf) {
		// a corrupt frame can walk the cursors out of the buffer; feed
		// zeros and let the BEC checks catch it
		return 0
	}
	return r.buf[i]
}

// ReadBit consumes one bit from the backward side stream.
func (r *Reader) ReadBit() int {
	bit := 0
	if r.byteAt(r.bpSide)&r.maskSide != 0 {
		bit = 1
	}
	if r.maskSide == 0x80 {
		r.maskSide = 1
		r.bpSide--
	} else {
		r.maskSide <<= 1
	}
	return bit
}

// ReadUint consumes numbits from the side stream, LSB first.
func (r *Reader) ReadUint(numbits int) uint32 {
	var val uint32
	for k := 0; k < numbits; k++ {
		val |= uint32(r.ReadBit()) << k
	}
	return val
}

// SideBits returns the number of side-information bits consumed so far.
func (r *Reader) SideBits() int {
	return r.nbits - (8*r.bpSide + 8 - bits.TrailingZeros8(r.maskSide))
}

// DecodeInit loads the first three bytes into the decoder window.
func (r *Reader) DecodeInit() {
	r.low = uint32(r.byteAt(0))<<16 | uint32(r.byteAt(1))<<8 | uint32(r.byteAt(2))
	r.rng = 0x00ffffff
	r.bp = 3
}

// Decode reads one symbol against the cumulative frequency row. cumFreq has
// numsym+1 entries on the 10-bit scale. The low >= range condition marks a
// corrupted stream; callers check Bec between symbols.
func (r *Reader) Decode(cumFreq []uint16, numsym int) int {
	if r.low >= r.rng {
		r.Bec = true
		return 0
	}
	tmp := r.rng >> 10
	low0 := r.low / tmp
	val := numsym - 1
	for low0 < uint32(cumFreq[val]) {
		val--
	}
	r.low -= tmp * uint32(cumFreq[val])
	r.rng = tmp * uint32(cumFreq[val+1]-cumFreq[val])
	for r.rng < 0x10000 {
		r.rng <<= 8
		r.low = (r.low<<8)&0x00ffffff + uint32(r.byteAt(r.bp))
		r.bp++
	}
	return val
}

// AcBits returns the arithmetic-coder bit count consumed so far.
func (r *Reader) AcBits() int {
	return (r.bp-3)*8 + 25 - (31 - bits.LeadingZeros32(r.rng))
}

// CursorsCrossed reports whether the forward decoder has run into the
// side-information region, allowing for its three-byte lookahead.
func (r *Reader) CursorsCrossed() bool {
	return r.bp-r.bpSide > 3
}
