// Package bitstream implements the dual-cursor LC3 frame packing: side
// information written backward from the last byte and an arithmetic coder
// running forward from the first, per LC3 Specification Section 3.3.13.
//
// The arithmetic coder is a 24-bit range coder with a 10-bit probability
// scale and byte-wise renormalization, the same family as the RFC 6716
// range coder but with carry propagation deferred through a cache byte and
// a run of saturated bytes.
package bitstream

import "math/bits"

// Writer packs one frame. The two cursors share the byte buffer; the caller
// guarantees they never cross by budgeting bits up front.
type Writer struct {
	buf   []byte
	nbits int

	// backward side-information cursor
	bpSide   int
	maskSide uint8

	// forward arithmetic coder state
	bp         int
	low        uint32
	rng        uint32
	cache      int // -1 while empty
	carry      uint32
	carryCount int
}

// Reset points the writer at a zeroed frame buffer of the final frame size.
func (w *Writer) Reset(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	w.buf = buf
	w.nbits = 8 * len(buf)
	w.bpSide = len(buf) - 1
	w.maskSide = 1
	w.bp = 0
	w.low = 0
	w.rng = 0x00ffffff
	w.cache = -1
	w.carry = 0
	w.carryCount = 0
}

// WriteBit appends one bit to the backward side-information stream.
func (w *Writer) WriteBit(bit int) {
	if bit == 0 {
		w.buf[w.bpSide] &^= w.maskSide
	} else {
		w.buf[w.bpSide] |= w.maskSide
	}
	if w.maskSide == 0x80 {
		w.maskSide = 1
		w.bpSide--
	} else {
		w.maskSide <<= 1
	}
}

// WriteUint appends numbits of val to the side stream, LSB first.
func (w *Writer) WriteUint(val uint32, numbits int) {
	for k := 0; k < numbits; k++ {
		w.WriteBit(int(val & 1))
		val >>= 1
	}
}

// SideBits returns the number of side-information bits written so far.
func (w *Writer) SideBits() int {
	return w.nbits - (8*w.bpSide + 8 - bits.TrailingZeros8(w.maskSide))
}

func (w *Writer) acShift() {
	if w.low < 0x00ff0000 || w.carry == 1 {
		if w.cache >= 0 {
			w.buf[w.bp] = byte(uint32(w.cache) + w.carry)
			w.bp++
		}
		for w.carryCount > 0 {
			w.buf[w.bp] = byte(w.carry + 0xff)
			w.bp++
			w.carryCount--
		}
		w.cache = int(w.low >> 16)
		w.carry = 0
	} else {
		w.carryCount++
	}
	w.low = (w.low << 8) & 0x00ffffff
}

// Encode codes one symbol with the given cumulative frequency and frequency
// on the 10-bit probability scale.
func (w *Writer) Encode(cumFreq, freq uint32) {
	r := w.rng >> 10
	w.low += r * cumFreq
	if w.low>>24 != 0 {
		w.carry = 1
		w.low &= 0x00ffffff
	}
	w.rng = r * freq
	for w.rng < 0x10000 {
		w.rng <<= 8
		w.acShift()
	}
}

// AcBits forecasts the arithmetic-coder bit count assuming only the
// finalization remains. Used for the residual-bit budget.
func (w *Writer) AcBits() int {
	n := w.bp*8 + 25 - (31 - bits.LeadingZeros32(w.rng))
	if w.cache >= 0 {
		n += 8
	}
	n += 8 * w.carryCount
	return n
}

// Finish flushes the arithmetic coder with the minimal number of bits that
// pins the final interval. The last partial byte is merged with whatever the
// side stream already placed there.
func (w *Writer) Finish() {
	bitsLeft := 1
	for w.rng>>(24-bitsLeft) == 0 {
		bitsLeft++
	}
	mask := uint32(0x00ffffff) >> bitsLeft
	val := w.low + mask
	over1 := val >> 24
	val &= 0x00ffffff
	high := w.low + w.rng
	over2 := high >> 24
	high &= 0x00ffffff
	val &= ^mask
	if over1 == over2 {
		if val+mask >= high {
			bitsLeft++
			mask >>= 1
			val = ((w.low + mask) & 0x00ffffff) &^ mask
		}
		if val < w.low {
			w.carry = 1
		}
	}
	w.low = val
	for ; bitsLeft > 0; bitsLeft -= 8 {
		w.acShift()
	}
	bitsLeft += 8
	if w.carryCount > 0 {
		w.buf[w.bp] = byte(w.cache)
		w.bp++
		for ; w.carryCount > 1; w.carryCount-- {
			w.buf[w.bp] = 0xff
			w.bp++
		}
		w.writeUintForward(0xff>>(8-bitsLeft), bitsLeft)
	} else {
		w.writeUintForward(uint32(w.cache), bitsLeft)
	}
}

// writeUintForward merges the top numbits bits of val into the byte at the
// forward cursor without advancing it; the low bits of that byte belong to
// the backward stream.
func (w *Writer) writeUintForward(val uint32, numbits int) {
	mask := uint8(0x80)
	for k := 0; k < numbits; k++ {
		if val&uint32(mask) == 0 {
			w.buf[w.bp] &^= mask
		} else {
			w.buf[w.bp] |= mask
		}
		mask >>= 1
	}
}
