// Package sns implements spectral noise shaping: the per-band envelope
// analysis, the two-stage vector quantizer with MPVQ pulse-train
// enumeration, and the interpolated spectral shaping applied on both the
// encoder and decoder sides, per LC3 Specification Sections 3.3.7 and 3.4.7.
package sns

import "github.com/lc3go/lc3/internal/tables"

const signSentinel = -1

// pushSign folds the pending leading sign of a pulse train into the index.
// The first nonzero element's sign travels separately as the leading sign.
func pushSign(val int, nextSign *int, index uint32) uint32 {
	if *nextSign != signSentinel && val != 0 {
		index = 2*index + uint32(*nextSign)
	}
	if val < 0 {
		*nextSign = 1
	} else if val > 0 {
		*nextSign = 0
	}
	return index
}

// enumerate computes the MPVQ index and leading sign of an integer pulse
// train, walking the offset table from the last position down.
func enumerate(vec []int) (index uint32, leadSign int) {
	nextSign := signSentinel
	kAcc := 0
	n := 0
	tmpOffset := tables.MPVQOffsets[0][0]
	for pos := len(vec) - 1; pos >= 0; pos-- {
		val := vec[pos]
		index = pushSign(val, &nextSign, index)
		index += tmpOffset
		if val < 0 {
			kAcc -= val
		} else {
			kAcc += val
		}
		if pos != 0 {
			n++
		}
		tmpOffset = tables.MPVQOffsets[n][kAcc]
	}
	if nextSign == signSentinel {
		nextSign = 0
	}
	return index, nextSign
}

// deenumerate inverts enumerate for a train of kMax pulses over len(vec)
// positions. The caller guarantees the index is inside the codeword space.
func deenumerate(vec []int, kMax int, leadSign int, ind uint32) {
	for i := range vec {
		vec[i] = 0
	}
	isneg := leadSign != 0
	row := len(vec) - 1
	for pos := 0; pos < len(vec); pos++ {
		if ind == 0 {
			if isneg {
				vec[pos] = -kMax
			} else {
				vec[pos] = kMax
			}
			break
		}
		kAcc := kMax
		for ind < tables.MPVQOffsets[row][kAcc] {
			kAcc--
		}
		ind -= tables.MPVQOffsets[row][kAcc]
		if delta := kMax - kAcc; delta != 0 {
			if isneg {
				vec[pos] = -delta
			} else {
				vec[pos] = delta
			}
			isneg = ind&1 != 0
			ind >>= 1
			kMax -= delta
		}
		row--
	}
}
