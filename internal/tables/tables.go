// tables.go derives the constants that follow from the ROM data or from
// closed forms: cumulative frequencies and bit costs for the range coder,
// the MPVQ indexing offsets, the SNS rotation matrix, and the TNS
// quantization grid.
package tables

import "math"

// Probability scale of the arithmetic coder (LC3 Specification Section 3.4.2.4)
// and the fractional-bit unit used by the encoder's bit accounting.
const (
	ProbScale = 1 << 10
	BitUnit   = 1 << 11 // 1 bit == 2048 units
)

// MPVQOffsets[n][k] is the indexing offset for a pulse vector with n+1
// positions still to place and k pulses consumed, per the MPVQ enumeration.
// Row 0 is the single-position base case.
var MPVQOffsets [16][11]uint32

// DMatrix is the 16x16 orthonormal rotation applied to the stage-2 SNS
// residual (type-II DCT basis). DMatrix[m][n] multiplies residual element n
// to produce transform element m; the inverse is the transpose.
var DMatrix [16][16]float64

// TnsQuantGrid maps a TNS coefficient index 0..16 to its reflection
// coefficient sin(pi*(i-8)/17).
var TnsQuantGrid [17]float64

// TnsLagWindow damps the TNS autocorrelation lags before Levinson-Durbin.
var TnsLagWindow [9]float64

func init() {
	for c := 0; c < 64; c++ {
		deriveRow(SpecFreq[c][:], SpecCumFreq[c][:], SpecBits[c][:])
	}
	for f := 0; f < 2; f++ {
		deriveRow(TnsOrderFreq[f][:], TnsOrderCumFreq[f][:], TnsOrderBits[f][:])
	}
	for s := 0; s < 8; s++ {
		deriveRow(TnsCoefFreq[s][:], TnsCoefCumFreq[s][:], TnsCoefBits[s][:])
	}

	for n := 0; n < 16; n++ {
		for k := 1; k < 11; k++ {
			if n == 0 {
				MPVQOffsets[0][k] = 1
				continue
			}
			MPVQOffsets[n][k] = MPVQOffsets[n][k-1] + MPVQOffsets[n-1][k-1] + MPVQOffsets[n-1][k]
		}
	}

	for m := 0; m < 16; m++ {
		c := math.Sqrt(2.0 / 16)
		if m == 0 {
			c = math.Sqrt(1.0 / 16)
		}
		for n := 0; n < 16; n++ {
			DMatrix[m][n] = c * math.Cos(math.Pi/16*float64(m)*(float64(n)+0.5))
		}
	}

	for i := 0; i < 17; i++ {
		TnsQuantGrid[i] = math.Sin(math.Pi * float64(i-8) / 17)
	}
	for k := 0; k < 9; k++ {
		x := 0.02 * math.Pi * float64(k)
		TnsLagWindow[k] = math.Exp(-0.5 * x * x)
	}
}

// deriveRow fills cumulative frequencies and per-symbol costs for one
// frequency row. cum has one more entry than freq; cum[len(freq)] == 1024.
func deriveRow(freq []uint16, cum []uint16, bits []int32) {
	var acc uint16
	for i, f := range freq {
		cum[i] = acc
		acc += f
		bits[i] = int32(math.Round(BitUnit * math.Log2(float64(ProbScale)/float64(f))))
	}
	cum[len(freq)] = acc
}
