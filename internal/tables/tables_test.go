package tables

import (
	"math"
	"testing"
)

func TestFrequencyRowsSumToScale(t *testing.T) {
	for c := range SpecFreq {
		if SpecCumFreq[c][17] != ProbScale {
			t.Errorf("spec context %d: total %d", c, SpecCumFreq[c][17])
		}
		for s := range SpecFreq[c] {
			if SpecFreq[c][s] == 0 {
				t.Errorf("spec context %d symbol %d: zero frequency", c, s)
			}
		}
	}
	for f := range TnsOrderFreq {
		if TnsOrderCumFreq[f][8] != ProbScale {
			t.Errorf("tns order row %d: total %d", f, TnsOrderCumFreq[f][8])
		}
	}
	for s := range TnsCoefFreq {
		if TnsCoefCumFreq[s][17] != ProbScale {
			t.Errorf("tns coef row %d: total %d", s, TnsCoefCumFreq[s][17])
		}
	}
}

func TestBitCostsMatchFrequencies(t *testing.T) {
	// a symbol of frequency 512 costs exactly one bit
	for c := range SpecFreq {
		for s, f := range SpecFreq[c] {
			want := BitUnit * math.Log2(float64(ProbScale)/float64(f))
			if math.Abs(float64(SpecBits[c][s])-want) > 0.5 {
				t.Fatalf("context %d symbol %d: bits %d want %.1f", c, s, SpecBits[c][s], want)
			}
		}
	}
}

// The offset recursion must reproduce the codeword-space sizes of the SNS
// shape candidates (LC3 Specification Section 3.7.4.2.6).
func TestMPVQOffsetsReproduceShapeSizes(t *testing.T) {
	size := func(dim, k int) uint32 {
		// pulse-vector counts share the offsets' recursion; half the count
		// is the sign-extracted index space
		np := make([][]uint64, dim+1)
		for n := range np {
			np[n] = make([]uint64, k+1)
			np[n][0] = 1
		}
		for kk := 1; kk <= k; kk++ {
			np[1][kk] = 2
		}
		for n := 2; n <= dim; n++ {
			for kk := 1; kk <= k; kk++ {
				np[n][kk] = np[n-1][kk] + np[n][kk-1] + np[n-1][kk-1]
			}
		}
		return uint32(np[dim][k] / 2)
	}
	if got := size(10, 10); got != 2390004 {
		t.Errorf("N(10,10)/2 = %d, want 2390004", got)
	}
	if got := size(16, 8); got != 15158272 {
		t.Errorf("N(16,8)/2 = %d, want 15158272", got)
	}
	if got := size(16, 6); got != 774912 {
		t.Errorf("N(16,6)/2 = %d, want 774912", got)
	}
	if MPVQOffsets[0][0] != 0 || MPVQOffsets[0][1] != 1 || MPVQOffsets[1][1] != 1 {
		t.Error("offset base cases wrong")
	}
}

func TestDMatrixOrthonormal(t *testing.T) {
	for a := 0; a < 16; a++ {
		for b := 0; b < 16; b++ {
			var dot float64
			for n := 0; n < 16; n++ {
				dot += DMatrix[a][n] * DMatrix[b][n]
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-12 {
				t.Fatalf("rows %d,%d: dot %g", a, b, dot)
			}
		}
	}
}

func TestTnsQuantGrid(t *testing.T) {
	if TnsQuantGrid[8] != 0 {
		t.Error("center of quant grid must be zero")
	}
	for i := 0; i < 16; i++ {
		if TnsQuantGrid[i] >= TnsQuantGrid[i+1] {
			t.Error("quant grid must be strictly increasing")
		}
	}
	if math.Abs(TnsQuantGrid[0]+TnsQuantGrid[16]) > 1e-15 {
		t.Error("quant grid must be odd-symmetric")
	}
}

func TestSpecLookupRange(t *testing.T) {
	for _, tc := range []struct{ t, lev, want int }{
		{0, 0, 0},
		{1023, 0, 15},
		{0, 1, 16},
		{512, 2, 40},
		{1023, 7, 63},
	} {
		if got := SpecLookup(tc.t, tc.lev); got != tc.want {
			t.Errorf("SpecLookup(%d,%d) = %d, want %d", tc.t, tc.lev, got, tc.want)
		}
	}
}
