package mdct

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func TestFFTMatchesDFT(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{10, 12, 30, 40, 60, 90, 120, 160, 180, 240} {
		p := newFFTPlan(n)
		in := make([]complex128, n)
		for i := range in {
			in[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
		out := make([]complex128, n)
		p.transform(out, in)
		for k := 0; k < n; k++ {
			var want complex128
			for j := 0; j < n; j++ {
				want += in[j] * cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n)))
			}
			if cmplx.Abs(out[k]-want) > 1e-9*float64(n) {
				t.Fatalf("n=%d k=%d: got %v want %v", n, k, out[k], want)
			}
		}
	}
}

func TestDCT4MatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{20, 60, 80, 160, 480} {
		d := newDCT4(n)
		in := make([]float64, n)
		for i := range in {
			in[i] = rng.NormFloat64()
		}
		out := make([]float64, n)
		d.apply(out, in)
		for k := 0; k < n; k++ {
			var want float64
			for j := 0; j < n; j++ {
				want += in[j] * math.Cos(math.Pi/float64(n)*(float64(j)+0.5)*(float64(k)+0.5))
			}
			if math.Abs(out[k]-want) > 1e-8*float64(n) {
				t.Fatalf("n=%d k=%d: got %g want %g", n, k, out[k], want)
			}
		}
	}
}

func TestWindowPerfectReconstructionCondition(t *testing.T) {
	for _, tc := range []struct{ nf, z int }{
		{80, 30}, {160, 60}, {240, 90}, {320, 120}, {480, 180},
		{60, 14}, {360, 84}, {40, 10}, {240, 60}, {20, 0}, {120, 0},
	} {
		w := window(tc.nf, tc.z)
		for n := 0; n < tc.nf; n++ {
			sum := w[n]*w[2*tc.nf-1-n] + w[tc.nf+n]*w[tc.nf-1-n]
			if math.Abs(sum-1) > 1e-12 {
				t.Fatalf("nf=%d z=%d n=%d: PR sum %g", tc.nf, tc.z, n, sum)
			}
		}
		for n := 0; n < tc.z; n++ {
			if w[n] != 0 || w[2*tc.nf-1-n] != 0 {
				t.Fatalf("nf=%d z=%d: nonzero in zero region", tc.nf, tc.z)
			}
		}
	}
}

// Analysis followed by synthesis must reproduce the input delayed by
// NF-2Z samples to near machine precision.
func TestRoundTripDelay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, tc := range []struct{ nf, z int }{
		{80, 30}, {160, 60}, {240, 90}, {480, 180},
		{60, 14}, {120, 28}, {40, 10}, {20, 0},
	} {
		nf, z := tc.nf, tc.z
		delay := nf - 2*z
		const frames = 8
		in := make([]float64, frames*nf)
		for i := range in {
			in[i] = rng.NormFloat64()
		}
		ana := NewAnalysis(nf, z)
		syn := NewSynthesis(nf, z)
		out := make([]float64, 0, frames*nf)
		spec := make([]float64, nf)
		pcm := make([]float64, nf)
		for f := 0; f < frames; f++ {
			ana.Transform(spec, in[f*nf:(f+1)*nf])
			syn.Transform(pcm, spec)
			out = append(out, pcm...)
		}
		// skip the first two frames of warm-up
		for i := 2 * nf; i < frames*nf; i++ {
			if math.Abs(out[i]-in[i-delay]) > 1e-10 {
				t.Fatalf("nf=%d z=%d: sample %d err %g", nf, z, i, out[i]-in[i-delay])
			}
		}
	}
}

func TestResetClearsState(t *testing.T) {
	ana := NewAnalysis(80, 30)
	spec1 := make([]float64, 80)
	spec2 := make([]float64, 80)
	in := make([]float64, 80)
	for i := range in {
		in[i] = float64(i%7) - 3
	}
	ana.Transform(spec1, in)
	ana.Reset()
	ana.Transform(spec2, in)
	for i := range spec1 {
		if spec1[i] != spec2[i] {
			t.Fatal("Reset did not restore initial state")
		}
	}
}
