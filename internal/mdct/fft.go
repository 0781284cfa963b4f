// Package mdct implements the low-delay MDCT analysis and synthesis
// transforms of LC3, per LC3 Specification Sections 3.3.4 and 3.4.8.
//
// The DCT-IV core runs on a half-length complex FFT with pre/post twiddles.
// The FFT is mixed-radix over the factors 2, 3 and 5, which covers every
// half-frame length of the codec (10 up to 240 points).
package mdct

import "math"

// fftPlan holds the precomputed state for a mixed-radix forward FFT.
type fftPlan struct {
	n       int
	tw      []complex128   // exp(-2*pi*i*k/n) for k = 0..n-1
	scratch [][]complex128 // one work buffer per recursion depth
}

func newFFTPlan(n int) *fftPlan {
	p := &fftPlan{n: n}
	p.tw = make([]complex128, n)
	for k := 0; k < n; k++ {
		phase := -2 * math.Pi * float64(k) / float64(n)
		p.tw[k] = complex(math.Cos(phase), math.Sin(phase))
	}
	depth := 0
	for m := n; m > 1; depth++ {
		m /= smallestFactor(m)
	}
	p.scratch = make([][]complex128, depth)
	for i := range p.scratch {
		p.scratch[i] = make([]complex128, n)
	}
	return p
}

// smallestFactor returns the radix taken at each decimation step.
// Sizes with a prime factor above 5 are not used by any frame length.
func smallestFactor(m int) int {
	switch {
	case m%2 == 0:
		return 2
	case m%3 == 0:
		return 3
	default:
		return 5
	}
}

// transform computes the unscaled forward DFT of src into dst.
// dst and src must both have length n and must not alias.
func (p *fftPlan) transform(dst, src []complex128) {
	p.step(dst, src, 1, p.n, 0)
}

// step decimates the strided sequence src[0], src[stride], ... of length n0
// into radix subsequences and recombines them with twiddles from the
// top-level table.
func (p *fftPlan) step(dst []complex128, src []complex128, stride, n0, depth int) {
	if n0 == 1 {
		dst[0] = src[0]
		return
	}
	r := smallestFactor(n0)
	m := n0 / r
	buf := p.scratch[depth]
	for j := 0; j < r; j++ {
		p.step(buf[j*m:(j+1)*m], src[j*stride:], stride*r, m, depth+1)
	}
	for q := 0; q < r; q++ {
		for k := 0; k < m; k++ {
			idx := k + q*m
			acc := buf[k]
			for j := 1; j < r; j++ {
				acc += buf[j*m+k] * p.tw[(j*idx*stride)%p.n]
			}
			dst[idx] = acc
		}
	}
}
