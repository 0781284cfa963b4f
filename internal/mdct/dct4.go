// dct4.go computes the type-IV DCT through a half-length complex FFT.
package mdct

import "math"

// dct4 evaluates sum_n x[n]*cos(pi/N*(n+1/2)*(k+1/2)), unnormalized.
// Both encoder and decoder use the same kernel; the MDCT scaling
// sqrt(2/NF) is applied by the callers.
type dct4 struct {
	n   int
	fft *fftPlan
	tw  []complex128 // exp(-i*pi*(8n+1)/(8N))
	u   []complex128
	v   []complex128
}

func newDCT4(n int) *dct4 {
	m := n / 2
	d := &dct4{
		n:   n,
		fft: newFFTPlan(m),
		tw:  make([]complex128, m),
		u:   make([]complex128, m),
		v:   make([]complex128, m),
	}
	for k := 0; k < m; k++ {
		phase := -math.Pi * float64(8*k+1) / float64(8*n)
		d.tw[k] = complex(math.Cos(phase), math.Sin(phase))
	}
	return d
}

// apply transforms in into out; in and out may alias.
func (d *dct4) apply(out, in []float64) {
	m := d.n / 2
	for k := 0; k < m; k++ {
		d.u[k] = d.tw[k] * complex(in[2*k], in[d.n-1-2*k])
	}
	d.fft.transform(d.v, d.u)
	for k := 0; k < m; k++ {
		c := d.tw[k] * d.v[k]
		out[2*k] = real(c)
		out[d.n-1-2*k] = -imag(c)
	}
}
