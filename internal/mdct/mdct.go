// mdct.go holds the low-delay window and the analysis/synthesis transforms.
package mdct

import "math"

// window returns the 2*NF-point low-delay MDCT window for a frame of nf
// samples with z leading/trailing zeros, LC3 Specification Section 3.7.3.
// The rising half is a sine quarter-wave over the nf-2z nonzero ascent, the
// falling half the matching cosine, with a flat unity plateau between; this
// satisfies the asymmetric perfect-reconstruction condition
// w[n]*w[2NF-1-n] + w[NF+n]*w[NF-1-n] = 1.
func window(nf, z int) []float64 {
	w := make([]float64, 2*nf)
	l := nf - 2*z
	for m := 0; m < l; m++ {
		w[z+m] = math.Sin(math.Pi / 2 * (float64(m) + 0.5) / float64(l))
	}
	for n := nf - z; n < nf+z; n++ {
		w[n] = 1
	}
	for m := 0; m < l; m++ {
		w[nf+z+m] = math.Cos(math.Pi / 2 * (float64(m) + 0.5) / float64(l))
	}
	return w
}

// Analysis folds and transforms one frame of time samples into NF spectral
// coefficients. It keeps the NF-Z sample look-back across frames.
type Analysis struct {
	nf, z int
	w     []float64
	mem   []float64 // previous frame tail, NF-Z samples
	t1    []float64
	t2    []float64
	fold  []float64
	dct   *dct4
	scale float64
}

func NewAnalysis(nf, z int) *Analysis {
	return &Analysis{
		nf:    nf,
		z:     z,
		w:     window(nf, z),
		mem:   make([]float64, nf-z),
		t1:    make([]float64, nf),
		t2:    make([]float64, nf), // zero past nf-z, where the window is zero
		fold:  make([]float64, nf),
		dct:   newDCT4(nf),
		scale: math.Sqrt(2 / float64(nf)),
	}
}

// Reset clears the look-back memory.
func (a *Analysis) Reset() {
	for i := range a.mem {
		a.mem[i] = 0
	}
}

// Transform consumes nf time samples and writes nf coefficients into out.
func (a *Analysis) Transform(out, in []float64) {
	nf, z := a.nf, a.z
	// first windowed block: previous tail then the first z new samples
	for i := 0; i < nf-z; i++ {
		a.t1[i] = a.w[i] * a.mem[i]
	}
	for i := 0; i < z; i++ {
		a.t1[nf-z+i] = a.w[nf-z+i] * in[i]
	}
	// second windowed block over the remainder of the frame
	for i := 0; i < nf-z; i++ {
		a.t2[i] = a.w[nf+i] * in[z+i]
	}
	h := nf / 2
	for i := h; i < nf; i++ {
		a.fold[i] = a.t1[i-h] - a.t1[3*h-1-i]
	}
	for i := 0; i < h; i++ {
		a.fold[i] = -a.t2[h-1-i] - a.t2[h+i]
	}
	a.dct.apply(out, a.fold)
	for i := 0; i < nf; i++ {
		out[i] *= a.scale
	}
	copy(a.mem, in[z:])
}

// Synthesis inverts the transform with overlap-add, emitting NF time samples
// per frame after the NF-2Z sample algorithmic delay.
type Synthesis struct {
	nf, z int
	w     []float64
	mem   []float64 // overlap memory, NF-Z samples
	y     []float64
	dct   *dct4
	scale float64
}

func NewSynthesis(nf, z int) *Synthesis {
	return &Synthesis{
		nf:    nf,
		z:     z,
		w:     window(nf, z),
		mem:   make([]float64, nf-z),
		y:     make([]float64, nf),
		dct:   newDCT4(nf),
		scale: math.Sqrt(2 / float64(nf)),
	}
}

// Reset clears the overlap memory.
func (s *Synthesis) Reset() {
	for i := range s.mem {
		s.mem[i] = 0
	}
}

// Transform consumes nf coefficients and writes nf time samples into out.
func (s *Synthesis) Transform(out, in []float64) {
	nf, z := s.nf, s.z
	h := nf / 2
	s.dct.apply(s.y, in)
	for i := 0; i < nf; i++ {
		s.y[i] *= s.scale
	}
	// overlap-add against the time-reversed window
	for n := z; n < h; n++ {
		out[n-z] = s.y[h+n]*s.w[2*nf-1-n] + s.mem[n-z]
	}
	for n := 0; n < h; n++ {
		out[h-z+n] = -s.y[nf-1-n]*s.w[3*h-1-n] + s.mem[h-z+n]
	}
	for n := 0; n < z; n++ {
		out[nf-z+n] = -s.y[h-1-n] * s.w[nf-1-n]
	}
	for n := z; n < h; n++ {
		s.mem[n-z] = -s.y[h-1-n] * s.w[nf-1-n]
	}
	for n := 0; n < h; n++ {
		s.mem[h-z+n] = -s.y[n] * s.w[h-1-n]
	}
}
