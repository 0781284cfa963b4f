// analysis.go computes the 16 scale factors from the band energies, per
// LC3 Specification Section 3.3.7.2.
package sns

import "math"

// NScales is the scale factor count; Bits the fixed side-info cost of the
// two VQ stages.
const (
	NScales = 16
	Bits    = 38
)

var gTilt = [5]float64{14, 18, 22, 26, 30}

// Analyzer derives and smooths the scale factor vector. One per encoder
// channel; it carries no cross-frame state, only preallocated scratch.
type Analyzer struct {
	nb      int
	attFac  float64
	preEmph float64 // 10^(gTilt/630), per-band tilt ratio

	padded [64]float64
	ep     [64]float64
	el     [66]float64 // padded by one on each side for the grouping window
	el4    [NScales]float64
	smooth [NScales]float64
}

// NewAnalyzer sizes the analysis for nb coded bands at the given rate index.
// The band padding assumes 16 to 64 bands, the range every supported
// configuration falls in.
func NewAnalyzer(nb, fsInd, frameUs int) *Analyzer {
	if nb < 16 || nb > 64 {
		panic("sns: band count out of range")
	}
	a := &Analyzer{
		nb:      nb,
		attFac:  0.5,
		preEmph: math.Pow(10, gTilt[fsInd]/630),
	}
	if frameUs == 7500 {
		a.attFac = 0.3
	}
	return a
}

// Compute fills scf with the 0.85-scaled, mean-removed log energies,
// applying the attack smoothing when attack is set.
func (a *Analyzer) Compute(eb []float64, attack bool, scf []float64) {
	// padding to 64 bands: low bands are replicated so that each scale
	// factor still groups four entries
	p := a.padded[:]
	switch {
	case a.nb >= 64:
		copy(p, eb[:64])
	case a.nb >= 32:
		n2 := 64 - a.nb
		for i := 0; i < n2; i++ {
			p[2*i] = eb[i]
			p[2*i+1] = eb[i]
		}
		copy(p[2*n2:], eb[n2:a.nb])
	default:
		n4 := 32 - a.nb
		for i := 0; i < n4; i++ {
			p[4*i], p[4*i+1], p[4*i+2], p[4*i+3] = eb[i], eb[i], eb[i], eb[i]
		}
		for i := n4; i < a.nb; i++ {
			base := 4*n4 + 2*(i-n4)
			p[base] = eb[i]
			p[base+1] = eb[i]
		}
	}

	// smoothing and pre-emphasis fused into one pass
	tilt := 1.0
	var total float64
	a.ep[0] = 0.25 * (3*p[0] + p[1])
	total = a.ep[0]
	for b := 1; b < 63; b++ {
		tilt *= a.preEmph
		a.ep[b] = 0.25 * (p[b-1] + 2*p[b] + p[b+1]) * tilt
		total += a.ep[b]
	}
	tilt *= a.preEmph
	a.ep[63] = 0.25 * (p[62] + 3*p[63]) * tilt
	total += a.ep[63]

	floor := total / 64 * 1e-4
	if floor < 0x1p-32 {
		floor = 0x1p-32
	}
	for b := 0; b < 64; b++ {
		e := a.ep[b]
		if e < floor {
			e = floor
		}
		a.el[b+1] = 0.5 * math.Log2(1e-31+e)
	}
	a.el[0] = a.el[1]
	a.el[65] = a.el[64]

	// group four bands per scale factor with the 6-tap triangular window
	var mean float64
	for b2 := 0; b2 < NScales; b2++ {
		e := a.el[4*b2:]
		a.el4[b2] = (e[0] + 2*e[1] + 3*e[2] + 3*e[3] + 2*e[4] + e[5]) / 12
		mean += a.el4[b2]
	}
	mean /= NScales
	for b2 := 0; b2 < NScales; b2++ {
		scf[b2] = 0.85 * (a.el4[b2] - mean)
	}

	if attack {
		s := a.smooth[:]
		s[0] = (scf[0] + scf[1] + scf[2]) / 3
		s[1] = (scf[0] + scf[1] + scf[2] + scf[3]) / 4
		for n := 2; n <= 13; n++ {
			s[n] = (scf[n-2] + scf[n-1] + scf[n] + scf[n+1] + scf[n+2]) / 5
		}
		s[14] = (scf[12] + scf[13] + scf[14] + scf[15]) / 4
		s[15] = (scf[13] + scf[14] + scf[15]) / 3
		var sm float64
		for n := 0; n < NScales; n++ {
			sm += s[n]
		}
		sm /= NScales
		for n := 0; n < NScales; n++ {
			scf[n] = a.attFac * (s[n] - sm)
		}
	}
}
