// scale.go interpolates the 16 quantized scale factors onto the band grid
// and applies the resulting gains to the spectrum. The encoder divides the
// spectrum by the envelope, the decoder multiplies it back.
package sns

import "math"

// Shaper applies the interpolated SNS gains over the coded bands.
type Shaper struct {
	nb     int
	edges  []int
	scfInt [64]float64
}

// NewShaper builds the envelope applicator for nb coded bands. The 64-point
// fold below is only defined for 16 to 64 bands, which covers every
// supported sampling rate and frame duration.
func NewShaper(nb int, edges []int) *Shaper {
	if nb < 16 || nb > 64 {
		panic("sns: band count out of range")
	}
	return &Shaper{nb: nb, edges: edges}
}

// Apply scales spec in place with 2^(dir*scf_int[b]) per band; dir is -1 on
// the encoder side and +1 on the decoder side.
func (s *Shaper) Apply(spec, scfQ []float64, dir float64) {
	si := s.scfInt[:]
	si[0] = scfQ[0]
	si[1] = scfQ[0]
	for n := 0; n <= 14; n++ {
		d8 := (scfQ[n+1] - scfQ[n]) / 8
		v := scfQ[n] + d8
		si[4*n+2] = v
		si[4*n+3] = v + 2*d8
		si[4*n+4] = v + 4*d8
		si[4*n+5] = v + 6*d8
	}
	d8 := (scfQ[15] - scfQ[14]) / 8
	si[62] = scfQ[15] + d8
	si[63] = scfQ[15] + 3*d8

	// fold the 64-point envelope down when fewer bands are coded
	switch {
	case s.nb < 32:
		n4 := 32 - s.nb
		n2 := s.nb - n4
		for i := 0; i < n4; i++ {
			si[i] = (si[4*i] + si[4*i+1] + si[4*i+2] + si[4*i+3]) / 4
		}
		for i := 0; i < n2; i++ {
			si[n4+i] = (si[4*n4+2*i] + si[4*n4+2*i+1]) / 2
		}
	case s.nb < 64:
		n2 := 64 - s.nb
		for i := 0; i < n2; i++ {
			si[i] = (si[2*i] + si[2*i+1]) / 2
		}
		for i := n2; i < s.nb; i++ {
			si[i] = si[i+n2]
		}
	}

	for b := 0; b < s.nb; b++ {
		g := math.Exp2(dir * si[b])
		for k := s.edges[b]; k < s.edges[b+1]; k++ {
			spec[k] *= g
		}
	}
}
