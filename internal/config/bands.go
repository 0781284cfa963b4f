// bands.go builds the spectral band partition used by the energy, SNS and
// noise-shaping stages.
package config

import "math"

// bark maps a frequency in Hz onto the critical-band scale
// (Zwicker approximation).
func bark(f float64) float64 {
	return 13*math.Atan(0.00076*f) + 3.5*math.Atan((f/7500)*(f/7500))
}

// bandEdges partitions the NE coded coefficients into NB bands of
// monotonically non-decreasing width placed uniformly on the critical-band
// scale. Low bands are one coefficient wide; widths grow with frequency.
func bandEdges(ne, nb, fs, nf int) []int {
	// 44.1 kHz reuses the 48 kHz grid.
	if fs == 44100 {
		fs = 48000
	}
	binHz := float64(fs) / (2 * float64(nf))
	zTop := bark(float64(ne) * binHz)

	edges := make([]int, nb+1)
	edges[0] = 0
	for b := 1; b < nb; b++ {
		target := zTop * float64(b) / float64(nb)
		// invert bark() for the edge frequency by bisection
		lo, hi := 0.0, float64(ne)*binHz
		for i := 0; i < 40; i++ {
			mid := (lo + hi) / 2
			if bark(mid) < target {
				lo = mid
			} else {
				hi = mid
			}
		}
		e := int(math.Round(lo / binHz))
		if e <= edges[b-1] {
			e = edges[b-1] + 1
		}
		edges[b] = e
	}
	edges[nb] = ne

	// Bisection can overshoot near the top when NB is close to NE; rewalk
	// from the Nyquist end so every band keeps at least one coefficient.
	for b := nb - 1; b > 0; b-- {
		if edges[b] >= edges[b+1] {
			edges[b] = edges[b+1] - 1
		}
	}
	return edges
}
