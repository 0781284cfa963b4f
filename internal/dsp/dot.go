// Package dsp provides small numeric kernels shared by the analysis stages,
// with vectorized variants selected at startup on amd64.
package dsp

// Dot returns the inner product of a and b over len(a) elements.
// b must be at least as long as a.
func Dot(a, b []float64) float64 {
	return dotImpl(a, b)
}

func dotGo(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
