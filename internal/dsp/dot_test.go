package dsp

import (
	"math"
	"testing"
)

func TestDotMatchesScalar(t *testing.T) {
	// odd lengths exercise the vector tail
	for _, n := range []int{0, 1, 3, 4, 7, 16, 63, 240, 401} {
		a := make([]float64, n)
		b := make([]float64, n)
		seed := uint32(n + 1)
		for i := range a {
			seed = seed*1103515245 + 12345
			a[i] = float64(int32(seed)) / float64(1<<28)
			seed = seed*1103515245 + 12345
			b[i] = float64(int32(seed)) / float64(1<<28)
		}
		want := dotGo(a, b)
		got := Dot(a, b)
		tol := 1e-9 * (1 + math.Abs(want))
		if math.Abs(got-want) > tol {
			t.Errorf("n=%d: Dot = %g, scalar = %g", n, got, want)
		}
	}
}

func TestDotShorterFirstArg(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6, 7, 8}
	if got := Dot(a, b); got != 32 {
		t.Errorf("Dot = %g, want 32", got)
	}
}

func BenchmarkDot400(b *testing.B) {
	x := make([]float64, 400)
	y := make([]float64, 400)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(400 - i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Dot(x, y)
	}
}
