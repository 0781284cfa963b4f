//go:build amd64 && !purego

package dsp

import "golang.org/x/sys/cpu"

var dotImpl = dotGo

func init() {
	if cpu.X86.HasAVX {
		dotImpl = dotAVX
	}
}

//go:noescape
func dotAVX(a, b []float64) float64
