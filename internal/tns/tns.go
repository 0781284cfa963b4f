// Package tns implements temporal noise shaping: LPC analysis over the
// shaped spectrum, reflection-coefficient quantization to the sin(pi/17)
// grid, and the forward/inverse lattice filters, per LC3 Specification
// Sections 3.3.8 and 3.4.6.
package tns

import (
	"math"

	"github.com/lc3go/lc3/internal/dsp"
	"github.com/lc3go/lc3/internal/tables"
)

// MaxOrder is the lattice order at 7.5 and 10 ms; the short frames use 4.
const MaxOrder = 8

// Filter region tables, one row per bandwidth cutoff. The long durations
// split each filter range into three subdivisions, the short ones into two;
// rows with a zero second-filter stop run a single filter.
var subTables = map[int][5][7]uint16{
	10000: {
		{12, 34, 57, 80, 0, 0, 0},
		{12, 61, 110, 160, 0, 0, 0},
		{12, 88, 164, 240, 0, 0, 0},
		{12, 61, 110, 160, 213, 266, 320},
		{12, 74, 137, 200, 266, 333, 400},
	},
	7500: {
		{9, 26, 43, 60, 0, 0, 0},
		{9, 46, 83, 120, 0, 0, 0},
		{9, 66, 123, 180, 0, 0, 0},
		{9, 46, 82, 120, 159, 200, 240},
		{9, 56, 103, 150, 200, 250, 300},
	},
	5000: {
		{6, 23, 40, 0, 0, 0, 0},
		{6, 43, 80, 0, 0, 0, 0},
		{6, 63, 120, 0, 0, 0, 0},
		{6, 43, 80, 120, 160, 0, 0},
		{6, 53, 100, 150, 200, 0, 0},
	},
	2500: {
		{3, 10, 20, 0, 0, 0, 0},
		{3, 20, 40, 0, 0, 0, 0},
		{3, 30, 60, 0, 0, 0, 0},
		{3, 40, 80, 0, 0, 0, 0},
		{3, 50, 100, 0, 0, 0, 0},
	},
}

type region struct {
	start, stop int
	sub         [4]int // nSub+1 subdivision edges
	nSub        int
}

// layout resolves the filter regions for a duration and bandwidth cutoff.
func layout(frameUs, pbw int) (regions [2]region, numFilters int) {
	tbl := subTables[frameUs][pbw]
	long := frameUs >= 7500
	if long {
		regions[0] = region{start: int(tbl[0]), stop: int(tbl[3]),
			sub: [4]int{int(tbl[0]), int(tbl[1]), int(tbl[2]), int(tbl[3])}, nSub: 3}
		regions[1] = region{start: int(tbl[3]), stop: int(tbl[6]),
			sub: [4]int{int(tbl[3]), int(tbl[4]), int(tbl[5]), int(tbl[6])}, nSub: 3}
	} else {
		regions[0] = region{start: int(tbl[0]), stop: int(tbl[2]),
			sub: [4]int{int(tbl[0]), int(tbl[1]), int(tbl[2]), 0}, nSub: 2}
		regions[1] = region{start: int(tbl[2]), stop: int(tbl[4]),
			sub: [4]int{int(tbl[2]), int(tbl[3]), int(tbl[4]), 0}, nSub: 2}
	}
	numFilters = 1
	if regions[1].stop > 0 {
		numFilters = 2
	}
	return regions, numFilters
}

// NumFilters reports how many activation flags the bitstream carries.
func NumFilters(frameUs, pbw int) int {
	_, n := layout(frameUs, pbw)
	return n
}

func maxOrderFor(frameUs int) int {
	if frameUs >= 7500 {
		return 8
	}
	return 4
}

// LpcWeighting reports whether the low-rate coefficient weighting applies.
func LpcWeighting(frameUs, nbits int) bool {
	return nbits < 480*frameUs/10000
}

// Result carries the coded filter parameters of one frame.
type Result struct {
	NumFilters int
	Order      [2]int
	CoefInd    [2][8]int
	Bits       int // side + arithmetic cost in whole bits
}

// Analyze runs LPC analysis over spec, quantizes the reflection
// coefficients and applies the forward lattice in place.
func Analyze(spec []float64, frameUs, pbw, nbits int, nearNyquist bool) Result {
	regions, numFilters := layout(frameUs, pbw)
	maxOrder := maxOrderFor(frameUs)
	lpcWeighting := LpcWeighting(frameUs, nbits)

	var res Result
	res.NumFilters = numFilters
	var rcq [2][8]float64

	for f := 0; f < numFilters; f++ {
		reg := &regions[f]

		// per-subdivision normalized autocorrelation with lag windowing
		var r [9]float64
		r[0] = float64(reg.nSub)
		var invE [3]float64
		zeroSub := false
		for s := 0; s < reg.nSub; s++ {
			seg := spec[reg.sub[s]:reg.sub[s+1]]
			es := dsp.Dot(seg, seg)
			if es == 0 {
				zeroSub = true
				break
			}
			invE[s] = 1 / es
		}
		if !zeroSub {
			for k := 1; k <= maxOrder; k++ {
				var rk float64
				for s := 0; s < reg.nSub; s++ {
					lo, hi := reg.sub[s], reg.sub[s+1]
					if hi-lo <= k {
						continue
					}
					rk += dsp.Dot(spec[lo:hi-k], spec[lo+k:]) * invE[s]
				}
				r[k] = rk * tables.TnsLagWindow[k]
			}
		}

		// Levinson-Durbin
		var a, aLast [9]float64
		a[0] = 1
		e := r[0]
		for k := 1; k <= maxOrder; k++ {
			aLast, a = a, aLast
			var rc float64
			for n := 0; n < k; n++ {
				rc -= aLast[n] * r[k-n]
			}
			rc /= e
			a[0] = 1
			for n := 1; n < k; n++ {
				a[n] = aLast[n] + rc*aLast[k-n]
			}
			a[k] = rc
			e *= 1 - rc*rc
		}

		predGain := r[0] / e
		if predGain <= 1.5 || nearNyquist {
			res.Order[f] = 0
			continue
		}

		gamma := 1.0
		if lpcWeighting && predGain < 2 {
			gamma -= 0.3 * (2 - predGain)
		}
		gk := 1.0
		for k := 0; k <= maxOrder; k++ {
			a[k] *= gk
			gk *= gamma
		}

		// step-down to reflection coefficients
		var rc [8]float64
		ak, akm1 := &a, &aLast
		for k := maxOrder; k > 0; k-- {
			rcK := ak[k]
			rc[k-1] = rcK
			den := 1 - rcK*rcK
			for n := 1; n < k; n++ {
				akm1[n] = (ak[n] - rcK*ak[k-n]) / den
			}
			ak, akm1 = akm1, ak
		}

		// quantize on the arcsine grid; the coded order drops trailing
		// center indices
		order := 0
		for k := 0; k < maxOrder; k++ {
			ind := 0
			if rc[k] != 0 {
				ind = int(math.Round(math.Asin(rc[k]) * 17 / math.Pi))
			}
			if ind != 0 {
				order = k
			}
			res.CoefInd[f][k] = ind + 8
			rcq[f][k] = tables.TnsQuantGrid[ind+8]
		}
		res.Order[f] = order + 1
	}

	// bit budget, ceil in 1/2048-bit units per filter
	lw := 0
	if lpcWeighting {
		lw = 1
	}
	for f := 0; f < numFilters; f++ {
		cost := int32(tables.BitUnit)
		if res.Order[f] > 0 {
			cost += tables.TnsOrderBits[lw][res.Order[f]-1]
			for k := 0; k < res.Order[f]; k++ {
				cost += tables.TnsCoefBits[k][res.CoefInd[f][k]]
			}
		}
		res.Bits += int(cost+tables.BitUnit-1) / tables.BitUnit
	}

	// forward lattice filtering; the state carries across both filters
	var st [8]float64
	for f := 0; f < numFilters; f++ {
		if res.Order[f] == 0 {
			continue
		}
		last := res.Order[f] - 1
		for n := regions[f].start; n < regions[f].stop; n++ {
			t := spec[n]
			save := t
			for k := 0; k < last; k++ {
				tmp := rcq[f][k]*t + st[k]
				t += rcq[f][k] * st[k]
				st[k] = save
				save = tmp
			}
			t += rcq[f][last] * st[last]
			st[last] = save
			spec[n] = t
		}
	}
	return res
}

// Synthesize runs the inverse lattice over the decoded spectrum in place.
func Synthesize(spec []float64, frameUs, pbw int, numFilters int, order [2]int, coefInd [2][8]int) {
	regions, _ := layout(frameUs, pbw)
	var st [8]float64
	for f := 0; f < numFilters; f++ {
		if order[f] == 0 {
			continue
		}
		var rcq [8]float64
		for k := 0; k < order[f]; k++ {
			rcq[k] = tables.TnsQuantGrid[coefInd[f][k]]
		}
		last := order[f] - 1
		for n := regions[f].start; n < regions[f].stop; n++ {
			t := spec[n] - rcq[last]*st[last]
			for k := last - 1; k >= 0; k-- {
				t -= rcq[k] * st[k]
				st[k+1] = rcq[k]*t + st[k]
			}
			st[0] = t
			spec[n] = t
		}
	}
}
