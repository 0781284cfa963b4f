package encoder

import (
	"math"

	"github.com/lc3go/lc3/internal/config"
)

// bandEnergies fills eb with the mean energy per band and runs the
// near-Nyquist check that gates TNS and LTPF on tonal high bands,
// LC3 Specification Sections 3.3.4.4 and 3.3.4.5.
func bandEnergies(cfg *config.Config, spec, eb []float64) (nearNyquist bool) {
	for b := 0; b < cfg.NB; b++ {
		var sum float64
		for k := cfg.BandEdges[b]; k < cfg.BandEdges[b+1]; k++ {
			sum += spec[k] * spec[k]
		}
		eb[b] = sum / float64(cfg.BandEdges[b+1]-cfg.BandEdges[b])
	}

	if cfg.Fs > 32000 || cfg.FrameUs < config.Frame7500us {
		return false
	}
	nnIdx := cfg.NB - 2
	if cfg.FrameUs == config.Frame7500us {
		nnIdx = cfg.NB - 4
	}
	var lower, upper float64
	for n := 0; n < cfg.NB; n++ {
		if n < nnIdx {
			lower += eb[n]
		} else {
			upper += eb[n]
		}
	}
	return upper > 30*lower
}

// Bandwidth detector region tables, one row per detector count.
var bwStart = map[int][4][4]uint8{
	config.Frame10000us: {{53}, {47, 59}, {44, 54, 60}, {41, 51, 57, 61}},
	config.Frame7500us:  {{51}, {45, 58}, {42, 53, 60}, {40, 51, 57, 61}},
	config.Frame5000us:  {{39}, {35, 47}, {34, 44, 50}, {32, 42, 48, 52}},
	config.Frame2500us:  {{24}, {24, 35}, {24, 33, 39}, {22, 31, 37, 41}},
}

var bwStop = map[int][4][4]uint8{
	config.Frame10000us: {{63}, {56, 63}, {52, 59, 63}, {49, 55, 60, 63}},
	config.Frame7500us:  {{63}, {55, 63}, {51, 58, 63}, {48, 55, 60, 63}},
	config.Frame5000us:  {{49}, {44, 51}, {42, 49, 53}, {40, 46, 51, 54}},
	config.Frame2500us:  {{34}, {32, 39}, {31, 38, 42}, {29, 35, 40, 43}},
}

var (
	bwQuietThresh = [4]float64{20, 10, 10, 10}
	bwCutoffThr   = [4]float64{15, 23, 20, 20}
	bwDist10ms    = [4]int{4, 4, 3, 1}
	bwDistShort   = [4]int{4, 4, 3, 2}
)

// nbitsBW is the coded width of the bandwidth field per detector count.
var nbitsBW = [5]int{0, 1, 2, 2, 3}

// detectBandwidth finds the active audio bandwidth from band energies:
// a quiet check from the top down, then a cutoff-energy-drop check,
// Section 3.3.5.
func detectBandwidth(cfg *config.Config, eb []float64) int {
	nbw := cfg.FsInd
	if nbw == 0 {
		return 0
	}
	start := bwStart[cfg.FrameUs][nbw-1]
	stop := bwStop[cfg.FrameUs][nbw-1]
	dist := bwDistShort
	if cfg.FrameUs == config.Frame10000us {
		dist = bwDist10ms
	}

	bw0 := 0
	for k := nbw - 1; k >= 0; k-- {
		width := float64(stop[k] - start[k] + 1)
		var q float64
		for n := start[k]; n <= stop[k]; n++ {
			q += eb[n] / width
		}
		if q >= bwQuietThresh[k] {
			bw0 = k + 1
			break
		}
	}
	if bw0 == nbw {
		return bw0
	}

	l := dist[bw0]
	var cMax float64
	for n := int(start[bw0]) - l + 1; n <= int(start[bw0])+1; n++ {
		c := 10 * math.Log10(eb[n-l]/eb[n])
		if c > cMax {
			cMax = c
		}
	}
	if cMax > bwCutoffThr[bw0] {
		return bw0
	}
	return nbw
}

// attackDetector flags sharp transients at high rates so the rate control
// can pin the global gain, Section 3.3.6.
type attackDetector struct {
	xLast [2]int64
	aLast uint64
	pLast int
}

func newAttackDetector() attackDetector {
	return attackDetector{}
}

func (d *attackDetector) run(cfg *config.Config, x []float64, nbytes int) bool {
	if cfg.Fs < 32000 {
		return false
	}
	active := false
	switch cfg.FrameUs {
	case config.Frame10000us:
		active = (cfg.Fs == 32000 && nbytes > 80) ||
			(cfg.Fs >= 44100 && nbytes >= 100)
	case config.Frame7500us:
		active = (cfg.Fs == 32000 && nbytes >= 61 && nbytes < 150) ||
			(cfg.Fs >= 44100 && nbytes >= 75 && nbytes < 150)
	}
	if !active {
		d.aLast = 0
		d.pLast = -1
		return false
	}

	mf := 160
	nBlocks := 4
	if cfg.FrameUs == config.Frame7500us {
		mf = 120
		nBlocks = 3
	}
	ratio := cfg.NF / mf

	last2, last1 := d.xLast[0], d.xLast[1]
	xi := 0
	pAtt := -1
	for b := 0; b < nBlocks; b++ {
		var e uint64
		for n := 0; n < 40; n++ {
			var sum float64
			for m := 0; m < ratio; m++ {
				sum += x[xi]
				xi++
			}
			// Highpass in an x8 integer domain: 3/8, -4/8, 1/8 taps.
			xhp := int64(sum*3) - last1<<2 + last2
			last2, last1 = last1, int64(sum)
			e += uint64(xhp * xhp)
		}
		a := d.aLast
		if e*10 > a*85 {
			pAtt = b
		}
		if a>>2 > e {
			d.aLast = a >> 2
		} else {
			d.aLast = e
		}
	}
	d.xLast[0], d.xLast[1] = last2, last1

	att := pAtt >= 0 || d.pLast >= nBlocks/2
	d.pLast = pAtt
	return att
}
