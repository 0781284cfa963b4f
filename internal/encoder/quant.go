package encoder

import (
	"math"

	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/tables"
)

// specQuant holds the spectral quantizer with its cross-frame rate
// control state, LC3 Specification Section 3.3.10.
type specQuant struct {
	cfg *config.Config

	resetOffOld  bool
	nbitsOffOld  float64
	nbitsSpecOld int
	nbitsEstOld  int
	ggIndLast    int
	xfSumLast    float64

	e     []float64 // per-4-line energies, dB
	xfMax float64

	xq         []int
	gg         float64
	ggInd      int
	ggMin      int
	ggOff      int
	lastnz     int
	lastnzTrnc int
	rateFlag   int
	modeFlag   bool
	lsbMode    bool
	nbitsEst   int
	nbitsTrunc int
	nbitsLsb   int
}

func newSpecQuant(cfg *config.Config) *specQuant {
	return &specQuant{
		cfg: cfg,
		e:   make([]float64, cfg.NE/4),
		xq:  make([]int, cfg.NE),
	}
}

func (q *specQuant) reset() {
	q.resetOffOld = false
	q.nbitsOffOld = 0
	q.nbitsSpecOld = 0
	q.nbitsEstOld = 0
	q.ggIndLast = 0
	q.xfSumLast = 0
}

func (q *specQuant) run(spec []float64, nbits, nbitsSpec int) {
	cfg := q.cfg

	var xfMax, xfSum float64
	for _, v := range spec {
		a := math.Abs(v)
		if a > xfMax {
			xfMax = a
		}
		xfSum += a
	}
	q.xfMax = xfMax

	var nbitsOffset float64
	if !q.resetOffOld {
		diff := q.nbitsOffOld + float64(q.nbitsSpecOld-q.nbitsEstOld)
		if diff < -40 {
			diff = -40
		} else if diff > 40 {
			diff = 40
		}
		nbitsOffset = 0.8*q.nbitsOffOld + 0.2*diff
	}
	nbitsSpecAdj := int(float64(nbitsSpec) + nbitsOffset + 0.5)
	ggOffPart := nbits / (10 * (cfg.FsInd + 1))
	if ggOffPart > 115 {
		ggOffPart = 115
	}
	q.ggOff = -ggOffPart - 105 - 5*(cfg.FsInd+1)

	q.ggInd = q.estimateGain(spec, nbitsSpecAdj, xfSum)
	resetOffset := q.limitGain()

	q.quantize(spec)
	q.countBits(nbits, nbitsSpec)

	q.resetOffOld = resetOffset
	q.nbitsOffOld = nbitsOffset
	q.nbitsSpecOld = nbitsSpec
	q.nbitsEstOld = q.nbitsEst

	if q.adjustGainIndex(spec, nbitsSpecAdj, nbitsSpec) {
		q.quantize(spec)
		q.countBits(nbits, nbitsSpec)
	}

	for n := q.lastnzTrnc; n < q.lastnz; n++ {
		q.xq[n] = 0
	}
	q.lsbMode = q.modeFlag && q.nbitsEst > nbitsSpec
	q.xfSumLast = xfSum
}

// estimateGain reuses the previous frame's gain index with a linear
// correction while the spectral level stays close; a level shift beyond
// the reuse threshold (or the first frame) takes the full bisection over
// the grouped energies.
func (q *specQuant) estimateGain(spec []float64, nbitsSpecAdj int, xfSum float64) int {
	if q.ggIndLast == 0 {
		q.computeEnergies(spec)
		return q.bisectGainIndex(nbitsSpecAdj)
	}
	if q.xfSumLast == 0 {
		return q.ggIndLast
	}
	m := math.Min(xfSum, q.xfSumLast)
	if m == 0 {
		q.computeEnergies(spec)
		return q.bisectGainIndex(nbitsSpecAdj)
	}
	err := int((xfSum - q.xfSumLast) / m * 10)
	if err > 48 || err < -48 {
		q.computeEnergies(spec)
		return q.bisectGainIndex(nbitsSpecAdj)
	}
	if err > 12 {
		err = 12
	} else if err < -12 {
		err = -12
	}
	ind := q.ggIndLast + err
	if ind > 255 {
		ind = 255
	}
	return ind
}

func (q *specQuant) computeEnergies(spec []float64) {
	for i := range q.e {
		var sum float64
		for n := 0; n < 4; n++ {
			v := spec[4*i+n]
			sum += v * v
		}
		q.e[i] = 10 * math.Log10(math.Exp2(-31)+sum)
	}
}

// limitGain keeps the quantized spectrum inside int16 range and reports
// whether the offset state must reset.
func (q *specQuant) limitGain() bool {
	q.ggMin = 0
	if q.xfMax > 0 {
		q.ggMin = int(math.Ceil(28*math.Log10(q.xfMax/(32768-0.375)))) - q.ggOff
	}
	if q.ggInd < q.ggMin || q.xfMax == 0 {
		q.ggInd = q.ggMin
		return true
	}
	return false
}

// bisectGainIndex runs the binary search over the 8-bit gain index
// against a bit estimate built from the grouped energies.
func (q *specQuant) bisectGainIndex(nbitsSpecAdj int) int {
	const sc = 28.0 / 20.0
	target := float64(nbitsSpecAdj) * 1.4 * sc
	fac := 256
	ggInd := 255
	for iter := 0; iter < 8; iter++ {
		fac >>= 1
		ggInd -= fac
		gi := float64(ggInd + q.ggOff)
		var tmp float64
		iszero := true
		for i := len(q.e) - 1; i >= 0; i-- {
			ei := q.e[i] * sc
			if ei < gi {
				if !iszero {
					tmp += 2.7 * sc
				}
				continue
			}
			if gi < ei-43*sc {
				tmp += 2*ei - 2*gi - 36*sc
			} else {
				tmp += ei - gi + 7*sc
			}
			iszero = false
		}
		if tmp > target && !iszero {
			ggInd += fac
		}
	}
	return ggInd
}

func (q *specQuant) quantize(spec []float64) {
	q.gg = math.Pow(10, float64(q.ggInd+q.ggOff)/28)
	lastnz := 0
	for n, v := range spec {
		var xq int
		if v > 0 {
			xq = int(v/q.gg + 0.375)
		} else if v < 0 {
			xq = int(v/q.gg - 0.375)
		}
		q.xq[n] = xq
		if xq != 0 {
			lastnz = n + 1
		}
	}
	lastnz = (lastnz + 1) &^ 1
	if lastnz < 2 {
		lastnz = 2
	}
	q.lastnz = lastnz
}

// countBits mirrors the arithmetic coder's consumption for the quantized
// spectrum, tracking the largest prefix that fits the spectral budget.
func (q *specQuant) countBits(nbits, nbitsSpec int) {
	cfg := q.cfg
	q.rateFlag = 0
	if nbits > 160+cfg.FsInd*160 {
		q.rateFlag = 512
	}
	q.modeFlag = nbits >= 480+cfg.FsInd*160

	est := 0
	q.nbitsLsb = 0
	q.nbitsTrunc = 0
	q.lastnzTrnc = 2
	c := 0
	for n := 0; n < q.lastnz; n += 2 {
		t := c + q.rateFlag
		if n > cfg.NE/2 {
			t += 256
		}
		a := q.xq[n]
		if a < 0 {
			a = -a
		}
		b := q.xq[n+1]
		if b < 0 {
			b = -b
		}
		if a > 0 {
			est += tables.BitUnit
		}
		if b > 0 {
			est += tables.BitUnit
		}
		lev := 0
		m := a
		if b > m {
			m = b
		}
		for m >= 4 {
			pki := tables.SpecLookup(t, lev)
			est += int(tables.SpecBits[pki][16])
			if lev == 0 && q.modeFlag {
				q.nbitsLsb += 2
				if a == 1 {
					q.nbitsLsb++
				}
				if b == 1 {
					q.nbitsLsb++
				}
			} else {
				est += 2 * tables.BitUnit
			}
			a >>= 1
			b >>= 1
			m >>= 1
			if lev < 3 {
				lev++
			}
		}
		pki := tables.SpecLookup(t, lev)
		est += int(tables.SpecBits[pki][a+4*b])
		if lev > 1 {
			t = 12 + lev
		} else if lev == 1 {
			t = 1 + 2*(a+b)
		} else {
			t = 1 + a + b
		}
		c = ((c & 15) << 4) + t
		if q.xq[n] != 0 || q.xq[n+1] != 0 {
			rounded := (est + tables.BitUnit - 1) / tables.BitUnit
			if rounded <= nbitsSpec {
				q.lastnzTrnc = n + 2
				q.nbitsTrunc = rounded
			}
		}
	}
	q.nbitsEst = (est+tables.BitUnit-1)/tables.BitUnit + q.nbitsLsb
}

var (
	adjT1 = [5]int{80, 230, 380, 530, 680}
	adjT2 = [5]int{500, 1025, 1550, 2075, 2600}
	adjT3 = [5]int{850, 1700, 2550, 3400, 4250}
)

// adjustGainIndex closes the gap between the bit estimate and the budget:
// a small gap moves the gain index by the whole-delta error count, a gap of
// six deltas or more falls back to a full re-estimation. Reports whether
// the spectrum must be requantized.
func (q *specQuant) adjustGainIndex(spec []float64, nbitsSpecAdj, nbitsSpec int) bool {
	t1 := float64(adjT1[q.cfg.FsInd])
	t2 := float64(adjT2[q.cfg.FsInd])
	t3 := float64(adjT3[q.cfg.FsInd])
	est := float64(q.nbitsEst)

	var deltaF float64
	switch {
	case est < t1:
		deltaF = (est + 48) / 16
	case est < t2:
		tmp1 := t1/16 + 3
		tmp2 := t2 / 48
		deltaF = (est-t1)*(tmp2-tmp1)/(t2-t1) + tmp1
	case est < t3:
		deltaF = est / 48
	default:
		deltaF = t3 / 48
	}
	delta := int(deltaF + 0.5)
	delta2 := delta + 2

	diff := q.nbitsEst - nbitsSpec
	err := 0
	if diff < -delta2 {
		err = (diff - delta2) / delta
	} else if diff > 0 {
		err = (diff + delta) / delta
	}

	if err >= 6 || err <= -6 {
		q.computeEnergies(spec)
		q.ggInd = q.bisectGainIndex(nbitsSpecAdj)
		q.limitGain()
		q.ggIndLast = q.ggInd
		return true
	}
	if err != 0 {
		ind := q.ggInd + err
		if ind < q.ggMin {
			ind = q.ggMin
		}
		if ind > 255 {
			ind = 255
		}
		q.ggIndLast = ind
		if lo := q.ggInd - 2; ind < lo {
			ind = lo
		}
		if hi := q.ggInd + 3; ind > hi {
			ind = hi
		}
		q.ggInd = ind
		return true
	}
	q.ggIndLast = q.ggInd
	return false
}

// collectResidual gathers refinement bits for the nonzero quantized lines,
// capped at the bits the truncated spectrum left over, Section 3.3.11.
func (q *specQuant) collectResidual(spec []float64, nbitsSpec int, out []uint8) []uint8 {
	maxBits := nbitsSpec - q.nbitsTrunc + 4
	if maxBits < 0 {
		maxBits = 0
	}
	out = out[:0]
	for k := 0; k < q.cfg.NE && len(out) < maxBits; k++ {
		if q.xq[k] == 0 {
			continue
		}
		var bit uint8
		if spec[k] >= float64(q.xq[k])*q.gg {
			bit = 1
		}
		out = append(out, bit)
	}
	return out
}

var nfStartWidth = map[int][2]int{
	config.Frame10000us: {24, 3},
	config.Frame7500us:  {18, 2},
	config.Frame5000us:  {12, 1},
	config.Frame2500us:  {6, 1},
}

var nfBwStop = map[int][5]int{
	config.Frame10000us: {80, 160, 240, 320, 400},
	config.Frame7500us:  {60, 120, 180, 240, 300},
	config.Frame5000us:  {40, 80, 120, 160, 200},
	config.Frame2500us:  {20, 40, 60, 80, 100},
}

// noiseLevel estimates the mean level of the zeroed spectral lines above
// the noise filling start, Section 3.3.12.
func (q *specQuant) noiseLevel(spec []float64, pbw int) int {
	sw := nfStartWidth[q.cfg.FrameUs]
	start, width := sw[0], sw[1]
	stop := nfBwStop[q.cfg.FrameUs][pbw]
	if stop > q.cfg.NE {
		stop = q.cfg.NE
	}

	var sum float64
	count := 0
	for k := start; k < stop; k++ {
		lo := k - width
		hi := k + width + 1
		if hi > stop {
			hi = stop
		}
		filled := true
		for i := lo; i < hi; i++ {
			if q.xq[i] != 0 {
				filled = false
				break
			}
		}
		if filled {
			sum += math.Abs(spec[k]) / q.gg
			count++
		}
	}
	var mean float64
	if count > 0 {
		mean = sum / float64(count)
	}
	fnf := int(8 - 16*mean + 0.5)
	if fnf < 0 {
		fnf = 0
	} else if fnf > 7 {
		fnf = 7
	}
	return fnf
}
