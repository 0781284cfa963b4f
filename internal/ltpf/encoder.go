// Package ltpf implements the long-term postfilter: pitch analysis on a
// 12.8 kHz downsampled signal at the encoder, LC3 Specification
// Section 3.3.9, and the pitch-driven comb filter at the decoder,
// Section 3.4.9.
package ltpf

import (
	"math"

	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/dsp"
)

const (
	nmem12p8 = 232
	kMin     = 17
	kMax     = 114
)

// Result carries the coded LTPF parameters of one frame.
type Result struct {
	PitchPresent bool
	Active       bool
	PitchIndex   int
	Bits         int // 1 without a pitch, 11 with one
	NormCorr     float64
}

// Encoder holds the resampler and pitch tracker state across frames.
type Encoder struct {
	cfg     *config.Config
	p       int // 192 kHz grid step
	resFac  float64
	len12p8 int
	len6p4  int
	dLTPF   int

	xsHist []float64 // last 240/p input samples
	x12Ext []float64 // len12p8 + dLTPF + nmem12p8
	x64Ext []float64 // len6p4 + kMax
	r12    []float64
	h50    [2]float64

	tPrev     int
	memPitch  float64
	memActive bool
	memNC     float64
	memMemNC  float64
}

func gridStep(fs int) int {
	if fs == 44100 {
		return 4
	}
	return 192000 / fs
}

// NewEncoder sets up pitch analysis for one channel.
func NewEncoder(cfg *config.Config) *Encoder {
	e := &Encoder{cfg: cfg, p: gridStep(cfg.Fs), tPrev: kMin}
	e.resFac = float64(e.p)
	if cfg.Fs == 8000 {
		e.resFac = float64(e.p) / 2
	}
	switch cfg.FrameUs {
	case config.Frame10000us:
		e.len12p8, e.len6p4, e.dLTPF = 128, 64, 24
	case config.Frame7500us:
		e.len12p8, e.len6p4, e.dLTPF = 96, 48, 44
	case config.Frame5000us:
		e.len12p8, e.len6p4, e.dLTPF = 64, 24, 24
	default:
		e.len12p8, e.len6p4, e.dLTPF = 32, 16, 24
	}
	e.xsHist = make([]float64, 240/e.p)
	e.x12Ext = make([]float64, e.len12p8+e.dLTPF+nmem12p8)
	e.x64Ext = make([]float64, e.len6p4+kMax)
	e.r12 = make([]float64, 256)
	return e
}

// Reset clears all cross-frame state.
func (e *Encoder) Reset() {
	for i := range e.xsHist {
		e.xsHist[i] = 0
	}
	for i := range e.x12Ext {
		e.x12Ext[i] = 0
	}
	for i := range e.x64Ext {
		e.x64Ext[i] = 0
	}
	e.h50 = [2]float64{}
	e.tPrev = kMin
	e.memPitch, e.memNC, e.memMemNC = 0, 0, 0
	e.memActive = false
}

// gainEnabled mirrors the decoder's gain ladder: the filter only engages at
// rates where the decoder applies a nonzero gain.
func gainEnabled(nbits int, cfg *config.Config) bool {
	t := nbits
	switch cfg.FrameUs {
	case config.Frame7500us:
		t = int(math.Round(float64(nbits) * 10 / 7.5))
	case config.Frame5000us:
		t = nbits*2 - 160
	case config.Frame2500us:
		t = int(float64(nbits*4) * 0.6)
	}
	return t < 560+cfg.FsInd*80
}

// Run analyzes one input frame and decides the coded pitch parameters.
func (e *Encoder) Run(x []float64, nbits int, nearNyquist bool) Result {
	// age the 12.8 kHz and 6.4 kHz histories by one frame
	copy(e.x12Ext, e.x12Ext[e.len12p8:])
	copy(e.x64Ext, e.x64Ext[e.len6p4:])

	x12 := e.x12Ext[e.dLTPF+nmem12p8:]
	e.resample(x, x12)
	e.highpass50(x12)

	tCurr, normCorr := e.pitchDetect()
	pitchInt, pitchFr, pitchIndex := e.pitchLag(tCurr)

	nc, pitch := e.normCorrInterp(pitchInt, pitchFr)
	active := false
	if gainEnabled(nbits, e.cfg) && !nearNyquist {
		freshStart := !e.memActive &&
			(e.cfg.FrameUs == config.Frame10000us || e.memMemNC > 0.94) &&
			e.memNC > 0.94 && nc > 0.94
		steady := e.memActive && nc > 0.9
		drift := e.memActive && math.Abs(pitch-e.memPitch) < 2 &&
			nc-e.memNC > -0.1 && nc > 0.84
		active = freshStart || steady || drift
	}

	res := Result{PitchPresent: normCorr > 0.6, NormCorr: normCorr}
	res.Bits = 1
	if res.PitchPresent {
		res.Bits = 11
		res.PitchIndex = pitchIndex
		res.Active = active
	} else {
		nc = 0
	}

	e.tPrev = tCurr
	e.memMemNC = e.memNC
	if res.PitchPresent {
		e.memPitch = pitch
		e.memActive = res.Active
		e.memNC = nc
	} else {
		e.memPitch = 0
		e.memActive = false
		e.memNC = 0
	}
	return res
}

// resample converts the input frame to 12.8 kHz through the polyphase
// lowpass on the 192 kHz virtual grid.
func (e *Encoder) resample(x, out []float64) {
	p := e.p
	p120 := 120 / p
	hist := len(e.xsHist)
	at := func(i int) float64 {
		if i < 0 {
			return e.xsHist[hist+i]
		}
		return x[i]
	}
	for n := 0; n < e.len12p8; n++ {
		base := 15 * n / p
		phase := 15 * n % p
		var sum float64
		for k := -p120; k <= p120; k++ {
			h := p*k - phase
			if h <= -120 || h >= 120 {
				continue
			}
			sum += at(base+k-p120) * resampFilter[h+119]
		}
		out[n] = sum * e.resFac
	}
	copy(e.xsHist, x[len(x)-hist:])
}

// highpass50 removes DC and hum with a 50 Hz biquad, direct form II.
func (e *Encoder) highpass50(xy []float64) {
	const (
		b0 = 0.9827947082978771
		b1 = -1.965589416595754
		b2 = 0.9827947082978771
		a1 = -1.9652933726226904
		a2 = 0.9658854605688177
	)
	m0, m1 := e.h50[0], e.h50[1]
	for n := range xy {
		v := xy[n] - a1*m0 - a2*m1
		xy[n] = b0*v + b1*m0 + b2*m1
		m1 = m0
		m0 = v
	}
	e.h50[0], e.h50[1] = m0, m1
}

func (e *Encoder) x64At(i int) float64 { return e.x64Ext[kMax+i] }

// pitchDetect runs the two-stage 6.4 kHz lag search: a bias-weighted global
// maximum and a refinement near the previous pitch.
func (e *Encoder) pitchDetect() (tCurr int, normCorr float64) {
	for n := 0; n < e.len6p4; n++ {
		var sum float64
		for k := 0; k < 5; k++ {
			sum += e.x12Ext[nmem12p8+2*n+k-3] * halfband[k]
		}
		e.x64Ext[kMax+n] = sum
	}

	var r64 [kMax - kMin + 1]float64
	wStep := 0.5 / float64(kMax-kMin)
	t1 := kMin
	wMax := math.Inf(-1)
	for k := kMin; k <= kMax; k++ {
		var sum float64
		for n := 0; n < e.len6p4; n++ {
			sum += e.x64At(n) * e.x64At(n-k)
		}
		r64[k-kMin] = sum
		w := 1 - float64(k-kMin)*wStep
		if w*sum > wMax {
			wMax = w * sum
			t1 = k
		}
	}

	ksMin, ksMax := e.tPrev-4, e.tPrev+4
	if ksMin < kMin {
		ksMin = kMin
	}
	if ksMax > kMax {
		ksMax = kMax
	}
	t2 := ksMin
	rMax := r64[ksMin-kMin]
	for k := ksMin + 1; k <= ksMax; k++ {
		if r64[k-kMin] > rMax {
			rMax = r64[k-kMin]
			t2 = k
		}
	}

	norm0 := e.normValue(0)
	nc1 := 0.0
	if nv := math.Sqrt(norm0 * e.normValue(t1)); nv > 0 {
		nc1 = r64[t1-kMin] / nv
	}
	nc1 = math.Max(0, nc1)
	nc2 := nc1
	if t1 != t2 {
		nc2 = 0
		if nv := math.Sqrt(norm0 * e.normValue(t2)); nv > 0 {
			nc2 = r64[t2-kMin] / nv
		}
		nc2 = math.Max(0, nc2)
	}
	if nc2 > 0.85*nc1 {
		return t2, nc2
	}
	return t1, nc1
}

func (e *Encoder) normValue(t int) float64 {
	var sum float64
	for n := -t; n < e.len6p4-t; n++ {
		sum += e.x64At(n) * e.x64At(n)
	}
	return sum
}

// pitchLag refines the 6.4 kHz lag on the 12.8 kHz grid and resolves the
// quarter-sample fraction, then packs the three-range pitch index.
func (e *Encoder) pitchLag(tCurr int) (pitchInt, pitchFr, pitchIndex int) {
	ksMin, ksMax := 2*tCurr-4, 2*tCurr+4
	if ksMin < 32 {
		ksMin = 32
	}
	if ksMax > 228 {
		ksMax = 228
	}
	cur := e.x12Ext[nmem12p8 : nmem12p8+e.len12p8]
	pitchInt = ksMin
	rMax := 0.0
	for k := ksMin - 4; k <= ksMax+4; k++ {
		sum := dsp.Dot(cur, e.x12Ext[nmem12p8-k:])
		e.r12[k-(ksMin-4)] = sum
		if sum > rMax && k >= ksMin && k <= ksMax {
			rMax = sum
			pitchInt = k
		}
	}

	rel := pitchInt - (ksMin - 4)
	switch {
	case pitchInt == 32:
		pitchFr = bestFraction(e.r12, rel, 0, 3, 1)
	case pitchInt > 32 && pitchInt < 127:
		pitchFr = bestFraction(e.r12, rel, -3, 3, 1)
	case pitchInt >= 127 && pitchInt < 157:
		pitchFr = bestFraction(e.r12, rel, -2, 2, 2)
	}
	if pitchFr < 0 {
		pitchInt--
		pitchFr += 4
	}

	switch {
	case pitchInt < 127:
		pitchIndex = 4*pitchInt + pitchFr - 128
	case pitchInt < 157:
		pitchIndex = 2*pitchInt + pitchFr/2 + 126
	default:
		pitchIndex = pitchInt + 283
	}
	return pitchInt, pitchFr, pitchIndex
}

func bestFraction(r []float64, center, dMin, dMax, step int) int {
	best := 0
	bestV := 0.0
	for d := dMin; d <= dMax; d += step {
		if v := interpLag(r, center, d); v > bestV {
			bestV = v
			best = d
		}
	}
	return best
}

// interpLag evaluates the autocorrelation at a quarter-sample offset d.
func interpLag(r []float64, center, d int) float64 {
	n0 := -16 - d
	if err := -15 - n0; err > 0 {
		n0 += (err + 3) &^ 3
	}
	var sum float64
	for n := n0; n < 16; n += 4 {
		sum += r[center+((n+d)>>2)] * interpRTab[n+15]
	}
	return sum
}

// x12Interp evaluates the delayed 12.8 kHz signal at sample n shifted by a
// quarter-sample fraction d.
func (e *Encoder) x12Interp(n, d int) float64 {
	x12 := e.x12Ext[nmem12p8:]
	j0 := -8 - d
	if err := -7 - j0; err > 0 {
		j0 += (err + 3) &^ 3
	}
	var sum float64
	for j := j0; j < 8; j += 4 {
		k := (j + d) >> 2
		sum += x12[n-k] * interpXTab[j+7]
	}
	return sum
}

// normCorrInterp measures how well the refined lag predicts the frame.
func (e *Encoder) normCorrInterp(pitchInt, pitchFr int) (nc, pitch float64) {
	var num, n1, n2 float64
	for n := 0; n < e.len12p8; n++ {
		a := e.x12Interp(n, 0)
		b := e.x12Interp(n-pitchInt, pitchFr)
		num += a * b
		n1 += a * a
		n2 += b * b
	}
	if den := math.Sqrt(n1 * n2); den > 0 {
		nc = num / den
	}
	return nc, float64(pitchInt) + float64(pitchFr)/4
}
