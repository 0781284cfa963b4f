package ltpf

import (
	"math"

	"github.com/lc3go/lc3/internal/config"
)

// Decoder applies the pitch comb filter with 2.5 ms crossfades between
// parameter changes. Input and filtered output histories live in parallel
// ring buffers so the recursive branch can reach back across frames.
type Decoder struct {
	cfg       *config.Config
	fsEff     int
	numBlocks int
	lNum      int
	lDen      int
	fade      int // samples in 2.5 ms
	norm      float64

	xMem   []float64 // unfiltered history ring
	yMem   []float64 // filtered history ring
	temp   []float64
	start  int
	active bool

	nbits    int
	gain     float64
	gainInd  int
	num      [4][]float64 // per gain index
	den      [4][]float64 // per quarter phase
	cNum     []float64
	cDen     []float64
	cNumPrev []float64
	cDenPrev []float64
	pInt     int
	pFr      int
	pIntPrev int
	pFrPrev  int
}

// NewDecoder sets up the postfilter for one channel.
func NewDecoder(cfg *config.Config) *Decoder {
	d := &Decoder{cfg: cfg, fsEff: cfg.Fs, nbits: -1}
	if cfg.Fs == 44100 {
		d.fsEff = 48000
	}
	d.numBlocks = 3
	if cfg.FrameUs == config.Frame10000us {
		d.numBlocks = 2
	}
	d.lNum, d.lDen = filterLens(d.fsEff)
	// transition and crossfade normalization both span 2.5 ms
	d.fade = d.fsEff / 400
	d.norm = float64(d.fade)
	d.xMem = make([]float64, d.numBlocks*cfg.NF)
	d.yMem = make([]float64, d.numBlocks*cfg.NF)
	d.temp = make([]float64, d.numBlocks*cfg.NF)
	d.cNum = make([]float64, d.lNum+1)
	d.cDen = make([]float64, d.lDen+1)
	d.cNumPrev = make([]float64, d.lNum+1)
	d.cDenPrev = make([]float64, d.lDen+1)
	for g := 0; g < 4; g++ {
		d.num[g] = numTaps(d.fsEff, g)
	}
	for fr := 0; fr < 4; fr++ {
		d.den[fr] = denTaps(d.fsEff, fr)
	}
	return d
}

// Reset clears the signal history and filter state.
func (d *Decoder) Reset() {
	for i := range d.xMem {
		d.xMem[i] = 0
		d.yMem[i] = 0
	}
	for i := range d.cNum {
		d.cNum[i] = 0
		d.cNumPrev[i] = 0
	}
	for i := range d.cDen {
		d.cDen[i] = 0
		d.cDenPrev[i] = 0
	}
	d.start = 0
	d.active = false
	d.pInt, d.pFr, d.pIntPrev, d.pFrPrev = 0, 0, 0, 0
	d.nbits = -1
}

// setGain resolves the bitrate-dependent gain ladder.
func (d *Decoder) setGain(nbits int) {
	if nbits == d.nbits {
		return
	}
	d.nbits = nbits
	t := nbits
	switch d.cfg.FrameUs {
	case config.Frame7500us:
		t = int(float64(nbits) * 10 / 7.5)
	case config.Frame5000us:
		t = nbits*2 - 160
	case config.Frame2500us:
		t = int(float64(nbits*4) * 0.6)
	}
	base := 320 + d.cfg.FsInd*80
	switch {
	case t < base:
		d.gain, d.gainInd = 0.4, 0
	case t < base+80:
		d.gain, d.gainInd = 0.35, 1
	case t < base+160:
		d.gain, d.gainInd = 0.3, 2
	case t < base+240:
		d.gain, d.gainInd = 0.25, 3
	default:
		d.gain, d.gainInd = 0, 4
	}
}

// decodePitchIndex inverts the three-range pitch index packing.
func decodePitchIndex(pitchIndex int) (pitchInt, pitchFr int) {
	switch {
	case pitchIndex >= 440:
		return pitchIndex - 283, 0
	case pitchIndex >= 380:
		pitchInt = pitchIndex/2 - 63
		return pitchInt, 2*pitchIndex - 4*pitchInt - 252
	default:
		pitchInt = pitchIndex/4 + 32
		return pitchInt, pitchIndex - 4*pitchInt + 128
	}
}

// setCoeffs decodes the pitch index and scales the filter branches.
func (d *Decoder) setCoeffs(pitchIndex int) {
	pitchInt, pitchFrI := decodePitchIndex(pitchIndex)
	pitch := float64(pitchInt) + float64(pitchFrI)/4

	// map the 12.8 kHz lag onto the output rate
	conv := 8000 * math.Ceil(float64(d.cfg.Fs)/8000) / 12800
	pUp := int(pitch*conv*4 + 0.5)
	d.pInt = pUp / 4
	d.pFr = pUp - 4*d.pInt

	for k := range d.cNum {
		d.cNum[k] = 0.85 * d.gain * d.num[d.gainInd][k]
	}
	for k := range d.cDen {
		d.cDen[k] = d.gain * d.den[d.pFr][k]
	}
}

func (d *Decoder) wrap(i int) int {
	for i < 0 {
		i += len(d.xMem)
	}
	return i
}

// filtOut evaluates both filter branches at ring position start+n.
func (d *Decoder) filtOut(n int, x, y, cNum, cDen []float64, pInt int) float64 {
	var out float64
	for k := 0; k <= d.lNum; k++ {
		out += cNum[k] * x[d.wrap(d.start+n-k)]
	}
	for k := 0; k <= d.lDen; k++ {
		out -= cDen[k] * y[d.wrap(d.start+n-pInt+d.lDen/2-k)]
	}
	return out
}

// Process filters one frame in place. With no pitch coded, call with
// active false and any pitch index.
func (d *Decoder) Process(frame []float64, active bool, pitchIndex, nbits int) {
	d.setGain(nbits)
	d.pIntPrev, d.pFrPrev = d.pInt, d.pFr
	copy(d.cNumPrev, d.cNum)
	copy(d.cDenPrev, d.cDen)
	if d.gain == 0 {
		active = false
	}
	if active {
		d.setCoeffs(pitchIndex)
	} else {
		d.pInt, d.pFr = 0, 0
		for k := range d.cNum {
			d.cNum[k] = 0
		}
		for k := range d.cDen {
			d.cDen[k] = 0
		}
	}

	nf := d.cfg.NF
	copy(d.xMem[d.start:d.start+nf], frame)

	switch {
	case !active && !d.active:
		copy(d.yMem[d.start:d.start+nf], d.xMem[d.start:d.start+nf])

	case active && !d.active:
		// fade the filter in over 2.5 ms
		for n := 0; n < d.fade; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNum, d.cDen, d.pInt)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out*float64(n)/d.norm
		}
		for n := d.fade; n < nf; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNum, d.cDen, d.pInt)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out
		}

	case !active && d.active:
		// fade the previous filter out
		for n := 0; n < d.fade; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNumPrev, d.cDenPrev, d.pIntPrev)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out*(1-float64(n)/d.norm)
		}
		for n := d.fade; n < nf; n++ {
			d.yMem[d.start+n] = d.xMem[d.start+n]
		}

	case d.pInt == d.pIntPrev && d.pFr == d.pFrPrev:
		for n := 0; n < nf; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNum, d.cDen, d.pInt)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out
		}

	default:
		// pitch changed: fade the old filter out, then the new one in on
		// the old filter's output
		for n := 0; n < d.fade; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNumPrev, d.cDenPrev, d.pIntPrev)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out*(1-float64(n)/d.norm)
		}
		for m := -d.lNum; m < int(d.norm); m++ {
			i := d.wrap(d.start + m)
			d.temp[i] = d.yMem[i]
		}
		for n := 0; n < d.fade; n++ {
			out := d.filtOut(n, d.temp, d.yMem, d.cNum, d.cDen, d.pInt)
			d.yMem[d.start+n] = d.temp[d.start+n] - out*float64(n)/d.norm
		}
		for n := d.fade; n < nf; n++ {
			out := d.filtOut(n, d.xMem, d.yMem, d.cNum, d.cDen, d.pInt)
			d.yMem[d.start+n] = d.xMem[d.start+n] - out
		}
	}

	copy(frame, d.yMem[d.start:d.start+nf])

	d.start += nf
	if d.start > (d.numBlocks-1)*nf {
		d.start = 0
	}
	d.active = active
}
