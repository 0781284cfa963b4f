// Package encoder turns one frame of PCM into an LC3 payload: transform,
// spectral shaping, temporal shaping, quantization with rate control and
// the dual-cursor bitstream assembly, LC3 Specification Section 3.3.
package encoder

import (
	"math/bits"

	"github.com/lc3go/lc3/internal/bitstream"
	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/ltpf"
	"github.com/lc3go/lc3/internal/mdct"
	"github.com/lc3go/lc3/internal/sns"
	"github.com/lc3go/lc3/internal/tables"
	"github.com/lc3go/lc3/internal/tns"
)

// Frame encodes successive frames of one channel.
type Frame struct {
	cfg    *config.Config
	mdct   *mdct.Analysis
	sns    *sns.Analyzer
	shaper *sns.Shaper
	ltpf   *ltpf.Encoder
	quant  *specQuant
	attack attackDetector
	w      bitstream.Writer

	spec []float64
	eb   []float64
	scf  []float64
	scfQ []float64
	res  []uint8
	lsbs []uint8
}

func NewFrame(cfg *config.Config) *Frame {
	return &Frame{
		cfg:    cfg,
		mdct:   mdct.NewAnalysis(cfg.NF, cfg.Z),
		sns:    sns.NewAnalyzer(cfg.NB, cfg.FsInd, cfg.FrameUs),
		shaper: sns.NewShaper(cfg.NB, cfg.BandEdges),
		ltpf:   ltpf.NewEncoder(cfg),
		quant:  newSpecQuant(cfg),
		attack: newAttackDetector(),
		spec:   make([]float64, cfg.NF),
		eb:     make([]float64, cfg.NB),
		scf:    make([]float64, sns.NScales),
		scfQ:   make([]float64, sns.NScales),
		res:    make([]uint8, 0, cfg.NE),
		lsbs:   make([]uint8, 0, 2*cfg.NE),
	}
}

// Reset clears all cross-frame state.
func (f *Frame) Reset() {
	f.mdct.Reset()
	f.ltpf.Reset()
	f.quant.reset()
	f.attack = newAttackDetector()
}

// nbitsAriBase is the arithmetic side reserve entering the spectral bit
// budget: the last-nonzero field plus a rate-dependent margin.
func (f *Frame) nbitsAriBase(nbits int) int {
	n := bits.Len(uint(f.cfg.NE/2 - 1))
	switch {
	case nbits <= 1280:
		return n + 3
	case nbits <= 2560:
		return n + 4
	default:
		return n + 5
	}
}

// Encode writes one frame of x (cfg.NF samples, int16 range) into out.
// The payload size is len(out); the caller has validated it.
func (f *Frame) Encode(x []float64, out []byte) {
	cfg := f.cfg
	nbytes := len(out)
	nbits := 8 * nbytes

	attack := f.attack.run(cfg, x, nbytes)
	f.mdct.Transform(f.spec, x)
	spec := f.spec[:cfg.NE]

	nearNyquist := bandEnergies(cfg, spec, f.eb)
	pbw := detectBandwidth(cfg, f.eb)

	f.sns.Compute(f.eb, attack, f.scf)
	snsParams := sns.Quantize(f.scf, f.scfQ)
	f.shaper.Apply(spec, f.scfQ, -1)

	tnsRes := tns.Analyze(spec, cfg.FrameUs, pbw, nbits, nearNyquist)
	ltpfRes := f.ltpf.Run(x, nbits, nearNyquist)

	nbitsSpec := nbits - (nbitsBW[cfg.FsInd] + tnsRes.Bits + ltpfRes.Bits +
		sns.Bits + 8 + 3 + f.nbitsAriBase(nbits))

	f.quant.run(spec, nbits, nbitsSpec)
	f.res = f.quant.collectResidual(spec, nbitsSpec, f.res)
	fnf := f.quant.noiseLevel(spec, pbw)

	f.writeFrame(out, pbw, fnf, tnsRes, ltpfRes, &snsParams, nbits)
}

func (f *Frame) writeFrame(out []byte, pbw, fnf int, tnsRes tns.Result,
	ltpfRes ltpf.Result, snsParams *sns.Params, nbits int) {
	cfg := f.cfg
	q := f.quant
	w := &f.w
	w.Reset(out)

	// side information, written backward from the last byte
	if nbitsBW[cfg.FsInd] > 0 {
		w.WriteUint(uint32(pbw), nbitsBW[cfg.FsInd])
	}
	w.WriteUint(uint32(q.lastnzTrnc/2-1), bits.Len(uint(cfg.NE/2-1)))
	lsb := 0
	if q.lsbMode {
		lsb = 1
	}
	w.WriteBit(lsb)
	w.WriteUint(uint32(q.ggInd), 8)
	for i := 0; i < tnsRes.NumFilters; i++ {
		active := 0
		if tnsRes.Order[i] > 0 {
			active = 1
		}
		w.WriteBit(active)
	}
	pp := 0
	if ltpfRes.PitchPresent {
		pp = 1
	}
	w.WriteBit(pp)
	w.WriteUint(uint32(snsParams.IndLF), 5)
	w.WriteUint(uint32(snsParams.IndHF), 5)
	w.WriteBit(snsParams.SubmodeMSB())
	gm, gmBits := snsParams.GainMSBs()
	w.WriteUint(gm, gmBits)
	w.WriteBit(snsParams.LSIndA)
	w.WriteUint(snsParams.IdxJoint, snsParams.JointBits())
	if ltpfRes.PitchPresent {
		act := 0
		if ltpfRes.Active {
			act = 1
		}
		w.WriteBit(act)
		w.WriteUint(uint32(ltpfRes.PitchIndex), 9)
	}
	w.WriteUint(uint32(fnf), 3)

	// arithmetic data, written forward from the first byte
	lw := 0
	if tns.LpcWeighting(cfg.FrameUs, nbits) {
		lw = 1
	}
	for i := 0; i < tnsRes.NumFilters; i++ {
		order := tnsRes.Order[i]
		if order == 0 {
			continue
		}
		w.Encode(uint32(tables.TnsOrderCumFreq[lw][order-1]),
			uint32(tables.TnsOrderFreq[lw][order-1]))
		for k := 0; k < order; k++ {
			ci := tnsRes.CoefInd[i][k]
			w.Encode(uint32(tables.TnsCoefCumFreq[k][ci]),
				uint32(tables.TnsCoefFreq[k][ci]))
		}
	}

	f.lsbs = f.lsbs[:0]
	f.writeSpectrum(w)

	// residual or stashed LSBs, whatever the final budget still allows
	nres := nbits - (w.SideBits() + w.AcBits())
	if nres < 0 {
		nres = 0
	}
	if q.lsbMode {
		if nres > len(f.lsbs) {
			nres = len(f.lsbs)
		}
		for k := 0; k < nres; k++ {
			w.WriteBit(int(f.lsbs[k]))
		}
	} else {
		if nres > len(f.res) {
			nres = len(f.res)
		}
		for k := 0; k < nres; k++ {
			w.WriteBit(int(f.res[k]))
		}
	}
	w.Finish()
}

func (f *Frame) writeSpectrum(w *bitstream.Writer) {
	q := f.quant
	ne2 := f.cfg.NE / 2
	c := 0
	for k := 0; k < q.lastnzTrnc; k += 2 {
		t := c + q.rateFlag
		if k > ne2 {
			t += 256
		}
		a := q.xq[k]
		signA := 0
		if a < 0 {
			a = -a
			signA = 1
		}
		b := q.xq[k+1]
		signB := 0
		if b < 0 {
			b = -b
			signB = 1
		}
		aLsb, bLsb := a, b
		lev := 0
		for a >= 4 || b >= 4 {
			pki := tables.SpecLookup(t, lev)
			w.Encode(uint32(tables.SpecCumFreq[pki][16]),
				uint32(tables.SpecFreq[pki][16]))
			if lev == 0 && q.lsbMode {
				f.lsbs = append(f.lsbs, uint8(a&1))
				if aLsb == 1 {
					f.lsbs = append(f.lsbs, uint8(signA))
				}
				f.lsbs = append(f.lsbs, uint8(b&1))
				if bLsb == 1 {
					f.lsbs = append(f.lsbs, uint8(signB))
				}
				aLsb >>= 1
				bLsb >>= 1
			} else {
				w.WriteBit(a & 1)
				w.WriteBit(b & 1)
			}
			a >>= 1
			b >>= 1
			if lev < 3 {
				lev++
			}
		}
		pki := tables.SpecLookup(t, lev)
		w.Encode(uint32(tables.SpecCumFreq[pki][a+4*b]),
			uint32(tables.SpecFreq[pki][a+4*b]))
		if lev > 1 {
			t = 12 + lev
		} else if lev == 1 {
			t = 1 + 2*(a+b)
		} else {
			t = 1 + a + b
		}
		c = ((c & 15) << 4) + t
		if aLsb > 0 {
			w.WriteBit(signA)
		}
		if bLsb > 0 {
			w.WriteBit(signB)
		}
	}
}
