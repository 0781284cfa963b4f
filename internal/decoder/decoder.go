// Package decoder reconstructs PCM from LC3 payloads: side information and
// arithmetic decoding, noise filling, the inverse shaping chain, MDCT
// synthesis, the long-term postfilter and packet loss concealment,
// LC3 Specification Section 3.4.
package decoder

import (
	"github.com/lc3go/lc3/internal/bitstream"
	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/ltpf"
	"github.com/lc3go/lc3/internal/mdct"
	"github.com/lc3go/lc3/internal/sns"
	"github.com/lc3go/lc3/internal/tns"
)

// Frame decodes successive frames of one channel.
type Frame struct {
	cfg    *config.Config
	r      bitstream.Reader
	shaper *sns.Shaper
	imdct  *mdct.Synthesis
	ltpf   *ltpf.Decoder
	plc    concealment

	nbits         int
	nbitsResidual int
	tnsOrder      [2]int
	tnsCoef       [2][8]int
	saveLev       []bool

	spec  []float64
	scfQ  []float64
	nfRef []float64
}

func NewFrame(cfg *config.Config) *Frame {
	return &Frame{
		cfg:     cfg,
		shaper:  sns.NewShaper(cfg.NB, cfg.BandEdges),
		imdct:   mdct.NewSynthesis(cfg.NF, cfg.Z),
		ltpf:    ltpf.NewDecoder(cfg),
		plc:     newConcealment(cfg.NE),
		saveLev: make([]bool, cfg.NE),
		spec:    make([]float64, cfg.NF),
		scfQ:    make([]float64, sns.NScales),
		nfRef:   make([]float64, cfg.NE),
	}
}

// Reset clears all cross-frame state.
func (f *Frame) Reset() {
	f.imdct.Reset()
	f.ltpf.Reset()
	f.plc.reset()
}

// Decode reconstructs one frame into pcm (cfg.NF samples, int16 range) and
// reports whether the payload was damaged and the output concealed.
func (f *Frame) Decode(frame []byte, pcm []float64) (concealed bool) {
	f.nbits = 8 * len(frame)
	spec := f.spec[:f.cfg.NE]

	var si sideInfo
	f.r.Reset(frame)
	ok := readSideInfo(&f.r, f.cfg, &si)
	if ok {
		ok = sns.Decode(si.indLF, si.indHF, si.submodeMSB, si.gainRaw,
			si.lsIndA, si.joint, f.scfQ) == nil
	}
	if ok {
		ok = f.decodeSpectrum(&f.r, &si, spec) && !f.r.Bec
	}
	if ok {
		nfSeed, zeroFrame := f.residual(&f.r, &si, spec)
		if !zeroFrame {
			f.noiseFill(&si, spec, nfSeed)
		}
		f.applyGlobalGain(&si, spec)
		tns.Synthesize(spec, f.cfg.FrameUs, si.pbw, si.numFilters,
			f.tnsOrder, f.tnsCoef)
		f.shaper.Apply(spec, f.scfQ, 1)
		f.plc.goodFrame(spec)
	} else {
		f.plc.conceal(spec)
		si.ltpfActive = false
		si.pitchIndex = 0
	}

	f.synthesize(spec, pcm, si.ltpfActive, si.pitchIndex)
	return !ok
}

// DecodeLost conceals a frame the transport never delivered. nbytes is the
// size the frame would have had; the postfilter gain tracks the bitrate.
func (f *Frame) DecodeLost(nbytes int, pcm []float64) {
	f.nbits = 8 * nbytes
	spec := f.spec[:f.cfg.NE]
	f.plc.conceal(spec)
	f.synthesize(spec, pcm, false, 0)
}

func (f *Frame) synthesize(spec, pcm []float64, ltpfActive bool, pitchIndex int) {
	for k := f.cfg.NE; k < f.cfg.NF; k++ {
		f.spec[k] = 0
	}
	f.imdct.Transform(pcm, f.spec)
	f.ltpf.Process(pcm, ltpfActive, pitchIndex, f.nbits)
}
