package decoder

import (
	"math"

	"github.com/lc3go/lc3/internal/bitstream"
	"github.com/lc3go/lc3/internal/config"
	"github.com/lc3go/lc3/internal/tables"
	"github.com/lc3go/lc3/internal/tns"
)

// sideInfo is the plain-bit part of a frame, read backward from the end.
type sideInfo struct {
	pbw          int
	lastnz       int
	lsbMode      bool
	ggInd        int
	numFilters   int
	rcActive     [2]bool
	pitchPresent bool
	ltpfActive   bool
	pitchIndex   int
	fnf          int

	indLF, indHF int
	submodeMSB   int
	gainRaw      int
	lsIndA       int
	joint        uint32
}

var nbitsBW = [5]int{0, 1, 2, 2, 3}

func readSideInfo(r *bitstream.Reader, cfg *config.Config, si *sideInfo) bool {
	if nbitsBW[cfg.FsInd] > 0 {
		si.pbw = int(r.ReadUint(nbitsBW[cfg.FsInd]))
		if si.pbw > cfg.FsInd {
			return false
		}
	} else {
		si.pbw = 0
	}

	nbitsLastnz := lastnzBits(cfg.NE)
	si.lastnz = (int(r.ReadUint(nbitsLastnz)) + 1) << 1
	if si.lastnz > cfg.NE {
		return false
	}
	si.lsbMode = r.ReadBit() == 1
	si.ggInd = int(r.ReadUint(8))

	si.numFilters = tns.NumFilters(cfg.FrameUs, si.pbw)
	si.rcActive[0] = false
	si.rcActive[1] = false
	for f := 0; f < si.numFilters; f++ {
		si.rcActive[f] = r.ReadBit() == 1
	}

	si.pitchPresent = r.ReadBit() == 1

	si.indLF = int(r.ReadUint(5))
	si.indHF = int(r.ReadUint(5))
	si.submodeMSB = r.ReadBit()
	if si.submodeMSB == 0 {
		si.gainRaw = r.ReadBit()
	} else {
		si.gainRaw = int(r.ReadUint(2))
	}
	si.lsIndA = r.ReadBit()
	if si.submodeMSB == 0 {
		si.joint = r.ReadUint(25)
	} else {
		si.joint = r.ReadUint(24)
	}

	if si.pitchPresent {
		si.ltpfActive = r.ReadBit() == 1
		si.pitchIndex = int(r.ReadUint(9))
	} else {
		si.ltpfActive = false
		si.pitchIndex = 0
	}
	si.fnf = int(r.ReadUint(3))
	return true
}

func lastnzBits(ne int) int {
	n := 0
	for 1<<n < ne/2 {
		n++
	}
	return n
}

// decodeSpectrum reads the TNS filter parameters and the quantized spectral
// lines from the arithmetic stream. saveLev marks tuples whose least
// significant bits were moved to the residual section.
func (f *Frame) decodeSpectrum(r *bitstream.Reader, si *sideInfo, spec []float64) bool {
	cfg := f.cfg
	r.DecodeInit()

	lw := 0
	if tns.LpcWeighting(cfg.FrameUs, f.nbits) {
		lw = 1
	}
	f.tnsOrder = [2]int{}
	for i := 0; i < si.numFilters; i++ {
		if !si.rcActive[i] {
			continue
		}
		f.tnsOrder[i] = r.Decode(tables.TnsOrderCumFreq[lw][:], 8) + 1
		if r.Bec {
			return false
		}
		for k := 0; k < f.tnsOrder[i]; k++ {
			f.tnsCoef[i][k] = r.Decode(tables.TnsCoefCumFreq[k][:], 17)
			if r.Bec {
				return false
			}
		}
	}

	rateFlag := 0
	if f.nbits > 160+cfg.FsInd*160 {
		rateFlag = 512
	}

	for k := range f.saveLev {
		f.saveLev[k] = false
	}
	ne2 := cfg.NE / 2
	c := 0
	for k := 0; k < si.lastnz; k += 2 {
		t := c + rateFlag
		if k > ne2 {
			t += 256
		}
		a, b := 0, 0
		lev := 0
		sym := 0
		for {
			if lev == 14 {
				return false
			}
			sym = r.Decode(tables.SpecCumFreq[tables.SpecLookup(t, lev)][:], 17)
			if r.Bec {
				return false
			}
			if sym < 16 {
				break
			}
			if !si.lsbMode || lev > 0 {
				a |= r.ReadBit() << lev
				b |= r.ReadBit() << lev
			} else {
				f.saveLev[k] = true
			}
			lev++
		}
		a0 := sym & 3
		b0 := sym >> 2
		a |= a0 << lev
		b |= b0 << lev
		switch {
		case lev == 0:
			t = 1 + a0 + b0
		case lev == 1:
			t = 1 + 2*(a0+b0)
		case lev == 2:
			t = 14
		default:
			t = 15
		}
		c = ((c & 15) << 4) + t
		if a != 0 && r.ReadBit() == 1 {
			a = -a
		}
		if b != 0 && r.ReadBit() == 1 {
			b = -b
		}
		spec[k] = float64(a)
		spec[k+1] = float64(b)
		if r.CursorsCrossed() {
			return false
		}
	}
	for k := si.lastnz; k < cfg.NE; k++ {
		spec[k] = 0
	}

	f.nbitsResidual = f.nbits - (r.SideBits() + r.AcBits())
	return f.nbitsResidual >= 0
}

// residual applies the refinement bits: stashed LSBs and signs in lsbMode,
// quarter-step corrections otherwise, Sections 3.4.2.6 and 3.4.3. It also
// derives the noise filling seed and the zero-frame flag.
func (f *Frame) residual(r *bitstream.Reader, si *sideInfo, spec []float64) (nfSeed int, zeroFrame bool) {
	remaining := f.nbitsResidual
	if si.lsbMode {
	lsbLoop:
		for k := 0; k < si.lastnz; k += 2 {
			if !f.saveLev[k] {
				continue
			}
			for _, i := range [2]int{k, k + 1} {
				if remaining == 0 {
					break lsbLoop
				}
				remaining--
				if r.ReadBit() == 0 {
					continue
				}
				switch {
				case spec[i] > 0:
					spec[i]++
				case spec[i] < 0:
					spec[i]--
				default:
					if remaining == 0 {
						break lsbLoop
					}
					remaining--
					if r.ReadBit() == 0 {
						spec[i] = 1
					} else {
						spec[i] = -1
					}
				}
			}
		}
	}

	seed := 0
	for k := 0; k < si.lastnz; k++ {
		seed += k * int(math.Abs(spec[k]))
	}
	nfSeed = seed & 0xFFFF

	zeroFrame = si.lastnz == 2 && spec[0] == 0 && spec[1] == 0 &&
		si.ggInd == 0 && si.fnf == 7

	if !si.lsbMode {
		for k := 0; k < si.lastnz && remaining > 0; k++ {
			if spec[k] == 0 {
				continue
			}
			remaining--
			if r.ReadBit() == 0 {
				if spec[k] > 0 {
					spec[k] -= 0.1875
				} else {
					spec[k] -= 0.3125
				}
			} else {
				if spec[k] > 0 {
					spec[k] += 0.3125
				} else {
					spec[k] += 0.1875
				}
			}
		}
	}
	return nfSeed, zeroFrame
}

var nfBwStop = map[int][5]int{
	config.Frame10000us: {80, 160, 240, 320, 400},
	config.Frame7500us:  {60, 120, 180, 240, 300},
	config.Frame5000us:  {40, 80, 120, 160, 200},
	config.Frame2500us:  {20, 40, 60, 80, 100},
}

var nfStartWidth = map[int][2]int{
	config.Frame10000us: {24, 3},
	config.Frame7500us:  {18, 2},
	config.Frame5000us:  {12, 1},
	config.Frame2500us:  {6, 1},
}

// noiseFill substitutes pseudo-random noise at level (8-F_NF)/16 into runs
// of zeroed lines above the noise filling start, Section 3.4.4.
func (f *Frame) noiseFill(si *sideInfo, spec []float64, nfSeed int) {
	cfg := f.cfg
	sw := nfStartWidth[cfg.FrameUs]
	start, width := sw[0], sw[1]
	stop := nfBwStop[cfg.FrameUs][si.pbw]
	if stop > cfg.NE {
		stop = cfg.NE
	}

	copy(f.nfRef[:stop], spec[:stop])
	state := uint32(nfSeed)
	level := float64(8-si.fnf) / 16
	for k := start; k < stop; k++ {
		filled := true
		hi := k + width
		if hi > stop-1 {
			hi = stop - 1
		}
		for i := k - width; i <= hi; i++ {
			if f.nfRef[i] != 0 {
				filled = false
				break
			}
		}
		if !filled {
			continue
		}
		state = (13849 + state*31821) & 0xFFFF
		if state < 0x8000 {
			spec[k] = level
		} else {
			spec[k] = -level
		}
	}
}

// applyGlobalGain scales the integer-domain lines back to spectral
// magnitudes, Section 3.4.5.
func (f *Frame) applyGlobalGain(si *sideInfo, spec []float64) {
	ggOffPart := f.nbits / (10 * (f.cfg.FsInd + 1))
	if ggOffPart > 115 {
		ggOffPart = 115
	}
	ggOff := -ggOffPart - 105 - 5*(f.cfg.FsInd+1)
	gg := math.Pow(10, float64(si.ggInd+ggOff)/28)
	for k := range spec {
		spec[k] *= gg
	}
}
