// quant.go holds the two-stage scale factor VQ: codebook search, PVQ pulse
// pursuit, shape/gain selection and codeword multiplexing, per LC3
// Specification Section 3.3.7.3, and the matching decode path of
// Section 3.4.7.2.
package sns

import (
	"errors"
	"math"

	"github.com/lc3go/lc3/internal/tables"
)

// ErrCodeword flags a stage-2 codeword outside its space; the frame is
// concealed.
var ErrCodeword = errors.New("sns: stage-2 codeword out of range")

// Codeword-space sizes of the shape candidates.
const (
	szShapeA   = 2390004  // MPVQ(10,10)
	szOutlier  = 15158272 // MPVQ(16,8)
	szSetB     = 14       // 2*MPVQ(6,1) + 2
	szOutlier3 = 1549824  // 2*MPVQ(16,6)
)

// Params is the coded representation of one frame's scale factors.
type Params struct {
	IndLF, IndHF int
	Shape        int // 0 regular, 1 regular_lf, 2 outlier_near, 3 outlier_far
	GainInd      int
	LSIndA       int
	IdxJoint     uint32
}

// SubmodeMSB returns the stage-2 submode bit written to the side info.
func (p *Params) SubmodeMSB() int { return p.Shape >> 1 }

// GainMSBs returns the gain bits written apart from the joint codeword.
func (p *Params) GainMSBs() (val uint32, bits int) {
	return uint32(p.GainInd >> tables.GainLSBBits[p.Shape]), tables.GainMSBBits[p.Shape]
}

// JointBits returns the codeword width: 25 for the regular shapes, 24 for
// the outliers.
func (p *Params) JointBits() int {
	if p.Shape < 2 {
		return 25
	}
	return 24
}

func gainValue(shape, ind int) float64 {
	switch shape {
	case 0:
		return tables.GainsReg[ind]
	case 1:
		return tables.GainsRegLF[ind]
	case 2:
		return tables.GainsNear[ind]
	default:
		return tables.GainsFar[ind]
	}
}

var gainMaxInd = [4]int{1, 3, 3, 7}

// Quantize codes scf and writes the quantized vector into scfQ.
func Quantize(scf, scfQ []float64) Params {
	var p Params

	// stage 1: separate 8-dimensional codebooks for the two halves
	bestLF := math.Inf(1)
	bestHF := math.Inf(1)
	for i := 0; i < 32; i++ {
		var dLF, dHF float64
		for n := 0; n < 8; n++ {
			v0 := scf[n] - tables.LFCB[i][n]
			dLF += v0 * v0
			v1 := scf[n+8] - tables.HFCB[i][n]
			dHF += v1 * v1
		}
		if dLF < bestLF {
			bestLF = dLF
			p.IndLF = i
		}
		if dHF < bestHF {
			bestHF = dHF
			p.IndHF = i
		}
	}

	var r1, t2, absx [NScales]float64
	for n := 0; n < 8; n++ {
		r1[n] = scf[n] - tables.LFCB[p.IndLF][n]
		r1[n+8] = scf[n+8] - tables.HFCB[p.IndHF][n]
	}

	// stage 2 target: rotate the residual into the transform domain
	var sumAbs float64
	for n := 0; n < NScales; n++ {
		var acc float64
		for m := 0; m < NScales; m++ {
			acc += r1[m] * tables.DMatrix[n][m]
		}
		t2[n] = acc
		absx[n] = math.Abs(acc)
		sumAbs += absx[n]
	}

	// shape search: project below the K=6 pyramid, then grow nested pulse
	// trains y3 (16,6), y2 (16,8), y1 (10,10) and y0 (y1 plus one set-B pulse)
	var y0, y1, y2, y3 [NScales]int
	var corr, energy float64
	pulses := 0
	if sumAbs > 0 {
		fac := 5 / sumAbs
		for n := 0; n < NScales; n++ {
			y := int(math.Floor(absx[n] * fac))
			y3[n] = y
			if y != 0 {
				pulses += y
				corr += float64(y) * absx[n]
				energy += float64(y * y)
			}
		}
	}
	addPulses := func(y []int, dim, target int) {
		for ; pulses < target; pulses++ {
			best := 0
			bestCorr := corr + absx[0]
			bestSq := bestCorr * bestCorr
			bestEn := energy + float64(2*y[0]+1)
			for n := 1; n < dim; n++ {
				c := corr + absx[n]
				e := energy + float64(2*y[n]+1)
				if c*c*bestEn > bestSq*e {
					best = n
					bestSq = c * c
					bestEn = e
				}
			}
			corr += absx[best]
			energy += float64(2*y[best] + 1)
			y[best]++
		}
	}
	addPulses(y3[:], 16, 6)
	y2 = y3
	addPulses(y2[:], 16, 8)
	y1 = y2
	for n := 10; n < NScales; n++ {
		if y := y1[n]; y != 0 {
			pulses -= y
			corr -= float64(y) * absx[n]
			energy -= float64(y * y)
			y1[n] = 0
		}
	}
	addPulses(y1[:], 10, 10)
	y0 = y1
	bestB := 10
	for n := 11; n < NScales; n++ {
		if absx[n] > absx[bestB] {
			bestB = n
		}
	}
	y0[bestB] = 1

	for n := 0; n < NScales; n++ {
		if t2[n] < 0 {
			y0[n], y2[n], y3[n] = -y0[n], -y2[n], -y3[n]
			if n < 10 {
				y1[n] = -y1[n]
			}
		}
	}

	var xq [4][NScales]float64
	normalize(y0[:], xq[0][:])
	normalize(y1[:10], xq[1][:])
	normalize(y2[:], xq[2][:])
	normalize(y3[:], xq[3][:])

	// joint shape and gain decision on squared error against the target
	bestErr := math.Inf(1)
	for j := 0; j < 4; j++ {
		for i := 0; i <= gainMaxInd[j]; i++ {
			g := gainValue(j, i)
			var d float64
			for n := 0; n < NScales; n++ {
				diff := t2[n] - g*xq[j][n]
				d += diff * diff
			}
			if d < bestErr {
				bestErr = d
				p.Shape = j
				p.GainInd = i
			}
		}
	}

	gainLSB := uint32(p.GainInd & 1)
	var idxA uint32
	switch p.Shape {
	case 0:
		var lsB int
		var idxB uint32
		idxA, p.LSIndA = enumerate(y0[:10])
		idxB, lsB = enumerate(y0[10:])
		p.IdxJoint = (2*idxB+uint32(lsB)+2)*szShapeA + idxA
	case 1:
		idxA, p.LSIndA = enumerate(y1[:10])
		p.IdxJoint = gainLSB*szShapeA + idxA
	case 2:
		idxA, p.LSIndA = enumerate(y2[:])
		p.IdxJoint = idxA
	case 3:
		idxA, p.LSIndA = enumerate(y3[:])
		p.IdxJoint = szOutlier + gainLSB + 2*idxA
	}

	buildScfQ(p.IndLF, p.IndHF, gainValue(p.Shape, p.GainInd), xq[p.Shape][:], scfQ)
	return p
}

func normalize(y []int, xq []float64) {
	var norm float64
	for _, v := range y {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	for n := range xq {
		xq[n] = 0
	}
	if norm == 0 {
		return
	}
	for n, v := range y {
		xq[n] = float64(v) / norm
	}
}

func buildScfQ(indLF, indHF int, gain float64, xq, scfQ []float64) {
	for n := 0; n < NScales; n++ {
		var acc float64
		for m := 0; m < NScales; m++ {
			acc += xq[m] * tables.DMatrix[m][n]
		}
		st1 := tables.LFCB[indLF][n&7]
		if n >= 8 {
			st1 = tables.HFCB[indHF][n&7]
		}
		scfQ[n] = st1 + gain*acc
	}
}

// Decode rebuilds the quantized scale factor vector from the demultiplexed
// side information. submodeMSB and gindRaw come straight off the backward
// bit stream; the joint codeword is validated against its space.
func Decode(indLF, indHF, submodeMSB, gindRaw, lsIndA int, joint uint32, scfQ []float64) error {
	var y [NScales]int
	shape := 0
	gain := gindRaw
	if submodeMSB == 0 {
		if joint >= szSetB*szShapeA {
			return ErrCodeword
		}
		idxBG := int(joint / szShapeA)
		idxA := joint % szShapeA
		idxBG -= 2
		if idxBG < 0 {
			// regular_lf: the low codeword slots carry the gain LSB
			shape = 1
			gain = gindRaw<<1 + (idxBG + 2)
			deenumerate(y[:10], 10, lsIndA, idxA)
		} else {
			shape = 0
			deenumerate(y[:10], 10, lsIndA, idxA)
			deenumerate(y[10:], 1, idxBG&1, uint32(idxBG>>1))
		}
	} else {
		if joint >= szOutlier+szOutlier3 {
			return ErrCodeword
		}
		if joint >= szOutlier {
			shape = 3
			rem := joint - szOutlier
			gain = gindRaw<<1 + int(rem&1)
			deenumerate(y[:], 6, lsIndA, rem>>1)
		} else {
			shape = 2
			deenumerate(y[:], 8, lsIndA, joint)
		}
	}

	var xq [NScales]float64
	if shape == 1 {
		normalize(y[:10], xq[:])
	} else {
		normalize(y[:], xq[:])
	}
	buildScfQ(indLF, indHF, gainValue(shape, gain), xq[:], scfQ)
	return nil
}
