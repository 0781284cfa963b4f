package decoder

// concealment repeats the last good shaped spectrum with scrambled signs
// and a two-step damping ladder, LC3 Specification Appendix B.
type concealment struct {
	seed     uint32
	nbLost   int
	alpha    float64
	last     []float64
	haveLast bool
}

func newConcealment(ne int) concealment {
	return concealment{seed: 24607, alpha: 1, last: make([]float64, ne)}
}

func (c *concealment) reset() {
	c.seed = 24607
	c.nbLost = 0
	c.alpha = 1
	c.haveLast = false
}

// goodFrame stores the shaped spectrum of a correctly decoded frame.
func (c *concealment) goodFrame(spec []float64) {
	c.nbLost = 0
	c.alpha = 1
	copy(c.last, spec)
	c.haveLast = true
}

// conceal synthesizes a replacement spectrum in place of a lost frame.
func (c *concealment) conceal(spec []float64) {
	if !c.haveLast {
		for k := range spec {
			spec[k] = 0
		}
		return
	}
	if c.nbLost < 255 {
		c.nbLost++
	}
	if c.nbLost >= 8 {
		c.alpha = 0.85
	} else if c.nbLost >= 4 {
		c.alpha = 0.9
	}
	for k := range spec {
		c.seed = (16831 + c.seed*12821) & 0xFFFF
		if c.seed < 0x8000 {
			spec[k] = c.alpha * c.last[k]
		} else {
			spec[k] = -c.alpha * c.last[k]
		}
	}
	copy(c.last, spec)
}
