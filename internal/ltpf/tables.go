package ltpf

import "math"

// Half-band filter used to decimate the 12.8 kHz signal to 6.4 kHz for the
// first pitch search stage.
var halfband = [5]float64{
	0.1236796411180537, 0.2353512128364889, 0.2819382920909148,
	0.2353512128364889, 0.1236796411180537,
}

// resampFilter is the polyphase lowpass for the 12.8 kHz resampler,
// sampled on the 192 kHz virtual grid (index 119 is t = 0).
var resampFilter [239]float64

// interpRTab interpolates the 12.8 kHz autocorrelation at quarter lags.
var interpRTab [31]float64

// interpXTab interpolates the 12.8 kHz signal at quarter lags for the
// normalized correlation of the activation decision.
var interpXTab [15]float64

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// raised-cosine window, zero at |t| >= half
func rcWin(t, half float64) float64 {
	if math.Abs(t) >= half {
		return 0
	}
	c := math.Cos(math.Pi * t / (2 * half))
	return c * c
}

func init() {
	for i := range resampFilter {
		t := float64(i - 119)
		resampFilter[i] = sinc(math.Pi*t/15) / 15 * rcWin(t, 120)
	}
	for i := range interpRTab {
		t := float64(i - 15)
		interpRTab[i] = sinc(math.Pi*t/4) * rcWin(t, 16)
	}
	for i := range interpXTab {
		t := float64(i - 7)
		interpXTab[i] = sinc(math.Pi*t/4) * rcWin(t, 8)
	}
}

// filterLens gives the postfilter tap counts for a sampling rate.
func filterLens(fs int) (lNum, lDen int) {
	lDen = (fs + 3999) / 4000
	if lDen < 4 {
		lDen = 4
	}
	return lDen - 2, lDen
}

// postfilterCutoff is the normalized numerator/denominator prototype cutoff.
func postfilterCutoff(fs int) float64 {
	c := 6400.0 / float64(fs)
	if c > 0.5 {
		c = 0.5
	}
	return c
}

// denTaps builds the fractional-delay comb branch for one quarter phase.
// Rows are normalized to unit DC gain; the runtime gain ladder scales them.
func denTaps(fs, fr int) []float64 {
	_, lDen := filterLens(fs)
	c := postfilterCutoff(fs)
	taps := make([]float64, lDen+1)
	var sum float64
	for k := range taps {
		t := float64(k) - float64(lDen)/2 - float64(fr)/4
		taps[k] = 2 * c * sinc(2*math.Pi*c*t) * rcWin(t, float64(lDen+2)/2)
		sum += taps[k]
	}
	for k := range taps {
		taps[k] /= sum
	}
	return taps
}

// numTaps builds the feed-forward branch for one gain index; stronger gains
// pair with slightly narrower prototypes.
func numTaps(fs, gainInd int) []float64 {
	lNum, _ := filterLens(fs)
	c := postfilterCutoff(fs) * (1 - 0.06*float64(gainInd))
	taps := make([]float64, lNum+1)
	var sum float64
	for k := range taps {
		t := float64(k) - float64(lNum)/2
		taps[k] = 2 * c * sinc(2*math.Pi*c*t) * rcWin(t, float64(lNum+2)/2)
		sum += taps[k]
	}
	for k := range taps {
		taps[k] /= sum
	}
	return taps
}
