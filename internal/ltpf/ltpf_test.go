package ltpf

import (
	"math"
	"testing"

	"github.com/lc3go/lc3/internal/config"
)

func mustConfig(t *testing.T, fs, frameUs int) *config.Config {
	t.Helper()
	cfg, err := config.New(fs, frameUs)
	if err != nil {
		t.Fatalf("config.New(%d, %d): %v", fs, frameUs, err)
	}
	return cfg
}

func TestPitchIndexRoundTrip(t *testing.T) {
	pack := func(pitchInt, pitchFr int) int {
		switch {
		case pitchInt < 127:
			return 4*pitchInt + pitchFr - 128
		case pitchInt < 157:
			return 2*pitchInt + pitchFr/2 + 126
		default:
			return pitchInt + 283
		}
	}
	seen := make(map[int]bool)
	for pitchInt := 32; pitchInt <= 228; pitchInt++ {
		var frs []int
		switch {
		case pitchInt < 127:
			frs = []int{0, 1, 2, 3}
		case pitchInt < 157:
			frs = []int{0, 2}
		default:
			frs = []int{0}
		}
		for _, fr := range frs {
			idx := pack(pitchInt, fr)
			if idx < 0 || idx > 511 {
				t.Fatalf("pitch %d.%d: index %d out of 9-bit range", pitchInt, fr, idx)
			}
			if seen[idx] {
				t.Fatalf("pitch %d.%d: index %d already used", pitchInt, fr, idx)
			}
			seen[idx] = true
			gotInt, gotFr := decodePitchIndex(idx)
			if gotInt != pitchInt || gotFr != fr {
				t.Fatalf("index %d decoded to %d.%d, want %d.%d",
					idx, gotInt, gotFr, pitchInt, fr)
			}
		}
	}
}

func TestFilterTableGains(t *testing.T) {
	// the polyphase branch gains of the resampler stay within the small
	// DC ripple the windowed sinc leaves at the widest stride
	for _, p := range []int{4, 6, 8, 12, 24} {
		sums := make([]float64, p)
		var mean float64
		for phase := 0; phase < p; phase++ {
			for i := phase; i < len(resampFilter); i += p {
				sums[phase] += resampFilter[i]
			}
			mean += sums[phase]
		}
		mean /= float64(p)
		for phase, sum := range sums {
			if math.Abs(sum-mean) > 0.02*math.Abs(mean) {
				t.Errorf("p=%d phase %d gain %g, want about %g", p, phase, sum, mean)
			}
		}
	}
	for _, fs := range []int{8000, 16000, 24000, 32000, 48000} {
		for fr := 0; fr < 4; fr++ {
			var sum float64
			for _, v := range denTaps(fs, fr) {
				sum += v
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("den fs=%d fr=%d DC gain %g, want 1", fs, fr, sum)
			}
		}
		for g := 0; g < 4; g++ {
			var sum float64
			for _, v := range numTaps(fs, g) {
				sum += v
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("num fs=%d gain %d DC gain %g, want 1", fs, g, sum)
			}
		}
	}
}

func TestEncoderSilence(t *testing.T) {
	cfg := mustConfig(t, 48000, config.Frame10000us)
	enc := NewEncoder(cfg)
	frame := make([]float64, cfg.NF)
	for i := 0; i < 4; i++ {
		res := enc.Run(frame, 320, false)
		if res.PitchPresent {
			t.Fatal("pitch detected in silence")
		}
		if res.Bits != 1 {
			t.Fatalf("Bits = %d for silent frame, want 1", res.Bits)
		}
	}
}

// periodic test signal with a 12.8 kHz period near 64 samples
func periodicFrame(fs, nf int, phase *float64) []float64 {
	freq := 200.0
	frame := make([]float64, nf)
	for i := range frame {
		*phase += 2 * math.Pi * freq / float64(fs)
		frame[i] = math.Sin(*phase) + 0.3*math.Sin(2**phase)
	}
	return frame
}

func TestEncoderTracksPeriodicSignal(t *testing.T) {
	cfg := mustConfig(t, 48000, config.Frame10000us)
	enc := NewEncoder(cfg)
	var phase float64
	var res Result
	for i := 0; i < 8; i++ {
		res = enc.Run(periodicFrame(48000, cfg.NF, &phase), 320, false)
	}
	if !res.PitchPresent {
		t.Fatal("no pitch on a strongly periodic signal")
	}
	if res.Bits != 11 {
		t.Fatalf("Bits = %d with pitch present, want 11", res.Bits)
	}
	if res.NormCorr < 0.9 {
		t.Errorf("NormCorr = %g, want > 0.9", res.NormCorr)
	}
	if !res.Active {
		t.Error("filter not activated on a stable periodic signal")
	}
	pitchInt, _ := decodePitchIndex(res.PitchIndex)
	if pitchInt < 60 || pitchInt > 68 {
		t.Errorf("pitch lag %d, want near 64 for 200 Hz", pitchInt)
	}
}

func TestEncoderNearNyquistKeepsFilterOff(t *testing.T) {
	cfg := mustConfig(t, 48000, config.Frame10000us)
	enc := NewEncoder(cfg)
	var phase float64
	var res Result
	for i := 0; i < 8; i++ {
		res = enc.Run(periodicFrame(48000, cfg.NF, &phase), 320, true)
	}
	if res.Active {
		t.Error("filter active despite near-Nyquist tonality")
	}
}

func TestDecoderInactivePassthrough(t *testing.T) {
	cfg := mustConfig(t, 48000, config.Frame10000us)
	dec := NewDecoder(cfg)
	var phase float64
	for i := 0; i < 3; i++ {
		frame := periodicFrame(48000, cfg.NF, &phase)
		want := append([]float64(nil), frame...)
		dec.Process(frame, false, 0, 320)
		for n := range frame {
			if frame[n] != want[n] {
				t.Fatalf("frame %d sample %d changed with the filter off", i, n)
			}
		}
	}
}

func TestDecoderTransitionsStayBounded(t *testing.T) {
	states := []struct {
		active bool
		index  int
	}{
		{false, 0}, {true, 128}, {true, 128}, {true, 132}, {false, 0}, {true, 128},
	}
	for _, frameUs := range []int{
		config.Frame10000us, config.Frame7500us, config.Frame5000us, config.Frame2500us,
	} {
		cfg := mustConfig(t, 48000, frameUs)
		dec := NewDecoder(cfg)
		var phase float64
		for i, st := range states {
			frame := periodicFrame(48000, cfg.NF, &phase)
			dec.Process(frame, st.active, st.index, 160)
			for n, v := range frame {
				if math.IsNaN(v) || math.Abs(v) > 10 {
					t.Fatalf("%d us step %d sample %d out of bounds: %g",
						frameUs, i, n, v)
				}
			}
		}
	}
}

func TestDecoderFadeSpansTransitionLength(t *testing.T) {
	for _, tc := range []struct {
		frameUs int
		div     int
	}{
		{config.Frame10000us, 4}, {config.Frame7500us, 3},
		{config.Frame5000us, 2}, {config.Frame2500us, 1},
	} {
		cfg := mustConfig(t, 48000, tc.frameUs)
		dec := NewDecoder(cfg)
		if dec.fade != 48000/400 {
			t.Errorf("%d us: fade %d, want %d", tc.frameUs, dec.fade, 48000/400)
		}
		if dec.fade != cfg.NF/tc.div {
			t.Errorf("%d us: fade %d does not cover NF/%d", tc.frameUs, dec.fade, tc.div)
		}
		if dec.norm != float64(dec.fade) {
			t.Errorf("%d us: crossfade norm %g, want %d", tc.frameUs, dec.norm, dec.fade)
		}
	}
}

func TestGainLadder(t *testing.T) {
	cfg := mustConfig(t, 16000, config.Frame10000us) // FsInd 1
	dec := NewDecoder(cfg)
	for _, tc := range []struct {
		nbits   int
		gain    float64
		gainInd int
	}{
		{399, 0.4, 0}, {400, 0.35, 1}, {479, 0.35, 1}, {480, 0.3, 2},
		{559, 0.3, 2}, {560, 0.25, 3}, {639, 0.25, 3}, {640, 0, 4},
	} {
		dec.setGain(tc.nbits)
		if dec.gain != tc.gain || dec.gainInd != tc.gainInd {
			t.Errorf("setGain(%d): gain %g ind %d, want %g %d",
				tc.nbits, dec.gain, dec.gainInd, tc.gain, tc.gainInd)
		}
	}
	if gainEnabled(639, cfg) != true || gainEnabled(640, cfg) != false {
		t.Error("encoder gate disagrees with the decoder ladder cutoff")
	}

	// the 7.5 ms rate is rescaled by 10/7.5 with truncation toward zero
	cfg75 := mustConfig(t, 16000, config.Frame7500us)
	dec75 := NewDecoder(cfg75)
	for _, tc := range []struct {
		nbits   int
		gain    float64
		gainInd int
	}{
		{299, 0.4, 0}, {300, 0.35, 1}, {359, 0.35, 1}, {360, 0.3, 2},
	} {
		dec75.setGain(tc.nbits)
		if dec75.gain != tc.gain || dec75.gainInd != tc.gainInd {
			t.Errorf("7.5 ms setGain(%d): gain %g ind %d, want %g %d",
				tc.nbits, dec75.gain, dec75.gainInd, tc.gain, tc.gainInd)
		}
	}
}
