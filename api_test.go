package lc3

import (
	"math"
	"testing"
	"time"
)

func TestNewEncoderValidation(t *testing.T) {
	cases := []struct {
		name     string
		rate     int
		channels int
		duration time.Duration
		wantErr  error
	}{
		{"valid 48k mono", 48000, 1, FrameDuration10ms, nil},
		{"valid 44.1k stereo", 44100, 2, FrameDuration7500us, nil},
		{"valid 8k short", 8000, 1, FrameDuration2500us, nil},
		{"bad rate", 11025, 1, FrameDuration10ms, ErrInvalidSampleRate},
		{"bad channels", 48000, 0, FrameDuration10ms, ErrInvalidChannels},
		{"bad duration", 48000, 1, 20 * time.Millisecond, ErrInvalidFrameDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEncoder(tc.rate, tc.channels, tc.duration)
			if err != tc.wantErr {
				t.Errorf("NewEncoder() error = %v, want %v", err, tc.wantErr)
			}
			_, err = NewDecoder(tc.rate, tc.channels, tc.duration)
			if err != tc.wantErr {
				t.Errorf("NewDecoder() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestFrameSamples(t *testing.T) {
	cases := []struct {
		rate     int
		duration time.Duration
		want     int
	}{
		{48000, FrameDuration10ms, 480},
		{48000, FrameDuration2500us, 120},
		{44100, FrameDuration10ms, 480},
		{8000, FrameDuration10ms, 80},
		{16000, FrameDuration7500us, 120},
		{32000, FrameDuration5ms, 160},
	}
	for _, tc := range cases {
		enc, err := NewEncoder(tc.rate, 1, tc.duration)
		if err != nil {
			t.Fatal(err)
		}
		if got := enc.FrameSamples(); got != tc.want {
			t.Errorf("%d Hz %v: FrameSamples = %d, want %d", tc.rate, tc.duration, got, tc.want)
		}
	}
}

func TestEncodeArgumentChecks(t *testing.T) {
	enc, err := NewEncoder(48000, 1, FrameDuration10ms)
	if err != nil {
		t.Fatal(err)
	}
	pcm := make([]int16, enc.FrameSamples())
	out := make([]byte, 400)

	if _, err := enc.Encode(pcm[:100], out, 80); err != ErrInvalidFrameSize {
		t.Errorf("short pcm: err = %v, want ErrInvalidFrameSize", err)
	}
	if _, err := enc.Encode(pcm, out, 19); err != ErrInvalidByteCount {
		t.Errorf("byteCount 19: err = %v, want ErrInvalidByteCount", err)
	}
	if _, err := enc.Encode(pcm, out, 401); err != ErrInvalidByteCount {
		t.Errorf("byteCount 401: err = %v, want ErrInvalidByteCount", err)
	}
	if _, err := enc.Encode(pcm, out[:50], 80); err != ErrBufferTooSmall {
		t.Errorf("small out: err = %v, want ErrBufferTooSmall", err)
	}
	n, err := enc.Encode(pcm, out, 80)
	if err != nil || n != 80 {
		t.Errorf("Encode = (%d, %v), want (80, nil)", n, err)
	}
}

func TestDecodeArgumentChecks(t *testing.T) {
	dec, err := NewDecoder(48000, 2, FrameDuration10ms)
	if err != nil {
		t.Fatal(err)
	}
	pcm := make([]int16, dec.FrameSamples()*2)

	if err := dec.Decode(make([]byte, 39), pcm); err != ErrInvalidByteCount {
		t.Errorf("odd payload: err = %v, want ErrInvalidByteCount", err)
	}
	if err := dec.Decode(make([]byte, 160), pcm[:10]); err != ErrBufferTooSmall {
		t.Errorf("small pcm: err = %v, want ErrBufferTooSmall", err)
	}
}

func sine(pcm []int16, channels int, freq float64, rate int, offset int) {
	n := len(pcm) / channels
	for i := 0; i < n; i++ {
		v := int16(10000 * math.Sin(2*math.Pi*freq*float64(offset+i)/float64(rate)))
		for ch := 0; ch < channels; ch++ {
			pcm[i*channels+ch] = v
		}
	}
}

// snrAround searches a few lags around the nominal codec delay and returns
// the best signal-to-noise ratio between input and output, in dB.
func snrAround(in, out []int16, delay int) float64 {
	best := math.Inf(-1)
	for d := delay - 16; d <= delay+16; d++ {
		if d < 0 {
			continue
		}
		var sig, noise float64
		for i := 0; i+d < len(out) && i < len(in); i++ {
			s := float64(in[i])
			e := float64(out[i+d]) - s
			sig += s * s
			noise += e * e
		}
		if noise == 0 {
			return math.Inf(1)
		}
		if snr := 10 * math.Log10(sig/noise); snr > best {
			best = snr
		}
	}
	return best
}

func TestRoundTripSNR(t *testing.T) {
	cases := []struct {
		rate      int
		duration  time.Duration
		byteCount int
		minSNR    float64
	}{
		{48000, FrameDuration10ms, 120, 18},
		{48000, FrameDuration7500us, 90, 18},
		{32000, FrameDuration10ms, 80, 18},
		{16000, FrameDuration10ms, 40, 15},
		{8000, FrameDuration10ms, 40, 15},
	}
	for _, tc := range cases {
		enc, err := NewEncoder(tc.rate, 1, tc.duration)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := NewDecoder(tc.rate, 1, tc.duration)
		if err != nil {
			t.Fatal(err)
		}

		nf := enc.FrameSamples()
		const frames = 24
		in := make([]int16, nf*frames)
		out := make([]int16, nf*frames)
		payload := make([]byte, tc.byteCount)
		pcm := make([]int16, nf)

		for n := 0; n < frames; n++ {
			sine(in[n*nf:(n+1)*nf], 1, 440, tc.rate, n*nf)
			if _, err := enc.Encode(in[n*nf:(n+1)*nf], payload, tc.byteCount); err != nil {
				t.Fatal(err)
			}
			if err := dec.Decode(payload, pcm); err != nil {
				t.Fatalf("%d Hz: frame %d: %v", tc.rate, n, err)
			}
			copy(out[n*nf:(n+1)*nf], pcm)
		}

		// skip the first frames while the overlap and postfilter settle
		settle := 4 * nf
		snr := snrAround(in[settle:len(in)-nf], out[settle:], enc.Delay())
		if snr < tc.minSNR {
			t.Errorf("%d Hz %v %dB: SNR = %.1f dB, want >= %.0f",
				tc.rate, tc.duration, tc.byteCount, snr, tc.minSNR)
		}
	}
}

func TestRoundTripStereo(t *testing.T) {
	enc, err := NewEncoder(48000, 2, FrameDuration10ms)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := NewDecoder(48000, 2, FrameDuration10ms)
	if err != nil {
		t.Fatal(err)
	}
	nf := enc.FrameSamples()
	in := make([]int16, nf*2)
	pcm := make([]int16, nf*2)
	payload := make([]byte, 200)

	var energy float64
	for n := 0; n < 10; n++ {
		sine(in, 2, 300, 48000, n*nf)
		written, err := enc.Encode(in, payload, 100)
		if err != nil {
			t.Fatal(err)
		}
		if written != 200 {
			t.Fatalf("Encode wrote %d bytes, want 200", written)
		}
		if err := dec.Decode(payload, pcm); err != nil {
			t.Fatal(err)
		}
		for _, v := range pcm {
			energy += float64(v) * float64(v)
		}
	}
	if energy == 0 {
		t.Error("stereo round trip produced silence")
	}
	// both channels carry the same signal
	var diff float64
	for i := 0; i < nf; i++ {
		d := float64(pcm[2*i]) - float64(pcm[2*i+1])
		diff += d * d
	}
	if diff != 0 {
		t.Errorf("identical channels decoded differently (diff energy %g)", diff)
	}
}

func TestPacketLossRecovery(t *testing.T) {
	enc, _ := NewEncoder(32000, 1, FrameDuration10ms)
	dec, _ := NewDecoder(32000, 1, FrameDuration10ms)
	nf := enc.FrameSamples()
	in := make([]int16, nf)
	pcm := make([]int16, nf)
	payload := make([]byte, 80)

	for n := 0; n < 20; n++ {
		sine(in, 1, 250, 32000, n*nf)
		if _, err := enc.Encode(in, payload, 80); err != nil {
			t.Fatal(err)
		}
		switch {
		case n == 10 || n == 11:
			if err := dec.DecodeLost(pcm); err != nil {
				t.Fatal(err)
			}
		default:
			if err := dec.Decode(payload, pcm); err != nil {
				t.Fatalf("frame %d: %v", n, err)
			}
		}
		for _, v := range pcm {
			if v == math.MinInt16 || v == math.MaxInt16 {
				t.Fatalf("frame %d: output clipped during loss recovery", n)
			}
		}
	}
}

func TestDamagedFrameReportsBadFrame(t *testing.T) {
	enc, _ := NewEncoder(48000, 1, FrameDuration10ms)
	dec, _ := NewDecoder(48000, 1, FrameDuration10ms)
	nf := enc.FrameSamples()
	in := make([]int16, nf)
	pcm := make([]int16, nf)
	payload := make([]byte, 80)

	sine(in, 1, 440, 48000, 0)
	for n := 0; n < 4; n++ {
		if _, err := enc.Encode(in, payload, 80); err != nil {
			t.Fatal(err)
		}
		if err := dec.Decode(payload, pcm); err != nil {
			t.Fatal(err)
		}
	}
	// force the reserved bandwidth code: at 48 kHz the 3-bit field reads 7
	payload[len(payload)-1] = 0xFF
	err := dec.Decode(payload, pcm)
	if err != ErrBadFrame {
		t.Fatalf("damaged frame: err = %v, want ErrBadFrame", err)
	}
	// the decoder keeps going afterwards
	if _, err := enc.Encode(in, payload, 80); err != nil {
		t.Fatal(err)
	}
	if err := dec.Decode(payload, pcm); err != nil {
		t.Fatalf("frame after damage: %v", err)
	}
}

func TestByteCountFromBitrate(t *testing.T) {
	enc, _ := NewEncoder(48000, 1, FrameDuration10ms)
	cases := []struct {
		bitrate int
		want    int
	}{
		{16000, 20},
		{32000, 40},
		{96000, 120},
		{320000, 400},
	}
	for _, tc := range cases {
		if got := enc.ByteCountFromBitrate(tc.bitrate); got != tc.want {
			t.Errorf("ByteCountFromBitrate(%d) = %d, want %d", tc.bitrate, got, tc.want)
		}
	}
}
