package bitstream

import (
	"math/rand"
	"testing"

	"github.com/lc3go/lc3/internal/tables"
)

func TestSideBitsRoundTrip(t *testing.T) {
	buf := make([]byte, 40)
	var w Writer
	w.Reset(buf)
	w.WriteUint(0x15, 5)
	w.WriteBit(1)
	w.WriteUint(200, 8)
	w.WriteBit(0)
	if got := w.SideBits(); got != 15 {
		t.Fatalf("SideBits = %d, want 15", got)
	}

	var r Reader
	r.Reset(buf)
	if v := r.ReadUint(5); v != 0x15 {
		t.Errorf("ReadUint(5) = %#x", v)
	}
	if v := r.ReadBit(); v != 1 {
		t.Errorf("ReadBit = %d", v)
	}
	if v := r.ReadUint(8); v != 200 {
		t.Errorf("ReadUint(8) = %d", v)
	}
	if v := r.ReadBit(); v != 0 {
		t.Errorf("ReadBit = %d", v)
	}
	if got := r.SideBits(); got != 15 {
		t.Fatalf("reader SideBits = %d, want 15", got)
	}
}

// Symbols drawn from the codec's own frequency tables must decode back
// exactly, with side bits interleaved at the other end of the buffer.
func TestArithmeticRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		buf := make([]byte, 400)
		var w Writer
		w.Reset(buf)

		nsym := 40 + rng.Intn(100)
		ctxs := make([]int, nsym)
		syms := make([]int, nsym)
		var sideBits []int
		for i := 0; i < nsym; i++ {
			ctxs[i] = rng.Intn(64)
			syms[i] = rng.Intn(17)
		}
		for i := 0; i < 20; i++ {
			sideBits = append(sideBits, rng.Intn(2))
		}

		for _, b := range sideBits {
			w.WriteBit(b)
		}
		for i := 0; i < nsym; i++ {
			c := ctxs[i]
			w.Encode(uint32(tables.SpecCumFreq[c][syms[i]]), uint32(tables.SpecFreq[c][syms[i]]))
		}
		w.Finish()

		var r Reader
		r.Reset(buf)
		for i, want := range sideBits {
			if got := r.ReadBit(); got != want {
				t.Fatalf("trial %d: side bit %d = %d, want %d", trial, i, got, want)
			}
		}
		r.DecodeInit()
		for i := 0; i < nsym; i++ {
			c := ctxs[i]
			got := r.Decode(tables.SpecCumFreq[c][:], 17)
			if r.Bec {
				t.Fatalf("trial %d: spurious BEC at symbol %d", trial, i)
			}
			if got != syms[i] {
				t.Fatalf("trial %d: symbol %d = %d, want %d", trial, i, got, syms[i])
			}
		}
	}
}

// The forecast must match what finalization actually consumes: the encoder
// sizes the residual with it, and the decoder recomputes the same count.
func TestAcBitsForecast(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 30; trial++ {
		buf := make([]byte, 200)
		var w Writer
		w.Reset(buf)
		nsym := 30 + rng.Intn(60)
		syms := make([]int, nsym)
		for i := range syms {
			syms[i] = rng.Intn(17)
			w.Encode(uint32(tables.SpecCumFreq[7][syms[i]]), uint32(tables.SpecFreq[7][syms[i]]))
		}
		forecast := w.AcBits()
		w.Finish()

		var r Reader
		r.Reset(buf)
		r.DecodeInit()
		for i := range syms {
			if got := r.Decode(tables.SpecCumFreq[7][:], 17); got != syms[i] {
				t.Fatalf("trial %d: symbol %d mismatch", trial, i)
			}
		}
		if got := r.AcBits(); got != forecast {
			t.Fatalf("trial %d: decoder sees %d ari bits, encoder forecast %d", trial, got, forecast)
		}
	}
}

func TestDecodeLatchesBec(t *testing.T) {
	var r Reader
	r.Reset(make([]byte, 20))
	r.DecodeInit()
	r.low = r.rng // corrupt interval
	if got := r.Decode(tables.SpecCumFreq[0][:], 17); got != 0 || !r.Bec {
		t.Fatalf("Decode on corrupt state = %d, Bec %v", got, r.Bec)
	}
}

func TestReaderOutOfBufferFeedsZeros(t *testing.T) {
	var r Reader
	r.Reset(make([]byte, 2))
	r.DecodeInit() // reads past the 2-byte buffer
	if r.bp != 3 {
		t.Fatalf("bp = %d", r.bp)
	}
	for i := 0; i < 40; i++ {
		r.ReadBit()
	}
}
