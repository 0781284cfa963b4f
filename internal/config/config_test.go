package config

import "testing"

func TestDerivedConstants(t *testing.T) {
	tests := []struct {
		fs, frameUs        int
		nf, ne, z, nb      int
	}{
		{8000, Frame10000us, 80, 80, 30, 64},
		{16000, Frame10000us, 160, 160, 60, 64},
		{24000, Frame10000us, 240, 240, 90, 64},
		{32000, Frame10000us, 320, 320, 120, 64},
		{44100, Frame10000us, 480, 400, 180, 64},
		{48000, Frame10000us, 480, 400, 180, 64},
		{8000, Frame7500us, 60, 60, 14, 60},
		{48000, Frame7500us, 360, 300, 84, 64},
		{8000, Frame5000us, 40, 40, 10, 39},
		{48000, Frame5000us, 240, 200, 60, 55},
		{8000, Frame2500us, 20, 20, 0, 20},
		{48000, Frame2500us, 120, 100, 0, 44},
	}
	for _, tt := range tests {
		c, err := New(tt.fs, tt.frameUs)
		if err != nil {
			t.Fatalf("New(%d, %d): %v", tt.fs, tt.frameUs, err)
		}
		if c.NF != tt.nf || c.NE != tt.ne || c.Z != tt.z || c.NB != tt.nb {
			t.Errorf("New(%d, %d) = NF %d NE %d Z %d NB %d, want %d %d %d %d",
				tt.fs, tt.frameUs, c.NF, c.NE, c.Z, c.NB, tt.nf, tt.ne, tt.z, tt.nb)
		}
	}
}

func TestInvalidPairs(t *testing.T) {
	if _, err := New(11025, Frame10000us); err == nil {
		t.Error("New(11025, 10ms): expected error")
	}
	if _, err := New(48000, 3000); err == nil {
		t.Error("New(48000, 3ms): expected error")
	}
}

func TestBandEdgesShape(t *testing.T) {
	for _, fs := range []int{8000, 16000, 24000, 32000, 44100, 48000} {
		for _, us := range []int{Frame2500us, Frame5000us, Frame7500us, Frame10000us} {
			c, err := New(fs, us)
			if err != nil {
				t.Fatal(err)
			}
			e := c.BandEdges
			if len(e) != c.NB+1 || e[0] != 0 || e[c.NB] != c.NE {
				t.Fatalf("%d/%dus: bad edge endpoints %v", fs, us, e)
			}
			for b := 0; b < c.NB; b++ {
				if e[b+1] <= e[b] {
					t.Fatalf("%d/%dus: empty band %d", fs, us, b)
				}
			}
			// the lowest bands resolve single coefficients
			if e[1]-e[0] != 1 {
				t.Errorf("%d/%dus: first band width %d, want 1", fs, us, e[1]-e[0])
			}
		}
	}
}

func TestByteCount(t *testing.T) {
	c, _ := New(48000, Frame10000us)
	if got := c.ByteCount(64000); got != 80 {
		t.Errorf("48k/10ms @64kbps = %d bytes, want 80", got)
	}
	if got := c.ByteCount(32000); got != 40 {
		t.Errorf("48k/10ms @32kbps = %d bytes, want 40", got)
	}
	c75, _ := New(48000, Frame7500us)
	if got := c75.ByteCount(64000); got != 60 {
		t.Errorf("48k/7.5ms @64kbps = %d bytes, want 60", got)
	}
	// 44.1 kHz frames are 480/441 longer than nominal
	c441, _ := New(44100, Frame10000us)
	if got := c441.ByteCount(44100); got != 60 {
		t.Errorf("44.1k/10ms @44.1kbps = %d bytes, want 60", got)
	}
	if !ValidByteCount(20) || !ValidByteCount(400) || ValidByteCount(19) || ValidByteCount(401) {
		t.Error("ValidByteCount bounds wrong")
	}
}

func TestConfigDeterministic(t *testing.T) {
	a, _ := New(32000, Frame7500us)
	b, _ := New(32000, Frame7500us)
	if a.NF != b.NF || len(a.BandEdges) != len(b.BandEdges) {
		t.Fatal("identical pairs gave different constants")
	}
	for i := range a.BandEdges {
		if a.BandEdges[i] != b.BandEdges[i] {
			t.Fatal("identical pairs gave different band edges")
		}
	}
}
