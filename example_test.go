package lc3_test

import (
	"fmt"
	"time"

	"github.com/lc3go/lc3"
)

func Example() {
	enc, err := lc3.NewEncoder(48000, 1, 10*time.Millisecond)
	if err != nil {
		panic(err)
	}
	dec, err := lc3.NewDecoder(48000, 1, 10*time.Millisecond)
	if err != nil {
		panic(err)
	}

	pcm := make([]int16, enc.FrameSamples())
	payload := make([]byte, enc.ByteCountFromBitrate(64000))

	n, err := enc.Encode(pcm, payload, len(payload))
	if err != nil {
		panic(err)
	}
	if err := dec.Decode(payload[:n], pcm); err != nil {
		panic(err)
	}

	fmt.Println(enc.FrameSamples(), "samples in", n, "bytes")
	// Output: 480 samples in 80 bytes
}

func ExampleDecoder_DecodeLost() {
	dec, err := lc3.NewDecoder(16000, 1, 10*time.Millisecond)
	if err != nil {
		panic(err)
	}
	pcm := make([]int16, dec.FrameSamples())

	// conceal a missing packet
	if err := dec.DecodeLost(pcm); err != nil {
		panic(err)
	}
	fmt.Println(len(pcm), "concealed samples")
	// Output: 160 concealed samples
}
