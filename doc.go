// Package lc3 implements the LC3 low-complexity communication codec in
// pure Go.
//
// LC3 is the audio codec of the Bluetooth LE Audio stack. It codes frames
// of 2.5, 5, 7.5 or 10 ms at sampling rates from 8 to 48 kHz, with a
// freely selectable frame payload of 20 to 400 bytes per channel.
//
// This implementation follows the LC3 Specification (ETSI TS 103 634) and
// requires no cgo dependencies.
//
// # Coding pipeline
//
// Each frame passes through a low-delay MDCT, spectral noise shaping (SNS),
// temporal noise shaping (TNS) and a long-term postfilter (LTPF) pitch
// analysis, then a rate-controlled scalar quantizer whose output is packed
// with a binary arithmetic coder. The decoder mirrors the chain and
// conceals damaged or missing frames from the last good spectrum.
//
// # Frame payloads
//
// LC3 payloads carry no headers: the byte count per channel is part of the
// session configuration and must be conveyed out of band, exactly as the
// Bluetooth host stack does. Multi-channel frames are the concatenation of
// the independently coded channel payloads.
package lc3
