//go:build !amd64 || purego

package dsp

var dotImpl = dotGo
