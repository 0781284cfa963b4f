// Package tables holds the codec ROM data: entropy-coder frequency tables,
// SNS codebooks and gain tables, and the constants derived from them at
// init time (cumulative frequencies, bit costs, MPVQ offsets).
package tables

// SpecFreq holds the symbol frequencies for the context-adaptive spectral
// pair coder, one row per context, 10-bit probability scale (rows sum to
// 1024). Symbols 0..15 encode a coefficient pair (a + 4*b with a,b < 4),
// symbol 16 escapes to the next magnitude level.
var SpecFreq = [64][17]uint16{
	{509, 152, 46, 14, 152, 40, 12, 4, 46, 12, 4, 1, 14, 4, 1, 1, 12},
	{451, 155, 53, 18, 155, 46, 16, 5, 53, 16, 5, 2, 18, 5, 2, 1, 23},
	{399, 153, 59, 23, 153, 51, 20, 8, 59, 20, 8, 3, 23, 8, 3, 1, 33},
	{354, 150, 64, 27, 150, 56, 24, 10, 64, 24, 10, 4, 27, 10, 4, 2, 44},
	{310, 145, 68, 32, 146, 59, 28, 13, 68, 28, 13, 6, 32, 13, 6, 3, 54},
	{274, 140, 71, 36, 139, 62, 32, 16, 71, 32, 16, 8, 36, 16, 8, 4, 63},
	{241, 133, 73, 40, 132, 64, 35, 19, 73, 35, 19, 11, 40, 19, 11, 6, 73},
	{210, 125, 74, 44, 125, 65, 38, 23, 74, 38, 23, 14, 44, 23, 14, 8, 82},
	{184, 117, 75, 47, 117, 65, 41, 26, 75, 41, 26, 17, 47, 26, 17, 11, 92},
	{161, 109, 74, 50, 109, 64, 44, 30, 74, 44, 30, 20, 50, 30, 20, 14, 101},
	{140, 101, 73, 53, 102, 64, 46, 33, 73, 46, 33, 24, 53, 33, 24, 17, 109},
	{123, 94, 72, 55, 94, 62, 47, 36, 72, 47, 36, 28, 55, 36, 28, 21, 118},
	{107, 87, 70, 56, 87, 61, 49, 39, 70, 49, 39, 32, 56, 39, 32, 25, 126},
	{93, 80, 68, 57, 80, 59, 50, 42, 68, 50, 42, 36, 57, 42, 36, 30, 134},
	{82, 73, 65, 58, 73, 57, 50, 45, 65, 50, 45, 40, 58, 45, 40, 35, 143},
	{72, 67, 62, 58, 67, 54, 51, 47, 62, 51, 47, 44, 58, 47, 44, 41, 152},
	{384, 154, 61, 25, 154, 53, 21, 9, 61, 21, 9, 3, 25, 9, 3, 1, 31},
	{333, 147, 65, 29, 147, 57, 25, 11, 65, 25, 11, 5, 29, 11, 5, 2, 57},
	{287, 139, 68, 33, 140, 59, 28, 14, 68, 28, 14, 7, 33, 14, 7, 3, 82},
	{249, 130, 69, 36, 131, 60, 32, 17, 69, 32, 17, 9, 36, 17, 9, 5, 106},
	{215, 122, 70, 40, 122, 61, 34, 20, 70, 34, 20, 11, 40, 20, 11, 6, 128},
	{187, 114, 69, 42, 114, 60, 37, 22, 69, 37, 22, 14, 42, 22, 14, 8, 151},
	{162, 105, 68, 45, 105, 59, 39, 25, 68, 39, 25, 16, 45, 25, 16, 11, 171},
	{140, 97, 67, 46, 96, 58, 40, 28, 67, 40, 28, 19, 46, 28, 19, 14, 191},
	{119, 87, 65, 48, 87, 57, 42, 31, 65, 42, 31, 23, 48, 31, 23, 17, 208},
	{103, 81, 63, 49, 81, 55, 42, 33, 63, 42, 33, 26, 49, 33, 26, 20, 225},
	{90, 73, 60, 49, 73, 52, 43, 35, 60, 43, 35, 29, 49, 35, 29, 24, 245},
	{77, 67, 57, 50, 67, 50, 43, 37, 57, 43, 37, 32, 50, 37, 32, 28, 260},
	{66, 61, 55, 49, 61, 48, 43, 39, 55, 43, 39, 35, 49, 39, 35, 32, 275},
	{58, 55, 52, 49, 55, 45, 43, 40, 52, 43, 40, 38, 49, 40, 38, 36, 291},
	{50, 50, 49, 48, 50, 43, 42, 42, 49, 42, 42, 41, 48, 42, 41, 41, 304},
	{44, 45, 46, 48, 45, 40, 41, 43, 46, 41, 43, 44, 48, 43, 44, 45, 318},
	{284, 142, 71, 36, 143, 62, 31, 16, 71, 31, 16, 8, 36, 16, 8, 4, 49},
	{242, 132, 71, 39, 132, 62, 34, 18, 71, 34, 18, 10, 39, 18, 10, 5, 89},
	{206, 121, 70, 41, 121, 61, 36, 21, 70, 36, 21, 12, 41, 21, 12, 7, 127},
	{177, 110, 69, 43, 110, 60, 37, 23, 69, 37, 23, 15, 43, 23, 15, 9, 161},
	{149, 99, 67, 45, 100, 58, 39, 26, 67, 39, 26, 17, 45, 26, 17, 12, 192},
	{127, 90, 64, 46, 90, 56, 40, 28, 64, 40, 28, 20, 46, 28, 20, 14, 223},
	{109, 82, 61, 46, 82, 53, 40, 30, 61, 40, 30, 23, 46, 30, 23, 17, 251},
	{94, 75, 58, 46, 74, 51, 40, 32, 58, 40, 32, 25, 46, 32, 25, 20, 276},
	{80, 66, 55, 46, 66, 48, 40, 34, 55, 40, 34, 28, 46, 34, 28, 24, 300},
	{68, 60, 52, 46, 60, 45, 40, 35, 52, 40, 35, 31, 46, 35, 31, 27, 321},
	{59, 54, 49, 45, 53, 43, 39, 36, 49, 39, 36, 33, 45, 36, 33, 31, 344},
	{50, 48, 46, 44, 48, 40, 39, 37, 46, 39, 37, 36, 44, 37, 36, 34, 363},
	{43, 43, 43, 43, 43, 38, 38, 38, 43, 38, 38, 38, 43, 38, 38, 38, 381},
	{37, 39, 40, 42, 39, 35, 37, 38, 40, 37, 38, 40, 42, 38, 40, 42, 400},
	{32, 35, 38, 41, 35, 33, 36, 39, 38, 36, 39, 41, 41, 39, 41, 45, 415},
	{27, 31, 35, 40, 31, 30, 34, 39, 35, 34, 39, 44, 40, 39, 44, 50, 432},
	{210, 126, 76, 45, 126, 66, 39, 24, 76, 39, 24, 14, 45, 24, 14, 9, 67},
	{176, 113, 72, 46, 113, 63, 40, 26, 72, 40, 26, 17, 46, 26, 17, 11, 120},
	{147, 101, 69, 47, 101, 60, 41, 28, 69, 41, 28, 19, 47, 28, 19, 13, 166},
	{122, 90, 65, 47, 90, 57, 41, 30, 65, 41, 30, 22, 47, 30, 22, 16, 209},
	{104, 80, 61, 47, 80, 53, 41, 31, 61, 41, 31, 24, 47, 31, 24, 19, 249},
	{88, 71, 57, 46, 71, 50, 40, 33, 57, 40, 33, 27, 46, 33, 27, 21, 284},
	{73, 62, 54, 46, 62, 47, 40, 34, 54, 40, 34, 29, 46, 34, 29, 25, 315},
	{62, 56, 50, 45, 56, 43, 39, 35, 50, 39, 35, 31, 45, 35, 31, 28, 344},
	{53, 50, 46, 44, 50, 40, 38, 35, 46, 38, 35, 33, 44, 35, 33, 31, 373},
	{45, 44, 43, 42, 44, 38, 37, 36, 43, 37, 36, 35, 42, 36, 35, 34, 397},
	{38, 39, 40, 41, 39, 35, 35, 36, 40, 35, 36, 37, 41, 36, 37, 38, 421},
	{33, 35, 37, 39, 35, 32, 34, 36, 37, 34, 36, 39, 39, 36, 39, 41, 442},
	{28, 31, 34, 38, 31, 30, 33, 36, 34, 33, 36, 40, 38, 36, 40, 44, 462},
	{24, 28, 32, 36, 28, 27, 31, 36, 32, 31, 36, 41, 36, 36, 41, 48, 481},
	{21, 25, 29, 35, 25, 25, 30, 36, 29, 30, 36, 42, 35, 36, 43, 50, 497},
	{18, 22, 27, 33, 22, 23, 29, 35, 27, 29, 35, 44, 33, 35, 44, 54, 514},
}

// SpecLookup maps a coder context to a row of SpecFreq. The index is the
// pair context t plus 1024 times the capped magnitude level.
func SpecLookup(t, lev int) int {
	if lev > 3 {
		lev = 3
	}
	return lev<<4 | (t&1023)>>6
}

// SpecCumFreq and SpecBits are derived from SpecFreq at init: cumulative
// frequencies for the range coder and symbol costs in 1/2048-bit units.
var (
	SpecCumFreq [64][18]uint16
	SpecBits    [64][17]int32
)
