package tables

// TnsOrderFreq holds the filter-order symbol frequencies, selected by the
// LPC-weighting flag. Rows sum to 1024.
var TnsOrderFreq = [2][8]uint16{
	{245, 197, 157, 126, 101, 81, 65, 52},
	{464, 256, 141, 77, 43, 23, 13, 7},
}

// TnsCoefFreq holds the reflection-coefficient symbol frequencies, one row
// per lattice stage. Rows sum to 1024.
var TnsCoefFreq = [8][17]uint16{
	{8, 15, 26, 41, 61, 82, 102, 116, 122, 116, 102, 82, 61, 41, 26, 15, 8},
	{5, 11, 21, 36, 58, 83, 107, 125, 132, 125, 107, 83, 58, 36, 21, 11, 5},
	{3, 7, 15, 31, 53, 83, 113, 135, 143, 136, 113, 83, 53, 31, 15, 7, 3},
	{1, 4, 10, 24, 47, 80, 118, 148, 160, 148, 118, 80, 47, 24, 10, 4, 1},
	{1, 2, 6, 16, 38, 75, 122, 163, 178, 163, 122, 75, 38, 16, 6, 2, 1},
	{1, 1, 2, 9, 28, 66, 124, 179, 203, 180, 124, 66, 28, 9, 2, 1, 1},
	{1, 1, 1, 3, 16, 51, 120, 200, 237, 200, 120, 52, 16, 3, 1, 1, 1},
	{1, 1, 1, 1, 6, 31, 107, 222, 283, 222, 107, 32, 6, 1, 1, 1, 1},
}

var (
	TnsOrderCumFreq [2][9]uint16
	TnsOrderBits    [2][8]int32
	TnsCoefCumFreq  [8][18]uint16
	TnsCoefBits     [8][17]int32
)
