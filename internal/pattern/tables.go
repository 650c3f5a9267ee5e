// Package pattern implements the 47-pattern positional evaluator: base-3
// feature encoding of overlapping board patterns, symmetry-packed
// per-ply weight tables loaded from an eval.dat file, and incremental
// do/undo feature updates for use inside midgame search.
package pattern

import b "github.com/lk16/swap/internal/bitboard"

// NFeatures is the number of overlapping geometric patterns the
// evaluator tracks.
const NFeatures = 47

// F2X maps each feature to the ordered list of board squares whose
// base-3 colors compose that feature's value. Ported verbatim (square
// names resolved to indices) from the reference evaluator's EVAL_F2X.
var F2X = [NFeatures][]int{
	{b.A1, b.B1, b.A2, b.B2, b.C1, b.A3, b.C2, b.B3, b.C3},
	{b.H1, b.G1, b.H2, b.G2, b.F1, b.H3, b.F2, b.G3, b.F3},
	{b.A8, b.A7, b.B8, b.B7, b.A6, b.C8, b.B6, b.C7, b.C6},
	{b.H8, b.H7, b.G8, b.G7, b.H6, b.F8, b.G6, b.F7, b.F6},
	{b.A5, b.A4, b.A3, b.A2, b.A1, b.B2, b.B1, b.C1, b.D1, b.E1},
	{b.H5, b.H4, b.H3, b.H2, b.H1, b.G2, b.G1, b.F1, b.E1, b.D1},
	{b.A4, b.A5, b.A6, b.A7, b.A8, b.B7, b.B8, b.C8, b.D8, b.E8},
	{b.H4, b.H5, b.H6, b.H7, b.H8, b.G7, b.G8, b.F8, b.E8, b.D8},
	{b.B2, b.A1, b.B1, b.C1, b.D1, b.E1, b.F1, b.G1, b.H1, b.G2},
	{b.B7, b.A8, b.B8, b.C8, b.D8, b.E8, b.F8, b.G8, b.H8, b.G7},
	{b.B2, b.A1, b.A2, b.A3, b.A4, b.A5, b.A6, b.A7, b.A8, b.B7},
	{b.G2, b.H1, b.H2, b.H3, b.H4, b.H5, b.H6, b.H7, b.H8, b.G7},
	{b.A1, b.C1, b.D1, b.C2, b.D2, b.E2, b.F2, b.E1, b.F1, b.H1},
	{b.A8, b.C8, b.D8, b.C7, b.D7, b.E7, b.F7, b.E8, b.F8, b.H8},
	{b.A1, b.A3, b.A4, b.B3, b.B4, b.B5, b.B6, b.A5, b.A6, b.A8},
	{b.H1, b.H3, b.H4, b.G3, b.G4, b.G5, b.G6, b.H5, b.H6, b.H8},
	{b.A2, b.B2, b.C2, b.D2, b.E2, b.F2, b.G2, b.H2},
	{b.A7, b.B7, b.C7, b.D7, b.E7, b.F7, b.G7, b.H7},
	{b.B1, b.B2, b.B3, b.B4, b.B5, b.B6, b.B7, b.B8},
	{b.G1, b.G2, b.G3, b.G4, b.G5, b.G6, b.G7, b.G8},
	{b.A3, b.B3, b.C3, b.D3, b.E3, b.F3, b.G3, b.H3},
	{b.A6, b.B6, b.C6, b.D6, b.E6, b.F6, b.G6, b.H6},
	{b.C1, b.C2, b.C3, b.C4, b.C5, b.C6, b.C7, b.C8},
	{b.F1, b.F2, b.F3, b.F4, b.F5, b.F6, b.F7, b.F8},
	{b.A4, b.B4, b.C4, b.D4, b.E4, b.F4, b.G4, b.H4},
	{b.A5, b.B5, b.C5, b.D5, b.E5, b.F5, b.G5, b.H5},
	{b.D1, b.D2, b.D3, b.D4, b.D5, b.D6, b.D7, b.D8},
	{b.E1, b.E2, b.E3, b.E4, b.E5, b.E6, b.E7, b.E8},
	{b.A1, b.B2, b.C3, b.D4, b.E5, b.F6, b.G7, b.H8},
	{b.A8, b.B7, b.C6, b.D5, b.E4, b.F3, b.G2, b.H1},
	{b.B1, b.C2, b.D3, b.E4, b.F5, b.G6, b.H7},
	{b.H2, b.G3, b.F4, b.E5, b.D6, b.C7, b.B8},
	{b.A2, b.B3, b.C4, b.D5, b.E6, b.F7, b.G8},
	{b.G1, b.F2, b.E3, b.D4, b.C5, b.B6, b.A7},
	{b.C1, b.D2, b.E3, b.F4, b.G5, b.H6},
	{b.A3, b.B4, b.C5, b.D6, b.E7, b.F8},
	{b.F1, b.E2, b.D3, b.C4, b.B5, b.A6},
	{b.H3, b.G4, b.F5, b.E6, b.D7, b.C8},
	{b.D1, b.E2, b.F3, b.G4, b.H5},
	{b.A4, b.B5, b.C6, b.D7, b.E8},
	{b.E1, b.D2, b.C3, b.B4, b.A5},
	{b.H4, b.G5, b.F6, b.E7, b.D8},
	{b.D1, b.C2, b.B3, b.A4},
	{b.A5, b.B6, b.C7, b.D8},
	{b.E1, b.F2, b.G3, b.H4},
	{b.H5, b.G6, b.F7, b.E8},
	{},
}

// x2fEntry is one (feature index, base-3 place value) contribution that
// a square makes to a pattern's packed value.
type x2fEntry struct {
	feature int
	value   int32
}

// X2F is the inverse of F2X: for each of the 64 squares (plus index 64
// for a pass), the list of (feature, place-value) pairs that square
// contributes to. Ported verbatim from EVAL_X2F.
var X2F = [65][]x2fEntry{
	{{0, 6561}, {4, 243}, {8, 6561}, {10, 6561}, {12, 19683}, {14, 19683}, {28, 2187}},
	{{0, 2187}, {4, 27}, {8, 2187}, {18, 2187}, {30, 729}},
	{{0, 81}, {4, 9}, {8, 729}, {12, 6561}, {22, 2187}, {34, 243}},
	{{4, 3}, {5, 1}, {8, 243}, {12, 2187}, {26, 2187}, {38, 81}, {42, 27}},
	{{4, 1}, {5, 3}, {8, 81}, {12, 9}, {27, 2187}, {40, 81}, {44, 27}},
	{{1, 81}, {5, 9}, {8, 27}, {12, 3}, {23, 2187}, {36, 243}},
	{{1, 2187}, {5, 27}, {8, 9}, {19, 2187}, {33, 729}},
	{{1, 6561}, {5, 243}, {8, 3}, {11, 6561}, {12, 1}, {15, 19683}, {29, 1}},
	{{0, 729}, {4, 729}, {10, 2187}, {16, 2187}, {32, 729}},
	{{0, 243}, {4, 81}, {8, 19683}, {10, 19683}, {16, 729}, {18, 729}, {28, 729}},
	{{0, 9}, {12, 729}, {16, 243}, {22, 729}, {30, 243}, {42, 9}},
	{{12, 243}, {16, 81}, {26, 729}, {34, 81}, {40, 27}},
	{{12, 81}, {16, 27}, {27, 729}, {36, 81}, {38, 27}},
	{{1, 9}, {12, 27}, {16, 9}, {23, 729}, {33, 243}, {44, 9}},
	{{1, 243}, {5, 81}, {8, 1}, {11, 19683}, {16, 3}, {19, 729}, {29, 3}},
	{{1, 729}, {5, 729}, {11, 2187}, {16, 1}, {31, 729}},
	{{0, 27}, {4, 2187}, {10, 729}, {14, 6561}, {20, 2187}, {35, 243}},
	{{0, 3}, {14, 729}, {18, 243}, {20, 729}, {32, 243}, {42, 3}},
	{{0, 1}, {20, 243}, {22, 243}, {28, 243}, {40, 9}},
	{{20, 81}, {26, 243}, {30, 81}, {36, 27}},
	{{20, 27}, {27, 243}, {33, 81}, {34, 27}},
	{{1, 1}, {20, 9}, {23, 243}, {29, 9}, {38, 9}},
	{{1, 3}, {15, 729}, {19, 243}, {20, 3}, {31, 243}, {44, 3}},
	{{1, 27}, {5, 2187}, {11, 729}, {15, 6561}, {20, 1}, {37, 243}},
	{{4, 6561}, {6, 19683}, {10, 243}, {14, 2187}, {24, 2187}, {39, 81}, {42, 1}},
	{{14, 243}, {18, 81}, {24, 729}, {35, 81}, {40, 3}},
	{{22, 81}, {24, 243}, {32, 81}, {36, 9}},
	{{24, 81}, {26, 81}, {28, 81}, {33, 27}},
	{{24, 27}, {27, 81}, {29, 27}, {30, 27}},
	{{23, 81}, {24, 9}, {31, 81}, {34, 9}},
	{{15, 243}, {19, 81}, {24, 3}, {37, 81}, {38, 3}},
	{{5, 6561}, {7, 19683}, {11, 243}, {15, 2187}, {24, 1}, {41, 81}, {44, 1}},
	{{4, 19683}, {6, 6561}, {10, 81}, {14, 9}, {25, 2187}, {40, 1}, {43, 27}},
	{{14, 81}, {18, 27}, {25, 729}, {36, 3}, {39, 27}},
	{{22, 27}, {25, 243}, {33, 9}, {35, 27}},
	{{25, 81}, {26, 27}, {29, 81}, {32, 27}},
	{{25, 27}, {27, 27}, {28, 27}, {31, 27}},
	{{23, 27}, {25, 9}, {30, 9}, {37, 27}},
	{{15, 81}, {19, 27}, {25, 3}, {34, 3}, {41, 27}},
	{{5, 19683}, {7, 6561}, {11, 81}, {15, 9}, {25, 1}, {38, 1}, {45, 27}},
	{{2, 81}, {6, 2187}, {10, 27}, {14, 3}, {21, 2187}, {36, 1}},
	{{2, 9}, {14, 27}, {18, 9}, {21, 729}, {33, 3}, {43, 9}},
	{{2, 1}, {21, 243}, {22, 9}, {29, 243}, {39, 9}},
	{{21, 81}, {26, 9}, {31, 9}, {35, 9}},
	{{21, 27}, {27, 9}, {32, 9}, {37, 9}},
	{{3, 1}, {21, 9}, {23, 9}, {28, 9}, {41, 9}},
	{{3, 9}, {15, 27}, {19, 9}, {21, 3}, {30, 3}, {45, 9}},
	{{3, 81}, {7, 2187}, {11, 27}, {15, 3}, {21, 1}, {34, 1}},
	{{2, 2187}, {6, 729}, {10, 9}, {17, 2187}, {33, 1}},
	{{2, 243}, {6, 81}, {9, 19683}, {10, 1}, {17, 729}, {18, 3}, {29, 729}},
	{{2, 3}, {13, 729}, {17, 243}, {22, 3}, {31, 3}, {43, 3}},
	{{13, 243}, {17, 81}, {26, 3}, {37, 3}, {39, 3}},
	{{13, 81}, {17, 27}, {27, 3}, {35, 3}, {41, 3}},
	{{3, 3}, {13, 27}, {17, 9}, {23, 3}, {32, 3}, {45, 3}},
	{{3, 243}, {7, 81}, {9, 1}, {11, 1}, {17, 3}, {19, 3}, {28, 3}},
	{{3, 2187}, {7, 729}, {11, 9}, {17, 1}, {30, 1}},
	{{2, 6561}, {6, 243}, {9, 6561}, {10, 3}, {13, 19683}, {14, 1}, {29, 2187}},
	{{2, 729}, {6, 27}, {9, 2187}, {18, 1}, {31, 1}},
	{{2, 27}, {6, 9}, {9, 729}, {13, 6561}, {22, 1}, {37, 1}},
	{{6, 3}, {7, 1}, {9, 243}, {13, 2187}, {26, 1}, {41, 1}, {43, 1}},
	{{6, 1}, {7, 3}, {9, 81}, {13, 9}, {27, 1}, {39, 1}, {45, 1}},
	{{3, 27}, {7, 9}, {9, 27}, {13, 3}, {23, 1}, {35, 1}},
	{{3, 729}, {7, 27}, {9, 9}, {19, 1}, {32, 1}},
	{{3, 6561}, {7, 243}, {9, 3}, {11, 3}, {13, 1}, {15, 1}, {28, 1}},
	{{0, 0}},
}

// Offset gives the packed-table base offset of each feature: features
// sharing a symmetry class reuse the same underlying weight slots.
var Offset = [NFeatures]int32{
	0, 0, 0, 0, 19683, 19683, 19683, 19683, 78732, 78732, 78732, 78732, 137781, 137781, 137781,
	137781, 196830, 196830, 196830, 196830, 203391, 203391, 203391, 203391, 209952, 209952, 209952,
	209952, 216513, 216513, 223074, 223074, 223074, 223074, 225261, 225261, 225261, 225261, 225990,
	225990, 225990, 225990, 226233, 226233, 226233, 226233, 226314,
}

// MaxValue gives the maximum packed feature value per feature (Offset +
// raw-size - 1), used to size the weight array.
var MaxValue = [NFeatures]int32{
	19682, 19682, 19682, 19682, 78731, 78731, 78731, 78731, 137780, 137780, 137780, 137780, 196829,
	196829, 196829, 196829, 203390, 203390, 203390, 203390, 209951, 209951, 209951, 209951, 216512,
	216512, 216512, 216512, 223073, 223073, 225260, 225260, 225260, 225260, 225989, 225989, 225989,
	225989, 226232, 226232, 226232, 226232, 226313, 226313, 226313, 226313, 226314,
}

// NWeight is the size of the per-ply, per-side weight array: one slot
// per distinct packed feature value across all 47 features.
const NWeight = 226315
