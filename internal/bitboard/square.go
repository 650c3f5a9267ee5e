package bitboard

// Square indices run row-major from A1 (bit 0) to H8 (bit 63), matching
// the bitboard layout used throughout this package: index = rank*8 + file.
const (
	A1 = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// PASS is the move index used when a side has no legal move.
const PASS = 64

// NoMove marks the absence of a recorded best move in a hash or move slot.
const NoMove = -1

// QuadrantID maps a square to one of the four board quadrants, used to
// track parity during endgame move ordering. The two trailing slots
// (indices 64 and 65) map to 0.
var QuadrantID = [66]uint32{
	1, 1, 1, 1, 2, 2, 2, 2,
	1, 1, 1, 1, 2, 2, 2, 2,
	1, 1, 1, 1, 2, 2, 2, 2,
	1, 1, 1, 1, 2, 2, 2, 2,
	4, 4, 4, 4, 8, 8, 8, 8,
	4, 4, 4, 4, 8, 8, 8, 8,
	4, 4, 4, 4, 8, 8, 8, 8,
	4, 4, 4, 4, 8, 8, 8, 8,
	0, 0,
}

// PresortedSquares lists all 64 squares in a fixed heuristic order
// (corners first, center last) used to seed the empties list before any
// search-derived score is available.
var PresortedSquares = [64]int{
	A1, A8, H1, H8,
	C4, C5, D3, D6, E3, E6, F4, F5,
	C3, C6, F3, F6,
	A3, A6, C1, C8, F1, F8, H3, H6,
	A4, A5, D1, D8, E1, E8, H4, H5,
	B4, B5, D2, D7, E2, E7, G4, G5,
	B3, B6, C2, C7, F2, F7, G3, G6,
	A2, A7, B1, B8, G1, G8, H2, H7,
	B2, B7, G2, G7,
	D4, E4, D5, E5,
}

// SquareValue gives a static positional weight per square: highest at
// the corners, lowest at the four center squares, and next lowest on
// the squares diagonally next to the corners. No ordering code in this
// module reads it.
var SquareValue = [64]int{
	18, 4, 16, 12, 12, 16, 4, 18,
	4, 2, 6, 8, 8, 6, 2, 4,
	16, 6, 14, 10, 10, 14, 6, 16,
	12, 8, 10, 0, 0, 10, 8, 12,
	12, 8, 10, 0, 0, 10, 8, 12,
	16, 6, 14, 10, 10, 14, 6, 16,
	4, 2, 6, 8, 8, 6, 2, 4,
	18, 4, 16, 12, 12, 16, 4, 18,
}
