package bitboard

import "math/bits"

// corners is the bitset of the four corner squares.
const corners = uint64(1)<<A1 | uint64(1)<<H1 | uint64(1)<<A8 | uint64(1)<<H8

// cornerStabilityInternal counts discs of bitset that sit in a corner,
// or adjacent to an owned corner along the corner's two edges. This is
// a cheap, loose upper bound on true stable-disc count: ported from
// corner_stability_internal in the reference implementation.
func cornerStabilityInternal(discs uint64) int {
	stable := (((0x0100000000000001 & discs) << 1) |
		((0x8000000000000080 & discs) >> 1) |
		((0x0000000000000081 & discs) << 8) |
		((0x8100000000000000 & discs) >> 8) |
		0x8100000000000081) & discs

	return bits.OnesCount64(stable)
}

// CornerStability returns the corner-stability estimate for the side to move.
func (p Position) CornerStability() int {
	return cornerStabilityInternal(p.Player)
}

// OpponentCornerStability returns the corner-stability estimate for the
// side not to move.
func (p Position) OpponentCornerStability() int {
	return cornerStabilityInternal(p.Opponent)
}

// edgeLines lists the 4 board edges as an ordered list of 8 square
// indices each, used to build the per-edge stability estimate.
var edgeLines = [4][8]int{
	{A1, B1, C1, D1, E1, F1, G1, H1},
	{A8, B8, C8, D8, E8, F8, G8, H8},
	{A1, A2, A3, A4, A5, A6, A7, A8},
	{H1, H2, H3, H4, H5, H6, H7, H8},
}

// edgeStableMask returns the bitset of discs (of either color) on fully
// occupied edge lines. A fully occupied edge line can no longer be
// played on, so no disc on it can be added to or removed from that
// line's own moves; this is the cheap per-edge estimate, not a full
// cross-direction stability proof. Corners are shared by two edge
// lines and are only counted once because the result is a bitmask,
// not a sum of per-edge counts.
func edgeStableMask(player, opponent uint64) uint64 {
	discs := player | opponent
	var stable uint64
	for _, line := range edgeLines {
		var lineMask uint64
		for _, sq := range line {
			lineMask |= uint64(1) << uint(sq)
		}
		if discs&lineMask == lineMask {
			stable |= lineMask
		}
	}
	return stable
}

// EdgeStability estimates the number of edge-stable discs owned by the
// side to move.
func (p Position) EdgeStability() int {
	return bits.OnesCount64(edgeStableMask(p.Player, p.Opponent) & p.Player)
}

// OpponentEdgeStability estimates the number of edge-stable discs owned
// by the side not to move.
func (p Position) OpponentEdgeStability() int {
	return bits.OnesCount64(edgeStableMask(p.Player, p.Opponent) & p.Opponent)
}

// directionRays gives, for each of the 4 line axes (horizontal,
// vertical, the two diagonals), the two opposite unit steps along that
// axis as (dx, dy) pairs.
var directionRays = [4][2][2]int{
	{{-1, 0}, {1, 0}},
	{{0, -1}, {0, 1}},
	{{-1, -1}, {1, 1}},
	{{-1, 1}, {1, -1}},
}

// lineFull reports whether every square of the full board line through
// (x, y) along the given axis is occupied (by either color).
func lineFull(discs uint64, x, y, axis int) bool {
	dx0, dy0 := directionRays[axis][0][0], directionRays[axis][0][1]
	dx1, dy1 := directionRays[axis][1][0], directionRays[axis][1][1]

	cx, cy := x, y
	for cx >= 0 && cx < 8 && cy >= 0 && cy < 8 {
		if discs&(uint64(1)<<uint(cy*8+cx)) == 0 {
			return false
		}
		cx += dx0
		cy += dy0
	}
	cx, cy = x+dx1, y+dy1
	for cx >= 0 && cx < 8 && cy >= 0 && cy < 8 {
		if discs&(uint64(1)<<uint(cy*8+cx)) == 0 {
			return false
		}
		cx += dx1
		cy += dy1
	}
	return true
}

// FullStability counts discs proven never to flip for the remainder of
// the game, by iterative propagation: seed
// with the corners, then repeatedly mark a disc stable on a given axis
// if that axis's line is completely full, or the disc itself sits at
// one of the line's two endpoints (no anchor square can ever exist
// beyond it, so a flip capturing it via this axis is geometrically
// impossible regardless of the far side), or both of its neighbors
// along the axis are themselves same-color discs already proven
// stable. A disc is stable once every one of the 4 axes clears.
// Iterate to a fixpoint since stability can cascade inward from the
// edges. Every disc counted is stable, but the count is a lower bound:
// a stable disc that none of these rules reaches (for example one with
// a proven-stable same-color neighbor on only one side of an axis) is
// not counted.
func FullStability(player, opponent uint64) int {
	return bits.OnesCount64(stableMask(player, opponent))
}

// CountPlayerStableDiscs returns the FullStability-style stable-disc
// count (a lower bound) for the side to move.
func (p Position) CountPlayerStableDiscs() int {
	return bits.OnesCount64(stableMask(p.Player, p.Opponent) & p.Player)
}

// CountOpponentStableDiscs returns the FullStability-style stable-disc
// count (a lower bound) for the side not to move.
func (p Position) CountOpponentStableDiscs() int {
	return bits.OnesCount64(stableMask(p.Player, p.Opponent) & p.Opponent)
}

// stableMask is the fixpoint propagation shared by FullStability and
// the per-color stable-disc counters.
func stableMask(player, opponent uint64) uint64 {
	discs := player | opponent
	if discs == 0 {
		return 0
	}

	stable := discs & corners
	for {
		changed := false
		for sq := 0; sq < 64; sq++ {
			bit := uint64(1) << uint(sq)
			if discs&bit == 0 || stable&bit != 0 {
				continue
			}
			color := player&bit != 0
			x, y := sq%8, sq/8

			ok := true
			for axis := 0; axis < 4 && ok; axis++ {
				if lineFull(discs, x, y, axis) || axisIsLineEndpoint(x, y, axis) {
					continue
				}
				for _, step := range directionRays[axis] {
					nx, ny := x+step[0], y+step[1]
					if nx < 0 || nx >= 8 || ny < 0 || ny >= 8 {
						continue // unreachable here: axisIsLineEndpoint already caught this
					}
					nbit := uint64(1) << uint(ny*8+nx)
					sameColor := (color && player&nbit != 0) || (!color && opponent&nbit != 0)
					if stable&nbit == 0 || !sameColor {
						ok = false
						break
					}
				}
			}
			if ok {
				stable |= bit
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return stable
}

// axisIsLineEndpoint reports whether (x, y) is one of the two endpoint
// squares of the given axis's line: a square with no board square
// beyond it in one of the axis's two directions. No flip can ever
// capture such a square via this axis, since a capture needs an anchor
// disc on each side and one side's anchor position doesn't exist on
// the board, regardless of what sits on the other side.
func axisIsLineEndpoint(x, y, axis int) bool {
	for _, step := range directionRays[axis] {
		nx, ny := x+step[0], y+step[1]
		if nx < 0 || nx >= 8 || ny < 0 || ny >= 8 {
			return true
		}
	}
	return false
}

// PotentialMobility counts empty squares adjacent to an opponent disc
// (a cheap proxy for future mobility), counting corner squares double
// since a move there is especially valuable.
func (p Position) PotentialMobility() int {
	return weightedAdjacency(p.Opponent, p.Player|p.Opponent)
}

// WeightedMobility counts legal moves, weighting corner moves double.
func (p Position) WeightedMobility() int {
	moves := p.GetMoves()
	return bits.OnesCount64(moves) + bits.OnesCount64(moves&corners)
}

func weightedAdjacency(target, occupied uint64) int {
	h := target & 0x7E7E7E7E7E7E7E7E
	v := target & 0x00FFFFFFFFFFFF00
	d := target & 0x007E7E7E7E7E7E00

	potential := (h<<1 | h>>1) | (v<<8 | v>>8) | (d<<7 | d>>7) | (d<<9 | d>>9)
	potential &^= occupied

	return bits.OnesCount64(potential) + bits.OnesCount64(potential&corners)
}
