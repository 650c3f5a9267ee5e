package bitboard

// GetFlippedFast computes the same result as GetFlipped but via a
// per-square dispatch table, each entry scanning only the 8 directions
// that square's edge masks allow and terminating a ray the instant it
// leaves that direction's edge, instead of GetFlipped's uniform 2D
// coordinate walk. The two are cross-checked against each other in
// position_test.go; GetFlipped remains the correctness reference, and
// search hot paths call the Fast variant (see Position.GetFlippedFast).
func GetFlippedFast(player, opponent uint64, index int) uint64 {
	return flipFuncs[index](player, opponent)
}

// GetFlippedFast is the dispatch-table equivalent of Position.GetFlipped,
// used on search hot paths.
func (p Position) GetFlippedFast(index int) uint64 {
	return GetFlippedFast(p.Player, p.Opponent, index)
}

type flipFunc func(player, opponent uint64) uint64

var flipFuncs [64]flipFunc

// flipDirections lists, in the same order as directionEdges, the bit
// shift applied per step of each of the 8 rays: the four straight
// directions and four diagonals.
var flipDirections = [8]int{-9, -8, -7, -1, 1, 7, 8, 9}

// directionEdges gives, per direction above, the bitset of squares at
// which a ray in that direction must stop: the board edge it would
// otherwise wrap around.
var directionEdges = [8]uint64{
	0x01010101010101FF,
	0x00000000000000FF,
	0x80808080808080FF,
	0x0101010101010101,
	0x8080808080808080,
	0xFF01010101010101,
	0xFF00000000000000,
	0xFF80808080808080,
}

func init() {
	for i := 0; i < 64; i++ {
		idx := i
		flipFuncs[idx] = func(player, opponent uint64) uint64 {
			return getFlippedEdgeMasked(player, opponent, idx)
		}
	}
}

// getFlippedEdgeMasked walks each of the 8 rays from index one bit-shift
// at a time, collecting opponent discs until it meets a player disc
// (closing the flip) or crosses that direction's edge mask (an open
// ray, nothing flips). A direction is skipped outright when index
// itself already sits on that direction's edge, since no ray can start.
func getFlippedEdgeMasked(player, opponent uint64, index int) uint64 {
	origin := uint64(1) << uint(index)
	var flipped uint64

	for d := 0; d < 8; d++ {
		if origin&directionEdges[d] != 0 {
			continue
		}

		shift := flipDirections[d]
		var line uint64
		x := shiftOne(origin, shift)
		for x&opponent != 0 && x&directionEdges[d] == 0 {
			line |= x
			x = shiftOne(x, shift)
		}
		if x&player != 0 {
			flipped |= line
		}
	}

	return flipped
}

// shiftOne moves a single-bit bitset by one square in the ray direction
// dir (one of the 8 values in flipDirections), with no wraparound
// masking: callers stop the walk before a shift would cross an edge, so
// the shift itself never needs to guard against wraparound.
func shiftOne(bit uint64, dir int) uint64 {
	if dir < 0 {
		return bit >> uint(-dir)
	}
	return bit << uint(dir)
}
