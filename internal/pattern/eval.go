package pattern

import (
	"github.com/lk16/swap/internal/bitboard"
)

// sign bundles the two multipliers a feature update needs: m scales the
// place value of the square the move is played on, f scales the place
// value of every disc the move flips.
type sign struct {
	m int32
	f int32
}

var (
	doMovePlayer   = sign{m: -2, f: -1}
	doMoveOpponent = sign{m: -1, f: 1}
	undoMovePlayer = sign{m: 2, f: 1}
	undoMoveOpponent = sign{m: 1, f: -1}
)

// Eval tracks the 47 base-3 pattern features of a position incrementally
// across do/undo move, avoiding a full position rescan on every node.
type Eval struct {
	features  [NFeatures]int32
	player    int32
	emptyIndex int
}

// NewEval builds an Eval from scratch by scanning every feature's
// squares directly out of pos. Used to seed the root of a search; every
// descendant updates incrementally via DoMove/UndoMove/Pass instead.
func NewEval(pos bitboard.Position) *Eval {
	e := &Eval{
		player:     0,
		emptyIndex: 60 - pos.CountEmpty(),
	}
	for i := 0; i < NFeatures; i++ {
		var value int32
		for _, sq := range F2X[i] {
			value = value*3 + int32(pos.GetSquareColor(sq))
		}
		e.features[i] = value + Offset[i]
	}
	return e
}

// swap flips perspective. Feature values are left unchanged: the
// arithmetic happens through the sign-parameterized update in
// DoMove/UndoMove; swap only flips the player flag used by Heuristic.
func (e *Eval) swap() {
	e.player = 1 - e.player
}

// updateFeatures applies s to every feature touched by playing at
// movePos and flipping the discs in flipped. This single function
// replaces having two near-identical copies specialized per direction of
// travel (do vs undo, player vs opponent perspective): s carries
// whichever sign convention the caller needs.
func (e *Eval) updateFeatures(s sign, movePos int, flipped uint64) {
	for _, entry := range X2F[movePos] {
		e.features[entry.feature] += s.m * entry.value
	}
	for flipped != 0 {
		sq := trailingZero(flipped)
		flipped &= flipped - 1
		for _, entry := range X2F[sq] {
			e.features[entry.feature] += s.f * entry.value
		}
	}
}

func trailingZero(bitset uint64) int {
	n := 0
	for bitset&1 == 0 {
		bitset >>= 1
		n++
	}
	return n
}

// DoMove updates the features for playing at movePos and flipping
// flipped, then advances the empty-square index and swaps perspective.
// movePos == bitboard.PASS is handled by Pass instead.
func (e *Eval) DoMove(movePos int, flipped uint64) {
	if e.player == 0 {
		e.updateFeatures(doMovePlayer, movePos, flipped)
	} else {
		e.updateFeatures(doMoveOpponent, movePos, flipped)
	}
	e.emptyIndex++
	e.swap()
}

// UndoMove reverses a prior DoMove(movePos, flipped). Perspective is
// swapped back first, matching the reference implementation's ordering,
// since the sign convention for undo is expressed relative to the
// position as it stood before the move.
func (e *Eval) UndoMove(movePos int, flipped uint64) {
	e.swap()
	if e.player == 0 {
		e.updateFeatures(undoMovePlayer, movePos, flipped)
	} else {
		e.updateFeatures(undoMoveOpponent, movePos, flipped)
	}
	e.emptyIndex--
}

// Pass swaps perspective without touching any feature, mirroring
// Position.Pass.
func (e *Eval) Pass() {
	e.swap()
}

// Features returns the current packed feature values, indexed the same
// way as the weight table's per-feature slots.
func (e *Eval) Features() [NFeatures]int32 {
	return e.features
}

// Player returns 0 if it is the original side's turn, 1 if perspective
// has been swapped an odd number of times.
func (e *Eval) Player() int32 {
	return e.player
}

// sigma models the standard deviation of the heuristic's error relative
// to a full-depth search, as a function of how many empty squares
// remain, the search depth actually used, and the depth ProbCut is
// trying to validate against. Ported from the reference evaluator's
// empirically fit quadratic.
func sigma(nEmpty, depth, probcutDepth int) float64 {
	s := -0.10026799*float64(nEmpty) + 0.31027733*float64(depth) - 0.57772603*float64(probcutDepth)
	return 0.07585621*s*s + 1.16492647*s + 5.4171698
}

// Sigma exposes sigma for the ProbCut forward-pruning pass.
func Sigma(nEmpty, depth, probcutDepth int) float64 {
	return sigma(nEmpty, depth, probcutDepth)
}

// scoreMin/scoreMax bound the heuristic's output to the same range a
// full game-theoretic score can take; the two extremes themselves are
// reserved for exact scores.
const (
	scoreMin = -64
	scoreMax = 64
)

// Heuristic sums every feature's weight contribution for the ply stored
// in weights, folds in the fixed 64-point offset per perspective, and
// clamps the result to the open interval (scoreMin, scoreMax) so it is
// never confused with an exact endgame score.
func (e *Eval) Heuristic(weights *Weights) int {
	ply := e.emptyIndex
	table := weights.Ply(ply, int(e.player))

	var sum int32
	for i := 0; i < NFeatures; i++ {
		sum += table[e.features[i]]
	}

	var score int
	if e.player == 0 {
		score = (int(sum) + 64*128) / 128
	} else {
		score = (64*128 - int(sum)) / 128
	}

	switch {
	case score <= scoreMin:
		return scoreMin + 1
	case score >= scoreMax:
		return scoreMax - 1
	default:
		return score
	}
}
