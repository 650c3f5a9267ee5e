package search

import (
	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/pattern"
)

const maxHeight = 80

// State is the per-thread mutable state a single search walks through:
// the current position, its empties list, its evaluator, its parity,
// and a ply-indexed node-type stack. Every mutation method
// (update_midgame, update_endgame, pass_midgame...) has a matching
// restore method that inverts it exactly, so that after a call and its
// restore the state is bit-for-bit what it was before.
type State struct {
	Pos      bitboard.Position
	Empties  *EmptiesList
	Eval     *pattern.Eval
	Parity   uint32
	Height   int
	NEmpty   int
	nodeType [maxHeight]NodeType

	weights *pattern.Weights
}

// NewState builds a fresh search state at the root of a search.
func NewState(pos bitboard.Position, weights *pattern.Weights) *State {
	s := &State{
		Pos:     pos,
		Empties: NewEmptiesList(pos),
		Eval:    pattern.NewEval(pos),
		NEmpty:  pos.CountEmpty(),
		weights: weights,
	}
	s.Parity = s.computeParity()
	s.nodeType[0] = NodePV
	return s
}

func (s *State) computeParity() uint32 {
	var parity uint32
	it := s.Empties.IterAll()
	for {
		x, _, ok := it.Next()
		if !ok {
			break
		}
		parity ^= bitboard.QuadrantID[x]
	}
	return parity
}

// NodeType returns the node type recorded for the current height.
func (s *State) NodeType() NodeType {
	return s.nodeType[s.Height]
}

// UpdateMidgame plays move, maintaining position, empties, evaluator,
// parity and height together. firstChild selects the child node type
// when the parent is a PV node.
func (s *State) UpdateMidgame(move Move, firstChild bool) {
	x := move.Index
	s.Parity ^= bitboard.QuadrantID[x]
	s.Empties.Remove(x)
	s.Eval.DoMove(x, move.Flipped)
	s.Pos.DoMove(x)
	s.NEmpty--
	s.Height++
	s.nodeType[s.Height] = childNodeType(s.nodeType[s.Height-1], firstChild)
}

// RestoreMidgame reverses the matching UpdateMidgame call.
func (s *State) RestoreMidgame(move Move) {
	x := move.Index
	s.Height--
	s.NEmpty++
	s.Pos.UndoMove(x, move.Flipped)
	s.Eval.UndoMove(x, move.Flipped)
	s.Empties.Restore(x)
	s.Parity ^= bitboard.QuadrantID[x]
}

// UpdateEndgame is UpdateMidgame without the evaluator update, used once
// the search has switched to the exact end-game solver.
func (s *State) UpdateEndgame(move Move, firstChild bool) {
	x := move.Index
	s.Parity ^= bitboard.QuadrantID[x]
	s.Empties.Remove(x)
	s.Pos.DoMove(x)
	s.NEmpty--
	s.Height++
	s.nodeType[s.Height] = childNodeType(s.nodeType[s.Height-1], firstChild)
}

// RestoreEndgame reverses the matching UpdateEndgame call.
func (s *State) RestoreEndgame(move Move) {
	x := move.Index
	s.Height--
	s.NEmpty++
	s.Pos.UndoMove(x, move.Flipped)
	s.Empties.Restore(x)
	s.Parity ^= bitboard.QuadrantID[x]
}

// PassMidgame toggles the evaluator side and swaps the position's
// bitboards without touching the empties list, since a pass changes no
// square's occupancy.
func (s *State) PassMidgame() {
	s.Eval.Pass()
	s.Pos.Pass()
	s.Height++
	s.nodeType[s.Height] = childNodeType(s.nodeType[s.Height-1], true)
}

// RestorePassMidgame reverses PassMidgame.
func (s *State) RestorePassMidgame() {
	s.Height--
	s.Pos.Pass()
	s.Eval.Pass()
}

// PassEndgame swaps the position's bitboards only; it is its own
// inverse so the caller may call it again to undo.
func (s *State) PassEndgame() {
	s.Pos.Pass()
}

// StabilityBound returns a cheap (lower, upper) bound on the negamax
// score derived from the corner-stability estimate of each side.
func (s *State) StabilityBound() (lower, upper int32) {
	oppStable := s.Pos.OpponentCornerStability()
	playerStable := s.Pos.CornerStability()
	lower = int32(2*playerStable - ScoreMax)
	upper = int32(ScoreMax - 2*oppStable)
	return lower, upper
}

// PlayerStableDiscs and OpponentStableDiscs expose the fixpoint
// stability count (a lower bound on stable discs) for ETC and stability
// cutoffs.
func (s *State) PlayerStableDiscs() int {
	return s.Pos.CountPlayerStableDiscs()
}

func (s *State) OpponentStableDiscs() int {
	return s.Pos.CountOpponentStableDiscs()
}

// Heuristic evaluates the current position with the incremental
// evaluator at the current ply.
func (s *State) Heuristic() int {
	return s.Eval.Heuristic(s.weights)
}
