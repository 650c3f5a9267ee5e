package search

import "github.com/lk16/swap/internal/bitboard"

// Move is one candidate move considered by the search: the square
// played (or bitboard.PASS), the discs it would flip, and two ordering
// keys mutated in place as the search learns more about it.
type Move struct {
	Index   int
	Flipped uint64
	Score   int32
	Cost    uint32
}

// costPrimary and costSecondary are the cost values given to the
// transposition table's primary and secondary recorded moves so that a
// cost-based sort always lifts them to the front, ahead of any cost a
// real search can accumulate.
const (
	costPrimary   = ^uint32(0)
	costSecondary = ^uint32(0) - 1
)

// MoveList is a fixed-capacity, once-built ordered sequence of the
// legal moves available from one position. Moves are reordered in
// place; none are added or removed after construction.
type MoveList struct {
	moves [64]Move
	n     int
}

// NewMoveList builds the list of legal moves for pos, computing each
// move's flip set but leaving Score and Cost at zero.
func NewMoveList(pos bitboard.Position) *MoveList {
	ml := &MoveList{}
	it := pos.IterMoveIndices()
	for {
		sq, ok := it.Next()
		if !ok {
			break
		}
		ml.moves[ml.n] = Move{Index: sq, Flipped: pos.GetFlippedFast(sq)}
		ml.n++
	}
	return ml
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.n
}

// Get returns the move at position i in current order.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// SetScore sets the ordering score of the move at position i.
func (ml *MoveList) SetScore(i int, score int32) {
	ml.moves[i].Score = score
}

// SetCost sets the ordering cost of the move at position i.
func (ml *MoveList) SetCost(i int, cost uint32) {
	ml.moves[i].Cost = cost
}

// BoostCost promotes the move playing at index to the transposition
// table's primary or secondary cost tier, used to pull the table's
// recorded best moves to the front of a cost-ordered list.
func (ml *MoveList) BoostCost(index int, primary bool) {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i].Index == index {
			if primary {
				ml.moves[i].Cost = costPrimary
			} else {
				ml.moves[i].Cost = costSecondary
			}
			return
		}
	}
}

// SortByScore reorders the list by descending score.
func (ml *MoveList) SortByScore() {
	ml.sort(func(a, b Move) bool { return a.Score > b.Score })
}

// SortByCost reorders the list by descending cost.
func (ml *MoveList) SortByCost() {
	ml.sort(func(a, b Move) bool { return a.Cost > b.Cost })
}

func (ml *MoveList) sort(less func(a, b Move) bool) {
	for i := 1; i < ml.n; i++ {
		v := ml.moves[i]
		j := i - 1
		for j >= 0 && less(v, ml.moves[j]) {
			ml.moves[j+1] = ml.moves[j]
			j--
		}
		ml.moves[j+1] = v
	}
}

// SetFirstMove moves the entry playing at index to the front of the
// list, shifting the rest down by one, without otherwise reordering.
func (ml *MoveList) SetFirstMove(index int) {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i].Index == index {
			if i == 0 {
				return
			}
			v := ml.moves[i]
			copy(ml.moves[1:i+1], ml.moves[0:i])
			ml.moves[0] = v
			return
		}
	}
}
