package search

import "github.com/lk16/swap/internal/bitboard"

// emptyNode is one arena slot of the empties list: a board square, its
// singleton bitset, its quadrant identifier for parity-based ordering,
// and the indices (into the same arena) of its neighbors in list order.
type emptyNode struct {
	x        int
	bit      uint64
	quadrant uint32
	prev     int
	next     int
}

// emptiesSentinel is the arena index used as the circular list's head
// sentinel; it never represents a real square.
const emptiesSentinel = 0

// EmptiesList is a circular doubly-linked list of the empty squares of
// a position, stored in a pre-allocated arena so remove/restore are
// O(1) index operations rather than allocations. xToNode maps a square
// to its arena slot.
type EmptiesList struct {
	arena   [65]emptyNode
	xToNode [64]int
}

// NewEmptiesList builds the list for pos, seeded in the fixed
// bitboard.PresortedSquares order (corners first, center last) and
// filtered down to the squares that are actually empty.
func NewEmptiesList(pos bitboard.Position) *EmptiesList {
	el := &EmptiesList{}
	el.arena[emptiesSentinel] = emptyNode{x: -1}

	occupied := pos.Player | pos.Opponent
	prev := emptiesSentinel
	slot := 1
	for _, x := range bitboard.PresortedSquares {
		bit := uint64(1) << uint(x)
		if occupied&bit != 0 {
			continue
		}
		el.arena[slot] = emptyNode{
			x:        x,
			bit:      bit,
			quadrant: bitboard.QuadrantID[x],
			prev:     prev,
			next:     emptiesSentinel,
		}
		el.arena[prev].next = slot
		el.xToNode[x] = slot
		prev = slot
		slot++
	}
	el.arena[emptiesSentinel].prev = prev
	if prev != emptiesSentinel {
		el.arena[prev].next = emptiesSentinel
	}
	return el
}

// Remove unlinks the node for square x from the list in O(1); its
// neighbor pointers are left untouched so Restore can relink it later.
func (el *EmptiesList) Remove(x int) {
	i := el.xToNode[x]
	n := &el.arena[i]
	el.arena[n.prev].next = n.next
	el.arena[n.next].prev = n.prev
}

// Restore relinks the node for square x back between its remembered
// neighbors, reversing the matching Remove.
func (el *EmptiesList) Restore(x int) {
	i := el.xToNode[x]
	n := &el.arena[i]
	el.arena[n.prev].next = i
	el.arena[n.next].prev = i
}

// EmptiesIterator walks the list starting from the sentinel's next
// pointer, optionally filtered to one quadrant parity class.
type EmptiesIterator struct {
	el        *EmptiesList
	cur       int
	parity    uint32
	filterOn  bool
}

// IterAll returns an iterator over every empty square, in list order.
func (el *EmptiesList) IterAll() *EmptiesIterator {
	return &EmptiesIterator{el: el, cur: el.arena[emptiesSentinel].next}
}

// IterParity returns an iterator over empty squares whose quadrant bit
// is set in the current position parity xor (quadrants holding an odd
// number of empties), used to prefer odd-parity squares during end-game
// move ordering.
func (el *EmptiesList) IterParity(parity uint32) *EmptiesIterator {
	return &EmptiesIterator{el: el, cur: el.arena[emptiesSentinel].next, parity: parity, filterOn: true}
}

// Next returns the next square (and its bit) in the iteration, or
// (-1, 0, false) once exhausted.
func (it *EmptiesIterator) Next() (int, uint64, bool) {
	for it.cur != emptiesSentinel {
		n := it.el.arena[it.cur]
		it.cur = n.next
		if it.filterOn && n.quadrant&it.parity == 0 {
			continue
		}
		return n.x, n.bit, true
	}
	return -1, 0, false
}

// Quadrant returns the quadrant identifier of square x.
func (el *EmptiesList) Quadrant(x int) uint32 {
	return el.arena[el.xToNode[x]].quadrant
}
