package search

import "errors"

// ErrIllegalMove marks a BestMove call on a position where the side to
// move has no legal move but the opponent does. A position with no legal
// move for either side is not an error: BestMove returns PASS with the
// final score.
var ErrIllegalMove = errors.New("search: best_move requested on a position where the side to move must pass")

// ErrNotRunning marks a search that was asked to continue after its stop
// flag had already been set to a terminal state.
var ErrNotRunning = errors.New("search: engine is not running")
