package search

import (
	"math/bits"
	"sync/atomic"
	"time"

	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/pattern"
)

// EngineConfig selects a strength level and a couple of diagnostic
// knobs for a single BestMove call.
type EngineConfig struct {
	Level        int
	KeepDate     bool
	MultiPVDepth int
}

// Result is everything BestMove reports about the move it chose.
type Result struct {
	Move        int
	Score       int32
	Depth       int
	Selectivity int
	PV          []int
	Nodes       uint64
	TimeMS      int64
}

// Engine owns the tables and weights shared across every search it
// runs; a single instance may run many searches one after another.
type Engine struct {
	weights *pattern.Weights
	main    *HashTable
	pv      *HashTable
	shallow *HashTable

	stop  int32
	nodes uint64
}

// NewEngine builds an engine with the given weight tables and default
// table sizes.
func NewEngine(weights *pattern.Weights) *Engine {
	return &Engine{
		weights: weights,
		main:    NewHashTable(20),
		pv:      NewHashTable(16),
		shallow: NewHashTable(16),
	}
}

// Stop asks a running search to return as soon as possible with the
// best move found so far.
func (e *Engine) Stop() {
	atomic.StoreInt32(&e.stop, int32(StopOnDemand))
}

func (e *Engine) running() bool {
	return atomic.LoadInt32(&e.stop) == int32(StopRunning)
}

func (e *Engine) addNode() {
	atomic.AddUint64(&e.nodes, 1)
}

// MainTable returns the engine's main transposition table, exposing it
// to callers that want to persist or preload entries (an on-disk cache
// keyed the same way the in-memory table is) without the search package
// itself depending on a storage backend.
func (e *Engine) MainTable() *HashTable {
	return e.main
}

// BestMove runs iterative deepening against pos at the strength
// implied by cfg.Level and returns the chosen move.
func (e *Engine) BestMove(pos bitboard.Position, cfg EngineConfig) (Result, error) {
	start := time.Now()
	atomic.StoreInt32(&e.stop, int32(StopRunning))
	atomic.StoreUint64(&e.nodes, 0)

	if !cfg.KeepDate {
		e.main.Clear()
		e.pv.Clear()
		e.shallow.Clear()
	} else {
		e.main.SoftClear()
		e.pv.SoftClear()
		e.shallow.SoftClear()
	}

	if !pos.HasMoves() {
		if !pos.OpponentHasMoves() {
			score := int32(pos.FinalScore())
			return Result{Move: bitboard.PASS, Score: score, TimeMS: elapsedMS(start)}, nil
		}
		return Result{}, ErrIllegalMove
	}

	s := NewState(pos, e.weights)
	depth, selectivity := Level(cfg.Level, s.NEmpty)

	moves := NewMoveList(pos)
	if moves.Len() == 1 {
		only := moves.Get(0)
		return Result{
			Move:        only.Index,
			Score:       0,
			Depth:       depth,
			Selectivity: selectivity,
			TimeMS:      elapsedMS(start),
		}, nil
	}

	e.sortRootMoves(s, moves, 4)

	guess := int32(0)
	best := moves.Get(0).Index
	bestScore := guess

	startDepth := 2
	if depth >= 4 {
		startDepth = 4
	}
	if startDepth > depth {
		startDepth = depth
	}
	if startDepth%2 != depth%2 {
		startDepth--
		if startDepth < 2 {
			startDepth = depth % 2
			if startDepth == 0 {
				startDepth = 2
			}
		}
	}

	curSelectivity := selectivity
	if depth >= 6 {
		curSelectivity = 0
	}

	for d := startDepth; d <= depth; d += 2 {
		if !e.running() {
			break
		}
		score, mv := e.aspirationSearch(s, moves, d, curSelectivity, guess, cfg.MultiPVDepth)
		if !e.running() {
			break
		}
		guess = score
		bestScore = score
		best = mv

		if abs32(score) >= ScoreMax-1 && s.NEmpty <= depth {
			break
		}
	}

	for curSelectivity < selectivity {
		if !e.running() {
			break
		}
		curSelectivity++
		score, mv := e.aspirationSearch(s, moves, depth, curSelectivity, guess, cfg.MultiPVDepth)
		if !e.running() {
			break
		}
		guess = score
		bestScore = score
		best = mv
	}

	atomic.StoreInt32(&e.stop, int32(StopEnd))

	return Result{
		Move:        best,
		Score:       bestScore,
		Depth:       depth,
		Selectivity: curSelectivity,
		PV:          e.collectPV(pos, depth, curSelectivity),
		Nodes:       atomic.LoadUint64(&e.nodes),
		TimeMS:      elapsedMS(start),
	}, nil
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// sortRootMoves evaluates each root move with a shallow search and
// orders the move list by descending score. The table's recorded
// primary/secondary moves get their cost boosted first, but the final
// order depends on score alone.
func (e *Engine) sortRootMoves(s *State, moves *MoveList, sortDepth int) {
	if data, ok := e.main.Get(s.Pos); ok {
		if data.Move[0] != bitboard.NoMove {
			moves.BoostCost(data.Move[0], true)
		}
		if data.Move[1] != bitboard.NoMove {
			moves.BoostCost(data.Move[1], false)
		}
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, true)
		score := int32(-e.pvsMidgame(s, ScoreMin, ScoreMax, sortDepth, maxSelectivity))
		s.RestoreMidgame(m)
		moves.SetScore(i, score)
	}
	moves.SortByScore()
}

// aspirationSearch runs a narrowing sequence of windowed searches
// around guess, widening whichever side fails until the result lies
// strictly inside the window or the window has exhausted the score
// space.
func (e *Engine) aspirationSearch(s *State, moves *MoveList, depth, selectivity int, guess int32, multiPVDepth int) (int32, int) {
	lowerBound, upperBound := s.StabilityBound()
	alpha := ScoreMin
	if int32(lowerBound)+2 > int32(alpha) {
		alpha = int(lowerBound) + 2
	}
	beta := ScoreMax
	if int32(upperBound)-2 < int32(beta) {
		beta = int(upperBound) - 2
	}
	if s.NEmpty == depth {
		alpha &^= 1
		beta |= 1
	}

	score := guess
	if score < int32(alpha) {
		score = int32(alpha)
	}
	if score > int32(beta) {
		score = int32(beta)
	}

	left, right := int32(1), int32(1)
	lo, hi := int32(alpha), int32(beta)

	for i := 0; ; i++ {
		if !e.running() {
			return score, moves.Get(0).Index
		}

		var a, b int32
		if hi-lo <= 2 || depth <= multiPVDepth {
			a, b = int32(alpha), int32(beta)
		} else {
			a = score - left
			if a < int32(alpha) {
				a = int32(alpha)
			}
			b = score + right
			if b > int32(beta) {
				b = int32(beta)
			}
		}

		result, mv := e.pvsRoot(s, moves, a, b, depth, selectivity)

		if result > a && result < b {
			return result, mv
		}
		if s.NEmpty == depth && result%2 != 0 {
			return result, mv
		}
		if result == score {
			return result, mv
		}
		score = result
		if result <= a {
			left *= 2
		}
		if result >= b {
			right *= 2
		}
		if a == int32(alpha) && b == int32(beta) {
			return result, mv
		}
	}
}

// pvsRoot runs a full principal-variation search over the root move
// list, first move with a full window, the rest with a null-window
// search re-searched on failure, then records the result in both
// tables and returns the best score and move.
func (e *Engine) pvsRoot(s *State, moves *MoveList, alpha, beta int32, depth, selectivity int) (int32, int) {
	s.nodeType[s.Height] = NodePV
	best := int32(ScoreMin - 1)
	bestMove := moves.Get(0).Index
	a := alpha

	for i := 0; i < moves.Len(); i++ {
		if !e.running() {
			break
		}
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)

		var score int32
		if i == 0 {
			score = -e.pvsMidgame(s, -beta, -a, depth-1, selectivity)
		} else {
			score = -e.nwsMidgame(s, -a-1, depth-1, selectivity)
			if score > a && score < beta {
				score = -e.pvsMidgame(s, -beta, -a, depth-1, selectivity)
			}
		}

		s.RestoreMidgame(m)
		moves.SetScore(i, score)

		if score > best {
			best = score
			bestMove = m.Index
			if score > a {
				a = score
			}
		}
	}

	moves.SortByScore()
	moves.SetFirstMove(bestMove)

	e.main.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})
	e.pv.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})

	return best, bestMove
}

// pvsMidgame searches pos to depth with a full [alpha, beta] window,
// falling through to the shallow pattern-based evaluators and the
// end-game solver as the remaining look-ahead allows.
func (e *Engine) pvsMidgame(s *State, alpha, beta int32, depth, selectivity int) int32 {
	e.addNode()
	if !e.running() {
		return alpha
	}

	if s.NEmpty == 0 {
		return int32(s.Heuristic())
	}
	if depth == 0 {
		return int32(s.Heuristic())
	}
	if depth == 2 && s.NEmpty > 2 {
		return e.eval2(s, alpha, beta)
	}
	if s.NEmpty <= depth {
		return e.pvsEndgame(s, alpha, beta)
	}

	if alpha >= pvsStabilityThreshold[s.NEmpty] {
		stabilityScore := int32(ScoreMax - 2*s.OpponentStableDiscs())
		if stabilityScore <= alpha {
			return stabilityScore
		}
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassMidgame()
		if s.Pos.HasMoves() {
			score := -e.pvsMidgame(s, -beta, -alpha, depth, selectivity)
			s.RestorePassMidgame()
			return score
		}
		score := int32(s.Pos.FinalScore())
		s.RestorePassMidgame()
		return score
	}

	if moves.Len() > 1 {
		e.scoreMovesForSort(s, moves, depth-1, selectivity)
		moves.SortByScore()
	}

	best := int32(ScoreMin - 1)
	bestMove := moves.Get(0).Index
	a := alpha

	for i := 0; i < moves.Len(); i++ {
		if !e.running() {
			break
		}
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)

		var score int32
		if i == 0 {
			score = -e.pvsMidgame(s, -beta, -a, depth-1, selectivity)
		} else {
			score = -e.nwsMidgame(s, -a-1, depth-1, selectivity)
			if score > a && score < beta {
				score = -e.pvsMidgame(s, -beta, -a, depth-1, selectivity)
			}
		}

		s.RestoreMidgame(m)

		if score > best {
			best = score
			bestMove = m.Index
			if score > a {
				a = score
			}
			if a >= beta {
				break
			}
		}
	}

	e.main.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})
	if s.Height <= 4 {
		e.pv.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})
	}

	return best
}

func (e *Engine) scoreMovesForSort(s *State, moves *MoveList, sortDepth, selectivity int) {
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, false)
		score := int32(-e.nwsMidgame(s, ScoreMax-1, sortDepth, selectivity))
		s.RestoreMidgame(m)
		moves.SetScore(i, score)
	}
}

// nwsMidgame proves whether pos's value is <= alpha or > alpha with a
// null window, applying stability cutoffs, transposition cutoffs,
// ProbCut and ETC before falling back to full recursion.
func (e *Engine) nwsMidgame(s *State, alpha int32, depth, selectivity int) int32 {
	e.addNode()
	if !e.running() {
		return alpha
	}
	beta := alpha + 1

	if s.NEmpty == 0 {
		return int32(s.Heuristic())
	}
	if depth <= 0 {
		return int32(s.Heuristic())
	}
	if depth <= 3 && s.NEmpty > depth {
		return e.nwsShallow(s, alpha, depth, selectivity)
	}
	if s.NEmpty <= depth {
		return e.nwsEndgame(s, alpha)
	}

	if alpha >= nwsStabilityThreshold[s.NEmpty] {
		stabilityScore := int32(ScoreMax - 2*s.OpponentStableDiscs())
		if stabilityScore <= alpha {
			return stabilityScore
		}
	}

	if data, ok := e.main.Get(s.Pos); ok && int(data.Depth) >= depth && int(data.Selectivity) >= selectivity {
		if alpha < data.Lower {
			return data.Lower
		}
		if alpha >= data.Upper {
			return data.Upper
		}
	}

	if selectivity < maxSelectivity {
		if cut, ok := e.probCut(s, alpha, beta, depth, selectivity, 0); ok {
			return cut
		}
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassMidgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.nwsMidgame(s, -beta, depth, selectivity)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.RestorePassMidgame()
		return score
	}

	if moves.Len() > 1 {
		e.scoreMovesForSort(s, moves, depth-1, selectivity)
		moves.SortByScore()
	}

	if depth > 5 {
		if cut, ok := e.etc(s, moves, alpha, depth, selectivity); ok {
			return cut
		}
	}

	best := int32(ScoreMin - 1)
	bestMove := bitboard.NoMove
	for i := 0; i < moves.Len(); i++ {
		if !e.running() {
			break
		}
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)
		score := -e.nwsMidgame(s, -beta, depth-1, selectivity)
		s.RestoreMidgame(m)

		if score > best {
			best = score
			bestMove = m.Index
			if best >= beta {
				break
			}
		}
	}

	e.main.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})
	if s.Height <= 2 {
		e.pv.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: beta, Depth: int8(depth), Selectivity: int8(selectivity), Score: best, Move: bestMove})
	}

	return best
}

// eval2 does a full 2-ply alpha-beta search using the depth-1
// (eval1) evaluator directly, with no move ordering or tables.
func (e *Engine) eval2(s *State, alpha, beta int32) int32 {
	e.addNode()
	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassMidgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.eval2(s, -beta, -alpha)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.RestorePassMidgame()
		return score
	}

	best := int32(ScoreMin - 1)
	a := alpha
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)
		score := -e.eval1(s)
		s.RestoreMidgame(m)
		if score > best {
			best = score
			if score > a {
				a = score
			}
			if a >= beta {
				break
			}
		}
	}
	return best
}

// eval1 picks the best immediate heuristic score one ply deep, treating
// an opponent wipeout as an immediate win.
func (e *Engine) eval1(s *State) int32 {
	e.addNode()
	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassMidgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.eval1(s)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.RestorePassMidgame()
		return score
	}

	best := int32(ScoreMin - 1)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)
		var score int32
		if s.Pos.Player == 0 {
			score = ScoreMax
		} else {
			score = int32(-s.Heuristic())
		}
		s.RestoreMidgame(m)
		if score > best {
			best = score
		}
	}
	return best
}

// probCut attempts a shallow-search forward-pruning cut around beta
// (and symmetrically around alpha), per the error model in
// internal/pattern. It returns without probing when level is 2 or more;
// nwsMidgame always passes level 0, so ProbCut searches nested inside
// a ProbCut probe are not capped.
func (e *Engine) probCut(s *State, alpha, beta int32, depth, selectivity, level int) (int32, bool) {
	if level >= 2 {
		return 0, false
	}

	probcutDepth := 2*(depth/4) + depth%2
	if probcutDepth <= 0 {
		probcutDepth = depth - 2
		if probcutDepth <= 0 {
			return 0, false
		}
	}

	t := selectivityTable[selectivity]
	errEval := t*0.5*(pattern.Sigma(s.NEmpty, depth, 0)+pattern.Sigma(s.NEmpty, depth, probcutDepth)) + 0.5
	errProbe := t*pattern.Sigma(s.NEmpty, depth, probcutDepth) + 0.5

	shallow := int32(s.Heuristic())

	if float64(shallow) >= float64(beta)-errEval && float64(beta)+errProbe < ScoreMax {
		probBeta := int32(float64(beta) + errProbe)
		s.nodeType[s.Height] = NodeCut
		score := e.nwsMidgame(s, probBeta-1, probcutDepth, selectivity)
		if score >= probBeta {
			return beta, true
		}
	}

	if float64(shallow) <= float64(alpha)+errEval && float64(alpha)-errProbe > ScoreMin {
		probAlpha := int32(float64(alpha) - errProbe)
		s.nodeType[s.Height] = NodeCut
		score := e.nwsMidgame(s, probAlpha, probcutDepth, selectivity)
		if score <= probAlpha {
			return alpha, true
		}
	}

	return 0, false
}

// etc (enhanced transposition cutoff) probes each candidate child in
// the hash table before searching it, hoping to cut without recursing.
func (e *Engine) etc(s *State, moves *MoveList, alpha int32, depth, selectivity int) (int32, bool) {
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, false)

		if alpha <= -nwsStabilityThreshold[s.NEmpty] {
			stabilityScore := int32(2*s.PlayerStableDiscs() - ScoreMax)
			if stabilityScore > alpha {
				s.RestoreMidgame(m)
				e.main.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: alpha + 1, Depth: int8(depth), Selectivity: int8(selectivity), Score: stabilityScore, Move: m.Index})
				return stabilityScore, true
			}
		}

		if data, ok := e.main.Get(s.Pos); ok && int(data.Depth) >= depth-1 && int(data.Selectivity) >= selectivity {
			childUpper := -data.Upper
			if childUpper > alpha {
				s.RestoreMidgame(m)
				e.main.Store(s.Pos, StoreArgs{Alpha: alpha, Beta: alpha + 1, Depth: int8(depth), Selectivity: int8(selectivity), Score: childUpper, Move: m.Index})
				return childUpper, true
			}
		}

		s.RestoreMidgame(m)
	}
	return 0, false
}

// nwsShallow handles the 1-3 ply null-window search band by plain
// recursion in move-list order, with no transposition table lookups or
// stores.
func (e *Engine) nwsShallow(s *State, alpha int32, depth, selectivity int) int32 {
	beta := alpha + 1
	if s.NEmpty == 0 {
		return int32(s.Heuristic())
	}
	if depth == 0 {
		return int32(s.Heuristic())
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassMidgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.nwsShallow(s, -beta, depth, selectivity)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.RestorePassMidgame()
		return score
	}

	best := int32(ScoreMin - 1)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateMidgame(m, i == 0)
		score := -e.nwsShallow(s, -beta, depth-1, selectivity)
		s.RestoreMidgame(m)
		if score > best {
			best = score
			if best >= beta {
				break
			}
		}
	}
	return best
}

// pvsEndgame is the full-window entry into the exact solver.
func (e *Engine) pvsEndgame(s *State, alpha, beta int32) int32 {
	e.addNode()
	if !e.running() {
		return alpha
	}
	if s.NEmpty == 0 {
		return int32(s.Pos.FinalScore())
	}
	if s.NEmpty <= depthToShallowSearch {
		return e.endgameShallow(s, alpha, beta)
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassEndgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.pvsEndgame(s, -beta, -alpha)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.PassEndgame()
		return score
	}

	best := int32(ScoreMin - 1)
	a := alpha
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateEndgame(m, i == 0)
		var score int32
		if i == 0 {
			score = -e.pvsEndgame(s, -beta, -a)
		} else {
			score = -e.nwsEndgame(s, -a-1)
			if score > a && score < beta {
				score = -e.pvsEndgame(s, -beta, -a)
			}
		}
		s.RestoreEndgame(m)
		if score > best {
			best = score
			if score > a {
				a = score
			}
			if a >= beta {
				break
			}
		}
	}
	return best
}

// nwsEndgame proves whether pos's exact value is <= alpha or > alpha.
func (e *Engine) nwsEndgame(s *State, alpha int32) int32 {
	e.addNode()
	if !e.running() {
		return alpha
	}
	beta := alpha + 1

	if s.NEmpty == 0 {
		return int32(s.Pos.FinalScore())
	}
	if s.NEmpty <= depthToShallowSearch {
		return e.endgameShallow(s, alpha, beta)
	}

	if alpha >= nwsStabilityThreshold[s.NEmpty] {
		stabilityScore := int32(ScoreMax - 2*s.OpponentStableDiscs())
		if stabilityScore <= alpha {
			return stabilityScore
		}
	}

	if data, ok := e.main.Get(s.Pos); ok && int(data.Depth) >= s.NEmpty {
		if alpha < data.Lower {
			return data.Lower
		}
		if alpha >= data.Upper {
			return data.Upper
		}
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassEndgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.nwsEndgame(s, -beta)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.PassEndgame()
		return score
	}

	best := int32(ScoreMin - 1)
	bestMove := bitboard.NoMove
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateEndgame(m, i == 0)
		score := -e.nwsEndgame(s, -beta)
		s.RestoreEndgame(m)
		if score > best {
			best = score
			bestMove = m.Index
			if best >= beta {
				break
			}
		}
	}

	e.main.Store(s.Pos, StoreArgs{Alpha: int32(alpha), Beta: int32(beta), Depth: int8(s.NEmpty), Selectivity: maxSelectivity, Score: best, Move: bestMove})
	return best
}

// endgameShallow solves positions with at most depthToShallowSearch
// empties. With 5 or more empties it searches a MoveList in its own
// order, with no parity-based ordering; at 4 or fewer it delegates to
// solve4/solve3/solve2/solve1.
func (e *Engine) endgameShallow(s *State, alpha, beta int32) int32 {
	e.addNode()
	if !e.running() {
		return alpha
	}

	switch s.NEmpty {
	case 0:
		return int32(s.Pos.FinalScore())
	case 1:
		return e.solve1(s.Pos)
	case 2:
		return e.solve2(s, alpha, beta)
	case 3:
		return e.solve3(s, alpha, beta)
	case 4:
		return e.solve4(s, alpha, beta)
	}

	moves := NewMoveList(s.Pos)
	if moves.Len() == 0 {
		s.PassEndgame()
		var score int32
		if s.Pos.HasMoves() {
			score = -e.endgameShallow(s, -beta, -alpha)
		} else {
			score = int32(s.Pos.FinalScore())
		}
		s.PassEndgame()
		return score
	}

	best := int32(ScoreMin - 1)
	a := alpha
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		s.UpdateEndgame(m, i == 0)
		score := -e.endgameShallow(s, -beta, -a)
		s.RestoreEndgame(m)
		if score > best {
			best = score
			if score > a {
				a = score
			}
			if a >= beta {
				break
			}
		}
	}
	return best
}

// solve4, solve3 and solve2 are endgame searches over exactly that many
// empty squares; none is unrolled, all three call the generic solveN,
// which iterates the empties list directly instead of building a
// MoveList. solve2 skips the odd-parity-first pass.
func (e *Engine) solve4(s *State, alpha, beta int32) int32 {
	return e.solveN(s, alpha, beta, true)
}

func (e *Engine) solve3(s *State, alpha, beta int32) int32 {
	return e.solveN(s, alpha, beta, true)
}

func (e *Engine) solve2(s *State, alpha, beta int32) int32 {
	return e.solveN(s, alpha, beta, false)
}

// solveN enumerates the remaining empties directly (optionally
// odd-parity squares first) and recurses, used by solve4/solve3/solve2.
func (e *Engine) solveN(s *State, alpha, beta int32, parityFirst bool) int32 {
	e.addNode()

	best := int32(ScoreMin - 1)
	a := alpha
	played := false
	var tried uint64
	cutoff := false

	if parityFirst {
		it := s.Empties.IterParity(s.Parity)
		for !cutoff {
			x, bit, ok := it.Next()
			if !ok {
				break
			}
			tried |= bit
			flipped := s.Pos.GetFlippedFast(x)
			if flipped == 0 {
				continue
			}
			played = true
			m := Move{Index: x, Flipped: flipped}
			s.UpdateEndgame(m, true)
			score := -e.endgameShallow(s, -beta, -a)
			s.RestoreEndgame(m)
			if score > best {
				best = score
				if score > a {
					a = score
				}
				if a >= beta {
					cutoff = true
				}
			}
		}
	}

	allIt := s.Empties.IterAll()
	for !cutoff {
		x, bit, ok := allIt.Next()
		if !ok {
			break
		}
		if tried&bit != 0 {
			continue
		}
		flipped := s.Pos.GetFlippedFast(x)
		if flipped == 0 {
			continue
		}
		played = true
		m := Move{Index: x, Flipped: flipped}
		s.UpdateEndgame(m, true)
		score := -e.endgameShallow(s, -beta, -a)
		s.RestoreEndgame(m)
		if score > best {
			best = score
			if score > a {
				a = score
			}
			if a >= beta {
				cutoff = true
			}
		}
	}

	if !played {
		s.PassEndgame()
		if s.Pos.HasMoves() {
			best = -e.solveN(s, -beta, -alpha, parityFirst)
		} else {
			best = int32(s.Pos.FinalScore())
		}
		s.PassEndgame()
	}

	return best
}

// solve1 computes the exact score, for the side to move, of a position
// with one empty square, without recursing: the player plays there if
// legal (adding twice the flip count to the score it would have if the
// square were already its own), otherwise the opponent does, otherwise
// the square stays empty and goes to whoever leads.
func (e *Engine) solve1(pos bitboard.Position) int32 {
	e.addNode()
	x := bits.TrailingZeros64(^(pos.Player | pos.Opponent))

	score := int32(ScoreMax - 2*bits.OnesCount64(pos.Opponent))

	flipped := bits.OnesCount64(pos.GetFlippedFast(x))
	if flipped != 0 {
		return score + int32(2*flipped)
	}

	oppPos := bitboard.FromBitboards(pos.Opponent, pos.Player)
	oppFlipped := bits.OnesCount64(oppPos.GetFlippedFast(x))
	if oppFlipped != 0 {
		return score - 2 - int32(2*oppFlipped)
	}

	if score > 0 {
		return score
	}
	return score - 2
}

// collectPV walks the PV table (falling back to the main table) from
// pos along the chosen moves, bounded by the search's own depth and
// selectivity, to report a principal-variation line alongside the score.
func (e *Engine) collectPV(pos bitboard.Position, depth, selectivity int) []int {
	var pv []int
	cur := pos
	for step := 0; step < depth && step < 60; step++ {
		data, ok := e.pv.Get(cur)
		if !ok {
			data, ok = e.main.Get(cur)
		}
		if !ok || data.Move[0] == bitboard.NoMove {
			break
		}
		move := data.Move[0]
		pv = append(pv, move)
		if !cur.IsValidMove(move) {
			break
		}
		cur.DoMove(move)
		if !cur.HasMoves() {
			if !cur.OpponentHasMoves() {
				break
			}
			cur.Pass()
		}
	}
	return pv
}
