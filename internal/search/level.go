package search

// NodeType guides sort-depth choices and ProbCut direction: PV children
// of a PV node stay PV, other children of a PV node become Cut,
// children of a Cut node become All, children of an All node become
// Cut.
type NodeType int

const (
	NodePV NodeType = iota
	NodeCut
	NodeAll
)

func childNodeType(parent NodeType, firstChild bool) NodeType {
	switch parent {
	case NodePV:
		if firstChild {
			return NodePV
		}
		return NodeCut
	case NodeCut:
		return NodeAll
	default:
		return NodeCut
	}
}

// StopState is the search's cooperative cancellation flag.
type StopState int32

const (
	StopRunning StopState = iota
	StopOnDemand
	StopTimeout
	StopPondering
	StopParallelSearch
	StopEnd
)

// maxSelectivity is the selectivity index meaning "no forward pruning".
const maxSelectivity = 5

// selectivityTable gives, for each selectivity index 0..4, the
// error-budget multiplier t used by ProbCut; index 5 (no pruning) never
// looks this table up.
var selectivityTable = [5]float64{1.1, 1.5, 2.0, 2.6, 3.3}

// levelEntry is the (depth, selectivity) pair a strength level and an
// empty-square count resolve to.
type levelEntry struct {
	depth       int
	selectivity int
}

// levelTable maps level (0..60) x empties (0..60) to a search depth and
// starting selectivity. For low levels, depth grows linearly with the
// level at full selectivity (no pruning, the safest and slowest mode).
// Past level 10, the depth equals the level, capped at the empty count
// (so the endgame is solved exactly once the level reaches it), and the
// selectivity index drops (more pruning) the further the empty count
// exceeds the depth.
var levelTable [61][61]levelEntry

func init() {
	for level := 0; level <= 60; level++ {
		for empties := 0; empties <= 60; empties++ {
			levelTable[level][empties] = computeLevel(level, empties)
		}
	}
}

func computeLevel(level, empties int) levelEntry {
	if level <= 10 {
		depth := level
		if depth > empties {
			depth = empties
		}
		return levelEntry{depth: depth, selectivity: maxSelectivity}
	}

	depth := level - 10 + 10
	if depth > empties {
		depth = empties
	}

	margin := empties - depth
	selectivity := maxSelectivity
	switch {
	case margin <= 0:
		selectivity = maxSelectivity
	case margin <= 4:
		selectivity = 4
	case margin <= 8:
		selectivity = 3
	case margin <= 12:
		selectivity = 2
	case margin <= 18:
		selectivity = 1
	default:
		selectivity = 0
	}

	return levelEntry{depth: depth, selectivity: selectivity}
}

// Level returns the (depth, selectivity) a given strength level resolves
// to for the given number of empty squares.
func Level(level, empties int) (depth, selectivity int) {
	if level < 0 {
		level = 0
	}
	if level > 60 {
		level = 60
	}
	if empties < 0 {
		empties = 0
	}
	if empties > 60 {
		empties = 60
	}
	e := levelTable[level][empties]
	return e.depth, e.selectivity
}

// pvsStabilityThreshold and nwsStabilityThreshold give, per empty-square
// count, the alpha/beta value above which a cheap stability bound alone
// can prove a cutoff without searching.
var pvsStabilityThreshold [61]int32
var nwsStabilityThreshold [61]int32

func init() {
	for empties := 0; empties <= 60; empties++ {
		// The fewer empties remain, the more of the board can plausibly
		// already be stable, so the threshold at which the stability
		// bound alone can cut is tightened as empties shrinks.
		pvsStabilityThreshold[empties] = int32(ScoreMax - 2*(empties/2))
		nwsStabilityThreshold[empties] = int32(ScoreMax - 2*(empties/3))
	}
}

// depthToShallowSearch is the empty-square count at or below which the
// end-game solver switches from generic NWS-endgame recursion to the
// empties-list-driven shallow solver.
const depthToShallowSearch = 7
