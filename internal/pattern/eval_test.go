package pattern

import (
	"testing"

	"github.com/lk16/swap/internal/bitboard"
)

// evalTestPositions mirrors the reference evaluator's fixture generator:
// the starting position plus a handful of positions reached by playing
// a few opening moves, exercising a mix of empty, player and opponent
// squares across all 47 features.
func evalTestPositions() []bitboard.Position {
	positions := []bitboard.Position{bitboard.New()}

	p := bitboard.New()
	for _, sq := range []int{bitboard.D3, bitboard.C3, bitboard.C4} {
		if !p.IsValidMove(sq) {
			continue
		}
		p.DoMove(sq)
		positions = append(positions, p)
	}

	return positions
}

func TestNewEvalMatchesFreshScan(t *testing.T) {
	for _, pos := range evalTestPositions() {
		e := NewEval(pos)
		for i := 0; i < NFeatures; i++ {
			var want int32
			for _, sq := range F2X[i] {
				want = want*3 + int32(pos.GetSquareColor(sq))
			}
			want += Offset[i]
			if e.features[i] != want {
				t.Fatalf("feature %d = %d, want %d\n%s", i, e.features[i], want, pos.String())
			}
		}
	}
}

func TestDoMoveUndoMoveRoundTrip(t *testing.T) {
	pos := bitboard.New()
	e := NewEval(pos)
	before := e.features

	move := bitboard.D3
	flipped := pos.GetFlipped(move)
	e.DoMove(move, flipped)

	if e.features == before {
		t.Fatal("DoMove left features unchanged")
	}
	if e.player != 1 {
		t.Fatalf("player = %d, want 1 after one move", e.player)
	}

	e.UndoMove(move, flipped)
	if e.features != before {
		t.Fatalf("UndoMove did not restore features: got %v, want %v", e.features, before)
	}
	if e.player != 0 {
		t.Fatalf("player = %d, want 0 after undo", e.player)
	}
}

func TestDoMoveMatchesFreshScanAfterMove(t *testing.T) {
	pos := bitboard.New()
	e := NewEval(pos)

	move := bitboard.D3
	flipped := pos.DoMove(move)
	e.DoMove(move, flipped)

	// Features stay encoded from side 0's point of view, so the fresh
	// scan is taken with the sides swapped back to the mover's.
	fresh := pos
	fresh.Pass()
	want := NewEval(fresh)
	if e.features != want.features {
		t.Fatalf("incremental update diverged from fresh scan:\nincremental: %v\nfresh: %v", e.features, want.features)
	}
}

func TestPassTogglesPlayerOnly(t *testing.T) {
	pos := bitboard.New()
	e := NewEval(pos)
	before := e.features

	e.Pass()
	if e.features != before {
		t.Fatal("Pass must not change feature values")
	}
	if e.player != 1 {
		t.Fatalf("player = %d, want 1 after Pass", e.player)
	}

	e.Pass()
	if e.player != 0 {
		t.Fatalf("player = %d, want 0 after second Pass", e.player)
	}
}

func TestSigmaMonotonicInDepth(t *testing.T) {
	low := Sigma(30, 2, 2)
	high := Sigma(30, 10, 2)
	if high <= low {
		t.Fatalf("expected sigma to grow with search depth: sigma(depth=2)=%v sigma(depth=10)=%v", low, high)
	}
}

func TestOpponentFeatureValueIsInvolution(t *testing.T) {
	for feature := 0; feature < NFeatures; feature++ {
		size := int(MaxValue[feature]-Offset[feature]) + 1
		for v := 0; v < size; v += 7 {
			swapped := opponentFeatureValue(feature, v)
			back := opponentFeatureValue(feature, swapped)
			if back != v {
				t.Fatalf("feature %d value %d: swapping twice gave %d, want %d", feature, v, back, v)
			}
		}
	}
}
