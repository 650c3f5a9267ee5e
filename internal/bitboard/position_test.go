package bitboard

import "testing"

func TestNewPositionHasFourMoves(t *testing.T) {
	pos := New()
	moves := pos.GetMoves()
	count := 0
	for _, sq := range []int{D3, C4, F5, E6} {
		if moves&(uint64(1)<<uint(sq)) == 0 {
			t.Errorf("expected %d to be a legal opening move", sq)
		} else {
			count++
		}
	}
	if count != 4 {
		t.Fatalf("expected 4 legal opening moves, found %d among the checked squares", count)
	}
	if pos.CountMoves() != 4 {
		t.Fatalf("CountMoves() = %d, want 4", pos.CountMoves())
	}
}

func TestGetFlippedMatchesFastLookup(t *testing.T) {
	for _, tc := range moveTestCases() {
		moves := tc.GetMoves()
		it := tc.IterMoveIndices()
		for {
			sq, ok := it.Next()
			if !ok {
				break
			}
			if moves&(uint64(1)<<uint(sq)) == 0 {
				continue
			}
			slow := tc.GetFlipped(sq)
			fast := GetFlippedFast(tc.Player, tc.Opponent, sq)
			if slow != fast {
				t.Fatalf("flip mismatch at square %d:\nposition:\n%sslow:\n%sfast:\n%s",
					sq, tc.String(), PrintBitset(slow), PrintBitset(fast))
			}
		}
	}
}

// moveTestCases builds a battery of single-ray positions covering every
// square, every direction, and every run length, matching the Rust
// reference's move_test_cases fixture generator.
func moveTestCases() []Position {
	directions := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	var cases []Position
	for i := 0; i < 64; i++ {
		x, y := i%8, i/8
		for _, d := range directions {
			for distance := 1; distance <= 6; distance++ {
				moveX := x + (distance+1)*d[0]
				moveY := y + (distance+1)*d[1]
				if moveX < 0 || moveX > 7 || moveY < 0 || moveY > 7 {
					continue
				}

				player := uint64(1) << uint(i)
				var opponent uint64
				for dist := 1; dist <= distance; dist++ {
					idx := (y + dist*d[1]) * 8 + (x + dist*d[0])
					opponent |= uint64(1) << uint(idx)
				}

				cases = append(cases, FromBitboards(player, opponent))
			}
		}
	}
	cases = append(cases, New())
	return cases
}

func TestDoMoveUndoMoveRoundTrip(t *testing.T) {
	pos := New()
	original := pos

	flipped := pos.DoMove(D3)
	if pos == original {
		t.Fatal("DoMove did not change the position")
	}

	pos.UndoMove(D3, flipped)
	if pos != original {
		t.Fatalf("UndoMove did not restore the position: got %+v, want %+v", pos, original)
	}
}

func TestDoMoveSwapsSideToMove(t *testing.T) {
	pos := New()
	playerBefore, opponentBefore := pos.Player, pos.Opponent

	pos.DoMove(D3)

	// The side that just moved becomes the opponent of the new position.
	if pos.Opponent&(playerBefore|opponentBefore) == 0 {
		t.Fatalf("expected some of the pre-move discs to belong to the new opponent")
	}
}

func TestPassSwapsSides(t *testing.T) {
	pos := FromBitboards(0x1, 0x2)
	pos.Pass()
	if pos.Player != 0x2 || pos.Opponent != 0x1 {
		t.Fatalf("Pass() = %+v, want player=0x2 opponent=0x1", pos)
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name     string
		player   uint64
		opponent uint64
		want     int
	}{
		{"player wins all 64", 0xFFFFFFFFFFFFFFFF, 0, 64},
		{"draw at 32-32", 0x00000000FFFFFFFF, 0xFFFFFFFF00000000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := FromBitboards(tt.player, tt.opponent)
			if got := pos.FinalScore(); got != tt.want {
				t.Errorf("FinalScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsGameEnd(t *testing.T) {
	full := FromBitboards(0x00000000FFFFFFFF, 0xFFFFFFFF00000000)
	if !full.IsGameEnd() {
		t.Fatal("expected a fully occupied board to be a game end")
	}
	if New().IsGameEnd() {
		t.Fatal("expected the opening position to not be a game end")
	}
}

func TestCornerStabilityCountsOwnedCornerAndNeighbors(t *testing.T) {
	// A1 owned, plus its two edge neighbors B1 and A2.
	pos := FromBitboards(uint64(1)<<A1|uint64(1)<<B1|uint64(1)<<A2, 0)
	if got := pos.CornerStability(); got != 3 {
		t.Fatalf("CornerStability() = %d, want 3", got)
	}
}

func TestEdgeStabilityRequiresFullEdge(t *testing.T) {
	// Partial top edge: no stability credited yet.
	partial := FromBitboards(uint64(1)<<A1|uint64(1)<<B1, 0)
	if got := partial.EdgeStability(); got != 0 {
		t.Fatalf("EdgeStability() on a partial edge = %d, want 0", got)
	}

	// Fully occupied top edge, all owned by the player to move.
	var topRow uint64
	for _, sq := range edgeLines[0] {
		topRow |= uint64(1) << uint(sq)
	}
	full := FromBitboards(topRow, 0)
	if got := full.EdgeStability(); got != 8 {
		t.Fatalf("EdgeStability() on a full edge = %d, want 8", got)
	}
}

func TestFullStabilityOnFullBoardEqualsDiscCount(t *testing.T) {
	pos := FromBitboards(0x00000000FFFFFFFF, 0xFFFFFFFF00000000)
	if got := FullStability(pos.Player, pos.Opponent); got != 64 {
		t.Fatalf("FullStability() on a full board = %d, want 64", got)
	}
}

func TestFullStabilityNeverExceedsDiscCount(t *testing.T) {
	for _, tc := range moveTestCases() {
		full := FullStability(tc.Player, tc.Opponent)
		if full < 0 || full > tc.CountDiscs() {
			t.Fatalf("FullStability() = %d out of range for disc count %d", full, tc.CountDiscs())
		}
	}
}

func TestFullStabilityMarksOccupiedCornerStable(t *testing.T) {
	// A corner disc is stable the instant it is played, regardless of
	// whatever is (or isn't) next to it.
	pos := FromBitboards(uint64(1)<<A1, uint64(1)<<C3)
	if got := FullStability(pos.Player, pos.Opponent); got != 1 {
		t.Fatalf("FullStability() = %d, want 1 (the occupied corner)", got)
	}
}
