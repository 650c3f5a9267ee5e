package search

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/pattern"
)

// zeroWeights loads an all-zero weight set, enough for searches that
// reach the pattern evaluator.
func zeroWeights(t *testing.T) *pattern.Weights {
	var buf bytes.Buffer
	buf.WriteString("EVAL")
	binary.Write(&buf, binary.LittleEndian, [2]int32{0, 0})
	buf.Write(make([]byte, 61*pattern.NWeight*4))
	w, err := pattern.LoadWeightsReader(&buf)
	if err != nil {
		t.Fatalf("loading zero weights: %v", err)
	}
	return w
}

func TestLevelLowStaysUnselective(t *testing.T) {
	depth, selectivity := Level(4, 50)
	if selectivity != maxSelectivity {
		t.Fatalf("low level selectivity = %d, want %d", selectivity, maxSelectivity)
	}
	if depth != 4 {
		t.Fatalf("depth = %d, want 4", depth)
	}
}

func TestLevelNeverExceedsEmpties(t *testing.T) {
	for level := 0; level <= 60; level += 5 {
		for empties := 0; empties <= 60; empties += 5 {
			depth, _ := Level(level, empties)
			if depth > empties {
				t.Fatalf("level=%d empties=%d: depth %d exceeds empties", level, empties, depth)
			}
		}
	}
}

func TestHashTableStoreAndFetch(t *testing.T) {
	ht := NewHashTable(8)
	pos := bitboard.New()

	ht.Store(pos, StoreArgs{Alpha: ScoreMin, Beta: ScoreMax, Depth: 6, Selectivity: 5, Score: 4, Move: bitboard.D3})

	data, ok := ht.Get(pos)
	if !ok {
		t.Fatal("expected a stored entry to be found")
	}
	if data.Move[0] != bitboard.D3 {
		t.Fatalf("Move[0] = %d, want %d", data.Move[0], bitboard.D3)
	}
	if !(data.Lower <= 4 && data.Upper >= 4) {
		t.Fatalf("bounds [%d, %d] do not enclose score 4", data.Lower, data.Upper)
	}
}

func TestHashTableSoftClearAgesButDoesNotNecessarilyErase(t *testing.T) {
	ht := NewHashTable(8)
	pos := bitboard.New()
	ht.Store(pos, StoreArgs{Alpha: ScoreMin, Beta: ScoreMax, Depth: 6, Selectivity: 5, Score: 4, Move: bitboard.D3})

	before := ht.Date()
	ht.SoftClear()
	after := ht.Date()
	if after != before+1 {
		t.Fatalf("SoftClear: date = %d, want %d", after, before+1)
	}

	if _, ok := ht.Get(pos); !ok {
		t.Fatal("SoftClear must not erase existing entries")
	}
}

func TestHashTableSeedFillsEmptyEntry(t *testing.T) {
	ht := NewHashTable(8)
	pos := bitboard.New()

	ht.Seed(pos, HashData{Depth: 12, Selectivity: 5, Lower: -2, Upper: 10, Move: [2]int{bitboard.D3, bitboard.NoMove}})

	data, ok := ht.Get(pos)
	if !ok {
		t.Fatal("expected a seeded entry to be found")
	}
	if data.Depth != 12 || data.Move[0] != bitboard.D3 {
		t.Fatalf("Get() = %+v, want a seeded entry at depth 12 recommending %d", data, bitboard.D3)
	}
}

func TestHashTableSeedDoesNotOverwriteExisting(t *testing.T) {
	ht := NewHashTable(8)
	pos := bitboard.New()
	ht.Store(pos, StoreArgs{Alpha: ScoreMin, Beta: ScoreMax, Depth: 20, Selectivity: 5, Score: 4, Move: bitboard.D3})

	ht.Seed(pos, HashData{Depth: 1, Selectivity: 0, Move: [2]int{bitboard.C4, bitboard.NoMove}})

	data, ok := ht.Get(pos)
	if !ok {
		t.Fatal("expected the original stored entry to still be present")
	}
	if data.Depth != 20 {
		t.Fatalf("Seed overwrote a live entry: Depth = %d, want 20", data.Depth)
	}
}

func TestEngineMainTableIsPopulatedAfterBestMove(t *testing.T) {
	engine := NewEngine(zeroWeights(t))
	pos := bitboard.New()

	if _, err := engine.BestMove(pos, EngineConfig{Level: 4}); err != nil {
		t.Fatalf("BestMove returned error: %v", err)
	}

	if _, ok := engine.MainTable().Get(pos); !ok {
		t.Fatal("expected BestMove to leave an entry for the root position in the main table")
	}
}

func TestMoveListSortByScore(t *testing.T) {
	pos := bitboard.New()
	ml := NewMoveList(pos)
	if ml.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ml.Len())
	}

	for i := 0; i < ml.Len(); i++ {
		ml.SetScore(i, int32(i))
	}
	ml.SortByScore()

	prev := int32(1 << 30)
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).Score > prev {
			t.Fatalf("moves not sorted by descending score at index %d", i)
		}
		prev = ml.Get(i).Score
	}
}

func TestMoveListSetFirstMove(t *testing.T) {
	pos := bitboard.New()
	ml := NewMoveList(pos)
	target := ml.Get(ml.Len() - 1).Index

	ml.SetFirstMove(target)
	if ml.Get(0).Index != target {
		t.Fatalf("Get(0).Index = %d, want %d", ml.Get(0).Index, target)
	}
}

func TestEmptiesListCoversExactlyEmptySquares(t *testing.T) {
	pos := bitboard.New()
	el := NewEmptiesList(pos)

	seen := map[int]bool{}
	it := el.IterAll()
	for {
		x, _, ok := it.Next()
		if !ok {
			break
		}
		seen[x] = true
	}
	if len(seen) != pos.CountEmpty() {
		t.Fatalf("empties list has %d entries, want %d", len(seen), pos.CountEmpty())
	}
	for sq := 0; sq < 64; sq++ {
		occupied := (pos.Player|pos.Opponent)&(uint64(1)<<uint(sq)) != 0
		if occupied && seen[sq] {
			t.Fatalf("square %d is occupied but appears in empties list", sq)
		}
		if !occupied && !seen[sq] {
			t.Fatalf("square %d is empty but missing from empties list", sq)
		}
	}
}

func TestEmptiesListRemoveRestoreRoundTrip(t *testing.T) {
	pos := bitboard.New()
	el := NewEmptiesList(pos)

	before := map[int]bool{}
	it := el.IterAll()
	for {
		x, _, ok := it.Next()
		if !ok {
			break
		}
		before[x] = true
	}

	el.Remove(bitboard.D3)
	el.Restore(bitboard.D3)

	after := map[int]bool{}
	it = el.IterAll()
	for {
		x, _, ok := it.Next()
		if !ok {
			break
		}
		after[x] = true
	}

	if len(before) != len(after) {
		t.Fatalf("remove/restore changed list size: %d vs %d", len(before), len(after))
	}
	for x := range before {
		if !after[x] {
			t.Fatalf("square %d missing after remove/restore round trip", x)
		}
	}
}

func TestBestMoveOnForcedMove(t *testing.T) {
	// A directly constructed forced-move case: player owns H1, opponent
	// owns B1..G1, so A1 flips the whole row and no other empty square
	// brackets an opponent disc.
	player := uint64(1) << bitboard.H1
	opponent := uint64(1)<<bitboard.B1 | uint64(1)<<bitboard.C1 | uint64(1)<<bitboard.D1 |
		uint64(1)<<bitboard.E1 | uint64(1)<<bitboard.F1 | uint64(1)<<bitboard.G1
	forced := bitboard.FromBitboards(player, opponent)

	moves := NewMoveList(forced)
	if moves.Len() != 1 {
		t.Fatalf("test fixture has %d legal moves, want exactly 1 (A1)", moves.Len())
	}
	if moves.Get(0).Index != bitboard.A1 {
		t.Fatalf("fixture's only move is %d, want A1", moves.Get(0).Index)
	}

	e := NewEngine(nil)
	result, err := e.BestMove(forced, EngineConfig{Level: 6})
	if err != nil {
		t.Fatalf("BestMove returned error: %v", err)
	}
	if result.Move != bitboard.A1 {
		t.Fatalf("BestMove = %d, want A1 (%d)", result.Move, bitboard.A1)
	}
}

func TestBestMoveOnTerminalPositionReturnsPass(t *testing.T) {
	// 60 player discs, 4 opponent discs, no legal move for either side:
	// fill the board so that every square belongs to one side and no
	// move could flip anything (a full board is always terminal).
	var player, opponent uint64
	for sq := 0; sq < 60; sq++ {
		player |= uint64(1) << uint(sq)
	}
	for sq := 60; sq < 64; sq++ {
		opponent |= uint64(1) << uint(sq)
	}
	pos := bitboard.FromBitboards(player, opponent)
	if !pos.IsGameEnd() {
		t.Fatal("fixture is not actually a terminal position")
	}

	e := NewEngine(nil)
	result, err := e.BestMove(pos, EngineConfig{Level: 6})
	if err != nil {
		t.Fatalf("BestMove returned error: %v", err)
	}
	if result.Move != bitboard.PASS {
		t.Fatalf("BestMove on a terminal position = %d, want PASS", result.Move)
	}
	wantScore := int32(64 - 2*4)
	if result.Score != wantScore {
		t.Fatalf("Score = %d, want %d", result.Score, wantScore)
	}
}

func TestBestMoveE6BitsetsAfterD3(t *testing.T) {
	pos := bitboard.New()
	pos.DoMove(bitboard.D3)

	if pos.Player != 0x0000001000000000 {
		t.Fatalf("Player = %#016x, want %#016x", pos.Player, uint64(0x0000001000000000))
	}
	if pos.Opponent != 0x0000000818080000 {
		t.Fatalf("Opponent = %#016x, want %#016x", pos.Opponent, uint64(0x0000000818080000))
	}
}
