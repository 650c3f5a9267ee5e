package book

import (
	"strings"
	"testing"

	"github.com/lk16/swap/internal/bitboard"
)

const sampleXOT = `[
	{"player": "0x0000001008000000", "opponent": "0x0000000817080000"},
	{"player": "0x0000100804020000", "opponent": "0x0000081008000000"}
]`

func TestLoadReaderParsesEntries(t *testing.T) {
	b, err := LoadReader(strings.NewReader(sampleXOT))
	if err != nil {
		t.Fatalf("LoadReader returned error: %v", err)
	}
	if b.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", b.Size())
	}
}

func TestRandomOpeningReturnsAStoredPosition(t *testing.T) {
	b, err := LoadReader(strings.NewReader(sampleXOT))
	if err != nil {
		t.Fatalf("LoadReader returned error: %v", err)
	}

	pos, ok := b.RandomOpening()
	if !ok {
		t.Fatal("expected RandomOpening to succeed on a non-empty book")
	}
	if pos.Player&pos.Opponent != 0 {
		t.Fatalf("drawn position violates the non-overlap invariant: player=%#x opponent=%#x", pos.Player, pos.Opponent)
	}
}

func TestRandomOpeningOnEmptyBook(t *testing.T) {
	b := New()
	if _, ok := b.RandomOpening(); ok {
		t.Fatal("expected RandomOpening to fail on an empty book")
	}
	if b.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", b.Size())
	}
}

func TestLoadReaderRejectsOverlappingBitsets(t *testing.T) {
	bad := `[{"player": "0x1", "opponent": "0x1"}]`
	if _, err := LoadReader(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for overlapping player/opponent bitsets")
	}
}

func TestLoadReaderRejectsMalformedJSON(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("not json")); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestNilBookIsSafeToQuery(t *testing.T) {
	var b *Book
	if b.Size() != 0 {
		t.Fatalf("Size() on nil book = %d, want 0", b.Size())
	}
	if _, ok := b.RandomOpening(); ok {
		t.Fatal("expected RandomOpening on a nil book to fail")
	}
	_ = bitboard.Position{}
}
