// Package book loads XOT opening positions: a pre-generated set of
// balanced twelve-disc starting positions used to vary games beyond the
// single standard opening, kept separate from the search core so the
// core never needs to know a book exists.
package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/lk16/swap/internal/bitboard"
)

// ErrOpeningFileMalformed is returned by Load/LoadReader when the file
// is not a JSON array of well-formed bitset pairs.
var ErrOpeningFileMalformed = errors.New("book: malformed opening file")

// rawEntry mirrors the on-disk JSON shape: two hex-encoded 64-bit
// bitsets per opening position.
type rawEntry struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
}

// Book is an immutable, in-memory set of opening positions.
type Book struct {
	positions []bitboard.Position
}

// New returns an empty book.
func New() *Book {
	return &Book{}
}

// Load reads an XOT opening file from path.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("book: open opening file: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads an XOT opening file from an arbitrary reader.
func LoadReader(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpeningFileMalformed, err)
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpeningFileMalformed, err)
	}

	b := &Book{positions: make([]bitboard.Position, 0, len(raw))}
	for _, e := range raw {
		player, err := parseHexBitset(e.Player)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpeningFileMalformed, err)
		}
		opponent, err := parseHexBitset(e.Opponent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpeningFileMalformed, err)
		}
		if player&opponent != 0 {
			return nil, fmt.Errorf("%w: overlapping player/opponent bitsets", ErrOpeningFileMalformed)
		}
		b.positions = append(b.positions, bitboard.FromBitboards(player, opponent))
	}

	return b, nil
}

func parseHexBitset(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// RandomOpening draws a uniformly random opening position from the
// book. The second return value is false for an empty book.
func (b *Book) RandomOpening() (bitboard.Position, bool) {
	if b == nil || len(b.positions) == 0 {
		return bitboard.Position{}, false
	}
	return b.positions[rand.Intn(len(b.positions))], true
}

// Size returns the number of opening positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.positions)
}
