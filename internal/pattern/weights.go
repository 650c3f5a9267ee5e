package pattern

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// weightFileMagicEdax and weightFileMagicXade are the two accepted
// 4-byte headers of a weight file: "EVAL" for little-endian data and
// "LAVE" for big-endian data. The file layout read here is that tag, two
// int32 header fields (version, release), then nPly tables of NWeight
// int32 weights each, already unpacked. Edax's own eval.dat layout
// (an "EDAX" tag before "EVAL", build and date fields, and
// symmetry-packed 16-bit weights) is not read.
var (
	weightFileMagicEdax = [4]byte{'E', 'V', 'A', 'L'}
	weightFileMagicXade = [4]byte{'L', 'A', 'V', 'E'}
)

// ErrWeightFileMalformed is returned by LoadWeights when the file does
// not start with a recognized magic header or is truncated.
var ErrWeightFileMalformed = fmt.Errorf("pattern: malformed weight file")

// nPly is the number of distinct game phases the weight file carries
// one full feature table for, one per ply index 0..60 (60 minus the
// empty-square count).
const nPly = 61

// Weights holds the loaded per-ply, per-perspective weight tables. A
// single Weights value is shared read-only across all search threads.
type Weights struct {
	table [nPly][2][]int32
}

// Ply returns the weight table for the given ply and perspective (0 =
// player, 1 = opponent), reusing the final table past the last ply
// recorded in the file.
func (w *Weights) Ply(ply, perspective int) []int32 {
	if ply < 0 {
		ply = 0
	}
	if ply >= nPly {
		ply = nPly - 1
	}
	return w.table[ply][perspective]
}

// LoadWeights reads a weight file (layout described above) from path.
func LoadWeights(path string) (*Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pattern: open weight file: %w", err)
	}
	defer f.Close()
	return LoadWeightsReader(f)
}

// LoadWeightsReader reads a weight file from an arbitrary reader,
// auto-detecting byte order from the 4-byte magic header.
func LoadWeightsReader(r io.Reader) (*Weights, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightFileMalformed, err)
	}

	var order binary.ByteOrder
	switch magic {
	case weightFileMagicEdax:
		order = binary.LittleEndian
	case weightFileMagicXade:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: unrecognized header", ErrWeightFileMalformed)
	}

	var version, release int32
	if err := binary.Read(br, order, &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightFileMalformed, err)
	}
	if err := binary.Read(br, order, &release); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightFileMalformed, err)
	}

	w := &Weights{}
	for ply := 0; ply < nPly; ply++ {
		raw := make([]int32, NWeight)
		if err := binary.Read(br, order, raw); err != nil {
			return nil, fmt.Errorf("%w: ply %d: %v", ErrWeightFileMalformed, ply, err)
		}
		w.table[ply][0] = raw
		w.table[ply][1] = expandOpponentTable(raw)
	}

	return w, nil
}

// expandOpponentTable builds the opponent-perspective view of a weight
// table by remapping each feature value to the value with player and
// opponent colors exchanged, so that a feature evaluated from the
// opponent's point of view reads the weight the player's table gives
// the color-swapped pattern.
func expandOpponentTable(playerTable []int32) []int32 {
	opp := make([]int32, len(playerTable))
	for i := 0; i < NFeatures; i++ {
		size := int(MaxValue[i]-Offset[i]) + 1
		for v := 0; v < size; v++ {
			opp[Offset[i]+int32(v)] = playerTable[Offset[i]+int32(opponentFeatureValue(i, v))]
		}
	}
	return opp
}

// opponentFeatureValue returns the base-3 value that results from
// swapping every square's color (0<->1, 2 unchanged) within feature i's
// raw (un-offset) value v, by unpacking v digit by digit and repacking
// with swapped digits.
func opponentFeatureValue(feature, v int) int {
	squares := len(F2X[feature])
	digits := make([]int, squares)
	for i := squares - 1; i >= 0; i-- {
		digits[i] = v % 3
		v /= 3
	}
	result := 0
	for _, d := range digits {
		swapped := d
		switch d {
		case 0:
			swapped = 1
		case 1:
			swapped = 0
		}
		result = result*3 + swapped
	}
	return result
}
