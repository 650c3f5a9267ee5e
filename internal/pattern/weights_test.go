package pattern

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildTestWeightFile writes a minimal valid weight file where every
// weight equals its own index modulo 1000, letting tests predict the
// exact value stored at a given slot.
func buildTestWeightFile(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte("EVAL"))
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, int32(0))

	raw := make([]int32, NWeight)
	for ply := 0; ply < nPly; ply++ {
		for i := range raw {
			raw[i] = int32(i % 1000)
		}
		binary.Write(&buf, binary.LittleEndian, raw)
	}
	return buf.Bytes()
}

func TestLoadWeightsReaderRejectsBadMagic(t *testing.T) {
	if _, err := LoadWeightsReader(bytes.NewReader([]byte("NOPE12345678"))); err == nil {
		t.Fatal("expected an error for an unrecognized magic header")
	}
}

func TestLoadWeightsReaderRejectsTruncatedFile(t *testing.T) {
	data := buildTestWeightFile(t)
	if _, err := LoadWeightsReader(bytes.NewReader(data[:len(data)/2])); err == nil {
		t.Fatal("expected an error for a truncated weight file")
	}
}

func TestLoadWeightsReaderParsesEveryPly(t *testing.T) {
	data := buildTestWeightFile(t)
	w, err := LoadWeightsReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadWeightsReader failed: %v", err)
	}

	table := w.Ply(30, 0)
	if len(table) != NWeight {
		t.Fatalf("Ply(30, 0) has length %d, want %d", len(table), NWeight)
	}
	if table[5] != 5 {
		t.Fatalf("table[5] = %d, want 5", table[5])
	}
}

func TestPlyClampsOutOfRangeIndices(t *testing.T) {
	data := buildTestWeightFile(t)
	w, err := LoadWeightsReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadWeightsReader failed: %v", err)
	}

	if w.Ply(-1, 0) == nil {
		t.Fatal("Ply(-1, 0) should clamp to ply 0, not return nil")
	}
	if w.Ply(1000, 0) == nil {
		t.Fatal("Ply(1000, 0) should clamp to the last ply, not return nil")
	}
}
