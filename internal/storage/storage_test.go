package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/search"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "swap-storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	dbDir := filepath.Join(tmpDir, "db")
	s, err := NewStorageAt(dbDir)
	if err != nil {
		t.Fatalf("NewStorageAt failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadEntry(t *testing.T) {
	s := openTestStorage(t)
	pos := bitboard.New()

	data := search.HashData{
		Depth:       10,
		Selectivity: 5,
		Cost:        42,
		Date:        3,
		Lower:       -4,
		Upper:       8,
		Move:        [2]int{bitboard.D3, bitboard.C4},
	}

	if err := s.SaveEntry(pos, data); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	got, found, err := s.LoadEntry(pos)
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}
	if !found {
		t.Fatal("expected a previously saved entry to be found")
	}
	if got != data {
		t.Fatalf("LoadEntry = %+v, want %+v", got, data)
	}
}

func TestLoadEntryMissReturnsNotFound(t *testing.T) {
	s := openTestStorage(t)
	pos := bitboard.New()

	_, found, err := s.LoadEntry(pos)
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}
	if found {
		t.Fatal("expected no entry for a never-saved position")
	}
}

func TestRecordOpeningResultAccumulates(t *testing.T) {
	s := openTestStorage(t)
	pos := bitboard.New()

	if err := s.RecordOpeningResult(pos, 4); err != nil {
		t.Fatalf("RecordOpeningResult failed: %v", err)
	}
	if err := s.RecordOpeningResult(pos, -2); err != nil {
		t.Fatalf("RecordOpeningResult failed: %v", err)
	}
	if err := s.RecordOpeningResult(pos, 0); err != nil {
		t.Fatalf("RecordOpeningResult failed: %v", err)
	}

	stats, err := s.OpeningStats(pos)
	if err != nil {
		t.Fatalf("OpeningStats failed: %v", err)
	}
	if stats.Played != 3 || stats.Wins != 1 || stats.Losses != 1 || stats.Draws != 1 {
		t.Fatalf("OpeningStats = %+v, want {Played:3 Wins:1 Losses:1 Draws:1}", stats)
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}
