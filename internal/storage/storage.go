// Package storage persists transposition table entries and the
// opening book's outcome statistics across runs, so a long-lived engine
// process (or a new one started against the same data directory) does
// not have to resolve the same deep positions from scratch every time.
package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/search"
)

// keyOpeningStatsPrefix is prepended to a position's 16-byte key to form
// the key under which that opening's win/loss counters are stored as a
// JSON-free flat record.
const keyOpeningStatsPrefix = "opening:"

// Storage wraps BadgerDB for persistent storage of search results.
type Storage struct {
	db *badger.DB
}

// NewStorage opens (creating if necessary) the database rooted at
// GetDatabaseDir().
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(dbDir)
}

// NewStorageAt opens (creating if necessary) the database rooted at
// dbDir directly, bypassing the platform-specific data directory; used
// by tests against a temporary directory.
func NewStorageAt(dbDir string) (*Storage, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// positionKey encodes a position's two bitsets into a fixed 16-byte key,
// so the same position always maps to the same database key regardless
// of process restarts.
func positionKey(pos bitboard.Position) []byte {
	var key [16]byte
	binary.BigEndian.PutUint64(key[0:8], pos.Player)
	binary.BigEndian.PutUint64(key[8:16], pos.Opponent)
	return key[:]
}

// hashDataSize is the encoded byte length of one search.HashData record.
const hashDataSize = 1 + 1 + 4 + 1 + 4 + 4 + 8

func encodeHashData(d search.HashData) []byte {
	buf := make([]byte, hashDataSize)
	buf[0] = byte(d.Depth)
	buf[1] = byte(d.Selectivity)
	binary.BigEndian.PutUint32(buf[2:6], uint32(d.Cost))
	buf[6] = d.Date
	binary.BigEndian.PutUint32(buf[7:11], uint32(d.Lower))
	binary.BigEndian.PutUint32(buf[11:15], uint32(d.Upper))
	binary.BigEndian.PutUint32(buf[15:19], uint32(int32(d.Move[0])))
	binary.BigEndian.PutUint32(buf[19:23], uint32(int32(d.Move[1])))
	return buf
}

func decodeHashData(buf []byte) (search.HashData, error) {
	if len(buf) != 23 {
		return search.HashData{}, fmt.Errorf("storage: malformed hash record of length %d", len(buf))
	}
	return search.HashData{
		Depth:       int8(buf[0]),
		Selectivity: int8(buf[1]),
		Cost:        int32(binary.BigEndian.Uint32(buf[2:6])),
		Date:        buf[6],
		Lower:       int32(binary.BigEndian.Uint32(buf[7:11])),
		Upper:       int32(binary.BigEndian.Uint32(buf[11:15])),
		Move: [2]int{
			int(int32(binary.BigEndian.Uint32(buf[15:19]))),
			int(int32(binary.BigEndian.Uint32(buf[19:23]))),
		},
	}, nil
}

// SaveEntry persists a transposition table entry for pos, so a future
// process can seed its in-memory table from solved positions without
// re-searching them.
func (s *Storage) SaveEntry(pos bitboard.Position, data search.HashData) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(positionKey(pos), encodeHashData(data))
	})
}

// LoadEntry fetches a previously persisted entry for pos, if any.
func (s *Storage) LoadEntry(pos bitboard.Position) (search.HashData, bool, error) {
	var data search.HashData
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(pos))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeHashData(val)
			if err != nil {
				return err
			}
			data = decoded
			found = true
			return nil
		})
	})

	return data, found, err
}

// OpeningStats tracks how a drawn opening position has historically
// performed, letting a future opening draw prefer positions that lead
// to balanced games.
type OpeningStats struct {
	Played int
	Wins   int
	Losses int
	Draws  int
}

func openingKey(pos bitboard.Position) []byte {
	return append([]byte(keyOpeningStatsPrefix), positionKey(pos)...)
}

// RecordOpeningResult updates the stored outcome counters for the
// opening position pos after a completed game.
func (s *Storage) RecordOpeningResult(pos bitboard.Position, result int) error {
	stats, _, err := s.loadOpeningStats(pos)
	if err != nil {
		return err
	}
	stats.Played++
	switch {
	case result > 0:
		stats.Wins++
	case result < 0:
		stats.Losses++
	default:
		stats.Draws++
	}

	buf := make([]byte, 16)
	binary.BigEndian.PutUint32(buf[0:4], uint32(stats.Played))
	binary.BigEndian.PutUint32(buf[4:8], uint32(stats.Wins))
	binary.BigEndian.PutUint32(buf[8:12], uint32(stats.Losses))
	binary.BigEndian.PutUint32(buf[12:16], uint32(stats.Draws))

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(openingKey(pos), buf)
	})
}

func (s *Storage) loadOpeningStats(pos bitboard.Position) (OpeningStats, bool, error) {
	var stats OpeningStats
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(openingKey(pos))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 16 {
				return fmt.Errorf("storage: malformed opening stats record of length %d", len(val))
			}
			stats = OpeningStats{
				Played: int(binary.BigEndian.Uint32(val[0:4])),
				Wins:   int(binary.BigEndian.Uint32(val[4:8])),
				Losses: int(binary.BigEndian.Uint32(val[8:12])),
				Draws:  int(binary.BigEndian.Uint32(val[12:16])),
			}
			found = true
			return nil
		})
	})

	return stats, found, err
}

// OpeningStats returns the stored outcome counters for pos, or a zero
// value if none have been recorded yet.
func (s *Storage) OpeningStats(pos bitboard.Position) (OpeningStats, error) {
	stats, _, err := s.loadOpeningStats(pos)
	return stats, err
}
