// Command swap-ffo runs the search engine against a file of FFO
// end-game test problems and reports, per problem, the move and score
// the engine finds, with node count and elapsed time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/lk16/swap/internal/bitboard"
	"github.com/lk16/swap/internal/book"
	"github.com/lk16/swap/internal/pattern"
	"github.com/lk16/swap/internal/search"
	"github.com/lk16/swap/internal/storage"
)

func main() {
	problemsPath := flag.String("problems", "", "path to an FFO problem set file (required)")
	weightsPath := flag.String("weights", "", "path to eval.dat (required)")
	level := flag.Int("level", 60, "engine strength level, 0-60")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	cacheDir := flag.String("cache", "", "directory of a persistent transposition cache (optional)")
	bookPath := flag.String("book", "", "path to an XOT opening book file (optional)")
	randomOpening := flag.Bool("random-opening", false, "solve one random book opening instead of -problems")
	flag.Parse()

	if *weightsPath == "" || (*problemsPath == "" && !*randomOpening) {
		fmt.Fprintln(os.Stderr, "usage: swap-ffo -problems ffo.txt -weights eval.dat")
		fmt.Fprintln(os.Stderr, "       swap-ffo -random-opening -book xot.json -weights eval.dat")
		os.Exit(2)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("create cpu profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("start cpu profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	weights, err := pattern.LoadWeights(*weightsPath)
	if err != nil {
		log.Fatalf("load weights: %v", err)
	}

	var problems []problem
	if *problemsPath != "" {
		problems, err = loadProblems(*problemsPath)
		if err != nil {
			log.Fatalf("load problems: %v", err)
		}
	}

	if *randomOpening {
		p, err := drawRandomOpening(*bookPath)
		if err != nil {
			log.Fatalf("draw random opening: %v", err)
		}
		problems = append(problems, p)
	}

	var cache *storage.Storage
	if *cacheDir != "" {
		cache, err = storage.NewStorageAt(*cacheDir)
		if err != nil {
			log.Fatalf("open cache: %v", err)
		}
		defer cache.Close()
	}

	engine := search.NewEngine(weights)
	for i, p := range problems {
		if cache != nil {
			if entry, found, err := cache.LoadEntry(p.pos); err != nil {
				log.Printf("problem %d: load cache entry: %v", i+1, err)
			} else if found {
				engine.MainTable().Seed(p.pos, entry)
			}
		}

		result, err := engine.BestMove(p.pos, search.EngineConfig{Level: *level})
		if err != nil {
			log.Printf("problem %d: %v", i+1, err)
			continue
		}
		fmt.Printf("problem %d: move=%s score=%+d nodes=%d time=%dms\n",
			i+1, squareName(result.Move), result.Score, result.Nodes, result.TimeMS)

		if cache != nil {
			if entry, found := engine.MainTable().Get(p.pos); found {
				if err := cache.SaveEntry(p.pos, entry); err != nil {
					log.Printf("problem %d: save cache entry: %v", i+1, err)
				}
			}
		}
	}
}

// drawRandomOpening loads the opening book at path (or xot.json in the
// platform data directory when path is empty) and draws one position
// from it.
func drawRandomOpening(path string) (problem, error) {
	var b *book.Book
	var err error
	if path != "" {
		b, err = book.Load(path)
	} else {
		b, err = book.Load(defaultBookPath())
	}
	if err != nil {
		return problem{}, err
	}

	pos, ok := b.RandomOpening()
	if !ok {
		return problem{}, fmt.Errorf("book at %q has no opening positions", path)
	}
	return problem{pos: pos}, nil
}

func defaultBookPath() string {
	dir, err := storage.GetDataDir()
	if err != nil {
		return "xot.json"
	}
	return dir + string(os.PathSeparator) + "xot.json"
}

type problem struct {
	pos bitboard.Position
}

// loadProblems parses an FFO-format problem file: one line per problem,
// a 64-character board (., X, O) followed by the side to move, followed
// by a semicolon-separated list of documented move:score solutions
// which this command does not currently cross-check.
func loadProblems(path string) ([]problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var problems []problem
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 || len(fields[0]) != 64 {
			continue
		}

		pos, err := parseBoard(fields[0], fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		problems = append(problems, problem{pos: pos})
	}
	return problems, scanner.Err()
}

func parseBoard(board, side string) (bitboard.Position, error) {
	var black, white uint64
	for i, c := range board {
		switch c {
		case 'X':
			black |= uint64(1) << uint(i)
		case 'O':
			white |= uint64(1) << uint(i)
		case '.', '-':
		default:
			return bitboard.Position{}, fmt.Errorf("unexpected board character %q at index %d", c, i)
		}
	}

	switch strings.ToUpper(strings.TrimSpace(side)) {
	case "X":
		return bitboard.FromBitboards(black, white), nil
	case "O":
		return bitboard.FromBitboards(white, black), nil
	default:
		return bitboard.Position{}, fmt.Errorf("unexpected side-to-move marker %q", side)
	}
}

func squareName(index int) string {
	if index == bitboard.PASS {
		return "PASS"
	}
	if index < 0 || index > 63 {
		return strconv.Itoa(index)
	}
	file := 'A' + rune(index%8)
	rank := 1 + index/8
	return fmt.Sprintf("%c%d", file, rank)
}
