// chess-perft prints the legal moves, status and perft node counts of a chess position.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lgbarn/chess-rules-go/internal/analysis"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-perft version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	log := setupLogFile(cfg)
	out := setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, flag.Args())
	stop()
	if closeErr := closeFiles(out, log); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
// It returns the opened file, or nil when logging goes to stderr.
func setupLogFile(cfg *config.Config) *os.File {
	if *logFile == "" {
		return nil
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
	return file
}

// setupOutputFile configures the output file based on command-line flags.
// It returns the opened file, or nil when output goes to stdout.
func setupOutputFile(cfg *config.Config) *os.File {
	if *outputFile == "" {
		return nil
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
	return file
}

// closeFiles closes every non-nil file and returns the first error.
func closeFiles(files ...*os.File) error {
	var first error
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "closing %s", f.Name())
		}
	}
	return first
}

// run reports on the position named by cfg, or on every FEN listed in the
// given files. Reports from files are written as a single JSON document
// when JSON output is selected.
func run(ctx context.Context, cfg *config.Config, files []string) error {
	w := output.NewReportWriter(cfg, len(files) > 0)

	if len(files) == 0 {
		if err := analysePosition(ctx, cfg, w, cfg.FEN); err != nil {
			return err
		}
		return w.Close()
	}

	for _, filename := range files {
		fens, err := loadFENFile(filename)
		if err != nil {
			return err
		}
		cfg.Logf(1, "%s: %d positions\n", filename, len(fens))
		for _, fen := range fens {
			if err := analysePosition(ctx, cfg, w, fen); err != nil {
				return errors.Wrap(err, filename)
			}
		}
	}
	return w.Close()
}

// analysePosition sets up one position, runs perft on it when a depth is
// configured and writes the report.
func analysePosition(ctx context.Context, cfg *config.Config, w output.ReportWriter, fen string) error {
	g, err := setupGame(cfg, fen)
	if err != nil {
		return err
	}

	var res *analysis.Result
	if cfg.Analysis.Depth > 0 {
		res, err = analysis.Perft(ctx, g, cfg.Analysis.Depth, cfg)
		if err != nil {
			return err
		}
	}
	return w.WriteReport(g, res)
}

// setupGame creates the game for fen (the starting position when empty)
// and plays cfg.Moves on it.
func setupGame(cfg *config.Config, fen string) (*engine.GameState, error) {
	var opts []engine.GameOption
	if cfg.Verbosity >= 2 {
		opts = append(opts, engine.WithLog(cfg.LogFile))
	}

	g := engine.NewGame(opts...)
	if fen != "" {
		var err error
		g, err = engine.NewGameFromFEN(fen, opts...)
		if err != nil {
			return nil, err
		}
	}

	for _, text := range strings.Fields(cfg.Moves) {
		if err := g.Play(text); err != nil {
			return nil, errors.Wrapf(err, "playing %s", text)
		}
	}
	return g, nil
}

// loadFENFile reads one FEN per line. Blank lines and lines starting with
// '#' are skipped.
func loadFENFile(filename string) ([]string, error) {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer file.Close()

	return readFENs(file)
}

func readFENs(r io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading positions")
	}
	return fens, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-perft [options] [fen-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Reports the legal moves, status and perft node counts of a chess position.\n")
	fmt.Fprintf(os.Stderr, "Each fen-file holds one FEN per line; '#' starts a comment line.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are square pairs with an optional promotion letter: e2e4, e7e8q.\n")
	fmt.Fprintf(os.Stderr, "Castling and en passant are not supported.\n")
}
