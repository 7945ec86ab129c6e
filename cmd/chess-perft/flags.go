// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Position options
	fenString = flag.String("fen", "", "Starting position in FEN (default: standard starting position)")
	moveList  = flag.String("moves", "", "Moves to play before analysis, e.g. \"e2e4 e7e5\"")

	// Analysis options
	depth     = flag.Int("depth", 1, "Perft depth in plies (0 = report the position only)")
	divide    = flag.Bool("divide", false, "Report the node count below each root move")
	workers   = flag.Int("workers", 1, "Number of goroutines evaluating root moves")
	useCache  = flag.Bool("cache", false, "Share a transposition cache between workers")
	cacheSize = flag.Int("cachesize", 0, "Maximum cache entries (0 = unlimited)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	showBoard  = flag.Bool("board", false, "Print a diagram of the position")
	noColour   = flag.Bool("nocolor", false, "Disable colours in the board diagram")

	// Logging
	verbosity = flag.Int("v", 1, "Verbosity: 0=quiet, 1=summary, 2=per root move and game events")
	logFile   = flag.String("l", "", "Write diagnostics to log file")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyPositionFlags(cfg)
	applyAnalysisFlags(cfg)
	applyOutputFlags(cfg)
	cfg.Verbosity = *verbosity
}

// applyPositionFlags configures the starting position.
func applyPositionFlags(cfg *config.Config) {
	cfg.FEN = *fenString
	cfg.Moves = *moveList
}

// applyAnalysisFlags configures the perft run.
func applyAnalysisFlags(cfg *config.Config) {
	cfg.Analysis.Depth = *depth
	cfg.Analysis.Divide = *divide
	cfg.Analysis.Workers = *workers
	cfg.Analysis.UseCache = *useCache
	cfg.Analysis.CacheSize = *cacheSize
}

// applyOutputFlags configures output formatting. Colour is also dropped
// when the color package has detected a non-terminal or NO_COLOR.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.Colour = !*noColour && !color.NoColor
}
