package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MaxDepth bounds the perft depth accepted from the command line.
const MaxDepth = 10

// AnalysisConfig holds settings for perft runs.
type AnalysisConfig struct {
	// Depth is the number of plies to search
	Depth int

	// Divide reports the node count below each root move
	Divide bool

	// Workers is the number of goroutines evaluating root moves
	Workers int

	// UseCache enables the shared transposition cache
	UseCache bool

	// CacheSize limits cache entries (0 = unlimited)
	CacheSize int
}

// NewAnalysisConfig creates an AnalysisConfig with default values.
func NewAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Depth:   1,
		Workers: 1,
	}
}

// Validate checks that the analysis configuration is valid.
func (a *AnalysisConfig) Validate() error {
	if a.Depth < 0 || a.Depth > MaxDepth {
		return fmt.Errorf("depth %d out of range 0-%d: %w", a.Depth, MaxDepth, errors.ErrInvalidConfig)
	}
	if a.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", a.Workers, errors.ErrInvalidConfig)
	}
	if a.CacheSize < 0 {
		return fmt.Errorf("cache size (%d) must not be negative: %w", a.CacheSize, errors.ErrInvalidConfig)
	}
	return nil
}
