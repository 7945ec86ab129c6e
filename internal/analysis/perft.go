// Package analysis runs perft over a position in parallel, one clone of the
// game per root move.
package analysis

import (
	"context"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// NodeCache stores perft node counts by position and remaining depth.
type NodeCache interface {
	Lookup(grid chess.Grid, toMove chess.Colour, depth int) (int64, bool)
	Store(grid chess.Grid, toMove chess.Colour, depth int, nodes int64)
}

// Result is the outcome of a perft run.
type Result struct {
	Depth   int
	Nodes   int64
	Divide  []engine.DivideEntry // one entry per root move, in generation order
	Elapsed time.Duration
}

// Perft counts the leaf nodes below g to the given depth. Each root move is
// evaluated on its own clone by a worker pool sized from cfg.Analysis, so g
// itself is never modified. Cancelling ctx stops the pool and Perft returns
// the context error.
func Perft(ctx context.Context, g *engine.GameState, depth int, cfg *config.Config) (*Result, error) {
	start := time.Now()
	res := &Result{Depth: depth}
	if depth <= 0 {
		res.Nodes = 1
		return res, nil
	}

	roots := g.LegalMoves()
	res.Divide = make([]engine.DivideEntry, len(roots))
	for i, m := range roots {
		res.Divide[i].Move = m
	}
	if len(roots) == 0 {
		return res, nil
	}

	var cache NodeCache
	if cfg.Analysis.UseCache {
		cache = hashing.NewThreadSafePerftCache(cfg.Analysis.CacheSize)
	}

	process := func(item worker.WorkItem) worker.ProcessResult {
		nodes, err := countNodes(ctx, item.Game, item.Depth, cache)
		return worker.ProcessResult{Move: item.Move, Index: item.Index, Nodes: nodes, Error: err}
	}
	pool := worker.NewPool(process,
		worker.WithWorkers(cfg.Analysis.Workers),
		worker.WithBufferSize(len(roots)),
	)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Stop()
		case <-done:
		}
	}()

	// Each clone is made before submission: the pool owns it from then on.
	for i, m := range roots {
		c := g.Clone()
		c.SetLog(nil)
		if err := c.Commit(m, chess.Queen); err != nil {
			pool.Stop()
			go drain(pool)
			pool.Close()
			return nil, errors.Wrapf(err, "perft root move %s", m)
		}
		pool.Submit(worker.WorkItem{Game: c, Move: m, Depth: depth - 1, Index: i})
	}
	go pool.Close()

	var firstErr error
	for r := range pool.Results() {
		if r.Error != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(r.Error, "perft below %s", r.Move)
			}
			pool.Stop()
			continue
		}
		res.Divide[r.Index].Nodes = r.Nodes
		res.Nodes += r.Nodes
		cfg.Logf(2, "%s: %d\n", r.Move, r.Nodes)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "perft cancelled")
	}
	if firstErr != nil {
		return nil, firstErr
	}
	res.Elapsed = time.Since(start)
	cfg.Logf(1, "perft(%d) = %d nodes, %d root moves, %d workers, %v\n",
		depth, res.Nodes, len(roots), pool.NumWorkers(), res.Elapsed)
	return res, nil
}

// drain discards results so that Close can finish.
func drain(pool *worker.Pool) {
	for range pool.Results() {
	}
}

// countNodes is perft with cancellation and an optional cache. Leaves one
// ply away are counted from the legal set without being played.
func countNodes(ctx context.Context, g *engine.GameState, depth int, cache NodeCache) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth == 1 {
		return int64(len(g.LegalMoves())), nil
	}
	if cache != nil {
		if nodes, ok := cache.Lookup(g.Board(), g.SideToMove(), depth); ok {
			return nodes, nil
		}
	}

	var nodes int64
	for _, m := range g.LegalMoves() {
		if err := g.Commit(m, chess.Queen); err != nil {
			return 0, err
		}
		n, err := countNodes(ctx, g, depth-1, cache)
		if undoErr := g.Undo(); undoErr != nil {
			return 0, undoErr
		}
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if cache != nil {
		cache.Store(g.Board(), g.SideToMove(), depth, nodes)
	}
	return nodes, nil
}
