package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Every node is visited through Commit and Undo, so g is back in its
// starting state when Perft returns. A promoting move counts once.
func Perft(g *GameState, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := g.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		mustCommit(g, m)
		nodes += Perft(g, depth-1)
		mustUndo(g)
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes int64
}

// Divide returns Perft(depth-1) for each legal root move, in generation order.
func Divide(g *GameState, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	moves := g.LegalMoves()
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		mustCommit(g, m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(g, depth-1)})
		mustUndo(g)
	}
	return entries
}

// mustCommit plays a move taken from the legal set, promoting to a queen.
func mustCommit(g *GameState, m chess.Move) {
	if err := g.Commit(m, chess.Queen); err != nil {
		panic("engine: legal move rejected: " + err.Error())
	}
}

func mustUndo(g *GameState) {
	if err := g.Undo(); err != nil {
		panic("engine: " + err.Error())
	}
}
