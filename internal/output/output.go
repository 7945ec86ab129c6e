// Package output provides position and perft output as text or JSON.
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/exp/maps"

	"github.com/lgbarn/chess-rules-go/internal/analysis"
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// RenderBoard draws grid with rank 8 at the top and file letters underneath.
// With useColour set, squares are shaded in ANSI colours; otherwise empty
// squares are shown as '.'.
func RenderBoard(w io.Writer, grid chess.Grid, useColour bool) {
	for row := 0; row < chess.BoardSize; row++ {
		fmt.Fprintf(w, "%c ", chess.Sq(row, 0).Rank())
		for col := 0; col < chess.BoardSize; col++ {
			p := grid[row][col]
			if !useColour {
				fmt.Fprintf(w, "%c", p.Letter())
				if col < chess.BoardSize-1 {
					fmt.Fprint(w, " ")
				}
				continue
			}
			sq := squareColour(row, col)
			sq.EnableColor()
			text := " "
			if !p.IsEmpty() {
				text = string(p.Letter())
			}
			if p.Is(chess.White) {
				sq.Add(color.Bold)
			}
			sq.Fprintf(w, " %s ", text) //nolint:errcheck // diagram output is best effort
		}
		fmt.Fprintln(w)
	}
	if useColour {
		fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	} else {
		fmt.Fprintln(w, "  a b c d e f g h")
	}
}

// squareColour returns a fresh Color for the square so per-piece
// attributes do not leak between squares.
func squareColour(row, col int) *color.Color {
	if (row+col)%2 == 0 {
		return color.New(color.FgBlack, color.BgHiWhite)
	}
	return color.New(color.FgBlack, color.BgHiGreen)
}

// WriteState writes a one-line summary of the game: FEN, side to move,
// status and the number of legal moves.
func WriteState(w io.Writer, g *engine.GameState) {
	status := g.Status()
	fmt.Fprintf(w, "FEN: %s\n", g.FEN())
	fmt.Fprintf(w, "To move: %v", g.SideToMove())
	if g.IsInCheck(g.SideToMove()) && !status.IsTerminal() {
		fmt.Fprint(w, " (in check)")
	}
	fmt.Fprintf(w, "\nStatus: %v\n", status)
	fmt.Fprintf(w, "Legal moves: %d\n", len(g.LegalMoves()))
}

// WritePerft writes the node count. With divide set, the count below each
// root move is listed first, sorted by move.
func WritePerft(w io.Writer, res *analysis.Result, divide bool) {
	if divide {
		counts := make(map[string]int64, len(res.Divide))
		for _, e := range res.Divide {
			counts[e.Move.Notation()] = e.Nodes
		}
		moves := maps.Keys(counts)
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Fprintf(w, "%s: %d\n", m, counts[m])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Depth: %d\n", res.Depth)
	fmt.Fprintf(w, "Nodes: %d\n", res.Nodes)
}
