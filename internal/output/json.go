package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/analysis"
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONState is a snapshot of one game in JSON format.
type JSONState struct {
	ID         string                  `json:"id"`
	FEN        string                  `json:"fen"`
	ToMove     string                  `json:"toMove"` // "white" or "black"
	Status     string                  `json:"status"` // "ongoing", "checkmate" or "stalemate"
	Winner     string                  `json:"winner,omitempty"`
	InCheck    bool                    `json:"inCheck"`
	Board      [chess.BoardSize]string `json:"board"` // rank 8 first, '.' for empty
	LegalMoves []JSONMove              `json:"legalMoves"`
	History    []JSONMove              `json:"history"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	UCI       string `json:"uci"`
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece"`
	Captured  string `json:"captured,omitempty"`
	Promotion bool   `json:"promotion,omitempty"`
}

// JSONPerft holds perft results in JSON format.
type JSONPerft struct {
	Depth     int          `json:"depth"`
	Nodes     int64        `json:"nodes"`
	ElapsedMS int64        `json:"elapsedMs"`
	Divide    []JSONDivide `json:"divide,omitempty"`
}

// JSONDivide is the node count below one root move.
type JSONDivide struct {
	Move  string `json:"move"`
	Nodes int64  `json:"nodes"`
}

// JSONReport combines a position snapshot with optional perft results.
type JSONReport struct {
	State *JSONState `json:"state"`
	Perft *JSONPerft `json:"perft,omitempty"`
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Reports []*JSONReport `json:"reports"`
}

// StateToJSON converts a game to its JSON snapshot.
func StateToJSON(g *engine.GameState) *JSONState {
	status := g.Status()
	js := &JSONState{
		ID:         g.ID().String(),
		FEN:        g.FEN(),
		ToMove:     colourName(g.SideToMove()),
		Status:     strings.ToLower(status.Outcome.String()),
		InCheck:    g.IsInCheck(g.SideToMove()),
		LegalMoves: convertMoves(g.LegalMoves()),
		History:    convertMoves(g.History()),
	}
	if status.Outcome == engine.Checkmate {
		js.Winner = colourName(status.Winner)
	}

	grid := g.Board()
	for row := 0; row < chess.BoardSize; row++ {
		rank := make([]byte, chess.BoardSize)
		for col := 0; col < chess.BoardSize; col++ {
			rank[col] = grid[row][col].Letter()
		}
		js.Board[row] = string(rank)
	}
	return js
}

// PerftToJSON converts perft results; the per-move counts are included only
// when divide is set.
func PerftToJSON(res *analysis.Result, divide bool) *JSONPerft {
	jp := &JSONPerft{
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	if divide {
		jp.Divide = make([]JSONDivide, len(res.Divide))
		for i, e := range res.Divide {
			jp.Divide[i] = JSONDivide{Move: e.Move.Notation(), Nodes: e.Nodes}
		}
	}
	return jp
}

// WriteStateJSON writes the JSON snapshot of g to w.
func WriteStateJSON(w io.Writer, g *engine.GameState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(StateToJSON(g))
}

// convertMoves converts moves to JSON format. The result is never nil so
// that empty lists encode as [].
func convertMoves(moves []chess.Move) []JSONMove {
	result := make([]JSONMove, len(moves))
	for i, m := range moves {
		result[i] = JSONMove{
			UCI:       m.Notation(),
			From:      m.From.String(),
			To:        m.To.String(),
			Piece:     pieceTypeName(m.Piece.Type()),
			Captured:  pieceTypeName(m.Captured.Type()),
			Promotion: m.Promotion,
		}
	}
	return result
}

// colourName returns "white" or "black".
func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(t chess.PieceType) string {
	switch t {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
