package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position. The
// castling field is kept for compatibility; castling is never generated.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewGameFromFEN creates a game from a FEN string. Only the piece placement,
// side to move and fullmove number are used; castling and en passant fields
// are accepted and ignored.
func NewGameFromFEN(fen string, opts ...GameOption) (*GameState, error) {
	board, toMove, fullmove, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGameState(board, toMove, fullmove, opts), nil
}

// NewBoardFromFEN creates a board and side to move from a FEN string.
func NewBoardFromFEN(fen string) (*chess.Board, chess.Colour, error) {
	board, toMove, _, err := parseFEN(fen)
	return board, toMove, err
}

func parseFEN(fen string) (*chess.Board, chess.Colour, int, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, 0, fenError(fen, "piece placement", "nothing")
	}
	if len(parts) > 6 {
		return nil, chess.White, 0, fenError(fen, "at most 6 fields", strconv.Itoa(len(parts)))
	}

	board := chess.NewBoard()
	if err := parsePiecePositions(board, fen, parts[0]); err != nil {
		return nil, chess.White, 0, err
	}

	toMove, err := parseSideToMove(fen, parts)
	if err != nil {
		return nil, chess.White, 0, err
	}

	fullmove := 1
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, chess.White, 0, fenError(fen, "fullmove number", parts[5])
		}
		fullmove = n
	}

	if err := validatePosition(board, toMove, fen); err != nil {
		return nil, chess.White, 0, err
	}
	return board, toMove, fullmove, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	row, col := 0, 0

	for i, c := range positions {
		switch {
		case c == '/':
			if col != chess.BoardSize {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Column: i + 1, Expected: "8 squares per rank", Got: strconv.Itoa(col)}
			}
			row++
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
		case c > unicode.MaxASCII:
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Column: i + 1, Expected: "piece letter", Got: string(c)}
		default:
			piece := chess.PieceTypeFromLetter(byte(c))
			if piece == chess.NoPieceType {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Column: i + 1, Expected: "piece letter", Got: string(c)}
			}
			if col >= chess.BoardSize || row >= chess.BoardSize {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Column: i + 1, Expected: "square on the board", Got: string(c)}
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			board.Set(chess.Sq(row, col), chess.MakePiece(colour, piece))
			col++
		}
		if col > chess.BoardSize {
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Column: i + 1, Expected: "8 squares per rank", Got: strconv.Itoa(col)}
		}
	}
	if row != chess.BoardSize-1 || col != chess.BoardSize {
		return fenError(fen, "8 complete ranks", fmt.Sprintf("%d", row+1))
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(fen string, parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, fenError(fen, "side to move w or b", parts[1])
	}
}

// validatePosition rejects positions the engine cannot play from: a missing
// or doubled king, a pawn on either back rank, or the side that just moved
// left in check.
func validatePosition(board *chess.Board, toMove chess.Colour, fen string) error {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := board.Count(chess.MakePiece(colour, chess.King)); n != 1 {
			return fenError(fen, fmt.Sprintf("one %v king", colour), strconv.Itoa(n))
		}
	}
	for col := 0; col < chess.BoardSize; col++ {
		for _, row := range []int{0, chess.BoardSize - 1} {
			if board.Get(chess.Sq(row, col)).Type() == chess.Pawn {
				return fenError(fen, "no pawns on the back ranks", chess.Sq(row, col).String())
			}
		}
	}
	if IsInCheck(board, toMove.Opposite()) {
		return fenError(fen, "side not to move out of check", toMove.Opposite().String()+" in check")
	}
	return nil
}

func fenError(fen, expected, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Expected: expected, Got: got}
}

// BoardToFEN converts a board and side to move to a FEN string.
func BoardToFEN(board *chess.Board, toMove chess.Colour, fullmove int) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	// No castling, no en passant and no halfmove clock are tracked.
	fmt.Fprintf(&sb, " - - 0 %d", fullmove)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(chess.Sq(row, col))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// FEN returns the current position as a FEN string.
func (g *GameState) FEN() string {
	fullmove := g.startMove + len(g.history)/2
	if g.toMove == chess.White && len(g.history)%2 == 1 {
		fullmove++
	}
	return BoardToFEN(g.board, g.toMove, fullmove)
}
