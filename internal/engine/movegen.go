// Package engine provides chess move generation, legality checking and
// game-state management.
package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Direction and offset tables. The order of each table is the order moves
// are generated in.
var (
	rookDirs    = [4][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	bishopDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJumps = [8][2]int{{-2, -1}, {-2, 1}, {-1, 2}, {1, 2}, {2, -1}, {2, 1}, {-1, -2}, {1, -2}}
	kingSteps   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}
)

// PseudoLegalMoves returns every move of colour's pieces that obeys the
// piece movement rules, ignoring whether the mover's king is left attacked.
// Squares are scanned row by row, each row from column 0.
func PseudoLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			from := chess.Sq(row, col)
			piece := board.Get(from)
			if !piece.Is(colour) {
				continue
			}
			moves = appendPieceMoves(moves, board, from, piece)
		}
	}
	return moves
}

// appendPieceMoves dispatches on the piece type.
func appendPieceMoves(moves []chess.Move, board *chess.Board, from chess.Square, piece chess.Piece) []chess.Move {
	switch piece.Type() {
	case chess.Pawn:
		return appendPawnMoves(moves, board, from, piece.Colour())
	case chess.Knight:
		return appendStepMoves(moves, board, from, piece.Colour(), knightJumps[:])
	case chess.Bishop:
		return appendSlidingMoves(moves, board, from, piece.Colour(), bishopDirs[:])
	case chess.Rook:
		return appendSlidingMoves(moves, board, from, piece.Colour(), rookDirs[:])
	case chess.Queen:
		moves = appendSlidingMoves(moves, board, from, piece.Colour(), bishopDirs[:])
		return appendSlidingMoves(moves, board, from, piece.Colour(), rookDirs[:])
	case chess.King:
		return appendStepMoves(moves, board, from, piece.Colour(), kingSteps[:])
	default:
		panic(fmt.Sprintf("engine: unknown piece type %d on %v", piece.Type(), from))
	}
}

// appendPawnMoves adds single and double pushes, then captures toward
// column-1 and column+1. There is no en passant.
func appendPawnMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour) []chess.Move {
	dir := chess.ColourOffset(colour)

	one := from.Offset(dir, 0)
	if one.InBounds() && board.Get(one).IsEmpty() {
		moves = append(moves, chess.NewMove(from, one, board))
		two := from.Offset(2*dir, 0)
		if from.Row == chess.PawnStartRow(colour) && board.Get(two).IsEmpty() {
			moves = append(moves, chess.NewMove(from, two, board))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if to.InBounds() && board.Get(to).Is(colour.Opposite()) {
			moves = append(moves, chess.NewMove(from, to, board))
		}
	}
	return moves
}

// appendSlidingMoves casts a ray along each direction until it leaves the
// board, captures, or meets a friendly piece.
func appendSlidingMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Move {
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to.InBounds(); to = to.Offset(dir[0], dir[1]) {
			target := board.Get(to)
			if target.IsEmpty() {
				moves = append(moves, chess.NewMove(from, to, board))
				continue
			}
			if !target.Is(colour) {
				moves = append(moves, chess.NewMove(from, to, board))
			}
			break // Blocked
		}
	}
	return moves
}

// appendStepMoves adds each in-bounds offset not occupied by a friendly piece.
func appendStepMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Move {
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if to.InBounds() && !board.Get(to).Is(colour) {
			moves = append(moves, chess.NewMove(from, to, board))
		}
	}
	return moves
}
