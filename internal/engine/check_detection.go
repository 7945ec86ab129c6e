package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// SquareUnderAttack returns true if any pseudo-legal move of byColour ends
// on sq. Every query runs a full move generation pass for byColour.
func SquareUnderAttack(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, m := range PseudoLegalMoves(board, byColour) {
		if m.To == sq {
			return true
		}
	}
	return false
}

// IsInCheck returns true if the given colour's king is attacked.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	return SquareUnderAttack(board, board.KingSquare(colour), colour.Opposite())
}
