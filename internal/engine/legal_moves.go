package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// LegalMoves returns colour's pseudo-legal moves that do not leave its own
// king attacked, in generation order. Each candidate is played on board,
// tested and reverted, so board is unchanged when LegalMoves returns.
func LegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	pseudo := PseudoLegalMoves(board, colour)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if !leavesKingAttacked(board, m, colour) {
			legal = append(legal, m)
		}
	}
	return legal
}

// leavesKingAttacked simulates m and reports whether colour's king is in
// check afterwards. The promotion piece does not affect the answer, so the
// pawn stays a pawn during the simulation.
func leavesKingAttacked(board *chess.Board, m chess.Move, colour chess.Colour) bool {
	undo := board.Apply(m, chess.NoPieceType)
	inCheck := IsInCheck(board, colour)
	board.Revert(undo)
	return inCheck
}
