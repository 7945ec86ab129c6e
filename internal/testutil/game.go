// Package testutil provides shared test utilities for the rules engine.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Well-known positions used across tests. None has castling rights or an
// en passant square, so every move generator agrees on them.
const (
	// FoolsMateFEN is the position after 1.f3 e5 2.g4, Black to mate.
	FoolsMateFEN = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b - - 0 2"

	// PawnStalemateFEN has Black to move with a king boxed in by a pawn and
	// a king and no other black piece.
	PawnStalemateFEN = "7k/5K2/6P1/8/8/8/8/8 b - - 0 1"

	// PromotionFEN has a white pawn one step from promotion.
	PromotionFEN = "8/P6k/8/8/8/8/8/K7 w - - 0 1"

	// MiddlegameFEN is an open game position where both sides have captures
	// and White has a checking capture on f7.
	MiddlegameFEN = "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQK2R w - - 0 5"
)

// MustGameFromFEN creates a game from fen.
// It calls t.Fatal if the FEN is rejected.
func MustGameFromFEN(t *testing.T, fen string) *engine.GameState {
	t.Helper()
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
	}
	return g
}

// MustPlay commits a space-separated list of square-pair moves such as
// "f2f3 e7e5 g2g4". It calls t.Fatal on the first move that is rejected.
func MustPlay(t *testing.T, g *engine.GameState, moves string) {
	t.Helper()
	for i, text := range strings.Fields(moves) {
		if err := g.Play(text); err != nil {
			t.Fatalf("move %d (%s) rejected: %v", i+1, text, err)
		}
	}
}

// Notations returns the square-pair notation of each move.
func Notations(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}
