package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

func TestFixturePositionsLoad(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		toMove chess.Colour
	}{
		{"fool's mate", FoolsMateFEN, chess.Black},
		{"pawn stalemate", PawnStalemateFEN, chess.Black},
		{"promotion", PromotionFEN, chess.White},
		{"middlegame", MiddlegameFEN, chess.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustGameFromFEN(t, tt.fen)
			if got := g.SideToMove(); got != tt.toMove {
				t.Errorf("SideToMove() = %v, want %v", got, tt.toMove)
			}
		})
	}
}

func TestMustPlay(t *testing.T) {
	g := engine.NewGame()
	MustPlay(t, g, "e2e4  e7e5\tg1f3")

	if got := g.Ply(); got != 3 {
		t.Errorf("Ply() = %d, want 3", got)
	}
	AssertEqual(t, Notations(g.History()), []string{"e2e4", "e7e5", "g1f3"})
}

func TestMustPlay_Empty(t *testing.T) {
	g := engine.NewGame()
	MustPlay(t, g, "   ")
	if got := g.Ply(); got != 0 {
		t.Errorf("Ply() = %d, want 0", got)
	}
}

func TestNotations(t *testing.T) {
	moves := []chess.Move{
		{From: chess.Sq(6, 4), To: chess.Sq(4, 4)},
		{From: chess.Sq(0, 6), To: chess.Sq(2, 5)},
	}
	AssertEqual(t, Notations(moves), []string{"e2e4", "g8f6"})
	AssertEqual(t, Notations(nil), []string{})
}
