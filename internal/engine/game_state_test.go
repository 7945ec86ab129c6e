package engine_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// snapshot is the externally visible state a commit/undo pair must restore.
type snapshot struct {
	Grid   chess.Grid
	ToMove chess.Colour
	WKing  chess.Square
	BKing  chess.Square
	Ply    int
	FEN    string
}

func takeSnapshot(g *engine.GameState) snapshot {
	return snapshot{
		Grid:   g.Board(),
		ToMove: g.SideToMove(),
		WKing:  g.KingPosition(chess.White),
		BKing:  g.KingPosition(chess.Black),
		Ply:    g.Ply(),
		FEN:    g.FEN(),
	}
}

func TestNewGame(t *testing.T) {
	g := engine.NewGame()

	testutil.AssertEqual(t, g.SideToMove(), chess.White)
	testutil.AssertEqual(t, g.KingPosition(chess.White), chess.Sq(7, 4))
	testutil.AssertEqual(t, g.KingPosition(chess.Black), chess.Sq(0, 4))
	testutil.AssertEqual(t, g.Board(), chess.NewStartingBoard().Grid())
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	testutil.AssertEqual(t, g.Status(), engine.Status{Outcome: engine.Ongoing})
	if g.ID() == uuid.Nil {
		t.Error("ID() is the nil UUID")
	}
}

func TestNewGame_WithID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	g := engine.NewGame(engine.WithID(id))
	testutil.AssertEqual(t, g.ID(), id)
}

func TestLegalMoves_StartingPosition(t *testing.T) {
	g := engine.NewGame()
	moves := g.LegalMoves()

	if len(moves) != 20 {
		t.Fatalf("len(LegalMoves()) = %d, want 20", len(moves))
	}
	pawn, knight := 0, 0
	for _, m := range moves {
		if m.IsCapture() {
			t.Errorf("%s is a capture", m)
		}
		switch m.Piece {
		case chess.W(chess.Pawn):
			pawn++
		case chess.W(chess.Knight):
			knight++
		default:
			t.Errorf("%s moves %v", m, m.Piece)
		}
	}
	testutil.AssertEqual(t, pawn, 16, "pawn moves")
	testutil.AssertEqual(t, knight, 4, "knight moves")
}

func TestLegalMoves_ReturnsCopy(t *testing.T) {
	g := engine.NewGame()
	moves := g.LegalMoves()
	moves[0] = chess.Move{}
	testutil.AssertEqual(t, g.LegalMoves()[0].Notation(), "a2a3")
}

func TestCommit(t *testing.T) {
	g := engine.NewGame()
	e2e4 := chess.Move{From: chess.Sq(6, 4), To: chess.Sq(4, 4)}

	testutil.AssertNoError(t, g.Commit(e2e4, chess.NoPieceType))

	testutil.AssertEqual(t, g.SideToMove(), chess.Black)
	testutil.AssertEqual(t, g.Ply(), 1)
	grid := g.Board()
	testutil.AssertEqual(t, grid.At(chess.Sq(6, 4)), chess.Empty)
	testutil.AssertEqual(t, grid.At(chess.Sq(4, 4)), chess.W(chess.Pawn))
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1")

	// History holds the move as generated, not the bare coordinates passed in.
	hist := g.History()
	testutil.AssertEqual(t, hist[0].Piece, chess.W(chess.Pawn))
}

func TestCommit_InvalidMove(t *testing.T) {
	tests := []struct {
		name string
		move chess.Move
	}{
		{"pawn three squares", chess.Move{From: chess.Sq(6, 4), To: chess.Sq(3, 4)}},
		{"black piece on white's turn", chess.Move{From: chess.Sq(1, 4), To: chess.Sq(3, 4)}},
		{"empty origin", chess.Move{From: chess.Sq(4, 4), To: chess.Sq(3, 4)}},
		{"off the board", chess.Move{From: chess.Sq(8, 4), To: chess.Sq(9, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGame()
			before := takeSnapshot(g)

			err := g.Commit(tt.move, chess.NoPieceType)
			testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidMove)

			var moveErr *chesserrors.MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("error %v is not a *MoveError", err)
			}
			testutil.AssertEqual(t, moveErr.Ply, 1)
			testutil.AssertEqual(t, takeSnapshot(g), before, "state after rejected commit")
		})
	}
}

func TestCommit_MoveThatLeavesKingInCheck(t *testing.T) {
	// The d2 pawn is pinned against e1 by the bishop on b4.
	g := testutil.MustGameFromFEN(t, "4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1")
	err := g.Commit(chess.Move{From: chess.Sq(6, 3), To: chess.Sq(5, 3)}, chess.NoPieceType)
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidMove)
}

func TestUndo(t *testing.T) {
	g := engine.NewGame()
	start := takeSnapshot(g)

	testutil.MustPlay(t, g, "e2e4 e7e5 e1e2")
	testutil.AssertEqual(t, g.KingPosition(chess.White), chess.Sq(6, 4))

	testutil.AssertNoError(t, g.Undo())
	testutil.AssertEqual(t, g.KingPosition(chess.White), chess.Sq(7, 4))
	testutil.AssertEqual(t, g.SideToMove(), chess.White)

	testutil.AssertNoError(t, g.Undo())
	testutil.AssertNoError(t, g.Undo())
	testutil.AssertEqual(t, takeSnapshot(g), start)
	testutil.AssertEqual(t, len(g.LegalMoves()), 20)
}

func TestUndo_EmptyHistory(t *testing.T) {
	g := engine.NewGame()
	before := takeSnapshot(g)

	testutil.AssertErrorIs(t, g.Undo(), chesserrors.ErrNoMoveToUndo)
	testutil.AssertEqual(t, takeSnapshot(g), before)
}

func TestUndo_RestoresCapturedPiece(t *testing.T) {
	g := engine.NewGame()
	testutil.MustPlay(t, g, "e2e4 d7d5 e4d5")

	last := g.History()[2]
	testutil.AssertEqual(t, last.Captured, chess.B(chess.Pawn))

	testutil.AssertNoError(t, g.Undo())
	grid := g.Board()
	testutil.AssertEqual(t, grid.At(chess.Sq(3, 3)), chess.B(chess.Pawn))
	testutil.AssertEqual(t, grid.At(chess.Sq(4, 4)), chess.W(chess.Pawn))
}

func TestCommitUndo_RoundTrip(t *testing.T) {
	positions := []struct {
		name string
		fen  string
	}{
		{"start", engine.InitialFEN},
		{"middlegame", testutil.MiddlegameFEN},
		{"promotion", testutil.PromotionFEN},
		{"fool's mate pending", testutil.FoolsMateFEN},
		{"black promotes with capture", "1r5k/P7/8/8/8/8/6p1/K4N2 b - - 0 1"},
	}

	for _, pos := range positions {
		t.Run(pos.name, func(t *testing.T) {
			g := testutil.MustGameFromFEN(t, pos.fen)
			before := takeSnapshot(g)
			for _, m := range g.LegalMoves() {
				if err := g.Commit(m, chess.Queen); err != nil {
					t.Fatalf("Commit(%s) error: %v", m, err)
				}
				if err := g.Undo(); err != nil {
					t.Fatalf("Undo after %s error: %v", m, err)
				}
				testutil.AssertEqual(t, takeSnapshot(g), before, "after %s and undo", m)
			}
		})
	}
}

func TestLegalMoves_NeverCaptureKing(t *testing.T) {
	for _, fen := range []string{engine.InitialFEN, testutil.MiddlegameFEN, testutil.FoolsMateFEN} {
		g := testutil.MustGameFromFEN(t, fen)
		for _, first := range g.LegalMoves() {
			if err := g.Commit(first, chess.Queen); err != nil {
				t.Fatalf("Commit(%s) error: %v", first, err)
			}
			enemyKing := g.KingPosition(g.SideToMove().Opposite())
			for _, reply := range g.LegalMoves() {
				if reply.To == enemyKing {
					t.Errorf("%s: reply %s captures the king", first, reply)
				}
			}
			if err := g.Undo(); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestLegalMoves_AnswersToCheck(t *testing.T) {
	g := testutil.MustGameFromFEN(t, testutil.MiddlegameFEN)
	testutil.MustPlay(t, g, "c4f7")

	if !g.IsInCheck(chess.Black) {
		t.Fatal("Black should be in check after Bxf7+")
	}
	moves := g.LegalMoves()
	testutil.AssertEqual(t, testutil.Notations(moves), []string{"e8f8", "e8f7", "e8e7"})

	for _, m := range moves {
		testutil.AssertNoError(t, g.Commit(m, chess.NoPieceType))
		testutil.AssertFalse(t, g.IsInCheck(chess.Black), "black king attacked after %s", m)
		testutil.AssertNoError(t, g.Undo())
	}
	testutil.AssertEqual(t, g.Status(), engine.Status{Outcome: engine.Ongoing})
}

func TestFoolsMate(t *testing.T) {
	var log bytes.Buffer
	g := engine.NewGame(engine.WithLog(&log))
	testutil.MustPlay(t, g, "f2f3 e7e5 g2g4 d8h4")

	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Fatalf("LegalMoves() = %v, want none", testutil.Notations(moves))
	}
	testutil.AssertTrue(t, g.IsInCheck(chess.White), "white in check")
	testutil.AssertEqual(t, g.Status(), engine.Status{Outcome: engine.Checkmate, Winner: chess.Black})
	testutil.AssertTrue(t, g.Status().IsTerminal())
	testutil.AssertEqual(t, g.Status().String(), "Checkmate(Black)")
	testutil.AssertContains(t, log.String(), "checkmate: Black wins after 4 plies")

	// No further commits are accepted.
	err := g.Commit(chess.Move{From: chess.Sq(6, 0), To: chess.Sq(5, 0)}, chess.NoPieceType)
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidMove)

	// Undo leaves the terminal state.
	testutil.AssertNoError(t, g.Undo())
	testutil.AssertEqual(t, g.Status(), engine.Status{Outcome: engine.Ongoing})
	testutil.AssertEqual(t, g.SideToMove(), chess.Black)
	testutil.AssertTrue(t, len(g.LegalMoves()) > 0)
}

func TestStalemate(t *testing.T) {
	var log bytes.Buffer
	g, err := engine.NewGameFromFEN(testutil.PawnStalemateFEN, engine.WithLog(&log))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, len(g.LegalMoves()), 0)
	testutil.AssertFalse(t, g.IsInCheck(chess.Black))
	testutil.AssertEqual(t, g.Status(), engine.Status{Outcome: engine.Stalemate})
	testutil.AssertEqual(t, g.Status().String(), "Stalemate")
	testutil.AssertContains(t, log.String(), "stalemate")
}

func TestStalemate_ReachedByMove(t *testing.T) {
	// 1.Kf6-f7 leaves the black king on h8 without a move.
	g := testutil.MustGameFromFEN(t, "7k/8/5KP1/8/8/8/8/8 w - - 0 1")
	testutil.MustPlay(t, g, "f6f7")
	testutil.AssertEqual(t, g.Status().Outcome, engine.Stalemate)
	testutil.AssertEqual(t, g.FEN(), testutil.PawnStalemateFEN)
}

func TestPromotion(t *testing.T) {
	a7a8 := chess.Move{From: chess.Sq(1, 0), To: chess.Sq(0, 0)}

	t.Run("invalid choices are rejected without mutation", func(t *testing.T) {
		for _, choice := range []chess.PieceType{chess.NoPieceType, chess.Pawn, chess.King, chess.PieceType(9)} {
			g := testutil.MustGameFromFEN(t, testutil.PromotionFEN)
			before := takeSnapshot(g)
			err := g.Commit(a7a8, choice)
			testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidPromotionChoice, "choice %v", choice)
			testutil.AssertEqual(t, takeSnapshot(g), before, "choice %v", choice)
		}
	})

	for _, choice := range []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
		t.Run(choice.String(), func(t *testing.T) {
			g := testutil.MustGameFromFEN(t, testutil.PromotionFEN)
			testutil.AssertNoError(t, g.Commit(a7a8, choice))

			grid := g.Board()
			testutil.AssertEqual(t, grid.At(chess.Sq(0, 0)), chess.W(choice))
			testutil.AssertEqual(t, grid.At(chess.Sq(1, 0)), chess.Empty)

			testutil.AssertNoError(t, g.Undo())
			grid = g.Board()
			testutil.AssertEqual(t, grid.At(chess.Sq(1, 0)), chess.W(chess.Pawn))
			testutil.AssertEqual(t, grid.At(chess.Sq(0, 0)), chess.Empty)
		})
	}

	t.Run("choice ignored on ordinary moves", func(t *testing.T) {
		g := engine.NewGame()
		testutil.AssertNoError(t, g.Commit(chess.Move{From: chess.Sq(6, 4), To: chess.Sq(4, 4)}, chess.Queen))
		grid := g.Board()
		testutil.AssertEqual(t, grid.At(chess.Sq(4, 4)), chess.W(chess.Pawn))
	})
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		text      string
		wantMove  string
		wantPromo chess.PieceType
		wantErr   error
	}{
		{"plain move", engine.InitialFEN, "e2e4", "e2e4", chess.NoPieceType, nil},
		{"knight move", engine.InitialFEN, "g1f3", "g1f3", chess.NoPieceType, nil},
		{"promotion letter", testutil.PromotionFEN, "a7a8n", "a7a8", chess.Knight, nil},
		{"uppercase promotion letter", testutil.PromotionFEN, "a7a8Q", "a7a8", chess.Queen, nil},
		{"illegal", engine.InitialFEN, "e2e5", "", chess.NoPieceType, chesserrors.ErrInvalidMove},
		{"bad file", engine.InitialFEN, "i2e4", "", chess.NoPieceType, chesserrors.ErrInvalidSquare},
		{"bad rank", engine.InitialFEN, "e2e9", "", chess.NoPieceType, chesserrors.ErrInvalidSquare},
		{"too short", engine.InitialFEN, "e2", "", chess.NoPieceType, chesserrors.ErrInvalidSquare},
		{"king promotion", testutil.PromotionFEN, "a7a8k", "", chess.NoPieceType, chesserrors.ErrInvalidPromotionChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGameFromFEN(t, tt.fen)
			m, promo, err := g.ParseMove(tt.text)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, m.Notation(), tt.wantMove)
			testutil.AssertEqual(t, promo, tt.wantPromo)
		})
	}
}

func TestPlay_PromotionWithoutLetter(t *testing.T) {
	g := testutil.MustGameFromFEN(t, testutil.PromotionFEN)
	testutil.AssertErrorIs(t, g.Play("a7a8"), chesserrors.ErrInvalidPromotionChoice)
	testutil.AssertNoError(t, g.Play("a7a8q"))
	grid := g.Board()
	testutil.AssertEqual(t, grid.At(chess.Sq(0, 0)), chess.W(chess.Queen))
}

func TestClone(t *testing.T) {
	g := engine.NewGame()
	testutil.MustPlay(t, g, "e2e4 e7e5")

	c := g.Clone()
	testutil.AssertEqual(t, c.ID(), g.ID())
	testutil.AssertEqual(t, takeSnapshot(c), takeSnapshot(g))

	testutil.MustPlay(t, c, "g1f3")
	testutil.AssertEqual(t, g.Ply(), 2, "original ply after clone moved")
	testutil.AssertEqual(t, g.SideToMove(), chess.White)
	grid := g.Board()
	testutil.AssertEqual(t, grid.At(chess.Sq(7, 6)), chess.W(chess.Knight))

	testutil.AssertNoError(t, c.Undo())
	testutil.AssertNoError(t, c.Undo())
	testutil.AssertEqual(t, g.Ply(), 2, "original ply after clone undid")
}

func TestSquareUnderAttack(t *testing.T) {
	g := engine.NewGame()
	tests := []struct {
		square string
		by     chess.Colour
		want   bool
	}{
		{"f3", chess.White, true},  // knight g1
		{"e3", chess.White, true},  // pawn push e2e3
		{"e4", chess.White, true},  // pawn double push
		{"e5", chess.White, false}, // nothing reaches
		{"e1", chess.White, false}, // own king square
		{"f6", chess.Black, true},  // knight g8
		{"d4", chess.Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			sq, err := chess.ParseSquare(tt.square)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, g.SquareUnderAttack(sq, tt.by), tt.want)
		})
	}
}

func TestSetLog_SilencesClone(t *testing.T) {
	var log bytes.Buffer
	g := engine.NewGame(engine.WithLog(&log))
	testutil.MustPlay(t, g, "f2f3 e7e5 g2g4")

	c := g.Clone()
	c.SetLog(nil)
	testutil.MustPlay(t, c, "d8h4")
	testutil.AssertEqual(t, c.Status().Outcome, engine.Checkmate)
	testutil.AssertEqual(t, log.String(), "")

	testutil.MustPlay(t, g, "d8h4")
	g.Status()
	testutil.AssertContains(t, log.String(), "checkmate: Black wins after 4 plies")
}
