package engine

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Outcome classifies the position for the side to move.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Ongoing"
	}
}

// Status is the terminal status of a game. Winner is only meaningful for
// Checkmate.
type Status struct {
	Outcome Outcome
	Winner  chess.Colour
}

// IsTerminal reports whether no further moves can be committed.
func (s Status) IsTerminal() bool {
	return s.Outcome != Ongoing
}

// String returns e.g. "Checkmate(White)".
func (s Status) String() string {
	if s.Outcome == Checkmate {
		return fmt.Sprintf("Checkmate(%v)", s.Winner)
	}
	return s.Outcome.String()
}

// historyRecord is everything needed to take one ply back.
type historyRecord struct {
	move      chess.Move
	promotion chess.PieceType
	undo      chess.Undo
}

// GameState owns one game: the board, whose turn it is, the move history
// and the terminal status. It is the entry point for callers.
//
// A GameState is not safe for concurrent use. Clone it to analyse the
// position from several goroutines.
type GameState struct {
	id      uuid.UUID
	board   *chess.Board
	toMove  chess.Colour
	history []historyRecord
	status  Status

	// The legal set for the current position, valid while legalOK is set.
	legal   []chess.Move
	legalOK bool

	// The fullmove number of the starting position, for FEN output.
	startMove int

	logFile io.Writer
}

// GameOption configures a GameState.
type GameOption func(*GameState)

// WithLog sets the writer that terminal transitions are reported to.
func WithLog(w io.Writer) GameOption {
	return func(g *GameState) {
		g.logFile = w
	}
}

// WithID sets the game identifier instead of generating a fresh one.
func WithID(id uuid.UUID) GameOption {
	return func(g *GameState) {
		g.id = id
	}
}

// NewGame creates a game in the standard starting position, White to move.
func NewGame(opts ...GameOption) *GameState {
	return newGameState(chess.NewStartingBoard(), chess.White, 1, opts)
}

func newGameState(board *chess.Board, toMove chess.Colour, startMove int, opts []GameOption) *GameState {
	g := &GameState{
		id:        uuid.New(),
		board:     board,
		toMove:    toMove,
		startMove: startMove,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the identifier of the game.
func (g *GameState) ID() uuid.UUID {
	return g.id
}

// Board returns a read-only copy of the squares.
func (g *GameState) Board() chess.Grid {
	return g.board.Grid()
}

// SideToMove returns the colour whose turn it is.
func (g *GameState) SideToMove() chess.Colour {
	return g.toMove
}

// KingPosition returns where the given colour's king stands.
func (g *GameState) KingPosition(colour chess.Colour) chess.Square {
	return g.board.KingSquare(colour)
}

// IsInCheck returns true if colour's king is attacked in the current position.
func (g *GameState) IsInCheck(colour chess.Colour) bool {
	return IsInCheck(g.board, colour)
}

// SquareUnderAttack returns true if byColour has a pseudo-legal move to sq.
func (g *GameState) SquareUnderAttack(sq chess.Square, byColour chess.Colour) bool {
	return SquareUnderAttack(g.board, sq, byColour)
}

// Ply returns the number of moves committed so far.
func (g *GameState) Ply() int {
	return len(g.history)
}

// History returns the committed moves, oldest first.
func (g *GameState) History() []chess.Move {
	moves := make([]chess.Move, len(g.history))
	for i, rec := range g.history {
		moves[i] = rec.move
	}
	return moves
}

// LegalMoves returns the legal moves for the side to move in generation
// order and updates the terminal status from the result.
func (g *GameState) LegalMoves() []chess.Move {
	g.refresh()
	out := make([]chess.Move, len(g.legal))
	copy(out, g.legal)
	return out
}

// Status returns the terminal status of the current position.
func (g *GameState) Status() Status {
	g.refresh()
	return g.status
}

// refresh recomputes the legal set and status if a commit or undo has
// invalidated them.
func (g *GameState) refresh() {
	if g.legalOK {
		return
	}
	g.legal = LegalMoves(g.board, g.toMove)
	g.legalOK = true

	previous := g.status
	switch {
	case len(g.legal) > 0:
		g.status = Status{Outcome: Ongoing}
	case IsInCheck(g.board, g.toMove):
		g.status = Status{Outcome: Checkmate, Winner: g.toMove.Opposite()}
	default:
		g.status = Status{Outcome: Stalemate}
	}
	if g.status != previous && g.status.IsTerminal() {
		g.logf("%s after %d plies\n", g.describeStatus(), len(g.history))
	}
}

// Commit plays m, which must equal one of the current legal moves. A
// promoting move requires promotion to name a knight, bishop, rook or
// queen; it is ignored otherwise. Nothing changes when an error is returned.
func (g *GameState) Commit(m chess.Move, promotion chess.PieceType) error {
	g.refresh()
	idx := slices.IndexFunc(g.legal, m.Equal)
	if idx < 0 {
		return &errors.MoveError{Err: errors.ErrInvalidMove, Ply: len(g.history) + 1, Move: m.Notation()}
	}
	move := g.legal[idx]
	if !move.Promotion {
		promotion = chess.NoPieceType
	} else if !promotion.IsPromotionTarget() {
		return &errors.MoveError{Err: errors.ErrInvalidPromotionChoice, Ply: len(g.history) + 1, Move: move.Notation()}
	}

	undo := g.board.Apply(move, promotion)
	g.history = append(g.history, historyRecord{move: move, promotion: promotion, undo: undo})
	g.toMove = g.toMove.Opposite()
	g.legalOK = false
	return nil
}

// Undo takes back the most recent move.
func (g *GameState) Undo() error {
	if len(g.history) == 0 {
		return &errors.MoveError{Err: errors.ErrNoMoveToUndo}
	}
	rec := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.board.Revert(rec.undo)
	g.toMove = g.toMove.Opposite()
	g.status = Status{Outcome: Ongoing}
	g.legalOK = false
	return nil
}

// Clone returns an independent copy of the game, sharing its ID.
func (g *GameState) Clone() *GameState {
	c := *g
	c.board = g.board.Copy()
	c.history = make([]historyRecord, len(g.history))
	copy(c.history, g.history)
	c.legal = make([]chess.Move, len(g.legal))
	copy(c.legal, g.legal)
	return &c
}

// SetLog replaces the writer that terminal transitions are reported to.
// A nil writer silences the game.
func (g *GameState) SetLog(w io.Writer) {
	g.logFile = w
}

// ParseMove converts square-pair notation such as "e2e4" or "e7e8q" into
// the matching legal move and the promotion piece named by the optional
// fifth letter (NoPieceType when absent).
func (g *GameState) ParseMove(text string) (chess.Move, chess.PieceType, error) {
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, chess.NoPieceType, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: text, Expected: "square pair"}
	}
	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return chess.Move{}, chess.NoPieceType, errors.Wrapf(err, "origin of %q", text)
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return chess.Move{}, chess.NoPieceType, errors.Wrapf(err, "destination of %q", text)
	}
	promotion := chess.NoPieceType
	if len(text) == 5 {
		promotion = chess.PieceTypeFromLetter(text[4])
		if !promotion.IsPromotionTarget() {
			return chess.Move{}, chess.NoPieceType, &errors.ParseError{
				Err: errors.ErrInvalidPromotionChoice, Input: text, Column: 5, Expected: "one of q, r, b, n", Got: text[4:],
			}
		}
	}

	g.refresh()
	want := chess.Move{From: from, To: to}
	idx := slices.IndexFunc(g.legal, want.Equal)
	if idx < 0 {
		return chess.Move{}, chess.NoPieceType, &errors.MoveError{Err: errors.ErrInvalidMove, Ply: len(g.history) + 1, Move: text}
	}
	return g.legal[idx], promotion, nil
}

// Play parses text with ParseMove and commits the result.
func (g *GameState) Play(text string) error {
	m, promotion, err := g.ParseMove(text)
	if err != nil {
		return err
	}
	return g.Commit(m, promotion)
}

func (g *GameState) describeStatus() string {
	switch g.status.Outcome {
	case Checkmate:
		return fmt.Sprintf("checkmate: %v wins", g.status.Winner)
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// logf writes a diagnostic line if a log writer is configured.
func (g *GameState) logf(format string, args ...interface{}) {
	if g.logFile == nil {
		return
	}
	fmt.Fprintf(g.logFile, "game %s: "+format, append([]interface{}{g.id}, args...)...)
}
