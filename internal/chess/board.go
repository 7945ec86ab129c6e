package chess

import "strings"

// Grid is a value copy of the 64 squares, indexed [row][col].
type Grid [BoardSize][BoardSize]Piece

// At returns the piece on sq, or Empty when sq is off the board.
func (g *Grid) At(sq Square) Piece {
	if !sq.InBounds() {
		return Empty
	}
	return g[sq.Row][sq.Col]
}

// Board represents the squares of a chess board.
type Board struct {
	squares Grid

	// Keep track of where the two kings are for check detection.
	// Indexed by Colour.
	kings [2]Square
}

// Change records one square write so it can be reversed.
type Change struct {
	Square Square
	Before Piece
	After  Piece
}

// Undo is the inverse of one Apply: the squares it touched and the king
// positions before it ran.
type Undo struct {
	Changes [2]Change
	Kings   [2]Square
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStartingBoard creates a board with the standard starting position.
func NewStartingBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.squares = Grid{}

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Set(Sq(0, col), B(backRank[col]))
		b.Set(Sq(1, col), B(Pawn))
		b.Set(Sq(6, col), W(Pawn))
		b.Set(Sq(7, col), W(backRank[col]))
	}
}

// Get returns the piece on sq, or Empty when sq is off the board.
func (b *Board) Get(sq Square) Piece {
	return b.squares.At(sq)
}

// Set places piece on sq and returns the record needed to undo the write.
// Placing a king moves that colour's cached king position. Squares off the
// board are ignored.
func (b *Board) Set(sq Square, piece Piece) Change {
	if !sq.InBounds() {
		return Change{Square: sq}
	}
	c := Change{Square: sq, Before: b.squares[sq.Row][sq.Col], After: piece}
	b.squares[sq.Row][sq.Col] = piece
	if piece.Type() == King {
		b.kings[piece.Colour()] = sq
	}
	return c
}

// KingSquare returns the cached position of the given colour's king.
func (b *Board) KingSquare(colour Colour) Square {
	return b.kings[colour]
}

// Apply moves m.Piece from m.From to m.To, overwriting whatever stood there.
// When promoteTo is a piece type the mover becomes that type on arrival.
func (b *Board) Apply(m Move, promoteTo PieceType) Undo {
	u := Undo{Kings: b.kings}
	arriving := b.Get(m.From)
	if promoteTo != NoPieceType {
		arriving = MakePiece(arriving.Colour(), promoteTo)
	}
	u.Changes[0] = b.Set(m.From, Empty)
	u.Changes[1] = b.Set(m.To, arriving)
	return u
}

// Revert restores the board to its state before the Apply that produced u.
func (b *Board) Revert(u Undo) {
	for i := len(u.Changes) - 1; i >= 0; i-- {
		c := u.Changes[i]
		if !c.Square.InBounds() {
			continue
		}
		b.squares[c.Square.Row][c.Square.Col] = c.Before
	}
	b.kings = u.Kings
}

// Grid returns a copy of the squares.
func (b *Board) Grid() Grid {
	return b.squares
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Count returns how many pieces equal to p are on the board.
func (b *Board) Count(p Piece) int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.squares[row][col] == p {
				n++
			}
		}
	}
	return n
}

// String draws the board one rank per line, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(b.squares[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
