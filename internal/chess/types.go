// Package chess provides core chess types and operations.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PieceType is one of the six chess piece kinds.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes lists every piece type in declaration order.
var PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if t >= 0 && int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// IsPromotionTarget reports whether a pawn may promote to this type.
func (t PieceType) IsPromotionTarget() bool {
	switch t {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// PieceTypeFromLetter converts a letter in either case to a piece type.
// It returns NoPieceType for anything else.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece is the content of a square: Empty, or a piece type with a colour.
type Piece uint8

// Empty is an unoccupied square.
const Empty Piece = 0

// pieceShift is used for encoding coloured pieces.
const pieceShift = 1

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, t PieceType) Piece {
	return Piece(int(t)<<pieceShift | int(colour))
}

// W creates a white piece.
func W(t PieceType) Piece {
	return MakePiece(White, t)
}

// B creates a black piece.
func B(t PieceType) Piece {
	return MakePiece(Black, t)
}

// Type extracts the piece type. Empty yields NoPieceType.
func (p Piece) Type() PieceType {
	return PieceType(p >> pieceShift)
}

// Colour extracts the colour. The result is meaningless for Empty.
func (p Piece) Colour() Colour {
	return Colour(p & 0x01)
}

// IsEmpty reports whether the square holds nothing.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// Is reports whether p is a piece of the given colour.
func (p Piece) Is(colour Colour) bool {
	return p != Empty && p.Colour() == colour
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black,
// '.' for Empty.
func (p Piece) Letter() byte {
	if p == Empty {
		return '.'
	}
	l := p.Type().Letter()
	if p.Colour() == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight" or "Empty".
func (p Piece) String() string {
	if p == Empty {
		return "Empty"
	}
	return p.Colour().String() + " " + p.Type().String()
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	ColBase  = 'a'
	RankBase = '1'
)

// Square is a board coordinate. Row 0 is Black's home rank and row 7 is
// White's home rank; Col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{row, col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square displaced by (dr, dc).
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// File returns the file letter 'a'..'h'.
func (s Square) File() byte {
	return byte(ColBase + s.Col)
}

// Rank returns the rank digit '1'..'8'.
func (s Square) Rank() byte {
	return byte(RankBase + BoardSize - 1 - s.Row)
}

// String returns the algebraic name of the square, e.g. "e2".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts an algebraic square name such as "e2" to a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Expected: "file and rank"}
	}
	file, rank := name[0], name[1]
	if file < ColBase || file > ColBase+BoardSize-1 {
		return Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Column: 1, Expected: "file a-h", Got: string(file)}
	}
	if rank < RankBase || rank > RankBase+BoardSize-1 {
		return Square{}, &errors.ParseError{Err: errors.ErrInvalidSquare, Input: name, Column: 2, Expected: "rank 1-8", Got: string(rank)}
	}
	return Square{Row: BoardSize - 1 - int(rank-RankBase), Col: int(file - ColBase)}, nil
}

// PromotionRow returns the farthest row for a pawn of the given colour.
func PromotionRow(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PawnStartRow returns the row a pawn of the given colour starts on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return BoardSize - 2
	}
	return 1
}

// ColourOffset returns the row direction a pawn of the given colour advances in.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}
