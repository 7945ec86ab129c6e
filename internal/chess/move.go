package chess

// Move represents one ply. Two moves are the same move when their origin
// and destination match; see Equal.
type Move struct {
	// Source and destination squares.
	From Square
	To   Square

	// The piece being moved.
	Piece Piece

	// The piece captured (Empty if no capture).
	Captured Piece

	// Whether a pawn reaches the farthest rank with this move.
	Promotion bool
}

// NewMove creates the move from -> to as it would be played on b.
func NewMove(from, to Square, b *Board) Move {
	piece := b.Get(from)
	return Move{
		From:      from,
		To:        to,
		Piece:     piece,
		Captured:  b.Get(to),
		Promotion: piece.Type() == Pawn && to.Row == PromotionRow(piece.Colour()),
	}
}

// ID returns the canonical identifier of the move, built from the four
// coordinates (fromRow, fromCol, toRow, toCol) as decimal digits.
func (m Move) ID() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

// Equal reports whether m and other have the same origin and destination.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion
}

// Notation returns the square-pair form of the move, e.g. "e2e4".
func (m Move) Notation() string {
	return m.From.String() + m.To.String()
}

// String implements fmt.Stringer.
func (m Move) String() string {
	return m.Notation()
}
