package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed = 0x5eed

// pieceValues is the number of distinct chess.Piece encodings.
const pieceValues = 16

var (
	pieceKeys [chess.BoardSize * chess.BoardSize][pieceValues]uint64
	sideKey   uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for sq := range pieceKeys {
		for p := 1; p < pieceValues; p++ {
			pieceKeys[sq][p] = r.Uint64()
		}
	}
	sideKey = r.Uint64()
}

// GenerateZobristHash returns the Zobrist hash of the squares and the side
// to move. Empty squares contribute nothing.
func GenerateZobristHash(grid chess.Grid, toMove chess.Colour) uint64 {
	var hash uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := grid[row][col]; p != chess.Empty {
				hash ^= pieceKeys[row*chess.BoardSize+col][p&(pieceValues-1)]
			}
		}
	}
	if toMove == chess.White {
		hash ^= sideKey
	}
	return hash
}

// WeakHash is a cheap position checksum used as a second check when two
// positions share a Zobrist hash.
func WeakHash(grid chess.Grid) uint32 {
	var sum uint32
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			sum = sum*31 + uint32(grid[row][col])
		}
	}
	return sum
}
