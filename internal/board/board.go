package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
// The rights are carried with the board but move application never updates them.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the castling rights as "KQkq" letters, "-" if none.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Grid is a copy of the 64 squares of a board.
type Grid [64]Piece

// At returns the piece on sq, or NoPiece for an invalid square.
func (g *Grid) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return g[sq]
}

// String returns the grid as eight diagram rows, 8th rank first.
func (g *Grid) String() string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sb.WriteString(g[NewSquare(rank, file)].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rows returns the grid as eight diagram strings, 8th rank first.
func (g *Grid) Rows() []string {
	return strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
}

// Board is a mailbox chess board together with its en passant target and
// castling rights. A Board is a plain value: callers own it and pass it to
// every operation, and it is not safe for concurrent mutation.
type Board struct {
	squares Grid

	// EnPassant is the square skipped by the last double pawn advance, or NoSquare.
	EnPassant Square

	Castling CastlingRights
}

var startRows = [8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

// New creates the standard starting position.
func New() *Board {
	b, _ := FromDiagram(startRows[:]...)
	b.Castling = AllCastling
	return b
}

// FromDiagram builds a board from eight rank strings, the 8th rank first.
// Each string holds eight piece letters (uppercase white, lowercase black) or
// '.' for an empty square. The resulting board has no en passant target and no
// castling rights.
func FromDiagram(rows ...string) (*Board, error) {
	if len(rows) != 8 {
		return nil, fmt.Errorf("diagram needs 8 ranks, got %d", len(rows))
	}
	b := &Board{EnPassant: NoSquare}
	for rank, row := range rows {
		if len(row) != 8 {
			return nil, fmt.Errorf("rank %d: want 8 squares, got %d", 8-rank, len(row))
		}
		for file := 0; file < 8; file++ {
			c := row[file]
			p := PieceFromChar(c)
			if p == NoPiece && c != '.' {
				return nil, fmt.Errorf("rank %d: unknown piece %q", 8-rank, c)
			}
			b.squares[NewSquare(rank, file)] = p
		}
	}
	return b, nil
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := *b
	return &newBoard
}

// Snapshot returns an independent copy of the squares.
func (b *Board) Snapshot() Grid {
	return b.squares
}

// PieceAt returns the piece at the given square, or NoPiece if empty or off board.
func (b *Board) PieceAt(sq Square) Piece {
	return b.squares.At(sq)
}

// IsEmpty returns true if the square holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == NoPiece
}

// Set places p on sq. Setting NoPiece clears the square.
func (b *Board) Set(sq Square, p Piece) {
	if sq.IsValid() {
		b.squares[sq] = p
	}
}

// Apply moves the piece on from to to and returns whatever stood on to.
// The en passant target is set to the skipped square after a double pawn
// advance and cleared after any other move. Castling moves only the king and
// an en passant capture leaves the bypassed pawn in place, so that Restore is
// the exact inverse of Apply on the squares. Both squares must be valid.
func (b *Board) Apply(from, to Square) Piece {
	piece := b.squares[from]
	captured := b.squares[to]

	b.squares[to] = piece
	b.squares[from] = NoPiece

	if piece.Type() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		b.EnPassant = NewSquare((from.Rank()+to.Rank())/2, from.File())
	} else {
		b.EnPassant = NoSquare
	}

	return captured
}

// Restore undoes Apply(from, to) given the piece Apply returned.
// The en passant target is left as Apply set it.
func (b *Board) Restore(from, to Square, captured Piece) {
	b.squares[from] = b.squares[to]
	b.squares[to] = captured
}

// KingSquare returns the square of the given color's king, or NoSquare if absent.
func (b *Board) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := Square(0); sq < NoSquare; sq++ {
		if b.squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// String returns the board as a diagram, 8th rank first.
func (b *Board) String() string {
	return b.squares.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
