// Package boardview provides the read-only board snapshot the
// interpreter evaluates scripts against, plus an adapter that builds one
// from a classical internal/chess.Board position.
//
// A Snapshot describes a single acting piece's view of the board: its
// own position and effective kind, the full occupancy map, a generic
// per-key integer state table, and the set of squares the enemy
// attacks. It is handed to the interpreter by value/reference and never
// mutated during Execute.
package boardview

import (
	"strings"

	"github.com/haldric/movescript/internal/chess"
	"github.com/haldric/movescript/internal/engine"
)

// Coord is a board square addressed by zero-based (x, y) offset. The
// board need not be 8x8 or square; Width/Height on Snapshot carry its
// actual extent so non-standard variant boards are representable.
type Coord struct {
	X, Y int
}

// Occupant names whichever piece sits on a square and which side it
// belongs to.
type Occupant struct {
	Name  string
	White bool
}

// Snapshot is the concrete, read-only board view passed to
// interp.Interpreter.Execute. Its method set satisfies interp's
// BoardSnapshot interface structurally; boardview does not import
// interp to avoid a dependency cycle between the two packages.
type Snapshot struct {
	BoardWidth, BoardHeight int

	// The acting piece.
	PieceXPos, PieceYPos int
	Name                 string
	White                bool

	// Occupancy is every other piece on the board, keyed by Coord. The
	// acting piece itself is not required to appear here.
	Occupancy map[Coord]Occupant

	// StateTable is the per-key integer scratch table if-state/set-state
	// read and write tags against. Missing keys default to 0.
	StateTable map[string]int

	// DangerSquares is the set of squares the enemy attacks, computed
	// by an external collaborator (for classical positions,
	// engine.AttackedSquares). The interpreter never computes this
	// itself.
	DangerSquares map[Coord]struct{}

	// InCheckFlag reports whether the acting side's king is presently
	// in check.
	InCheckFlag bool
}

// PieceX returns the acting piece's X coordinate.
func (s *Snapshot) PieceX() int { return s.PieceXPos }

// PieceY returns the acting piece's Y coordinate.
func (s *Snapshot) PieceY() int { return s.PieceYPos }

// PieceName returns the acting piece's effective kind name.
func (s *Snapshot) PieceName() string { return s.Name }

// PieceIsWhite reports whether the acting piece belongs to White.
func (s *Snapshot) PieceIsWhite() bool { return s.White }

// Width returns the board's horizontal extent.
func (s *Snapshot) Width() int { return s.BoardWidth }

// Height returns the board's vertical extent.
func (s *Snapshot) Height() int { return s.BoardHeight }

// InBounds reports whether (x, y) lies within [0, Width) x [0, Height).
func (s *Snapshot) InBounds(x, y int) bool {
	return x >= 0 && x < s.BoardWidth && y >= 0 && y < s.BoardHeight
}

// Empty reports whether (x, y) is in bounds and unoccupied.
func (s *Snapshot) Empty(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	_, occupied := s.Occupancy[Coord{x, y}]
	return !occupied
}

// Enemy reports whether (x, y) holds a piece belonging to the opposite
// side from the acting piece.
func (s *Snapshot) Enemy(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	occ, ok := s.Occupancy[Coord{x, y}]
	return ok && occ.White != s.White
}

// Friendly reports whether (x, y) holds a piece belonging to the same
// side as the acting piece.
func (s *Snapshot) Friendly(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	occ, ok := s.Occupancy[Coord{x, y}]
	return ok && occ.White == s.White
}

// PieceNamed reports whether (x, y) holds a piece with the given
// effective kind name, regardless of side.
func (s *Snapshot) PieceNamed(x, y int, name string) bool {
	if !s.InBounds(x, y) {
		return false
	}
	occ, ok := s.Occupancy[Coord{x, y}]
	return ok && occ.Name == name
}

// Danger reports whether (x, y) is attacked by the enemy side.
func (s *Snapshot) Danger(x, y int) bool {
	_, ok := s.DangerSquares[Coord{x, y}]
	return ok
}

// InCheck reports whether the acting side's king is in check.
func (s *Snapshot) InCheck() bool {
	return s.InCheckFlag
}

// State returns the integer stored under key, defaulting to 0.
func (s *Snapshot) State(key string) int {
	if v, ok := s.StateTable[key]; ok {
		return v
	}
	return 0
}

// FromChessBoard builds a Snapshot for the piece at (col, rank) on a
// classical 8x8 chess.Board. The acting piece is named effectiveKind;
// every other occupant is named after its chess.Piece in lower case
// (e.g. "pawn", "knight"). danger squares are
// computed via internal/engine's check-detection attacker map, and
// in_check via engine.IsInCheck, since the interpreter never derives
// either itself.
func FromChessBoard(board *chess.Board, col chess.Col, rank chess.Rank, effectiveKind string, state map[string]int) *Snapshot {
	coloured := board.Get(col, rank)
	white := chess.ExtractColour(coloured) == chess.White
	enemyColour := chess.Black
	if !white {
		enemyColour = chess.White
	}

	occupancy := make(map[Coord]Occupant)
	for c := chess.Col('a'); c <= 'h'; c++ {
		for r := chess.Rank('1'); r <= '8'; r++ {
			if c == col && r == rank {
				continue
			}
			p := board.Get(c, r)
			if p == chess.Empty || p == chess.Off {
				continue
			}
			occupancy[Coord{int(c - 'a'), int(r - '1')}] = Occupant{
				Name:  strings.ToLower(chess.ExtractPiece(p).String()),
				White: chess.ExtractColour(p) == chess.White,
			}
		}
	}

	danger := make(map[Coord]struct{})
	for _, sq := range engine.AttackedSquares(board, enemyColour) {
		danger[Coord{int(sq.ToCol - 'a'), int(sq.ToRank - '1')}] = struct{}{}
	}

	return &Snapshot{
		BoardWidth:    8,
		BoardHeight:   8,
		PieceXPos:     int(col - 'a'),
		PieceYPos:     int(rank - '1'),
		Name:          effectiveKind,
		White:         white,
		Occupancy:     occupancy,
		StateTable:    state,
		DangerSquares: danger,
		InCheckFlag:   engine.IsInCheck(board, chess.ExtractColour(coloured)),
	}
}
