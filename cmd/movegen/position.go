package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/haldric/movescript/internal/boardview"
	"github.com/haldric/movescript/internal/chess"
	"github.com/haldric/movescript/internal/engine"
	"github.com/haldric/movescript/internal/errors"
	"github.com/haldric/movescript/internal/interp"
	"github.com/haldric/movescript/internal/movegen"
)

// loadFENPosition builds the piece list and snapshot factory for a
// classical 8x8 position, generating moves for whichever side the FEN
// records as to move. Effective kind names are the lowercased classical
// piece names ("pawn", "knight", ...), so a -scripts directory written
// for standard chess can drive it directly.
func loadFENPosition(fen string) ([]movegen.Piece, movegen.SnapshotFactory, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "loading FEN %q", fen)
	}

	toMove := board.ToMove
	var pieces []movegen.Piece
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			occ := board.Get(col, rank)
			if occ == chess.Empty || occ == chess.Off {
				continue
			}
			if chess.ExtractColour(occ) != toMove {
				continue
			}
			pieces = append(pieces, movegen.Piece{
				Kind:    strings.ToLower(chess.ExtractPiece(occ).String()),
				IsWhite: toMove == chess.White,
				X:       int(col - 'a'),
				Y:       int(rank - '1'),
			})
		}
	}

	// No ambient custom state for classical FEN positions: set-state/
	// if-state scripts driven off a bare FEN simply see an empty table.
	state := make(map[string]int)
	factory := func(p movegen.Piece) interp.BoardSnapshot {
		col := chess.Col('a' + p.X)
		rank := chess.Rank('1' + p.Y)
		return boardview.FromChessBoard(board, col, rank, p.Kind, state)
	}
	return pieces, factory, nil
}

// snapshotFile is the JSON shape of a -snapshot position file, for
// boards the classical chess.Board type cannot represent (non-8x8
// extents, invented piece kinds).
type snapshotFile struct {
	Width  int                 `json:"width"`
	Height int                 `json:"height"`
	ToMove string              `json:"to_move"`
	Pieces []snapshotPieceJSON `json:"pieces"`
	State  map[string]int      `json:"state"`
}

type snapshotPieceJSON struct {
	Kind  string `json:"kind"`
	White bool   `json:"white"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// loadSnapshotFile builds the piece list and snapshot factory for an
// arbitrary variant board described by a JSON file. Danger squares and
// check status are not computed for this path: they depend on a
// variant's own attack rules, which this CLI has no general way to
// derive, so every snapshot reports Danger()=false and InCheck()=false.
func loadSnapshotFile(path string) ([]movegen.Piece, movegen.SnapshotFactory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading snapshot file %q", path)
	}

	var sf snapshotFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidSnapshot, "parsing snapshot file %q: %v", path, err)
	}

	width, height := sf.Width, sf.Height
	if width <= 0 {
		width = 8
	}
	if height <= 0 {
		height = 8
	}
	toMoveWhite := sf.ToMove != "black"

	var pieces []movegen.Piece
	for _, p := range sf.Pieces {
		if p.White != toMoveWhite {
			continue
		}
		pieces = append(pieces, movegen.Piece{Kind: p.Kind, IsWhite: p.White, X: p.X, Y: p.Y})
	}

	state := sf.State
	if state == nil {
		state = make(map[string]int)
	}

	factory := func(p movegen.Piece) interp.BoardSnapshot {
		occupancy := make(map[boardview.Coord]boardview.Occupant, len(sf.Pieces))
		for _, other := range sf.Pieces {
			if other.X == p.X && other.Y == p.Y {
				continue
			}
			occupancy[boardview.Coord{X: other.X, Y: other.Y}] = boardview.Occupant{Name: other.Kind, White: other.White}
		}
		return &boardview.Snapshot{
			BoardWidth: width, BoardHeight: height,
			PieceXPos: p.X, PieceYPos: p.Y,
			Name: p.Kind, White: p.IsWhite,
			Occupancy:     occupancy,
			StateTable:    state,
			DangerSquares: make(map[boardview.Coord]struct{}),
		}
	}
	return pieces, factory, nil
}
