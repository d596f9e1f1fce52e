// Package movegen adapts the move-script interpreter into legal-move
// records: it runs one interpreter per piece, converts the resulting
// activations into origin/destination moves with capture flags, and
// (via internal/worker) fans per-piece interpreter runs out across a
// side's entire set of pieces concurrently.
package movegen

import (
	"github.com/haldric/movescript/internal/errors"
	"github.com/haldric/movescript/internal/interp"
	"github.com/haldric/movescript/internal/movescript"
	"github.com/haldric/movescript/internal/token"
	"github.com/haldric/movescript/internal/worker"
)

// LegalMove is a single committable move synthesized from one
// interpreter activation: an absolute origin and destination, the
// operator family that produced it, whether it captures, and the
// deferred tags the outer game applies after commit.
type LegalMove struct {
	// Kind and IsWhite identify the piece that produced this move. They
	// are carried on every move (rather than grouped externally) so a
	// flattened batch from GenerateForSide can be written out without
	// the caller grouping it by piece.
	Kind    string
	IsWhite bool

	OriginX, OriginY int
	DestX, DestY     int
	Type             interp.MoveType
	Capture          bool
	Tags             []interp.ActionTag

	// HasCatchSquare and CatchX/CatchY carry Jump's "remove whatever
	// occupies this square before placing the mover" instruction, in
	// absolute board coordinates.
	HasCatchSquare bool
	CatchX, CatchY int
}

// GenerateForPiece runs script against snapshot and turns the resulting
// activations into legal-move records, filtering any whose destination
// falls outside the board. It performs no further legality pruning (no
// self-check tests); that remains the outer game's concern.
func GenerateForPiece(snapshot interp.BoardSnapshot, script token.Stream, opts ...interp.Option) ([]LegalMove, error) {
	in := interp.New(script, opts...)
	activations, err := in.Execute(snapshot)
	if err != nil {
		return nil, err
	}

	originX, originY := snapshot.PieceX(), snapshot.PieceY()
	moves := make([]LegalMove, 0, len(activations))
	for _, a := range activations {
		destX, destY := originX+a.DX, originY+a.DY
		if !snapshot.InBounds(destX, destY) {
			continue
		}

		lm := LegalMove{
			Kind: snapshot.PieceName(), IsWhite: snapshot.PieceIsWhite(),
			OriginX: originX, OriginY: originY,
			DestX: destX, DestY: destY,
			Type: a.Type,
			Tags: a.Tags,
		}
		if a.Type == interp.MoveJump {
			lm.Capture = a.HasCatchSquare
			lm.HasCatchSquare = a.HasCatchSquare
			lm.CatchX = originX + a.CatchDX
			lm.CatchY = originY + a.CatchDY
		} else {
			lm.Capture = snapshot.Enemy(destX, destY)
		}
		moves = append(moves, lm)
	}
	return moves, nil
}

// Piece identifies one piece belonging to the side to move: its
// effective kind (used to select a script) and which side it belongs
// to (scripts are selected per kind AND side, since forward direction
// differs for pawn-like pieces).
type Piece struct {
	Kind    string
	IsWhite bool
	X, Y    int
}

// SnapshotFactory builds the board snapshot a single piece's
// interpreter run should see. The adapter calls it once per piece.
type SnapshotFactory func(p Piece) interp.BoardSnapshot

// GenerateForSide iterates every piece belonging to a side, builds a
// snapshot for each via factory, runs GenerateForPiece, and returns the
// concatenated legal-move list in the original piece order regardless
// of which goroutine (if any) finished first. workers <= 1 runs
// sequentially; workers > 1 fans the per-piece runs out across a
// worker.Pool, exploiting the interpreter's "safe to run concurrently
// over distinct snapshots" contract.
func GenerateForSide(reg *movescript.Registry, factory SnapshotFactory, pieces []Piece, workers int, opts ...interp.Option) ([]LegalMove, error) {
	if workers <= 1 {
		return generateSequential(reg, factory, pieces, opts)
	}
	return generateConcurrent(reg, factory, pieces, workers, opts)
}

func generateSequential(reg *movescript.Registry, factory SnapshotFactory, pieces []Piece, opts []interp.Option) ([]LegalMove, error) {
	var all []LegalMove
	for _, p := range pieces {
		moves, err := generateOne(reg, factory, p, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, moves...)
	}
	return all, nil
}

func generateConcurrent(reg *movescript.Registry, factory SnapshotFactory, pieces []Piece, workers int, opts []interp.Option) ([]LegalMove, error) {
	bufferSize := len(pieces)
	if bufferSize < 1 {
		bufferSize = 1
	}

	process := func(item worker.WorkItem[Piece]) worker.Result[[]LegalMove] {
		moves, err := generateOne(reg, factory, item.Value, opts)
		return worker.Result[[]LegalMove]{Value: moves, Index: item.Index, Error: err}
	}

	pool := worker.NewPool[Piece, []LegalMove](workers, bufferSize, process)
	pool.Start()
	for i, p := range pieces {
		pool.Submit(worker.WorkItem[Piece]{Value: p, Index: i})
	}
	pool.Close()

	ordered := make([][]LegalMove, len(pieces))
	var firstErr error
	for res := range pool.Results() {
		if res.Error != nil && firstErr == nil {
			firstErr = res.Error
			continue
		}
		ordered[res.Index] = res.Value
	}
	if firstErr != nil {
		return nil, firstErr
	}

	var all []LegalMove
	for _, moves := range ordered {
		all = append(all, moves...)
	}
	return all, nil
}

func generateOne(reg *movescript.Registry, factory SnapshotFactory, p Piece, opts []interp.Option) ([]LegalMove, error) {
	script, err := reg.Script(p.Kind, p.IsWhite)
	if err != nil {
		return nil, errors.Wrapf(err, "piece kind %q", p.Kind)
	}
	snapshot := factory(p)
	return GenerateForPiece(snapshot, script, opts...)
}
