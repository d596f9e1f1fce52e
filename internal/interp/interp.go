// Package interp implements the move-script stack machine: a linear
// token-stream evaluator with an anchor cursor, a scope stack for
// `{...}` regions, and per-chain label resolution. It is the core of
// the engine; everything else (lexer, board snapshot, move-generator
// adapter) exists to feed it input and consume its output.
package interp

import (
	"github.com/haldric/movescript/internal/config"
	"github.com/haldric/movescript/internal/errors"
	"github.com/haldric/movescript/internal/token"
)

// BoardSnapshot is the read-only board view the interpreter evaluates
// predicates and move operators against. It is satisfied structurally
// by *boardview.Snapshot; interp does not import boardview so the two
// packages cannot form an import cycle and test code can supply a
// minimal fake.
type BoardSnapshot interface {
	Width() int
	Height() int
	PieceX() int
	PieceY() int
	PieceName() string
	PieceIsWhite() bool
	InBounds(x, y int) bool
	Empty(x, y int) bool
	Enemy(x, y int) bool
	Friendly(x, y int) bool
	PieceNamed(x, y int, name string) bool
	Danger(x, y int) bool
	InCheck() bool
	State(key string) int
}

// MoveType identifies which family of move operator produced an
// Activation.
type MoveType int

const (
	MoveTake MoveType = iota
	MoveMove
	MoveTakeOnly
	MoveCatch
	MoveShift
	MoveJump
)

var moveTypeNames = map[MoveType]string{
	MoveTake:     "TakeMove",
	MoveMove:     "Move",
	MoveTakeOnly: "Take",
	MoveCatch:    "Catch",
	MoveShift:    "Shift",
	MoveJump:     "Jump",
}

func (m MoveType) String() string {
	if s, ok := moveTypeNames[m]; ok {
		return s
	}
	return "Unknown"
}

// TagKind distinguishes the two shapes an ActionTag can take.
type TagKind int

const (
	TagTransition TagKind = iota
	TagSetState
)

// ActionTag is either Transition(name) or SetState(key, value). Tags
// are applied by the outer game exactly once, after the move is
// committed, in the order they appear on the activation.
type ActionTag struct {
	Kind  TagKind
	Name  string // set when Kind == TagTransition
	Key   string // set when Kind == TagSetState
	Value int    // set when Kind == TagSetState
}

// Activation is a single candidate move emitted by the interpreter.
type Activation struct {
	// DX, DY is the offset from the acting piece's original square (not
	// from the anchor at time of emission).
	DX, DY int

	Type MoveType
	Tags []ActionTag

	// CatchDX, CatchDY name the square (anchor-relative to the acting
	// piece's origin) whose occupant is removed on commit. Only
	// meaningful when Type == MoveJump.
	HasCatchSquare   bool
	CatchDX, CatchDY int
}

// isException reports whether k bypasses the chain-termination rule:
// these opcodes still dispatch when last_value is false, whereas any
// other opcode reached with last_value false causes the remainder of
// the chain (or of the current scope) to be skipped instead.
func isException(k token.Kind) bool {
	switch k {
	case token.While, token.Jmp, token.Jne, token.Not, token.Label, token.ChainEnd, token.ScopeClose:
		return true
	default:
		return false
	}
}

type scopeFrame struct {
	ax, ay int
}

// Interpreter holds a parsed token stream and its precomputed label
// table. A single Interpreter must not have two Execute calls running
// concurrently (Execute resets and uses instance state for the
// duration of the call); running many pieces in parallel means giving
// each goroutine its own Interpreter instance over the same or
// different token streams, exactly the pattern internal/movegen's
// worker-pool-backed batch generator uses.
type Interpreter struct {
	tokens     token.Stream
	labelTable map[int]map[string]int

	opcodeBudget   int
	budgetExceeded bool

	debug  bool
	tracer func(format string, args ...interface{})
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOpcodeBudget overrides the default dispatched-opcode budget. Zero
// disables the limit.
func WithOpcodeBudget(budget int) Option {
	return func(in *Interpreter) {
		in.opcodeBudget = budget
	}
}

// WithTracer installs a sink for per-opcode debug output and enables
// tracing. format/args follow fmt.Sprintf conventions. SetDebug(false)
// can still be used afterward to silence a configured tracer without
// removing it.
func WithTracer(tracer func(format string, args ...interface{})) Option {
	return func(in *Interpreter) {
		in.tracer = tracer
		in.debug = true
	}
}

// New creates an Interpreter and parses the given token stream.
func New(tokens token.Stream, opts ...Option) *Interpreter {
	in := &Interpreter{opcodeBudget: config.DefaultOpcodeBudget}
	for _, opt := range opts {
		opt(in)
	}
	in.Parse(tokens)
	return in
}

// Parse replaces the interpreter's token stream and recomputes the
// label table (the prepass of distilled §4.2.1).
func (in *Interpreter) Parse(tokens token.Stream) {
	in.tokens = tokens
	in.labelTable = prepass(tokens)
	in.budgetExceeded = false
}

// prepass walks the token stream once, tracking a running chain index
// (incremented at every `;`) and recording, for each label(name) token,
// the index of the token immediately after it, scoped to the chain it
// was defined in. Labels defined inside a `{...}` scope remain visible
// for the rest of the same chain (distilled §9's label-scoping open
// question, resolved in favor of no scope-based hiding).
func prepass(tokens token.Stream) map[int]map[string]int {
	table := make(map[int]map[string]int)
	chainIndex := 0
	for i, tok := range tokens {
		switch tok.Kind {
		case token.Label:
			if table[chainIndex] == nil {
				table[chainIndex] = make(map[string]int)
			}
			table[chainIndex][tok.Label] = i + 1
		case token.ChainEnd:
			chainIndex++
		}
	}
	return table
}

// SetDebug toggles per-opcode trace logging via the configured tracer.
func (in *Interpreter) SetDebug(enabled bool) {
	in.debug = enabled
}

// BudgetExceeded reports whether the most recent Execute call aborted
// because it dispatched more opcodes than its configured budget.
func (in *Interpreter) BudgetExceeded() bool {
	return in.budgetExceeded
}

func (in *Interpreter) trace(format string, args ...interface{}) {
	if in.debug && in.tracer != nil {
		in.tracer(format, args...)
	}
}

// Execute runs the parsed script against board and returns the ordered
// activation list. It is pure with respect to board: board is read but
// never written through. The only error Execute can return is an
// *errors.EvalError wrapping errors.ErrUndefinedLabel, the one case
// distilled §7 requires to surface as fatal rather than degrade.
func (in *Interpreter) Execute(board BoardSnapshot) ([]Activation, error) {
	in.budgetExceeded = false

	px, py := board.PieceX(), board.PieceY()
	ax, ay := 0, 0
	lastValue := true
	var pendingTags []ActionTag
	var scopeStack []scopeFrame
	doAnchor := -1
	haveLastTake := false
	var lastTakeDX, lastTakeDY int
	chainIndex := 0
	var activations []Activation

	pc := 0
	opcodes := 0

	// skip advances pc from `from` to the next chain/scope boundary,
	// applying that boundary's own effects (chain reset, or scope pop),
	// per distilled §4.2.2. It returns the pc to resume execution at.
	skip := func(from int) int {
		depth := 0
		i := from
		for i < len(in.tokens) {
			switch in.tokens[i].Kind {
			case token.ScopeOpen:
				depth++
			case token.ScopeClose:
				if depth == 0 {
					if len(scopeStack) > 0 {
						top := scopeStack[len(scopeStack)-1]
						scopeStack = scopeStack[:len(scopeStack)-1]
						ax, ay = top.ax, top.ay
					}
					lastValue = true
					return i + 1
				}
				depth--
			case token.ChainEnd:
				if depth == 0 {
					ax, ay = 0, 0
					pendingTags = nil
					doAnchor = -1
					haveLastTake = false
					chainIndex++
					lastValue = true
					return i + 1
				}
			}
			i++
		}
		return len(in.tokens)
	}

	for pc < len(in.tokens) {
		if in.opcodeBudget > 0 && opcodes >= in.opcodeBudget {
			in.budgetExceeded = true
			return []Activation{}, nil
		}
		opcodes++

		tok := in.tokens[pc]
		nextPC := pc + 1

		// Chain-termination rule (distilled §4.2.2): the check is made
		// against the token about to dispatch, using the last_value the
		// previous opcode left behind — not against the opcode that just
		// ran. This is what lets a false predicate immediately followed
		// by jne/jmp/not/label/; reach that exception opcode instead of
		// having the whole chain skipped before it ever runs (see S6:
		// `piece(queen) jne(END) ...` must still dispatch jne when
		// piece(queen) is false).
		if !lastValue && !isException(tok.Kind) {
			in.trace("pc=%d op=%s skip (last=false)", pc, tok.Kind)
			pc = skip(nextPC)
			lastValue = true
			continue
		}

		tx, ty := px+ax+tok.DX, py+ay+tok.DY

		in.trace("pc=%d op=%s ax=%d ay=%d last=%v", pc, tok.Kind, ax, ay, lastValue)

		switch tok.Kind {
		case token.TakeMove:
			if !board.InBounds(tx, ty) || board.Friendly(tx, ty) {
				lastValue = false
			} else {
				captured := board.Enemy(tx, ty)
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveTake, Tags: copyTags(pendingTags),
				})
				ax += tok.DX
				ay += tok.DY
				lastValue = !captured
			}

		case token.Move:
			if board.Empty(tx, ty) {
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveMove, Tags: copyTags(pendingTags),
				})
				ax += tok.DX
				ay += tok.DY
				lastValue = true
			} else {
				lastValue = false
			}

		case token.Take:
			switch {
			case board.Enemy(tx, ty):
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveTakeOnly, Tags: copyTags(pendingTags),
				})
				lastTakeDX, lastTakeDY = ax+tok.DX, ay+tok.DY
				haveLastTake = true
				ax += tok.DX
				ay += tok.DY
				lastValue = true
			case board.InBounds(tx, ty) && !board.Friendly(tx, ty):
				ax += tok.DX
				ay += tok.DY
				lastValue = true
			default:
				lastValue = false
			}

		case token.Catch:
			if board.Enemy(tx, ty) {
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveCatch, Tags: copyTags(pendingTags),
				})
				lastValue = true
			} else {
				lastValue = false
			}

		case token.Shift:
			if board.InBounds(tx, ty) && !board.Empty(tx, ty) {
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveShift, Tags: copyTags(pendingTags),
				})
				ax += tok.DX
				ay += tok.DY
				lastValue = true
			} else {
				lastValue = false
			}

		case token.Jump:
			if haveLastTake && len(activations) > 0 &&
				activations[len(activations)-1].Type == MoveTakeOnly && board.Empty(tx, ty) {
				activations = activations[:len(activations)-1]
				activations = append(activations, Activation{
					DX: ax + tok.DX, DY: ay + tok.DY, Type: MoveJump, Tags: copyTags(pendingTags),
					HasCatchSquare: true, CatchDX: lastTakeDX, CatchDY: lastTakeDY,
				})
				ax += tok.DX
				ay += tok.DY
				lastValue = true
			} else {
				lastValue = false
			}

		case token.Anchor:
			ax += tok.DX
			ay += tok.DY
			lastValue = true

		case token.Observe:
			lastValue = board.Empty(tx, ty)

		case token.Peek:
			// Simplified per distilled §9: advance unconditionally, set
			// last_value from whether the target was empty.
			ax += tok.DX
			ay += tok.DY
			lastValue = board.Empty(tx, ty)

		case token.Enemy:
			lastValue = board.Enemy(tx, ty)

		case token.Friendly:
			lastValue = board.Friendly(tx, ty)

		case token.Danger:
			lastValue = board.Danger(tx, ty)

		case token.Bound:
			lastValue = !board.InBounds(tx, ty)

		case token.Edge:
			lastValue = ty >= board.Height() || ty < 0 || tx < 0 || tx >= board.Width()

		case token.EdgeTop:
			lastValue = ty >= board.Height()

		case token.EdgeBottom:
			lastValue = ty < 0

		case token.EdgeLeft:
			lastValue = tx < 0

		case token.EdgeRight:
			lastValue = tx >= board.Width()

		case token.Corner:
			lastValue = (tx < 0 || tx >= board.Width()) && (ty < 0 || ty >= board.Height())

		case token.CornerTopLeft:
			lastValue = tx < 0 && ty >= board.Height()

		case token.CornerTopRight:
			lastValue = tx >= board.Width() && ty >= board.Height()

		case token.CornerBottomLeft:
			lastValue = tx < 0 && ty < 0

		case token.CornerBottomRight:
			lastValue = tx >= board.Width() && ty < 0

		case token.PieceOn:
			lastValue = board.PieceNamed(tx, ty, tok.Name)

		case token.Check:
			lastValue = board.InCheck()

		case token.Piece:
			lastValue = board.PieceName() == tok.Name

		case token.IfState:
			lastValue = board.State(tok.Key) == tok.Value

		case token.SetState:
			pendingTags = append(pendingTags, ActionTag{Kind: TagSetState, Key: tok.Key, Value: tok.Value})
			lastValue = true

		case token.SetStateReset:
			if len(pendingTags) > 0 {
				pendingTags = pendingTags[:len(pendingTags)-1]
			}
			lastValue = true

		case token.Transition:
			pendingTags = append(pendingTags, ActionTag{Kind: TagTransition, Name: tok.Name})
			lastValue = true

		case token.Repeat:
			if lastValue && tok.Value > 0 {
				back := pc - tok.Value
				if back < 0 {
					back = 0
				}
				nextPC = back
			}
			// last_value preserved either way.

		case token.Do:
			if lastValue {
				doAnchor = pc + 1
			}
			// last_value unchanged; do is not an exception operator, so a
			// false last_value here still terminates the chain normally.

		case token.While:
			if lastValue && doAnchor >= 0 {
				nextPC = doAnchor
			}
			lastValue = true

		case token.Jmp:
			if lastValue {
				target, ok := in.labelTable[chainIndex][tok.Label]
				if !ok {
					return nil, &errors.EvalError{Err: errors.ErrUndefinedLabel, PieceName: board.PieceName(), ChainIndex: chainIndex, TokenIndex: pc}
				}
				nextPC = target
			}
			lastValue = true

		case token.Jne:
			if !lastValue {
				target, ok := in.labelTable[chainIndex][tok.Label]
				if !ok {
					return nil, &errors.EvalError{Err: errors.ErrUndefinedLabel, PieceName: board.PieceName(), ChainIndex: chainIndex, TokenIndex: pc}
				}
				nextPC = target
			}
			lastValue = true

		case token.Label:
			// Resolved in the prepass; no runtime effect.

		case token.Not:
			lastValue = !lastValue

		case token.End:
			lastValue = false

		case token.ScopeOpen:
			scopeStack = append(scopeStack, scopeFrame{ax: ax, ay: ay})
			lastValue = true

		case token.ScopeClose:
			if len(scopeStack) > 0 {
				top := scopeStack[len(scopeStack)-1]
				scopeStack = scopeStack[:len(scopeStack)-1]
				ax, ay = top.ax, top.ay
			}
			lastValue = true

		case token.ChainEnd:
			ax, ay = 0, 0
			pendingTags = nil
			doAnchor = -1
			haveLastTake = false
			chainIndex++
			lastValue = true
		}

		pc = nextPC
	}

	if activations == nil {
		activations = []Activation{}
	}
	return activations, nil
}

func copyTags(tags []ActionTag) []ActionTag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]ActionTag, len(tags))
	copy(out, tags)
	return out
}
