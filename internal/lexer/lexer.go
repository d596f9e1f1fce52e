// Package lexer turns move-script source text into a token.Stream. It
// follows the byte-scanner shape of the teacher's CQL lexer
// (readChar/peekChar/skipWhitespace) but tokenizes a different surface:
// a word optionally followed by a parenthesized argument list, plus the
// three single-character structural tokens `;`, `{`, `}`.
//
// The lexer never fails. Malformed input degrades: an unknown word
// becomes `end`, a malformed integer argument becomes 0 (except for
// repeat, whose absent or malformed count becomes 1). Scripts are
// authored and vetted ahead of time, so robustness is preferred over
// rejection.
package lexer

import (
	"strconv"
	"strings"

	"github.com/haldric/movescript/internal/token"
)

// scanner is the byte-level reader, mirroring cql.Lexer's field shape.
type scanner struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

func newScanner(input string) *scanner {
	s := &scanner{input: input}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
}

func (s *scanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

func (s *scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.readChar()
	}
}

func (s *scanner) skipComment() {
	for s.ch != '\n' && s.ch != 0 {
		s.readChar()
	}
}

func isWordBoundary(ch byte) bool {
	switch ch {
	case 0, ' ', '\t', '\n', '\r', ';', '{', '}', '(', ')', ',', '#':
		return true
	default:
		return false
	}
}

// rawWord is a (word, args) pair as read off the wire, before the word
// is resolved against the known-opcode table.
type rawWord struct {
	word string
	args []string
}

func (s *scanner) readWord() string {
	start := s.pos
	for !isWordBoundary(s.ch) {
		s.readChar()
	}
	return s.input[start:s.pos]
}

// readArgs reads a parenthesized, comma-separated, nested-paren-aware
// argument list. The caller has already confirmed s.ch == '('.
func (s *scanner) readArgs() []string {
	s.readChar() // consume '('

	var args []string
	var buf strings.Builder
	depth := 0

	flush := func() {
		args = append(args, strings.TrimSpace(buf.String()))
		buf.Reset()
	}

	for s.ch != 0 {
		switch s.ch {
		case '(':
			depth++
			buf.WriteByte(s.ch)
			s.readChar()
		case ')':
			if depth == 0 {
				s.readChar() // consume ')'
				flush()
				return args
			}
			depth--
			buf.WriteByte(s.ch)
			s.readChar()
		case ',':
			if depth == 0 {
				flush()
				s.readChar()
			} else {
				buf.WriteByte(s.ch)
				s.readChar()
			}
		default:
			buf.WriteByte(s.ch)
			s.readChar()
		}
	}
	// Unterminated arg list: flush whatever was collected rather than
	// discarding it, consistent with the lexer's never-fail contract.
	flush()
	return args
}

// next returns the next raw lexical item: either a structural token
// (";", "{", "}") with no args, or a word with its (possibly empty)
// argument list. Returns ok=false at end of input.
func (s *scanner) next() (rawWord, bool) {
	for {
		s.skipWhitespace()
		if s.ch == '#' {
			s.skipComment()
			continue
		}
		break
	}

	if s.ch == 0 {
		return rawWord{}, false
	}

	switch s.ch {
	case ';', '{', '}':
		w := string(s.ch)
		s.readChar()
		return rawWord{word: w}, true
	}

	word := s.readWord()
	var args []string
	if s.ch == '(' {
		args = s.readArgs()
	}
	return rawWord{word: word, args: args}, true
}

// Lex tokenizes the full source text into a token.Stream.
func Lex(source string) token.Stream {
	s := newScanner(source)
	var stream token.Stream

	for {
		raw, ok := s.next()
		if !ok {
			break
		}
		stream = append(stream, resolve(raw))
	}
	return stream
}

// intArg parses args[i] as an integer, degrading to 0 on any failure
// (missing arg, malformed text) per the lexer's lenient contract.
func intArg(args []string, i int) int {
	if i >= len(args) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[i]))
	if err != nil {
		return 0
	}
	return n
}

// intArgDefault parses args[i] as an integer, falling back to def (rather
// than 0) when the argument is absent or malformed. repeat's bare word
// form and its unparseable-argument form both fall back to 1, matching
// the grounding interpreter's `args[0].parse().unwrap_or(1)`, while a
// well-formed repeat(0) is left at 0.
func intArgDefault(args []string, i, def int) int {
	if i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[i]))
	if err != nil {
		return def
	}
	return n
}

func strArg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.TrimSpace(args[i])
}

// pairToken builds a DX,DY operator/predicate token from the first two
// integer args.
func pairToken(kind token.Kind, args []string) token.Token {
	return token.Token{Kind: kind, DX: intArg(args, 0), DY: intArg(args, 1)}
}

var wordKinds = map[string]token.Kind{
	"take-move":            token.TakeMove,
	"move":                 token.Move,
	"take":                 token.Take,
	"catch":                token.Catch,
	"shift":                token.Shift,
	"jump":                 token.Jump,
	"anchor":               token.Anchor,
	"observe":              token.Observe,
	"peek":                 token.Peek,
	"enemy":                token.Enemy,
	"friendly":             token.Friendly,
	"danger":               token.Danger,
	"bound":                token.Bound,
	"edge":                 token.Edge,
	"edge-top":             token.EdgeTop,
	"edge-bottom":          token.EdgeBottom,
	"edge-left":            token.EdgeLeft,
	"edge-right":           token.EdgeRight,
	"corner":               token.Corner,
	"corner-top-left":      token.CornerTopLeft,
	"corner-top-right":     token.CornerTopRight,
	"corner-bottom-left":   token.CornerBottomLeft,
	"corner-bottom-right":  token.CornerBottomRight,
	"check":                token.Check,
	"do":                   token.Do,
	"while":                token.While,
	"not":                  token.Not,
	"end":                  token.End,
}

// resolve converts a raw (word, args) pair into a concrete token,
// coercing argument shapes per word and degrading unknown words to
// `end`.
func resolve(raw rawWord) token.Token {
	switch raw.word {
	case ";":
		return token.Token{Kind: token.ChainEnd}
	case "{":
		return token.Token{Kind: token.ScopeOpen}
	case "}":
		return token.Token{Kind: token.ScopeClose}
	case "piece-on":
		return token.Token{Kind: token.PieceOn, Name: strArg(raw.args, 0), DX: intArg(raw.args, 1), DY: intArg(raw.args, 2)}
	case "piece":
		return token.Token{Kind: token.Piece, Name: strArg(raw.args, 0)}
	case "transition":
		return token.Token{Kind: token.Transition, Name: strArg(raw.args, 0)}
	case "if-state":
		return token.Token{Kind: token.IfState, Key: strArg(raw.args, 0), Value: intArg(raw.args, 1)}
	case "set-state":
		if len(raw.args) >= 2 {
			return token.Token{Kind: token.SetState, Key: strArg(raw.args, 0), Value: intArg(raw.args, 1)}
		}
		return token.Token{Kind: token.SetStateReset}
	case "repeat":
		if len(raw.args) == 0 {
			return token.Token{Kind: token.Repeat, Value: 1}
		}
		return token.Token{Kind: token.Repeat, Value: intArgDefault(raw.args, 0, 1)}
	case "jmp":
		return token.Token{Kind: token.Jmp, Label: strArg(raw.args, 0)}
	case "jne":
		return token.Token{Kind: token.Jne, Label: strArg(raw.args, 0)}
	case "label":
		return token.Token{Kind: token.Label, Label: strArg(raw.args, 0)}
	}

	if kind, ok := wordKinds[raw.word]; ok {
		switch kind {
		case token.Check, token.Do, token.While, token.Not, token.End:
			return token.Token{Kind: kind}
		default:
			return pairToken(kind, raw.args)
		}
	}

	// Unknown word: degrade to `end`.
	return token.Token{Kind: token.End}
}
