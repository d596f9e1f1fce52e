// Package movescript associates an effective piece kind and side with
// a parsed move script, the way the teacher's internal/eco package
// loads its ECO classification table from a directory of data files.
package movescript

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/haldric/movescript/internal/errors"
	"github.com/haldric/movescript/internal/lexer"
	"github.com/haldric/movescript/internal/token"
)

// key identifies one (kind, side) script slot.
type key struct {
	kind    string
	isWhite bool
}

// Registry maps an effective piece kind and side to its parsed token
// stream.
type Registry struct {
	scripts map[key]token.Stream
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{scripts: make(map[key]token.Stream)}
}

// Add registers a parsed script for kind/side directly, without going
// through the filesystem. Useful for tests and for scripts built in
// memory.
func (r *Registry) Add(kind string, isWhite bool, stream token.Stream) {
	r.scripts[key{kind: kind, isWhite: isWhite}] = stream
}

// AddSymmetric registers the same script for both sides of kind.
func (r *Registry) AddSymmetric(kind string, stream token.Stream) {
	r.Add(kind, true, stream)
	r.Add(kind, false, stream)
}

// Script returns the parsed token stream for kind/side, or
// errors.ErrUnknownPiece (wrapped with the kind/side context) if no
// script has been registered for it.
func (r *Registry) Script(kind string, isWhite bool) (token.Stream, error) {
	stream, ok := r.scripts[key{kind: kind, isWhite: isWhite}]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownPiece, "kind %q side white=%v", kind, isWhite)
	}
	return stream, nil
}

// LoadDir reads every *.ms file in dir and registers it. A filename of
// `<kind>.white.ms` or `<kind>.black.ms` registers a side-specific
// script; any other `<kind>.ms` registers the same script for both
// sides (movement symmetric across colour, e.g. a wazir or a knight).
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script directory %q", dir)
	}

	r := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ms") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading script file %q", path)
		}

		stream := lexer.Lex(string(data))
		kind, side, ok := parseScriptFilename(entry.Name())
		if !ok {
			continue
		}

		switch side {
		case "white":
			r.Add(kind, true, stream)
		case "black":
			r.Add(kind, false, stream)
		default:
			r.AddSymmetric(kind, stream)
		}
	}
	return r, nil
}

// parseScriptFilename splits "rook.ms" into ("rook", "", true) and
// "pawn.white.ms" into ("pawn", "white", true). Returns ok=false for
// names that don't end in .ms.
func parseScriptFilename(name string) (kind, side string, ok bool) {
	base := strings.TrimSuffix(name, ".ms")
	if base == name {
		return "", "", false
	}
	parts := strings.Split(base, ".")
	switch len(parts) {
	case 1:
		return parts[0], "", true
	case 2:
		return parts[0], parts[1], true
	default:
		// Unexpected extra dots: treat everything before the last
		// segment as the kind, matching the two-part convention.
		return strings.Join(parts[:len(parts)-1], "."), parts[len(parts)-1], true
	}
}
