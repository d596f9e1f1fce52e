package movescript

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/haldric/movescript/internal/errors"
	"github.com/haldric/movescript/internal/token"
)

func TestRegistry_AddAndScript(t *testing.T) {
	r := NewRegistry()
	stream := token.Stream{{Kind: token.Move, DX: 1}}
	r.Add("rook", true, stream)

	got, err := r.Script("rook", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Kind != token.Move {
		t.Errorf("got %+v, want the registered stream", got)
	}
}

func TestRegistry_UnknownPieceWrapped(t *testing.T) {
	r := NewRegistry()
	_, err := r.Script("ghost", true)
	if !stderrors.Is(err, errors.ErrUnknownPiece) {
		t.Errorf("got %v, want wrapped ErrUnknownPiece", err)
	}
}

func TestRegistry_AddSymmetric(t *testing.T) {
	r := NewRegistry()
	stream := token.Stream{{Kind: token.Move, DX: 1}}
	r.AddSymmetric("wazir", stream)

	for _, white := range []bool{true, false} {
		if _, err := r.Script("wazir", white); err != nil {
			t.Errorf("side white=%v: unexpected error %v", white, err)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wazir.ms", "take-move(1,0);")
	writeFile(t, dir, "pawn.white.ms", "move(0,1);")
	writeFile(t, dir, "pawn.black.ms", "move(0,-1);")
	writeFile(t, dir, "README.md", "not a script")

	r, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}

	if _, err := r.Script("wazir", true); err != nil {
		t.Errorf("wazir/white: %v", err)
	}
	if _, err := r.Script("wazir", false); err != nil {
		t.Errorf("wazir/black: %v", err)
	}

	whitePawn, err := r.Script("pawn", true)
	if err != nil {
		t.Fatalf("pawn/white: %v", err)
	}
	if whitePawn[0].DY != 1 {
		t.Errorf("white pawn script DY = %d, want 1", whitePawn[0].DY)
	}

	blackPawn, err := r.Script("pawn", false)
	if err != nil {
		t.Fatalf("pawn/black: %v", err)
	}
	if blackPawn[0].DY != -1 {
		t.Errorf("black pawn script DY = %d, want -1", blackPawn[0].DY)
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
