package lexer

import (
	"testing"

	"github.com/haldric/movescript/internal/token"
)

func TestLexBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"", nil},
		{";", []token.Kind{token.ChainEnd}},
		{"{ }", []token.Kind{token.ScopeOpen, token.ScopeClose}},
		{"take-move(1,0);", []token.Kind{token.TakeMove, token.ChainEnd}},
		{"move(0,1); move(1,1);", []token.Kind{token.Move, token.ChainEnd, token.Move, token.ChainEnd}},
		{"end", []token.Kind{token.End}},
		{"not", []token.Kind{token.Not}},
		{"frobnicate(9)", []token.Kind{token.End}}, // unknown word degrades
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stream := Lex(tt.input)
			if len(stream) != len(tt.expected) {
				t.Fatalf("Lex(%q) produced %d tokens, want %d (%v)", tt.input, len(stream), len(tt.expected), stream)
			}
			for i, want := range tt.expected {
				if stream[i].Kind != want {
					t.Errorf("token %d: got %v, want %v", i, stream[i].Kind, want)
				}
			}
		})
	}
}

func TestLexIntegerArgs(t *testing.T) {
	stream := Lex("take-move(3,-2);")
	if len(stream) != 2 {
		t.Fatalf("got %d tokens, want 2", len(stream))
	}
	if stream[0].DX != 3 || stream[0].DY != -2 {
		t.Errorf("got DX=%d DY=%d, want DX=3 DY=-2", stream[0].DX, stream[0].DY)
	}
}

func TestLexMalformedIntegerDegradesToZero(t *testing.T) {
	stream := Lex("take-move(abc,1);")
	if stream[0].DX != 0 {
		t.Errorf("malformed int arg: got DX=%d, want 0", stream[0].DX)
	}
	if stream[0].DY != 1 {
		t.Errorf("got DY=%d, want 1", stream[0].DY)
	}
}

func TestLexRepeatDefaultsToOne(t *testing.T) {
	stream := Lex("take-move(1,0) repeat();")
	if stream[1].Kind != token.Repeat || stream[1].Value != 1 {
		t.Errorf("repeat() = %+v, want Value=1", stream[1])
	}
}

func TestLexRepeatWithArg(t *testing.T) {
	stream := Lex("take-move(1,0) repeat(1);")
	if stream[1].Value != 1 {
		t.Errorf("repeat(1).Value = %d, want 1", stream[1].Value)
	}
}

func TestLexSetStateArity(t *testing.T) {
	reset := Lex("set-state;")
	if reset[0].Kind != token.SetStateReset {
		t.Errorf("set-state with 0 args: got %v, want SetStateReset", reset[0].Kind)
	}

	oneArg := Lex("set-state(mode);")
	if oneArg[0].Kind != token.SetStateReset {
		t.Errorf("set-state with 1 arg: got %v, want SetStateReset", oneArg[0].Kind)
	}

	twoArgs := Lex("set-state(mode,1);")
	if twoArgs[0].Kind != token.SetState {
		t.Fatalf("set-state with 2 args: got %v, want SetState", twoArgs[0].Kind)
	}
	if twoArgs[0].Key != "mode" || twoArgs[0].Value != 1 {
		t.Errorf("set-state(mode,1) = %+v, want Key=mode Value=1", twoArgs[0])
	}
}

func TestLexNestedParensInArgs(t *testing.T) {
	// Not a realistic move-script arg, but exercises the nested-paren arg
	// reader used by piece-on/if-state's multi-arg forms alongside plain
	// comma splitting: the comma inside a(b,c) must not split the arg.
	stream := Lex("piece-on(a(b,c),1,0);")
	if stream[0].Kind != token.PieceOn {
		t.Fatalf("got %v, want PieceOn", stream[0].Kind)
	}
	if stream[0].Name != "a(b,c)" || stream[0].DX != 1 || stream[0].DY != 0 {
		t.Errorf("piece-on(a(b,c),1,0) = %+v", stream[0])
	}
}

func TestLexCommentsStripped(t *testing.T) {
	stream := Lex("take-move(1,0) # a comment\n;")
	if len(stream) != 2 {
		t.Fatalf("got %d tokens, want 2 (comment should be stripped): %v", len(stream), stream)
	}
}

func TestLexTrimsArgWhitespace(t *testing.T) {
	stream := Lex("piece-on( queen , 1 , 0 );")
	if stream[0].Name != "queen" {
		t.Errorf("got Name=%q, want %q", stream[0].Name, "queen")
	}
}

func TestLexWholeScenarioS1(t *testing.T) {
	stream := Lex("take-move(1,0); take-move(0,1); take-move(-1,0); take-move(0,-1);")
	wantKinds := []token.Kind{
		token.TakeMove, token.ChainEnd,
		token.TakeMove, token.ChainEnd,
		token.TakeMove, token.ChainEnd,
		token.TakeMove, token.ChainEnd,
	}
	if len(stream) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(stream), len(wantKinds))
	}
	for i, want := range wantKinds {
		if stream[i].Kind != want {
			t.Errorf("token %d: got %v, want %v", i, stream[i].Kind, want)
		}
	}
}
