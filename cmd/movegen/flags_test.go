package main

import (
	"testing"

	"github.com/haldric/movescript/internal/config"
	"github.com/haldric/movescript/internal/output"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags_Defaults(t *testing.T) {
	defer saveRestoreString(scriptsDir, "scripts")()
	defer saveRestoreBool(debug, false)()
	defer saveRestoreInt(budget, 0)()
	defer saveRestoreInt(workers, 0)()
	defer saveRestoreBool(quiet, false)()

	cfg := config.NewConfig()
	applyFlags(cfg)

	if cfg.ScriptDir != "scripts" {
		t.Errorf("ScriptDir = %q; want %q", cfg.ScriptDir, "scripts")
	}
	if cfg.Debug {
		t.Error("Debug = true; want false")
	}
	if cfg.OpcodeBudget != config.DefaultOpcodeBudget {
		t.Errorf("OpcodeBudget = %d; want default %d", cfg.OpcodeBudget, config.DefaultOpcodeBudget)
	}
	if cfg.Workers != config.DefaultWorkers {
		t.Errorf("Workers = %d; want default %d", cfg.Workers, config.DefaultWorkers)
	}
	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d; want 1", cfg.Verbosity)
	}
}

func TestApplyFlags_Overrides(t *testing.T) {
	defer saveRestoreString(scriptsDir, "scripts")()
	defer saveRestoreBool(debug, true)()
	defer saveRestoreInt(budget, 500)()
	defer saveRestoreInt(workers, 8)()
	defer saveRestoreBool(quiet, true)()

	cfg := config.NewConfig()
	applyFlags(cfg)

	if !cfg.Debug {
		t.Error("Debug = false; want true")
	}
	if cfg.OpcodeBudget != 500 {
		t.Errorf("OpcodeBudget = %d; want 500", cfg.OpcodeBudget)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d; want 8", cfg.Workers)
	}
	if cfg.Verbosity != 0 {
		t.Errorf("Verbosity = %d; want 0 when -s is set", cfg.Verbosity)
	}
}

func TestNewMoveWriter_SelectsFormat(t *testing.T) {
	defer saveRestoreString(format, "json")()
	defer saveRestoreBool(jsonSingle, false)()

	w := newMoveWriter(nil)
	if _, ok := w.(*output.JSONWriter); !ok {
		t.Fatalf("expected *output.JSONWriter for -format json, got %T", w)
	}
}
