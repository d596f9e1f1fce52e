// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/haldric/movescript/internal/config"
)

var (
	// Position input
	scriptsDir   = flag.String("scripts", "", "directory of *.ms move scripts to load (movescript.LoadDir)")
	fenFlag      = flag.String("fen", "", "FEN string describing a classical 8x8 position")
	snapshotFlag = flag.String("snapshot", "", "JSON board snapshot file (for non-classical boards)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	format     = flag.String("format", "text", "Output format: text or json")
	jsonSingle = flag.Bool("json-single", false, "With -format json, emit one JSON object per move instead of a single array")

	// Execution options
	budget  = flag.Int("budget", 0, "Override the default opcode dispatch budget (0 = use default)")
	workers = flag.Int("workers", 0, "Worker pool size for batch move generation (0 = default)")
	debug   = flag.Bool("debug", false, "Trace per-opcode interpreter execution to the log file")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	quiet   = flag.Bool("s", false, "Silent mode (no summary line)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.ScriptDir = *scriptsDir
	cfg.Debug = *debug

	if *budget > 0 {
		cfg.OpcodeBudget = *budget
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *quiet {
		cfg.Verbosity = 0
	}
}
