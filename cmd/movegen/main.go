// movegen is a command-line driver for the move-script engine: it loads
// a directory of per-piece move scripts, builds a board snapshot from
// either a FEN string or a JSON variant-board file, runs the batch
// generator over one side's pieces, and writes the resulting legal
// moves as text or JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/haldric/movescript/internal/config"
	"github.com/haldric/movescript/internal/interp"
	"github.com/haldric/movescript/internal/movegen"
	"github.com/haldric/movescript/internal/movescript"
	"github.com/haldric/movescript/internal/output"
	"github.com/haldric/movescript/internal/trace"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("movegen version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	out := setupOutputFile(cfg)
	defer closeIfFile(out)

	if cfg.ScriptDir == "" {
		fmt.Fprintln(os.Stderr, "movegen: -scripts is required")
		os.Exit(1)
	}
	if (*fenFlag == "") == (*snapshotFlag == "") {
		fmt.Fprintln(os.Stderr, "movegen: exactly one of -fen or -snapshot is required")
		os.Exit(1)
	}

	reg, err := movescript.LoadDir(cfg.ScriptDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "movegen: %v\n", err)
		os.Exit(1)
	}

	var pieces []movegen.Piece
	var factory movegen.SnapshotFactory
	if *fenFlag != "" {
		pieces, factory, err = loadFENPosition(*fenFlag)
	} else {
		pieces, factory, err = loadSnapshotFile(*snapshotFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "movegen: %v\n", err)
		os.Exit(1)
	}

	opts := buildInterpOptions(cfg)
	moves, err := movegen.GenerateForSide(reg, factory, pieces, cfg.Workers, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "movegen: %v\n", err)
		os.Exit(1)
	}

	writer := newMoveWriter(out)
	if err := writer.WriteMoves(moves); err != nil {
		fmt.Fprintf(os.Stderr, "movegen: writing output: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "movegen: closing output: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d piece(s) considered, %d move(s) generated.\n", len(pieces), len(moves))
	}
}

// buildInterpOptions translates config into the interp.Option set every
// per-piece Execute call in this run should use.
func buildInterpOptions(cfg *config.Config) []interp.Option {
	opts := []interp.Option{interp.WithOpcodeBudget(cfg.OpcodeBudget)}
	if cfg.Debug {
		sink := trace.NewWriterSink(cfg.LogFile)
		opts = append(opts, interp.WithTracer(trace.Func(sink)))
	}
	return opts
}

// newMoveWriter selects the output.MoveWriter the -format flag names.
func newMoveWriter(w *os.File) output.MoveWriter {
	if *format == "json" {
		if *jsonSingle {
			return output.NewJSONWriterSingle(w)
		}
		return output.NewJSONWriter(w)
	}
	return output.NewTextWriter(w)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output destination based on -o,
// defaulting to stdout.
func setupOutputFile(cfg *config.Config) *os.File {
	if *outputFile == "" {
		cfg.SetOutput(os.Stdout)
		return os.Stdout
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
	return file
}

// closeIfFile closes f unless it is one of the standard streams.
func closeIfFile(f *os.File) {
	if f != os.Stdout && f != os.Stderr {
		f.Close()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: movegen -scripts <dir> (-fen <FEN> | -snapshot <file.json>) [options]\n\n")
	fmt.Fprintf(os.Stderr, "Generates legal moves for one side of a position by running its\n")
	fmt.Fprintf(os.Stderr, "move scripts through the movescript interpreter.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
