// Package config provides configuration and global state for the
// move-script engine.
package config

import (
	"io"
	"os"
)

// DefaultOpcodeBudget is the maximum number of opcodes a single Execute
// call may dispatch before the interpreter aborts, returning an empty
// activation list and reporting the overflow through
// Interpreter.BudgetExceeded. It exists to bound runaway scripts
// (an accidental infinite repeat() or jmp/jne loop) rather than to model
// any real per-move cost.
const DefaultOpcodeBudget = 10000

// DefaultWorkers is the default size of the worker pool used by
// movegen.GenerateForSide when the caller does not request a specific
// concurrency level.
const DefaultWorkers = 4

// DefaultBoardWidth and DefaultBoardHeight describe the classical board.
// Scripts and snapshots are not required to use these dimensions; they
// only seed NewConfig's defaults.
const (
	DefaultBoardWidth  = 8
	DefaultBoardHeight = 8
)

// Config holds engine-wide configuration: how much work a script is
// allowed to do, where its source lives on disk, what size board it
// targets by default, and where diagnostic output goes.
type Config struct {
	// OpcodeBudget bounds the number of opcodes an Execute call may
	// dispatch before aborting. Zero means unbounded.
	OpcodeBudget int

	// ScriptDir is the directory movescript.LoadDir reads *.ms files
	// from.
	ScriptDir string

	// BoardWidth and BoardHeight describe the default snapshot
	// dimensions. cmd/movegen does not read them: -fen positions are
	// always 8x8, and -snapshot files fall back to 8x8 on their own.
	BoardWidth  int
	BoardHeight int

	// Debug enables per-opcode tracing via internal/trace.
	Debug bool

	// Verbosity controls how much the CLI logs: 0=nothing, 1=summary,
	// 2=running commentary.
	Verbosity int

	// Workers is the number of goroutines movegen.GenerateForSide's
	// worker pool spins up. A value of 1 or less runs generation
	// sequentially.
	Workers int

	// Output streams.
	OutputFile io.Writer
	LogFile    io.Writer
}

// GlobalConfig is the global configuration instance, initialized to
// defaults. Most callers should prefer building their own *Config via
// NewConfig/ConfigBuilder rather than mutating this one; cmd/movegen
// itself builds its own via NewConfig.
var GlobalConfig *Config

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OpcodeBudget: DefaultOpcodeBudget,
		BoardWidth:   DefaultBoardWidth,
		BoardHeight:  DefaultBoardHeight,
		Verbosity:    1,
		Workers:      DefaultWorkers,
		OutputFile:   os.Stdout,
		LogFile:      os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Init initializes the global configuration.
func Init() {
	GlobalConfig = NewConfig()
}

func init() {
	Init()
}
